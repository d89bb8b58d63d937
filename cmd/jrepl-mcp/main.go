package main

import (
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gopatchy/jrepl/pkg/version"
)

func newServer() *server.MCPServer {
	mcpServer := server.NewMCPServer(
		"jrepl-mcp",
		version.Short(),
		server.WithToolCapabilities(false),
	)

	replacementsParam := mcp.WithString("replacements",
		mcp.Required(),
		mcp.Description("Comma-separated old=new pairs, applied in order (e.g. old1=new1,old2=new2)"),
	)
	maxDepthParam := mcp.WithNumber("maxDepth",
		mcp.Description("Maximum JSON nesting depth (0 for the default, -1 for unlimited)"),
	)

	replaceTool := mcp.NewTool("replace",
		mcp.WithDescription("Replace literal substrings in the string values of one JSON document and return the result"),
		replacementsParam,
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("JSON document text"),
		),
		maxDepthParam,
	)
	mcpServer.AddTool(replaceTool, replaceHandler)

	replaceFilesTool := mcp.NewTool("replace_files",
		mcp.WithDescription("Run directory mode or single-file mode over an in-memory file system and return the resulting files"),
		replacementsParam,
		mcp.WithObject("fileSystem",
			mcp.Required(),
			mcp.Description("Map of filename to file content for the operation"),
		),
		mcp.WithString("directory",
			mcp.Description("Directory whose .json files (except names containing \"Default\") are rewritten in place"),
		),
		mcp.WithString("inputFile",
			mcp.Description("Single input file; requires outputDirectory"),
		),
		mcp.WithString("outputDirectory",
			mcp.Description("Existing directory for the timestamped output of inputFile"),
		),
		mcp.WithBoolean("dryRun",
			mcp.Description("Return diffs instead of rewritten files"),
		),
		mcp.WithBoolean("continueOnError",
			mcp.Description("Keep going after a file fails in directory mode"),
		),
		maxDepthParam,
	)
	mcpServer.AddTool(replaceFilesTool, replaceFilesHandler)

	versionTool := mcp.NewTool("version",
		mcp.WithDescription("Get version and build information for jrepl"),
	)
	mcpServer.AddTool(versionTool, versionHandler)

	return mcpServer
}

func main() {
	if err := server.ServeStdio(newServer()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
