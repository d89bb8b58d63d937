package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"testing/fstest"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gopatchy/jrepl"
	"github.com/gopatchy/jrepl/internal/fsys"
	"github.com/gopatchy/jrepl/pkg/version"
)

// now is swapped out by tests.
var now = time.Now

type fileResult struct {
	Input   string `json:"input"`
	Output  string `json:"output,omitempty"`
	Changed int    `json:"changed"`
	Diff    string `json:"diff,omitempty"`
	Error   string `json:"error,omitempty"`
}

type replaceFilesResponse struct {
	Operation  string            `json:"operation"`
	Results    []fileResult      `json:"results"`
	FileSystem map[string]string `json:"fileSystem"`
	Error      string            `json:"error,omitempty"`
}

func replaceHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	replacements, err := request.RequireString("replacements")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	table, err := jrepl.ParseTable(replacements)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r := jrepl.NewWithWriter(fstest.MapFS{}, nil, table)
	r.MaxDepth = parseOptionalInt(request, "maxDepth")

	out, _, err := r.ReplaceBytes([]byte(content))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Replacement failed: %v", err)), nil
	}

	return mcp.NewToolResultText(string(out)), nil
}

func replaceFilesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	replacements, err := request.RequireString("replacements")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Invalid arguments format"), nil
	}

	fileSystem, err := parseFileSystem(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	directory := parseOptionalString(args, "directory", "")
	inputFile := parseOptionalString(args, "inputFile", "")
	outputDirectory := parseOptionalString(args, "outputDirectory", "")

	switch {
	case directory != "" && inputFile != "":
		return mcp.NewToolResultError("cannot specify both directory and inputFile"), nil

	case directory == "" && inputFile == "":
		return mcp.NewToolResultError("must specify either directory or inputFile"), nil

	case inputFile != "" && outputDirectory == "":
		return mcp.NewToolResultError("inputFile requires outputDirectory"), nil
	}

	table, err := jrepl.ParseTable(replacements)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m := createMapFS(fileSystem)

	r := jrepl.NewWithWriter(m, fsys.MapWriter(m), table)
	r.Now = now
	r.MaxDepth = parseOptionalInt(request, "maxDepth")
	r.DryRun = request.GetBool("dryRun", false)
	r.ContinueOnError = request.GetBool("continueOnError", false)

	response := &replaceFilesResponse{}

	var results []jrepl.Result

	if directory != "" {
		response.Operation = "replace_directory"
		results, err = r.ReplaceDir(ctx, directory)
	} else {
		response.Operation = "replace_file"

		var res *jrepl.Result

		res, err = r.ReplaceFile(ctx, inputFile, outputDirectory)
		if res != nil {
			results = append(results, *res)
		}
	}

	switch {
	case err == nil:

	case errors.Is(err, jrepl.ErrInvalidDirectory), errors.Is(err, jrepl.ErrNoMatchingFiles), errors.Is(err, jrepl.ErrBatch):
		response.Error = err.Error()

	default:
		return mcp.NewToolResultError(fmt.Sprintf("Replacement failed: %v", err)), nil
	}

	response.Results = []fileResult{}
	for _, res := range results {
		fr := fileResult{
			Input:   res.Input,
			Changed: res.Changed,
			Diff:    res.Diff,
		}

		if res.Err != nil {
			fr.Error = res.Err.Error()
		} else if !r.DryRun {
			fr.Output = res.Output
		}

		response.Results = append(response.Results, fr)
	}

	response.FileSystem = dumpMapFS(m)

	resultJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func versionHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bi := version.GetVersion()
	if bi == nil {
		return mcp.NewToolResultError("Failed to get build information"), nil
	}

	resultJSON, err := json.MarshalIndent(bi, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func parseFileSystem(args map[string]any) (map[string]string, error) {
	fileSystemRaw := args["fileSystem"]
	if fileSystemRaw == nil {
		return nil, fmt.Errorf("fileSystem parameter is required")
	}

	fileSystemMap, ok := fileSystemRaw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fileSystem must be an object")
	}

	fileSystem := make(map[string]string)
	for k, v := range fileSystemMap {
		if str, ok := v.(string); ok {
			fileSystem[k] = str
		} else {
			return nil, fmt.Errorf("fileSystem[%s] must be a string, got %T", k, v)
		}
	}

	return fileSystem, nil
}

func parseOptionalString(args map[string]any, key string, defaultValue string) string {
	if val := args[key]; val != nil {
		if str, ok := val.(string); ok && str != "" {
			return str
		}
	}
	return defaultValue
}

// parseOptionalInt reads a JSON number argument; absent or non-numeric means 0.
func parseOptionalInt(request mcp.CallToolRequest, key string) int {
	return int(request.GetFloat(key, 0))
}

func createMapFS(fileSystem map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for filename, content := range fileSystem {
		m[strings.TrimPrefix(path.Clean(filename), "/")] = &fstest.MapFile{
			Data: []byte(content),
		}
	}

	return m
}

// dumpMapFS returns every file in m keyed by its "/"-rooted path.
func dumpMapFS(m fstest.MapFS) map[string]string {
	ret := make(map[string]string, len(m))
	for name, f := range m {
		if f.Mode.IsDir() {
			continue
		}

		ret["/"+name] = string(f.Data)
	}

	return ret
}
