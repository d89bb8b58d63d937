package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/jessevdk/go-flags"

	"github.com/gopatchy/jrepl"
	"github.com/gopatchy/jrepl/pkg/log"
	"github.com/gopatchy/jrepl/pkg/version"
)

type options struct {
	InputDir         *flags.Filename `long:"input_dir" description:"rewrite every .json file in this directory in place (names containing \"Default\" are skipped)"`
	InputFile        *flags.Filename `long:"input_file" description:"input JSON file; the result is written to --output_dir"`
	OutputDir        *flags.Filename `long:"output_dir" description:"existing directory for the timestamped copy made with --input_file"`
	Replacements     *string         `long:"replacements" description:"comma-separated replacement pairs, e.g. old1=new1,old2=new2"`
	ReplacementsFile *flags.Filename `short:"F" long:"replacements-file" description:"read replacement pairs from a .json, .properties, .toml, .yaml or .yml file (applied before --replacements)"`
	DryRun           bool            `short:"n" long:"dry-run" description:"print a diff of each change instead of writing files"`
	ContinueOnError  bool            `short:"k" long:"continue-on-error" description:"with --input_dir, keep going after a file fails and report failures at the end"`
	MaxDepth         int             `long:"max-depth" description:"maximum JSON nesting depth (0 for the default, -1 for unlimited)" default:"0"`
	Verbose          bool            `short:"v" long:"verbose" description:"enable verbose logging"`
	Version          bool            `short:"V" long:"version" description:"print version and exit"`
}

func main() {
	opts := &options{}

	fp := flags.NewParser(opts, flags.Default)
	fp.LongDescription = `
jrepl replaces literal substrings inside the string values of JSON documents.

Directory mode:
  jrepl --input_dir DIR --replacements "old1=new1,old2=new2"

Single-file mode:
  jrepl --input_file FILE --output_dir DIR --replacements "old1=new1,old2=new2"

Replacement pairs are applied in order, each to the output of the previous one.`

	_, err := fp.Parse()
	if err != nil {
		os.Exit(1)
	}

	version.PrintVersion(opts.Version)

	if opts.Verbose {
		log.Debug = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = run(ctx, opts, os.Stdout)

	switch {
	case err == nil:

	case errors.Is(err, jrepl.ErrInvalidArguments):
		fmt.Fprintf(os.Stderr, "%s\n\n", err)
		fp.WriteHelp(os.Stderr)
		os.Exit(1)

	case errors.Is(err, jrepl.ErrInvalidDirectory), errors.Is(err, jrepl.ErrNoMatchingFiles):
		// Reported, but not a failure: nothing was touched.
		fmt.Fprintf(os.Stderr, "%s\n", err)

	default:
		fatal(err)
	}
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	err := validate(opts)
	if err != nil {
		return err
	}

	table, err := loadTable(opts)
	if err != nil {
		return err
	}

	log.Debugf("replacements: %s", table)

	if !table.Disjoint() {
		log.Debugf("some replacement outputs contain replacement keys; running again would change the result")
	}

	r := jrepl.New(os.DirFS("/"), table)
	r.MaxDepth = opts.MaxDepth
	r.DryRun = opts.DryRun
	r.ContinueOnError = opts.ContinueOnError

	if opts.InputDir != nil {
		dir, err := absPath(string(*opts.InputDir))
		if err != nil {
			return err
		}

		results, err := r.ReplaceDir(ctx, dir)
		report(out, results, opts)

		return err
	}

	input, err := absPath(string(*opts.InputFile))
	if err != nil {
		return err
	}

	outputDir, err := absPath(string(*opts.OutputDir))
	if err != nil {
		return err
	}

	res, err := r.ReplaceFile(ctx, input, outputDir)
	if res != nil {
		report(out, []jrepl.Result{*res}, opts)
	}

	return err
}

func validate(opts *options) error {
	switch {
	case opts.InputDir != nil && opts.InputFile != nil:
		return fmt.Errorf("--input_dir and --input_file are mutually exclusive: %w", jrepl.ErrInvalidArguments)

	case opts.InputDir == nil && opts.InputFile == nil:
		return fmt.Errorf("one of --input_dir or --input_file is required: %w", jrepl.ErrInvalidArguments)

	case opts.InputFile != nil && opts.OutputDir == nil:
		return fmt.Errorf("--input_file requires --output_dir: %w", jrepl.ErrInvalidArguments)

	case opts.InputDir != nil && opts.OutputDir != nil:
		return fmt.Errorf("--output_dir only applies to --input_file: %w", jrepl.ErrInvalidArguments)

	case opts.Replacements == nil && opts.ReplacementsFile == nil:
		return fmt.Errorf("one of --replacements or --replacements-file is required: %w", jrepl.ErrInvalidArguments)
	}

	return nil
}

// loadTable concatenates the file table and the command-line table, in that order.
func loadTable(opts *options) (jrepl.Table, error) {
	table := jrepl.Table{}

	if opts.ReplacementsFile != nil {
		fromFile, err := jrepl.LoadTableFile(string(*opts.ReplacementsFile))
		if err != nil {
			return nil, err
		}

		table = append(table, fromFile...)
	}

	if opts.Replacements != nil {
		fromFlag, err := jrepl.ParseTable(*opts.Replacements)
		if err != nil {
			return nil, err
		}

		table = append(table, fromFlag...)
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("no replacements given: %w", jrepl.ErrMalformedReplacementSpec)
	}

	return table, nil
}

// report prints one line per result. Without --continue-on-error a failed
// result is the error returned by run, so it is left to the caller.
func report(out io.Writer, results []jrepl.Result, opts *options) {
	for _, res := range results {
		switch {
		case res.Err != nil:
			if opts.ContinueOnError {
				fmt.Fprintf(out, "Failed: %s\n", res.Err)
			}

		case opts.DryRun:
			fmt.Fprint(out, res.Diff)

		default:
			fmt.Fprintf(out, "Replacement done. Check %s for the modified JSON.\n", res.Output)
		}
	}
}

func absPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(abs), nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
