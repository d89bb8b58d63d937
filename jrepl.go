// Package jrepl performs literal substring replacement on the string values
// of JSON documents.
//
// A [Table] of old -> new pairs is applied, in order and chained, to every
// string inside the objects and arrays of a document. Keys, numbers,
// booleans and null are never changed, and object member order and number
// spelling survive the round trip. [Replacer] drives the two file policies:
// rewriting every eligible file of a directory in place, and writing a
// timestamped copy of a single file into an output directory.
package jrepl

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gopatchy/jrepl/internal/document"
	"github.com/gopatchy/jrepl/internal/fsys"
	"github.com/gopatchy/jrepl/internal/walk"
	"github.com/gopatchy/jrepl/pkg/log"
)

// TimestampLayout is the YYYYMMDDHHMMSS suffix of single-file output names.
const TimestampLayout = "20060102150405"

// WriteFunc persists data at name, replacing any existing content.
type WriteFunc = fsys.WriteFunc

// Result describes one processed file.
type Result struct {
	Input  string
	Output string

	// Number of string values whose content changed
	Changed int

	// Unified diff of the re-encoded input against the output; set in dry-run mode
	Diff string

	Err error
}

// Replacer applies a Table to JSON files. Files are handled one at a time;
// each parsed document is owned by the Replacer until it has been written
// and is rewritten in place.
type Replacer struct {
	Table Table

	// Nesting limit; 0 selects the default and a negative value disables it
	MaxDepth int

	// Compute results and diffs without writing anything
	DryRun bool

	// Keep going after a failed file in directory mode and report ErrBatch at the end
	ContinueOnError bool

	// Clock used for single-file output names
	Now func() time.Time

	fsys *fsys.FS
}

// New returns a Replacer that reads through fx and writes to the OS file
// system. See NewWithWriter for the path rules.
func New(fx fs.FS, table Table) *Replacer {
	return newReplacer(fsys.New(fx), table)
}

// NewWithWriter returns a Replacer that reads through fx and writes through
// write. Paths given to the Replacer are slash-separated; a leading '/' is
// stripped before they are opened in fx, and they are passed to write as
// given. With os.DirFS("/") and absolute paths this addresses the real disk.
func NewWithWriter(fx fs.FS, write WriteFunc, table Table) *Replacer {
	return newReplacer(fsys.NewWithWriter(fx, write), table)
}

func newReplacer(f *fsys.FS, table Table) *Replacer {
	return &Replacer{
		Table: table,
		Now:   time.Now,
		fsys:  f,
	}
}

// ReplaceBytes transforms one encoded document and returns the re-encoded
// result together with the number of changed string values.
func (r *Replacer) ReplaceBytes(in []byte) ([]byte, int, error) {
	out, _, changed, err := r.transform(in)
	return out, changed, err
}

// ReplaceDir rewrites, in place, every file directly inside dir whose name
// ends in ".json" and does not contain "Default". Files are processed in
// name order. The first failure stops the batch unless ContinueOnError is
// set. Results for the files handled so far are returned in every case.
//
// ErrInvalidDirectory and ErrNoMatchingFiles are returned before anything is
// read; callers may treat them as informational.
func (r *Replacer) ReplaceDir(ctx context.Context, dir string) ([]Result, error) {
	if !r.fsys.IsDir(dir) {
		return nil, fmt.Errorf("%s: %w", dir, ErrInvalidDirectory)
	}

	files, err := r.fsys.ListJSON(dir)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoMatchingFiles)
	}

	log.Debugf("[%s] %d file(s) to process", dir, len(files))

	results := []Result{}
	failed := 0

	for _, file := range files {
		err := ctx.Err()
		if err != nil {
			return results, err
		}

		res := r.process(file, file)
		results = append(results, res)

		if res.Err == nil {
			continue
		}

		if !r.ContinueOnError {
			return results, res.Err
		}

		log.Debugf("[%s] failed, continuing: %v", file, res.Err)
		failed++
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d files failed: %w", failed, len(files), ErrBatch)
	}

	return results, nil
}

// ReplaceFile transforms input and writes it to outputDir under the name
// returned by OutputName for the current time. outputDir is neither created
// nor checked; a missing directory surfaces as ErrOutputWrite.
func (r *Replacer) ReplaceFile(ctx context.Context, input, outputDir string) (*Result, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	output := path.Join(outputDir, OutputName(input, r.now()))

	res := r.process(input, output)

	return &res, res.Err
}

// OutputName returns "<base>_<YYYYMMDDHHMMSS>.json", where base is the file
// name of input without its last extension.
func OutputName(input string, t time.Time) string {
	base := path.Base(input)
	base = strings.TrimSuffix(base, path.Ext(base))

	return fmt.Sprintf("%s_%s.json", base, t.Format(TimestampLayout))
}

func (r *Replacer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}

	return r.Now()
}

func (r *Replacer) process(input, output string) Result {
	res := Result{
		Input:  input,
		Output: output,
	}

	raw, err := r.fsys.ReadFile(input)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", input, err)
		return res
	}

	out, before, changed, err := r.transform(raw)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", input, err)
		return res
	}

	res.Changed = changed

	log.Debugf("[%s] %d string value(s) changed", input, changed)

	if r.DryRun {
		res.Diff = Diff(input, output, before, out)
		return res
	}

	err = r.fsys.WriteFile(output, out)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w: %w", output, ErrOutputWrite, err)
		return res
	}

	return res
}

// transform returns the output and, in dry-run mode, the re-encoded input
// so that diffs show content changes rather than layout changes.
func (r *Replacer) transform(in []byte) ([]byte, []byte, int, error) {
	doc, err := document.Parse(in, r.MaxDepth)
	if err != nil {
		return nil, nil, 0, err
	}

	var before []byte

	if r.DryRun {
		before, err = document.Encode(doc)
		if err != nil {
			return nil, nil, 0, err
		}
	}

	changed, err := walk.Strings(doc, r.Table.Apply, r.MaxDepth)
	if err != nil {
		return nil, nil, 0, err
	}

	out, err := document.Encode(doc)
	if err != nil {
		return nil, nil, 0, err
	}

	return out, before, changed, nil
}
