package fsys

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"testing/fstest"
)

// WriteFunc persists data at name, replacing any existing content.
type WriteFunc func(name string, data []byte) error

// FS reads through an fs.FS and writes through a WriteFunc, so the same
// driver code runs against the real disk and against an in-memory tree.
type FS struct {
	fsys  fs.FS
	write WriteFunc
}

// New reads from fsys and writes to the OS file system. Paths handed to the
// returned FS must be valid both as fsys names (after a leading '/' is
// stripped) and as OS paths, e.g. absolute paths with os.DirFS("/").
func New(fsys fs.FS) *FS {
	return NewWithWriter(fsys, WriteDisk)
}

func NewWithWriter(fsys fs.FS, write WriteFunc) *FS {
	return &FS{
		fsys:  fsys,
		write: write,
	}
}

func (f *FS) ReadFile(name string) ([]byte, error) {
	fh, err := f.fsys.Open(convertToFS(name))
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	return io.ReadAll(fh)
}

func (f *FS) WriteFile(name string, data []byte) error {
	return f.write(name, data)
}

func (f *FS) IsDir(name string) bool {
	info, err := fs.Stat(f.fsys, convertToFS(name))
	if err != nil {
		return false
	}

	return info.IsDir()
}

// ListJSON returns the paths of the entries of dir whose name ends in ".json"
// and does not contain "Default". Subdirectories are skipped. Entries come
// back in fs.ReadDir order, which is sorted by name.
func (f *FS) ListJSON(dir string) ([]string, error) {
	entries, err := fs.ReadDir(f.fsys, convertToFS(dir))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	ret := []string{}

	for _, entry := range entries {
		if entry.IsDir() || !Eligible(entry.Name()) {
			continue
		}

		ret = append(ret, path.Join(dir, entry.Name()))
	}

	return ret, nil
}

// Eligible applies the directory-mode name filter.
func Eligible(name string) bool {
	return strings.HasSuffix(name, ".json") && !strings.Contains(name, "Default")
}

// WriteDisk writes data to name, truncating any existing file. The handle is
// closed on every path and a failed close is reported.
func WriteDisk(name string, data []byte) (err error) {
	fh, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	defer func() {
		cerr := fh.Close()
		if err == nil {
			err = cerr
		}
	}()

	_, err = fh.Write(data)

	return err
}

// MapWriter stores writes in m. Like the disk, it refuses to create a file
// whose parent directory does not exist.
func MapWriter(m fstest.MapFS) WriteFunc {
	return func(name string, data []byte) error {
		name = convertToFS(name)

		dir := path.Dir(name)
		if dir != "." {
			info, err := fs.Stat(m, dir)
			if err != nil {
				return fmt.Errorf("open %s: %w", name, err)
			}

			if !info.IsDir() {
				return fmt.Errorf("open %s: %w", name, fs.ErrInvalid)
			}
		}

		m[name] = &fstest.MapFile{
			Data: data,
			Mode: 0o644,
		}

		return nil
	}
}

func convertToFS(name string) string {
	result := strings.TrimPrefix(path.Clean(name), "/")
	if result == "" {
		return "."
	}
	return result
}
