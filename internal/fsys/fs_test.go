package fsys_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/gopatchy/jrepl/internal/fsys"
)

func TestListJSONFilter(t *testing.T) {
	t.Parallel()

	m := fstest.MapFS{
		"in/a.json":           {Data: []byte(`{}`)},
		"in/aDefault.json":    {Data: []byte(`{}`)},
		"in/b.txt":            {Data: []byte(`x`)},
		"in/sub.json/c.json":  {Data: []byte(`{}`)},
		"in/z.json":           {Data: []byte(`[]`)},
		"in/Default.json":     {Data: []byte(`{}`)},
		"in/c.json.bak":       {Data: []byte(`{}`)},
		"elsewhere/d.json":    {Data: []byte(`{}`)},
		"in/nested/deep.json": {Data: []byte(`{}`)},
	}

	f := fsys.NewWithWriter(m, fsys.MapWriter(m))

	files, err := f.ListJSON("/in")
	require.NoError(t, err)
	require.Equal(t, []string{"/in/a.json", "/in/z.json"}, files)
}

func TestIsDir(t *testing.T) {
	t.Parallel()

	m := fstest.MapFS{
		"in/a.json": {Data: []byte(`{}`)},
	}

	f := fsys.NewWithWriter(m, fsys.MapWriter(m))

	require.True(t, f.IsDir("in"))
	require.True(t, f.IsDir("/"))
	require.False(t, f.IsDir("in/a.json"))
	require.False(t, f.IsDir("missing"))
}

func TestMapWriter(t *testing.T) {
	t.Parallel()

	m := fstest.MapFS{
		"out/keep": {Data: []byte(``)},
	}

	f := fsys.NewWithWriter(m, fsys.MapWriter(m))

	require.NoError(t, f.WriteFile("/out/x.json", []byte("1")))

	data, err := f.ReadFile("out/x.json")
	require.NoError(t, err)
	require.Equal(t, "1", string(data))

	require.Error(t, f.WriteFile("/missing/x.json", []byte("1")))
	require.Error(t, f.WriteFile("/out/keep/x.json", []byte("1")))
}

func TestWriteDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "a.json")

	require.NoError(t, os.WriteFile(p, []byte("a much longer original body"), 0o644))
	require.NoError(t, fsys.WriteDisk(p, []byte("short")))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "short", string(data))

	require.Error(t, fsys.WriteDisk(filepath.Join(dir, "missing", "a.json"), []byte("x")))
}

func TestEligible(t *testing.T) {
	t.Parallel()

	require.True(t, fsys.Eligible("a.json"))
	require.False(t, fsys.Eligible("aDefault.json"))
	require.False(t, fsys.Eligible("b.txt"))
	require.False(t, fsys.Eligible("a.JSON"))
}

func TestNewWritesToDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.ToSlash(filepath.Join(dir, "a.json"))

	f := fsys.New(os.DirFS("/"))

	require.NoError(t, f.WriteFile(p, []byte(`{}`)))

	data, err := f.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, `{}`, string(data))
}
