package bundle

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func TestArchive(t *testing.T) {
	src := t.TempDir()
	write(t, src, "__init__.py", "# addon entry point\n")
	write(t, src, "manifest.json", `{"package": "fieldmatch"}`)
	write(t, src, "lib/util.py", "x = 1\n")
	// Droppings that must not be shipped.
	write(t, src, "meta.json", `{"disabled": false}`)
	write(t, src, ".DS_Store", "junk")
	write(t, src, "__pycache__/mod.pyc", "bytecode")
	write(t, src, ".git/HEAD", "ref: refs/heads/main")

	out := filepath.Join(t.TempDir(), "fieldmatch.ankiaddon")
	require.NoError(t, Archive(src, out))

	r, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"__init__.py", "lib/util.py", "manifest.json"}, names,
		"entries are sorted and junk is excluded")
}

func TestArchive_Empty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.zip")
	assert.Error(t, Archive(t.TempDir(), out))
}

func TestArchive_MissingSource(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.zip")
	assert.Error(t, Archive(filepath.Join(t.TempDir(), "nope"), out))
}
