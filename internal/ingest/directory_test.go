package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"guia-001.pdf",
		"guia-002.PDF", // extension match is case-insensitive
		"scan.png",
		"foto.jpeg",
		"notas.txt",
		"sub/guia-003.pdf",
	)

	paths, stats, err := Discover(root, nil, false)
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		rel, _ := filepath.Rel(root, p)
		names = append(names, rel)
	}
	assert.ElementsMatch(t, []string{
		"guia-001.pdf", "guia-002.PDF", "scan.png", "foto.jpeg",
		filepath.Join("sub", "guia-003.pdf"),
	}, names)
	assert.Equal(t, uint32(5), stats.Matched)
}

func TestDiscover_ExtensionFilter(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.pdf", "b.png", "c.jpg")

	paths, stats, err := Discover(root, []string{".pdf"}, false)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "a.pdf", filepath.Base(paths[0]))
	assert.Equal(t, uint32(1), stats.Matched)
}

func TestDiscover_SkipHidden(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "visible.pdf", ".hidden.pdf", ".cache/nested.pdf")

	paths, _, err := Discover(root, nil, true)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "visible.pdf", filepath.Base(paths[0]))

	// hidden entries are included when skipHidden is off
	paths, _, err = Discover(root, nil, false)
	require.NoError(t, err)
	assert.Len(t, paths, 3)
}

func TestDiscover_EmptyRoot(t *testing.T) {
	_, _, err := Discover("  ", nil, false)
	assert.Error(t, err)
}
