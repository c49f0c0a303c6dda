package cudahist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDataFileExeDir(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, DefaultDataFile, "1 0\n")

	got, searched, err := FindDataFile(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, searched, 2)
}

func TestFindDataFileIncludes(t *testing.T) {
	root := t.TempDir()
	bin := filepath.Join(root, "histogram_related")
	incl := filepath.Join(root, "includes")
	require.NoError(t, os.MkdirAll(bin, 0755))
	require.NoError(t, os.MkdirAll(incl, 0755))
	want := writeFile(t, incl, DefaultDataFile, "1 0\n")

	got, _, err := FindDataFile(bin)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// chdir switches the working directory for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestFindDataFileWorkingDirFirst(t *testing.T) {
	cwd, exeDir := t.TempDir(), t.TempDir()
	want := writeFile(t, cwd, DefaultDataFile, "1 0\n")
	writeFile(t, exeDir, DefaultDataFile, "2 0\n")
	chdir(t, cwd)

	got, searched, err := FindDataFile(exeDir)
	require.NoError(t, err)
	assert.Len(t, searched, 1)
	assertSameFile(t, want, got)
}

func assertSameFile(t *testing.T, want, got string) {
	t.Helper()
	a, err := os.Stat(want)
	require.NoError(t, err)
	b, err := os.Stat(got)
	require.NoError(t, err)
	assert.True(t, os.SameFile(a, b), "got %s, want %s", got, want)
}

func TestFindDataFileNotFound(t *testing.T) {
	dir := t.TempDir()
	_, searched, err := FindDataFile(dir)
	assert.ErrorIs(t, err, ErrDataNotFound)
	assert.Len(t, searched, 4)
	assert.Contains(t, searched, filepath.Join(dir, DefaultDataFile))
}

func TestInputFilesExplicit(t *testing.T) {
	files, err := InputFiles([]string{"a.txt", "b.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, files)
}

func TestSearchError(t *testing.T) {
	var err error = &SearchError{Searched: []string{"/x"}}
	assert.True(t, errors.Is(err, ErrDataNotFound))
	assert.Contains(t, err.Error(), DefaultDataFile)
}
