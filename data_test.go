package cudahist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const sampleData = `# CUDA kernel log
# time_ms coins

12.5 0
13.0 1
  12.75   0   extra
bogus 1
14.0
15.0 x
16.0 1.5
nan 0
17.0 -1
11.25 3
`

func TestParse(t *testing.T) {
	ds, err := Parse(strings.NewReader(sampleData))
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5, 13.0, 12.75, 11.25}, ds.Times)
	assert.Equal(t, []int{0, 1, 0, 3}, ds.Coins)
	assert.Equal(t, 6, ds.Dropped)
	assert.Equal(t, 4, ds.Len())
	assert.False(t, ds.Empty())
}

func TestParseLongLine(t *testing.T) {
	in := "1.0 0\n" + strings.Repeat("x", 70000) + "\n2.0 1\n" + strings.Repeat("3.5 3 ", 20000) + "\n"
	ds, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 2.0, 3.5}, ds.Times)
	assert.Equal(t, []int{0, 1, 3}, ds.Coins)
	assert.Equal(t, 1, ds.Dropped)
}

func TestParseNoTrailingNewline(t *testing.T) {
	ds, err := Parse(strings.NewReader("1.5 0\n2.5 2"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, ds.Times)
}

func TestParseReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	r := io.MultiReader(strings.NewReader("1.0 0\n"), iotest.ErrReader(boom))
	_, err := Parse(r)
	assert.ErrorIs(t, err, boom)
}

func TestParseCoinLimit(t *testing.T) {
	ds, err := Parse(strings.NewReader(fmt.Sprintf("1.0 %d\n2.0 %d\n", MaxCoinsPerRun, MaxCoinsPerRun+1)))
	require.NoError(t, err)
	assert.Equal(t, []int{MaxCoinsPerRun}, ds.Coins)
	assert.Equal(t, 1, ds.Dropped)
}

func TestParseEmpty(t *testing.T) {
	ds, err := Parse(strings.NewReader("# nothing here\n\n   \n"))
	require.NoError(t, err)
	assert.True(t, ds.Empty())
	assert.Zero(t, ds.Dropped)
}

func TestReadDatasetMissing(t *testing.T) {
	_, err := ReadDataset(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadDatasets(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("github.com/syndtr/goleveldb/leveldb.(*DB).mpoolDrain"))
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "avx.txt", "1 0\n2 0\n"),
		writeFile(t, dir, "cuda.txt", "0.5 1\n"),
		writeFile(t, dir, "cpu.log.txt", "9 0\n8 0\n7 2\n"),
	}
	sets, err := ReadDatasets(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, sets, 3)
	assert.Equal(t, "avx", sets[0].Name)
	assert.Equal(t, 2, sets[0].Len())
	assert.Equal(t, "cuda", sets[1].Name)
	assert.Equal(t, "cpu.log", sets[2].Name)
	assert.Equal(t, []int{0, 0, 2}, sets[2].Coins)
}

func TestReadDatasetsError(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("github.com/syndtr/goleveldb/leveldb.(*DB).mpoolDrain"))
	dir := t.TempDir()
	files := []string{writeFile(t, dir, "ok.txt", "1 0\n"), filepath.Join(dir, "nope.txt")}
	_, err := ReadDatasets(context.Background(), files)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadDatasetsCancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("github.com/syndtr/goleveldb/leveldb.(*DB).mpoolDrain"))
	file := writeFile(t, t.TempDir(), "ok.txt", "1 0\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadDatasets(ctx, []string{file, file})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteDataset(t *testing.T) {
	in := &Dataset{Name: "run1", Times: []float64{1.5, 2, 0.125}, Coins: []int{0, 2, 1}}
	var buf bytes.Buffer
	require.NoError(t, WriteDataset(&buf, in))
	assert.True(t, strings.HasPrefix(buf.String(), "# run1:"))

	out, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, in.Times, out.Times)
	assert.Equal(t, in.Coins, out.Coins)
	assert.Zero(t, out.Dropped)
}
