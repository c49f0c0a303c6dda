package cudahist

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestToolLoad(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "cuda.txt", "1 0\nbad row\n2 1\n")
	tool := &Tool{Log: zap.NewNop(), Config: DefaultConfig()}

	sets, err := tool.Load(context.Background(), []string{file})
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "cuda", sets[0].Name)
	assert.Equal(t, 2, sets[0].Len())
	assert.Equal(t, 1, sets[0].Dropped)
}

func TestToolLoadFoundNotice(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultDataFile, "1 0\n")
	chdir(t, dir)
	var out bytes.Buffer
	tool := &Tool{Log: zap.NewNop(), Config: DefaultConfig(), Stdout: &out}

	sets, err := tool.Load(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Contains(t, out.String(), "Found data file at: ")
	assert.Contains(t, out.String(), DefaultDataFile)
}

func TestToolInitConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.yaml", "text:\n  bar_width: 10\n")
	tool := &Tool{ConfigPath: path}
	require.NoError(t, tool.Init())
	defer tool.Close()
	assert.Equal(t, 10, tool.Config.Text.BarWidth)
}

func TestPrintLoadHelp(t *testing.T) {
	var buf bytes.Buffer
	PrintLoadHelp(&buf, &SearchError{Searched: []string{"/a/" + DefaultDataFile}})
	assert.Contains(t, buf.String(), "  - /a/"+DefaultDataFile+"\n")
	assert.Contains(t, buf.String(), "make run-cuda")

	buf.Reset()
	_, err := ReadDataset(filepath.Join(t.TempDir(), "gone.txt"))
	PrintLoadHelp(&buf, err)
	assert.Contains(t, buf.String(), "Please run the CUDA miner first")
}
