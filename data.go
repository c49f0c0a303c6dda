package cudahist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aristanetworks/goarista/monotime"
	"golang.org/x/sync/errgroup"
)

// Dataset holds the kernel runs of one benchmark data file.
// Times[i] and Coins[i] describe the same kernel run.
type Dataset struct {
	Name    string
	Times   []float64 // kernel execution time in ms
	Coins   []int     // coins found by the kernel run
	Dropped int       // malformed rows skipped while loading

	LoadTime time.Duration
}

// Len returns the number of kernel runs.
func (ds *Dataset) Len() int {
	return len(ds.Times)
}

// Empty reports whether the dataset holds no kernel runs.
func (ds *Dataset) Empty() bool {
	return ds == nil || len(ds.Times) == 0
}

// MaxCoinsPerRun bounds the coin count of a single kernel run. Rows above it
// are treated as malformed.
const MaxCoinsPerRun = 1 << 16

func mononow() time.Duration {
	return time.Duration(monotime.Now())
}

// Parse reads '<time> <coins>' rows. Comments, blank lines and rows that
// don't parse are skipped. Lines may be of any length.
func Parse(r io.Reader) (*Dataset, error) {
	start := mononow()
	ds := new(Dataset)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return ds, err
		}
		if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
			if t, c, ok := parseRow(line); ok {
				ds.Times = append(ds.Times, t)
				ds.Coins = append(ds.Coins, c)
			} else {
				ds.Dropped++
			}
		}
		if err == io.EOF {
			break
		}
	}
	ds.LoadTime = mononow() - start
	return ds, nil
}

func parseRow(line string) (float64, int, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, false
	}
	t, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, 0, false
	}
	c, err := strconv.Atoi(fields[1])
	if err != nil || c < 0 || c > MaxCoinsPerRun {
		return 0, 0, false
	}
	return t, c, true
}

// ReadDataset reads a data file. The dataset is named after the file.
func ReadDataset(file string) (*Dataset, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	ds, err := Parse(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	ds.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return ds, nil
}

// ReadDatasets reads all given files concurrently.
func ReadDatasets(ctx context.Context, files []string) ([]*Dataset, error) {
	sets := make([]*Dataset, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ds, err := ReadDataset(file)
			if err != nil {
				return err
			}
			sets[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}

// WriteDataset writes ds in the format accepted by Parse.
func WriteDataset(w io.Writer, ds *Dataset) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s: kernel_time_ms coins_found (%d runs)\n", ds.Name, ds.Len())
	for i := range ds.Times {
		fmt.Fprintf(bw, "%s %d\n", strconv.FormatFloat(ds.Times[i], 'f', -1, 64), ds.Coins[i])
	}
	return bw.Flush()
}
