package cudahist

import (
	"errors"
	"fmt"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
)

var ErrNoData = errors.New("no data to process")

// TimeStats describes the kernel execution time distribution. All values
// are in milliseconds.
type TimeStats struct {
	N      int
	Mean   float64
	Median float64
	StdDev float64 // population standard deviation
	Min    float64
	Max    float64
}

// ComputeTimeStats computes the descriptive statistics of times.
func ComputeTimeStats(times []float64) (TimeStats, error) {
	if len(times) == 0 {
		return TimeStats{}, ErrNoData
	}
	s := (&stats.Sample{Xs: append([]float64(nil), times...)}).Sort()
	var ts TimeStats
	ts.N = len(times)
	ts.Mean, ts.StdDev = stat.PopMeanStdDev(times, nil)
	ts.Median = s.Quantile(0.5)
	ts.Min, ts.Max = s.Bounds()
	return ts, nil
}

// CoinStats is the frequency distribution of coins found per kernel run.
type CoinStats struct {
	Runs      int
	Total     int // coins found over all runs
	Zero      int // runs that found nothing
	WithCoins int // runs that found at least one coin
	Max       int
	Counts    []int // Counts[k] is the number of runs that found k coins
}

// ComputeCoinStats counts coins. Counts must lie in [0, MaxCoinsPerRun].
func ComputeCoinStats(coins []int) (CoinStats, error) {
	if len(coins) == 0 {
		return CoinStats{}, ErrNoData
	}
	cs := CoinStats{Runs: len(coins)}
	for _, c := range coins {
		if c < 0 || c > MaxCoinsPerRun {
			return CoinStats{}, fmt.Errorf("coin count %d out of range [0, %d]", c, MaxCoinsPerRun)
		}
		if c > cs.Max {
			cs.Max = c
		}
	}
	cs.Counts = make([]int, cs.Max+1)
	for _, c := range coins {
		cs.Counts[c]++
		cs.Total += c
		if c > 0 {
			cs.WithCoins++
		}
	}
	cs.Zero = cs.Counts[0]
	return cs, nil
}

// AvgPerRun returns the mean number of coins per kernel run.
func (cs CoinStats) AvgPerRun() float64 {
	if cs.Runs == 0 {
		return 0
	}
	return float64(cs.Total) / float64(cs.Runs)
}

// AvgWhenFound returns the mean number of coins over the runs that found any.
func (cs CoinStats) AvgWhenFound() (float64, bool) {
	if cs.WithCoins == 0 {
		return 0, false
	}
	return float64(cs.Total) / float64(cs.WithCoins), true
}

// Percent returns the share of runs that found exactly k coins, in percent.
func (cs CoinStats) Percent(k int) float64 {
	if k < 0 || k >= len(cs.Counts) {
		return 0
	}
	return percent(cs.Counts[k], cs.Runs)
}

func (cs CoinStats) ZeroPercent() float64    { return percent(cs.Zero, cs.Runs) }
func (cs CoinStats) SuccessPercent() float64 { return percent(cs.WithCoins, cs.Runs) }

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
