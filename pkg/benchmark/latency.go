// Package benchmark measures per-call latency of the AES-128 stages in each
// substitution mode and reports percentile statistics.
package benchmark

import (
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"aescore/pkg/aes128"
	"aescore/pkg/log"
)

// Stage selects which operation is timed.
type Stage int

const (
	StageKeyExpansion Stage = iota
	StageEncrypt
	StageDecrypt
)

func (s Stage) String() string {
	switch s {
	case StageKeyExpansion:
		return "Key Expansion"
	case StageEncrypt:
		return "Encrypt"
	case StageDecrypt:
		return "Decrypt"
	default:
		return "Unknown"
	}
}

type LatencyResults struct {
	Stage         Stage
	Mode          aes128.SubstitutionMode
	Iterations    int
	MinLatency    time.Duration
	MaxLatency    time.Duration
	AvgLatency    time.Duration
	MedianLatency time.Duration
	P95Latency    time.Duration
	P99Latency    time.Duration
	TotalTime     time.Duration
}

// BlocksPerSecond derives throughput from the total time.
func (r *LatencyResults) BlocksPerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.Iterations) / r.TotalTime.Seconds()
}

type Options struct {
	Stage      Stage
	Mode       aes128.SubstitutionMode
	Iterations int
	Key        aes128.Key
}

func DefaultOptions() *Options {
	return &Options{
		Stage:      StageEncrypt,
		Mode:       aes128.SubstitutionTable,
		Iterations: 10000,
		Key:        aes128.Key{0x2b, 0x7e, 0x15, 0x16, 0x28, 0xae, 0xd2, 0xa6, 0xab, 0xf7, 0x15, 0x88, 0x09, 0xcf, 0x4f, 0x3c},
	}
}

// sink keeps results observable so the timed calls are not elided.
var sink byte

// BenchmarkLatency times opts.Iterations calls of one stage.
func BenchmarkLatency(opts *Options) (*LatencyResults, error) {
	if opts.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", opts.Iterations)
	}
	c, err := aes128.NewCipher(opts.Key[:], aes128.WithSubstitution(opts.Mode))
	if err != nil {
		return nil, err
	}

	var op func(i int)
	blk := aes128.Block{}
	switch opts.Stage {
	case StageKeyExpansion:
		key := opts.Key
		op = func(i int) {
			key[0] = byte(i)
			xk := aes128.ExpandKeyWith(key, opts.Mode)
			sink ^= xk[aes128.ExpandedKeySize-1]
		}
	case StageEncrypt:
		op = func(int) {
			blk = c.EncryptBlock(blk)
			sink ^= blk[0]
		}
	case StageDecrypt:
		op = func(int) {
			blk = c.DecryptBlock(blk)
			sink ^= blk[0]
		}
	default:
		return nil, fmt.Errorf("unknown stage: %d", opts.Stage)
	}

	latencies := make([]time.Duration, 0, opts.Iterations)
	start := time.Now()
	for i := 0; i < opts.Iterations; i++ {
		t0 := time.Now()
		op(i)
		latencies = append(latencies, time.Since(t0))
	}
	res := calculateStats(latencies, time.Since(start))
	res.Stage = opts.Stage
	res.Mode = opts.Mode
	return res, nil
}

func calculateStats(latencies []time.Duration, totalTime time.Duration) *LatencyResults {
	res := &LatencyResults{Iterations: len(latencies), TotalTime: totalTime}
	if len(latencies) == 0 {
		return res
	}
	slices.Sort(latencies)

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	n := len(latencies)
	res.MinLatency = latencies[0]
	res.MaxLatency = latencies[n-1]
	res.AvgLatency = sum / time.Duration(n)
	res.MedianLatency = latencies[n/2]
	res.P95Latency = latencies[(n*95)/100]
	res.P99Latency = latencies[(n*99)/100]
	return res
}

// RunAll benchmarks every stage in both substitution modes.
func RunAll(base *Options) ([]*LatencyResults, error) {
	var results []*LatencyResults
	for _, mode := range []aes128.SubstitutionMode{aes128.SubstitutionTable, aes128.SubstitutionConstantTime} {
		for _, stage := range []Stage{StageKeyExpansion, StageEncrypt, StageDecrypt} {
			opts := *base
			opts.Stage = stage
			opts.Mode = mode

			log.Debug().Str("stage", stage.String()).Str("mode", mode.String()).Msg("running benchmark")
			r, err := BenchmarkLatency(&opts)
			if err != nil {
				return results, fmt.Errorf("benchmark %s/%s: %w", stage, mode, err)
			}
			results = append(results, r)
		}
	}
	return results, nil
}

func PrintResults(w io.Writer, r *LatencyResults) {
	fmt.Fprintf(w, "=== Latency Benchmark: %s (%s) ===\n", r.Stage, r.Mode)
	fmt.Fprintf(w, "Iterations: %d\n", r.Iterations)
	fmt.Fprintf(w, "Total Time: %v\n", r.TotalTime)
	fmt.Fprintf(w, "Throughput: %.0f blocks/s\n", r.BlocksPerSecond())
	fmt.Fprintf(w, "Min Latency: %v\n", r.MinLatency)
	fmt.Fprintf(w, "Avg Latency: %v\n", r.AvgLatency)
	fmt.Fprintf(w, "Median Latency: %v\n", r.MedianLatency)
	fmt.Fprintf(w, "95th Percentile: %v\n", r.P95Latency)
	fmt.Fprintf(w, "99th Percentile: %v\n", r.P99Latency)
	fmt.Fprintf(w, "Max Latency: %v\n", r.MaxLatency)
	fmt.Fprintln(w, "==========================================")
}

// SaveResultsToFile writes results as CSV with latencies in nanoseconds.
func SaveResultsToFile(results []*LatencyResults, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.WriteString(f, "Stage,Mode,Iterations,MinLatency,AvgLatency,MedianLatency,P95Latency,P99Latency,MaxLatency,TotalTime\n"); err != nil {
		return err
	}
	for _, r := range results {
		_, err := fmt.Fprintf(f, "%s,%s,%d,%d,%d,%d,%d,%d,%d,%d\n",
			r.Stage,
			r.Mode,
			r.Iterations,
			r.MinLatency.Nanoseconds(),
			r.AvgLatency.Nanoseconds(),
			r.MedianLatency.Nanoseconds(),
			r.P95Latency.Nanoseconds(),
			r.P99Latency.Nanoseconds(),
			r.MaxLatency.Nanoseconds(),
			r.TotalTime.Nanoseconds())
		if err != nil {
			return err
		}
	}
	return f.Close()
}
