package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"jssp/internal/jssp"
	"jssp/internal/jsspio"
	"jssp/internal/optresult"
)

// Optimizer is the common interface cmd/bench drives: tabu-only and
// memetic-with-tabu-improve both implement it via the adapters in
// cmd/bench/main.go.
type Optimizer interface {
	Solve(ctx context.Context, inst *jssp.Instance) (optresult.Result, error)
}

type Algorithm struct {
	Name    string
	Factory func(seed int64) Optimizer
}

// Case names one instance, either loaded from a file (Path set) or
// generated synthetically (Jobs/Machines/InstanceSeed, via
// jssp.RandomInstance).
type Case struct {
	Path         string
	Jobs         int
	Machines     int
	InstanceSeed int64
}

func (c Case) Label() string {
	if c.Path != "" {
		return c.Path
	}
	return fmt.Sprintf("%dx%d", c.Jobs, c.Machines)
}

// Instance loads or generates the instance named by c: from Path if set,
// otherwise synthetically via jssp.RandomInstance.
func (c Case) Instance() (*jssp.Instance, error) {
	if c.Path != "" {
		f, err := os.Open(c.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return jsspio.ParseInstance(f)
	}
	return jssp.RandomInstance(c.Jobs, c.Machines, 1, 99, randForSeed(c.InstanceSeed))
}

type Record struct {
	Algo     string
	Instance string
	Jobs     int
	Machines int
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	MakespanBest int
	MakespanMean float64
	MakespanStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	inst, err := c.Instance()
	if err != nil {
		return Record{}, fmt.Errorf("loading instance %s: %w", c.Label(), err)
	}

	makespans := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op := algo.Factory(runSeed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if err := jssp.ValidateMachines(jssp.Solution{Machines: res.Machines}, inst); err != nil {
			return Record{}, fmt.Errorf("run %d: invalid solution: %w", i, err)
		}

		makespans = append(makespans, res.Makespan)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	msStats := CalcIntStats(makespans)
	tStats := CalcFloatStats(timesMs)

	return Record{
		Algo:     algo.Name,
		Instance: c.Label(),
		Jobs:     inst.Jobs,
		Machines: inst.Machines,
		Runs:     r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		MakespanBest: msStats.Best,
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if err := os.MkdirAll(dirOf(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "instance", "jobs", "machines", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"makespan_best", "makespan_mean", "makespan_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			r.Instance,
			itoa(r.Jobs),
			itoa(r.Machines),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.MakespanBest),
			ftoa(r.MakespanMean),
			ftoa(r.MakespanStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
