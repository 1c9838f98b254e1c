package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"jssp/internal/bench"
	"jssp/internal/jssp"
	"jssp/internal/memetic"
	"jssp/internal/optresult"
	"jssp/internal/seeder"
	"jssp/internal/tabu"
)

type tabuAdapter struct {
	s            *tabu.Solver
	rng          *rand.Rand
	budget       time.Duration
	knownOptimum int
}

func (a tabuAdapter) Solve(ctx context.Context, inst *jssp.Instance) (optresult.Result, error) {
	seed := seeder.Random(inst, a.rng)
	return a.s.OptimizeTime(ctx, seed, a.budget, a.knownOptimum)
}

type memeticAdapter struct {
	s            *memetic.Solver
	budget       time.Duration
	knownOptimum int
}

func (a memeticAdapter) Solve(ctx context.Context, inst *jssp.Instance) (optresult.Result, error) {
	return a.s.Optimize(ctx, a.budget, a.knownOptimum)
}

// Фабрики

func newTabuFactory(inst *jssp.Instance, cfg tabu.Config, budget time.Duration, knownOptimum int) func(seed int64) bench.Optimizer {
	return func(seed int64) bench.Optimizer {
		rng := rand.New(rand.NewSource(seed))
		solver, _ := tabu.New(inst, cfg, rng)
		return tabuAdapter{s: solver, rng: rng, budget: budget, knownOptimum: knownOptimum}
	}
}

func newMemeticFactory(inst *jssp.Instance, cfg memetic.Config, budget time.Duration, knownOptimum int) func(seed int64) bench.Optimizer {
	return func(seed int64) bench.Optimizer {
		rng := rand.New(rand.NewSource(seed))
		solver, _ := memetic.New(inst, cfg, rng)
		return memeticAdapter{s: solver, budget: budget, knownOptimum: knownOptimum}
	}
}

func main() {
	// CLI флаги для настройки параметров алгоритмов и политики запуска
	var (
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		files        = flag.String("files", "", "список путей к файлам экземпляров задачи (через запятую); приоритет над -pairs")
		pairs        = flag.String("pairs", "20x5,50x10", "синтетические конфигурации: количество работ Х количество станков (через запятую)")
		algos        = flag.String("algos", "TABU,MEMETIC", "список алгоритмов: TABU, MEMETIC (через запятую)")
		runs         = flag.Int("runs", 10, "количество запусков каждого алгоритма (с разными сидами)")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации синтетических экземпляров (фиксирован для конфигурации)")
		budget       = flag.Duration("budget", 30*time.Second, "бюджет времени на один запуск")
		knownOptimum = flag.Int("known_optimum", 0, "если >0, останавливать запуск досрочно при достижении этого makespan")

		// --- Поиск с запретами ---
		tsTenure = flag.Int("ts_tt", 2, "базовый срок запрета (tt)")
		tsD1     = flag.Int("ts_d1", 5, "делитель динамической надбавки к сроку запрета (d1)")
		tsD2     = flag.Int("ts_d2", 12, "верхняя граница надбавки к сроку запрета (d2)")
		tsSize   = flag.Int("ts_size", 0, "переопределение размера табу-листа (0 — авторасчёт по Zhang et al.)")

		// --- Меметический алгоритм ---
		memPop    = flag.Int("mem_pop", 30, "размер популяции")
		memTSIter = flag.Int("mem_ts_iter", 12000, "итераций поиска с запретами на улучшение каждого потомка")
		memBeta   = flag.Float64("mem_beta", 0.6, "вес качества относительно разнообразия (β)")
	)
	flag.Parse()

	ctx := context.Background()

	cases, err := buildCases(*files, *pairs, *instanceSeed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	tsCfg := tabu.Config{TT: *tsTenure, D1: *tsD1, D2: *tsD2, SizeOverride: *tsSize}
	if err := tsCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации поиска с запретами:", err)
		os.Exit(2)
	}

	memCfg := memetic.Config{PopulationSize: *memPop, TSIterations: *memTSIter, Beta: *memBeta}
	if err := memCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации меметического алгоритма:", err)
		os.Exit(2)
	}

	runner := bench.Runner{
		Runs:     *runs,
		BaseSeed: *baseSeed,
	}

	var records []bench.Record
	for _, c := range cases {
		inst, err := c.Instance()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка загрузки экземпляра:", err)
			os.Exit(1)
		}

		available := map[string]bench.Algorithm{
			"TABU":    {Name: "TABU", Factory: newTabuFactory(inst, tsCfg, *budget, *knownOptimum)},
			"MEMETIC": {Name: "MEMETIC", Factory: newMemeticFactory(inst, memCfg, *budget, *knownOptimum)},
		}

		var selected []bench.Algorithm
		for _, a := range splitCSV(*algos) {
			al, ok := available[a]
			if !ok {
				fmt.Fprintf(os.Stderr, "Алгоритм не предоставлен в программе %q; доступные: %v\n", a, keys(available))
				os.Exit(2)
			}
			selected = append(selected, al)
		}

		for _, a := range selected {
			fmt.Printf("Запущен алгоритм %s; экземпляр %s (общее кол-во запусков=%d)...\n", a.Name, c.Label(), runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			records = append(records, rec)

			fmt.Printf("  Makespan: лучшее=%d среднее=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms стандартное отклонение=%.2fms\n",
				rec.MakespanBest, rec.MakespanMean, rec.MakespanStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

// helpers

func buildCases(filesCSV, pairsCSV string, baseInstanceSeed int64) ([]bench.Case, error) {
	if filesCSV != "" {
		var cases []bench.Case
		for _, p := range splitCSV(filesCSV) {
			cases = append(cases, bench.Case{Path: p})
		}
		return cases, nil
	}
	return parsePairs(pairsCSV, baseInstanceSeed)
}

func parsePairs(s string, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		jm := strings.Split(p, "x")
		if len(jm) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 50x10", p)
		}
		jobs, err := atoiStrict(jm[0])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества работ: %w", p, err)
		}
		machines, err := atoiStrict(jm[1])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества машин: %w", p, err)
		}
		if jobs <= 0 || machines <= 0 {
			return nil, fmt.Errorf("пара %q: количество работ и машин должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(machines)

		cases = append(cases, bench.Case{
			Jobs:         jobs,
			Machines:     machines,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
