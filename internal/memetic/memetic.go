// Package memetic implements the hybrid memetic algorithm: a population
// of feasible solutions evolved by longest-common-subsequence crossover,
// repair, tabu-search improvement of each child, and a quality+diversity
// replacement rule.
package memetic

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"jssp/internal/jssp"
	"jssp/internal/optresult"
	"jssp/internal/seeder"
	"jssp/internal/tabu"
)

const maxInt = int(^uint(0) >> 1)

// Solver — солвер меметического алгоритма для одного экземпляра задачи.
type Solver struct {
	inst *jssp.Instance
	eval *jssp.Evaluator
	cfg  Config
	rng  *rand.Rand
	ts   *tabu.Solver
}

// New возвращает новый Solver для inst, с валидацией конфигурации.
func New(inst *jssp.Instance, cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	eval, err := jssp.NewEvaluator(inst)
	if err != nil {
		return nil, err
	}
	ts, err := tabu.New(inst, tabu.DefaultConfig(), rng)
	if err != nil {
		return nil, err
	}
	return &Solver{inst: inst, eval: eval, cfg: cfg, rng: rng, ts: ts}, nil
}

// SetTabuParams переопределяет параметры внутреннего поиска с запретами,
// используемого для улучшения каждого потомка.
func (s *Solver) SetTabuParams(tt, d1, d2, sizeOverride int) {
	s.ts.SetTabuParams(tt, d1, d2, sizeOverride)
}

// Optimize runs the memetic loop from a freshly seeded random population
// for up to budget (soft deadline), stopping early if knownOptimum > 0
// is reached.
func (s *Solver) Optimize(ctx context.Context, budget time.Duration, knownOptimum int) (optresult.Result, error) {
	pop := seeder.Population(s.inst, s.cfg.PopulationSize, s.rng)
	return s.run(ctx, pop, budget, knownOptimum)
}

// OptimizeWithSeedPop is Optimize but starting from a caller-provided
// population instead of a fresh random one.
func (s *Solver) OptimizeWithSeedPop(ctx context.Context, seedPop []jssp.Solution, budget time.Duration, knownOptimum int) (optresult.Result, error) {
	pop := make([]jssp.Solution, len(seedPop))
	for i, sol := range seedPop {
		pop[i] = sol.Clone()
	}
	return s.run(ctx, pop, budget, knownOptimum)
}

// OptimizeIterationConstraint runs exactly maxIterations recombination
// rounds from a fresh random population, ignoring wall-clock time. This
// mirrors the original algorithm's own testing-only entry point and is
// useful here for the same reason: deterministic, iteration-bounded
// tests instead of a wall-clock budget.
func (s *Solver) OptimizeIterationConstraint(ctx context.Context, maxIterations int) (jssp.Solution, error) {
	pop := seeder.Population(s.inst, s.cfg.PopulationSize, s.rng)
	pop, best, err := s.improveInitial(ctx, pop, time.Now(), 0, 0)
	if err != nil {
		return best, err
	}

	for iter := 0; iter < maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		var improved jssp.Solution
		pop, improved, err = s.recombineRound(ctx, pop)
		if err != nil {
			return best, err
		}
		if improved.Makespan < best.Makespan {
			best = improved
		}
	}
	return best, nil
}

func (s *Solver) run(ctx context.Context, pop []jssp.Solution, budget time.Duration, knownOptimum int) (optresult.Result, error) {
	start := time.Now()

	pop, best, err := s.improveInitial(ctx, pop, start, budget, knownOptimum)
	history := []optresult.Point{{ElapsedSec: time.Since(start).Seconds(), Makespan: best.Makespan}}
	if err != nil {
		return s.result(best, 0, start, history), err
	}

	iterations := 0
	for time.Since(start) < budget && (knownOptimum <= 0 || best.Makespan != knownOptimum) {
		if err := ctx.Err(); err != nil {
			return s.result(best, iterations, start, history), err
		}
		var improved jssp.Solution
		pop, improved, err = s.recombineRound(ctx, pop)
		if err != nil {
			return s.result(best, iterations, start, history), err
		}
		iterations++
		if improved.Makespan < best.Makespan {
			best = improved
			history = append(history, optresult.Point{ElapsedSec: time.Since(start).Seconds(), Makespan: best.Makespan})
		}
	}
	return s.result(best, iterations, start, history), nil
}

func (s *Solver) result(best jssp.Solution, iterations int, start time.Time, history []optresult.Point) optresult.Result {
	return optresult.Result{
		Machines:   best.Machines,
		Makespan:   best.Makespan,
		Iterations: iterations,
		Duration:   time.Since(start),
		History:    history,
	}
}

// improveInitial tabu-improves every member of pop in place and returns
// the best solution seen. A soft deadline (budget<=0 means unlimited)
// and an optional knownOptimum bound how far into pop it gets: per the
// original's time_limit/known_optimum guard on this same loop, it
// should only stop early once elapsed time has reached budget or
// knownOptimum has already been matched — one source variant has this
// guard inverted, returning before the population finishes initializing
// whenever there is still time left, which is the bug, not the
// intended behavior.
func (s *Solver) improveInitial(ctx context.Context, pop []jssp.Solution, start time.Time, budget time.Duration, knownOptimum int) ([]jssp.Solution, jssp.Solution, error) {
	best := jssp.Solution{Makespan: maxInt}
	for i := range pop {
		if err := ctx.Err(); err != nil {
			return pop, best, err
		}
		if budget > 0 && time.Since(start) >= budget {
			break
		}
		if knownOptimum > 0 && best.Makespan == knownOptimum {
			break
		}
		improved, err := s.ts.OptimizeIter(ctx, pop[i], s.cfg.TSIterations)
		if err != nil {
			return pop, best, err
		}
		pop[i] = improved
		if improved.Makespan < best.Makespan {
			best = improved.Clone()
		}
	}
	return pop, best, nil
}

// recombineRound picks two distinct parents uniformly at random,
// produces two tabu-improved children via LCS crossover + repair, folds
// them into pop via the quality+diversity replacement rule, and reports
// the better of the two children (for the caller's best-so-far tracking).
func (s *Solver) recombineRound(ctx context.Context, pop []jssp.Solution) ([]jssp.Solution, jssp.Solution, error) {
	p1 := s.rng.Intn(len(pop))
	p2 := s.rng.Intn(len(pop))
	for p2 == p1 {
		p2 = s.rng.Intn(len(pop))
	}

	child1, child2 := s.recombine(pop[p1], pop[p2])

	improved1, err := s.ts.OptimizeIter(ctx, child1, s.cfg.TSIterations)
	if err != nil {
		return pop, jssp.Solution{Makespan: maxInt}, err
	}
	improved2, err := s.ts.OptimizeIter(ctx, child2, s.cfg.TSIterations)
	if err != nil {
		return pop, jssp.Solution{Makespan: maxInt}, err
	}

	best := improved1
	if improved2.Makespan < best.Makespan {
		best = improved2
	}

	pop = append(pop, improved1, improved2)
	pop = updatePopulation(pop, s.cfg.Beta)
	return pop, best, nil
}

// recombine applies LCS crossover per machine to produce two raw
// children, then repairs each into a feasible solution. The repair RNG
// draws are taken from the memetic engine's own generator so runs stay
// deterministic given a fixed seed.
func (s *Solver) recombine(parent1, parent2 jssp.Solution) (jssp.Solution, jssp.Solution) {
	m1 := make([][]int, s.inst.Machines)
	m2 := make([][]int, s.inst.Machines)
	for machine := 0; machine < s.inst.Machines; machine++ {
		c1, c2 := crossoverMachinePair(parent1.Machines[machine], parent2.Machines[machine])
		m1[machine] = c1
		m2[machine] = c2
	}
	child1 := jssp.Solution{Machines: m1}
	child2 := jssp.Solution{Machines: m2}
	child1.Makespan = s.eval.RepairAndMakespan(child1, s.rng)
	child2.Makespan = s.eval.RepairAndMakespan(child2, s.rng)
	return child1, child2
}
