// Package tabu реализует алгоритм поиска с запретами (tabu search) над
// дизъюнктивным графом: на каждой итерации находит критический путь,
// сворачивает его в блоки одной машины, генерирует окрестность N7 для
// каждого блока и выбирает ход по правилу аспирации / лучшего
// не табуированного / случайного (диверсификация).
package tabu

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"jssp/internal/dgraph"
	"jssp/internal/jssp"
	"jssp/internal/neighbourhood"
	"jssp/internal/optresult"
	"jssp/internal/tabulist"
)

// Solver — поисковик с запретами для одного экземпляра задачи.
type Solver struct {
	inst *jssp.Instance
	eval *jssp.Evaluator
	cfg  Config
	rng  *rand.Rand
}

// New возвращает новый Solver для inst, с валидацией конфигурации и
// проверкой, что генератор случайных чисел инициализирован.
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
	return &Solver{inst: inst, eval: eval, cfg: cfg, rng: rng}, nil
}

// SetTabuParams переопределяет параметры формулы тенуры и ёмкость
// табу-списка для последующих вызовов OptimizeIter/OptimizeTime.
func (s *Solver) SetTabuParams(tt, d1, d2, sizeOverride int) {
	s.cfg.TT, s.cfg.D1, s.cfg.D2, s.cfg.SizeOverride = tt, d1, d2, sizeOverride
}

// state holds the per-call mutable search state so OptimizeIter and
// OptimizeTime can share the iteration body.
type state struct {
	graph   *dgraph.Graph
	tabu    *tabulist.List
	current jssp.Solution
	best    jssp.Solution
}

// newState builds the per-call search state for seed. It never trusts
// seed.Makespan as supplied by the caller: the disjunctive graph is the
// source of truth, so current/best are stamped with the makespan the
// freshly built graph actually reports.
func (s *Solver) newState(seed jssp.Solution) *state {
	tl := tabulist.New(s.inst.Jobs, s.inst.Machines, s.rng)
	tl.SetTenureParams(s.cfg.TT, s.cfg.D1, s.cfg.D2)
	tl.SetCapacity(s.cfg.SizeOverride)

	graph := dgraph.Build(s.inst, seed)
	graph.ComputeLenToN()
	makespan := graph.Makespan()

	current := seed.Clone()
	current.Makespan = makespan
	return &state{
		graph:   graph,
		tabu:    tl,
		current: current,
		best:    current.Clone(),
	}
}

// OptimizeIter improves seed for exactly maxIterations tabu iterations
// and returns the best solution found, for embedding inside the memetic
// loop. seed must be feasible.
func (s *Solver) OptimizeIter(ctx context.Context, seed jssp.Solution, maxIterations int) (jssp.Solution, error) {
	st := s.newState(seed)
	for iter := 0; iter < maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return st.best, err
		}
		s.iterate(st)
		if st.current.Makespan < st.best.Makespan {
			st.best = st.current.Clone()
		}
	}
	return st.best, nil
}

// OptimizeTime runs tabu search for up to the given budget (or until
// knownOptimum is reached, if knownOptimum > 0), returning the result
// and its convergence history. This is the standalone/benchmark entry
// point; OptimizeIter is the one the memetic loop uses internally.
func (s *Solver) OptimizeTime(ctx context.Context, seed jssp.Solution, budget time.Duration, knownOptimum int) (optresult.Result, error) {
	start := time.Now()
	st := s.newState(seed)

	history := []optresult.Point{{ElapsedSec: 0, Makespan: st.best.Makespan}}
	iterations := 0
	for time.Since(start) < budget && (knownOptimum <= 0 || st.best.Makespan != knownOptimum) {
		if err := ctx.Err(); err != nil {
			return s.result(st, iterations, start, history), err
		}
		s.iterate(st)
		iterations++
		if st.current.Makespan < st.best.Makespan {
			st.best = st.current.Clone()
			history = append(history, optresult.Point{
				ElapsedSec: time.Since(start).Seconds(),
				Makespan:   st.best.Makespan,
			})
		}
	}
	return s.result(st, iterations, start, history), nil
}

func (s *Solver) result(st *state, iterations int, start time.Time, history []optresult.Point) optresult.Result {
	return optresult.Result{
		Machines:   st.best.Machines,
		Makespan:   st.best.Makespan,
		Iterations: iterations,
		Duration:   time.Since(start),
		History:    history,
	}
}

// iterate performs one tabu-search step per §4.5: relabel, find the
// longest path, fold into blocks, generate N7 candidates, select and
// apply one move, update the tabu list.
func (s *Solver) iterate(st *state) {
	st.graph.ComputeLenToN()
	makespan := st.graph.Makespan()
	path := st.graph.LongestPath(makespan)
	if len(path) == 0 {
		return
	}
	blocks := dgraph.BlockList(st.graph, path)
	if len(blocks) == 0 {
		// Empty N7 neighbourhood: not an error, just nothing to improve
		// this iteration.
		return
	}

	var candidates []neighbourhood.Neighbour
	for _, block := range blocks {
		machine := st.graph.Nodes[block[0]].Machine
		candidates = append(candidates, neighbourhood.GenerateFromBlock(st.graph, st.current.Machines[machine], block)...)
	}
	if len(candidates) == 0 {
		return
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ApproxMakespan < candidates[j].ApproxMakespan
	})

	for _, cand := range candidates {
		if cand.ApproxMakespan < st.best.Makespan {
			exact := s.exactMakespanOfCandidate(st.current, cand)
			isTabu := st.tabu.IsTabu(cand.Machine, cand.StartIndex, cand.EndIndex, cand.Sequence)
			if exact >= st.best.Makespan && isTabu {
				continue
			}
			s.applyAndRecord(st, cand)
			return
		}
		if !st.tabu.IsTabu(cand.Machine, cand.StartIndex, cand.EndIndex, cand.Sequence) {
			s.applyAndRecord(st, cand)
			return
		}
	}

	// All candidates tabu and none aspiring: diversify with a uniformly
	// random move. This is the sole diversification mechanism.
	cand := candidates[s.rng.Intn(len(candidates))]
	s.applyAndRecord(st, cand)
}

// exactMakespanOfCandidate evaluates the exact makespan of current with
// only cand's machine replaced by cand's sequence, without mutating
// current or the live graph.
func (s *Solver) exactMakespanOfCandidate(current jssp.Solution, cand neighbourhood.Neighbour) int {
	candidate := current.Clone()
	candidate.Machines[cand.Machine] = cand.Sequence
	exact, err := s.eval.ExactMakespan(candidate)
	if err != nil {
		// N7 moves preserve feasibility by construction; a stall here
		// would indicate a graph/move-generation bug, not a recoverable
		// runtime condition, but we treat it conservatively as "does
		// not aspire" rather than panicking mid-search.
		return maxInt
	}
	return exact
}

const maxInt = int(^uint(0) >> 1)

// applyAndRecord rewires the graph for cand, left-shifts it to get the
// new makespan, commits it into current, and inserts cand into the tabu
// list.
func (s *Solver) applyAndRecord(st *state, cand neighbourhood.Neighbour) {
	applyMove(s.inst, st.graph, st.current, cand)
	newMakespan := st.graph.LeftShift()

	st.tabu.Insert(cand.Machine, cand.StartIndex, cand.EndIndex, cand.Sequence, cand.ApproxMakespan, st.best.Makespan)

	st.current.Machines[cand.Machine] = cand.Sequence
	st.current.Makespan = newMakespan
}
