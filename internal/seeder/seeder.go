// Package seeder implements the random semi-active construction
// heuristic: operations are drawn from their jobs in random order and
// inserted into their machine's sequence at the earliest feasible gap,
// producing a feasible (semi-active) starting solution without any tabu
// or memetic machinery involved.
package seeder

import (
	"math/rand"

	"jssp/internal/jssp"
)

// node is one operation waiting to be placed on its machine's doubly
// linked sequence.
type node struct {
	job      int
	duration int
	start    int
	next     *node
	prev     *node
}

func (n *node) end() int {
	return n.start + n.duration
}

// machine is one machine's sequence of operations, built by repeated
// earliest-gap insertion.
type machine struct {
	first *node
}

// insert places operation into the earliest gap at or after minTime
// that fits its duration, returning the start time it was given.
func (m *machine) insert(operation *node, minTime int) int {
	if m.first == nil {
		m.first = operation
		operation.start = minTime
		return operation.start
	}

	cur := m.first
	gapStart := 0
	for {
		if cur.start-gapStart >= operation.duration && cur.start-operation.duration >= minTime {
			if cur.prev != nil {
				cur.prev.next = operation
				operation.prev = cur.prev
				operation.start = max(operation.prev.end(), minTime)
			} else {
				m.first = operation
				operation.start = minTime
			}
			operation.next = cur
			cur.prev = operation
			return operation.start
		}
		if cur.next == nil {
			break
		}
		gapStart = cur.end()
		cur = cur.next
	}

	cur.next = operation
	operation.prev = cur
	operation.start = max(cur.end(), minTime)
	return operation.start
}

func (m *machine) sequence() []int {
	var seq []int
	for cur := m.first; cur != nil; cur = cur.next {
		seq = append(seq, cur.job)
	}
	return seq
}

// Random builds one feasible semi-active solution for inst by drawing
// jobs uniformly at random (skipping jobs already fully scheduled) and
// inserting each job's next operation into its machine at the earliest
// feasible gap. The returned Solution's Makespan is computed before
// returning, matching the original's generateRandomSolution, which never
// hands a heuristic solution to the search engine without one.
func Random(inst *jssp.Instance, rng *rand.Rand) jssp.Solution {
	eval, err := jssp.NewEvaluator(inst)
	if err != nil {
		panic("seeder: " + err.Error())
	}
	return randomWithEvaluator(inst, eval, rng)
}

// randomWithEvaluator is Random's construction step, factored out so
// Population can reuse one Evaluator's scratch buffers across n draws
// instead of allocating a fresh one per member.
func randomWithEvaluator(inst *jssp.Instance, eval *jssp.Evaluator, rng *rand.Rand) jssp.Solution {
	machines := make([]machine, inst.Machines)
	jobIndex := make([]int, inst.Jobs)
	jobMinTime := make([]int, inst.Jobs)

	remaining := inst.OperationCount()
	for remaining > 0 {
		job := rng.Intn(inst.Jobs)
		for jobIndex[job] >= inst.Machines {
			job = rng.Intn(inst.Jobs)
		}
		op := inst.Op(job, jobIndex[job])
		n := &node{job: job, duration: op.Duration}
		start := machines[op.Machine].insert(n, jobMinTime[job])
		jobMinTime[job] = start + op.Duration
		jobIndex[job]++
		remaining--
	}

	seqs := make([][]int, inst.Machines)
	for m := range machines {
		seqs[m] = machines[m].sequence()
	}
	sol := jssp.Solution{Machines: seqs}

	makespan, err := eval.ExactMakespan(sol)
	if err != nil {
		// The insertion loop above assigns every operation exactly once
		// in job order, so the result is always semi-active feasible;
		// a stall here would mean the construction itself is broken.
		panic("seeder: random construction produced an infeasible solution: " + err.Error())
	}
	sol.Makespan = makespan
	return sol
}

// Population builds n independent random semi-active solutions, for
// seeding the memetic algorithm's initial population.
func Population(inst *jssp.Instance, n int, rng *rand.Rand) []jssp.Solution {
	eval, err := jssp.NewEvaluator(inst)
	if err != nil {
		panic("seeder: " + err.Error())
	}
	pop := make([]jssp.Solution, n)
	for i := range pop {
		pop[i] = randomWithEvaluator(inst, eval, rng)
	}
	return pop
}
