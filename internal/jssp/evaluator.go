package jssp

import (
	"errors"
	"math/rand"
)

// ErrInfeasible is returned by ExactMakespan when a full sweep over all
// machines schedules nothing further: the precondition that sol is
// feasible has been violated by the caller. This is a programmer error,
// not an expected runtime condition — see RepairAndMakespan for the
// variant that instead repairs the solution.
var ErrInfeasible = errors.New("jssp: solution is infeasible (sweep stalled)")

// Evaluator computes exact makespans via forward simulation. Its scratch
// buffers are sized once and reused across calls, per the preallocation
// guidance for per-iteration hot paths.
type Evaluator struct {
	inst *Instance

	machineCompletion []int
	machinePtr        []int
	jobCompletion     []int
	jobPtr            []int
}

// NewEvaluator returns a new Evaluator for inst.
func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{
		inst:              inst,
		machineCompletion: make([]int, inst.Machines),
		machinePtr:        make([]int, inst.Machines),
		jobCompletion:     make([]int, inst.Jobs),
		jobPtr:            make([]int, inst.Jobs),
	}, nil
}

// ExactMakespan performs the forward-simulation sweep of §4.1: machines are
// swept in order; whenever a machine's next-to-schedule job's next
// operation targets that machine, it is scheduled at the max of the job's
// and machine's current completion. Precondition: sol is feasible. A full
// sweep that schedules nothing is treated as a programmer error and
// reported as ErrInfeasible rather than looping forever.
func (e *Evaluator) ExactMakespan(sol Solution) (int, error) {
	if err := ValidateMachines(sol, e.inst); err != nil {
		return 0, err
	}

	for m := range e.machineCompletion {
		e.machineCompletion[m] = 0
		e.machinePtr[m] = 0
	}
	for j := range e.jobCompletion {
		e.jobCompletion[j] = 0
		e.jobPtr[j] = 0
	}

	remaining := e.inst.OperationCount()
	for remaining > 0 {
		progressed := false
		for m := 0; m < e.inst.Machines; m++ {
			if e.machinePtr[m] == len(sol.Machines[m]) {
				continue
			}
			job := sol.Machines[m][e.machinePtr[m]]
			op := e.inst.Op(job, e.jobPtr[job])
			if op.Machine != m {
				continue
			}
			start := e.jobCompletion[job]
			if e.machineCompletion[m] > start {
				start = e.machineCompletion[m]
			}
			end := start + op.Duration
			e.jobCompletion[job] = end
			e.machineCompletion[m] = end
			e.machinePtr[m]++
			e.jobPtr[job]++
			remaining--
			progressed = true
		}
		if !progressed {
			return 0, ErrInfeasible
		}
	}

	makespan := 0
	for _, c := range e.machineCompletion {
		if c > makespan {
			makespan = c
		}
	}
	return makespan, nil
}

// RepairAndMakespan mutates sol.Machines into a feasible solution and
// returns its makespan, per §4.1's repair procedure: on a stalled sweep, a
// random job among those with an unscheduled operation is relocated on its
// target machine to the current scan position, preserving the relative
// order of the others.
func (e *Evaluator) RepairAndMakespan(sol Solution, rng *rand.Rand) int {
	for m := range e.machineCompletion {
		e.machineCompletion[m] = 0
		e.machinePtr[m] = 0
	}
	for j := range e.jobCompletion {
		e.jobCompletion[j] = 0
		e.jobPtr[j] = 0
	}

	openJobs := make([]int, 0, e.inst.Jobs)

	remaining := e.inst.OperationCount()
	stallStreak := 0
	for remaining > 0 {
		progressed := false
		for m := 0; m < e.inst.Machines; m++ {
			if e.machinePtr[m] == len(sol.Machines[m]) {
				continue
			}
			job := sol.Machines[m][e.machinePtr[m]]
			op := e.inst.Op(job, e.jobPtr[job])
			if op.Machine != m {
				continue
			}
			start := e.jobCompletion[job]
			if e.machineCompletion[m] > start {
				start = e.machineCompletion[m]
			}
			end := start + op.Duration
			e.jobCompletion[job] = end
			e.machineCompletion[m] = end
			e.machinePtr[m]++
			e.jobPtr[job]++
			remaining--
			progressed = true
			stallStreak = 0
		}
		if !progressed {
			stallStreak++
		}
		if stallStreak > e.inst.Machines {
			openJobs = openJobs[:0]
			for j := 0; j < e.inst.Jobs; j++ {
				if e.jobPtr[j] < e.inst.Machines {
					openJobs = append(openJobs, j)
				}
			}
			job := openJobs[rng.Intn(len(openJobs))]
			op := e.inst.Op(job, e.jobPtr[job])
			relocate(sol.Machines[op.Machine], job, e.machinePtr[op.Machine])
			stallStreak = 0
		}
	}

	makespan := 0
	for _, c := range e.machineCompletion {
		if c > makespan {
			makespan = c
		}
	}
	sol.Makespan = makespan
	return makespan
}

// relocate moves job from its current position in seq to position pos,
// preserving the relative order of the remaining elements.
func relocate(seq []int, job, pos int) {
	from := -1
	for i, v := range seq {
		if v == job {
			from = i
			break
		}
	}
	if from == pos {
		return
	}
	if from < pos {
		copy(seq[from:pos], seq[from+1:pos+1])
	} else {
		copy(seq[pos+1:from+1], seq[pos:from])
	}
	seq[pos] = job
}
