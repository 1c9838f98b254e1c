package jssp

// ft06 is the classic Fisher & Thompson 6x6 benchmark instance; its known
// optimal makespan is 55. Encoded as (machine, duration) pairs per job, in
// operation order, matching the text format described in the external
// interfaces section.
var ft06Ops = [6][6][2]int{
	{{2, 1}, {0, 3}, {1, 6}, {3, 7}, {5, 3}, {4, 6}},
	{{1, 8}, {2, 5}, {4, 10}, {5, 10}, {0, 10}, {3, 4}},
	{{2, 5}, {3, 4}, {5, 8}, {0, 9}, {1, 1}, {4, 7}},
	{{1, 5}, {0, 5}, {2, 5}, {3, 3}, {4, 8}, {5, 9}},
	{{2, 9}, {1, 3}, {4, 5}, {5, 4}, {0, 3}, {3, 1}},
	{{1, 3}, {3, 3}, {5, 9}, {0, 10}, {4, 4}, {2, 1}},
}

const ft06Optimum = 55

func newFt06(seed int64) *Instance {
	ops := make([]Operation, 0, 36)
	for job, row := range ft06Ops {
		for opIdx, md := range row {
			ops = append(ops, Operation{Job: job, OpIndex: opIdx, Machine: md[0], Duration: md[1]})
		}
	}
	inst, err := NewInstance(6, 6, ops, seed)
	if err != nil {
		panic(err)
	}
	return inst
}

// identityMachines returns, for each machine, the job permutation
// [0,1,...,Jobs-1]. Every machine processes the jobs in the same order, so
// this starting point used by several tests is always feasible without
// repair.
func identityMachines(inst *Instance) [][]int {
	machines := make([][]int, inst.Machines)
	for m := range machines {
		perm := make([]int, inst.Jobs)
		for j := range perm {
			perm[j] = j
		}
		machines[m] = perm
	}
	return machines
}
