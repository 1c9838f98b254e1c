package dgraph

import "jssp/internal/jssp"

// ft06Ops mirrors internal/jssp's own ft06 fixture; kept as a separate
// copy here rather than exported from internal/jssp, matching the
// teacher's habit (ts/ga/sa each carry their own small fixtures instead
// of sharing a test-only package).
var ft06Ops = [6][6][2]int{
	{{2, 1}, {0, 3}, {1, 6}, {3, 7}, {5, 3}, {4, 6}},
	{{1, 8}, {2, 5}, {4, 10}, {5, 10}, {0, 10}, {3, 4}},
	{{2, 5}, {3, 4}, {5, 8}, {0, 9}, {1, 1}, {4, 7}},
	{{1, 5}, {0, 5}, {2, 5}, {3, 3}, {4, 8}, {5, 9}},
	{{2, 9}, {1, 3}, {4, 5}, {5, 4}, {0, 3}, {3, 1}},
	{{1, 3}, {3, 3}, {5, 9}, {0, 10}, {4, 4}, {2, 1}},
}

func newFt06(seed int64) *jssp.Instance {
	ops := make([]jssp.Operation, 0, 36)
	for job, row := range ft06Ops {
		for opIdx, md := range row {
			ops = append(ops, jssp.Operation{Job: job, OpIndex: opIdx, Machine: md[0], Duration: md[1]})
		}
	}
	inst, err := jssp.NewInstance(6, 6, ops, seed)
	if err != nil {
		panic(err)
	}
	return inst
}

func identitySolution(inst *jssp.Instance) jssp.Solution {
	machines := make([][]int, inst.Machines)
	for m := range machines {
		perm := make([]int, inst.Jobs)
		for j := range perm {
			perm[j] = j
		}
		machines[m] = perm
	}
	return jssp.Solution{Machines: machines}
}
