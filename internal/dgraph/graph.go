package dgraph

import (
	"sort"

	"github.com/samber/lo"

	"jssp/internal/jssp"
)

// Graph is the mutable disjunctive graph for one solution. It exclusively
// owns all J*M nodes for the lifetime of one tabu optimization call.
type Graph struct {
	Nodes []Node
}

// Build runs the feasibility sweep of §4.1 over sol and, for every
// operation scheduled, materializes a node with its start time and
// reciprocal job/machine adjacency set. sol must be feasible; on an
// infeasible sol the sweep stalls and Build panics (jssp.Evaluator.ExactMakespan
// reports the same condition as ErrInfeasible) — callers that cannot
// guarantee feasibility should repair first.
func Build(inst *jssp.Instance, sol jssp.Solution) *Graph {
	n := inst.OperationCount()
	nodes := make([]Node, n)
	for job := 0; job < inst.Jobs; job++ {
		for opIdx := 0; opIdx < inst.Machines; opIdx++ {
			id := inst.NodeID(job, opIdx)
			op := inst.Op(job, opIdx)
			nodes[id] = Node{
				Job:      job,
				OpIndex:  opIdx,
				Machine:  op.Machine,
				Duration: op.Duration,
				JobPred:  NoNode,
				JobSucc:  NoNode,
				MachPred: NoNode,
				MachSucc: NoNode,
			}
			if opIdx > 0 {
				nodes[id].JobPred = inst.NodeID(job, opIdx-1)
			}
			if opIdx < inst.Machines-1 {
				nodes[id].JobSucc = inst.NodeID(job, opIdx+1)
			}
		}
	}

	machinePtr := make([]int, inst.Machines)
	jobPtr := make([]int, inst.Jobs)
	machineCompletion := make([]int, inst.Machines)
	jobCompletion := make([]int, inst.Jobs)
	lastOnMachine := make([]int, inst.Machines)
	for m := range lastOnMachine {
		lastOnMachine[m] = NoNode
	}

	remaining := n
	for remaining > 0 {
		progressed := false
		for m := 0; m < inst.Machines; m++ {
			if machinePtr[m] == len(sol.Machines[m]) {
				continue
			}
			job := sol.Machines[m][machinePtr[m]]
			opIdx := jobPtr[job]
			op := inst.Op(job, opIdx)
			if op.Machine != m {
				continue
			}
			id := inst.NodeID(job, opIdx)
			start := jobCompletion[job]
			if machineCompletion[m] > start {
				start = machineCompletion[m]
			}
			nodes[id].Start = start
			nodes[id].MachPred = lastOnMachine[m]
			if lastOnMachine[m] != NoNode {
				nodes[lastOnMachine[m]].MachSucc = id
			}
			lastOnMachine[m] = id

			end := start + op.Duration
			jobCompletion[job] = end
			machineCompletion[m] = end
			machinePtr[m]++
			jobPtr[job]++
			remaining--
			progressed = true
		}
		if !progressed {
			// Infeasible seed: caller's precondition violated. Mirrors
			// jssp.Evaluator.ExactMakespan's stall detection but the
			// graph builder has no error return in the teacher's own
			// idiom for this call shape (ts.h's generateDisjunctiveGraph
			// is noexcept-shaped); callers must repair beforehand.
			panic("dgraph: Build called with an infeasible solution (sweep stalled)")
		}
	}

	return &Graph{Nodes: nodes}
}

// ComputeLenToN recomputes the len_to_n label of every node: the length of
// the longest path from the node to a sink, exclusive of its own duration.
// Seeds are the true sinks — nodes with neither a job successor nor a
// machine successor — sorted by descending end time so that each node is
// settled before being relaxed into its predecessors (§4.2).
func (g *Graph) ComputeLenToN() {
	for i := range g.Nodes {
		g.Nodes[i].LenToN = 0
	}

	ids := lo.Filter(lo.Range(len(g.Nodes)), func(id int, _ int) bool {
		n := g.Nodes[id]
		return n.JobSucc == NoNode && n.MachSucc == NoNode
	})
	sort.Slice(ids, func(i, j int) bool {
		return g.Nodes[ids[i]].End() > g.Nodes[ids[j]].End()
	})

	for _, id := range ids {
		g.relax(id)
	}
}

// relax propagates node id's len_to_n backward into its predecessors,
// recursing whenever a predecessor's label is improved.
func (g *Graph) relax(id int) {
	n := g.Nodes[id]
	if n.MachPred != NoNode {
		p := n.MachPred
		if g.Nodes[p].LenToN < n.LenToN+n.Duration {
			g.Nodes[p].LenToN = n.LenToN + n.Duration
			g.relax(p)
		}
	}
	if n.JobPred != NoNode {
		p := n.JobPred
		if g.Nodes[p].LenToN < n.LenToN+n.Duration {
			g.Nodes[p].LenToN = n.LenToN + n.Duration
			g.relax(p)
		}
	}
}

// Makespan returns max over leaves l of (start(l)+duration(l)).
func (g *Graph) Makespan() int {
	makespan := 0
	for _, n := range g.Nodes {
		if n.JobSucc == NoNode && n.MachSucc == NoNode {
			if e := n.End(); e > makespan {
				makespan = e
			}
		}
	}
	return makespan
}

// LongestPath locates a source whose len_to_n+duration equals the
// makespan and walks forward, at each node preferring the machine
// successor over the job successor when both match the current label,
// terminating at a len_to_n==0 node (a sink). Returns the path as a
// sequence of arena indices.
func (g *Graph) LongestPath(makespan int) []int {
	start := NoNode
	for id, n := range g.Nodes {
		if n.OpIndex == 0 && n.LenToN+n.Duration == makespan {
			start = id
			break
		}
	}
	if start == NoNode {
		return nil
	}

	path := []int{start}
	for {
		cur := g.Nodes[path[len(path)-1]]
		if cur.LenToN == 0 {
			break
		}
		if cur.MachSucc != NoNode {
			succ := g.Nodes[cur.MachSucc]
			if succ.LenToN+succ.Duration == cur.LenToN {
				path = append(path, cur.MachSucc)
				continue
			}
		}
		if cur.JobSucc != NoNode {
			succ := g.Nodes[cur.JobSucc]
			if succ.LenToN+succ.Duration == cur.LenToN {
				path = append(path, cur.JobSucc)
				continue
			}
		}
		// Unreachable for a consistent graph with a feasible makespan.
		break
	}
	return path
}

// BlockList folds path into maximal same-machine runs of length >= 2.
func BlockList(g *Graph, path []int) [][]int {
	var blocks [][]int
	var block []int
	for _, id := range path {
		if len(block) == 0 || g.Nodes[id].Machine == g.Nodes[block[len(block)-1]].Machine {
			block = append(block, id)
		} else if len(block) > 1 {
			blocks = append(blocks, block)
			block = []int{id}
		} else {
			block = []int{id}
		}
	}
	if len(block) > 1 {
		blocks = append(blocks, block)
	}
	return blocks
}

// LeftShift recomputes earliest feasible start times after a topology
// change by zeroing all starts and running a BFS forward propagation from
// machine-head nodes (MachPred == NoNode), pushing start' = max(start',
// pred.end) along both MachSucc and JobSucc. Returns the new makespan.
func (g *Graph) LeftShift() int {
	for i := range g.Nodes {
		g.Nodes[i].Start = 0
		g.Nodes[i].LenToN = 0
	}

	queue := make([]int, 0, len(g.Nodes))
	for id, n := range g.Nodes {
		if n.MachPred == NoNode {
			queue = append(queue, id)
		}
	}

	for pos := 0; pos < len(queue); pos++ {
		id := queue[pos]
		n := g.Nodes[id]
		end := n.End()
		if n.MachSucc != NoNode && g.Nodes[n.MachSucc].Start < end {
			g.Nodes[n.MachSucc].Start = end
			queue = append(queue, n.MachSucc)
		}
		if n.JobSucc != NoNode && g.Nodes[n.JobSucc].Start < end {
			g.Nodes[n.JobSucc].Start = end
			queue = append(queue, n.JobSucc)
		}
	}

	return g.Makespan()
}
