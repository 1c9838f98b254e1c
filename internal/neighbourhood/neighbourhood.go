// Package neighbourhood generates the N7 neighbourhood of a solution: the
// set of moves that can improve a critical block of a longest path without
// rebuilding the whole disjunctive graph. Each move relocates one operation
// of a block to another position inside that block on one machine's
// sequence (for two neighbouring operations, a swap), and its approximate
// makespan is computed from two small local arrays, not from a full
// re-evaluation.
package neighbourhood

import (
	"jssp/internal/dgraph"
)

// Discriminant records which splice shape produced a Neighbour, so the
// tabu engine knows how to rewire the disjunctive graph for it without
// re-deriving it from the index pair.
type Discriminant int

const (
	Forward Discriminant = iota
	Backward
	Adjacent
)

// Neighbour is one candidate move: machine's sequence with the job at
// StartIndex moved directly behind the job at EndIndex (Forward), or the
// job at EndIndex moved directly in front of the job at StartIndex
// (Backward); Adjacent marks the swap of two neighbouring jobs. It carries
// the approximate makespan that move would produce.
type Neighbour struct {
	Sequence       []int
	Machine        int
	ApproxMakespan int
	StartIndex     int
	EndIndex       int
	Kind           Discriminant
}

// GenerateFromBlock returns every N7 move for one maximal same-machine
// run of the current longest path. block holds dgraph arena indices, in
// path order, all sharing one machine.
func GenerateFromBlock(g *dgraph.Graph, machSeq []int, block []int) []Neighbour {
	machine := g.Nodes[block[0]].Machine
	startIndex := indexOfJob(machSeq, g.Nodes[block[0]].Job)

	var out []Neighbour
	if len(block) == 2 {
		out = append(out, forwardSwap(g, machSeq, startIndex, 0, 1, machine, block))
		return out
	}

	for u := 1; u < len(block)-1; u++ {
		if checkForwardSwap(g, block[u], block[len(block)-1]) {
			out = append(out, forwardSwap(g, machSeq, startIndex, u, len(block)-1, machine, block))
		}
	}
	for v := 1; v < len(block); v++ {
		if checkForwardSwap(g, block[0], block[v]) {
			out = append(out, forwardSwap(g, machSeq, startIndex, 0, v, machine, block))
		}
	}
	for v := 1; v < len(block)-1; v++ {
		if checkBackwardSwap(g, block[0], block[v]) {
			out = append(out, backwardSwap(g, machSeq, startIndex, 0, v, machine, block))
		}
	}
	for u := 0; u < len(block)-1; u++ {
		if checkBackwardSwap(g, block[u], block[len(block)-1]) {
			out = append(out, backwardSwap(g, machSeq, startIndex, u, len(block)-1, machine, block))
		}
	}
	return out
}

func indexOfJob(machSeq []int, job int) int {
	for i, j := range machSeq {
		if j == job {
			return i
		}
	}
	return -1
}

// checkForwardSwap reports whether moving u behind v cannot worsen the
// path length through u's job successor: either u has none, or v already
// finishes at least as late as u's job successor would have required.
func checkForwardSwap(g *dgraph.Graph, u, v int) bool {
	un := g.Nodes[u]
	if un.JobSucc == dgraph.NoNode {
		return true
	}
	js := g.Nodes[un.JobSucc]
	vn := g.Nodes[v]
	return vn.LenToN+vn.Duration >= js.LenToN+js.Duration
}

// checkBackwardSwap is the symmetric precondition for moving v before u.
func checkBackwardSwap(g *dgraph.Graph, u, v int) bool {
	vn := g.Nodes[v]
	if vn.JobPred == dgraph.NoNode {
		return true
	}
	jp := g.Nodes[vn.JobPred]
	un := g.Nodes[u]
	return un.Start+un.Duration >= jp.Start+jp.Duration
}

func cloneAndMoveForward(seq []int, startIndex, u, v int) []int {
	out := make([]int, len(seq))
	copy(out, seq)
	item := out[startIndex+u]
	copy(out[startIndex+u:startIndex+v], out[startIndex+u+1:startIndex+v+1])
	out[startIndex+v] = item
	return out
}

func cloneAndMoveBackward(seq []int, startIndex, u, v int) []int {
	out := make([]int, len(seq))
	copy(out, seq)
	item := out[startIndex+v]
	copy(out[startIndex+u+1:startIndex+v+1], out[startIndex+u:startIndex+v])
	out[startIndex+u] = item
	return out
}

// forwardSwap moves the block-relative node u behind node v (u < v),
// approximating the resulting makespan from local len_to_i/len_from_i
// arrays over just the [u,v] window of the block, per the original
// tabu-search derivation.
func forwardSwap(g *dgraph.Graph, machSeq []int, startIndex, u, v, machine int, block []int) Neighbour {
	sequence := cloneAndMoveForward(machSeq, startIndex, u, v)

	size := v - u + 1
	lenToI := make([]int, size)
	lenFromI := make([]int, size)

	jobPredEnd := func(id int) int {
		n := g.Nodes[id]
		if n.JobPred == dgraph.NoNode {
			return 0
		}
		return g.Nodes[n.JobPred].End()
	}
	jobSuccLabel := func(id int) int {
		n := g.Nodes[id]
		if n.JobSucc == dgraph.NoNode {
			return 0
		}
		succ := g.Nodes[n.JobSucc]
		return succ.LenToN + succ.Duration
	}
	machPredEnd := func(id int) int {
		n := g.Nodes[id]
		if n.MachPred == dgraph.NoNode {
			return 0
		}
		return g.Nodes[n.MachPred].End()
	}
	machSuccLabel := func(id int) int {
		n := g.Nodes[id]
		if n.MachSucc == dgraph.NoNode {
			return 0
		}
		succ := g.Nodes[n.MachSucc]
		return succ.LenToN + succ.Duration
	}

	lenToI[1] = max(jobPredEnd(block[u+1]), machPredEnd(block[u]))
	for w := 2; w < size; w++ {
		lenToI[w] = max(jobPredEnd(block[u+w]), lenToI[w-1]+g.Nodes[block[u+w-1]].Duration)
	}
	lenToI[0] = max(jobPredEnd(block[u]), lenToI[size-1]+g.Nodes[block[v]].Duration)

	lenFromI[0] = max(jobSuccLabel(block[u]), machSuccLabel(block[v])) + g.Nodes[block[u]].Duration
	lenFromI[size-1] = max(jobSuccLabel(block[v]), lenFromI[0]) + g.Nodes[block[v]].Duration
	for w := size - 2; w > 0; w-- {
		lenFromI[w] = max(jobSuccLabel(block[u+w]), lenFromI[w+1]) + g.Nodes[block[u+w]].Duration
	}

	approx := 0
	for i := 0; i < size; i++ {
		approx = max(approx, lenToI[i]+lenFromI[i])
	}

	kind := Forward
	if v-u == 1 {
		kind = Adjacent
	}
	return Neighbour{
		Sequence:       sequence,
		Machine:        machine,
		ApproxMakespan: approx,
		StartIndex:     startIndex + u,
		EndIndex:       startIndex + v,
		Kind:           kind,
	}
}

// backwardSwap moves the block-relative node v before node u (u < v),
// mirroring forwardSwap.
func backwardSwap(g *dgraph.Graph, machSeq []int, startIndex, u, v, machine int, block []int) Neighbour {
	sequence := cloneAndMoveBackward(machSeq, startIndex, u, v)

	size := v - u + 1
	lenToI := make([]int, size)
	lenFromI := make([]int, size)

	jobPredEnd := func(id int) int {
		n := g.Nodes[id]
		if n.JobPred == dgraph.NoNode {
			return 0
		}
		return g.Nodes[n.JobPred].End()
	}
	jobSuccLabel := func(id int) int {
		n := g.Nodes[id]
		if n.JobSucc == dgraph.NoNode {
			return 0
		}
		succ := g.Nodes[n.JobSucc]
		return succ.LenToN + succ.Duration
	}
	machPredEnd := func(id int) int {
		n := g.Nodes[id]
		if n.MachPred == dgraph.NoNode {
			return 0
		}
		return g.Nodes[n.MachPred].End()
	}
	machSuccLabel := func(id int) int {
		n := g.Nodes[id]
		if n.MachSucc == dgraph.NoNode {
			return 0
		}
		succ := g.Nodes[n.MachSucc]
		return succ.LenToN + succ.Duration
	}

	lenToI[size-1] = max(jobPredEnd(block[v]), machPredEnd(block[u]))
	lenToI[0] = max(jobPredEnd(block[u]), lenToI[size-1]+g.Nodes[block[v]].Duration)
	for w := 1; w < size-1; w++ {
		lenToI[w] = max(jobPredEnd(block[u+w]), lenToI[w-1]+g.Nodes[block[u+w-1]].Duration)
	}

	l := size - 2
	lenFromI[l] = max(jobSuccLabel(block[u+l]), machSuccLabel(block[v])) + g.Nodes[block[u+l]].Duration
	for w := size - 3; w >= 0; w-- {
		lenFromI[w] = max(jobSuccLabel(block[u+w]), lenFromI[w+1]) + g.Nodes[block[u+w]].Duration
	}
	lenFromI[size-1] = max(jobSuccLabel(block[v]), lenFromI[0]) + g.Nodes[block[v]].Duration

	approx := 0
	for i := 0; i < size; i++ {
		approx = max(approx, lenToI[i]+lenFromI[i])
	}

	kind := Backward
	if v-u == 1 {
		kind = Adjacent
	}
	return Neighbour{
		Sequence:       sequence,
		Machine:        machine,
		ApproxMakespan: approx,
		StartIndex:     startIndex + u,
		EndIndex:       startIndex + v,
		Kind:           kind,
	}
}
