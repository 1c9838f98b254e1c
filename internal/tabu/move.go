package tabu

import (
	"jssp/internal/dgraph"
	"jssp/internal/jssp"
	"jssp/internal/neighbourhood"
)

// applyMove rewires machPred/machSucc for the two nodes a move's
// StartIndex/EndIndex refer to in cur's *current* (pre-move) machine
// permutation, per the move's discriminant. It does not touch start
// times or len_to_n — callers must follow with Graph.LeftShift.
func applyMove(inst *jssp.Instance, g *dgraph.Graph, cur jssp.Solution, n neighbourhood.Neighbour) {
	job1 := cur.Machines[n.Machine][n.StartIndex]
	job2 := cur.Machines[n.Machine][n.EndIndex]
	n1 := inst.NodeID(job1, inst.OpIndexOnMachine(job1, n.Machine))
	n2 := inst.NodeID(job2, inst.OpIndexOnMachine(job2, n.Machine))

	switch n.Kind {
	case neighbourhood.Forward:
		rewireForward(g, n1, n2)
	case neighbourhood.Backward:
		rewireBackward(g, n1, n2)
	default:
		rewireAdjacent(g, n1, n2)
	}
}

// rewireForward splices n1 out of its current machine position and
// reinserts it directly after n2.
func rewireForward(g *dgraph.Graph, n1, n2 int) {
	buffMp := g.Nodes[n1].MachPred
	buffMs := g.Nodes[n1].MachSucc

	g.Nodes[n1].MachPred = n2
	g.Nodes[n1].MachSucc = g.Nodes[n2].MachSucc
	if g.Nodes[n1].MachSucc != dgraph.NoNode {
		g.Nodes[g.Nodes[n1].MachSucc].MachPred = n1
	}
	g.Nodes[n2].MachSucc = n1

	if buffMp != dgraph.NoNode {
		g.Nodes[buffMp].MachSucc = buffMs
	}
	if buffMs != dgraph.NoNode {
		g.Nodes[buffMs].MachPred = buffMp
	}
}

// rewireBackward splices n2 out of its current machine position and
// reinserts it directly before n1.
func rewireBackward(g *dgraph.Graph, n1, n2 int) {
	buffMp := g.Nodes[n2].MachPred
	buffMs := g.Nodes[n2].MachSucc

	g.Nodes[n2].MachPred = g.Nodes[n1].MachPred
	g.Nodes[n2].MachSucc = n1
	if g.Nodes[n2].MachPred != dgraph.NoNode {
		g.Nodes[g.Nodes[n2].MachPred].MachSucc = n2
	}
	g.Nodes[n1].MachPred = n2

	if buffMp != dgraph.NoNode {
		g.Nodes[buffMp].MachSucc = buffMs
	}
	if buffMs != dgraph.NoNode {
		g.Nodes[buffMs].MachPred = buffMp
	}
}

// rewireAdjacent swaps the two directly-adjacent nodes n1, n2 in place.
func rewireAdjacent(g *dgraph.Graph, n1, n2 int) {
	buffMp := g.Nodes[n1].MachPred

	g.Nodes[n1].MachSucc = g.Nodes[n2].MachSucc
	if g.Nodes[n1].MachSucc != dgraph.NoNode {
		g.Nodes[g.Nodes[n1].MachSucc].MachPred = n1
	}
	g.Nodes[n1].MachPred = n2

	g.Nodes[n2].MachPred = buffMp
	g.Nodes[n2].MachSucc = n1
	if buffMp != dgraph.NoNode {
		g.Nodes[buffMp].MachSucc = n2
	}
}
