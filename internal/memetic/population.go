package memetic

import (
	"sort"

	"github.com/samber/lo"

	"jssp/internal/jssp"
)

// similarityDegree is the worst-case (most similar) match of pop[idx]
// against every other member: the sum, over all machines, of the LCS
// length between pop[idx]'s and that member's permutation, maximized
// over members.
func similarityDegree(pop []jssp.Solution, idx int) int {
	best := 0
	for j, other := range pop {
		if j == idx {
			continue
		}
		sum := 0
		for m := range pop[idx].Machines {
			sum += len(LCS(pop[idx].Machines[m], other.Machines[m]))
		}
		if sum > best {
			best = sum
		}
	}
	return best
}

// normalize maps x in [lo,hi] to a score in [0,1) that is
// (hi-lo)/(hi-lo+1), just under 1, at x==lo and 0 at x==hi; the +1 keeps
// the denominator non-zero when hi==lo. Used both for makespan (lower is
// better) and similarity (lower is better, i.e. more diverse).
func normalize(hi, low, x int) float64 {
	return float64(hi-x) / float64(hi-low+1)
}

// qualityScore blends the makespan-quality and diversity normalizations
// with weight beta, following the β·A(makespan) + (1−β)·A(similarity)
// composite from the population replacement rule.
func qualityScore(beta float64, makespan, similarity, maxMakespan, minMakespan, maxSimilarity, minSimilarity int) float64 {
	return beta*normalize(maxMakespan, minMakespan, makespan) +
		(1-beta)*normalize(maxSimilarity, minSimilarity, similarity)
}

// updatePopulation takes a population of size P+2 (P members plus two
// freshly inserted children) and returns it trimmed back to P,
// discarding the two lowest-quality members. The two removal indices
// are always applied in descending order, regardless of which one was
// found first — erasing the higher index first is what keeps the lower
// index valid for the second erase; getting this backwards is a known
// pitfall of this replacement rule.
func updatePopulation(pop []jssp.Solution, beta float64) []jssp.Solution {
	similarities := make([]int, len(pop))
	for i := range pop {
		similarities[i] = similarityDegree(pop, i)
	}

	maxSol := lo.MaxBy(pop, func(item, max jssp.Solution) bool { return item.Makespan > max.Makespan })
	minSol := lo.MinBy(pop, func(item, min jssp.Solution) bool { return item.Makespan < min.Makespan })
	maxSimilarity := lo.Max(similarities)
	minSimilarity := lo.Min(similarities)

	type scored struct {
		quality float64
		index   int
	}
	scores := make([]scored, len(pop))
	for i := range pop {
		scores[i] = scored{
			quality: qualityScore(beta, pop[i].Makespan, similarities[i], maxSol.Makespan, minSol.Makespan, maxSimilarity, minSimilarity),
			index:   i,
		}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].quality < scores[j].quality })

	lowIdx, highIdx := scores[0].index, scores[1].index
	if lowIdx > highIdx {
		lowIdx, highIdx = highIdx, lowIdx
	}
	pop = append(pop[:highIdx], pop[highIdx+1:]...)
	pop = append(pop[:lowIdx], pop[lowIdx+1:]...)
	return pop
}
