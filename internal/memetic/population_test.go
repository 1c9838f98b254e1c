package memetic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jssp/internal/jssp"
)

func solWith(makespan int, machines [][]int) jssp.Solution {
	return jssp.Solution{Makespan: makespan, Machines: machines}
}

func TestSimilarityDegree_IdenticalMemberScoresMaximum(t *testing.T) {
	perm := []int{0, 1, 2, 3}
	pop := []jssp.Solution{
		solWith(10, [][]int{perm}),
		solWith(12, [][]int{perm}),
		solWith(20, [][]int{{3, 2, 1, 0}}),
	}
	// pop[0] and pop[1] are identical permutations, so pop[0]'s worst-case
	// (highest) similarity match is the full-length LCS against pop[1].
	assert.Equal(t, len(perm), similarityDegree(pop, 0))
}

func TestNormalize_IsNearOneAtLowAndDecreasesTowardHigh(t *testing.T) {
	// (hi-lo)/(hi-lo+1): the +1 in the denominator keeps x==lo just under 1.
	assert.Equal(t, 50.0/51.0, normalize(100, 50, 50))
	low := normalize(100, 50, 60)
	high := normalize(100, 50, 90)
	assert.True(t, low > high, "normalize should decrease as x grows toward hi")
}

func TestQualityScore_WeightsMakespanAndDiversity(t *testing.T) {
	// beta=1 ignores diversity entirely: quality should equal the
	// makespan-only normalization regardless of similarity inputs.
	q1 := qualityScore(1.0, 60, 999, 100, 50, 5, 0)
	q2 := qualityScore(1.0, 60, 0, 100, 50, 5, 0)
	assert.Equal(t, q1, q2)

	// beta=0 ignores makespan entirely.
	q3 := qualityScore(0.0, 999, 3, 100, 50, 5, 0)
	q4 := qualityScore(0.0, 1, 3, 100, 50, 5, 0)
	assert.Equal(t, q3, q4)
}

func TestUpdatePopulation_TrimsBackToOriginalSize(t *testing.T) {
	pop := []jssp.Solution{
		solWith(50, [][]int{{0, 1, 2, 3}}),
		solWith(60, [][]int{{1, 0, 2, 3}}),
		solWith(70, [][]int{{2, 1, 0, 3}}),
		solWith(80, [][]int{{3, 1, 2, 0}}),
		// two freshly inserted children
		solWith(90, [][]int{{0, 2, 1, 3}}),
		solWith(95, [][]int{{3, 2, 1, 0}}),
	}
	out := updatePopulation(pop, 0.6)
	assert.Len(t, out, len(pop)-2)
}

func TestUpdatePopulation_DropsTheWorstPairUnderMakespanOnlyWeighting(t *testing.T) {
	// beta=1 reduces the replacement rule to pure makespan quality: the
	// two largest-makespan members must be the ones dropped, and every
	// surviving member's makespan must be better than both of them.
	pop := []jssp.Solution{
		solWith(10, [][]int{{0, 1, 2}}),
		solWith(20, [][]int{{1, 0, 2}}),
		solWith(30, [][]int{{2, 1, 0}}),
		solWith(999, [][]int{{0, 2, 1}}),
		solWith(1000, [][]int{{2, 0, 1}}),
	}
	out := updatePopulation(pop, 1.0)
	assert.Len(t, out, 3)
	for _, sol := range out {
		assert.True(t, sol.Makespan < 999, "worst two members should have been dropped, got makespan %d", sol.Makespan)
	}
}

func TestUpdatePopulation_NeverPanicsOnDescendingEraseOrder(t *testing.T) {
	// Regression guard for the erase-order pitfall documented on
	// updatePopulation: construct a population where the two
	// lowest-quality indices are adjacent and in ascending order so a
	// naive ascending erase would shift the second index out from under
	// itself.
	pop := []jssp.Solution{
		solWith(500, [][]int{{0, 1, 2, 3}}),
		solWith(501, [][]int{{1, 0, 2, 3}}),
		solWith(10, [][]int{{2, 1, 0, 3}}),
		solWith(11, [][]int{{3, 1, 2, 0}}),
	}
	assert.NotPanics(t, func() {
		out := updatePopulation(pop, 1.0)
		assert.Len(t, out, 2)
	})
}
