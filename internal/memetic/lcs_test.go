package memetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLCS_MatchesWorkedExample(t *testing.T) {
	m1 := []int{1, 2, 3, 4, 5, 6}
	m2 := []int{5, 1, 6, 2, 3, 4}
	assert.Equal(t, []int{1, 2, 3, 4}, LCS(m1, m2))
}

func TestLCS_IsSubsequenceOfBoth(t *testing.T) {
	a := []int{4, 1, 5, 2, 0, 3}
	b := []int{1, 0, 4, 2, 5, 3}
	lcs := LCS(a, b)
	assert.True(t, isSubsequence(lcs, a))
	assert.True(t, isSubsequence(lcs, b))
}

func isSubsequence(sub, seq []int) bool {
	i := 0
	for _, v := range seq {
		if i < len(sub) && sub[i] == v {
			i++
		}
	}
	return i == len(sub)
}

func TestCrossoverChild_WorkedExample(t *testing.T) {
	p1 := []int{1, 2, 3, 4, 5, 6}
	p2 := []int{3, 2, 4, 1, 5, 6}
	lcs := LCS(p1, p2)
	// The true longest common subsequence here has length 4, [2,4,5,6] —
	// not the length-3 [1,5,6] sometimes quoted as an example of this
	// crossover, which corresponds to a DP walk-back that didn't find
	// the actual longest match.
	assert.Equal(t, []int{2, 4, 5, 6}, lcs)

	c1 := crossoverChild(p1, p2, lcs)
	c2 := crossoverChild(p2, p1, lcs)
	assert.Equal(t, []int{3, 2, 1, 4, 5, 6}, c1)
	assert.Equal(t, []int{1, 2, 4, 3, 5, 6}, c2)
}

func TestCrossoverMachinePair_IdenticalParentsYieldIdenticalChildren(t *testing.T) {
	p := []int{0, 1, 2, 3, 4, 5}
	c1, c2 := crossoverMachinePair(p, p)
	assert.Equal(t, p, c1)
	assert.Equal(t, p, c2)
}

func TestCrossoverMachinePair_ChildrenArePermutationsOfTheJobSet(t *testing.T) {
	p1 := []int{5, 3, 1, 0, 4, 2}
	p2 := []int{2, 0, 4, 1, 3, 5}
	c1, c2 := crossoverMachinePair(p1, p2)

	for _, c := range [][]int{c1, c2} {
		seen := make([]bool, len(p1))
		for _, job := range c {
			assert.False(t, seen[job], "job %d appeared twice", job)
			seen[job] = true
		}
		for job, ok := range seen {
			assert.True(t, ok, "job %d missing from child", job)
		}
	}
}
