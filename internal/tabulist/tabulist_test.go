package tabulist

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CapacityWithinZhangBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l := New(15, 6, rng)
	min := 10.0 + 15.0/6.0
	max := 1.5 * min // machines*2=12 <= jobs=15, so the 1.5 branch applies
	require.GreaterOrEqual(t, float64(l.capacity), min-1)
	require.LessOrEqual(t, float64(l.capacity), max+1)
}

func TestIsTabu_MatchesOnFullRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	l := New(6, 6, rng)

	seq := []int{3, 1, 4, 1, 5}
	l.Insert(0, 1, 3, seq, 100, 90)

	assert.True(t, l.IsTabu(0, 1, 3, seq))
	assert.False(t, l.IsTabu(1, 1, 3, seq), "different machine must never match")

	other := []int{3, 1, 4, 2, 5}
	assert.False(t, l.IsTabu(0, 1, 3, other), "a different value inside the range must clear the match")
}

func TestInsert_EvictsOnCapacity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	l := New(6, 6, rng)
	l.capacity = 2

	seq := []int{0, 1, 2, 3}
	l.Insert(0, 0, 1, seq, 100, 90)
	l.Insert(1, 0, 1, seq, 100, 90)
	l.Insert(2, 0, 1, seq, 100, 90)

	assert.LessOrEqual(t, l.Len(), l.capacity)
}

func TestReset_ClearsEntries(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	l := New(6, 6, rng)
	l.Insert(0, 0, 1, []int{0, 1}, 100, 90)
	require.Equal(t, 1, l.Len())

	l.Reset()
	assert.Equal(t, 0, l.Len())
}
