package cards

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestDeckDrawUntilEmpty(t *testing.T) {
	t.Parallel()

	d := NewDeck(testRNG(42), Card3, Card4, Card5, Card6, Card7)
	require.Equal(t, 5, d.Size())

	seen := make(map[Card]int)
	for range 5 {
		c, ok := d.Draw()
		require.True(t, ok)
		seen[c]++
	}
	assert.Equal(t, map[Card]int{Card3: 1, Card4: 1, Card5: 1, Card6: 1, Card7: 1}, seen)
	assert.True(t, d.Empty())

	_, ok := d.Draw()
	assert.False(t, ok)
}

func TestDeckRecyclesDiscard(t *testing.T) {
	t.Parallel()

	d := NewDeck(testRNG(7), Card2, Card9)
	for range 2 {
		_, ok := d.Draw()
		require.True(t, ok)
	}

	d.Discard(Exhaustion)
	require.Equal(t, 0, d.Remaining())
	require.Equal(t, 1, d.Discarded())

	// The discard pile becomes the draw pile on the next draw.
	c, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, Exhaustion, c)
	assert.Equal(t, 0, d.Discarded())
	assert.True(t, d.Empty())
}

func TestDeckConservation(t *testing.T) {
	t.Parallel()

	d := NewDeck(testRNG(3), Card3, Card4, Card5, Card6, Card7, Card3, Card4)
	total := d.Size()

	// Drawing moves cards out, discarding returns them. The total only
	// shrinks when a drawn card never comes back.
	for range 20 {
		c, ok := d.Draw()
		require.True(t, ok)
		d.Discard(c)
		assert.Equal(t, total, d.Size())
	}
}

func TestDeckDeterministicUnderSeed(t *testing.T) {
	t.Parallel()

	base := []Card{Card2, Card3, Card4, Card5, Card9, Card2, Card3}
	a := NewDeck(testRNG(99), base...)
	b := NewDeck(testRNG(99), base...)

	for range len(base) {
		ca, ok := a.Draw()
		require.True(t, ok)
		cb, ok := b.Draw()
		require.True(t, ok)
		assert.Equal(t, ca, cb)
	}
}

func TestDeckCardsSorted(t *testing.T) {
	t.Parallel()

	d := NewDeck(testRNG(1), Card9, Card2)
	c, ok := d.Draw()
	require.True(t, ok)
	d.Discard(c, Attack)

	got := d.Cards()
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, Compare(got[i-1], got[i]), 0)
	}
	assert.Equal(t, Attack, got[2])
}

func TestNewDeckNilRNGPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewDeck(nil, Card2) })
}
