package simulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	t.Parallel()

	var s Sample
	assert.Zero(t, s.Count())
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Median())
	assert.Zero(t, s.Variance())

	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Add(v)
	}
	assert.Equal(t, 8, s.Count())
	assert.InDelta(t, 5.0, s.Mean(), 1e-9)
	assert.InDelta(t, 4.5, s.Median(), 1e-9)
	assert.InDelta(t, 32.0/7.0, s.Variance(), 1e-9)
	assert.InDelta(t, 2.138, s.StdDev(), 1e-3)
	assert.InDelta(t, 0.756, s.StdError(), 1e-3)

	lo, hi := s.ConfidenceInterval95()
	assert.Less(t, lo, s.Mean())
	assert.Greater(t, hi, s.Mean())
	assert.InDelta(t, s.Mean()-lo, hi-s.Mean(), 1e-9)
}

func TestSampleMedianOdd(t *testing.T) {
	t.Parallel()

	var s Sample
	for _, v := range []float64{9, 1, 5} {
		s.Add(v)
	}
	assert.InDelta(t, 5.0, s.Median(), 1e-9)
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	stats := NewStatistics()
	stats.Add(Result{Seed: 10, Winner: "peloton", Rider: "rouleur", Rounds: 12, Margin: 2})
	stats.Add(Result{Seed: 11, Winner: "muscle", Rider: "sprinteur", Rounds: 14, Margin: 1})
	stats.Add(Result{Seed: 12, Winner: "peloton", Rider: "rouleur", Rounds: 10, Margin: 3})

	assert.Equal(t, 3, stats.Races)
	assert.Equal(t, 2, stats.Wins["peloton"])
	assert.InDelta(t, 2.0/3.0, stats.WinRate("peloton"), 1e-9)
	assert.Zero(t, stats.WinRate("heuristic"))
	assert.Equal(t, 2, stats.RiderWins["rouleur"])
	assert.InDelta(t, 12.0, stats.Rounds.Mean(), 1e-9)

	seed, ok := stats.ReplaySeed("peloton")
	require.True(t, ok)
	assert.Equal(t, int64(10), seed, "first winning seed is kept")

	_, ok = stats.ReplaySeed("heuristic")
	assert.False(t, ok)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	stats := NewStatistics()
	stats.Add(Result{Winner: "muscle", Rider: "sprinteur", Rounds: 14, Margin: 1})
	stats.Add(Result{Winner: "peloton", Rider: "rouleur", Rounds: 12, Margin: 2})
	stats.Add(Result{Winner: "peloton", Rider: "rouleur", Rounds: 10, Margin: 0})

	out := stats.Summary()
	assert.Contains(t, out, "Races: 3")
	assert.Contains(t, out, "peloton")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "Rounds:  mean 12.0  median 12.0")
	assert.Contains(t, out, "Winning rider rouleur")
	assert.Less(t, strings.Index(out, "peloton"), strings.Index(out, "muscle"),
		"teams sorted by wins")
}
