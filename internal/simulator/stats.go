package simulator

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Sample accumulates observations of one metric.
type Sample struct {
	values []float64
	sum    float64
	sum2   float64
}

// Add records an observation.
func (s *Sample) Add(v float64) {
	s.values = append(s.values, v)
	s.sum += v
	s.sum2 += v * v
}

// Count returns the number of observations.
func (s *Sample) Count() int { return len(s.values) }

// Mean returns the arithmetic mean.
func (s *Sample) Mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.sum / float64(len(s.values))
}

// Variance returns the sample variance.
func (s *Sample) Variance() float64 {
	n := len(s.values)
	if n < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.sum2 - float64(n)*mean*mean) / float64(n-1)
}

// StdDev returns the sample standard deviation.
func (s *Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Sample) StdError() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(len(s.values)))
}

// ConfidenceInterval95 returns the 95% confidence interval for the
// mean.
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median observation.
func (s *Sample) Median() float64 {
	if len(s.values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), s.values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Statistics aggregates race results across a simulation batch.
type Statistics struct {
	Races      int
	Wins       map[string]int
	RiderWins  map[string]int
	Rounds     Sample
	Margins    Sample
	firstSeeds map[string]int64
}

// NewStatistics returns empty statistics.
func NewStatistics() *Statistics {
	return &Statistics{
		Wins:       map[string]int{},
		RiderWins:  map[string]int{},
		firstSeeds: map[string]int64{},
	}
}

// Add incorporates one race result.
func (s *Statistics) Add(r Result) {
	s.Races++
	s.Wins[r.Winner]++
	s.RiderWins[r.Rider]++
	s.Rounds.Add(float64(r.Rounds))
	s.Margins.Add(float64(r.Margin))
	if _, ok := s.firstSeeds[r.Winner]; !ok {
		// Keep one replayable seed per winning team.
		s.firstSeeds[r.Winner] = r.Seed
	}
}

// WinRate returns a team's share of race wins.
func (s *Statistics) WinRate(team string) float64 {
	if s.Races == 0 {
		return 0
	}
	return float64(s.Wins[team]) / float64(s.Races)
}

// ReplaySeed returns a seed that reproduces a win for the team.
func (s *Statistics) ReplaySeed(team string) (int64, bool) {
	seed, ok := s.firstSeeds[team]
	return seed, ok
}

// Summary formats the batch outcome for the terminal.
func (s *Statistics) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Races: %d\n\n", s.Races)

	teams := make([]string, 0, len(s.Wins))
	for team := range s.Wins {
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool {
		if s.Wins[teams[i]] != s.Wins[teams[j]] {
			return s.Wins[teams[i]] > s.Wins[teams[j]]
		}
		return teams[i] < teams[j]
	})
	for _, team := range teams {
		fmt.Fprintf(&b, "  %-20s %4d wins  (%5.1f%%)\n",
			team, s.Wins[team], 100*s.WinRate(team))
	}

	lo, hi := s.Rounds.ConfidenceInterval95()
	fmt.Fprintf(&b, "\nRounds:  mean %.1f  median %.1f  stddev %.2f  95%% CI [%.1f, %.1f]\n",
		s.Rounds.Mean(), s.Rounds.Median(), s.Rounds.StdDev(), lo, hi)
	fmt.Fprintf(&b, "Margins: mean %.1f  median %.1f  stddev %.2f\n",
		s.Margins.Mean(), s.Margins.Median(), s.Margins.StdDev())

	riders := make([]string, 0, len(s.RiderWins))
	for kind := range s.RiderWins {
		riders = append(riders, kind)
	}
	sort.Strings(riders)
	for _, kind := range riders {
		fmt.Fprintf(&b, "Winning rider %-10s %4d\n", kind, s.RiderWins[kind])
	}
	return b.String()
}
