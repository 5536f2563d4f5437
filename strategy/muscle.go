package strategy

import (
	"math/rand/v2"

	"github.com/breakaway-games/peloton/cards"
	"github.com/breakaway-games/peloton/race"
)

// MuscleDeck returns the Muscle sprinteur's deck: the sprinteur base
// deck plus one extra 5.
func MuscleDeck() []cards.Card {
	return append(race.SprinteurDeck(), cards.Card5)
}

// Muscle is the scripted rival breakaway from the solo rules: a
// sprinteur with one extra 5 card and a regular rouleur, riding
// without exhaustion on single-card hands. Places right after the
// Peloton, sprinteur up front.
type Muscle struct {
	rng  *rand.Rand
	plan map[*race.Rider]int
}

// NewMuscleTeam builds the scripted Muscle rival team.
// Panics if rng is nil.
func NewMuscleTeam(name string, rng *rand.Rand, opts ...race.TeamOption) *race.Team {
	if rng == nil {
		panic("strategy: rng is required")
	}
	d := &Muscle{rng: rng}
	base := []race.TeamOption{
		race.WithRiders(
			race.NewRider("Sprinteur", race.KindSprinteur, MuscleDeck()),
			race.NewRouleur(),
		),
		race.WithExhaustion(false),
		race.WithOrder(1),
		race.WithTeamHandSize(1),
		race.WithColor("green"),
	}
	return race.NewTeam(name, d, append(base, opts...)...)
}

// Reset clears the placement plan.
func (m *Muscle) Reset() {
	m.plan = nil
}

// StartingPosition places the sprinteur on the foremost open start
// section, the rouleur behind it.
func (m *Muscle) StartingPosition(g *race.Game, team *race.Team) (*race.Rider, int) {
	if m.plan == nil {
		m.plan = firstAvailable(g, sprinteurFirst(team.Riders()))
	}
	for _, r := range unplaced(team) {
		return r, m.plan[r]
	}
	return nil, 0
}

// NextRider picks a random available rider.
func (m *Muscle) NextRider(_ *race.Game, team *race.Team) *race.Rider {
	available := team.AvailableRiders()
	if len(available) == 0 {
		return nil
	}
	return available[m.rng.IntN(len(available))]
}

// ChooseCard plays a random card from the hand.
func (m *Muscle) ChooseCard(_ *race.Game, _ *race.Team, r *race.Rider) (cards.Card, bool) {
	hand := r.Hand()
	if len(hand) == 0 {
		return 0, false
	}
	return hand[m.rng.IntN(len(hand))], true
}
