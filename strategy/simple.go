package strategy

import (
	"math/rand/v2"

	"github.com/breakaway-games/peloton/cards"
	"github.com/breakaway-games/peloton/race"
)

// Simple always plays the highest card. It places its sprinteur ahead
// of the rouleur at the front of the start zone and picks riders at
// random.
type Simple struct {
	rng *rand.Rand
}

// NewSimple builds the highest-card Director. Panics if rng is nil.
func NewSimple(rng *rand.Rand) *Simple {
	if rng == nil {
		panic("strategy: rng is required")
	}
	return &Simple{rng: rng}
}

// StartingPosition puts the sprinteur on the foremost open section,
// then the rouleur.
func (s *Simple) StartingPosition(g *race.Game, team *race.Team) (*race.Rider, int) {
	riders := sprinteurFirst(unplaced(team))
	open := g.Track().AvailableStart()
	if len(riders) == 0 || len(open) == 0 {
		return nil, 0
	}
	return riders[0], open[len(open)-1].Index()
}

// NextRider picks a random available rider.
func (s *Simple) NextRider(_ *race.Game, team *race.Team) *race.Rider {
	available := team.AvailableRiders()
	if len(available) == 0 {
		return nil
	}
	return available[s.rng.IntN(len(available))]
}

// ChooseCard plays the strongest card in the hand.
func (s *Simple) ChooseCard(_ *race.Game, _ *race.Team, r *race.Rider) (cards.Card, bool) {
	hand := r.Hand()
	if len(hand) == 0 {
		return 0, false
	}
	return bestCard(hand), true
}
