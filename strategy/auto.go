package strategy

import (
	"math/rand/v2"

	"github.com/breakaway-games/peloton/cards"
	"github.com/breakaway-games/peloton/race"
)

// Auto is the random baseline Director: random start slots, random
// rider order, random cards. Useful as a sparring partner and for
// exercising the engine in tests.
type Auto struct {
	rng *rand.Rand
}

// NewAuto builds the random Director. Panics if rng is nil.
func NewAuto(rng *rand.Rand) *Auto {
	if rng == nil {
		panic("strategy: rng is required")
	}
	return &Auto{rng: rng}
}

// StartingPosition places a random unplaced rider on a random open
// start section.
func (a *Auto) StartingPosition(g *race.Game, team *race.Team) (*race.Rider, int) {
	riders := unplaced(team)
	open := g.Track().AvailableStart()
	if len(riders) == 0 || len(open) == 0 {
		return nil, 0
	}
	r := riders[a.rng.IntN(len(riders))]
	return r, open[a.rng.IntN(len(open))].Index()
}

// NextRider picks a random available rider.
func (a *Auto) NextRider(_ *race.Game, team *race.Team) *race.Rider {
	available := team.AvailableRiders()
	if len(available) == 0 {
		return nil
	}
	return available[a.rng.IntN(len(available))]
}

// ChooseCard plays a random card from the hand.
func (a *Auto) ChooseCard(_ *race.Game, _ *race.Team, r *race.Rider) (cards.Card, bool) {
	hand := r.Hand()
	if len(hand) == 0 {
		return 0, false
	}
	return hand[a.rng.IntN(len(hand))], true
}
