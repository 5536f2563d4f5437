package strategy

import (
	"github.com/breakaway-games/peloton/cards"
	"github.com/breakaway-games/peloton/race"
)

// Heuristic spends big cards when they can reach the finish and burns
// the small ones early, saving its top end for the run-in. Sprinteurs
// are placed and selected first.
type Heuristic struct{}

// NewHeuristic builds the finish-distance Director.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// StartingPosition puts the sprinteur on the foremost open section,
// then the rouleur.
func (h *Heuristic) StartingPosition(g *race.Game, team *race.Team) (*race.Rider, int) {
	riders := sprinteurFirst(unplaced(team))
	open := g.Track().AvailableStart()
	if len(riders) == 0 || len(open) == 0 {
		return nil, 0
	}
	return riders[0], open[len(open)-1].Index()
}

// NextRider always selects the sprinteur before the rouleur.
func (h *Heuristic) NextRider(_ *race.Game, team *race.Team) *race.Rider {
	available := team.AvailableRiders()
	if len(available) == 0 {
		return nil
	}
	return sprinteurFirst(available)[0]
}

// ChooseCard compares the distance to the finish with the rider's
// three strongest remaining cards. Within reach it plays the best
// card; otherwise it plays the best card too weak to belong to the
// top three, keeping those for the finale, and falls back to the
// weakest card when nothing fits.
func (h *Heuristic) ChooseCard(g *race.Game, _ *race.Team, r *race.Rider) (cards.Card, bool) {
	hand := r.Hand()
	if len(hand) == 0 {
		return 0, false
	}

	all := byValue(r.AllCards())
	high := all
	if len(all) > 3 {
		high = all[len(all)-3:]
	}
	total := 0
	threshold := high[0].Front()
	for _, c := range high {
		total += c.Front()
		if c.Front() < threshold {
			threshold = c.Front()
		}
	}

	toGo := g.Track().Finish() - r.Position()
	if toGo <= total {
		return bestCard(hand), true
	}

	var weak []cards.Card
	for _, c := range hand {
		if c.Front() < threshold {
			weak = append(weak, c)
		}
	}
	if len(weak) > 0 {
		return bestCard(weak), true
	}
	return worstCard(hand), true
}
