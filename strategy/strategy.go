// Package strategy provides the built-in race Directors: a random
// baseline, two deterministic card pickers and the scripted Peloton
// and Muscle rival teams.
package strategy

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/breakaway-games/peloton/cards"
	"github.com/breakaway-games/peloton/race"
)

// valueLess orders cards by playing strength: specials (exhaustion,
// wildcard) weakest, then front value, then behind value. Used when a
// strategy wants "the best card" rather than display order.
func valueLess(a, b cards.Card) bool {
	if pa, pb := plain(a), plain(b); pa != pb {
		return !pa
	}
	if a.Front() != b.Front() {
		return a.Front() < b.Front()
	}
	if a.Behind() != b.Behind() {
		return a.Behind() < b.Behind()
	}
	return a.IsExhaustion() && !b.IsExhaustion()
}

func plain(c cards.Card) bool {
	return !c.IsExhaustion() && !c.IsWildcard()
}

// byValue returns the cards sorted ascending by playing strength.
func byValue(cs []cards.Card) []cards.Card {
	sorted := append([]cards.Card(nil), cs...)
	sort.SliceStable(sorted, func(i, j int) bool { return valueLess(sorted[i], sorted[j]) })
	return sorted
}

// bestCard returns the strongest card of a non-empty hand.
func bestCard(hand []cards.Card) cards.Card {
	sorted := byValue(hand)
	return sorted[len(sorted)-1]
}

// worstCard returns the weakest card of a non-empty hand.
func worstCard(hand []cards.Card) cards.Card {
	return byValue(hand)[0]
}

// sprinteurFirst sorts riders with sprinteurs (and custom kinds)
// before rouleurs, keeping relative order otherwise.
func sprinteurFirst(riders []*race.Rider) []*race.Rider {
	sorted := append([]*race.Rider(nil), riders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Kind() != race.KindRouleur && sorted[j].Kind() == race.KindRouleur
	})
	return sorted
}

// firstAvailable plans start placements front to back: the first rider
// gets the open start section closest to the front, the next rider the
// one behind it. The plan is computed once per game from the open
// sections at planning time.
func firstAvailable(g *race.Game, riders []*race.Rider) map[*race.Rider]int {
	open := g.Track().AvailableStart()
	plan := make(map[*race.Rider]int, len(riders))
	for i, r := range riders {
		j := len(open) - 1 - i
		if j < 0 {
			break
		}
		plan[r] = open[j].Index()
	}
	return plan
}

func unplaced(team *race.Team) []*race.Rider {
	var riders []*race.Rider
	for _, r := range team.Riders() {
		if !r.Placed() {
			riders = append(riders, r)
		}
	}
	return riders
}

// New builds a team driven by the named built-in strategy. The RNG
// seeds the strategy's own choices; pass the game RNG for fully
// reproducible races.
func New(strategy, name string, rng *rand.Rand, opts ...race.TeamOption) (*race.Team, error) {
	switch strategy {
	case "auto":
		return race.NewTeam(name, NewAuto(rng), opts...), nil
	case "simple":
		return race.NewTeam(name, NewSimple(rng), opts...), nil
	case "heuristic":
		return race.NewTeam(name, NewHeuristic(), opts...), nil
	case "peloton":
		return NewPelotonTeam(name, rng, opts...), nil
	case "muscle":
		return NewMuscleTeam(name, rng, opts...), nil
	}
	return nil, fmt.Errorf("strategy: unknown strategy %q", strategy)
}

// Names lists the built-in strategies accepted by New.
func Names() []string {
	return []string{"auto", "simple", "heuristic", "peloton", "muscle"}
}
