package strategy

import (
	"fmt"
	"math/rand/v2"

	"github.com/breakaway-games/peloton/cards"
	"github.com/breakaway-games/peloton/race"
)

// AttackDeck returns the Peloton leader's deck: the rouleur base deck
// plus two attack cards.
func AttackDeck() []cards.Card {
	return append(race.RouleurDeck(), cards.Attack, cards.Attack)
}

// Peloton is the scripted rival pack from the solo rules: a leader
// rouleur riding on an attack-augmented deck and a domestique that
// replays the leader's card every round. The team rides without
// exhaustion, draws single-card hands and always places first.
type Peloton struct {
	rng        *rand.Rand
	leader     *race.Rider
	domestique *race.Rider

	plan    map[*race.Rider]int
	current cards.Card
	hasCard bool
}

// NewPelotonTeam builds the scripted Peloton rival team.
// Panics if rng is nil.
func NewPelotonTeam(name string, rng *rand.Rand, opts ...race.TeamOption) *race.Team {
	if rng == nil {
		panic("strategy: rng is required")
	}
	d := &Peloton{
		rng:        rng,
		leader:     race.NewRider("Rouleur", race.KindRouleur, AttackDeck()),
		domestique: race.NewRider("Rouleur", race.KindRouleur, nil),
	}
	base := []race.TeamOption{
		race.WithRiders(d.leader, d.domestique),
		race.WithExhaustion(false),
		race.WithOrder(0),
		race.WithTeamHandSize(1),
		race.WithColor("red"),
	}
	return race.NewTeam(name, d, append(base, opts...)...)
}

// Reset clears the placement plan and the card carried between the
// leader's and the domestique's turns.
func (p *Peloton) Reset() {
	p.plan = nil
	p.hasCard = false
}

// StartingPosition places the leader on the foremost open start
// section, the domestique right behind it. The plan is fixed on the
// first call; order 0 guarantees both slots are still open.
func (p *Peloton) StartingPosition(g *race.Game, team *race.Team) (*race.Rider, int) {
	if p.plan == nil {
		p.plan = firstAvailable(g, []*race.Rider{p.leader, p.domestique})
	}
	for _, r := range unplaced(team) {
		return r, p.plan[r]
	}
	return nil, 0
}

// NextRider selects the leader first, then the domestique.
func (p *Peloton) NextRider(_ *race.Game, _ *race.Team) *race.Rider {
	switch {
	case !p.leader.HasCommitted():
		return p.leader
	case !p.domestique.HasCommitted():
		return p.domestique
	}
	return nil
}

// ChooseCard plays a random card for the leader and remembers it. The
// domestique rides on an empty deck, so its drawn hand is the forced
// exhaustion card; it is swapped for the leader's card before playing.
func (p *Peloton) ChooseCard(_ *race.Game, _ *race.Team, r *race.Rider) (cards.Card, bool) {
	if r == p.domestique {
		if !p.hasCard {
			panic(fmt.Sprintf("strategy: domestique %s plays before the leader", r))
		}
		p.hasCard = false
		r.ReplaceHand(p.current)
		return p.current, true
	}

	hand := r.Hand()
	if len(hand) == 0 {
		return 0, false
	}
	p.current = hand[p.rng.IntN(len(hand))]
	p.hasCard = true
	return p.current, true
}
