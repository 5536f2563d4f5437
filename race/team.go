package race

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Team owns a fixed set of riders and delegates decisions to a
// Director. The engine owns legality: a team cannot place, draw or
// play anything outside its computed available actions.
type Team struct {
	name       string
	color      string
	riders     []*Rider
	exhaustion bool
	order      int
	director   Director

	handicap int
	handSize int
}

// TeamOption adjusts team construction.
type TeamOption func(*Team)

// WithRiders replaces the default rouleur/sprinteur pair.
func WithRiders(riders ...*Rider) TeamOption {
	return func(t *Team) { t.riders = riders }
}

// WithExhaustion controls whether the team's riders receive exhaustion
// penalty cards. Scripted rivals ride without fatigue.
func WithExhaustion(enabled bool) TeamOption {
	return func(t *Team) { t.exhaustion = enabled }
}

// WithOrder sets the team's tie-break order: lower orders act first
// when several teams are simultaneously ready. Teams without an order
// act after all ordered teams, in random relative order.
func WithOrder(n int) TeamOption {
	return func(t *Team) { t.order = n }
}

// WithColor sets the team's display color name.
func WithColor(color string) TeamOption {
	return func(t *Team) { t.color = color }
}

// WithTeamHandicap spreads extra exhaustion cards across the team's
// riders, earlier riders first. Riders with an explicit handicap keep
// their own.
func WithTeamHandicap(total int) TeamOption {
	return func(t *Team) { t.handicap = total }
}

// WithTeamHandSize overrides the hand size of every rider on the team.
func WithTeamHandSize(n int) TeamOption {
	return func(t *Team) { t.handSize = n }
}

// NewTeam builds a team around the given Director. Without WithRiders
// the team fields the standard rouleur/sprinteur pair. A nil Director
// is allowed for teams driven directly through Game.TakeAction.
// Panics when a rider already belongs to another team.
func NewTeam(name string, director Director, opts ...TeamOption) *Team {
	t := &Team{
		name:       name,
		riders:     []*Rider{NewRouleur(), NewSprinteur()},
		exhaustion: true,
		order:      math.MaxInt,
		director:   director,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	if len(t.riders) == 0 {
		panic(fmt.Sprintf("race: team %s has no riders", name))
	}
	per, extra := t.handicap/len(t.riders), t.handicap%len(t.riders)
	for i, r := range t.riders {
		if r.team != nil && r.team != t {
			panic(fmt.Sprintf("race: rider %s already belongs to team %s", r.name, r.team.name))
		}
		r.team = t
		if t.handSize > 0 {
			r.handSize = t.handSize
		}
		if r.handicap == 0 {
			r.handicap = per
			if i < extra {
				r.handicap++
			}
		}
	}
	return t
}

// Name returns the team name.
func (t *Team) Name() string { return t.name }

// Color returns the team's display color name, empty when unset.
func (t *Team) Color() string { return t.color }

// Order returns the team's tie-break order.
func (t *Team) Order() int { return t.order }

// ExhaustionEnabled reports whether the team's riders receive
// exhaustion penalties.
func (t *Team) ExhaustionEnabled() bool { return t.exhaustion }

// Riders returns the team's riders.
func (t *Team) Riders() []*Rider {
	return append([]*Rider(nil), t.riders...)
}

// Director returns the team's decision maker, nil for directly driven
// teams.
func (t *Team) Director() Director { return t.director }

// Reset resets every rider and clears any per-game Director state.
func (t *Team) Reset(rng *rand.Rand) {
	for _, r := range t.riders {
		r.Reset(rng)
	}
	if d, ok := t.director.(Resetter); ok {
		d.Reset()
	}
}

// AvailableRiders returns the riders that can still be selected this
// round: not finished and without a committed card.
func (t *Team) AvailableRiders() []*Rider {
	var available []*Rider
	for _, r := range t.riders {
		if !r.finished && !r.HasCommitted() {
			available = append(available, r)
		}
	}
	return available
}

func (t *Team) unplacedRiders() []*Rider {
	var unplaced []*Rider
	for _, r := range t.riders {
		if !r.Placed() {
			unplaced = append(unplaced, r)
		}
	}
	return unplaced
}

// riderWithHand returns the single available rider currently holding a
// hand. The engine keeps at most one hand out per team; two is a
// sequencing bug.
func (t *Team) riderWithHand() *Rider {
	var holder *Rider
	for _, r := range t.AvailableRiders() {
		if !r.HasHand() {
			continue
		}
		if holder != nil {
			panic(fmt.Sprintf("race: team %s has two riders with hands: %s and %s", t.name, holder, r))
		}
		holder = r
	}
	return holder
}

// needRiderSelection reports whether the team's next race action is
// picking a rider (no hand is out yet).
func (t *Team) needRiderSelection() bool {
	for _, r := range t.AvailableRiders() {
		if r.HasHand() {
			return false
		}
	}
	return true
}

// availableActions computes the team's race phase actions: one
// SelectRider per available rider while no hand is out, then one
// SelectCard per card of the single rider holding a hand.
func (t *Team) availableActions() []Action {
	if t.needRiderSelection() {
		var actions []Action
		for _, r := range t.AvailableRiders() {
			actions = append(actions, SelectRider(r))
		}
		return actions
	}
	r := t.riderWithHand()
	if r == nil {
		return nil
	}
	actions := make([]Action, 0, len(r.hand))
	for _, c := range r.hand {
		actions = append(actions, SelectCard(r, c))
	}
	return actions
}

// selectAction asks the Director for the team's next move and wraps it
// into an action. ok is false when the team legitimately has nothing
// to do; a Director that fails to answer while choices exist panics,
// since that means it has desynchronized from the engine.
func (t *Team) selectAction(g *Game) (Action, bool) {
	if t.director == nil {
		panic(fmt.Sprintf("race: team %s has no director", t.name))
	}

	switch g.phase {
	case PhaseFinish:
		return Action{}, false
	case PhaseStart:
		r, section := t.director.StartingPosition(g, t)
		if r == nil {
			panic(fmt.Sprintf("race: director of %s returned no rider to place", t.name))
		}
		return Place(r, section), true
	}

	if t.needRiderSelection() {
		if len(t.AvailableRiders()) == 0 {
			return Action{}, false
		}
		r := t.director.NextRider(g, t)
		if r == nil {
			panic(fmt.Sprintf("race: director of %s returned no rider to select", t.name))
		}
		return SelectRider(r), true
	}

	r := t.riderWithHand()
	if r == nil {
		return Action{}, false
	}
	c, ok := t.director.ChooseCard(g, t, r)
	if !ok {
		panic(fmt.Sprintf("race: director of %s returned no card for %s", t.name, r))
	}
	return SelectCard(r, c), true
}

// String returns the team name.
func (t *Team) String() string { return t.name }
