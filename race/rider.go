package race

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/breakaway-games/peloton/cards"
)

const unplaced = -1

// Rider kinds shipped with the engine. Kind is informational within
// the core: it only decides the base deck and lets strategies tell
// riders apart.
const (
	KindRouleur   = "rouleur"
	KindSprinteur = "sprinteur"
)

// RouleurDeck returns the rouleur base deck: steady mid-range cards.
func RouleurDeck() []cards.Card {
	return repeatDeck(cards.Card3, cards.Card4, cards.Card5, cards.Card6, cards.Card7)
}

// SprinteurDeck returns the sprinteur base deck: low cards plus the
// nines for the final dash.
func SprinteurDeck() []cards.Card {
	return repeatDeck(cards.Card2, cards.Card3, cards.Card4, cards.Card5, cards.Card9)
}

func repeatDeck(cs ...cards.Card) []cards.Card {
	deck := make([]cards.Card, 0, len(cs)*3)
	for range 3 {
		deck = append(deck, cs...)
	}
	return deck
}

// Rider is a single cyclist: a deck of movement cards, an optional
// drawn hand, the card committed for the current round, and a position
// handle into the track. A rider belongs to at most one team and
// occupies at most one section.
type Rider struct {
	name     string
	kind     string
	initial  []cards.Card
	handSize int
	handicap int

	team      *Team
	deck      *cards.Deck
	hand      []cards.Card
	committed cards.Card
	position  int
	finished  bool
}

// RiderOption adjusts rider construction.
type RiderOption func(*Rider)

// WithHandSize sets how many cards the rider draws per turn. The
// default is four.
func WithHandSize(n int) RiderOption {
	return func(r *Rider) { r.handSize = n }
}

// WithHandicap adds extra exhaustion cards to the rider's deck at
// every reset. Riders with an explicit handicap keep it when their
// team distributes one.
func WithHandicap(n int) RiderOption {
	return func(r *Rider) { r.handicap = n }
}

// NewRider builds a rider with the given deck composition. The rider
// must be Reset with an RNG before drawing cards; placing and moving it
// on a track works right away.
func NewRider(name, kind string, deck []cards.Card, opts ...RiderOption) *Rider {
	r := &Rider{
		name:     name,
		kind:     kind,
		initial:  append([]cards.Card(nil), deck...),
		handSize: 4,
		position: unplaced,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRouleur builds a rider with the rouleur base deck.
func NewRouleur(opts ...RiderOption) *Rider {
	return NewRider("Rouleur", KindRouleur, RouleurDeck(), opts...)
}

// NewSprinteur builds a rider with the sprinteur base deck.
func NewSprinteur(opts ...RiderOption) *Rider {
	return NewRider("Sprinteur", KindSprinteur, SprinteurDeck(), opts...)
}

// Name returns the rider's name.
func (r *Rider) Name() string { return r.name }

// Kind returns the rider's kind.
func (r *Rider) Kind() string { return r.kind }

// Team returns the owning team, nil for free-standing riders.
func (r *Rider) Team() *Team { return r.team }

// HandSize returns how many cards the rider draws per turn.
func (r *Rider) HandSize() int { return r.handSize }

// Handicap returns the number of extra exhaustion cards shuffled in at
// reset.
func (r *Rider) Handicap() int { return r.handicap }

// Position returns the rider's section index, or -1 when unplaced.
func (r *Rider) Position() int { return r.position }

// Placed reports whether the rider occupies a track section.
func (r *Rider) Placed() bool { return r.position != unplaced }

// Finished reports whether the rider has crossed the finish boundary.
func (r *Rider) Finished() bool { return r.finished }

// Reset rebuilds the rider's deck from its initial composition plus
// handicap cards, shuffled with the given RNG, and clears hand,
// committed card, position and finished flag. Called at the start of
// every game, not every round. Panics if rng is nil.
func (r *Rider) Reset(rng *rand.Rand) {
	if rng == nil {
		panic("race: rng is required")
	}
	deck := append([]cards.Card(nil), r.initial...)
	for range r.handicap {
		deck = append(deck, cards.Exhaustion)
	}
	r.deck = cards.NewDeck(rng, deck...)
	r.hand = nil
	r.committed = 0
	r.position = unplaced
	r.finished = false
}

// DrawHand discards any currently held hand and draws a fresh one from
// the deck. When deck and discard pile are both exhausted the hand is
// forced to a single fabricated exhaustion card, so a rider is never
// left without a playable card.
func (r *Rider) DrawHand() {
	if r.deck == nil {
		panic(fmt.Sprintf("race: rider %s used before Reset", r))
	}
	r.DiscardHand()
	hand := make([]cards.Card, 0, r.handSize)
	for range r.handSize {
		c, ok := r.deck.Draw()
		if !ok {
			break
		}
		hand = append(hand, c)
	}
	if len(hand) == 0 {
		hand = append(hand, cards.Exhaustion)
	}
	r.hand = hand
}

// HasHand reports whether the rider holds a drawn hand.
func (r *Rider) HasHand() bool { return r.hand != nil }

// Hand returns a copy of the rider's current hand, nil when none is
// drawn.
func (r *Rider) Hand() []cards.Card {
	if r.hand == nil {
		return nil
	}
	return append([]cards.Card(nil), r.hand...)
}

// ReplaceHand swaps the rider's current hand for the given cards
// without touching either pile. Scripted rivals use this to mirror a
// teammate's play. Panics when no hand is drawn.
func (r *Rider) ReplaceHand(cs ...cards.Card) {
	if r.hand == nil {
		panic(fmt.Sprintf("race: replacing undrawn hand of %s", r))
	}
	r.hand = append([]cards.Card(nil), cs...)
}

// SelectCard removes a card from the hand and commits it for the
// current round. Fails with ErrInvalidCard when the card is not in the
// hand, no hand is drawn, or a card is already committed.
func (r *Rider) SelectCard(c cards.Card) error {
	if r.hand == nil {
		return fmt.Errorf("%w: %s has no hand drawn", ErrInvalidCard, r)
	}
	if r.committed != 0 {
		return fmt.Errorf("%w: %s already committed %s", ErrInvalidCard, r, r.committed)
	}
	i := slices.Index(r.hand, c)
	if i < 0 {
		return fmt.Errorf("%w: %s is not in the hand of %s", ErrInvalidCard, c, r)
	}
	r.hand = slices.Delete(r.hand, i, i+1)
	r.committed = c
	return nil
}

// CommittedCard returns the card locked in for this round.
func (r *Rider) CommittedCard() (cards.Card, bool) {
	return r.committed, r.committed != 0
}

// HasCommitted reports whether a card is locked in for this round.
func (r *Rider) HasCommitted() bool { return r.committed != 0 }

// clearCommitted consumes the committed card after movement. The card
// leaves play entirely: only discarded hand cards return through the
// reshuffle.
func (r *Rider) clearCommitted() { r.committed = 0 }

// DiscardHand moves all remaining hand cards to the discard pile and
// clears the hand. Idempotent.
func (r *Rider) DiscardHand() {
	if len(r.hand) > 0 {
		r.deck.Discard(r.hand...)
	}
	r.hand = nil
}

// Discard puts a card directly on the rider's discard pile, bypassing
// the hand. This is the exhaustion penalty path.
func (r *Rider) Discard(c cards.Card) {
	if r.deck == nil {
		panic(fmt.Sprintf("race: rider %s used before Reset", r))
	}
	r.deck.Discard(c)
}

// Deck exposes the rider's piles for inspection.
func (r *Rider) Deck() *cards.Deck { return r.deck }

// AllCards returns every card the rider still owns across deck,
// discard pile, hand and committed card, sorted for display.
func (r *Rider) AllCards() []cards.Card {
	var cs []cards.Card
	if r.deck != nil {
		cs = append(cs, r.deck.Cards()...)
	}
	cs = append(cs, r.hand...)
	if r.committed != 0 {
		cs = append(cs, r.committed)
	}
	cards.Sort(cs)
	return cs
}

// String names the rider, with its team when it has one.
func (r *Rider) String() string {
	if r.team == nil {
		return r.name
	}
	return fmt.Sprintf("%s (%s)", r.name, r.team.name)
}
