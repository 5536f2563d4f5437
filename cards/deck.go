package cards

import (
	"math/rand/v2"
)

// Deck holds one rider's draw and discard piles. Draws remove a
// uniformly random card from the draw pile; when the draw pile runs out
// the discard pile is shuffled back in as the new draw pile. Cards only
// leave the deck through Draw, so the combined pile size shrinks by
// exactly one per successful draw.
type Deck struct {
	rng     *rand.Rand
	draw    []Card
	discard []Card
}

// NewDeck builds a shuffled deck from the given cards with an explicit
// RNG. Panics if rng is nil.
func NewDeck(rng *rand.Rand, cs ...Card) *Deck {
	if rng == nil {
		panic("cards: rng is required")
	}
	d := &Deck{
		rng:  rng,
		draw: append([]Card(nil), cs...),
	}
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}

// Draw removes and returns a uniformly random card from the draw pile,
// recycling the discard pile first when the draw pile is empty. Returns
// false when both piles are exhausted.
func (d *Deck) Draw() (Card, bool) {
	if len(d.draw) == 0 {
		if len(d.discard) == 0 {
			return 0, false
		}
		d.draw, d.discard = d.discard, d.draw
		d.shuffle()
	}
	i := d.rng.IntN(len(d.draw))
	c := d.draw[i]
	d.draw[i] = d.draw[len(d.draw)-1]
	d.draw = d.draw[:len(d.draw)-1]
	return c, true
}

// Discard places cards on the discard pile.
func (d *Deck) Discard(cs ...Card) {
	d.discard = append(d.discard, cs...)
}

// Remaining returns the number of cards left in the draw pile.
func (d *Deck) Remaining() int { return len(d.draw) }

// Discarded returns the number of cards in the discard pile.
func (d *Deck) Discarded() int { return len(d.discard) }

// Size returns the total number of cards across both piles.
func (d *Deck) Size() int { return len(d.draw) + len(d.discard) }

// Empty reports whether both piles are exhausted.
func (d *Deck) Empty() bool { return d.Size() == 0 }

// Cards returns a sorted copy of every card across both piles. Useful
// for strategies that count what a rider has left.
func (d *Deck) Cards() []Card {
	cs := make([]Card, 0, d.Size())
	cs = append(cs, d.draw...)
	cs = append(cs, d.discard...)
	Sort(cs)
	return cs
}
