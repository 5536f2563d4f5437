// Package cards defines the movement card catalog and the two-pile deck
// riders draw from during a race.
package cards

import (
	"fmt"
	"sort"
)

// Card identifies a movement card. The zero value is not a valid card.
type Card uint8

const (
	Card2 Card = iota + 1
	Card3
	Card4
	Card5
	Card6
	Card7
	Card8
	Card9
	// Exhaustion is the penalty card dealt to unsheltered riders. It
	// moves 2 regardless of drafting position.
	Exhaustion
	// Attack is the wildcard in scripted rival decks: 2 when drafting,
	// 9 on the front.
	Attack
)

type cardSpec struct {
	front      int
	behind     int
	exhaustion bool
	wildcard   bool
}

var catalog = [...]cardSpec{
	Card2:      {front: 2, behind: 2},
	Card3:      {front: 3, behind: 3},
	Card4:      {front: 4, behind: 4},
	Card5:      {front: 5, behind: 5},
	Card6:      {front: 6, behind: 6},
	Card7:      {front: 7, behind: 7},
	Card8:      {front: 8, behind: 8},
	Card9:      {front: 9, behind: 9},
	Exhaustion: {front: 2, behind: 2, exhaustion: true},
	Attack:     {front: 2, behind: 9, wildcard: true},
}

// Valid reports whether c names a card in the catalog.
func (c Card) Valid() bool {
	return c >= Card2 && c <= Attack
}

func (c Card) spec() cardSpec {
	if !c.Valid() {
		panic(fmt.Sprintf("cards: invalid card %d", uint8(c)))
	}
	return catalog[c]
}

// Front returns the movement value when no teammate rides ahead.
func (c Card) Front() int { return c.spec().front }

// Behind returns the movement value when a teammate rides ahead.
func (c Card) Behind() int { return c.spec().behind }

// IsExhaustion reports whether c is an exhaustion penalty card.
func (c Card) IsExhaustion() bool { return c.spec().exhaustion }

// IsWildcard reports whether c is a wildcard (attack) card.
func (c Card) IsWildcard() bool { return c.spec().wildcard }

func (c Card) special() bool {
	s := c.spec()
	return s.exhaustion || s.wildcard
}

// String renders the card the way it is printed on the tabletop deck:
// a single number when front and behind match, "front/behind" when they
// differ, with an E suffix on exhaustion cards.
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	s := catalog[c]
	out := fmt.Sprintf("%d", s.front)
	if s.front != s.behind {
		out = fmt.Sprintf("%d/%d", s.front, s.behind)
	}
	if s.exhaustion {
		out += "E"
	}
	return out
}

// Compare orders cards for display and strategy inspection: plain
// numbered cards first, then exhaustion and wildcard cards, each group
// by front then behind value.
func Compare(a, b Card) int {
	if as, bs := a.special(), b.special(); as != bs {
		if as {
			return 1
		}
		return -1
	}
	if d := a.Front() - b.Front(); d != 0 {
		return d
	}
	return a.Behind() - b.Behind()
}

// Less reports whether a orders before b under Compare.
func Less(a, b Card) bool { return Compare(a, b) < 0 }

// Sort sorts cs in place under Compare, preserving the relative order
// of equal cards.
func Sort(cs []Card) {
	sort.SliceStable(cs, func(i, j int) bool { return Less(cs[i], cs[j]) })
}

// Parse converts a deck-file card label to a Card. Accepted forms are
// the String renderings ("2".."9", "2E", "2/9") plus the shorthands "E"
// and "A".
func Parse(s string) (Card, error) {
	switch s {
	case "E", "2E":
		return Exhaustion, nil
	case "A", "2/9":
		return Attack, nil
	}
	for c := Card2; c <= Card9; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("cards: unknown card %q", s)
}
