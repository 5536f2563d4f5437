package race

import (
	"fmt"

	"github.com/breakaway-games/peloton/cards"
)

// ActionKind discriminates the three legal action shapes.
type ActionKind uint8

const (
	// ActionPlace puts an unplaced rider into a start zone section.
	ActionPlace ActionKind = iota + 1
	// ActionSelectRider picks the rider that draws a hand this turn.
	ActionSelectRider
	// ActionSelectCard commits one card from the drawn hand.
	ActionSelectCard
)

// Action is a single team decision. Actions are inert comparable
// values: they carry no engine state, and legality is decided by
// membership in the engine-computed available set, not by the action
// itself.
type Action struct {
	Kind    ActionKind
	Rider   *Rider
	Section int
	Card    cards.Card
}

// Place builds a start placement action.
func Place(r *Rider, section int) Action {
	return Action{Kind: ActionPlace, Rider: r, Section: section}
}

// SelectRider builds a hand draw action.
func SelectRider(r *Rider) Action {
	return Action{Kind: ActionSelectRider, Rider: r}
}

// SelectCard builds a card commitment action.
func SelectCard(r *Rider, c cards.Card) Action {
	return Action{Kind: ActionSelectCard, Rider: r, Card: c}
}

// String describes the action for logs.
func (a Action) String() string {
	switch a.Kind {
	case ActionPlace:
		return fmt.Sprintf("place %s at section %d", a.Rider, a.Section)
	case ActionSelectRider:
		return fmt.Sprintf("select rider %s", a.Rider)
	case ActionSelectCard:
		return fmt.Sprintf("play %s for %s", a.Card, a.Rider)
	default:
		return "invalid action"
	}
}
