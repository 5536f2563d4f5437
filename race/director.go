package race

import "github.com/breakaway-games/peloton/cards"

// Director supplies a team's decisions: where riders start, which
// rider races next, and which card it plays. The engine builds actions
// from these answers and validates them like any other action, so a
// Director cannot bypass capacity or hand checks. Implementations that
// block (human input, model inference) simply block the engine loop;
// the engine itself performs no I/O.
//
// Callers that want full control can skip Directors entirely and drive
// Game.TakeAction themselves.
type Director interface {
	// StartingPosition returns an unplaced rider of the team and the
	// start zone section index to place it in.
	StartingPosition(g *Game, team *Team) (*Rider, int)

	// NextRider returns the rider that should draw a hand next. It
	// must return a rider whenever the team has available riders; nil
	// is only valid when there is genuinely nobody left to select.
	NextRider(g *Game, team *Team) *Rider

	// ChooseCard returns the card to commit from the rider's current
	// hand. ok must be true whenever the hand is non-empty.
	ChooseCard(g *Game, team *Team, r *Rider) (card cards.Card, ok bool)
}

// Resetter is implemented by Directors that carry per-game state and
// need clearing when the game resets.
type Resetter interface {
	Reset()
}
