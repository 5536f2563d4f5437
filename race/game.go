// Package race implements a tactical cycling race: a capacity-bounded
// track, riders that draw and commit movement cards, and the phase
// machine that sequences team decisions into collision-free movement
// with slipstream and exhaustion resolution.
package race

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/rs/zerolog"
)

// Game sequences a single race: it validates team actions against the
// track state, resolves each round's movement once every rider has
// committed a card, and advances the phase machine. All mutation goes
// through TakeAction; everything else is read-only.
type Game struct {
	rng    *rand.Rand
	track  *Track
	teams  []*Team
	phase  Phase
	rounds int
	logger zerolog.Logger
}

// GameOption adjusts game construction.
type GameOption func(*Game)

// WithLogger sets the game's logger. Track resolution events inherit
// it as a sub-logger.
func WithLogger(logger zerolog.Logger) GameOption {
	return func(g *Game) { g.logger = logger }
}

// NewGame builds and resets a game on the given track. The RNG drives
// every random element: deck shuffles, draws, team ordering and the
// engine loop's team picks, so equal seeds replay identical races.
// Panics if rng or track is nil, or no teams are given.
func NewGame(rng *rand.Rand, track *Track, teams []*Team, opts ...GameOption) *Game {
	if rng == nil {
		panic("race: rng is required")
	}
	if track == nil {
		panic("race: track is required")
	}
	if len(teams) == 0 {
		panic("race: at least one team is required")
	}
	g := &Game{
		rng:    rng,
		track:  track,
		teams:  append([]*Team(nil), teams...),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.track.logger = g.logger.With().Str("component", "track").Logger()
	g.Reset()
	return g
}

// Reset restarts the race: clears the track, resets every team and
// reshuffles team order. Equal-order teams end up in random relative
// order; ordered teams (scripted rivals) keep their precedence.
func (g *Game) Reset() {
	g.track.Reset()
	g.rng.Shuffle(len(g.teams), func(i, j int) {
		g.teams[i], g.teams[j] = g.teams[j], g.teams[i]
	})
	sort.SliceStable(g.teams, func(i, j int) bool {
		return g.teams[i].order < g.teams[j].order
	})
	for _, t := range g.teams {
		t.Reset(g.rng)
	}
	g.phase = PhaseStart
	g.rounds = 0

	g.logger.Debug().
		Stringer("phase", g.phase).
		Int("teams", len(g.teams)).
		Str("track", g.track.name).
		Msg("game reset")
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Rounds returns the number of fully resolved rounds.
func (g *Game) Rounds() int { return g.rounds }

// Track returns the game's track.
func (g *Game) Track() *Track { return g.track }

// Teams returns the teams in acting order.
func (g *Game) Teams() []*Team {
	return append([]*Team(nil), g.teams...)
}

// Finished reports whether a rider has crossed the line.
func (g *Game) Finished() bool { return g.track.Finished() }

// Winner returns the leading rider once the race is decided, nil
// before that.
func (g *Game) Winner() *Rider {
	if !g.Finished() {
		return nil
	}
	return g.track.Leading()
}

// Riders returns every placed rider in race order, leading first.
func (g *Game) Riders() []*Rider { return g.track.Riders() }

// Standings returns the teams ordered by their best-placed rider.
// Teams with no rider on the track are omitted.
func (g *Game) Standings() []*Team {
	var standings []*Team
	seen := make(map[*Team]bool, len(g.teams))
	for _, r := range g.track.Riders() {
		if r.team == nil || seen[r.team] {
			continue
		}
		seen[r.team] = true
		standings = append(standings, r.team)
	}
	return standings
}

func (g *Game) allRiders() []*Rider {
	var riders []*Rider
	for _, t := range g.teams {
		riders = append(riders, t.riders...)
	}
	return riders
}

// ActiveTeams returns the teams that may act right now. During Start
// exactly one team places riders at a time, in team order; during Race
// every team still missing a committed card is active.
func (g *Game) ActiveTeams() []*Team {
	switch g.phase {
	case PhaseFinish:
		return nil
	case PhaseStart:
		for _, t := range g.teams {
			if len(t.unplacedRiders()) > 0 {
				return []*Team{t}
			}
		}
		return nil
	}

	var active []*Team
	for _, t := range g.teams {
		for _, r := range t.riders {
			if !r.HasCommitted() {
				active = append(active, t)
				break
			}
		}
	}
	return active
}

func (g *Game) isActive(team *Team) bool {
	return slices.Contains(g.ActiveTeams(), team)
}

// AvailableActions computes the authoritative action set for a team.
// Teams are expected to pick from this set; anything else is rejected
// by TakeAction.
func (g *Game) AvailableActions(team *Team) []Action {
	if !g.isActive(team) {
		return nil
	}

	switch g.phase {
	case PhaseStart:
		var actions []Action
		open := g.track.AvailableStart()
		for _, r := range team.unplacedRiders() {
			for _, s := range open {
				actions = append(actions, Place(r, s.Index()))
			}
		}
		return actions
	case PhaseRace:
		return team.availableActions()
	}
	return nil
}

// TakeAction validates and applies a single team action, then
// recomputes the phase. This is the only mutation entry point.
func (g *Game) TakeAction(team *Team, action Action) (Phase, error) {
	available := g.AvailableActions(team)
	if len(available) == 0 {
		return g.phase, fmt.Errorf("%w: %s in phase %s", ErrNotActive, team, g.phase)
	}
	if action.Rider == nil || action.Rider.team != team {
		return g.phase, fmt.Errorf("%w: %s does not command %s", ErrIllegalAction, team, action.Rider)
	}
	if !slices.Contains(available, action) {
		return g.phase, fmt.Errorf("%w: %s for %s", ErrIllegalAction, action, team)
	}

	var err error
	switch action.Kind {
	case ActionPlace:
		err = g.applyPlace(action)
	case ActionSelectRider:
		err = g.applySelectRider(action)
	case ActionSelectCard:
		err = g.applySelectCard(action)
	default:
		err = fmt.Errorf("%w: unknown kind %d", ErrIllegalAction, action.Kind)
	}
	if err != nil {
		return g.phase, err
	}

	if g.track.Finished() {
		g.phase = PhaseFinish
	} else if len(g.ActiveTeams()) == 0 {
		g.phase = g.phase.next()
	}
	return g.phase, nil
}

func (g *Game) applyPlace(action Action) error {
	if action.Section < 0 || action.Section >= g.track.start {
		return fmt.Errorf("%w: section %d is not in the start zone", ErrIllegalAction, action.Section)
	}
	if !g.track.sections[action.Section].add(action.Rider) {
		return fmt.Errorf("%w: section %d", ErrSectionFull, action.Section)
	}
	g.logger.Debug().Stringer("rider", action.Rider).Int("section", action.Section).
		Msg("rider placed")
	return nil
}

func (g *Game) applySelectRider(action Action) error {
	r := action.Rider
	if r.HasCommitted() || r.HasHand() {
		return fmt.Errorf("%w: %s cannot draw a hand now", ErrIllegalAction, r)
	}
	r.DrawHand()
	g.logger.Debug().Stringer("rider", r).Int("hand", len(r.hand)).
		Msg("rider drew hand")
	return nil
}

func (g *Game) applySelectCard(action Action) error {
	r := action.Rider
	if err := r.SelectCard(action.Card); err != nil {
		return err
	}
	r.DiscardHand()
	return g.resolveRoundIfReady()
}

// resolveRoundIfReady runs a full movement round once every rider of
// every team holds a committed card: riders move in track order with
// minimum speeds enforced, then slipstream and exhaustion settle, then
// the round counter advances.
func (g *Game) resolveRoundIfReady() error {
	for _, r := range g.allRiders() {
		if !r.HasCommitted() {
			return nil
		}
	}

	for _, r := range g.track.Riders() {
		card, ok := r.CommittedCard()
		if !ok {
			return fmt.Errorf("%w: %s has no committed card at resolution", ErrInvalidCard, r)
		}
		value := g.track.CardValue(r, card)
		moved := g.track.Move(r, value, true)
		r.clearCommitted()
		g.logger.Info().
			Stringer("rider", r).
			Stringer("card", card).
			Int("value", value).
			Int("moved", moved).
			Int("section", r.position).
			Msg("rider moved")
	}

	g.track.ResolveSlipstream()
	g.track.ResolveExhaustion()
	g.rounds++

	g.logger.Info().Int("round", g.rounds).Msg("round resolved")
	return nil
}

// Step picks one active team uniformly at random, asks its Director
// for the next action and applies it. A no-op when nobody can act.
func (g *Game) Step() (Phase, error) {
	teams := g.ActiveTeams()
	if len(teams) == 0 {
		return g.phase, nil
	}
	team := teams[g.rng.IntN(len(teams))]
	action, ok := team.selectAction(g)
	if !ok {
		return g.phase, nil
	}
	return g.TakeAction(team, action)
}

// Play steps the game until the race is decided.
func (g *Game) Play() error {
	for !g.Finished() {
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}
