package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breakaway-games/peloton/cards"
	"github.com/breakaway-games/peloton/internal/randutil"
)

// nopDirector answers nothing; for teams driven through TakeAction.
type nopDirector struct{}

func (nopDirector) StartingPosition(*Game, *Team) (*Rider, int) { return nil, 0 }

func (nopDirector) NextRider(*Game, *Team) *Rider { return nil }

func (nopDirector) ChooseCard(*Game, *Team, *Rider) (cards.Card, bool) { return 0, false }

// frontRunner is a deterministic test director: front-most start
// placement, first available rider, highest front value card.
type frontRunner struct{}

func (frontRunner) StartingPosition(g *Game, team *Team) (*Rider, int) {
	riders := team.unplacedRiders()
	open := g.track.AvailableStart()
	if len(riders) == 0 || len(open) == 0 {
		return nil, 0
	}
	return riders[0], open[len(open)-1].Index()
}

func (frontRunner) NextRider(_ *Game, team *Team) *Rider {
	available := team.AvailableRiders()
	if len(available) == 0 {
		return nil
	}
	return available[0]
}

func (frontRunner) ChooseCard(_ *Game, _ *Team, r *Rider) (cards.Card, bool) {
	hand := r.Hand()
	if len(hand) == 0 {
		return 0, false
	}
	best := hand[0]
	for _, c := range hand[1:] {
		if c.Front() > best.Front() {
			best = c
		}
	}
	return best, true
}

func shortTrack(t *testing.T) *Track {
	t.Helper()
	track, err := NewTrack("short", flatProfiles(20), WithFinish(15))
	require.NoError(t, err)
	return track
}

func newTestGame(t *testing.T, seed int64, directors ...Director) (*Game, []*Team) {
	t.Helper()
	teams := make([]*Team, len(directors))
	for i, d := range directors {
		teams[i] = NewTeam(string(rune('A'+i)), d, WithOrder(i))
	}
	g := NewGame(randutil.New(seed), shortTrack(t), teams)
	return g, g.Teams()
}

func TestNewGamePanics(t *testing.T) {
	t.Parallel()

	track := shortTrack(t)
	teams := []*Team{NewTeam("T", nil)}
	assert.Panics(t, func() { NewGame(nil, track, teams) })
	assert.Panics(t, func() { NewGame(randutil.New(1), nil, teams) })
	assert.Panics(t, func() { NewGame(randutil.New(1), track, nil) })
}

func TestStartPhaseSequencing(t *testing.T) {
	t.Parallel()

	g, teams := newTestGame(t, 1, nil, nil)
	a, b := teams[0], teams[1]
	require.Equal(t, "A", a.Name(), "order 0 acts first")

	assert.Equal(t, PhaseStart, g.Phase())
	assert.Equal(t, []*Team{a}, g.ActiveTeams(), "one team places at a time")
	assert.Empty(t, g.AvailableActions(b))

	_, err := g.TakeAction(b, Place(b.riders[0], 0))
	assert.ErrorIs(t, err, ErrNotActive)

	actions := g.AvailableActions(a)
	assert.Len(t, actions, 10, "2 unplaced riders x 5 open start sections")

	_, err = g.TakeAction(a, Place(a.riders[0], 4))
	require.NoError(t, err)
	assert.Equal(t, 4, a.riders[0].Position())
	assert.Equal(t, []*Team{a}, g.ActiveTeams(), "second rider still unplaced")

	_, err = g.TakeAction(a, Place(a.riders[1], 10))
	assert.ErrorIs(t, err, ErrIllegalAction, "section 10 is not in the start zone")

	_, err = g.TakeAction(a, Place(b.riders[0], 4))
	assert.ErrorIs(t, err, ErrIllegalAction, "cannot place another team's rider")

	_, err = g.TakeAction(a, Place(a.riders[1], 4))
	require.NoError(t, err)
	assert.Equal(t, []*Team{b}, g.ActiveTeams())

	for _, r := range b.riders {
		_, err = g.TakeAction(b, Place(r, 3))
		require.NoError(t, err)
	}
	assert.Equal(t, PhaseRace, g.Phase(), "all riders placed")
}

func placeAll(t *testing.T, g *Game, teams []*Team) {
	t.Helper()
	for _, team := range teams {
		for i, r := range team.riders {
			_, err := g.TakeAction(team, Place(r, i))
			require.NoError(t, err)
		}
	}
	require.Equal(t, PhaseRace, g.Phase())
}

func TestRacePhaseHandFlow(t *testing.T) {
	t.Parallel()

	g, teams := newTestGame(t, 1, nil, nil)
	a := teams[0]
	placeAll(t, g, teams)

	actions := g.AvailableActions(a)
	require.Len(t, actions, 2)
	for _, action := range actions {
		assert.Equal(t, ActionSelectRider, action.Kind)
	}

	_, err := g.TakeAction(a, SelectRider(a.riders[0]))
	require.NoError(t, err)
	assert.True(t, a.riders[0].HasHand())

	actions = g.AvailableActions(a)
	require.Len(t, actions, 4)
	for _, action := range actions {
		assert.Equal(t, ActionSelectCard, action.Kind)
	}

	// At most one open hand per team: drawing for the second rider now
	// is not offered.
	_, err = g.TakeAction(a, SelectRider(a.riders[1]))
	assert.ErrorIs(t, err, ErrIllegalAction)

	card := a.riders[0].hand[0]
	_, err = g.TakeAction(a, SelectCard(a.riders[0], card))
	require.NoError(t, err)
	assert.True(t, a.riders[0].HasCommitted())
	assert.False(t, a.riders[0].HasHand(), "hand discarded after commitment")

	actions = g.AvailableActions(a)
	require.Len(t, actions, 1, "only the uncommitted rider is selectable")
	assert.Same(t, a.riders[1], actions[0].Rider)
}

func commitAll(t *testing.T, g *Game, team *Team) {
	t.Helper()
	for range team.riders {
		_, err := g.TakeAction(team, g.AvailableActions(team)[0])
		require.NoError(t, err)
		_, err = g.TakeAction(team, g.AvailableActions(team)[0])
		require.NoError(t, err)
	}
}

func TestRoundResolution(t *testing.T) {
	t.Parallel()

	g, teams := newTestGame(t, 1, nil, nil)
	placeAll(t, g, teams)

	commitAll(t, g, teams[0])
	assert.Equal(t, 0, g.Rounds(), "round waits for every team")

	commitAll(t, g, teams[1])
	assert.Equal(t, 1, g.Rounds())

	for _, team := range teams {
		for _, r := range team.riders {
			assert.False(t, r.HasCommitted(), "committed cards consumed by resolution")
			assert.Greater(t, r.Position(), 1, "every rider moved")
		}
	}
}

func TestFullRaceDeterministic(t *testing.T) {
	t.Parallel()

	play := func() (string, int, int) {
		g, _ := newTestGame(t, 42, frontRunner{}, frontRunner{})
		require.NoError(t, g.Play())
		w := g.Winner()
		require.NotNil(t, w)
		return w.Team().Name(), w.Position(), g.Rounds()
	}

	team1, pos1, rounds1 := play()
	team2, pos2, rounds2 := play()
	assert.Equal(t, team1, team2, "same seed, same winner")
	assert.Equal(t, pos1, pos2)
	assert.Equal(t, rounds1, rounds2)
	assert.Positive(t, rounds1)
}

func TestFinishIsTerminal(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, 7, frontRunner{}, frontRunner{})
	require.NoError(t, g.Play())

	require.Equal(t, PhaseFinish, g.Phase())
	winner := g.Winner()
	require.NotNil(t, winner)
	assert.GreaterOrEqual(t, winner.Position(), g.Track().Finish())
	assert.Same(t, winner, g.Riders()[0], "winner leads the standings")

	for _, team := range g.Teams() {
		assert.Empty(t, g.AvailableActions(team))
		_, err := g.TakeAction(team, SelectRider(team.riders[0]))
		assert.ErrorIs(t, err, ErrNotActive)
	}

	phase, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, PhaseFinish, phase, "step is a no-op once decided")
}

func TestWinnerNilBeforeFinish(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, 1, nil, nil)
	assert.Nil(t, g.Winner())
}

func TestGameReset(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, 3, frontRunner{}, frontRunner{})
	require.NoError(t, g.Play())
	require.Equal(t, PhaseFinish, g.Phase())

	g.Reset()
	assert.Equal(t, PhaseStart, g.Phase())
	assert.Equal(t, 0, g.Rounds())
	assert.Nil(t, g.Track().Leading())
	for _, team := range g.Teams() {
		for _, r := range team.riders {
			assert.False(t, r.Placed())
			assert.False(t, r.Finished())
		}
	}

	require.NoError(t, g.Play())
	assert.Equal(t, PhaseFinish, g.Phase(), "a reset game plays again")
}

func TestTeamOrderStableAcrossReset(t *testing.T) {
	t.Parallel()

	g, teams := newTestGame(t, 5, nil, nil)
	require.Equal(t, "A", teams[0].Name())
	require.Equal(t, "B", teams[1].Name())

	for range 10 {
		g.Reset()
		teams = g.Teams()
		assert.Equal(t, "A", teams[0].Name(), "explicit orders survive the shuffle")
	}
}
