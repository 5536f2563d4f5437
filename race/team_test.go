package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breakaway-games/peloton/internal/randutil"
)

func TestNewTeamDefaults(t *testing.T) {
	t.Parallel()

	team := NewTeam("T", nil)
	require.Len(t, team.riders, 2)
	assert.Equal(t, KindRouleur, team.riders[0].Kind())
	assert.Equal(t, KindSprinteur, team.riders[1].Kind())
	assert.True(t, team.ExhaustionEnabled())
	for _, r := range team.riders {
		assert.Same(t, team, r.Team())
	}
}

func TestNewTeamPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewTeam("empty", nil, WithRiders()) })

	r := NewRouleur()
	NewTeam("first", nil, WithRiders(r))
	assert.Panics(t, func() { NewTeam("second", nil, WithRiders(r)) },
		"a rider belongs to exactly one team")
}

func TestTeamHandicapSpread(t *testing.T) {
	t.Parallel()

	team := NewTeam("T", nil, WithTeamHandicap(5))
	assert.Equal(t, 3, team.riders[0].Handicap(), "earlier riders carry the remainder")
	assert.Equal(t, 2, team.riders[1].Handicap())

	// An explicit rider handicap survives the team spread.
	keep := NewRouleur(WithHandicap(1))
	team = NewTeam("U", nil, WithRiders(keep, NewSprinteur()), WithTeamHandicap(4))
	assert.Equal(t, 1, keep.Handicap())
	assert.Equal(t, 2, team.riders[1].Handicap())
}

func TestTeamHandSizeOverride(t *testing.T) {
	t.Parallel()

	team := NewTeam("T", nil, WithTeamHandSize(1))
	for _, r := range team.riders {
		assert.Equal(t, 1, r.HandSize())
	}
}

func TestAvailableRiders(t *testing.T) {
	t.Parallel()

	team := NewTeam("T", nil)
	team.Reset(randutil.New(1))
	assert.Len(t, team.AvailableRiders(), 2)

	team.riders[0].DrawHand()
	require.NoError(t, team.riders[0].SelectCard(team.riders[0].hand[0]))
	assert.Len(t, team.AvailableRiders(), 1, "committed rider is done this round")

	team.riders[1].finished = true
	assert.Empty(t, team.AvailableRiders())
}

func TestTeamAvailableActions(t *testing.T) {
	t.Parallel()

	team := NewTeam("T", nil)
	team.Reset(randutil.New(1))

	actions := team.availableActions()
	require.Len(t, actions, 2)
	for _, a := range actions {
		assert.Equal(t, ActionSelectRider, a.Kind)
	}

	team.riders[0].DrawHand()
	actions = team.availableActions()
	require.Len(t, actions, 4, "one card selection per hand card")
	for _, a := range actions {
		assert.Equal(t, ActionSelectCard, a.Kind)
		assert.Same(t, team.riders[0], a.Rider)
	}
}

func TestRiderWithHandPanicsOnTwoHands(t *testing.T) {
	t.Parallel()

	team := NewTeam("T", nil)
	team.Reset(randutil.New(1))
	team.riders[0].DrawHand()
	team.riders[1].DrawHand()

	assert.Panics(t, func() { team.riderWithHand() },
		"two open hands means the engine lost sequencing")
}

func TestTeamResetClearsDirectorState(t *testing.T) {
	t.Parallel()

	d := &resettingDirector{}
	team := NewTeam("T", d)
	team.Reset(randutil.New(1))
	assert.Equal(t, 1, d.resets)
}

type resettingDirector struct {
	nopDirector
	resets int
}

func (d *resettingDirector) Reset() { d.resets++ }
