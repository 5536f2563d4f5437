package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breakaway-games/peloton/cards"
	"github.com/breakaway-games/peloton/internal/randutil"
	"github.com/breakaway-games/peloton/race"
	"github.com/breakaway-games/peloton/trackfile"
)

func TestNew(t *testing.T) {
	t.Parallel()

	rng := randutil.New(1)
	for _, name := range Names() {
		team, err := New(name, name, rng)
		require.NoError(t, err, name)
		assert.Equal(t, name, team.Name())
	}

	_, err := New("zone2", "T", rng)
	assert.Error(t, err)
}

func TestValueOrdering(t *testing.T) {
	t.Parallel()

	hand := []cards.Card{cards.Exhaustion, cards.Card7, cards.Card2, cards.Attack}
	assert.Equal(t, cards.Card7, bestCard(hand), "plain cards beat specials of equal front")
	assert.Equal(t, cards.Exhaustion, worstCard(hand))
	assert.Equal(t, cards.Card9, bestCard([]cards.Card{cards.Card9, cards.Attack}))
}

func TestSprinteurFirst(t *testing.T) {
	t.Parallel()

	rouleur, sprinteur := race.NewRouleur(), race.NewSprinteur()
	sorted := sprinteurFirst([]*race.Rider{rouleur, sprinteur})
	assert.Same(t, sprinteur, sorted[0])
	assert.Same(t, rouleur, sorted[1])
}

func flatTrack(t *testing.T, n, finish int) *race.Track {
	t.Helper()
	profiles := make([]race.Profile, n)
	for i := range profiles {
		profiles[i] = race.Profile{Lanes: 2, Slipstream: true}
	}
	track, err := race.NewTrack("test", profiles, race.WithFinish(finish))
	require.NoError(t, err)
	return track
}

// placedGame builds a single-team game and walks it through start
// placement so race-phase behavior can be exercised.
func placedGame(t *testing.T, track *race.Track, team *race.Team, seed int64) *race.Game {
	t.Helper()
	g := race.NewGame(randutil.New(seed), track, []*race.Team{team})
	for g.Phase() == race.PhaseStart {
		_, err := g.Step()
		require.NoError(t, err)
	}
	return g
}

func TestSimpleChoosesBestCard(t *testing.T) {
	t.Parallel()

	rng := randutil.New(2)
	d := NewSimple(rng)
	team := race.NewTeam("T", d)
	g := placedGame(t, flatTrack(t, 30, 25), team, 2)

	r := d.NextRider(g, team)
	require.NotNil(t, r)
	_, err := g.TakeAction(team, race.SelectRider(r))
	require.NoError(t, err)

	r.ReplaceHand(cards.Card3, cards.Card7, cards.Card4)
	card, ok := d.ChooseCard(g, team, r)
	require.True(t, ok)
	assert.Equal(t, cards.Card7, card)
}

func TestSimplePlacesSprinteurAhead(t *testing.T) {
	t.Parallel()

	rng := randutil.New(3)
	team := race.NewTeam("T", NewSimple(rng))
	g := placedGame(t, flatTrack(t, 30, 25), team, 3)

	// Both riders end on the foremost section; the sprinteur went first
	// and holds the leading lane.
	riders := team.Riders()
	rouleur, sprinteur := riders[0], riders[1]
	assert.Equal(t, 4, sprinteur.Position())
	assert.Equal(t, 4, rouleur.Position())
	assert.Same(t, sprinteur, g.Riders()[0])
}

func TestHeuristicSavesTopCardsEarly(t *testing.T) {
	t.Parallel()

	// Four known cards, all drawn at once: top three are 7/5/4, so
	// only the 3 is expendable while the finish is out of reach.
	deck := []cards.Card{cards.Card3, cards.Card4, cards.Card5, cards.Card7}
	newTeam := func(d race.Director) *race.Team {
		rider := race.NewRider("R", race.KindRouleur, deck)
		return race.NewTeam("T", d, race.WithRiders(rider))
	}

	d := NewHeuristic()

	farTeam := newTeam(d)
	farGame := placedGame(t, flatTrack(t, 30, 25), farTeam, 4)
	r := d.NextRider(farGame, farTeam)
	_, err := farGame.TakeAction(farTeam, race.SelectRider(r))
	require.NoError(t, err)
	card, ok := d.ChooseCard(farGame, farTeam, r)
	require.True(t, ok)
	assert.Equal(t, cards.Card3, card, "finish out of reach: burn the weak card")

	nearTeam := newTeam(d)
	nearGame := placedGame(t, flatTrack(t, 30, 20), nearTeam, 4)
	r = d.NextRider(nearGame, nearTeam)
	_, err = nearGame.TakeAction(nearTeam, race.SelectRider(r))
	require.NoError(t, err)
	card, ok = d.ChooseCard(nearGame, nearTeam, r)
	require.True(t, ok)
	assert.Equal(t, cards.Card7, card, "finish within the top three: go all in")
}

func TestPelotonTeamShape(t *testing.T) {
	t.Parallel()

	team := NewPelotonTeam("PEL", randutil.New(5))
	assert.Equal(t, 0, team.Order())
	assert.False(t, team.ExhaustionEnabled())
	riders := team.Riders()
	require.Len(t, riders, 2)
	for _, r := range riders {
		assert.Equal(t, 1, r.HandSize())
	}
}

func TestPelotonDomestiqueReplaysLeaderCard(t *testing.T) {
	t.Parallel()

	team := NewPelotonTeam("PEL", randutil.New(6))
	g := race.NewGame(randutil.New(6), flatTrack(t, 30, 25), []*race.Team{team})

	// Two placements, leader select+play, domestique select: five
	// engine steps with a single team.
	for range 5 {
		_, err := g.Step()
		require.NoError(t, err)
	}

	leader, domestique := team.Riders()[0], team.Riders()[1]
	card, ok := leader.CommittedCard()
	require.True(t, ok, "leader has committed")
	require.True(t, domestique.HasHand())
	assert.Equal(t, []cards.Card{cards.Exhaustion}, domestique.Hand(),
		"empty deck forces the placeholder hand")

	_, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, g.Rounds(), "domestique's play completes the round")
	require.True(t, domestique.Placed())

	// The domestique rode the leader's card: with the leader ahead it
	// moves at the behind value.
	assert.Equal(t, card.Behind(), domestique.Position()-3,
		"domestique started at section 3")
}

func TestMuscleTeamShape(t *testing.T) {
	t.Parallel()

	team := NewMuscleTeam("MUS", randutil.New(7))
	assert.Equal(t, 1, team.Order())
	assert.False(t, team.ExhaustionEnabled())

	riders := team.Riders()
	require.Len(t, riders, 2)
	assert.Equal(t, race.KindSprinteur, riders[0].Kind())
	assert.Equal(t, race.KindRouleur, riders[1].Kind())

	team.Reset(randutil.New(7))
	fives := 0
	for _, c := range riders[0].AllCards() {
		if c == cards.Card5 {
			fives++
		}
	}
	assert.Equal(t, 4, fives, "muscle sprinteur packs an extra 5")
	assert.Len(t, riders[0].AllCards(), 16)
}

func TestScriptedRivalsPlaceFirst(t *testing.T) {
	t.Parallel()

	rng := randutil.New(8)
	peloton := NewPelotonTeam("PEL", rng)
	muscle := NewMuscleTeam("MUS", rng)
	auto := race.NewTeam("AUTO", NewAuto(rng))

	g := race.NewGame(rng, flatTrack(t, 30, 25), []*race.Team{auto, peloton, muscle})
	teams := g.Teams()
	assert.Equal(t, "PEL", teams[0].Name())
	assert.Equal(t, "MUS", teams[1].Name())

	// Peloton claims the two foremost start slots before anyone else.
	for range 2 {
		_, err := g.Step()
		require.NoError(t, err)
	}
	for _, r := range peloton.Riders() {
		assert.True(t, r.Placed())
		assert.GreaterOrEqual(t, r.Position(), 3)
	}
}

func TestFullRaceWithBuiltinStrategies(t *testing.T) {
	t.Parallel()

	play := func(seed int64) (string, int) {
		rng := randutil.New(seed)
		track, err := trackfile.Stage("avenue-corso-paseo")
		require.NoError(t, err)

		teams := make([]*race.Team, 0, len(Names()))
		for _, name := range Names() {
			team, err := New(name, name, rng)
			require.NoError(t, err)
			teams = append(teams, team)
		}

		g := race.NewGame(rng, track, teams)
		require.NoError(t, g.Play())
		require.Equal(t, race.PhaseFinish, g.Phase())
		winner := g.Winner()
		require.NotNil(t, winner)
		return winner.Team().Name(), g.Rounds()
	}

	winner1, rounds1 := play(42)
	winner2, rounds2 := play(42)
	assert.Equal(t, winner1, winner2, "same seed, same race")
	assert.Equal(t, rounds1, rounds2)
}
