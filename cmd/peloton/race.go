package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/breakaway-games/peloton/cards"
	"github.com/breakaway-games/peloton/cmd/peloton/shared"
	"github.com/breakaway-games/peloton/internal/console"
	"github.com/breakaway-games/peloton/internal/display"
	"github.com/breakaway-games/peloton/internal/randutil"
	"github.com/breakaway-games/peloton/race"
	"github.com/breakaway-games/peloton/strategy"
	"github.com/breakaway-games/peloton/trackfile"
)

type RaceCmd struct {
	Track     string `kong:"default='avenue-corso-paseo',help='Stage to race on (see the tracks command)'"`
	TrackFile string `kong:"type='path',help='Load track layouts from an HCL file instead of the catalog'"`
	Teams     string `kong:"default='peloton,muscle,heuristic',help='Comma-separated list of team strategies'"`
	Kinds     string `kong:"type='path',help='YAML file defining custom rider kinds'"`
	Kind      string `kong:"help='Field strategy teams with riders of this custom kind (requires --kinds)'"`
	Human     bool   `kong:"help='Add an interactively controlled team'"`
	Seed      int64  `kong:"help='Seed for deterministic racing (0 for random)'"`
	Quiet     bool   `kong:"help='Only print the final standings'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
}

func (c *RaceCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)
	logger.Debug().Int64("seed", seed).Msg("seeding race")

	track, err := c.track()
	if err != nil {
		return err
	}

	var kinds map[string][]cards.Card
	if c.Kinds != "" {
		if kinds, err = cards.LoadKinds(c.Kinds); err != nil {
			return err
		}
	}

	var teams []*race.Team
	for _, name := range strings.Split(c.Teams, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		opts, err := c.teamOptions(name, kinds)
		if err != nil {
			return err
		}
		team, err := strategy.New(name, name, rng, opts...)
		if err != nil {
			return err
		}
		teams = append(teams, team)
	}
	if c.Human {
		teams = append(teams, race.NewTeam("You", console.New(), race.WithColor("blue")))
	}
	if len(teams) == 0 {
		return fmt.Errorf("no teams configured")
	}

	game := race.NewGame(rng, track, teams, race.WithLogger(logger))
	render := display.New()

	rounds := 0
	for game.Phase() != race.PhaseFinish {
		if _, err := game.Step(); err != nil {
			return err
		}
		if game.Rounds() != rounds {
			rounds = game.Rounds()
			if !c.Quiet {
				fmt.Printf("\nRound %d\n%s\n", rounds, render.Track(game.Track()))
			}
		}
	}

	fmt.Printf("\n%s\n", render.Standings(game))
	fmt.Printf("\n%s wins after %d rounds (seed %d)\n", game.Winner(), game.Rounds(), seed)
	return nil
}

// teamOptions builds per-team construction options. A custom kind swaps
// the team's riders for two of the kind's deck; the scripted rivals keep
// their prescribed decks.
func (c *RaceCmd) teamOptions(strategyName string, kinds map[string][]cards.Card) ([]race.TeamOption, error) {
	if c.Kind == "" {
		return nil, nil
	}
	if c.Kinds == "" {
		return nil, fmt.Errorf("--kind requires --kinds")
	}
	deck, ok := kinds[c.Kind]
	if !ok {
		return nil, fmt.Errorf("kind %q not defined in %s", c.Kind, c.Kinds)
	}
	switch strategyName {
	case "peloton", "muscle":
		return nil, fmt.Errorf("custom rider kinds cannot replace the scripted %s team", strategyName)
	}
	return []race.TeamOption{race.WithRiders(
		race.NewRider(c.Kind, c.Kind, deck),
		race.NewRider(c.Kind, c.Kind, deck),
	)}, nil
}

func (c *RaceCmd) track() (*race.Track, error) {
	if c.TrackFile == "" {
		return trackfile.Stage(c.Track)
	}
	tracks, err := trackfile.Load(c.TrackFile)
	if err != nil {
		return nil, err
	}
	for _, t := range tracks {
		if t.Name() == c.Track {
			return t, nil
		}
	}
	return nil, fmt.Errorf("track %q not found in %s", c.Track, c.TrackFile)
}
