// Package simulator plays batches of deterministic races and
// aggregates the outcomes.
package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/breakaway-games/peloton/internal/raceid"
	"github.com/breakaway-games/peloton/internal/randutil"
	"github.com/breakaway-games/peloton/race"
	"github.com/breakaway-games/peloton/strategy"
	"github.com/breakaway-games/peloton/trackfile"
)

// Config holds simulation parameters. Each race derives its own seed
// as Seed+i, so a batch is reproducible regardless of Parallel.
type Config struct {
	Races      int
	Track      string
	Strategies []string
	Seed       int64
	Parallel   int
	Timeout    time.Duration
	Logger     zerolog.Logger
	Clock      quartz.Clock
}

// Simulator runs race simulations.
type Simulator struct {
	config Config
}

// New builds a simulator. Zero-value config fields get defaults: one
// race, the flat catalog stage, peloton/muscle/heuristic teams, serial
// execution, the real clock.
func New(config Config) *Simulator {
	if config.Races <= 0 {
		config.Races = 1
	}
	if config.Track == "" {
		config.Track = "avenue-corso-paseo"
	}
	if len(config.Strategies) == 0 {
		config.Strategies = []string{"peloton", "muscle", "heuristic"}
	}
	if config.Parallel <= 0 {
		config.Parallel = 1
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// Run plays the configured batch and returns aggregate statistics. A
// race that exceeds the timeout aborts the batch: a hung race means a
// desynchronized Director, not bad luck.
func (s *Simulator) Run(ctx context.Context) (*Statistics, error) {
	results := make([]Result, s.config.Races)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallel)
	for i := range s.config.Races {
		g.Go(func() error {
			result, err := s.playRace(ctx, s.config.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("race %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := NewStatistics()
	for _, result := range results {
		stats.Add(result)
	}
	return stats, nil
}

// Result is the outcome of a single race.
type Result struct {
	ID     string
	Seed   int64
	Winner string
	Rider  string
	Rounds int
	Margin int
}

func (s *Simulator) buildGame(seed int64) (*race.Game, error) {
	rng := randutil.New(seed)

	track, err := trackfile.Stage(s.config.Track)
	if err != nil {
		return nil, err
	}

	teams := make([]*race.Team, len(s.config.Strategies))
	counts := map[string]int{}
	for i, name := range s.config.Strategies {
		counts[name]++
		teamName := name
		if n := counts[name]; n > 1 {
			teamName = fmt.Sprintf("%s-%d", name, n)
		}
		team, err := strategy.New(name, teamName, rng)
		if err != nil {
			return nil, err
		}
		teams[i] = team
	}

	return race.NewGame(rng, track, teams, race.WithLogger(s.config.Logger)), nil
}

func (s *Simulator) playRace(ctx context.Context, seed int64) (Result, error) {
	id := raceid.New()
	logger := s.config.Logger.With().Str("race_id", id).Int64("seed", seed).Logger()

	game, err := s.buildGame(seed)
	if err != nil {
		return Result{}, err
	}

	done := make(chan error, 1)
	go func() { done <- game.Play() }()

	var timeout <-chan struct{}
	if s.config.Timeout > 0 {
		fired := make(chan struct{})
		timer := s.config.Clock.AfterFunc(s.config.Timeout, func() {
			close(fired)
		})
		defer timer.Stop()
		timeout = fired
	}

	select {
	case err := <-done:
		if err != nil {
			return Result{}, err
		}
	case <-timeout:
		return Result{}, fmt.Errorf("hang detected after %s", s.config.Timeout)
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	winner := game.Winner()
	if winner == nil {
		return Result{}, fmt.Errorf("race finished without a winner")
	}
	result := Result{
		ID:     id,
		Seed:   seed,
		Winner: winner.Team().Name(),
		Rider:  winner.Kind(),
		Rounds: game.Rounds(),
		Margin: margin(game),
	}

	logger.Info().
		Str("winner", result.Winner).
		Str("rider", result.Rider).
		Int("rounds", result.Rounds).
		Int("margin", result.Margin).
		Msg("race finished")
	return result, nil
}

// margin is the winner's gap to the next rider in sections.
func margin(game *race.Game) int {
	riders := game.Riders()
	if len(riders) < 2 {
		return 0
	}
	return riders[0].Position() - riders[1].Position()
}
