package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/breakaway-games/peloton/cmd/peloton/shared"
	"github.com/breakaway-games/peloton/internal/simulator"
)

type SimulateCmd struct {
	Races    int           `kong:"default='100',help='Number of races to simulate'"`
	Track    string        `kong:"default='avenue-corso-paseo',help='Stage to race on'"`
	Teams    string        `kong:"default='peloton,muscle,heuristic',help='Comma-separated list of team strategies'"`
	Seed     int64         `kong:"help='Base seed; race i runs on seed+i (0 for random)'"`
	Parallel int           `kong:"default='1',help='Races to run concurrently'"`
	Timeout  time.Duration `kong:"default='30s',help='Per-race watchdog timeout'"`
	Debug    bool          `kong:"help='Enable debug logging'"`
	LogJSON  bool          `kong:"help='Log structured JSON instead of console output'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	if c.LogJSON {
		logger = shared.SetupStructuredLogger(c.Debug)
	}
	ctx := shared.SetupSignalHandler(logger)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var strategies []string
	for _, name := range strings.Split(c.Teams, ",") {
		if name = strings.TrimSpace(name); name != "" {
			strategies = append(strategies, name)
		}
	}

	sim := simulator.New(simulator.Config{
		Races:      c.Races,
		Track:      c.Track,
		Strategies: strategies,
		Seed:       seed,
		Parallel:   c.Parallel,
		Timeout:    c.Timeout,
		Logger:     logger,
	})

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Print(stats.Summary())
	fmt.Printf("\nCompleted in %.1fs (base seed %d)\n", time.Since(start).Seconds(), seed)
	return nil
}
