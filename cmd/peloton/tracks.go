package main

import (
	"fmt"

	"github.com/breakaway-games/peloton/trackfile"
)

type TracksCmd struct {
	Verbose bool `kong:"short='V',help='Show the profile runs of every stage'"`
}

func (c *TracksCmd) Run() error {
	for _, name := range trackfile.StageNames() {
		track, err := trackfile.Stage(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-22s %3d sections, start %d, finish %d, %d-%d teams\n",
			name, track.Len(), track.Start(), track.Finish(),
			track.MinPlayers(), track.MaxPlayers())
		if c.Verbose {
			summary, err := trackfile.StageSummary(name)
			if err != nil {
				return err
			}
			fmt.Printf("    %s\n", summary)
		}
	}
	return nil
}
