package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Race     RaceCmd          `cmd:"" help:"Play a single race"`
	Simulate SimulateCmd      `cmd:"" help:"Run a batch of races and report statistics"`
	Tracks   TracksCmd        `cmd:"" help:"List the built-in stages"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("peloton"),
		kong.Description("Tactical cycling race simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
