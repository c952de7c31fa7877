package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Run     RunCmd           `cmd:"" help:"Run a batch of simulated matches and report aggregate statistics"`
	Match   MatchCmd         `cmd:"" help:"Play a single match point by point"`
	Watch   WatchCmd         `cmd:"" help:"Serve live match replays over WebSocket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tennissim"),
		kong.Description("Stochastic tennis match simulator with live win probabilities"),
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
