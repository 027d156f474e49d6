package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	LogLevel string `default:"info" enum:"debug,info,warn,error" help:"Log level (debug|info|warn|error)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play hands at a table of agents"`
	Simulate SimulateCmd      `cmd:"" help:"Play many independent hands and summarise the results"`
	Bot      BotCmd           `cmd:"" help:"Serve a built-in participant over websocket"`
	Odds     OddsCmd          `cmd:"" help:"Estimate hand equity by Monte Carlo"`
	Stats    StatsCmd         `cmd:"" help:"Show per-player results from a hand database"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("No-Limit Texas Hold'em hand simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
