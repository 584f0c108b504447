package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/hoyowiki/cmd/hoyowiki/commands"
	"git.home.luguber.info/inful/hoyowiki/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("hoyowiki"),
		kong.Description("Wiki content service: harvests game wiki pages, transcodes their markup to chat Markdown and serves the result over HTTP."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	ctx.FatalIfErrorf(ctx.Run(&commands.Global{}, cli))
}
