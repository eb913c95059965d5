// Command hashmark is a terminal hashtag editor.
//
// It opens an interactive editor where typing "#" shows suggestions, and
// offers one-shot scan, commit and tag commands for scripting.
package main

import (
	"github.com/alecthomas/kong"

	"github.com/iw2rmb/hashmark"
)

// Globals are flags shared by every command.
type Globals struct {
	Config string `help:"Path to config.toml." type:"path"`
}

type cli struct {
	Globals

	Edit    EditCmd    `cmd:"" default:"withargs" help:"Open the interactive editor."`
	Scan    ScanCmd    `cmd:"" help:"Show the hashtag query and suggestions at the caret."`
	Commit  CommitCmd  `cmd:"" help:"Replace the hashtag query at the caret with a choice."`
	Tag     TagCmd     `cmd:"" help:"Tag the typed hashtag before the caret."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

// VersionCmd prints the build banner.
type VersionCmd struct{}

func (c *VersionCmd) Run(kctx *kong.Context) error {
	_, err := kctx.Stdout.Write([]byte(hashmark.BuildInfo() + "\n"))
	return err
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("hashmark"),
		kong.Description("Edit text with hashtag suggestions and tagging."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&c.Globals)
	ctx.FatalIfErrorf(err)
}
