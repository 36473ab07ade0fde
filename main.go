package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/texturetool/cmd"
	"github.com/lepinkainen/texturetool/types"
)

var Version = "dev"

type CLI struct {
	Run     cmd.RunCmd       `cmd:"" default:"withargs" help:"Run one operator over a texture tree"`
	List    cmd.ListCmd      `cmd:"" help:"List the available operators"`
	Version kong.VersionFlag `help:"Show version information"`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("texturetool"),
		kong.Description("Split, merge, convert and classify texture channels across a directory tree."),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
		kong.Bind(&types.AppContext{Version: Version}),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	// Usage errors share the exit status of configuration errors.
	parser, err := newParser(&cli, kong.Exit(func(code int) {
		if code != 0 {
			code = 1
		}
		os.Exit(code)
	}))
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
