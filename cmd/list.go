package cmd

import (
	"fmt"

	"github.com/lepinkainen/texturetool/dispatch"
	"github.com/lepinkainen/texturetool/texture"
	"github.com/lepinkainen/texturetool/types"
	"github.com/lepinkainen/texturetool/ui"
)

// ListCmd prints the operator table.
type ListCmd struct {
	Kind string `help:"Only list operators of this kind" enum:"all,transcode,classify,check" default:"all"`
}

func (cmd *ListCmd) Run(appCtx *types.AppContext) error {
	out := appCtx.Stdout()

	// The table only needs an engine for binding; no run root is touched.
	table := dispatch.NewTable(texture.NewEngine(&types.RunConfig{}))

	fmt.Fprintln(out, ui.HeaderStyle.Render("Available operators"))
	for _, e := range table.Entries() {
		if cmd.Kind != "" && cmd.Kind != "all" && e.Kind.String() != cmd.Kind {
			continue
		}
		name := fmt.Sprintf("%-16s", e.Name)
		if e.Destructive {
			name = ui.WarnStyle.Render(name)
		} else {
			name = ui.InfoStyle.Render(name)
		}
		line := fmt.Sprintf("  %s %-10s %s", name, e.Kind, e.Help)
		if e.Destructive {
			line += ui.WarnStyle.Render(" (destructive)")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
