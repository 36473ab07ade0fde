package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/texturetool/dispatch"
	"github.com/lepinkainen/texturetool/texture"
	"github.com/lepinkainen/texturetool/types"
	"github.com/lepinkainen/texturetool/ui"
	"github.com/lepinkainen/texturetool/utils"
)

// RunCmd applies one operator to every image under a directory.
type RunCmd struct {
	Directory   string  `short:"d" required:"" help:"Root directory of the texture tree" type:"path"`
	Command     string  `short:"c" required:"" help:"Operator to run (see 'list')"`
	Output      string  `short:"o" help:"Output format for written images" default:"png" enum:"png,tga"`
	Parallel    bool    `short:"p" help:"Process files on a worker pool"`
	Multiplier  int     `short:"m" help:"Workers per CPU when running in parallel" default:"5"`
	Threshold   float64 `short:"t" help:"Classifier threshold (a colour count for unique_colors)" default:"0.5"`
	Layout      string  `help:"Channel directory layout for split/merge" default:"tree" enum:"tree,flat"`
	SolidSample bool    `help:"Store solid-colour images as a 1x1 sample"`
	DryRun      bool    `help:"Show what would be written without touching files"`
	TUI         bool    `name:"tui" help:"Show the interactive progress view for parallel runs"`
	Quiet       bool    `short:"q" help:"Only print failures and the summary"`
}

// Options converts the flags into RunOptions.
func (cmd *RunCmd) Options() types.RunOptions {
	return types.RunOptions{
		Directory:   cmd.Directory,
		Command:     cmd.Command,
		Output:      cmd.Output,
		Parallel:    cmd.Parallel,
		Multiplier:  cmd.Multiplier,
		Threshold:   cmd.Threshold,
		Layout:      cmd.Layout,
		SolidSample: cmd.SolidSample,
		DryRun:      cmd.DryRun,
	}
}

func (cmd *RunCmd) Run(appCtx *types.AppContext) error {
	out := appCtx.Stdout()

	cfg, err := types.NewRunConfig(cmd.Options())
	if err != nil {
		return err
	}

	engine := texture.NewEngine(cfg)
	entry, err := dispatch.NewTable(engine).Lookup(cfg.Command)
	if err != nil {
		return err
	}

	files, err := texture.FindImageFiles(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to scan directory %s: %w", cfg.Root, err)
	}

	d := dispatch.New(entry.Op, cfg, nil)

	fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("Texture Tool %s", appCtx.VersionOrDefault())))
	if cfg.DryRun {
		fmt.Fprintln(out, ui.ProcessingStyle.Render("🔍 DRY RUN MODE - No files will be modified"))
	} else if entry.Destructive {
		fmt.Fprintln(out, ui.WarnStyle.Render(fmt.Sprintf("⚠️  %s deletes source files under %s", entry.Name, cfg.Root)))
	}

	if len(files) == 0 {
		fmt.Fprintln(out, "🎯 No image files found.")
		return nil
	}

	if !cmd.Quiet && !utils.HasTool("fd") {
		fmt.Fprintln(out, ui.MutedStyle.Render("ℹ️  fd not found, scanned with filepath.WalkDir. "+utils.InstallHint("fd")))
	}
	if cfg.Parallel && utils.IsNetworkDrive(cfg.Root) {
		fmt.Fprintln(out, ui.WarnStyle.Render("⚠️  Network drive detected, consider a lower multiplier (-m 1)"))
	}

	mode := "sequentially"
	if cfg.Parallel {
		mode = fmt.Sprintf("with %d workers", min(d.Workers(), len(files)))
	}
	fmt.Fprintln(out, ui.ProcessingStyle.Render(fmt.Sprintf("🖼️  Running %s on %d files %s:", entry.Name, len(files), mode)))

	var summary *dispatch.Summary
	if cmd.TUI && cfg.Parallel && len(files) > 1 {
		summary, err = runWithTUI(d, files, entry.Name, appCtx.VersionOrDefault())
		if err != nil {
			return err
		}
	} else {
		reporter := ui.NewReporter(out, appCtx.Stderr(), len(files), cmd.Quiet)
		d.Observer = reporter
		summary = d.Run(files)
		reporter.Close()
	}

	ui.PrintSummary(out, entry.Name, summary)
	return nil
}

// runWithTUI runs the dispatcher while a bubbletea program renders its
// events. Quitting the view early still waits for the run to finish.
func runWithTUI(d *dispatch.Dispatcher, files []string, command, version string) (*dispatch.Summary, error) {
	model := ui.NewBatchModel(command, len(files), min(d.Workers(), len(files)), version)
	p := tea.NewProgram(model)
	d.Observer = ui.TUIObserver{Program: p}

	done := make(chan *dispatch.Summary, 1)
	go func() {
		s := d.Run(files)
		done <- s
		p.Send(ui.RunFinishedMsg{Summary: s})
	}()

	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("error running TUI: %w", err)
	}
	return <-done, nil
}
