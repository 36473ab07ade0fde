package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/texturetool/dispatch"
	"github.com/lepinkainen/texturetool/types"
)

func TestCLI_Structure(t *testing.T) {
	// Compile-time check of the command set
	var cli CLI
	_ = cli.Run
	_ = cli.List
	_ = cli.Version
}

func TestKongParsing(t *testing.T) {
	var cli CLI
	parser := kong.Must(&cli, kong.Vars{"version": Version})
	if parser == nil {
		t.Error("Kong parser should not be nil")
	}
}

func TestKongParsing_RunCommand(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name        string
		args        []string
		expectError bool
		check       func(t *testing.T, cli *CLI)
	}{
		{
			name: "Default command with short flags",
			args: []string{"-d", dir, "-c", "split"},
			check: func(t *testing.T, cli *CLI) {
				if cli.Run.Output != "png" || cli.Run.Multiplier != 5 || cli.Run.Threshold != 0.5 || cli.Run.Layout != "tree" {
					t.Errorf("unexpected defaults: %+v", cli.Run)
				}
			},
		},
		{
			name: "Explicit run with all flags",
			args: []string{"run", "--directory", dir, "--command", "4merge", "-o", "tga", "-p", "-m", "2", "-t", "0.25", "--layout", "flat", "--solid-sample", "--dry-run", "--tui", "-q"},
			check: func(t *testing.T, cli *CLI) {
				r := cli.Run
				if r.Command != "4merge" || r.Output != "tga" || !r.Parallel || r.Multiplier != 2 || r.Threshold != 0.25 ||
					r.Layout != "flat" || !r.SolidSample || !r.DryRun || !r.TUI || !r.Quiet {
					t.Errorf("flags not parsed: %+v", r)
				}
			},
		},
		{
			name:        "Missing command",
			args:        []string{"-d", dir},
			expectError: true,
		},
		{
			name:        "Invalid output format",
			args:        []string{"-d", dir, "-c", "split", "-o", "jpg"},
			expectError: true,
		},
		{
			name:        "Invalid layout",
			args:        []string{"-d", dir, "-c", "split", "--layout", "zigzag"},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var cli CLI
			parser, err := newParser(&cli)
			if err != nil {
				t.Fatal(err)
			}

			ctx, err := parser.Parse(tc.args)
			if tc.expectError {
				if err == nil {
					t.Errorf("Expected error for args %v, but parsing succeeded", tc.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for args %v: %v", tc.args, err)
			}
			if !strings.Contains(ctx.Command(), "run") {
				t.Errorf("Expected 'run' command, got %q", ctx.Command())
			}
			tc.check(t, &cli)
		})
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	var out bytes.Buffer
	parser, err := newParser(&cli, kong.Bind(&types.AppContext{Version: "test", Out: &out, Err: &bytes.Buffer{}}))
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	err = ctx.Run()
	return out.String(), err
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestRun_SplitThenMerge(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tex")
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 3)
	}
	writePNG(t, filepath.Join(root, "walls", "brick.png"), img)

	out, err := runCLI(t, "-d", root, "-c", "split", "-q")
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if !strings.Contains(out, "summary") {
		t.Errorf("expected a summary in output, got:\n%s", out)
	}
	for _, p := range []string{
		filepath.Join(root+"_RGB", "walls", "brick.png"),
		filepath.Join(root+"_A", "walls", "brick.png"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s: %v", p, err)
		}
	}

	if _, err := runCLI(t, "-d", root, "-c", "merge", "-p", "-m", "1"); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root+"_output", "walls", "brick.png")); err != nil {
		t.Errorf("expected merged output: %v", err)
	}
}

func TestRun_ConfigErrors(t *testing.T) {
	root := t.TempDir()

	_, err := runCLI(t, "-d", root, "-c", "explode")
	if !errors.Is(err, dispatch.ErrUnknownOperator) || !errors.Is(err, types.ErrConfig) {
		t.Errorf("expected unknown operator config error, got %v", err)
	}

	_, err = runCLI(t, "-d", filepath.Join(root, "missing"), "-c", "split")
	if !errors.Is(err, types.ErrConfig) {
		t.Errorf("expected config error for missing directory, got %v", err)
	}
}

func TestRun_EmptyTree(t *testing.T) {
	out, err := runCLI(t, "-d", t.TempDir(), "-c", "verify")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No image files found") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRun_DestructiveWarning(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tex")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
		}
	}
	writePNG(t, filepath.Join(root, "flat.png"), img)

	out, err := runCLI(t, "-d", root, "-c", "solid_colors")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "deletes source files") {
		t.Errorf("expected destructive warning, got:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(root, "flat.png")); !os.IsNotExist(err) {
		t.Errorf("solid source should be removed, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root+"_S", "flat.png")); err != nil {
		t.Errorf("solid copy missing: %v", err)
	}
}

func TestList(t *testing.T) {
	out, err := runCLI(t, "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"split", "4merge", "paste_blue", "tga_png", "unique_colors", "mode_mean", "verify"} {
		if !strings.Contains(out, name) {
			t.Errorf("list output missing %s", name)
		}
	}

	out, err = runCLI(t, "list", "--kind", "classify")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "4split") || !strings.Contains(out, "f_test") {
		t.Errorf("kind filter not applied:\n%s", out)
	}
}
