package types

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputFormat is the raster container written by transcoding operators.
type OutputFormat string

const (
	FormatPNG OutputFormat = "png" // Default, written with the fastest compression level.
	FormatTGA OutputFormat = "tga"
)

// Ext returns the file extension for the format, with leading dot.
func (f OutputFormat) Ext() string {
	return "." + string(f)
}

// Layout selects how source paths map into channel family directories.
type Layout string

const (
	LayoutTree Layout = "tree" // Keep the relative directory hierarchy (default).
	LayoutFlat Layout = "flat" // Concatenate ancestor directories into the file name.
)

// Default values for RunConfig fields.
const (
	DefaultMultiplier = 5
	DefaultThreshold  = 0.5
)

// ErrConfig marks configuration problems detected before any file is touched.
var ErrConfig = errors.New("configuration error")

// RunConfig is the immutable configuration of one batch run. It is built once
// by NewRunConfig, validated, and then shared read-only by every task.
type RunConfig struct {
	Root        string       // Absolute, cleaned root directory.
	Format      OutputFormat // Output container for transcoding operators.
	Command     string       // Lower-cased operator name.
	Parallel    bool         // Use the bounded worker pool.
	Multiplier  int          // Workers per CPU when Parallel is set.
	Threshold   float64      // Classifier cutoff; a colour count for unique_colors.
	Layout      Layout       // Channel family layout for split/merge.
	SolidSample bool         // Collapse solid images to a 1x1 sample.
	DryRun      bool         // Compute targets without writing or deleting.
}

// RunOptions carries the raw invocation parameters used to build a RunConfig.
type RunOptions struct {
	Directory   string
	Command     string
	Output      string
	Parallel    bool
	Multiplier  int
	Threshold   float64
	Layout      string
	SolidSample bool
	DryRun      bool
}

// NewRunConfig normalises opts into a RunConfig and validates it.
func NewRunConfig(opts RunOptions) (*RunConfig, error) {
	dir := strings.TrimRight(opts.Directory, `/\`)
	if dir == "" && opts.Directory != "" {
		dir = string(filepath.Separator)
	}
	if dir == "" {
		return nil, fmt.Errorf("%w: directory is required", ErrConfig)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %s: %v", ErrConfig, opts.Directory, err)
	}

	layout := Layout(strings.ToLower(opts.Layout))
	if layout == "" {
		layout = LayoutTree
	}
	format := OutputFormat(strings.ToLower(opts.Output))
	if format == "" {
		format = FormatPNG
	}

	cfg := &RunConfig{
		Root:        root,
		Format:      format,
		Command:     strings.ToLower(strings.TrimSpace(opts.Command)),
		Parallel:    opts.Parallel,
		Multiplier:  opts.Multiplier,
		Threshold:   opts.Threshold,
		Layout:      layout,
		SolidSample: opts.SolidSample,
		DryRun:      opts.DryRun,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enum fields, the multiplier and the root directory.
func (c *RunConfig) Validate() error {
	var errs []error
	switch c.Format {
	case FormatPNG, FormatTGA:
	default:
		errs = append(errs, fmt.Errorf("output format must be png or tga, got %q", c.Format))
	}
	switch c.Layout {
	case LayoutTree, LayoutFlat:
	default:
		errs = append(errs, fmt.Errorf("layout must be tree or flat, got %q", c.Layout))
	}
	if c.Command == "" {
		errs = append(errs, errors.New("command is required"))
	}
	if c.Parallel && c.Multiplier < 1 {
		errs = append(errs, fmt.Errorf("multiplier must be >= 1, got %d", c.Multiplier))
	}
	if c.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold must be >= 0, got %g", c.Threshold))
	}
	if fi, err := os.Stat(c.Root); err != nil {
		errs = append(errs, fmt.Errorf("directory not accessible: %v", err))
	} else if !fi.IsDir() {
		errs = append(errs, fmt.Errorf("%s is not a directory", c.Root))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfig, errors.Join(errs...))
	}
	return nil
}
