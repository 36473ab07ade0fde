package texture

import (
	"errors"
	"fmt"
	"image"
	"io/fs"

	"github.com/lepinkainen/texturetool/types"
)

// Engine binds the path codec and output writer of one run. Its operator
// methods all have the types.Operator shape and keep no per-file state, so a
// single Engine is safe to share across workers.
type Engine struct {
	Paths  PathCodec
	Writer *Writer
}

// NewEngine returns an Engine rooted at cfg.Root.
func NewEngine(cfg *types.RunConfig) *Engine {
	return &Engine{
		Paths:  NewPathCodec(cfg.Root),
		Writer: NewWriter(cfg.DryRun),
	}
}

// channelPath places path in family f using the run's layout and format.
func (e *Engine) channelPath(path string, f Family, cfg *types.RunConfig) (string, error) {
	return e.Paths.MakeChannelPath(path, f, cfg.Layout == types.LayoutFlat, cfg.Format.Ext())
}

// outputPath places path in the OUTPUT family, always keeping the hierarchy.
func (e *Engine) outputPath(path string, cfg *types.RunConfig) (string, error) {
	return e.Paths.MakeChannelPath(path, FamilyOutput, false, cfg.Format.Ext())
}

// resolve finds an existing sibling for a channel path. ok is false when
// neither the exact path nor a .png/.tga variant exists.
func (e *Engine) resolve(path string, f Family, cfg *types.RunConfig) (string, bool, error) {
	p, err := e.channelPath(path, f, cfg)
	if err != nil {
		return "", false, err
	}
	found, ok := ExistsWithFallbackExtension(p)
	return found, ok, nil
}

// decodeOptional decodes path when present. A file that vanished between the
// lookup and the read is treated like a missing one.
func decodeOptional(path string, present bool) (*PixelBuffer, error) {
	if !present {
		return nil, nil
	}
	buf, err := Decode(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return buf, err
}

func (e *Engine) save(img image.Image, path string, cfg *types.RunConfig) (string, error) {
	return e.Writer.Save(img, path, cfg.Format)
}

func missing(family Family, path string) types.Outcome {
	out := types.Skipped(fmt.Sprintf("no %s plane at %s", family, path))
	out.Err = fmt.Errorf("%w: %s", ErrMissingDependency, path)
	return out
}
