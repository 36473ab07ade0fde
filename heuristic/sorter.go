package heuristic

import (
	"fmt"

	"github.com/lepinkainen/texturetool/texture"
	"github.com/lepinkainen/texturetool/types"
)

// Sorter copies images that match a classifier into the classifier's
// output directory. Sources are never modified.
type Sorter struct {
	Paths  texture.PathCodec
	Writer *texture.Writer
}

// NewSorter shares the path codec and writer of an engine.
func NewSorter(e *texture.Engine) *Sorter {
	return &Sorter{Paths: e.Paths, Writer: e.Writer}
}

// Operator adapts c to the dispatcher's operator shape.
func (s *Sorter) Operator(c Classifier) types.Operator {
	return func(path string, cfg *types.RunConfig) types.Outcome {
		buf, err := texture.Decode(path)
		if err != nil {
			return types.Failed(err)
		}
		if !c.Test(buf, cfg.Threshold) {
			return types.Unchanged("no match")
		}
		dst, err := s.Paths.MakeClassifyPath(path, c.OutputSuffix(cfg.Threshold), cfg.Layout == types.LayoutFlat)
		if err != nil {
			return types.Failed(err)
		}
		if err := s.Writer.Copy(path, dst); err != nil {
			return types.Failed(fmt.Errorf("%s match: %w", c.Name, err))
		}
		return types.Outcome{Status: types.StatusMatched, Written: []string{dst}}
	}
}
