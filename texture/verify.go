package texture

import (
	"bytes"
	"fmt"
	"image"

	"github.com/corona10/goimagehash"

	"github.com/lepinkainen/texturetool/types"
)

// Verify compares path with its counterpart in the OUTPUT family. Identical
// pixels leave the file Unchanged; a difference fails with ErrMismatch and
// the average-hash distance between the two images.
func (e *Engine) Verify(path string, cfg *types.RunConfig) types.Outcome {
	target, err := e.outputPath(path, cfg)
	if err != nil {
		return types.Failed(err)
	}
	target, ok := ExistsWithFallbackExtension(target)
	merged, err := decodeOptional(target, ok)
	if err != nil {
		return types.Failed(err)
	}
	if merged == nil {
		return missing(FamilyOutput, target)
	}
	src, err := Decode(path)
	if err != nil {
		return types.Failed(err)
	}

	a, b := src.NRGBA(), merged.NRGBA()
	if samePixels(a, b) {
		return types.Unchanged("identical to " + target)
	}
	distance, err := hashDistance(a, b)
	if err != nil {
		return types.Failed(fmt.Errorf("%w: %s differs from %s", ErrMismatch, path, target))
	}
	return types.Failed(fmt.Errorf("%w: %s differs from %s (hash distance %d)", ErrMismatch, path, target, distance))
}

func samePixels(a, b *image.NRGBA) bool {
	return a.Bounds().Size() == b.Bounds().Size() && bytes.Equal(a.Pix, b.Pix)
}

func hashDistance(a, b image.Image) (int, error) {
	ha, err := goimagehash.AverageHash(a)
	if err != nil {
		return 0, err
	}
	hb, err := goimagehash.AverageHash(b)
	if err != nil {
		return 0, err
	}
	return ha.Distance(hb)
}
