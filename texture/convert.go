package texture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"github.com/lepinkainen/texturetool/types"
)

// maxColorTable bounds the distinct colours SolidColorCollapse will track.
// Images past the bound are treated as non-solid.
const maxColorTable = 256

// Flatten writes an RGBA copy of path into the RGBA family using the flat
// layout, independent of the run's layout setting.
func (e *Engine) Flatten(path string, cfg *types.RunConfig) types.Outcome {
	buf, err := Decode(path)
	if err != nil {
		return types.Failed(err)
	}
	target, err := e.Paths.MakeChannelPath(path, FamilyRGBA, true, cfg.Format.Ext())
	if err != nil {
		return types.Failed(err)
	}
	written, err := e.save(buf.NRGBA(), target, cfg)
	if err != nil {
		return types.Failed(err)
	}
	return types.Written(written)
}

// Unflatten restores the flat RGBA sibling of path into the OUTPUT family
// with the source hierarchy.
func (e *Engine) Unflatten(path string, cfg *types.RunConfig) types.Outcome {
	flat, err := e.Paths.MakeChannelPath(path, FamilyRGBA, true, cfg.Format.Ext())
	if err != nil {
		return types.Failed(err)
	}
	flat, ok := ExistsWithFallbackExtension(flat)
	buf, err := decodeOptional(flat, ok)
	if err != nil {
		return types.Failed(err)
	}
	if buf == nil {
		return missing(FamilyRGBA, flat)
	}
	return e.writeOutput(path, buf.Image, cfg)
}

// FormatConvert replaces a non-RGBA TGA file with a PNG next to it and
// deletes the TGA. 32-bit true-colour TGA files and other formats are left
// untouched.
// The operation is destructive.
func (e *Engine) FormatConvert(path string, cfg *types.RunConfig) types.Outcome {
	if !strings.EqualFold(filepath.Ext(path), ".tga") {
		return types.Unchanged("not a TGA file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Failed(err)
	}
	if isTGARGBA32(data) {
		return types.Unchanged("already RGBA")
	}
	buf, err := DecodeBytes(data, path)
	if err != nil {
		return types.Failed(err)
	}
	written, err := e.Writer.Save(buf.Image, path, types.FormatPNG)
	if err != nil {
		return types.Failed(err)
	}
	if err := e.Writer.Remove(path); err != nil {
		out := types.Failed(fmt.Errorf("removing %s: %w", path, err))
		out.Written = []string{written}
		return out
	}
	return types.Outcome{Status: types.StatusDeleted, Written: []string{written}, Deleted: []string{path}}
}

// SolidColorCollapse moves a single-colour image into the SOLID family,
// keeping its relative hierarchy, and deletes the source. The operation is
// destructive.
func (e *Engine) SolidColorCollapse(path string, cfg *types.RunConfig) types.Outcome {
	buf, err := Decode(path)
	if err != nil {
		return types.Failed(err)
	}
	n, ok := CountColors(buf.Image, maxColorTable)
	if !ok {
		return types.Unchanged("more than 256 colours")
	}
	if n != 1 {
		return types.Unchanged(fmt.Sprintf("%d colours", n))
	}

	target, err := e.Paths.MakeChannelPath(path, FamilySolid, false, cfg.Format.Ext())
	if err != nil {
		return types.Failed(err)
	}
	var sample image.Image = buf.Image
	if cfg.SolidSample {
		sample = resize.Resize(1, 1, buf.Image, resize.NearestNeighbor)
	}
	written, err := e.save(sample, target, cfg)
	if err != nil {
		return types.Failed(err)
	}
	if err := e.Writer.Remove(path); err != nil {
		out := types.Failed(fmt.Errorf("removing %s: %w", path, err))
		out.Written = []string{written}
		return out
	}
	return types.Outcome{Status: types.StatusDeleted, Written: []string{written}, Deleted: []string{path}}
}

// CountColors counts distinct NRGBA colours of img. ok is false once more
// than limit colours have been seen, in which case n is not meaningful.
func CountColors(img image.Image, limit int) (n int, ok bool) {
	pix := (&PixelBuffer{Image: img}).NRGBA()
	seen := make(map[uint32]struct{}, 8)
	for i := 0; i+3 < len(pix.Pix); i += 4 {
		key := uint32(pix.Pix[i])<<24 | uint32(pix.Pix[i+1])<<16 | uint32(pix.Pix[i+2])<<8 | uint32(pix.Pix[i+3])
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if len(seen) > limit {
			return 0, false
		}
	}
	return len(seen), true
}
