package texture

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/texturetool/types"
)

// Merge2 recombines the RGB and A siblings of path into the OUTPUT family.
// A missing RGB plane makes the call a no-op; a missing alpha plane means
// the image was opaque and the RGB plane is written unchanged.
func (e *Engine) Merge2(path string, cfg *types.RunConfig) types.Outcome {
	rgbPath, ok, err := e.resolve(path, FamilyRGB, cfg)
	if err != nil {
		return types.Failed(err)
	}
	rgb, err := decodeOptional(rgbPath, ok)
	if err != nil {
		return types.Failed(err)
	}
	if rgb == nil {
		return missing(FamilyRGB, rgbPath)
	}

	composite, err := e.withAlpha(path, rgb.Image, cfg)
	if err != nil {
		return types.Failed(err)
	}
	return e.writeOutput(path, composite, cfg)
}

// Merge4 stacks the R, G and B siblings of path, attaches the optional alpha
// sibling and writes the result into the OUTPUT family. All three colour
// planes are required.
func (e *Engine) Merge4(path string, cfg *types.RunConfig) types.Outcome {
	var paths [3]string
	for i, f := range colorFamilies {
		p, ok, err := e.resolve(path, f, cfg)
		if err != nil {
			return types.Failed(err)
		}
		if !ok {
			return missing(f, p)
		}
		paths[i] = p
	}
	return e.merge4(path, paths, cfg)
}

var colorFamilies = [3]Family{FamilyR, FamilyG, FamilyB}

// merge4 decodes the resolved colour planes concurrently. A plane that
// vanished after resolution is a missing dependency, not a failure.
func (e *Engine) merge4(path string, paths [3]string, cfg *types.RunConfig) types.Outcome {
	var planes [3]*image.Gray
	var g errgroup.Group
	for i := range paths {
		g.Go(func() error {
			buf, err := decodeOptional(paths[i], true)
			if err != nil {
				return err
			}
			if buf == nil {
				return &missingPlaneError{family: colorFamilies[i], path: paths[i]}
			}
			planes[i] = toGray(buf.Image)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var gone *missingPlaneError
		if errors.As(err, &gone) {
			return missing(gone.family, gone.path)
		}
		return types.Failed(err)
	}

	stacked, err := stackPlanes(planes[0], planes[1], planes[2])
	if err != nil {
		return types.Failed(err)
	}
	composite, err := e.withAlpha(path, stacked, cfg)
	if err != nil {
		return types.Failed(err)
	}
	return e.writeOutput(path, composite, cfg)
}

type missingPlaneError struct {
	family Family
	path   string
}

func (m *missingPlaneError) Error() string {
	return fmt.Sprintf("no %s plane at %s", m.family, m.path)
}

func (m *missingPlaneError) Unwrap() error { return ErrMissingDependency }

// PasteBlue keeps the red and green channels of path and takes blue from
// the first band of the B sibling, writing the result into the OUTPUT
// family. Normal maps whose blue channel was stored separately are rebuilt
// this way.
func (e *Engine) PasteBlue(path string, cfg *types.RunConfig) types.Outcome {
	bluePath, ok, err := e.resolve(path, FamilyB, cfg)
	if err != nil {
		return types.Failed(err)
	}
	blue, err := decodeOptional(bluePath, ok)
	if err != nil {
		return types.Failed(err)
	}
	if blue == nil {
		return missing(FamilyB, bluePath)
	}
	src, err := Decode(path)
	if err != nil {
		return types.Failed(err)
	}

	nrgba := src.NRGBA()
	stacked, err := stackPlanes(extractPlane(nrgba, ChannelR), extractPlane(nrgba, ChannelG), extractPlane(blue.NRGBA(), ChannelR))
	if err != nil {
		return types.Failed(fmt.Errorf("pasting %s: %w", bluePath, err))
	}
	return e.writeOutput(path, stacked, cfg)
}

// withAlpha attaches the A sibling of path to img when one exists; otherwise
// img is returned unchanged.
func (e *Engine) withAlpha(path string, img image.Image, cfg *types.RunConfig) (image.Image, error) {
	alphaPath, ok, err := e.resolve(path, FamilyA, cfg)
	if err != nil {
		return nil, err
	}
	alpha, err := decodeOptional(alphaPath, ok)
	if err != nil {
		return nil, err
	}
	if alpha == nil {
		return img, nil
	}
	composite := (&PixelBuffer{Image: img}).NRGBA()
	if err := putAlpha(composite, toGray(alpha.Image)); err != nil {
		return nil, fmt.Errorf("merging %s: %w", alphaPath, err)
	}
	return composite, nil
}

func (e *Engine) writeOutput(path string, img image.Image, cfg *types.RunConfig) types.Outcome {
	target, err := e.outputPath(path, cfg)
	if err != nil {
		return types.Failed(err)
	}
	written, err := e.save(img, target, cfg)
	if err != nil {
		return types.Failed(err)
	}
	return types.Written(written)
}
