package texture

import (
	"errors"

	"github.com/lepinkainen/texturetool/types"
)

// Split2 writes the RGB plane of path into the RGB family and, when the
// alpha plane carries information, the alpha plane into the A family.
func (e *Engine) Split2(path string, cfg *types.RunConfig) types.Outcome {
	buf, err := Decode(path)
	if err != nil {
		return types.Failed(err)
	}

	rgbPath, err := e.channelPath(path, FamilyRGB, cfg)
	if err != nil {
		return types.Failed(err)
	}
	written, err := e.save(opaqueRGB(buf.NRGBA()), rgbPath, cfg)
	if err != nil {
		return types.Failed(err)
	}
	out := types.Written(written)

	alphaPath, err := e.splitAlpha(path, buf, cfg)
	if err != nil {
		out.Status = types.StatusFailed
		out.Err = err
		out.Reason = err.Error()
		return out
	}
	if alphaPath != "" {
		out.Written = append(out.Written, alphaPath)
	}
	return out
}

// Split4 writes the R, G and B planes of path as single-channel images into
// their families, plus a non-trivial alpha plane into the A family.
func (e *Engine) Split4(path string, cfg *types.RunConfig) types.Outcome {
	buf, err := Decode(path)
	if err != nil {
		return types.Failed(err)
	}
	nrgba := buf.NRGBA()

	var written []string
	planes := []struct {
		channel Channel
		family  Family
	}{
		{ChannelR, FamilyR},
		{ChannelG, FamilyG},
		{ChannelB, FamilyB},
	}
	for _, p := range planes {
		target, err := e.channelPath(path, p.family, cfg)
		if err != nil {
			return types.Failed(err)
		}
		saved, err := e.save(extractPlane(nrgba, p.channel), target, cfg)
		if err != nil {
			return types.Failed(err)
		}
		written = append(written, saved)
	}

	alphaPath, err := e.splitAlpha(path, buf, cfg)
	if err != nil {
		return types.Failed(err)
	}
	if alphaPath != "" {
		written = append(written, alphaPath)
	}
	return types.Written(written...)
}

// splitAlpha writes the alpha plane when present and non-trivial. It returns
// an empty path when nothing was written.
func (e *Engine) splitAlpha(path string, buf *PixelBuffer, cfg *types.RunConfig) (string, error) {
	alpha, err := buf.Plane(ChannelA)
	if errors.Is(err, ErrUnsupportedLayout) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !nonTrivialAlpha(alpha) {
		return "", nil
	}
	target, err := e.channelPath(path, FamilyA, cfg)
	if err != nil {
		return "", err
	}
	return e.save(alpha, target, cfg)
}
