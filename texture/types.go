package texture

import (
	"errors"
	"image"
)

// Sentinel errors for the per-file error taxonomy. Only ErrDecode and
// ErrMismatch end up as failures; the others are recovered by the operators.
var (
	ErrMissingDependency = errors.New("missing channel file")
	ErrDecode            = errors.New("decode failed")
	ErrUnsupportedLayout = errors.New("unsupported channel layout")
	ErrOutsideRoot       = errors.New("path is outside the run root")
	ErrMismatch          = errors.New("round-trip mismatch")
)

// Family identifies the sibling directory a derived file belongs to.
type Family int

const (
	FamilyRGBA Family = iota
	FamilyRGB
	FamilyA
	FamilyR
	FamilyG
	FamilyB
	FamilyOutput
	FamilySolid
)

var familySuffixes = [...]string{
	FamilyRGBA:   "_RGBA",
	FamilyRGB:    "_RGB",
	FamilyA:      "_A",
	FamilyR:      "_R",
	FamilyG:      "_G",
	FamilyB:      "_B",
	FamilyOutput: "_output",
	FamilySolid:  "_S",
}

// Suffix returns the directory suffix appended to the run root.
func (f Family) Suffix() string {
	if f < 0 || int(f) >= len(familySuffixes) {
		return ""
	}
	return familySuffixes[f]
}

func (f Family) String() string {
	s := f.Suffix()
	if s == "" {
		return "unknown"
	}
	return s[1:]
}

// ChannelLayout is the channel arrangement of a decoded image.
type ChannelLayout string

const (
	LayoutL    ChannelLayout = "L"
	LayoutLA   ChannelLayout = "LA"
	LayoutRGB  ChannelLayout = "RGB"
	LayoutRGBA ChannelLayout = "RGBA"
)

// Channels returns the NRGBA channels that carry the layout's bands. Grey
// bands read the red channel, which equals green and blue after conversion.
func (l ChannelLayout) Channels() []Channel {
	switch l {
	case LayoutL:
		return []Channel{ChannelR}
	case LayoutLA:
		return []Channel{ChannelR, ChannelA}
	case LayoutRGBA:
		return []Channel{ChannelR, ChannelG, ChannelB, ChannelA}
	default:
		return []Channel{ChannelR, ChannelG, ChannelB}
	}
}

// Bands returns the number of histogram bands for the layout.
func (l ChannelLayout) Bands() int { return len(l.Channels()) }

// PixelBuffer is one decoded raster. It belongs to the operator call that
// decoded it and is never shared between tasks.
type PixelBuffer struct {
	Image  image.Image
	Layout ChannelLayout
}

// Width returns the image width in pixels.
func (b *PixelBuffer) Width() int { return b.Image.Bounds().Dx() }

// Height returns the image height in pixels.
func (b *PixelBuffer) Height() int { return b.Image.Bounds().Dy() }

// HasAlpha reports whether the source carried an alpha channel.
func (b *PixelBuffer) HasAlpha() bool {
	return b.Layout == LayoutRGBA || b.Layout == LayoutLA
}
