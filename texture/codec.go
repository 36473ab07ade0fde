package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ftrvxmtrx/tga"

	"github.com/lepinkainen/texturetool/types"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

const tgaHeaderSize = 18

// TGA image types from the header's third byte.
const (
	tgaColorMapped    = 1
	tgaTrueColor      = 2
	tgaGray           = 3
	tgaColorMappedRLE = 9
	tgaTrueColorRLE   = 10
	tgaGrayRLE        = 11
)

// Decode reads and decodes the raster at path. A missing file is returned as
// the underlying fs error so callers can tell it apart from ErrDecode.
func Decode(path string) (*PixelBuffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data, path)
}

// DecodeBytes decodes data. PNG is detected by signature, TGA by the name's
// extension; anything else goes through the registered image formats.
func DecodeBytes(data []byte, name string) (*PixelBuffer, error) {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
		}
		return &PixelBuffer{Image: img, Layout: layoutOf(img)}, nil

	case strings.EqualFold(filepath.Ext(name), ".tga"):
		layout, err := tgaLayout(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
		}
		img, err := tga.Decode(bytes.NewReader(padFooter(data)))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
		}
		return &PixelBuffer{Image: img, Layout: layout}, nil

	default:
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
		}
		return &PixelBuffer{Image: img, Layout: layoutOf(img)}, nil
	}
}

// Encode writes img to w in the given container. PNG uses the fastest
// compression level.
func Encode(w io.Writer, img image.Image, format types.OutputFormat) error {
	switch format {
	case types.FormatTGA:
		return tga.Encode(w, img)
	case types.FormatPNG:
		return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestSpeed))
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// tgaFooterSize is the length of the optional TGA 2.0 footer. The decoder
// seeks that far back from the end of the file to look for it.
const tgaFooterSize = 26

// padFooter zero-extends files shorter than a footer so the decoder's footer
// seek stays in range. Longer files are returned as is, keeping any real
// footer at the end.
func padFooter(data []byte) []byte {
	if len(data) >= tgaFooterSize {
		return data
	}
	padded := make([]byte, len(data)+tgaFooterSize)
	copy(padded, data)
	return padded
}

// tgaLayout reads the channel layout from a TGA header. Alpha comes from the
// descriptor's alpha bits, a 16-bit grey depth, a 32-bit pixel depth or a
// 32-bit colour map.
func tgaLayout(data []byte) (ChannelLayout, error) {
	if len(data) < tgaHeaderSize {
		return "", fmt.Errorf("truncated TGA header (%d bytes)", len(data))
	}
	imageType, mapDepth, depth := data[2], data[7], data[16]
	alphaBits := data[17] & 0x0f
	switch imageType {
	case tgaGray, tgaGrayRLE:
		if depth == 16 || alphaBits > 0 {
			return LayoutLA, nil
		}
		return LayoutL, nil
	case tgaTrueColor, tgaTrueColorRLE:
		if depth == 32 || alphaBits > 0 {
			return LayoutRGBA, nil
		}
		return LayoutRGB, nil
	case tgaColorMapped, tgaColorMappedRLE:
		if mapDepth == 32 || alphaBits > 0 {
			return LayoutRGBA, nil
		}
		return LayoutRGB, nil
	default:
		return "", fmt.Errorf("unknown TGA image type %d", imageType)
	}
}

// isTGARGBA32 reports whether data is a 32-bit true-colour TGA, the only
// form FormatConvert leaves in place.
func isTGARGBA32(data []byte) bool {
	if len(data) < tgaHeaderSize {
		return false
	}
	t := data[2]
	return (t == tgaTrueColor || t == tgaTrueColorRLE) && data[16] == 32
}

// layoutOf infers the channel layout from the concrete decoded image type.
func layoutOf(img image.Image) ChannelLayout {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return LayoutL
	case *image.NRGBA, *image.NRGBA64:
		return LayoutRGBA
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return LayoutRGBA
			}
		}
		return LayoutRGB
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		return LayoutRGBA
	}
	return LayoutRGB
}
