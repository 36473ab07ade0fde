package texture

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Channel indexes into an NRGBA pixel.
type Channel int

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
	ChannelA
)

func (c Channel) String() string {
	return [...]string{"R", "G", "B", "A"}[c]
}

// NRGBA returns a non-premultiplied copy of the buffer. Grey sources expand
// to R=G=B.
func (b *PixelBuffer) NRGBA() *image.NRGBA {
	return imaging.Clone(b.Image)
}

// Plane extracts one channel as an 8-bit grey image. Asking for alpha on a
// buffer without an alpha channel returns ErrUnsupportedLayout.
func (b *PixelBuffer) Plane(c Channel) (*image.Gray, error) {
	if c == ChannelA && !b.HasAlpha() {
		return nil, fmt.Errorf("%w: no alpha in %s image", ErrUnsupportedLayout, b.Layout)
	}
	return extractPlane(b.NRGBA(), c), nil
}

func extractPlane(src *image.NRGBA, c Channel) *image.Gray {
	r := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+r.Dx()*4]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+r.Dx()]
		for x := range d {
			d[x] = s[x*4+int(c)]
		}
	}
	return dst
}

// opaqueRGB drops alpha, keeping the stored colour values untouched.
func opaqueRGB(src *image.NRGBA) *image.RGBA {
	r := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+r.Dx()*4]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+r.Dx()*4]
		for i := 0; i < len(d); i += 4 {
			d[i], d[i+1], d[i+2], d[i+3] = s[i], s[i+1], s[i+2], 0xff
		}
	}
	return dst
}

// nonTrivialAlpha reports whether any pixel of the plane is below 0xFF. A
// uniformly opaque plane carries no information and is not written.
func nonTrivialAlpha(alpha *image.Gray) bool {
	for _, v := range alpha.Pix {
		if v != 0xff {
			return true
		}
	}
	return false
}

// toGray converts any image to 8-bit grey; *image.Gray is returned as is.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	r := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.SetGray(x-r.Min.X, y-r.Min.Y, color.GrayModel.Convert(img.At(x, y)).(color.Gray))
		}
	}
	return dst
}

// putAlpha replaces the alpha channel of img with plane.
func putAlpha(img *image.NRGBA, plane *image.Gray) error {
	if img.Bounds().Size() != plane.Bounds().Size() {
		return fmt.Errorf("alpha plane is %v, image is %v", plane.Bounds().Size(), img.Bounds().Size())
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x*4+3] = plane.Pix[y*plane.Stride+x]
		}
	}
	return nil
}

// stackPlanes composes an opaque image from three grey planes of equal size.
func stackPlanes(r, g, b *image.Gray) (*image.NRGBA, error) {
	size := r.Bounds().Size()
	if g.Bounds().Size() != size || b.Bounds().Size() != size {
		return nil, fmt.Errorf("channel planes differ in size: %v %v %v",
			size, g.Bounds().Size(), b.Bounds().Size())
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			i := y*dst.Stride + x*4
			dst.Pix[i] = r.Pix[y*r.Stride+x]
			dst.Pix[i+1] = g.Pix[y*g.Stride+x]
			dst.Pix[i+2] = b.Pix[y*b.Stride+x]
			dst.Pix[i+3] = 0xff
		}
	}
	return dst, nil
}
