package texture

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lepinkainen/texturetool/types"
)

// newTestRoot returns a root directory whose sibling family directories are
// cleaned up with the test.
func newTestRoot(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "tex")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	return root
}

func testConfig(root string) *types.RunConfig {
	return &types.RunConfig{
		Root:      root,
		Format:    types.FormatPNG,
		Layout:    types.LayoutTree,
		Threshold: types.DefaultThreshold,
	}
}

func writePNG(t *testing.T, path string, img image.Image) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeTGA writes an uncompressed top-left-origin true-colour TGA. pix holds
// RGB or RGBA samples row by row, depending on depth.
func writeTGA(t *testing.T, path string, w, h int, depth byte, pix []byte) string {
	t.Helper()
	bpp := int(depth) / 8
	header := make([]byte, tgaHeaderSize)
	header[2] = tgaTrueColor
	header[12], header[13] = byte(w), byte(w>>8)
	header[14], header[15] = byte(h), byte(h>>8)
	header[16] = depth
	header[17] = 0x20
	if depth == 32 {
		header[17] |= 8
	}
	data := append([]byte{}, header...)
	for i := 0; i < w*h; i++ {
		p := pix[i*bpp : i*bpp+bpp]
		data = append(data, p[2], p[1], p[0])
		if bpp == 4 {
			data = append(data, p[3])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeGrayAlphaTGA writes an uncompressed 16-bit grey+alpha TGA. pix holds
// grey and alpha samples pairwise.
func writeGrayAlphaTGA(t *testing.T, path string, w, h int, pix []byte) string {
	t.Helper()
	header := make([]byte, tgaHeaderSize)
	header[2] = tgaGray
	header[12], header[13] = byte(w), byte(w>>8)
	header[14], header[15] = byte(h), byte(h>>8)
	header[16] = 16
	header[17] = 0x20 | 8
	data := append(header, pix[:w*h*2]...)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readNRGBA(t *testing.T, path string) *image.NRGBA {
	t.Helper()
	buf, err := Decode(path)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return buf.NRGBA()
}

// gradient returns a w×h image whose channels all vary, with alpha set by
// alphaAt.
func gradient(w, h int, alphaAt func(x, y int) uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(x * 40)
			img.Pix[i+1] = uint8(y * 40)
			img.Pix[i+2] = uint8((x + y) * 17)
			img.Pix[i+3] = alphaAt(x, y)
		}
	}
	return img
}

func opaque(int, int) uint8 { return 0xff }

func fade(x, y int) uint8 { return uint8(255 - x*10 - y) }

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
