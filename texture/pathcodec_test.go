package texture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPathCodec_Flatten(t *testing.T) {
	root := filepath.FromSlash("/data/tex")
	c := NewPathCodec(root)

	tests := []struct {
		name string
		path string
		ext  string
		want string
	}{
		{"top level keeps extension", "/data/tex/stone.tga", "", "stone.tga"},
		{"nested with new extension", "/data/tex/walls/brick/red.tga", ".png", "wallsbrickred.png"},
		{"single directory", "/data/tex/a/x.png", ".tga", "ax.tga"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Flatten(filepath.FromSlash(tt.path), tt.ext)
			if err != nil {
				t.Fatalf("Flatten() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Flatten() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPathCodec_FlattenCollision(t *testing.T) {
	// The flat layout is many-to-one; this pins the known collision.
	c := NewPathCodec("/data/tex")
	a, _ := c.Flatten(filepath.FromSlash("/data/tex/a/bc/x.png"), "")
	b, _ := c.Flatten(filepath.FromSlash("/data/tex/ab/c/x.png"), "")
	if a != b || a != "abcx.png" {
		t.Errorf("expected shared FlatKey abcx.png, got %q and %q", a, b)
	}
}

func TestPathCodec_MakeChannelPath(t *testing.T) {
	c := NewPathCodec("/data/tex")
	src := filepath.FromSlash("/data/tex/walls/brick.tga")

	tests := []struct {
		name   string
		family Family
		flat   bool
		ext    string
		want   string
	}{
		{"tree RGB", FamilyRGB, false, ".png", "/data/tex_RGB/walls/brick.png"},
		{"flat alpha", FamilyA, true, ".png", "/data/tex_A/wallsbrick.png"},
		{"tree output keeps ext", FamilyOutput, false, "", "/data/tex_output/walls/brick.tga"},
		{"solid", FamilySolid, false, ".tga", "/data/tex_S/walls/brick.tga"},
		{"flat RGBA", FamilyRGBA, true, ".png", "/data/tex_RGBA/wallsbrick.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.MakeChannelPath(src, tt.family, tt.flat, tt.ext)
			if err != nil {
				t.Fatalf("MakeChannelPath() error = %v", err)
			}
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("MakeChannelPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPathCodec_MakeClassifyPath(t *testing.T) {
	c := NewPathCodec("/data/tex")
	got, err := c.MakeClassifyPath(filepath.FromSlash("/data/tex/a/b.png"), "_f_test_0-5", false)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.FromSlash("/data/tex_f_test_0-5/a/b.png"); got != want {
		t.Errorf("MakeClassifyPath() = %q, want %q", got, want)
	}
}

func TestPathCodec_OutsideRoot(t *testing.T) {
	c := NewPathCodec("/data/tex")
	for _, p := range []string{"/data/other/x.png", "/data/tex", "/data/tex_RGB/x.png"} {
		if _, err := c.MakeChannelPath(filepath.FromSlash(p), FamilyRGB, false, ""); !errors.Is(err, ErrOutsideRoot) {
			t.Errorf("%s: expected ErrOutsideRoot, got %v", p, err)
		}
	}
}

func TestFamilySuffixes(t *testing.T) {
	want := map[Family]string{
		FamilyRGBA: "_RGBA", FamilyRGB: "_RGB", FamilyA: "_A", FamilyR: "_R",
		FamilyG: "_G", FamilyB: "_B", FamilyOutput: "_output", FamilySolid: "_S",
	}
	seen := map[string]bool{}
	for f, s := range want {
		if f.Suffix() != s {
			t.Errorf("%v.Suffix() = %q, want %q", f, f.Suffix(), s)
		}
		if seen[s] {
			t.Errorf("duplicate suffix %q", s)
		}
		seen[s] = true
	}
	if Family(99).String() != "unknown" {
		t.Error("out of range family should be unknown")
	}
}

func TestExistsWithFallbackExtension(t *testing.T) {
	dir := t.TempDir()
	touch := func(name string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	exact := touch("exact.tga")
	if got, ok := ExistsWithFallbackExtension(exact); !ok || got != exact {
		t.Errorf("exact match: got %q, %v", got, ok)
	}

	tgaOnly := touch("plane.tga")
	if got, ok := ExistsWithFallbackExtension(filepath.Join(dir, "plane.png")); !ok || got != tgaOnly {
		t.Errorf("tga fallback: got %q, %v", got, ok)
	}

	touch("both.png")
	touch("both.tga")
	if got, ok := ExistsWithFallbackExtension(filepath.Join(dir, "both.bmp")); !ok || got != filepath.Join(dir, "both.png") {
		t.Errorf("png should win over tga: got %q, %v", got, ok)
	}

	missing := filepath.Join(dir, "none.png")
	if got, ok := ExistsWithFallbackExtension(missing); ok || got != missing {
		t.Errorf("missing: got %q, %v", got, ok)
	}
}
