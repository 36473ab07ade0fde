package texture

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.png", true},
		{"a.TGA", true},
		{"dir/a.jpeg", true},
		{"a.txt", false},
		{"png", false},
		{"a.png.bak", false},
	}
	for _, tt := range tests {
		if got := IsImageFile(tt.path); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFindImageFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.png", "a/z.tga", "a/y.PNG", ".hidden/h.png", "notes.txt", "a/deep/c.jpg"} {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := FindImageFiles(root)
	if err != nil {
		t.Fatalf("FindImageFiles() error = %v", err)
	}
	if len(files) != 5 {
		t.Fatalf("expected 5 images, got %d: %v", len(files), files)
	}
	if !sort.StringsAreSorted(files) {
		t.Errorf("result should be sorted: %v", files)
	}

	walked, err := findImagesWithWalkDir(root)
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(walked)
	for i := range walked {
		if walked[i] != files[i] {
			t.Errorf("WalkDir result %q differs from %q", walked[i], files[i])
		}
	}
}

func TestFindImageFiles_NonExistentDirectory(t *testing.T) {
	if _, err := findImagesWithWalkDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for non-existent directory")
	}
}
