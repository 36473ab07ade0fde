package texture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fallbackExts are tried in order when a channel file is missing.
var fallbackExts = []string{".png", ".tga"}

var separatorStripper = strings.NewReplacer("/", "", `\`, "")

// PathCodec maps source paths under a root onto sibling family directories.
//
// The flat layout concatenates ancestor directory names into the file name,
// so "a/bc/x.png" and "ab/c/x.png" share the FlatKey "abcx.png". Collisions
// are not detected; the tree layout avoids them.
type PathCodec struct {
	root string
}

// NewPathCodec returns a codec for the given root directory.
func NewPathCodec(root string) PathCodec {
	return PathCodec{root: filepath.Clean(root)}
}

// Root returns the cleaned root directory.
func (c PathCodec) Root() string { return c.root }

// Rel returns path relative to the root.
func (c PathCodec) Rel(path string) (string, error) {
	rel, err := filepath.Rel(c.root, filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return rel, nil
}

// Flatten returns the FlatKey for path: ancestor directories below the root
// with separators removed, then the file stem, then ext. An empty ext keeps
// the source extension.
func (c PathCodec) Flatten(path, ext string) (string, error) {
	rel, err := c.Rel(path)
	if err != nil {
		return "", err
	}
	dir, name := filepath.Split(rel)
	return separatorStripper.Replace(dir) + swapExt(name, ext), nil
}

// FamilyDir returns the sibling directory for a family.
func (c PathCodec) FamilyDir(f Family) string {
	return c.root + f.Suffix()
}

// ClassifyDir returns the sibling directory for a classification suffix.
func (c PathCodec) ClassifyDir(suffix string) string {
	return c.root + suffix
}

// MakeChannelPath returns the location of path inside a family directory,
// either flattened or with the relative hierarchy preserved.
func (c PathCodec) MakeChannelPath(path string, f Family, flat bool, ext string) (string, error) {
	return c.place(path, c.FamilyDir(f), flat, ext)
}

// MakeClassifyPath places path under a classification directory.
func (c PathCodec) MakeClassifyPath(path, suffix string, flat bool) (string, error) {
	return c.place(path, c.ClassifyDir(suffix), flat, "")
}

func (c PathCodec) place(path, dir string, flat bool, ext string) (string, error) {
	if flat {
		key, err := c.Flatten(path, ext)
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, key), nil
	}
	rel, err := c.Rel(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, swapExt(rel, ext)), nil
}

// ExistsWithFallbackExtension returns path when it exists, otherwise the first
// existing sibling with a .png or .tga extension. When nothing exists the
// input path is returned with ok=false.
func ExistsWithFallbackExtension(path string) (string, bool) {
	if fileExists(path) {
		return path, true
	}
	for _, ext := range fallbackExts {
		candidate := swapExt(path, ext)
		if candidate != path && fileExists(candidate) {
			return candidate, true
		}
	}
	return path, false
}

func swapExt(path, ext string) string {
	if ext == "" {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
