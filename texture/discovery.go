package texture

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lepinkainen/texturetool/utils"
)

var imageExtensions = []string{".png", ".tga", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff"}

// IsImageFile checks if the path has one of the known raster extensions
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range imageExtensions {
		if v == ext {
			return true
		}
	}
	return false
}

// FindImageFiles snapshots every raster file under directory, sorted
// lexicographically so sequential runs are deterministic.
func FindImageFiles(directory string) ([]string, error) {
	var files []string
	var err error

	// Use fd if available for better performance, otherwise fall back to filepath.WalkDir
	if utils.HasTool("fd") {
		files, err = findImagesWithFd(directory)
		if err != nil {
			files, err = findImagesWithWalkDir(directory)
		}
	} else {
		files, err = findImagesWithWalkDir(directory)
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func findImagesWithWalkDir(directory string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(directory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsImageFile(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})

	return files, err
}

// findImagesWithFd lists files through fd. Hidden and ignored files are
// included so the result matches the WalkDir fallback.
func findImagesWithFd(directory string) ([]string, error) {
	args := []string{"--type", "f", "--hidden", "--no-ignore", "--ignore-case"}
	for _, ext := range imageExtensions {
		args = append(args, "--extension", strings.TrimPrefix(ext, "."))
	}
	args = append(args, ".", directory)

	output, err := exec.Command("fd", args...).Output()
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line != "" && IsImageFile(line) {
			files = append(files, filepath.Clean(line))
		}
	}
	return files, nil
}
