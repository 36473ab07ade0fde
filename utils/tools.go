package utils

import (
	"os/exec"
	"runtime"
)

// HasTool reports whether an external helper binary is on PATH.
func HasTool(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// InstallHint returns platform-specific installation instructions for the
// optional helpers the tool can use.
func InstallHint(tool string) string {
	switch tool {
	case "fd":
		switch runtime.GOOS {
		case "darwin":
			return "Install with: brew install fd"
		case "linux":
			return "Install with: apt-get install fd-find (Ubuntu/Debian) or dnf install fd-find (Fedora)"
		case "windows":
			return "Install with: winget install sharkdp.fd"
		default:
			return "Download from https://github.com/sharkdp/fd/releases"
		}
	default:
		return "Install " + tool + " and add it to PATH"
	}
}
