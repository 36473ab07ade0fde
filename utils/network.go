package utils

import (
	"bufio"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// networkFilesystems are mount types that make many concurrent writers slow.
var networkFilesystems = map[string]bool{
	"nfs": true, "nfs4": true, "cifs": true, "smb3": true, "smbfs": true,
	"afpfs": true, "9p": true, "fuse.sshfs": true, "davfs": true,
}

// IsNetworkDrive reports whether path lives on a network mount. On Linux the
// mount table decides; elsewhere well-known mount prefixes are used.
func IsNetworkDrive(path string) bool {
	if strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//") {
		return true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	if runtime.GOOS == "linux" {
		if fsType, ok := mountType(abs, "/proc/self/mounts"); ok {
			return networkFilesystems[fsType]
		}
	}

	for _, prefix := range []string{"/mnt/", "/media/", "/Volumes/"} {
		if strings.HasPrefix(abs, prefix) {
			return true
		}
	}
	return false
}

// mountType returns the filesystem type of the longest mount point in the
// given mounts file that contains path.
func mountType(path, mountsFile string) (string, bool) {
	f, err := os.Open(mountsFile)
	if err != nil {
		return "", false
	}
	defer f.Close()

	best, bestType := "", ""
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mount := strings.ReplaceAll(fields[1], `\040`, " ")
		if !within(path, mount) || len(mount) <= len(best) {
			continue
		}
		best, bestType = mount, fields[2]
	}
	return bestType, best != ""
}

func within(path, mount string) bool {
	if mount == "/" {
		return true
	}
	return path == mount || strings.HasPrefix(path, mount+"/")
}
