package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestHasTool(t *testing.T) {
	_, err := exec.LookPath("go")
	if got := HasTool("go"); got != (err == nil) {
		t.Errorf("HasTool(go) = %v, LookPath error = %v", got, err)
	}
	if HasTool("definitely-not-a-real-binary-name") {
		t.Error("HasTool should be false for a missing binary")
	}
}

func TestInstallHint(t *testing.T) {
	hint := InstallHint("fd")
	if hint == "" {
		t.Fatal("hint should not be empty")
	}
	switch runtime.GOOS {
	case "darwin":
		if !strings.Contains(hint, "brew install fd") {
			t.Errorf("expected brew instructions, got: %s", hint)
		}
	case "linux":
		if !strings.Contains(hint, "fd-find") {
			t.Errorf("expected package manager instructions, got: %s", hint)
		}
	}

	if got := InstallHint("magick"); !strings.Contains(got, "magick") {
		t.Errorf("generic hint should name the tool, got: %s", got)
	}
}

func TestMountType(t *testing.T) {
	mounts := filepath.Join(t.TempDir(), "mounts")
	content := strings.Join([]string{
		"/dev/sda1 / ext4 rw,relatime 0 0",
		"server:/export /mnt/share nfs4 rw 0 0",
		"//nas/tex /mnt/share/textures\\040lib cifs rw 0 0",
		"tmpfs /tmp tmpfs rw 0 0",
		"broken-line",
	}, "\n")
	if err := os.WriteFile(mounts, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path   string
		fsType string
	}{
		{"/home/user/tex", "ext4"},
		{"/mnt/share/a.png", "nfs4"},
		{"/mnt/share/textures lib/a.png", "cifs"},
		{"/mnt/sharex", "ext4"},
		{"/tmp", "tmpfs"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := mountType(tt.path, mounts)
			if !ok || got != tt.fsType {
				t.Errorf("mountType(%q) = %q, %v; want %q", tt.path, got, ok, tt.fsType)
			}
		})
	}

	if _, ok := mountType("/x", filepath.Join(t.TempDir(), "missing")); ok {
		t.Error("missing mounts file should report no match")
	}
}

func TestIsNetworkDrive_UNC(t *testing.T) {
	for _, p := range []string{`\\server\share\tex`, "//server/share/tex"} {
		if !IsNetworkDrive(p) {
			t.Errorf("IsNetworkDrive(%q) = false, want true", p)
		}
	}
}

func TestIsNetworkDrive_TempDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("mount table lookup is Linux only")
	}
	if _, err := os.Stat("/proc/self/mounts"); err != nil {
		t.Skip("no mount table")
	}
	dir := t.TempDir()
	fsType, _ := mountType(dir, "/proc/self/mounts")
	if got := IsNetworkDrive(dir); got != networkFilesystems[fsType] {
		t.Errorf("IsNetworkDrive(%q) = %v for fs type %q", dir, got, fsType)
	}
}
