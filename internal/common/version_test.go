package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetFullVersion(t *testing.T) {
	origVersion, origBuild, origCommit := Version, Build, GitCommit
	t.Cleanup(func() {
		Version, Build, GitCommit = origVersion, origBuild, origCommit
	})

	Version = "1.2.3"
	Build = "2026-08-28"
	GitCommit = "abc1234"

	got := GetFullVersion()
	want := "1.2.3 (build: 2026-08-28, commit: abc1234)"
	if got != want {
		t.Errorf("GetFullVersion() = %q, want %q", got, want)
	}
}

func TestLoadVersionFromFile(t *testing.T) {
	exePath, err := os.Executable()
	if err != nil {
		t.Skipf("executable path unavailable: %v", err)
	}
	versionFile := filepath.Join(filepath.Dir(exePath), ".version")

	// No .version file next to the binary falls back to the compiled-in value
	if _, err := os.Stat(versionFile); err == nil {
		t.Skip(".version already present next to the test binary")
	}
	if got := LoadVersionFromFile(); got != Version {
		t.Errorf("LoadVersionFromFile() = %q, want fallback %q", got, Version)
	}

	if err := os.WriteFile(versionFile, []byte("9.9.9\n"), 0o644); err != nil {
		t.Skipf("cannot write next to the test binary: %v", err)
	}
	t.Cleanup(func() { os.Remove(versionFile) })

	if got := LoadVersionFromFile(); got != "9.9.9" {
		t.Errorf("LoadVersionFromFile() = %q, want %q", got, "9.9.9")
	}

	// Blank content also falls back
	if err := os.WriteFile(versionFile, []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := LoadVersionFromFile(); got != Version {
		t.Errorf("LoadVersionFromFile() with blank file = %q, want fallback %q", got, Version)
	}
}
