package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Storage struct {
		DataDir string `toml:"data_dir"`
	} `toml:"storage"`
	Name string `toml:"name"`
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	var in sample
	in.Name = "spring gala"
	in.Storage.DataDir = "/srv/rollcall"
	if err := SaveTOML(path, in); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected file to exist: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected mode 0600, got %o", perm)
	}

	var out sample
	if err := LoadTOML(path, &out); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if out != in {
		t.Errorf("Round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestLoadTOML_Missing(t *testing.T) {
	var out sample
	if err := LoadTOML(filepath.Join(t.TempDir(), "absent.toml"), &out); err == nil {
		t.Fatal("Expected error for a missing file")
	}
}

func TestLoadTOML_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	raw := "name = \"x\"\n[storage]\ndata_dri = \"/tmp/typo\"\n"
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	var out sample
	err := LoadTOML(path, &out)
	if err == nil {
		t.Fatal("Expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "storage.data_dri") {
		t.Errorf("Expected error to name the key, got: %v", err)
	}
}

func TestSaveTOML_EncodeErrorKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("name = \"kept\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	// A bare integer has no TOML table representation.
	if err := SaveTOML(path, 42); err == nil {
		t.Fatal("Expected encode error")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "name = \"kept\"\n" {
		t.Errorf("File was modified: %q", data)
	}
}
