package workflows

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/PolarWolf314/rollcall/internal/configs"
	kerrors "github.com/PolarWolf314/rollcall/internal/errors"
	"github.com/PolarWolf314/rollcall/internal/records"
)

func TestExport_ToFile(t *testing.T) {
	tempDir := setupTestSettings(t)
	initStore(t, ann, jane)

	outPath := filepath.Join(tempDir, "export.csv")
	// A pre-existing, world-readable file must be tightened.
	if err := os.WriteFile(outPath, []byte("old"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	result, err := Export(context.Background(), ExportOptions{OutputPath: outPath})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.Count != 2 {
		t.Errorf("Expected 2 records, got %d", result.Count)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	want, _ := records.Encode([]records.Record{ann, jane})
	if !bytes.Equal(data, want) {
		t.Errorf("Expected %q, got %q", want, data)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("Failed to stat export: %v", err)
	}
	if perm := info.Mode().Perm(); perm != ExportFileMode {
		t.Errorf("Expected mode %o, got %o", ExportFileMode, perm)
	}
}

func TestExport_RefusesStoreFiles(t *testing.T) {
	tempDir := setupTestSettings(t)
	initStore(t, ann)
	settings := configs.RollcallSettings

	link := filepath.Join(tempDir, "link.csv")
	if err := os.Symlink(settings.DataFilePath(), link); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	dataBefore, err := os.ReadFile(settings.DataFilePath())
	if err != nil {
		t.Fatalf("Failed to read data file: %v", err)
	}
	keyBefore, err := os.ReadFile(settings.KeyFilePath())
	if err != nil {
		t.Fatalf("Failed to read key file: %v", err)
	}

	targets := map[string]string{
		"DataFile":   settings.DataFilePath(),
		"KeyFile":    settings.KeyFilePath(),
		"AuditLog":   settings.AuditLogPath(),
		"Unclean":    settings.DataDir + "/./sub/../" + settings.DataFileName,
		"LinkToData": link,
	}
	for name, target := range targets {
		t.Run(name, func(t *testing.T) {
			_, err := Export(context.Background(), ExportOptions{OutputPath: target})
			if !errors.Is(err, kerrors.ErrOutputIsStoreFile) {
				t.Errorf("Expected ErrOutputIsStoreFile, got: %v", err)
			}
		})
	}

	dataAfter, _ := os.ReadFile(settings.DataFilePath())
	keyAfter, _ := os.ReadFile(settings.KeyFilePath())
	if !bytes.Equal(dataBefore, dataAfter) || !bytes.Equal(keyBefore, keyAfter) {
		t.Fatal("Expected store files to be left untouched")
	}
	if got := listAll(t); !reflect.DeepEqual(got, []records.Record{ann}) {
		t.Errorf("Expected the store to stay readable, got %v", got)
	}
}

func TestExport_ToWriter(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)

	var buf bytes.Buffer
	if _, err := Export(context.Background(), ExportOptions{Writer: &buf}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Name,Email,Phone,Date,Time\n") {
		t.Errorf("Expected CSV header, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "ann@x.com") {
		t.Errorf("Expected record in export, got %q", buf.String())
	}
}

func TestImport(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)

	data, err := records.Encode([]records.Record{jane, bob})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	dry, err := Import(context.Background(), ImportOptions{Data: data, DryRun: true})
	if err != nil {
		t.Fatalf("Import dry-run failed: %v", err)
	}
	if dry.Added != 2 || dry.Count != 1 {
		t.Errorf("Unexpected dry-run result: %+v", dry)
	}
	if got := listAll(t); len(got) != 1 {
		t.Fatalf("Expected dry-run to change nothing, got %v", got)
	}

	result, err := Import(context.Background(), ImportOptions{Data: data})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Added != 2 || result.Count != 3 {
		t.Errorf("Unexpected result: %+v", result)
	}
	if got := listAll(t); !reflect.DeepEqual(got, []records.Record{ann, jane, bob}) {
		t.Errorf("Expected [ann, jane, bob], got %v", got)
	}
}

func TestImport_RejectsWholeBatch(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)

	tests := []struct {
		name string
		data string
		want error
	}{
		{"WrongHeader", "Name,Email\nAnn,a\n", kerrors.ErrInvalidFormat},
		{"Empty", "", kerrors.ErrInvalidFormat},
		{"BadRow", "Name,Email,Phone,Date,Time\nJane,j@x.com,1,02-01-2025,10:00\nBob,,2,03-01-2025,11:00\n", kerrors.ErrMissingField},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Import(context.Background(), ImportOptions{Data: []byte(tc.data)})
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got: %v", tc.want, err)
			}
		})
	}

	if got := listAll(t); !reflect.DeepEqual(got, []records.Record{ann}) {
		t.Errorf("Expected table unchanged, got %v", got)
	}
}

func TestImport_BadRowNamesLine(t *testing.T) {
	setupTestSettings(t)
	initStore(t)

	data := "Name,Email,Phone,Date,Time\nJane,j@x.com,1,02-01-2025,10:00\nBob,b@x.com,2,2025-01-03,11:00\n"
	_, err := Import(context.Background(), ImportOptions{Data: []byte(data)})
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("Expected error naming line 3, got: %v", err)
	}
}
