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
	"github.com/PolarWolf314/rollcall/internal/secrets"
)

var (
	ann  = records.Record{Name: "Ann", Email: "ann@x.com", Phone: "555-1", Date: "01-01-2025", Time: "09:00"}
	jane = records.Record{Name: "Jane", Email: "Jane.Doe@Example.com", Phone: "555-2", Date: "02-01-2025", Time: "10:00"}
	bob  = records.Record{Name: "Bob", Email: "bob@x.com", Phone: "555-3", Date: "03-01-2025", Time: "11:00"}
)

// setupTestSettings points the global settings at a temp directory.
func setupTestSettings(t *testing.T) string {
	t.Helper()
	t.Setenv(configs.DataDirEnv, "")

	tempDir := t.TempDir()
	original := configs.RollcallSettings
	configs.RollcallSettings = configs.NewSettings(
		filepath.Join(tempDir, "config", "config.toml"),
		filepath.Join(tempDir, "data"),
		"testuser",
	)
	t.Cleanup(func() {
		configs.RollcallSettings = original
	})
	return tempDir
}

func initStore(t *testing.T, recs ...records.Record) {
	t.Helper()
	if _, err := Init(context.Background(), InitOptions{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	for _, r := range recs {
		if _, err := Add(context.Background(), AddOptions{Record: r}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
}

func listAll(t *testing.T) []records.Record {
	t.Helper()
	result, err := List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	recs := []records.Record{}
	for _, row := range result.Rows {
		recs = append(recs, row.Record)
	}
	return recs
}

func TestInit(t *testing.T) {
	setupTestSettings(t)
	ctx := context.Background()

	result, err := Init(ctx, InitOptions{})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !result.KeyCreated || !result.StoreCreated {
		t.Errorf("Expected key and store to be created, got %+v", result)
	}
	if result.StoreUUID == "" {
		t.Error("Expected a store UUID")
	}
	if result.RecordCount != 0 {
		t.Errorf("Expected empty table, got %d", result.RecordCount)
	}

	for _, path := range []string{result.KeyPath, result.DataPath, configs.RollcallSettings.ConfigPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}

	again, err := Init(ctx, InitOptions{})
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if again.KeyCreated || again.StoreCreated {
		t.Errorf("Expected second Init to change nothing, got %+v", again)
	}
	if again.StoreUUID != result.StoreUUID {
		t.Errorf("Expected store UUID %s, got %s", result.StoreUUID, again.StoreUUID)
	}
}

func TestWorkflows_RequireInit(t *testing.T) {
	setupTestSettings(t)
	ctx := context.Background()

	if _, err := Add(ctx, AddOptions{Record: ann}); !errors.Is(err, kerrors.ErrStoreNotInitialized) {
		t.Errorf("Add: expected ErrStoreNotInitialized, got: %v", err)
	}
	if _, err := List(ctx, ListOptions{}); !errors.Is(err, kerrors.ErrStoreNotInitialized) {
		t.Errorf("List: expected ErrStoreNotInitialized, got: %v", err)
	}
	if _, err := os.Stat(configs.RollcallSettings.KeyFilePath()); !os.IsNotExist(err) {
		t.Error("Expected no key to be created outside init")
	}
}

func TestAdd(t *testing.T) {
	setupTestSettings(t)
	initStore(t)

	padded := ann
	padded.Name = "  Ann  "

	result, err := Add(context.Background(), AddOptions{Record: padded})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if result.Row != 0 || result.Count != 1 {
		t.Errorf("Expected row 0 of 1, got row %d of %d", result.Row, result.Count)
	}
	if result.Record != ann {
		t.Errorf("Expected trimmed record %v, got %v", ann, result.Record)
	}
	if got := listAll(t); !reflect.DeepEqual(got, []records.Record{ann}) {
		t.Errorf("Expected [%v], got %v", ann, got)
	}
}

func TestAdd_InvalidRecordIsNotWritten(t *testing.T) {
	setupTestSettings(t)
	initStore(t)

	tests := []struct {
		name   string
		record records.Record
		want   error
	}{
		{"MissingEmail", records.Record{Name: "Ann", Phone: "1", Date: "01-01-2025", Time: "09:00"}, kerrors.ErrMissingField},
		{"BadDate", records.Record{Name: "Ann", Email: "a", Phone: "1", Date: "2025-01-01", Time: "09:00"}, kerrors.ErrInvalidField},
		{"BadTime", records.Record{Name: "Ann", Email: "a", Phone: "1", Date: "01-01-2025", Time: "9am"}, kerrors.ErrInvalidField},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Add(context.Background(), AddOptions{Record: tc.record}); !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got: %v", tc.want, err)
			}
		})
	}

	if got := listAll(t); len(got) != 0 {
		t.Errorf("Expected empty table, got %v", got)
	}
}

func TestUpdate_KeepsUnchangedFields(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann, jane)

	result, err := Update(context.Background(), UpdateOptions{
		Row:     1,
		Changes: records.Record{Phone: "555-9999"},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if result.Previous != jane {
		t.Errorf("Expected previous %v, got %v", jane, result.Previous)
	}

	want := jane
	want.Phone = "555-9999"
	if got := listAll(t); !reflect.DeepEqual(got, []records.Record{ann, want}) {
		t.Errorf("Expected [ann, %v], got %v", want, got)
	}
}

func TestUpdate_InvalidChange(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)

	_, err := Update(context.Background(), UpdateOptions{Row: 0, Changes: records.Record{Date: "31-02-2025"}})
	if !errors.Is(err, kerrors.ErrInvalidField) {
		t.Errorf("Expected ErrInvalidField, got: %v", err)
	}
	if got := listAll(t); !reflect.DeepEqual(got, []records.Record{ann}) {
		t.Errorf("Expected table unchanged, got %v", got)
	}
}

func TestRemove(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann, jane, bob)

	result, err := Remove(context.Background(), RemoveOptions{Row: 1})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if result.Removed != jane || result.Count != 2 {
		t.Errorf("Unexpected result: %+v", result)
	}
	if got := listAll(t); !reflect.DeepEqual(got, []records.Record{ann, bob}) {
		t.Errorf("Expected [ann, bob], got %v", got)
	}
}

func TestRemove_ConfirmDeclined(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)

	var asked records.Record
	result, err := Remove(context.Background(), RemoveOptions{
		Row: 0,
		Confirm: func(r records.Record) bool {
			asked = r
			return false
		},
	})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !result.Cancelled {
		t.Error("Expected removal to be cancelled")
	}
	if asked != ann {
		t.Errorf("Expected confirmation for %v, got %v", ann, asked)
	}
	if got := listAll(t); len(got) != 1 {
		t.Errorf("Expected record to remain, got %v", got)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)
	ctx := context.Background()

	for _, row := range []int{-1, 1, 5} {
		if _, err := Update(ctx, UpdateOptions{Row: row, Changes: bob}); !errors.Is(err, kerrors.ErrIndexOutOfRange) {
			t.Errorf("Update(%d): expected ErrIndexOutOfRange, got: %v", row, err)
		}
		if _, err := Remove(ctx, RemoveOptions{Row: row}); !errors.Is(err, kerrors.ErrIndexOutOfRange) {
			t.Errorf("Remove(%d): expected ErrIndexOutOfRange, got: %v", row, err)
		}
	}
}

func TestList_Search(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann, jane, bob)

	tests := []struct {
		search string
		want   []int
	}{
		{"", []int{0, 1, 2}},
		{"example.COM", []int{1}},
		{"555-3", []int{2}},
		{"jane", []int{1}},
		{"Bob", []int{2}},
		{"nobody", []int{}},
	}

	for _, tc := range tests {
		t.Run(tc.search, func(t *testing.T) {
			result, err := List(context.Background(), ListOptions{Search: tc.search})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			got := []int{}
			for _, row := range result.Rows {
				got = append(got, row.Index)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Search %q: expected rows %v, got %v", tc.search, tc.want, got)
			}
			if result.Total != 3 {
				t.Errorf("Expected total 3, got %d", result.Total)
			}
		})
	}
}

func TestInit_RefusesNewKeyForExistingData(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)

	keyPath := configs.RollcallSettings.KeyFilePath()
	if err := os.Remove(keyPath); err != nil {
		t.Fatalf("Failed to remove key: %v", err)
	}

	if _, err := Init(context.Background(), InitOptions{}); !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Fatalf("Expected ErrKeyNotFound, got: %v", err)
	}
	if _, err := os.Stat(keyPath); !os.IsNotExist(err) {
		t.Error("Expected no key to be generated")
	}
	if _, err := List(context.Background(), ListOptions{}); !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Errorf("List: expected ErrKeyNotFound, got: %v", err)
	}
}

func replaceKey(t *testing.T) {
	t.Helper()
	key, err := secrets.CreateSymmetricKey()
	if err != nil {
		t.Fatalf("Failed to create key: %v", err)
	}
	if err := os.WriteFile(configs.RollcallSettings.KeyFilePath(), key, 0600); err != nil {
		t.Fatalf("Failed to write key: %v", err)
	}
}

func TestWrongKey_Aborts(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)
	replaceKey(t)

	dataPath := configs.RollcallSettings.DataFilePath()
	before, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("Failed to read data file: %v", err)
	}

	ctx := context.Background()
	if _, err := Add(ctx, AddOptions{Record: jane}); !errors.Is(err, kerrors.ErrDecryptFailed) {
		t.Errorf("Add: expected ErrDecryptFailed, got: %v", err)
	}
	if _, err := Init(ctx, InitOptions{}); !errors.Is(err, kerrors.ErrDecryptFailed) {
		t.Errorf("Init: expected ErrDecryptFailed, got: %v", err)
	}

	after, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("Failed to read data file: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("Expected unreadable data file to be left untouched")
	}
}

func TestInit_StartFreshMovesUnreadableDataAside(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)
	replaceKey(t)

	result, err := Init(context.Background(), InitOptions{Recovery: RecoveryStartFresh})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if result.MovedTo == "" || !strings.HasPrefix(result.MovedTo, result.DataPath+".corrupt-") {
		t.Errorf("Unexpected MovedTo: %q", result.MovedTo)
	}
	if _, err := os.Stat(result.MovedTo); err != nil {
		t.Errorf("Expected moved file to exist: %v", err)
	}
	if !result.StoreCreated || result.RecordCount != 0 {
		t.Errorf("Expected a fresh empty store, got %+v", result)
	}
	if got := listAll(t); len(got) != 0 {
		t.Errorf("Expected empty table, got %v", got)
	}
}

func TestInit_StartFreshWithMissingKey(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)
	if err := os.Remove(configs.RollcallSettings.KeyFilePath()); err != nil {
		t.Fatalf("Failed to remove key: %v", err)
	}

	result, err := Init(context.Background(), InitOptions{Recovery: RecoveryStartFresh})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !result.KeyCreated || result.MovedTo == "" {
		t.Errorf("Expected new key and moved data, got %+v", result)
	}
}

func writeShortKey(t *testing.T) {
	t.Helper()
	if err := os.WriteFile(configs.RollcallSettings.KeyFilePath(), []byte("short"), 0600); err != nil {
		t.Fatalf("Failed to write key: %v", err)
	}
}

func TestCorruptKey_AbortLeavesFilesUntouched(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)
	writeShortKey(t)

	dataPath := configs.RollcallSettings.DataFilePath()
	before, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("Failed to read data file: %v", err)
	}

	ctx := context.Background()
	if _, err := Add(ctx, AddOptions{Record: jane}); !errors.Is(err, kerrors.ErrInvalidKeyLength) {
		t.Errorf("Add: expected ErrInvalidKeyLength, got: %v", err)
	}
	if _, err := Init(ctx, InitOptions{}); !errors.Is(err, kerrors.ErrInvalidKeyLength) {
		t.Errorf("Init: expected ErrInvalidKeyLength, got: %v", err)
	}

	after, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("Expected data file to stay in place: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("Expected data file to be left untouched")
	}
	key, err := os.ReadFile(configs.RollcallSettings.KeyFilePath())
	if err != nil || string(key) != "short" {
		t.Errorf("Expected key file to be left untouched, got %q, %v", key, err)
	}
}

func TestInit_StartFreshReplacesCorruptKey(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)
	writeShortKey(t)
	ctx := context.Background()

	result, err := Init(ctx, InitOptions{Recovery: RecoveryStartFresh})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !strings.HasPrefix(result.KeyMovedTo, result.KeyPath+".corrupt-") {
		t.Errorf("Unexpected KeyMovedTo: %q", result.KeyMovedTo)
	}
	if !strings.HasPrefix(result.MovedTo, result.DataPath+".corrupt-") {
		t.Errorf("Unexpected MovedTo: %q", result.MovedTo)
	}
	if !result.KeyCreated || !result.StoreCreated || result.RecordCount != 0 {
		t.Errorf("Expected a new key and an empty store, got %+v", result)
	}

	old, err := os.ReadFile(result.KeyMovedTo)
	if err != nil || string(old) != "short" {
		t.Errorf("Expected the corrupt key to be kept aside, got %q, %v", old, err)
	}
	key, err := os.ReadFile(result.KeyPath)
	if err != nil || len(key) != secrets.KeySize {
		t.Fatalf("Expected a fresh %d-byte key, got %d bytes, %v", secrets.KeySize, len(key), err)
	}

	// The store is usable again and a second init is a no-op.
	if _, err := Add(ctx, AddOptions{Record: jane}); err != nil {
		t.Fatalf("Add after recovery failed: %v", err)
	}
	again, err := Init(ctx, InitOptions{Recovery: RecoveryStartFresh})
	if err != nil {
		t.Fatalf("Second init failed: %v", err)
	}
	if again.KeyMovedTo != "" || again.MovedTo != "" || again.RecordCount != 1 {
		t.Errorf("Expected healthy store to be left alone, got %+v", again)
	}
	if got := listAll(t); len(got) != 1 || got[0] != jane {
		t.Errorf("Expected [jane], got %v", got)
	}
}

func TestContextCancelled(t *testing.T) {
	setupTestSettings(t)
	initStore(t, ann)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Add(ctx, AddOptions{Record: jane}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if got := listAll(t); len(got) != 1 {
		t.Errorf("Expected table unchanged, got %v", got)
	}
}
