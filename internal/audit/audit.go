package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/rollcall/internal/configs"
)

// TimestampLayout is the layout of Entry.Timestamp: UTC with microseconds.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Operation names written to the log.
const (
	OpInit   = "init"
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
	OpImport = "import"
	OpExport = "export"
)

// Entry is one line of the audit log. It identifies rows by position only;
// attendee field values are never recorded.
type Entry struct {
	Timestamp string `json:"ts"`
	User      string `json:"user"`
	StoreUUID string `json:"store"`
	Operation string `json:"op"`

	// Row is the affected row for add, update and remove.
	Row *int `json:"row,omitempty"`
	// Count is the table size after the operation.
	Count      int    `json:"count,omitempty"`
	Added      int    `json:"added,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
	// MovedTo is where an unreadable data file was set aside.
	MovedTo    string `json:"moved_to,omitempty"`
	KeyMovedTo string `json:"key_moved_to,omitempty"`
}

// NewEntry starts an entry for op attributed to the current user.
func NewEntry(op, storeUUID string) Entry {
	return Entry{
		User:      configs.RollcallSettings.Username,
		StoreUUID: storeUUID,
		Operation: op,
	}
}

// RowRef returns a pointer to row, for Entry.Row.
func RowRef(row int) *int {
	return &row
}

// LogPath returns the audit log location next to the data file.
func LogPath() string {
	return configs.RollcallSettings.AuditLogPath()
}

// Log appends e to the audit log. It is best-effort: a failed write never
// fails the operation being recorded, and nothing is written before the data
// directory exists.
func Log(e Entry) {
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(TimestampLayout)
	}

	path := LogPath()
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return
	}

	line, err := json.Marshal(e)
	if err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write(append(line, '\n'))
}

// ReadEntries returns every entry in the log, oldest first. A missing log has
// no entries.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries decodes JSON Lines. Lines that do not decode, such as a write
// cut short by a crash, are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var e Entry
		if json.Unmarshal(line, &e) == nil {
			entries = append(entries, e)
		}
	}
	return entries, sc.Err()
}
