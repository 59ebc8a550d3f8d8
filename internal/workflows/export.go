package workflows

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/rollcall/internal/audit"
	"github.com/PolarWolf314/rollcall/internal/configs"
	kerrors "github.com/PolarWolf314/rollcall/internal/errors"
	"github.com/PolarWolf314/rollcall/internal/records"
)

// ExportFileMode is the permission of plaintext export files.
const ExportFileMode os.FileMode = 0600

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// OutputPath is the file to write. If empty, the table is written to Writer.
	OutputPath string

	// Writer receives the table when OutputPath is empty.
	Writer io.Writer
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	// OutputPath is the file written, or "" when written to ExportOptions.Writer.
	OutputPath string

	// Count is the number of records exported.
	Count int
}

// Export writes the decrypted table as plaintext CSV, in the same format the
// data file holds before encryption.
func Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	s, err := openSession(ctx, openOptions{})
	if err != nil {
		return nil, err
	}

	recs := s.table.Records()
	data, err := records.Encode(recs)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.OutputPath == "" {
		if opts.Writer == nil {
			return nil, fmt.Errorf("export needs an output path or a writer")
		}
		if _, err := opts.Writer.Write(data); err != nil {
			return nil, fmt.Errorf("%w: writing export: %v", kerrors.ErrIO, err)
		}
	} else {
		if err := checkOutputPath(opts.OutputPath); err != nil {
			return nil, err
		}
		if err := writeExportFile(opts.OutputPath, data); err != nil {
			return nil, err
		}
	}

	entry := audit.NewEntry(audit.OpExport, s.storeUUID())
	entry.OutputPath = opts.OutputPath
	entry.Count = len(recs)
	audit.Log(entry)

	return &ExportResult{OutputPath: opts.OutputPath, Count: len(recs)}, nil
}

// checkOutputPath refuses a destination that is one of the store's own
// files, either by path or, for existing files, through a link.
func checkOutputPath(path string) error {
	out, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: resolving %s: %v", kerrors.ErrIO, path, err)
	}
	outInfo, outErr := os.Stat(out)

	settings := configs.RollcallSettings
	for _, own := range []string{settings.DataFilePath(), settings.KeyFilePath(), settings.AuditLogPath()} {
		ownAbs, err := filepath.Abs(own)
		if err != nil {
			continue
		}
		same := ownAbs == out
		if !same && outErr == nil {
			if info, err := os.Stat(ownAbs); err == nil {
				same = os.SameFile(outInfo, info)
			}
		}
		if same {
			return fmt.Errorf("%w: %s is %s", kerrors.ErrOutputIsStoreFile, path, own)
		}
	}
	return nil
}

func writeExportFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, ExportFileMode)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", kerrors.ErrIO, path, err)
	}
	defer f.Close()

	// An existing file keeps its mode on open, so tighten it explicitly.
	if err := f.Chmod(ExportFileMode); err != nil {
		return fmt.Errorf("%w: setting permissions on %s: %v", kerrors.ErrIO, path, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", kerrors.ErrIO, path, err)
	}
	return f.Close()
}
