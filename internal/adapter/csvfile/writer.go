package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/pm25-backfill/internal/domain"
	"github.com/google/renameio/v2"
)

// Writer replaces the PM2.5 file with the backfilled dataset.
// It implements pipeline.Loader.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer targeting path, normally the same file the
// MeasurementReader loaded.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Name identifies the loader in logs.
func (w *Writer) Name() string { return "csv" }

// Load writes the estimates to a temporary file next to the destination and
// renames it into place. On any error the existing file is left untouched.
func (w *Writer) Load(ctx context.Context, result domain.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pf, err := renameio.NewPendingFile(w.path,
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer pf.Cleanup() //nolint:errcheck // no-op after a successful replace

	if err := WriteEstimates(pf, result.Estimates); err != nil {
		return fmt.Errorf("write %s: %w", w.path, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", w.path, err)
	}

	w.logger.Info("dataset written", "path", w.path, "rows", len(result.Estimates))
	return nil
}

// WriteEstimates serializes estimates with the fips,pm25_mean_2016_2024 header.
func WriteEstimates(w io.Writer, estimates []domain.Estimate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnFIPS, ColumnPM25}); err != nil {
		return err
	}
	for _, e := range estimates {
		if err := cw.Write([]string{e.FIPS, e.PM25}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
