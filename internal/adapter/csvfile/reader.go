// Package csvfile reads and writes the comma-separated PM2.5 and places
// datasets. It implements the pipeline's sources and its primary loader.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/pm25-backfill/internal/domain"
)

const (
	// ColumnFIPS is the identifier column of the PM2.5 dataset.
	ColumnFIPS = "fips"
	// ColumnPM25 is the value column of the PM2.5 dataset.
	ColumnPM25 = "pm25_mean_2016_2024"
	// ColumnCountyFIPS is the identifier column of the places dataset.
	ColumnCountyFIPS = "county_fips"
)

// MeasurementReader loads the existing PM2.5 dataset from a file.
// It implements pipeline.MeasurementSource.
type MeasurementReader struct {
	path   string
	logger *slog.Logger
}

// NewMeasurementReader creates a reader for the PM2.5 file at path.
func NewMeasurementReader(path string, logger *slog.Logger) *MeasurementReader {
	return &MeasurementReader{path: path, logger: logger}
}

// LoadMeasurements opens the file and parses it with ReadMeasurements.
func (r *MeasurementReader) LoadMeasurements(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open measurements: %w", err)
	}
	defer f.Close()

	d, stats, err := ReadMeasurements(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	r.logger.Debug("measurements read",
		"path", r.path,
		"rows", stats.Rows,
		"values", d.Len(),
		"blank_fips", stats.BlankFIPS,
		"skipped_missing_value", stats.MissingValue,
	)
	return d, nil
}

// CountyReader loads the reference county list from the places file.
// It implements pipeline.CountySource.
type CountyReader struct {
	path   string
	logger *slog.Logger
}

// NewCountyReader creates a reader for the places file at path.
func NewCountyReader(path string, logger *slog.Logger) *CountyReader {
	return &CountyReader{path: path, logger: logger}
}

// LoadCounties opens the file and parses it with ReadCounties.
func (r *CountyReader) LoadCounties(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open counties: %w", err)
	}
	defer f.Close()

	fips, err := ReadCounties(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	r.logger.Debug("counties read", "path", r.path, "fips", len(fips))
	return fips, nil
}

// ReadStats counts rows seen by ReadMeasurements.
type ReadStats struct {
	Rows int
	// BlankFIPS counts rows whose identifier was blank and padded to the sentinel.
	BlankFIPS int
	// MissingValue counts rows skipped for an absent or empty value.
	MissingValue int
}

// ReadMeasurements parses PM2.5 rows into a Dataset. A blank identifier pads
// to domain.SentinelFIPS and its value still feeds the state "00" and national
// means. Rows with an absent or empty value are skipped; a malformed value
// aborts with domain.ErrInvalidValue. Returns domain.ErrEmptyDataset if no
// values remain.
func ReadMeasurements(r io.Reader) (*domain.Dataset, ReadStats, error) {
	var stats ReadStats

	cr := newReader(r)
	idx, err := readHeader(cr, ColumnFIPS, ColumnPM25)
	if err != nil {
		return nil, stats, err
	}

	d := domain.NewDataset()
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read csv: %w", err)
		}
		stats.Rows++

		rawFIPS := field(row, idx[ColumnFIPS])
		if strings.TrimSpace(rawFIPS) == "" {
			stats.BlankFIPS++
		}
		fips := domain.NormalizeFIPS(rawFIPS)
		raw, ok := lookup(row, idx[ColumnPM25])
		if !ok || raw == "" {
			stats.MissingValue++
			continue
		}

		value, err := domain.ParseValue(raw)
		if err != nil {
			line, _ := cr.FieldPos(idx[ColumnPM25])
			return nil, stats, fmt.Errorf("line %d: %w", line, err)
		}
		d.Add(fips, value)
	}

	if d.Len() == 0 {
		return nil, stats, domain.ErrEmptyDataset
	}
	return d, stats, nil
}

// ReadCounties returns every normalized county_fips value, duplicates
// included. Blank identifiers come back as domain.SentinelFIPS.
func ReadCounties(r io.Reader) ([]string, error) {
	cr := newReader(r)
	idx, err := readHeader(cr, ColumnCountyFIPS)
	if err != nil {
		return nil, err
	}

	var out []string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		out = append(out, domain.NormalizeFIPS(field(row, idx[ColumnCountyFIPS])))
	}
	return out, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	// Short rows are treated as missing trailing fields rather than errors.
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

// readHeader reads the header row and maps each required column to its index.
// A repeated column name resolves to its last occurrence.
func readHeader(cr *csv.Reader, required ...string) (map[string]int, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file, want %s", domain.ErrMissingColumn, strings.Join(required, ","))
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		idx[h] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrMissingColumn, col)
		}
	}
	return idx, nil
}

func lookup(row []string, i int) (string, bool) {
	if i >= len(row) {
		return "", false
	}
	return row[i], true
}

func field(row []string, i int) string {
	v, _ := lookup(row, i)
	return v
}
