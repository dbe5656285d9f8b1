// Command validate checks a backfilled PM2.5 dataset against the reference
// places file. It verifies the header, row ordering, value formatting, and
// that every reference county is covered exactly once.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -pm25 data/pm25_by_county.csv \
//	  -counties data/places_county.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/couchcryptid/pm25-backfill/internal/adapter/csvfile"
	"github.com/couchcryptid/pm25-backfill/internal/domain"
)

// valueRe matches fixed-point values with exactly three fractional digits.
var valueRe = regexp.MustCompile(`^-?\d+\.\d{3}$`)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	pm25 := flag.String("pm25", "data/pm25_by_county.csv", "path to the backfilled PM2.5 CSV")
	counties := flag.String("counties", "data/places_county.csv", "path to the reference places CSV")
	flag.Parse()

	if code := run(os.Stdout, *pm25, *counties); code != 0 {
		os.Exit(code)
	}
}

func run(out io.Writer, pm25Path, countiesPath string) int {
	fmt.Fprintln(out, "=== PM2.5 Backfill Validation ===")

	header, rows, err := loadCSV(pm25Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load PM2.5 CSV: %v\n", err)
		return 1
	}

	reference, err := loadCounties(countiesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load counties CSV: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateHeader(header),
		validateOrdering(rows),
		validateFormat(rows),
		validateCoverage(rows, reference),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-32s %s\n", p.name, status)
	}
	fmt.Fprintf(out, "\nRows: %d output, %d reference counties\n", len(rows), len(reference))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// csvRow is one output row with its 1-based line number.
type csvRow struct {
	lineNum int
	fips    string
	value   string
}

func loadCSV(path string) ([]string, []csvRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty file %s", path)
	}

	rows := make([]csvRow, 0, len(all)-1)
	for i, rec := range all[1:] {
		row := csvRow{lineNum: i + 2}
		if len(rec) > 0 {
			row.fips = rec[0]
		}
		if len(rec) > 1 {
			row.value = rec[1]
		}
		rows = append(rows, row)
	}
	return all[0], rows, nil
}

func loadCounties(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fips, err := csvfile.ReadCounties(f)
	if err != nil {
		return nil, err
	}
	return domain.CountyUniverse(fips), nil
}

// ── Phases ──

func validateHeader(header []string) *phase {
	p := &phase{name: "Phase 1: Header"}
	want := csvfile.ColumnFIPS + "," + csvfile.ColumnPM25
	if got := strings.Join(header, ","); got != want {
		p.errorf("header is %q, want %q", got, want)
	}
	return p
}

func validateOrdering(rows []csvRow) *phase {
	p := &phase{name: "Phase 2: Ordering"}
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.fips <= prev.fips {
			p.errorf("line %d: %q does not sort after %q", cur.lineNum, cur.fips, prev.fips)
		}
	}
	return p
}

func validateFormat(rows []csvRow) *phase {
	p := &phase{name: "Phase 3: Value format"}
	for _, row := range rows {
		if len(row.fips) != domain.FIPSLength {
			p.errorf("line %d: fips %q is not %d characters", row.lineNum, row.fips, domain.FIPSLength)
		}
		if !valueRe.MatchString(row.value) {
			p.errorf("line %d: value %q is not fixed-point with 3 decimals", row.lineNum, row.value)
		}
	}
	return p
}

func validateCoverage(rows []csvRow, reference []string) *phase {
	p := &phase{name: "Phase 4: Coverage"}

	present := make(map[string]bool, len(rows))
	for _, row := range rows {
		present[row.fips] = true
	}

	expected := make(map[string]bool, len(reference))
	for _, fips := range reference {
		if fips == domain.SentinelFIPS {
			continue
		}
		expected[fips] = true
		if !present[fips] {
			p.errorf("reference county %s missing from output", fips)
		}
	}

	for _, row := range rows {
		if row.fips == domain.SentinelFIPS {
			p.errorf("line %d: sentinel %s must not appear", row.lineNum, domain.SentinelFIPS)
			continue
		}
		if !expected[row.fips] {
			p.errorf("line %d: %s is not a reference county", row.lineNum, row.fips)
		}
	}
	return p
}
