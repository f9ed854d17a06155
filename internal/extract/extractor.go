package extract

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hr-insights/etl-backend-go/internal/config"
	"github.com/hr-insights/etl-backend-go/internal/pkg/retry"
)

// ErrRosterNotFound aborts the run before any store is touched.
var ErrRosterNotFound = errors.New("no roster file found")

const delimiter = '|'

// Extractor reads the raw roster and timesheet files into typed tables.
// Identifier columns stay strings throughout, so leading zeros survive.
type Extractor struct {
	dir              string
	rosterPattern    string
	timesheetPattern string
	maxRetries       int
	retryDelay       time.Duration
	log              *slog.Logger
}

func New(cfg config.PipelineConfig, log *slog.Logger) *Extractor {
	return &Extractor{
		dir:              cfg.RawDataPath,
		rosterPattern:    cfg.RosterPattern,
		timesheetPattern: cfg.TimesheetPattern,
		maxRetries:       cfg.MaxRetries,
		retryDelay:       cfg.RetryDelay,
		log:              log,
	}
}

// Employees reads the single roster file. A missing roster is fatal.
func (e *Extractor) Employees(ctx context.Context) (Table, error) {
	matches, err := filepath.Glob(filepath.Join(e.dir, e.rosterPattern))
	if err != nil {
		return Table{}, fmt.Errorf("bad roster pattern %q: %w", e.rosterPattern, err)
	}
	if len(matches) == 0 {
		return Table{}, fmt.Errorf("%w: pattern %q in %s", ErrRosterNotFound, e.rosterPattern, e.dir)
	}
	sort.Strings(matches)

	t, err := e.readFile(ctx, matches[0])
	if err != nil {
		return Table{}, err
	}

	e.log.Info("extracted employee records", "file", filepath.Base(matches[0]), "rows", len(t.Rows))
	return t, nil
}

// Timesheets reads every timesheet file in sorted filename order and
// concatenates them into one logical dataset.
func (e *Extractor) Timesheets(ctx context.Context) (Table, error) {
	matches, err := filepath.Glob(filepath.Join(e.dir, e.timesheetPattern))
	if err != nil {
		return Table{}, fmt.Errorf("bad timesheet pattern %q: %w", e.timesheetPattern, err)
	}
	sort.Strings(matches)
	e.log.Info("found timesheet files", "count", len(matches))

	tables := make([]Table, 0, len(matches))
	for _, path := range matches {
		t, err := e.readFile(ctx, path)
		if err != nil {
			return Table{}, err
		}
		e.log.Info("extracted timesheet records", "file", filepath.Base(path), "rows", len(t.Rows))
		tables = append(tables, t)
	}

	merged := Concat(tables...)
	e.log.Info("concatenated timesheet files", "files", len(matches), "rows", len(merged.Rows))
	return merged, nil
}

// readFile loads one delimited file, retrying transient read failures with
// a fixed delay before giving up.
func (e *Extractor) readFile(ctx context.Context, path string) (Table, error) {
	var data []byte
	err := retry.Do(ctx, e.log, "read "+filepath.Base(path), e.maxRetries, e.retryDelay, func(ctx context.Context) error {
		var readErr error
		data, readErr = os.ReadFile(path)
		return readErr
	})
	if err != nil {
		return Table{}, err
	}

	t, err := parse(data, e.log.With("file", filepath.Base(path)))
	if err != nil {
		return Table{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// parse turns pipe-delimited, quote-enclosed bytes into a Table. Headers
// and cells are trimmed; short rows are padded and long rows truncated with
// a logged warning instead of failing the run.
func parse(data []byte, log *slog.Logger) (Table, error) {
	decoded, err := decodeToUTF8(data)
	if err != nil {
		return Table{}, fmt.Errorf("decode failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	// Mismatched column counts are handled below.
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, fmt.Errorf("empty file: no header row")
		}
		return Table{}, fmt.Errorf("read header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	t := Table{Columns: headers}
	rowNum := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			log.Warn("skipping unparsable row", "row", rowNum, "error", err)
			continue
		}

		switch {
		case len(row) < len(headers):
			log.Warn("padding short row", "row", rowNum, "columns", len(row), "expected", len(headers))
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		case len(row) > len(headers):
			log.Warn("truncating long row", "row", rowNum, "columns", len(row), "expected", len(headers))
			row = row[:len(headers)]
		}

		for i, v := range row {
			row[i] = strings.TrimSpace(v)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}
