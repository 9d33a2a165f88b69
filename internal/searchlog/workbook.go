package searchlog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"canteen/internal/models"
)

// Workbook column headers.
const (
	ColumnTerm         = "Search Term"
	ColumnCount        = "Count"
	ColumnLastSearched = "Last Searched"
)

// TimestampLayout is the format of the Last Searched column.
const TimestampLayout = "2006-01-02 15:04:05"

const sheetName = "Sheet1"

// Older logs used different names for the count and timestamp columns.
var (
	countHeaders     = []string{ColumnCount, "Search Count"}
	timestampHeaders = []string{ColumnLastSearched, "Timestamp", "Last Searched Date", "Date"}
	timestampLayouts = []string{TimestampLayout, "2006-01-02", time.RFC3339}
)

// WorkbookStore keeps the search log in an .xlsx workbook. Every upsert reads
// the whole workbook, updates it in memory and atomically replaces the file.
type WorkbookStore struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// WorkbookOption configures a WorkbookStore.
type WorkbookOption func(*WorkbookStore)

// WithClock overrides the time source used for Last Searched.
func WithClock(now func() time.Time) WorkbookOption {
	return func(s *WorkbookStore) {
		s.now = now
	}
}

// NewWorkbookStore creates a store backed by the workbook at path. The file
// and its directory are created on first write.
func NewWorkbookStore(path string, opts ...WorkbookOption) *WorkbookStore {
	s := &WorkbookStore{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the workbook location.
func (s *WorkbookStore) Path() string {
	return s.path
}

// LoadAll reads every record from the workbook.
func (s *WorkbookStore) LoadAll(ctx context.Context) ([]models.TermRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

// Upsert increments term's count or appends it, then rewrites the workbook.
func (s *WorkbookStore) Upsert(ctx context.Context, term string) (models.TermRecord, error) {
	term, err := NormalizeTerm(term)
	if err != nil {
		return models.TermRecord{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.TermRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return models.TermRecord{}, err
	}

	records, record := upsertRecord(records, term, s.now().Truncate(time.Second))
	if err := s.write(records); err != nil {
		return models.TermRecord{}, err
	}
	return record, nil
}

// Reset removes the workbook and writes an empty one in its place.
func (s *WorkbookStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reset()
}

// Recover re-reads the workbook and resets it only if it is still corrupted.
// A workbook another caller has already repaired is left alone.
func (s *WorkbookStore) Recover(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.read()
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrStoreCorrupted) {
		return false, err
	}
	if err := s.reset(); err != nil {
		return false, err
	}
	return true, nil
}

// reset must be called with s.mu held.
func (s *WorkbookStore) reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &WriteError{Path: s.path, Err: err}
	}
	return s.write(nil)
}

func upsertRecord(records []models.TermRecord, term string, now time.Time) ([]models.TermRecord, models.TermRecord) {
	for i := range records {
		if records[i].Term == term {
			records[i].Count++
			records[i].LastSearched = now
			return records, records[i]
		}
	}
	record := models.TermRecord{Term: term, Count: 1, LastSearched: now}
	return append(records, record), record
}

// read must be called with s.mu held.
func (s *WorkbookStore) read() ([]models.TermRecord, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat search log: %w", err)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to open search log: %w", err)
		}
		return nil, &CorruptedError{Path: s.path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &CorruptedError{Path: s.path, Err: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &CorruptedError{Path: s.path, Err: err}
	}

	records, err := decodeRows(rows)
	if err != nil {
		return nil, &CorruptedError{Path: s.path, Err: err}
	}
	return records, nil
}

// write must be called with s.mu held. The workbook is written to a temporary
// file in the same directory and renamed over the old one.
func (s *WorkbookStore) write(records []models.TermRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, records); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".search-log-*.xlsx")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

// EncodeWorkbook renders records as an .xlsx workbook in the search log format.
func EncodeWorkbook(records []models.TermRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, records); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

func writeSheet(f *excelize.File, records []models.TermRecord) error {
	header := []interface{}{ColumnTerm, ColumnCount, ColumnLastSearched}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Term, r.Count, formatTimestamp(r.LastSearched)}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetName, "A", "A", 40)
}

// decodeRows turns sheet rows into records. Rows without a term are skipped
// and repeated terms are merged so the table stays unique by term.
func decodeRows(rows [][]string) ([]models.TermRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing %q header", ColumnTerm)
	}

	header := rows[0]
	termCol := columnIndex(header, ColumnTerm)
	if termCol < 0 {
		return nil, fmt.Errorf("missing %q header", ColumnTerm)
	}
	countCol := columnIndex(header, countHeaders...)
	timestampCol := columnIndex(header, timestampHeaders...)

	// A malformed row fails the whole read. Skipping it would drop the row
	// silently on the next rewrite.
	var records []models.TermRecord
	seen := make(map[string]int)

	for i, row := range rows[1:] {
		term := strings.TrimSpace(cell(row, termCol))
		if term == "" {
			continue
		}

		count, err := parseCount(cell(row, countCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lastSearched, err := parseTimestamp(cell(row, timestampCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		if idx, ok := seen[term]; ok {
			records[idx].Count += count
			if lastSearched.After(records[idx].LastSearched) {
				records[idx].LastSearched = lastSearched
			}
			continue
		}

		seen[term] = len(records)
		records = append(records, models.TermRecord{
			Term:         term,
			Count:        count,
			LastSearched: lastSearched,
		})
	}

	return records, nil
}

func columnIndex(header []string, names ...string) int {
	for _, name := range names {
		for i, h := range header {
			if strings.TrimSpace(h) == name {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseCount defaults a blank count to 1.
func parseCount(v string) (int64, error) {
	if v == "" {
		return 1, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int64(f)) {
			return 0, fmt.Errorf("invalid count %q", v)
		}
		n = int64(f)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid count %q", v)
	}
	return n, nil
}

// parseTimestamp accepts the written layout, date-only values from older logs
// and raw Excel date serials.
func parseTimestamp(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", v)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}
