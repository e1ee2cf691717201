package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// -----------------------------------------------------------------------------
// Workbook discovery. Daily snapshot files are named by their calendar date,
// DDMMYYYY.xlsx, one file per trading day per dataset folder.
// -----------------------------------------------------------------------------

var fileDateRe = regexp.MustCompile(`(\d{2})(\d{2})(\d{4})\.xlsx$`)

type sheetFile struct {
	Path string
	Date string // YYYY-MM-DD
}

// -----------------------------------------------------------------------------

// parseFileDate extracts the calendar date from a DDMMYYYY.xlsx filename.
// The YYYY-MM-DD string is assembled directly from the digits; no time.Time
// in a local zone is involved, so the date can never shift by a day.
func parseFileDate(name string) (string, bool) {
	m := fileDateRe.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	date := fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
	if _, err := time.ParseInLocation("2006-01-02", date, time.UTC); err != nil {
		return "", false
	}
	return date, true
}

// -----------------------------------------------------------------------------

// listSheetFiles finds every dated workbook in dir, sorted by date ascending.
// Office lock files ("~$...") and undated files are ignored.
func listSheetFiles(dir string) ([]sheetFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory '%s': %w", dir, err)
	}

	var files []sheetFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") || !strings.HasSuffix(name, ".xlsx") {
			continue
		}
		date, ok := parseFileDate(name)
		if !ok {
			continue
		}
		files = append(files, sheetFile{Path: filepath.Join(dir, name), Date: date})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Date < files[j].Date
	})
	return files, nil
}

// -----------------------------------------------------------------------------

// readSheetRows opens a workbook and returns the rows of its first sheet as
// raw cell strings.
func readSheetRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// -----------------------------------------------------------------------------

// cell returns column i of a row, tolerating short rows: excelize trims
// trailing empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
