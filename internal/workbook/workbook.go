// Package workbook reads worksheets from Excel files into models.Table values.
package workbook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/sheetmap/internal/models"
)

var (
	// ErrNotFound is returned by Open when the workbook path does not exist.
	ErrNotFound = errors.New("excel file not found")
	// ErrNoSheets is returned by Open for a workbook without worksheets.
	ErrNoSheets = errors.New("workbook has no sheets")
	// ErrUnknownSheet is returned by Table for a sheet name the workbook does not contain.
	ErrUnknownSheet = errors.New("sheet not found")
)

// Workbook is an opened spreadsheet file.
type Workbook interface {
	// SheetNames lists worksheet names in workbook order.
	SheetNames() []string
	// Table reads the named worksheet, taking its first row as the header.
	Table(sheet string) (*models.Table, error)
	Close() error
}

// Open opens the workbook at path. Legacy .xls files are read with xlrd,
// everything else with excelize.
func Open(path string) (Workbook, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		return nil, fmt.Errorf("failed to stat excel file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	var book Workbook
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		book, err = openXLS(path)
	default:
		book, err = openXLSX(path)
	}
	if err != nil {
		return nil, err
	}

	if len(book.SheetNames()) == 0 {
		_ = book.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoSheets, path)
	}

	return book, nil
}

// newTable builds a table from raw rows. Header cells are trimmed; blank
// headers become "Unnamed: N" and repeated ones get a ".1", ".2" suffix, so
// every column can be addressed by a unique name. Rows wider than the header
// extend it with unnamed columns.
func newTable(sheet string, rows [][]string) *models.Table {
	table := &models.Table{Sheet: sheet}
	if len(rows) == 0 {
		return table
	}

	width := len(rows[0])
	for _, r := range rows[1:] {
		width = max(width, len(r))
	}

	seen := make(map[string]int, width)
	table.Columns = make([]string, width)
	for i := range width {
		name := ""
		if i < len(rows[0]) {
			name = strings.TrimSpace(rows[0][i])
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		table.Columns[i] = name
	}
	table.Rows = rows[1:]

	return table
}
