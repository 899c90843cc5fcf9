package workbook

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/UnknownOlympus/sheetmap/internal/models"
	"github.com/yamitzky/xlrd-go/xlrd"
)

type xlsBook struct {
	book *xlrd.Book
}

func openXLS(path string) (*xlsBook, error) {
	book, err := xlrd.OpenWorkbook(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}

	return &xlsBook{book: book}, nil
}

func (b *xlsBook) SheetNames() []string {
	return b.book.SheetNames()
}

func (b *xlsBook) Table(sheet string) (*models.Table, error) {
	if !slices.Contains(b.book.SheetNames(), sheet) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, sheet)
	}
	sh, err := b.book.SheetByName(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	rows := make([][]string, sh.NRows)
	for r := range sh.NRows {
		cells := make([]string, sh.NCols)
		for c := range sh.NCols {
			cells[c] = xlsCellText(sh.CellType(r, c), sh.CellValue(r, c))
		}
		rows[r] = cells
	}

	return newTable(sheet, rows), nil
}

func (b *xlsBook) Close() error {
	b.book.ReleaseResources()
	return nil
}

// xlsCellText renders a cell the way excelize reports raw values, so both
// readers feed the coercer the same text.
func xlsCellText(ctype int, value interface{}) string {
	switch ctype {
	case xlrd.XL_CELL_EMPTY, xlrd.XL_CELL_BLANK, xlrd.XL_CELL_ERROR:
		return ""
	case xlrd.XL_CELL_NUMBER, xlrd.XL_CELL_DATE:
		if f, ok := value.(float64); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	case xlrd.XL_CELL_BOOLEAN:
		switch v := value.(type) {
		case bool:
			if v {
				return "1"
			}
			return "0"
		case int:
			return strconv.Itoa(v)
		}
	}

	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}
