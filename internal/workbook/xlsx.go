package workbook

import (
	"fmt"

	"github.com/UnknownOlympus/sheetmap/internal/models"
	"github.com/xuri/excelize/v2"
)

type xlsxBook struct {
	file *excelize.File
}

func openXLSX(path string) (*xlsxBook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}

	return &xlsxBook{file: f}, nil
}

func (b *xlsxBook) SheetNames() []string {
	return b.file.GetSheetList()
}

func (b *xlsxBook) Table(sheet string) (*models.Table, error) {
	if idx, err := b.file.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, sheet)
	}

	// Raw values keep number formats such as "1,234" or "40.10" out of the cells.
	rows, err := b.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", sheet, err)
	}

	return newTable(sheet, rows), nil
}

func (b *xlsxBook) Close() error {
	return b.file.Close()
}
