package workbook_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/sheetmap/internal/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, sheets map[string][][]any, order ...string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestOpen(t *testing.T) {
	defer filet.CleanUp(t)
	dir := filet.TmpDir(t, "")

	t.Run("missing file", func(t *testing.T) {
		book, err := workbook.Open(filepath.Join(dir, "missing.xlsx"))

		require.Nil(t, book)
		require.ErrorIs(t, err, workbook.ErrNotFound)
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		book, err := workbook.Open(dir)

		require.Nil(t, book)
		require.ErrorIs(t, err, workbook.ErrNotFound)
	})

	t.Run("not a workbook", func(t *testing.T) {
		path := filepath.Join(dir, "broken.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))

		book, err := workbook.Open(path)

		require.Nil(t, book)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open excel file")
	})

	t.Run("reads sheets and rows", func(t *testing.T) {
		path := filepath.Join(dir, "data.xlsx")
		writeWorkbook(t, path, map[string][][]any{
			"Books": {
				{"latitude", "longitude", "quantity"},
				{40.1, -73.9, 3},
				{"abc", -73.8, 2},
			},
			"Volunteers": {{"name"}},
		}, "Books", "Volunteers")

		book, err := workbook.Open(path)
		require.NoError(t, err)
		defer book.Close()

		assert.Equal(t, []string{"Books", "Volunteers"}, book.SheetNames())

		table, err := book.Table("Books")
		require.NoError(t, err)
		assert.Equal(t, "Books", table.Sheet)
		assert.Equal(t, []string{"latitude", "longitude", "quantity"}, table.Columns)
		assert.Equal(t, [][]string{{"40.1", "-73.9", "3"}, {"abc", "-73.8", "2"}}, table.Rows)

		table, err = book.Table("Volunteers")
		require.NoError(t, err)
		assert.Equal(t, []string{"name"}, table.Columns)
		assert.Empty(t, table.Rows)

		_, err = book.Table("Schools")
		require.ErrorIs(t, err, workbook.ErrUnknownSheet)
	})
}
