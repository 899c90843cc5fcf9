package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/UnknownOlympus/sheetmap/internal/models"
)

const tsHeader = "// Auto-generated from Excel file\n"

// JSON writes data as a single object with bookData, volunteers and schools
// keys, indented by two spaces.
func JSON(w io.Writer, data *models.Dataset) error {
	out, err := marshal(data)
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if _, err = w.Write(out); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}

	return nil
}

// TypeScript writes data as a module exporting the bookData, volunteers and
// schools constants.
func TypeScript(w io.Writer, data *models.Dataset) error {
	decls := []struct {
		comment string
		name    string
		value   any
	}{
		{"Book Data", "bookData", data.BookData},
		{"Volunteers", "volunteers", data.Volunteers},
		{"Schools", "schools", data.Schools},
	}

	var buf bytes.Buffer
	buf.WriteString(tsHeader)
	for i, decl := range decls {
		literal, err := marshal(decl.value)
		if err != nil {
			return err
		}
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "// %s\nexport const %s = %s;\n", decl.comment, decl.name, literal)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write typescript: %w", err)
	}

	return nil
}

// WriteJSON writes data as JSON to the file at path, replacing it.
func WriteJSON(path string, data *models.Dataset) error {
	return writeFile(path, data, JSON)
}

// WriteTypeScript writes data as a TypeScript module to the file at path, replacing it.
func WriteTypeScript(path string, data *models.Dataset) error {
	return writeFile(path, data, TypeScript)
}

func writeFile(path string, data *models.Dataset, write func(io.Writer, *models.Dataset) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err = write(f, data); err != nil {
		_ = f.Close()
		return err
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	return nil
}

// marshal renders v as indented JSON without HTML escaping and without a
// trailing newline.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode data: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
