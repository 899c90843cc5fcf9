package loader

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/UnknownOlympus/sheetmap/internal/coerce"
	"github.com/UnknownOlympus/sheetmap/internal/detect"
	"github.com/UnknownOlympus/sheetmap/internal/metrics"
	"github.com/UnknownOlympus/sheetmap/internal/models"
	"github.com/UnknownOlympus/sheetmap/internal/workbook"
)

// Options selects worksheets and column mappings per dataset kind.
// Kinds missing from Sheets use the positional default sheet; kinds missing
// from Columns are auto-detected.
type Options struct {
	Sheets  map[models.Kind]string
	Columns map[models.Kind]models.Mapping
}

// Result is the outcome of loading a workbook.
type Result struct {
	Data     *models.Dataset                // Data holds the three record collections.
	Sheets   map[models.Kind]string         // Sheets records which sheet each dataset was read from.
	Mappings map[models.Kind]models.Mapping // Mappings holds the mappings detected automatically.
	Warnings []coerce.Warning               // Warnings lists every dropped row.
}

// Loader reads the books, volunteers and schools datasets out of a workbook.
type Loader struct {
	log     *slog.Logger
	coercer *coerce.Coercer
	metrics *metrics.Metrics
	open    func(path string) (workbook.Workbook, error)
}

// NewLoader creates a Loader that opens files with workbook.Open.
func NewLoader(log *slog.Logger, metrics *metrics.Metrics) *Loader {
	return &Loader{
		log:     log,
		coercer: coerce.NewCoercer(log, metrics),
		metrics: metrics,
		open:    workbook.Open,
	}
}

// Load opens the workbook at path and converts each dataset kind in turn.
// A missing file is an error wrapping workbook.ErrNotFound. A dataset whose
// sheet does not exist is left empty.
func (l *Loader) Load(ctx context.Context, path string, opts Options) (*Result, error) {
	start := time.Now()
	defer func() {
		l.metrics.StageSeconds.WithLabelValues("load").Observe(time.Since(start).Seconds())
	}()

	book, err := l.open(path)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	available := book.SheetNames()
	l.log.InfoContext(ctx, "Available sheets", "sheets", strings.Join(available, ", "))

	result := &Result{
		Data:     models.NewDataset(),
		Sheets:   make(map[models.Kind]string),
		Mappings: make(map[models.Kind]models.Mapping),
	}

	for _, kind := range models.Kinds {
		sheet := ResolveSheet(kind, opts.Sheets[kind], available)
		if !slices.Contains(available, sheet) {
			l.log.DebugContext(ctx, "Sheet not found, skipping dataset", "dataset", kind, "sheet", sheet)
			continue
		}

		table, err := book.Table(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s sheet: %w", kind, err)
		}
		l.metrics.SheetsRead.Inc()
		result.Sheets[kind] = sheet
		l.log.InfoContext(ctx, "Parsing dataset", "dataset", kind, "sheet", sheet,
			"columns", strings.Join(table.Columns, ", "))

		mapping, ok := opts.Columns[kind]
		if !ok {
			mapping = detect.Columns(table.Columns, kind)
			result.Mappings[kind] = mapping
			l.log.InfoContext(ctx, "Auto-detected columns", "dataset", kind, "mapping", formatMapping(kind, mapping))
		}

		var (
			parsed   int
			warnings []coerce.Warning
		)
		switch kind {
		case models.KindBooks:
			result.Data.BookData, warnings = l.coercer.Books(ctx, table, mapping)
			parsed = len(result.Data.BookData)
		case models.KindVolunteers:
			result.Data.Volunteers, warnings = l.coercer.Volunteers(ctx, table, mapping)
			parsed = len(result.Data.Volunteers)
		case models.KindSchools:
			result.Data.Schools, warnings = l.coercer.Schools(ctx, table, mapping)
			parsed = len(result.Data.Schools)
		}
		result.Warnings = append(result.Warnings, warnings...)

		l.log.InfoContext(ctx, "Parsed dataset", "dataset", kind, "records", parsed, "skipped", len(warnings))
	}

	return result, nil
}

// ResolveSheet picks the worksheet for kind. An explicit name always wins.
// Otherwise books use the first sheet, volunteers the second and schools the
// third, falling back to the first sheet when the workbook is too short.
func ResolveSheet(kind models.Kind, explicit string, available []string) string {
	if explicit != "" {
		return explicit
	}
	if len(available) == 0 {
		return ""
	}

	pos := slices.Index(models.Kinds, kind)
	if pos < 0 || pos >= len(available) {
		return available[0]
	}

	return available[pos]
}

func formatMapping(kind models.Kind, mapping models.Mapping) string {
	parts := make([]string, 0, len(mapping))
	for _, role := range kind.Roles() {
		if col, ok := mapping[role]; ok {
			parts = append(parts, fmt.Sprintf("%s=%s", role, col))
		}
	}

	return strings.Join(parts, " ")
}
