// Package coerce turns worksheet rows into typed records.
//
// Coercion is best effort: a row whose required values cannot be converted is
// dropped whole, reported as a Warning and logged, and the remaining rows are
// still processed.
package coerce

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/sheetmap/internal/metrics"
	"github.com/UnknownOlympus/sheetmap/internal/models"
)

var (
	// ErrMissingColumn is returned when a mapped column is not in the header row.
	ErrMissingColumn = errors.New("column not found")
	// ErrEmptyValue is returned for a blank cell where a number is required.
	ErrEmptyValue = errors.New("empty value")
	// ErrNotNumber is returned when a cell does not hold a finite number.
	ErrNotNumber = errors.New("not a number")
)

// Warning describes a dropped row.
type Warning struct {
	Kind  models.Kind // Kind is the dataset the row belonged to.
	Sheet string      // Sheet is the worksheet name.
	Row   int         // Row is the 1-based data row position (the header is not counted).
	Err   error       // Err is the reason the row was dropped.
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: sheet %q row %d: %v", w.Kind, w.Sheet, w.Row, w.Err)
}

// Coercer converts tables into record collections.
type Coercer struct {
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewCoercer creates a Coercer that logs skipped rows to log and counts rows in metrics.
func NewCoercer(log *slog.Logger, metrics *metrics.Metrics) *Coercer {
	return &Coercer{log: log, metrics: metrics}
}

// Books converts table rows into book points.
func (c *Coercer) Books(ctx context.Context, table *models.Table, mapping models.Mapping) ([]models.BookPoint, []Warning) {
	return collect(ctx, c, models.KindBooks, table, func(r row) (models.BookPoint, error) {
		var (
			point models.BookPoint
			err   error
		)
		if point.Latitude, err = r.number(mapping.Column(models.RoleLatitude)); err != nil {
			return point, err
		}
		if point.Longitude, err = r.number(mapping.Column(models.RoleLongitude)); err != nil {
			return point, err
		}
		if point.Count, err = r.integer(mapping.Column(models.RoleCount)); err != nil {
			return point, err
		}

		return point, nil
	})
}

// Volunteers converts table rows into volunteers. Without an id column the id
// is the 1-based row position.
func (c *Coercer) Volunteers(ctx context.Context, table *models.Table, mapping models.Mapping) ([]models.Volunteer, []Warning) {
	return collect(ctx, c, models.KindVolunteers, table, func(r row) (models.Volunteer, error) {
		var (
			vol models.Volunteer
			err error
		)
		if vol.ID, err = r.id(mapping.Column(models.RoleID)); err != nil {
			return vol, err
		}
		if vol.Latitude, err = r.number(mapping.Column(models.RoleLatitude)); err != nil {
			return vol, err
		}
		if vol.Longitude, err = r.number(mapping.Column(models.RoleLongitude)); err != nil {
			return vol, err
		}
		if vol.Name, err = r.value(mapping.Column(models.RoleName)); err != nil {
			return vol, err
		}
		if vol.Books, err = r.integer(mapping.Column(models.RoleBooks)); err != nil {
			return vol, err
		}

		return vol, nil
	})
}

// Schools converts table rows into schools. Without an id column the id is
// the 1-based row position.
func (c *Coercer) Schools(ctx context.Context, table *models.Table, mapping models.Mapping) ([]models.School, []Warning) {
	return collect(ctx, c, models.KindSchools, table, func(r row) (models.School, error) {
		var (
			school models.School
			err    error
		)
		if school.ID, err = r.id(mapping.Column(models.RoleID)); err != nil {
			return school, err
		}
		if school.Latitude, err = r.number(mapping.Column(models.RoleLatitude)); err != nil {
			return school, err
		}
		if school.Longitude, err = r.number(mapping.Column(models.RoleLongitude)); err != nil {
			return school, err
		}
		if school.Name, err = r.value(mapping.Column(models.RoleName)); err != nil {
			return school, err
		}
		if school.Students, err = r.integer(mapping.Column(models.RoleStudents)); err != nil {
			return school, err
		}

		return school, nil
	})
}

func collect[T any](
	ctx context.Context,
	c *Coercer,
	kind models.Kind,
	table *models.Table,
	build func(r row) (T, error),
) ([]T, []Warning) {
	records := make([]T, 0, len(table.Rows))
	var warnings []Warning

	for i, cells := range table.Rows {
		position := i + 1
		record, err := build(row{table: table, cells: cells, position: position})
		if err != nil {
			c.log.WarnContext(ctx, "Skipping row due to error",
				"dataset", kind, "sheet", table.Sheet, "row", position, "error", err)
			c.metrics.RowsSkipped.WithLabelValues(string(kind)).Inc()
			warnings = append(warnings, Warning{Kind: kind, Sheet: table.Sheet, Row: position, Err: err})
			continue
		}
		c.metrics.RowsParsed.WithLabelValues(string(kind)).Inc()
		records = append(records, record)
	}

	return records, warnings
}

type row struct {
	table    *models.Table
	cells    []string
	position int
}

func (r row) value(col string) (string, error) {
	idx := r.table.ColumnIndex(col)
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrMissingColumn, col)
	}

	return r.table.Cell(r.cells, idx), nil
}

func (r row) number(col string) (float64, error) {
	raw, err := r.value(col)
	if err != nil {
		return 0, err
	}
	v, err := ParseFloat(raw)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}

	return v, nil
}

func (r row) integer(col string) (int, error) {
	raw, err := r.value(col)
	if err != nil {
		return 0, err
	}
	v, err := ParseInt(raw)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}

	return v, nil
}

// id reads col as an integer, or falls back to the row position when the
// table has no such column.
func (r row) id(col string) (int, error) {
	if r.table.ColumnIndex(col) < 0 {
		return r.position, nil
	}

	return r.integer(col)
}

// ParseFloat converts cell text into a finite float64.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyValue
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}

	return v, nil
}

// ParseInt converts cell text into an int. Fractional values are truncated
// toward zero, so a cell stored as 3.0 yields 3.
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyValue
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}

	f, err := ParseFloat(s)
	if err != nil {
		return 0, err
	}
	f = math.Trunc(f)
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%w: %q out of range", ErrNotNumber, s)
	}

	return int(f), nil
}
