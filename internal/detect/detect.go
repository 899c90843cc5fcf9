// Package detect guesses which worksheet column plays which role for a dataset kind.
package detect

import (
	"strings"

	"github.com/UnknownOlympus/sheetmap/internal/models"
)

type candidates struct {
	role  models.Role
	names []string // ordered by priority, lower case
}

var patterns = map[models.Kind][]candidates{
	models.KindBooks: {
		{models.RoleLatitude, []string{"lat", "latitude", "y", "coord_y"}},
		{models.RoleLongitude, []string{"lng", "lon", "long", "longitude", "x", "coord_x"}},
		{models.RoleCount, []string{"count", "books", "book_count", "quantity", "num"}},
	},
	models.KindVolunteers: {
		{models.RoleID, []string{"id", "volunteer_id", "vol_id"}},
		{models.RoleLatitude, []string{"lat", "latitude", "y"}},
		{models.RoleLongitude, []string{"lng", "lon", "long", "longitude", "x"}},
		{models.RoleName, []string{"name", "volunteer_name", "vol_name", "full_name"}},
		{models.RoleBooks, []string{"books", "book_count", "books_distributed"}},
	},
	models.KindSchools: {
		{models.RoleID, []string{"id", "school_id"}},
		{models.RoleLatitude, []string{"lat", "latitude", "y"}},
		{models.RoleLongitude, []string{"lng", "lon", "long", "longitude", "x"}},
		{models.RoleName, []string{"name", "school_name", "school"}},
		{models.RoleStudents, []string{"students", "student_count", "num_students"}},
	},
}

// Columns maps each role of kind to the first candidate name found among
// columns, compared case-insensitively. Roles without a match are left out.
// When two headers differ only by case, the later one wins.
func Columns(columns []string, kind models.Kind) models.Mapping {
	lower := make(map[string]string, len(columns))
	for _, col := range columns {
		lower[strings.ToLower(col)] = col
	}

	mapping := make(models.Mapping)
	for _, c := range patterns[kind] {
		for _, name := range c.names {
			if col, ok := lower[name]; ok {
				mapping[c.role] = col
				break
			}
		}
	}

	return mapping
}
