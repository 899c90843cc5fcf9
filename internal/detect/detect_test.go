package detect_test

import (
	"testing"

	"github.com/UnknownOlympus/sheetmap/internal/detect"
	"github.com/UnknownOlympus/sheetmap/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestColumns(t *testing.T) {
	t.Parallel()

	t.Run("books with aliases", func(t *testing.T) {
		t.Parallel()
		mapping := detect.Columns([]string{"Latitude", "Longitude", "Quantity"}, models.KindBooks)

		assert.Equal(t, models.Mapping{
			models.RoleLatitude:  "Latitude",
			models.RoleLongitude: "Longitude",
			models.RoleCount:     "Quantity",
		}, mapping)
	})

	t.Run("higher priority alias wins regardless of column order", func(t *testing.T) {
		t.Parallel()
		mapping := detect.Columns([]string{"y", "coord_y", "latitude", "LAT", "x", "lng"}, models.KindBooks)

		assert.Equal(t, "LAT", mapping[models.RoleLatitude])
		assert.Equal(t, "lng", mapping[models.RoleLongitude])
	})

	t.Run("unmatched roles are absent", func(t *testing.T) {
		t.Parallel()
		mapping := detect.Columns([]string{"lat", "comment"}, models.KindBooks)

		assert.Len(t, mapping, 1)
		assert.NotContains(t, mapping, models.RoleLongitude)
		assert.NotContains(t, mapping, models.RoleCount)
	})

	t.Run("volunteers", func(t *testing.T) {
		t.Parallel()
		mapping := detect.Columns(
			[]string{"Vol_ID", "Full_Name", "lat", "lon", "Books_Distributed"},
			models.KindVolunteers,
		)

		assert.Equal(t, models.Mapping{
			models.RoleID:        "Vol_ID",
			models.RoleLatitude:  "lat",
			models.RoleLongitude: "lon",
			models.RoleName:      "Full_Name",
			models.RoleBooks:     "Books_Distributed",
		}, mapping)
	})

	t.Run("volunteers do not use coord aliases", func(t *testing.T) {
		t.Parallel()
		mapping := detect.Columns([]string{"coord_y", "coord_x"}, models.KindVolunteers)

		assert.Empty(t, mapping)
	})

	t.Run("schools", func(t *testing.T) {
		t.Parallel()
		mapping := detect.Columns(
			[]string{"School", "School_ID", "Y", "X", "Num_Students"},
			models.KindSchools,
		)

		assert.Equal(t, models.Mapping{
			models.RoleID:        "School_ID",
			models.RoleLatitude:  "Y",
			models.RoleLongitude: "X",
			models.RoleName:      "School",
			models.RoleStudents:  "Num_Students",
		}, mapping)
	})

	t.Run("case collision keeps the later header", func(t *testing.T) {
		t.Parallel()
		mapping := detect.Columns([]string{"Lat", "LAT"}, models.KindBooks)

		assert.Equal(t, "LAT", mapping[models.RoleLatitude])
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, detect.Columns([]string{"lat"}, models.Kind("trees")))
	})
}

func TestPatternsCoverEveryRole(t *testing.T) {
	t.Parallel()

	for _, kind := range models.Kinds {
		var columns []string
		for _, role := range kind.Roles() {
			columns = append(columns, string(role))
		}

		mapping := detect.Columns(columns, kind)

		assert.Len(t, mapping, len(kind.Roles()), "kind %s", kind)
		for _, role := range kind.Roles() {
			assert.Equal(t, string(role), mapping[role], "kind %s role %s", kind, role)
		}
	}
}
