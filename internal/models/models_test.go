package models_test

import (
	"testing"

	"github.com/UnknownOlympus/sheetmap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	kind, err := models.ParseKind("volunteers")
	require.NoError(t, err)
	assert.Equal(t, models.KindVolunteers, kind)

	_, err = models.ParseKind("Volunteers")
	require.ErrorContains(t, err, `unknown dataset kind: "Volunteers"`)
}

func TestKindRoles(t *testing.T) {
	assert.Equal(t,
		[]models.Role{models.RoleLatitude, models.RoleLongitude, models.RoleCount},
		models.KindBooks.Roles())
	assert.True(t, models.KindSchools.HasRole(models.RoleStudents))
	assert.False(t, models.KindSchools.HasRole(models.RoleBooks))
	assert.False(t, models.Kind("trees").HasRole(models.RoleID))
	assert.Empty(t, models.Kind("trees").Roles())
}

func TestMappingColumn(t *testing.T) {
	mapping := models.Mapping{models.RoleLatitude: "Latitude", models.RoleLongitude: ""}

	assert.Equal(t, "Latitude", mapping.Column(models.RoleLatitude))
	assert.Equal(t, "lng", mapping.Column(models.RoleLongitude))
	assert.Equal(t, "count", mapping.Column(models.RoleCount))
	assert.Equal(t, "id", models.Mapping(nil).Column(models.RoleID))
}

func TestTable(t *testing.T) {
	table := &models.Table{Columns: []string{"lat", "Lat"}}

	assert.Equal(t, 0, table.ColumnIndex("lat"))
	assert.Equal(t, 1, table.ColumnIndex("Lat"))
	assert.Equal(t, -1, table.ColumnIndex("LAT"))
	assert.Equal(t, "x", table.Cell([]string{"x"}, 0))
	assert.Empty(t, table.Cell([]string{"x"}, 1))
	assert.Empty(t, table.Cell([]string{"x"}, -1))
}

func TestNewDataset(t *testing.T) {
	data := models.NewDataset()

	assert.NotNil(t, data.BookData)
	assert.NotNil(t, data.Volunteers)
	assert.NotNil(t, data.Schools)
}
