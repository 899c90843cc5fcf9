package models

import "fmt"

// Kind identifies one of the datasets read from a workbook.
type Kind string

const (
	KindBooks      Kind = "books"
	KindVolunteers Kind = "volunteers"
	KindSchools    Kind = "schools"
)

// Kinds lists dataset kinds in the order they are loaded.
var Kinds = []Kind{KindBooks, KindVolunteers, KindSchools}

// ParseKind converts a configuration key into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}

	return "", fmt.Errorf("unknown dataset kind: %q", s)
}

// Role is a semantic field that has to be mapped to a source column.
type Role string

const (
	RoleLatitude  Role = "lat"
	RoleLongitude Role = "lng"
	RoleCount     Role = "count"
	RoleID        Role = "id"
	RoleName      Role = "name"
	RoleBooks     Role = "books"
	RoleStudents  Role = "students"
)

var kindRoles = map[Kind][]Role{
	KindBooks:      {RoleLatitude, RoleLongitude, RoleCount},
	KindVolunteers: {RoleID, RoleLatitude, RoleLongitude, RoleName, RoleBooks},
	KindSchools:    {RoleID, RoleLatitude, RoleLongitude, RoleName, RoleStudents},
}

// Roles returns the roles records of this kind are built from, in output order.
func (k Kind) Roles() []Role {
	return kindRoles[k]
}

// HasRole reports whether role belongs to the kind.
func (k Kind) HasRole(role Role) bool {
	for _, r := range kindRoles[k] {
		if r == role {
			return true
		}
	}

	return false
}

// Mapping associates roles with actual column names. It may be partial.
type Mapping map[Role]string

// Column returns the column mapped to role, or the role name itself when the
// mapping has no entry for it.
func (m Mapping) Column(role Role) string {
	if col, ok := m[role]; ok && col != "" {
		return col
	}

	return string(role)
}
