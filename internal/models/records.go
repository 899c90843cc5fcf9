package models

// BookPoint represents a geographic point with the number of books distributed there.
type BookPoint struct {
	Latitude  float64 `json:"lat"`   // Latitude of the point.
	Longitude float64 `json:"lng"`   // Longitude of the point.
	Count     int     `json:"count"` // Count is the number of books.
}

// Volunteer represents a volunteer placed on the map.
type Volunteer struct {
	ID        int     `json:"id"`    // ID defaults to the 1-based row position when the sheet has no id column.
	Latitude  float64 `json:"lat"`   // Latitude of the volunteer location.
	Longitude float64 `json:"lng"`   // Longitude of the volunteer location.
	Name      string  `json:"name"`  // Name of the volunteer.
	Books     int     `json:"books"` // Books is the number of books handed out by the volunteer.
}

// School represents a school placed on the map.
type School struct {
	ID        int     `json:"id"`       // ID defaults to the 1-based row position when the sheet has no id column.
	Latitude  float64 `json:"lat"`      // Latitude of the school.
	Longitude float64 `json:"lng"`      // Longitude of the school.
	Name      string  `json:"name"`     // Name of the school.
	Students  int     `json:"students"` // Students is the number of enrolled students.
}

// Dataset aggregates the three record collections produced from a workbook.
type Dataset struct {
	BookData   []BookPoint `json:"bookData"`
	Volunteers []Volunteer `json:"volunteers"`
	Schools    []School    `json:"schools"`
}

// NewDataset returns a Dataset whose collections are empty but not nil,
// so they serialize as [] rather than null.
func NewDataset() *Dataset {
	return &Dataset{
		BookData:   []BookPoint{},
		Volunteers: []Volunteer{},
		Schools:    []School{},
	}
}
