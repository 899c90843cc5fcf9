// Package summary computes the totals reported at the end of a run.
package summary

import (
	"github.com/UnknownOlympus/sheetmap/internal/models"
	"github.com/montanaflynn/stats"
)

// Summary holds record counts and book/student totals for a dataset.
type Summary struct {
	BookPoints        int
	Volunteers        int
	Schools           int
	TotalBooks        int
	MeanBooksPerPoint float64
	BooksByVolunteers int
	TotalStudents     int
}

// Of summarizes data. Empty collections contribute zeros.
func Of(data *models.Dataset) Summary {
	counts := make(stats.Float64Data, 0, len(data.BookData))
	for _, p := range data.BookData {
		counts = append(counts, float64(p.Count))
	}
	volunteerBooks := make(stats.Float64Data, 0, len(data.Volunteers))
	for _, v := range data.Volunteers {
		volunteerBooks = append(volunteerBooks, float64(v.Books))
	}
	students := make(stats.Float64Data, 0, len(data.Schools))
	for _, s := range data.Schools {
		students = append(students, float64(s.Students))
	}

	return Summary{
		BookPoints:        len(data.BookData),
		Volunteers:        len(data.Volunteers),
		Schools:           len(data.Schools),
		TotalBooks:        int(sum(counts)),
		MeanBooksPerPoint: mean(counts),
		BooksByVolunteers: int(sum(volunteerBooks)),
		TotalStudents:     int(sum(students)),
	}
}

// stats returns an error for empty input; a summary reports zero instead.
func sum(data stats.Float64Data) float64 {
	v, err := stats.Sum(data)
	if err != nil {
		return 0
	}
	return v
}

func mean(data stats.Float64Data) float64 {
	v, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	return v
}
