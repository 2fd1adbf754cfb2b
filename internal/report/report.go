// Package report turns stored records into day and month summaries for the
// CLI report commands. It only produces data; rendering happens downstream.
package report

import (
	"time"

	"github.com/menkalian/worklock/internal/aggregate"
	"github.com/menkalian/worklock/internal/models"
)

// RecordSource is the read side of the record store.
type RecordSource interface {
	RecordsForDay(day time.Time, includeCorrected, includeDeleted bool) ([]models.Record, error)
	RecordsForMonth(year int, month time.Month, includeCorrected, includeDeleted bool) ([]models.Record, error)
}

// DayTotals is the computed aggregate of one calendar day.
type DayTotals struct {
	Date         time.Time
	WorkMinutes  int
	PauseMinutes int
	HasError     bool
}

// RecordRow is one record prepared for a listing.
type RecordRow struct {
	ID       uint
	Time     time.Time
	Kind     models.RecordKind
	Manual   bool
	Corrects *uint
	Deleted  bool
}

// MonthSummary aggregates every day of one month that has records.
type MonthSummary struct {
	Year              int
	Month             time.Month
	Days              []DayTotals
	TotalWorkMinutes  int
	TotalPauseMinutes int
	HasError          bool
}

// Month computes the summary for one calendar month.
func Month(src RecordSource, year int, month time.Month) (*MonthSummary, error) {
	records, err := src.RecordsForMonth(year, month, false, false)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int][]models.Record)
	for _, record := range records {
		byDay[record.RecordedAt.Day()] = append(byDay[record.RecordedAt.Day()], record)
	}

	summary := &MonthSummary{Year: year, Month: month}
	daysInMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1).Day()
	for day := 1; day <= daysInMonth; day++ {
		dayRecords, ok := byDay[day]
		if !ok {
			continue
		}
		totals := totalsFor(dayRecords, time.Date(year, month, day, 0, 0, 0, 0, time.Local))
		summary.Days = append(summary.Days, totals)
		summary.TotalWorkMinutes += totals.WorkMinutes
		summary.TotalPauseMinutes += totals.PauseMinutes
		summary.HasError = summary.HasError || totals.HasError
	}

	return summary, nil
}

// Day prepares the record listing and the aggregate for one calendar day.
// The detailed listing includes superseded and deleted records; the totals
// always come from the live records only.
func Day(src RecordSource, day time.Time, detailed bool) ([]RecordRow, DayTotals, error) {
	records, err := src.RecordsForDay(day, detailed, detailed)
	if err != nil {
		return nil, DayTotals{}, err
	}

	rows := make([]RecordRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, RecordRow{
			ID:       record.ID,
			Time:     record.RecordedAt,
			Kind:     record.Kind,
			Manual:   record.Manual(),
			Corrects: record.CorrectionOf,
			Deleted:  record.Deleted,
		})
	}

	live := records
	if detailed {
		live, err = src.RecordsForDay(day, false, false)
		if err != nil {
			return nil, DayTotals{}, err
		}
	}

	return rows, totalsFor(live, day), nil
}

func totalsFor(records []models.Record, day time.Time) DayTotals {
	workErr, work := aggregate.WorkMinutes(records, aggregate.EndOfDay)
	pauseErr, pause := aggregate.PauseMinutes(records, aggregate.EndOfDay)
	return DayTotals{
		Date:         time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
		WorkMinutes:  work,
		PauseMinutes: pause,
		HasError:     workErr || pauseErr,
	}
}
