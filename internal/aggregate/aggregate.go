// Package aggregate folds a day's clock records into worked and paused
// minutes. All arithmetic happens on seconds-of-day, so a period that was
// left open over midnight is measured from 00:00 of the queried day rather
// than across calendar days.
package aggregate

import (
	"sort"
	"time"

	"github.com/menkalian/worklock/internal/models"
)

// EndOfDay is the default cutoff for closing an unterminated interval,
// the last second of the day (23:59:59).
const EndOfDay = 24*60*60 - 1

// role describes how a record kind participates in one of the two folds.
type role int

const (
	roleIgnore role = iota
	roleOpen
	roleClose
)

// WorkMinutes computes the total worked minutes for one day's records.
// Start and Unpause open a work interval, End and Pause close one. The
// returned flag is true when the records do not alternate correctly;
// the minute total is still a best effort in that case.
func WorkMinutes(records []models.Record, cutoff int) (bool, int) {
	return fold(records, cutoff, workRole)
}

// PauseMinutes computes the total paused minutes for one day's records.
// Pause opens an interval, Unpause closes one, Start and End are ignored.
func PauseMinutes(records []models.Record, cutoff int) (bool, int) {
	return fold(records, cutoff, pauseRole)
}

func workRole(k models.RecordKind) role {
	switch k {
	case models.KindStart, models.KindUnpause:
		return roleOpen
	case models.KindEnd, models.KindPause:
		return roleClose
	}
	return roleIgnore
}

func pauseRole(k models.RecordKind) role {
	switch k {
	case models.KindPause:
		return roleOpen
	case models.KindUnpause:
		return roleClose
	}
	return roleIgnore
}

// fold scans the visible records chronologically and accumulates the
// elapsed seconds of every open/close interval. A closing-type first
// record seeds an interval open since midnight (a period that started on
// a previous day), which is not an error. An unterminated trailing
// interval runs up to cutoff and is not an error either.
func fold(records []models.Record, cutoff int, roleOf func(models.RecordKind) role) (bool, int) {
	live := Visible(records)
	sort.Slice(live, func(i, j int) bool {
		return live[i].RecordedAt.Before(live[j].RecordedAt)
	})

	hasError := false
	accumulated := 0
	openPoint := -1 // second-of-day the current interval opened at, -1 when closed
	if len(live) > 0 && roleOf(live[0].Kind) == roleClose {
		openPoint = 0
	}

	for _, rec := range live {
		at := SecondOfDay(rec.RecordedAt)
		switch roleOf(rec.Kind) {
		case roleOpen:
			if openPoint >= 0 {
				// Double open. Count the gap anyway so the estimate
				// stays useful.
				hasError = true
				accumulated += absDiff(openPoint, at)
			}
			openPoint = at
		case roleClose:
			if openPoint < 0 {
				// Close without open, nothing to measure from.
				hasError = true
			} else {
				accumulated += absDiff(openPoint, at)
				openPoint = -1
			}
		}
	}

	if openPoint >= 0 {
		// Missing endpoint is not an error, tracking is simply ongoing.
		accumulated += absDiff(openPoint, cutoff)
	}

	return hasError, accumulated / 60
}

// Visible filters out deleted records and records superseded by another
// record's correction pointer. The superseded check runs against the full
// input set, so even a deleted correction hides its target.
func Visible(records []models.Record) []models.Record {
	superseded := make(map[uint]bool)
	for _, r := range records {
		if r.CorrectionOf != nil {
			superseded[*r.CorrectionOf] = true
		}
	}

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.Deleted || superseded[r.ID] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SecondOfDay returns t's clock time as seconds since midnight.
func SecondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
