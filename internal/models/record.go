package models

import (
	"time"
)

// RecordKind identifies what a clock record marks.
type RecordKind string

const (
	KindStart   RecordKind = "start"
	KindEnd     RecordKind = "end"
	KindPause   RecordKind = "pause"
	KindUnpause RecordKind = "unpause"
)

// Record is a single timestamped clock event. Records are never updated in
// place: a time correction inserts a new record pointing at the one it
// replaces via CorrectionOf, and deletion only sets the Deleted flag.
type Record struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RecordedAt   time.Time  `gorm:"not null;index" json:"recorded_at"`
	Kind         RecordKind `gorm:"not null;index" json:"kind"`
	CorrectionOf *uint      `gorm:"index" json:"correction_of,omitempty"`
	Deleted      bool       `gorm:"default:false;index" json:"deleted"`
}

// Manual reports whether the record was entered or adjusted by hand rather
// than recorded live: its timestamp differs from its creation time, it was
// touched after creation, or it corrects another record.
func (r Record) Manual() bool {
	return !r.CreatedAt.Equal(r.UpdatedAt) ||
		!r.CreatedAt.Equal(r.RecordedAt) ||
		r.CorrectionOf != nil
}
