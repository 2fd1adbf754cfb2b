package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/menkalian/worklock/internal/models"
)

// notSuperseded excludes records that another record's correction points at.
const notSuperseded = "id NOT IN (SELECT correction_of FROM records WHERE correction_of IS NOT NULL)"

// Retention limits for Cleanup.
const (
	retainYears = 5
	retainCount = 10000
)

// Append creates a new record of the given kind at the current time.
func (s *Store) Append(kind models.RecordKind) (*models.Record, error) {
	now := time.Now()
	return s.appendRecord(kind, now, now)
}

// AppendAt creates a new record of the given kind at an explicit time.
func (s *Store) AppendAt(kind models.RecordKind, at time.Time) (*models.Record, error) {
	return s.appendRecord(kind, at, time.Now())
}

// appendRecord stamps the gorm timestamps itself so a live append ends up
// with identical created/updated/recorded times. Record.Manual depends on
// that equality.
func (s *Store) appendRecord(kind models.RecordKind, at, created time.Time) (*models.Record, error) {
	record := models.Record{
		CreatedAt:  created,
		UpdatedAt:  created,
		RecordedAt: at,
		Kind:       kind,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create %s record: %w", kind, err)
	}

	return &record, nil
}

// Record retrieves a record by id, including superseded and deleted ones.
func (s *Store) Record(id uint) (*models.Record, error) {
	var record models.Record
	if err := s.db.First(&record, id).Error; err != nil {
		return nil, fmt.Errorf("record #%d not found", id)
	}
	return &record, nil
}

// AddWorkPeriod inserts a Start/End pair at the given timestamps.
// Validation is the session layer's job, not the store's.
func (s *Store) AddWorkPeriod(from, until time.Time) error {
	if _, err := s.AppendAt(models.KindStart, from); err != nil {
		return err
	}
	_, err := s.AppendAt(models.KindEnd, until)
	return err
}

// AddPausePeriod inserts a Pause/Unpause pair at the given timestamps.
func (s *Store) AddPausePeriod(from, until time.Time) error {
	if _, err := s.AppendAt(models.KindPause, from); err != nil {
		return err
	}
	_, err := s.AppendAt(models.KindUnpause, until)
	return err
}

// InsertCorrection creates a new record that replaces the timestamp of an
// existing one. The new record keeps the original's kind and points back at
// it; the original stays in the database but is superseded from then on.
func (s *Store) InsertCorrection(originalID uint, correctedTime time.Time) (*models.Record, error) {
	var original models.Record
	if err := s.db.First(&original, originalID).Error; err != nil {
		return nil, fmt.Errorf("record #%d not found", originalID)
	}

	record := models.Record{
		RecordedAt:   correctedTime,
		Kind:         original.Kind,
		CorrectionOf: &original.ID,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create correction for record #%d: %w", originalID, err)
	}

	return &record, nil
}

// SoftDelete flags the record as deleted. The row itself is retained for
// detailed views. Returns false when no record with that id exists.
func (s *Store) SoftDelete(id uint) (bool, error) {
	result := s.db.Model(&models.Record{}).Where("id = ?", id).Update("deleted", true)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete record #%d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RecordsForDay returns the records of one calendar day ordered by time.
// Superseded originals and deleted records are only included when asked for.
func (s *Store) RecordsForDay(day time.Time, includeCorrected, includeDeleted bool) ([]models.Record, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.recordsBetween(start, start.AddDate(0, 0, 1), includeCorrected, includeDeleted)
}

// RecordsForMonth returns the records of one calendar month ordered by time.
func (s *Store) RecordsForMonth(year int, month time.Month, includeCorrected, includeDeleted bool) ([]models.Record, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return s.recordsBetween(start, start.AddDate(0, 1, 0), includeCorrected, includeDeleted)
}

func (s *Store) recordsBetween(from, until time.Time, includeCorrected, includeDeleted bool) ([]models.Record, error) {
	query := s.db.Where("recorded_at >= ? AND recorded_at < ?", from, until)
	if !includeDeleted {
		query = query.Where("deleted = ?", false)
	}
	if !includeCorrected {
		query = query.Where(notSuperseded)
	}

	var records []models.Record
	if err := query.Order("recorded_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	return records, nil
}

// LastStartOrEnd returns the most recent live Start or End record, or nil
// when none exists.
func (s *Store) LastStartOrEnd() (*models.Record, error) {
	return s.lastOfKinds(models.KindStart, models.KindEnd)
}

// LastPauseOrUnpause returns the most recent live Pause or Unpause record,
// or nil when none exists.
func (s *Store) LastPauseOrUnpause() (*models.Record, error) {
	return s.lastOfKinds(models.KindPause, models.KindUnpause)
}

func (s *Store) lastOfKinds(kinds ...models.RecordKind) (*models.Record, error) {
	var record models.Record
	err := s.db.
		Where("kind IN ?", kinds).
		Where("deleted = ?", false).
		Where(notSuperseded).
		Order("recorded_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No such record is not an error
		}
		return nil, fmt.Errorf("failed to query last record: %w", err)
	}

	return &record, nil
}

// PreviousRecord returns the live record recorded closest before the given
// one, or nil when it is the earliest.
func (s *Store) PreviousRecord(record models.Record) (*models.Record, error) {
	return s.adjacentRecord("recorded_at < ?", "recorded_at DESC", record)
}

// NextRecord returns the live record recorded closest after the given one,
// or nil when it is the latest.
func (s *Store) NextRecord(record models.Record) (*models.Record, error) {
	return s.adjacentRecord("recorded_at > ?", "recorded_at ASC", record)
}

func (s *Store) adjacentRecord(cond, order string, record models.Record) (*models.Record, error) {
	var adjacent models.Record
	err := s.db.
		Where(cond, record.RecordedAt).
		Where("deleted = ?", false).
		Where(notSuperseded).
		Order(order).
		First(&adjacent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query adjacent record: %w", err)
	}

	return &adjacent, nil
}

// Cleanup hard-deletes records older than five years while always keeping
// the newest 10000 rows. Returns the number of removed records.
func (s *Store) Cleanup() (int64, error) {
	cutoff := time.Now().AddDate(-retainYears, 0, 0)
	keep := s.db.Model(&models.Record{}).Select("id").Order("id DESC").Limit(retainCount)

	result := s.db.
		Where("recorded_at < ?", cutoff).
		Where("id NOT IN (?)", keep).
		Delete(&models.Record{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clean up records: %w", result.Error)
	}

	return result.RowsAffected, nil
}
