// Package session owns the live tracking state machine. All mutating
// operations funnel through a Tracker, which validates them, delegates
// persistence to the record store and keeps derived state (started,
// paused, today's totals) in sync with the stored records.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/menkalian/worklock/internal/aggregate"
	"github.com/menkalian/worklock/internal/models"
)

// Rejection reasons for manual period inserts.
var (
	ErrCrossDayPeriod  = errors.New("manual period must start and end on the same day")
	ErrDayHasError     = errors.New("day already contains sequence errors")
	ErrWouldCauseError = errors.New("period would introduce a sequence error")
)

// RecordStore is the persistence collaborator of the tracker.
type RecordStore interface {
	Append(kind models.RecordKind) (*models.Record, error)
	AddWorkPeriod(from, until time.Time) error
	AddPausePeriod(from, until time.Time) error
	InsertCorrection(originalID uint, correctedTime time.Time) (*models.Record, error)
	SoftDelete(id uint) (bool, error)
	RecordsForDay(day time.Time, includeCorrected, includeDeleted bool) ([]models.Record, error)
	LastStartOrEnd() (*models.Record, error)
	LastPauseOrUnpause() (*models.Record, error)
	PreviousRecord(record models.Record) (*models.Record, error)
	NextRecord(record models.Record) (*models.Record, error)
}

// Options tunes tracker behavior. The zero value gives validated manual
// edits and the default refresh timing.
type Options struct {
	// AllowUncheckedEdits skips the sequence-error validation on manual
	// period inserts. Deliberate escape hatch, off by default.
	AllowUncheckedEdits bool
	// InitialDelay before the first background recomputation after a
	// mutation, coalescing bursts of rapid changes.
	InitialDelay time.Duration
	// Interval between subsequent background recomputations.
	Interval time.Duration
}

const (
	defaultInitialDelay = 500 * time.Millisecond
	defaultInterval     = 30 * time.Second
)

// Tracker is the session state machine. Mutations are serialized through
// its mutex; reads take a consistent snapshot of the derived state.
type Tracker struct {
	store        RecordStore
	validate     bool
	initialDelay time.Duration
	interval     time.Duration

	mu          sync.Mutex
	started     bool
	paused      bool
	lastInsert  *models.Record
	dayMinutes  int
	dayHasError bool
	cancel      context.CancelFunc
}

// New builds a tracker and derives its initial state from the record store.
func New(store RecordStore, opts Options) (*Tracker, error) {
	t := &Tracker{
		store:        store,
		validate:     !opts.AllowUncheckedEdits,
		initialDelay: opts.InitialDelay,
		interval:     opts.Interval,
	}
	if t.initialDelay <= 0 {
		t.initialDelay = defaultInitialDelay
	}
	if t.interval <= 0 {
		t.interval = defaultInterval
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.resetLocked(); err != nil {
		return nil, err
	}
	return t, nil
}

// Start begins tracking. Calling it while already started is a no-op.
func (t *Tracker) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		record, err := t.store.Append(models.KindStart)
		if err != nil {
			return fmt.Errorf("failed to record start: %w", err)
		}
		t.lastInsert = record
		t.started = true
		t.paused = false
	}
	t.restartRefreshLocked()
	return nil
}

// End stops tracking, closing an open pause first. No-op when idle.
func (t *Tracker) End() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return nil
	}
	if t.paused {
		if _, err := t.store.Append(models.KindUnpause); err != nil {
			return fmt.Errorf("failed to close open pause: %w", err)
		}
		t.paused = false
	}
	record, err := t.store.Append(models.KindEnd)
	if err != nil {
		return fmt.Errorf("failed to record end: %w", err)
	}
	t.lastInsert = record
	t.started = false
	t.restartRefreshLocked()
	return nil
}

// TogglePause flips between Working and Paused. No-op when idle.
func (t *Tracker) TogglePause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return nil
	}
	kind := models.KindPause
	if t.paused {
		kind = models.KindUnpause
	}
	record, err := t.store.Append(kind)
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", kind, err)
	}
	t.lastInsert = record
	t.paused = !t.paused
	t.restartRefreshLocked()
	return nil
}

// Undo removes the most recent record created by this session, if any, and
// rebuilds the tracking state from the store.
func (t *Tracker) Undo() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.lastInsert != nil {
		if _, err := t.store.SoftDelete(t.lastInsert.ID); err != nil {
			return fmt.Errorf("failed to undo record #%d: %w", t.lastInsert.ID, err)
		}
		t.lastInsert = nil
	}
	return t.resetLocked()
}

// AddManualWorkPeriod inserts a backdated Start/End pair. Unless validation
// is disabled the pair is rejected when it spans days, when the day already
// has sequence errors, or when inserting it would cause one.
func (t *Tracker) AddManualWorkPeriod(from, until time.Time) error {
	return t.addManualPeriod(from, until, models.KindStart, models.KindEnd)
}

// AddManualPause inserts a backdated Pause/Unpause pair under the same
// rules as AddManualWorkPeriod.
func (t *Tracker) AddManualPause(from, until time.Time) error {
	return t.addManualPeriod(from, until, models.KindPause, models.KindUnpause)
}

func (t *Tracker) addManualPeriod(from, until time.Time, openKind, closeKind models.RecordKind) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.validate {
		if !sameDay(from, until) {
			return ErrCrossDayPeriod
		}
		records, err := t.store.RecordsForDay(from, false, false)
		if err != nil {
			return fmt.Errorf("failed to load day records: %w", err)
		}
		if hasError, _ := aggregate.WorkMinutes(records, aggregate.EndOfDay); hasError {
			return ErrDayHasError
		}

		// Throwaway records just for checking the resulting sequence.
		candidate := make([]models.Record, 0, len(records)+2)
		candidate = append(candidate, records...)
		candidate = append(candidate,
			models.Record{RecordedAt: from, Kind: openKind},
			models.Record{RecordedAt: until, Kind: closeKind},
		)
		if hasError, _ := aggregate.WorkMinutes(candidate, aggregate.EndOfDay); hasError {
			return ErrWouldCauseError
		}
	}

	var err error
	if openKind == models.KindStart {
		err = t.store.AddWorkPeriod(from, until)
	} else {
		err = t.store.AddPausePeriod(from, until)
	}
	if err != nil {
		return fmt.Errorf("failed to insert manual period: %w", err)
	}

	t.lastInsert = nil // undoing half of a pair would corrupt the sequence
	t.restartRefreshLocked()
	return nil
}

// UpdateRecordTime moves a record to a new time by inserting a correction
// record that supersedes the original. No sequence validation happens here,
// unlike the manual period inserts.
func (t *Tracker) UpdateRecordTime(id uint, correctedTime time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.store.InsertCorrection(id, correctedTime); err != nil {
		return err
	}
	t.lastInsert = nil
	t.restartRefreshLocked()
	return nil
}

// DeleteRecord flags the record as deleted.
func (t *Tracker) DeleteRecord(id uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.store.SoftDelete(id); err != nil {
		return err
	}
	t.restartRefreshLocked()
	return nil
}

// RecordsForDay returns one day's records. The detailed view includes
// superseded and deleted records for audit purposes.
func (t *Tracker) RecordsForDay(day time.Time, detailed bool) ([]models.Record, error) {
	return t.store.RecordsForDay(day, detailed, detailed)
}

// AllowedEditRange returns the window the record's timestamp may be moved
// within without passing an adjacent record: from the previous live record
// (or the epoch) to the next live record (or the record's own day end).
func (t *Tracker) AllowedEditRange(record models.Record) (time.Time, time.Time, error) {
	lower := time.Unix(0, 0)
	prev, err := t.store.PreviousRecord(record)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if prev != nil {
		lower = prev.RecordedAt
	}

	upper := endOfDayFor(record.RecordedAt)
	next, err := t.store.NextRecord(record)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if next != nil {
		upper = next.RecordedAt
	}

	return lower, upper, nil
}

// AllowedManualPeriodEnd returns the latest admissible end for a manual
// period starting at start: the next record of that day, or the day end.
func (t *Tracker) AllowedManualPeriodEnd(start time.Time) (time.Time, error) {
	records, err := t.store.RecordsForDay(start, false, false)
	if err != nil {
		return time.Time{}, err
	}
	for _, record := range records {
		if record.RecordedAt.After(start) {
			return record.RecordedAt, nil
		}
	}
	return endOfDayFor(start), nil
}

// IsStarted reports whether tracking is running.
func (t *Tracker) IsStarted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

// IsPaused reports whether tracking is paused.
func (t *Tracker) IsPaused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// AllowUndo reports whether an undo target is tracked.
func (t *Tracker) AllowUndo() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastInsert != nil
}

// CurrentDayMinutes returns today's worked minutes as of the last
// background recomputation.
func (t *Tracker) CurrentDayMinutes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dayMinutes
}

// CurrentDayHasError reports whether today's records contain a sequence
// inconsistency as of the last background recomputation.
func (t *Tracker) CurrentDayHasError() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dayHasError
}

// Close cancels the background refresh.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// resetLocked rebuilds started/paused from the most recent live records.
func (t *Tracker) resetLocked() error {
	lastMark, err := t.store.LastStartOrEnd()
	if err != nil {
		return fmt.Errorf("failed to derive tracking state: %w", err)
	}
	t.started = lastMark != nil && lastMark.Kind == models.KindStart

	t.paused = false
	if t.started {
		lastPause, err := t.store.LastPauseOrUnpause()
		if err != nil {
			return fmt.Errorf("failed to derive pause state: %w", err)
		}
		t.paused = lastPause != nil && lastPause.Kind == models.KindPause
	}

	t.restartRefreshLocked()
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// endOfDayFor returns 23:59:59 on the same day as t.
func endOfDayFor(t time.Time) time.Time {
	return t.Add(time.Duration(aggregate.EndOfDay-aggregate.SecondOfDay(t)) * time.Second)
}
