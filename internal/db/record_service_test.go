package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menkalian/worklock/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "worklock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func clock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func TestAppendAssignsIncreasingIDs(t *testing.T) {
	store := openTestStore(t)

	first, err := store.Append(models.KindStart)
	require.NoError(t, err)
	second, err := store.Append(models.KindEnd)
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, models.KindStart, first.Kind)
	assert.False(t, first.Manual())
}

func TestRecordsForDayScopesAndSorts(t *testing.T) {
	store := openTestStore(t)
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)

	_, err := store.AppendAt(models.KindEnd, clock(day, 17, 0))
	require.NoError(t, err)
	_, err = store.AppendAt(models.KindStart, clock(day, 8, 0))
	require.NoError(t, err)
	// Day before, must not leak in.
	_, err = store.AppendAt(models.KindStart, clock(day.AddDate(0, 0, -1), 9, 0))
	require.NoError(t, err)

	records, err := store.RecordsForDay(day, false, false)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.KindStart, records[0].Kind)
	assert.Equal(t, models.KindEnd, records[1].Kind)
}

func TestInsertCorrectionSupersedesOriginal(t *testing.T) {
	store := openTestStore(t)
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)

	original, err := store.AppendAt(models.KindEnd, clock(day, 17, 0))
	require.NoError(t, err)

	correction, err := store.InsertCorrection(original.ID, clock(day, 17, 30))
	require.NoError(t, err)
	assert.Equal(t, models.KindEnd, correction.Kind)
	require.NotNil(t, correction.CorrectionOf)
	assert.Equal(t, original.ID, *correction.CorrectionOf)
	assert.True(t, correction.Manual())

	records, err := store.RecordsForDay(day, false, false)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, correction.ID, records[0].ID)

	// Detailed view keeps the superseded original.
	detailed, err := store.RecordsForDay(day, true, true)
	require.NoError(t, err)
	assert.Len(t, detailed, 2)
}

func TestInsertCorrectionUnknownRecord(t *testing.T) {
	store := openTestStore(t)

	_, err := store.InsertCorrection(42, time.Now())
	assert.Error(t, err)
}

func TestSoftDelete(t *testing.T) {
	store := openTestStore(t)
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)

	record, err := store.AppendAt(models.KindStart, clock(day, 8, 0))
	require.NoError(t, err)

	ok, err := store.SoftDelete(record.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	records, err := store.RecordsForDay(day, false, false)
	require.NoError(t, err)
	assert.Empty(t, records)

	deleted, err := store.RecordsForDay(day, false, true)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.True(t, deleted[0].Deleted)

	ok, err = store.SoftDelete(9999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastStartOrEndIgnoresSupersededAndDeleted(t *testing.T) {
	store := openTestStore(t)
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)

	_, err := store.AppendAt(models.KindStart, clock(day, 8, 0))
	require.NoError(t, err)
	end, err := store.AppendAt(models.KindEnd, clock(day, 17, 0))
	require.NoError(t, err)
	// Pause records never show up here.
	_, err = store.AppendAt(models.KindPause, clock(day, 18, 0))
	require.NoError(t, err)

	last, err := store.LastStartOrEnd()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, end.ID, last.ID)

	_, err = store.SoftDelete(end.ID)
	require.NoError(t, err)

	last, err = store.LastStartOrEnd()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, models.KindStart, last.Kind)
}

func TestLastPauseOrUnpauseEmptyStore(t *testing.T) {
	store := openTestStore(t)

	last, err := store.LastPauseOrUnpause()
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestAdjacentRecords(t *testing.T) {
	store := openTestStore(t)
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)

	start, err := store.AppendAt(models.KindStart, clock(day, 8, 0))
	require.NoError(t, err)
	pause, err := store.AppendAt(models.KindPause, clock(day, 12, 0))
	require.NoError(t, err)
	end, err := store.AppendAt(models.KindEnd, clock(day, 17, 0))
	require.NoError(t, err)

	prev, err := store.PreviousRecord(*pause)
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, start.ID, prev.ID)

	next, err := store.NextRecord(*pause)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, end.ID, next.ID)

	first, err := store.PreviousRecord(*start)
	require.NoError(t, err)
	assert.Nil(t, first)

	last, err := store.NextRecord(*end)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestRecordsForMonth(t *testing.T) {
	store := openTestStore(t)

	_, err := store.AppendAt(models.KindStart, time.Date(2026, 3, 12, 8, 0, 0, 0, time.Local))
	require.NoError(t, err)
	_, err = store.AppendAt(models.KindEnd, time.Date(2026, 3, 12, 17, 0, 0, 0, time.Local))
	require.NoError(t, err)
	_, err = store.AppendAt(models.KindStart, time.Date(2026, 4, 1, 8, 0, 0, 0, time.Local))
	require.NoError(t, err)

	records, err := store.RecordsForMonth(2026, time.March, false, false)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestCleanupKeepsRecentRecords(t *testing.T) {
	store := openTestStore(t)

	// Old, but still within the retained row count.
	_, err := store.AppendAt(models.KindStart, time.Now().AddDate(-6, 0, 0))
	require.NoError(t, err)
	_, err = store.Append(models.KindEnd)
	require.NoError(t, err)

	removed, err := store.Cleanup()
	require.NoError(t, err)
	assert.Zero(t, removed)
}
