package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menkalian/worklock/internal/models"
)

var nextID uint

func rec(kind models.RecordKind, clock string) models.Record {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		panic(err)
	}
	nextID++
	return models.Record{
		ID:         nextID,
		Kind:       kind,
		RecordedAt: time.Date(2026, 3, 12, t.Hour(), t.Minute(), 0, 0, time.Local),
	}
}

func at(clock string) int {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		panic(err)
	}
	return t.Hour()*3600 + t.Minute()*60
}

func TestWorkMinutesEmptyDay(t *testing.T) {
	hasError, minutes := WorkMinutes(nil, EndOfDay)
	assert.False(t, hasError)
	assert.Equal(t, 0, minutes)
}

func TestWorkMinutesWellFormedDay(t *testing.T) {
	records := []models.Record{
		rec(models.KindStart, "08:00"),
		rec(models.KindEnd, "12:00"),
		rec(models.KindStart, "13:00"),
		rec(models.KindEnd, "17:00"),
	}

	hasError, minutes := WorkMinutes(records, EndOfDay)
	assert.False(t, hasError)
	assert.Equal(t, 480, minutes)
}

func TestWorkMinutesUnsortedInput(t *testing.T) {
	records := []models.Record{
		rec(models.KindEnd, "17:00"),
		rec(models.KindStart, "08:00"),
		rec(models.KindStart, "13:00"),
		rec(models.KindEnd, "12:00"),
	}

	hasError, minutes := WorkMinutes(records, EndOfDay)
	assert.False(t, hasError)
	assert.Equal(t, 480, minutes)
}

func TestWorkMinutesEndFirstSeedsMidnight(t *testing.T) {
	// A period left open over midnight closes at 08:00 without an error.
	records := []models.Record{rec(models.KindEnd, "08:00")}

	hasError, minutes := WorkMinutes(records, EndOfDay)
	assert.False(t, hasError)
	assert.Equal(t, 480, minutes)
}

func TestWorkMinutesPauseFirstSeedsMidnight(t *testing.T) {
	records := []models.Record{
		rec(models.KindPause, "01:00"),
		rec(models.KindUnpause, "02:00"),
		rec(models.KindEnd, "03:00"),
	}

	hasError, minutes := WorkMinutes(records, EndOfDay)
	assert.False(t, hasError)
	assert.Equal(t, 120, minutes)
}

func TestWorkMinutesDoubleStart(t *testing.T) {
	// The erroneous gap still counts, and the second start keeps
	// accruing until the cutoff.
	records := []models.Record{
		rec(models.KindStart, "08:00"),
		rec(models.KindStart, "09:00"),
	}

	hasError, minutes := WorkMinutes(records, at("10:00"))
	assert.True(t, hasError)
	assert.Equal(t, 120, minutes)
}

func TestWorkMinutesDanglingEnd(t *testing.T) {
	records := []models.Record{
		rec(models.KindStart, "08:00"),
		rec(models.KindEnd, "09:00"),
		rec(models.KindEnd, "10:00"),
	}

	hasError, minutes := WorkMinutes(records, EndOfDay)
	assert.True(t, hasError)
	assert.Equal(t, 60, minutes)
}

func TestWorkMinutesTrailingStartRunsToCutoff(t *testing.T) {
	records := []models.Record{rec(models.KindStart, "08:00")}

	hasError, minutes := WorkMinutes(records, at("09:30"))
	assert.False(t, hasError)
	assert.Equal(t, 90, minutes)
}

func TestWorkMinutesSkipsDeletedAndSuperseded(t *testing.T) {
	start := rec(models.KindStart, "08:00")
	end := rec(models.KindEnd, "12:00")
	bogus := rec(models.KindEnd, "09:00")
	bogus.Deleted = true
	// Correction moves the end from 12:00 to 13:00.
	correction := rec(models.KindEnd, "13:00")
	correction.CorrectionOf = &end.ID

	hasError, minutes := WorkMinutes([]models.Record{start, end, bogus, correction}, EndOfDay)
	assert.False(t, hasError)
	assert.Equal(t, 300, minutes)
}

func TestWorkMinutesDeletedCorrectionStillSupersedes(t *testing.T) {
	start := rec(models.KindStart, "08:00")
	end := rec(models.KindEnd, "12:00")
	correction := rec(models.KindEnd, "13:00")
	correction.CorrectionOf = &end.ID
	correction.Deleted = true

	// Both the correction and its target drop out, leaving the start open.
	hasError, minutes := WorkMinutes([]models.Record{start, end, correction}, at("14:00"))
	assert.False(t, hasError)
	assert.Equal(t, 360, minutes)
}

func TestPauseMinutesSimplePause(t *testing.T) {
	records := []models.Record{
		rec(models.KindStart, "08:00"),
		rec(models.KindPause, "12:00"),
		rec(models.KindUnpause, "12:45"),
		rec(models.KindEnd, "17:00"),
	}

	hasError, minutes := PauseMinutes(records, EndOfDay)
	assert.False(t, hasError)
	assert.Equal(t, 45, minutes)
}

func TestPauseMinutesUnpauseFirstSeedsMidnight(t *testing.T) {
	records := []models.Record{
		rec(models.KindUnpause, "00:30"),
		rec(models.KindEnd, "08:00"),
	}

	hasError, minutes := PauseMinutes(records, EndOfDay)
	assert.False(t, hasError)
	assert.Equal(t, 30, minutes)
}

func TestPauseMinutesTrailingPauseRunsToCutoff(t *testing.T) {
	records := []models.Record{
		rec(models.KindStart, "08:00"),
		rec(models.KindPause, "12:00"),
	}

	hasError, minutes := PauseMinutes(records, at("12:20"))
	assert.False(t, hasError)
	assert.Equal(t, 20, minutes)
}

func TestPauseMinutesDoublePause(t *testing.T) {
	records := []models.Record{
		rec(models.KindPause, "12:00"),
		rec(models.KindPause, "12:30"),
		rec(models.KindUnpause, "13:00"),
	}

	hasError, minutes := PauseMinutes(records, EndOfDay)
	assert.True(t, hasError)
	assert.Equal(t, 60, minutes)
}

func TestVisibleKeepsOrderAndUntouchedRecords(t *testing.T) {
	start := rec(models.KindStart, "08:00")
	end := rec(models.KindEnd, "12:00")

	live := Visible([]models.Record{start, end})
	require.Len(t, live, 2)
	assert.Equal(t, start.ID, live[0].ID)
	assert.Equal(t, end.ID, live[1].ID)
}

func TestSecondOfDay(t *testing.T) {
	ts := time.Date(2026, 3, 12, 13, 45, 30, 0, time.Local)
	assert.Equal(t, 13*3600+45*60+30, SecondOfDay(ts))
}
