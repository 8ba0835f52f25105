package scheduler

import (
	"testing"

	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityCreate(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()

	a, err := env.avail.Create(AvailabilityCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("08:00"),
		EndTime:   tod("16:00"),
		Note:      "prefer mornings",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, a.UserID)
	assert.Equal(t, "2024-06-15", a.Date)
	assert.Equal(t, "prefer mornings", a.Note)
	assert.NotEqual(t, uuid.Nil, a.ID)
}

func TestAvailabilityCreateInvertedRange(t *testing.T) {
	env := newTestEnv()

	_, err := env.avail.Create(AvailabilityCreate{
		UserID:    uuid.New(),
		Date:      "2024-06-15",
		StartTime: tod("16:00"),
		EndTime:   tod("08:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidRange)
}

func TestAvailabilityCreateBadDate(t *testing.T) {
	env := newTestEnv()

	_, err := env.avail.Create(AvailabilityCreate{
		UserID:    uuid.New(),
		Date:      "15/06/2024",
		StartTime: tod("08:00"),
		EndTime:   tod("16:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidRange)
}

func TestAvailabilityCreatePastDate(t *testing.T) {
	env := newTestEnv() // clock frozen at 2024-06-10

	_, err := env.avail.Create(AvailabilityCreate{
		UserID:    uuid.New(),
		Date:      "2024-06-09",
		StartTime: tod("08:00"),
		EndTime:   tod("16:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidRange)

	// Today itself is allowed.
	_, err = env.avail.Create(AvailabilityCreate{
		UserID:    uuid.New(),
		Date:      "2024-06-10",
		StartTime: tod("08:00"),
		EndTime:   tod("16:00"),
	})
	assert.NoError(t, err)
}

func TestAvailabilityCreateOverlapRejected(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()

	_, err := env.avail.Create(AvailabilityCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("08:00"),
		EndTime:   tod("12:00"),
	})
	require.NoError(t, err)

	_, err = env.avail.Create(AvailabilityCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("11:00"),
		EndTime:   tod("14:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidAvailability)

	// Touching windows do not overlap.
	_, err = env.avail.Create(AvailabilityCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("12:00"),
		EndTime:   tod("14:00"),
	})
	assert.NoError(t, err)

	// A different worker is unaffected.
	_, err = env.avail.Create(AvailabilityCreate{
		UserID:    uuid.New(),
		Date:      "2024-06-15",
		StartTime: tod("08:00"),
		EndTime:   tod("12:00"),
	})
	assert.NoError(t, err)
}

func TestAvailabilityUpdateNoteOnly(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()

	a, err := env.avail.Create(AvailabilityCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("08:00"),
		EndTime:   tod("16:00"),
	})
	require.NoError(t, err)

	note := "late arrival ok"
	updated, err := env.avail.Update(a.ID, AvailabilityUpdate{Note: &note})
	require.NoError(t, err)
	assert.Equal(t, note, updated.Note)
	assert.Equal(t, a.StartTime, updated.StartTime)
	assert.Equal(t, a.EndTime, updated.EndTime)
}

func TestAvailabilityDelete(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()

	a, err := env.avail.Create(AvailabilityCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("08:00"),
		EndTime:   tod("16:00"),
	})
	require.NoError(t, err)

	require.NoError(t, env.avail.Delete(a.ID))

	_, err = env.avail.GetByID(a.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, env.avail.Delete(a.ID), models.ErrNotFound)
}
