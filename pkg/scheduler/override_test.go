package scheduler

import (
	"testing"

	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideCreate(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()

	shift, err := env.shifts.Create(ShiftCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("09:00"),
		EndTime:   tod("17:00"),
	})
	require.NoError(t, err)

	o, err := env.overrides.Create(OverrideCreate{
		ShiftID:     shift.ID,
		RequesterID: userID,
		Date:        "2024-06-15",
		StartTime:   tod("10:00"),
		EndTime:     tod("14:00"),
	})
	require.NoError(t, err)
	assert.False(t, o.IsTaken)
	assert.Nil(t, o.TakenByID)
	assert.Equal(t, shift.ID, o.ShiftID)
}

func TestOverrideCreateValidation(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()

	shift, err := env.shifts.Create(ShiftCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("09:00"),
		EndTime:   tod("17:00"),
	})
	require.NoError(t, err)

	// Unknown shift.
	_, err = env.overrides.Create(OverrideCreate{
		ShiftID:     uuid.New(),
		RequesterID: userID,
		Date:        "2024-06-15",
		StartTime:   tod("10:00"),
		EndTime:     tod("14:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidOverride)

	// Date mismatch.
	_, err = env.overrides.Create(OverrideCreate{
		ShiftID:     shift.ID,
		RequesterID: userID,
		Date:        "2024-06-16",
		StartTime:   tod("10:00"),
		EndTime:     tod("14:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidOverride)

	// Range pokes outside the shift.
	_, err = env.overrides.Create(OverrideCreate{
		ShiftID:     shift.ID,
		RequesterID: userID,
		Date:        "2024-06-15",
		StartTime:   tod("08:00"),
		EndTime:     tod("12:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidOverride)

	// Inverted range.
	_, err = env.overrides.Create(OverrideCreate{
		ShiftID:     shift.ID,
		RequesterID: userID,
		Date:        "2024-06-15",
		StartTime:   tod("14:00"),
		EndTime:     tod("10:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidOverride)
}

func TestOverrideCreateOverlapWithExisting(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()

	shift, err := env.shifts.Create(ShiftCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("09:00"),
		EndTime:   tod("17:00"),
	})
	require.NoError(t, err)

	_, err = env.overrides.Create(OverrideCreate{
		ShiftID:     shift.ID,
		RequesterID: userID,
		Date:        "2024-06-15",
		StartTime:   tod("09:00"),
		EndTime:     tod("12:00"),
	})
	require.NoError(t, err)

	_, err = env.overrides.Create(OverrideCreate{
		ShiftID:     shift.ID,
		RequesterID: userID,
		Date:        "2024-06-15",
		StartTime:   tod("11:00"),
		EndTime:     tod("14:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidOverride)

	// Touching is fine.
	_, err = env.overrides.Create(OverrideCreate{
		ShiftID:     shift.ID,
		RequesterID: userID,
		Date:        "2024-06-15",
		StartTime:   tod("12:00"),
		EndTime:     tod("14:00"),
	})
	assert.NoError(t, err)
}

// End-to-end flow: worker A owns 09:00-17:00, offers 10:00-14:00, worker B
// claims 11:00-13:00. The original is canceled and replaced by three
// segments: A 09:00-11:00, B 11:00-13:00, A 13:00-17:00.
func TestOverrideTakeSplitsShift(t *testing.T) {
	env := newTestEnv()
	workerA := uuid.New()
	workerB := uuid.New()

	shift, err := env.shifts.Create(ShiftCreate{
		UserID:    workerA,
		Date:      "2024-06-15",
		StartTime: tod("09:00"),
		EndTime:   tod("17:00"),
	})
	require.NoError(t, err)

	o, err := env.overrides.Create(OverrideCreate{
		ShiftID:     shift.ID,
		RequesterID: workerA,
		Date:        "2024-06-15",
		StartTime:   tod("10:00"),
		EndTime:     tod("14:00"),
	})
	require.NoError(t, err)

	result, err := env.overrides.Take(o.ID, OverrideTake{
		TakenByID: workerB,
		StartTime: tod("11:00"),
		EndTime:   tod("13:00"),
	})
	require.NoError(t, err)
	require.Len(t, result.Segments, 3)

	lead, claimed, trail := result.Segments[0], result.Segments[1], result.Segments[2]
	assert.Equal(t, workerA, lead.UserID)
	assert.Equal(t, tod("09:00"), lead.StartTime)
	assert.Equal(t, tod("11:00"), lead.EndTime)
	assert.Equal(t, workerB, claimed.UserID)
	assert.Equal(t, tod("11:00"), claimed.StartTime)
	assert.Equal(t, tod("13:00"), claimed.EndTime)
	assert.Equal(t, models.ShiftStatusTaken, claimed.Status)
	assert.Equal(t, workerA, trail.UserID)
	assert.Equal(t, tod("13:00"), trail.StartTime)
	assert.Equal(t, tod("17:00"), trail.EndTime)

	// The override is terminal and narrowed to the claimed range.
	require.NotNil(t, result.Override.TakenByID)
	assert.True(t, result.Override.IsTaken)
	assert.Equal(t, workerB, *result.Override.TakenByID)
	assert.Equal(t, tod("11:00"), result.Override.StartTime)
	assert.Equal(t, tod("13:00"), result.Override.EndTime)
	assert.NotNil(t, result.Override.TakenAt)

	// The original shift is canceled but still present for lineage.
	original, err := env.shifts.GetByID(shift.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftStatusCanceled, original.Status)

	for _, seg := range result.Segments {
		require.NotNil(t, seg.ParentShiftID)
		assert.Equal(t, shift.ID, *seg.ParentShiftID)
		assert.Equal(t, workerA, seg.OriginUserID)
	}
}

func TestOverrideTakeValidation(t *testing.T) {
	env := newTestEnv()
	workerA := uuid.New()
	workerB := uuid.New()

	shift, err := env.shifts.Create(ShiftCreate{
		UserID:    workerA,
		Date:      "2024-06-15",
		StartTime: tod("09:00"),
		EndTime:   tod("17:00"),
	})
	require.NoError(t, err)

	o, err := env.overrides.Create(OverrideCreate{
		ShiftID:     shift.ID,
		RequesterID: workerA,
		Date:        "2024-06-15",
		StartTime:   tod("10:00"),
		EndTime:     tod("14:00"),
	})
	require.NoError(t, err)

	// Claim outside the offered range.
	_, err = env.overrides.Take(o.ID, OverrideTake{
		TakenByID: workerB,
		StartTime: tod("09:00"),
		EndTime:   tod("12:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidOverride)

	// Owner cannot claim their own override.
	_, err = env.overrides.Take(o.ID, OverrideTake{
		TakenByID: workerA,
		StartTime: tod("10:00"),
		EndTime:   tod("14:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidOverride)

	// Unknown override.
	_, err = env.overrides.Take(uuid.New(), OverrideTake{
		TakenByID: workerB,
		StartTime: tod("10:00"),
		EndTime:   tod("14:00"),
	})
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Inverted claim.
	_, err = env.overrides.Take(o.ID, OverrideTake{
		TakenByID: workerB,
		StartTime: tod("14:00"),
		EndTime:   tod("10:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidOverride)
}

func TestOverrideTakeSecondClaimLoses(t *testing.T) {
	env := newTestEnv()
	workerA := uuid.New()
	workerB := uuid.New()
	workerC := uuid.New()

	shift, err := env.shifts.Create(ShiftCreate{
		UserID:    workerA,
		Date:      "2024-06-15",
		StartTime: tod("09:00"),
		EndTime:   tod("17:00"),
	})
	require.NoError(t, err)

	o, err := env.overrides.Create(OverrideCreate{
		ShiftID:     shift.ID,
		RequesterID: workerA,
		Date:        "2024-06-15",
		StartTime:   tod("10:00"),
		EndTime:     tod("14:00"),
	})
	require.NoError(t, err)

	_, err = env.overrides.Take(o.ID, OverrideTake{
		TakenByID: workerB,
		StartTime: tod("10:00"),
		EndTime:   tod("14:00"),
	})
	require.NoError(t, err)

	_, err = env.overrides.Take(o.ID, OverrideTake{
		TakenByID: workerC,
		StartTime: tod("10:00"),
		EndTime:   tod("14:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidOverride)

	taken, err := env.overrides.GetByID(o.ID)
	require.NoError(t, err)
	require.NotNil(t, taken.TakenByID)
	assert.Equal(t, workerB, *taken.TakenByID, "first claim stands")
}

func TestOverrideListOpen(t *testing.T) {
	env := newTestEnv()
	workerA := uuid.New()
	workerB := uuid.New()

	shift, err := env.shifts.Create(ShiftCreate{
		UserID:    workerA,
		Date:      "2024-06-15",
		StartTime: tod("09:00"),
		EndTime:   tod("17:00"),
	})
	require.NoError(t, err)

	first, err := env.overrides.Create(OverrideCreate{
		ShiftID:     shift.ID,
		RequesterID: workerA,
		Date:        "2024-06-15",
		StartTime:   tod("09:00"),
		EndTime:     tod("12:00"),
	})
	require.NoError(t, err)

	second, err := env.overrides.Create(OverrideCreate{
		ShiftID:     shift.ID,
		RequesterID: workerA,
		Date:        "2024-06-15",
		StartTime:   tod("13:00"),
		EndTime:     tod("17:00"),
	})
	require.NoError(t, err)

	_, err = env.overrides.Take(first.ID, OverrideTake{
		TakenByID: workerB,
		StartTime: tod("09:00"),
		EndTime:   tod("12:00"),
	})
	require.NoError(t, err)

	open, err := env.overrides.ListOpen()
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, second.ID, open[0].ID)
}
