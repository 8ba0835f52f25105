package scheduler

import (
	"testing"

	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftCreate(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()

	shift, err := env.shifts.Create(ShiftCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("09:00"),
		EndTime:   tod("17:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ShiftStatusTaken, shift.Status)
	assert.Equal(t, userID, shift.OriginUserID, "origin defaults to the assignee")
	assert.Nil(t, shift.ParentShiftID)
}

func TestShiftCreateInvertedRange(t *testing.T) {
	env := newTestEnv()

	_, err := env.shifts.Create(ShiftCreate{
		UserID:    uuid.New(),
		Date:      "2024-06-15",
		StartTime: tod("17:00"),
		EndTime:   tod("09:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidRange)
}

func TestShiftCreateDoubleBookingRejected(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()

	_, err := env.shifts.Create(ShiftCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("09:00"),
		EndTime:   tod("13:00"),
	})
	require.NoError(t, err)

	_, err = env.shifts.Create(ShiftCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("12:00"),
		EndTime:   tod("16:00"),
	})
	assert.ErrorIs(t, err, models.ErrOverlappingShift)

	// Back to back is fine.
	_, err = env.shifts.Create(ShiftCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("13:00"),
		EndTime:   tod("17:00"),
	})
	assert.NoError(t, err)

	// Same range on another date is fine.
	_, err = env.shifts.Create(ShiftCreate{
		UserID:    userID,
		Date:      "2024-06-16",
		StartTime: tod("09:00"),
		EndTime:   tod("13:00"),
	})
	assert.NoError(t, err)
}

func TestShiftCreateBulkPartialFailure(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()

	results := env.shifts.CreateBulk([]ShiftCreate{
		{UserID: userID, Date: "2024-06-15", StartTime: tod("09:00"), EndTime: tod("13:00")},
		{UserID: userID, Date: "2024-06-15", StartTime: tod("10:00"), EndTime: tod("12:00")}, // overlaps first
		{UserID: userID, Date: "2024-06-15", StartTime: tod("13:00"), EndTime: tod("17:00")},
	})
	require.Len(t, results, 3)

	assert.NotNil(t, results[0].Shift)
	assert.Empty(t, results[0].Error)

	assert.Nil(t, results[1].Shift)
	assert.NotEmpty(t, results[1].Error)

	assert.NotNil(t, results[2].Shift, "a failing item must not block the rest of the batch")

	all, err := env.shifts.GetByUserAndDate(userID, "2024-06-15")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestShiftUpdateRevalidatesOverlap(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()

	first, err := env.shifts.Create(ShiftCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("09:00"),
		EndTime:   tod("13:00"),
	})
	require.NoError(t, err)

	second, err := env.shifts.Create(ShiftCreate{
		UserID:    userID,
		Date:      "2024-06-15",
		StartTime: tod("14:00"),
		EndTime:   tod("17:00"),
	})
	require.NoError(t, err)

	// Moving the second shift onto the first is rejected.
	start := tod("12:00")
	_, err = env.shifts.Update(second.ID, ShiftUpdate{StartTime: &start})
	assert.ErrorIs(t, err, models.ErrOverlappingShift)

	// Moving it flush against the first succeeds.
	start = tod("13:00")
	updated, err := env.shifts.Update(second.ID, ShiftUpdate{StartTime: &start})
	require.NoError(t, err)
	assert.Equal(t, tod("13:00"), updated.StartTime)

	// A note change skips interval validation entirely.
	note := "cover the till"
	updated, err = env.shifts.Update(first.ID, ShiftUpdate{Note: &note})
	require.NoError(t, err)
	assert.Equal(t, note, updated.Note)
}

func TestShiftUpdateNoOp(t *testing.T) {
	env := newTestEnv()

	shift, err := env.shifts.Create(ShiftCreate{
		UserID:    uuid.New(),
		Date:      "2024-06-15",
		StartTime: tod("09:00"),
		EndTime:   tod("17:00"),
	})
	require.NoError(t, err)

	// An all-nil update changes nothing and still returns the shift.
	updated, err := env.shifts.Update(shift.ID, ShiftUpdate{})
	require.NoError(t, err)
	assert.Equal(t, shift.ID, updated.ID)
	assert.Equal(t, shift.StartTime, updated.StartTime)
	assert.Equal(t, shift.EndTime, updated.EndTime)

	_, err = env.shifts.Update(uuid.New(), ShiftUpdate{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestShiftUpdateInvertedRange(t *testing.T) {
	env := newTestEnv()

	shift, err := env.shifts.Create(ShiftCreate{
		UserID:    uuid.New(),
		Date:      "2024-06-15",
		StartTime: tod("09:00"),
		EndTime:   tod("17:00"),
	})
	require.NoError(t, err)

	end := tod("08:00")
	_, err = env.shifts.Update(shift.ID, ShiftUpdate{EndTime: &end})
	assert.ErrorIs(t, err, models.ErrInvalidRange)
}

func TestShiftDeleteCascadesOverrides(t *testing.T) {
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

	require.NoError(t, env.shifts.Delete(shift.ID))

	_, err = env.shifts.GetByID(shift.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = env.overrides.GetByID(o.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSlotCreateAndUpdate(t *testing.T) {
	env := newTestEnv()
	orgID := uuid.New()

	slot, err := env.shifts.CreateSlot(SlotCreate{
		OrganizationID: orgID,
		Name:           "Evening",
		StartTime:      tod("17:00"),
		EndTime:        tod("22:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, slot.ExpectedWorkers, "expected workers defaults to 1")
	assert.True(t, slot.IsActive)

	_, err = env.shifts.CreateSlot(SlotCreate{
		OrganizationID: orgID,
		Name:           "Broken",
		StartTime:      tod("22:00"),
		EndTime:        tod("17:00"),
	})
	assert.ErrorIs(t, err, models.ErrInvalidRange)

	workers := 3
	updated, err := env.shifts.UpdateSlot(slot.ID, SlotUpdate{ExpectedWorkers: &workers})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.ExpectedWorkers)

	zero := 0
	_, err = env.shifts.UpdateSlot(slot.ID, SlotUpdate{ExpectedWorkers: &zero})
	assert.ErrorIs(t, err, models.ErrInvalidRange)

	// Changing one bound is validated against the resulting interval.
	badEnd := tod("16:00")
	_, err = env.shifts.UpdateSlot(slot.ID, SlotUpdate{EndTime: &badEnd})
	assert.ErrorIs(t, err, models.ErrInvalidRange)
}
