package scheduler

import (
	"fmt"
	"time"

	"github.com/arnavshah/shiftdesk-api-go/pkg/interval"
	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/google/uuid"
)

// SplitShift divides a shift around a claimed [claimedStart, claimedEnd)
// sub-range into up to three segments:
//   - before the claimed range (if any), kept by the original owner
//   - the claimed range, assigned to the taker with status TAKEN
//   - after the claimed range (if any), kept by the original owner
//
// Every segment references the original via ParentShiftID and inherits its
// OriginUserID, so the segments partition the original range exactly while
// preserving lineage. Callers must ensure the claimed range lies within the
// shift. The caller is also responsible for canceling the original shift;
// lead and trailing segments inherit its pre-cancellation status.
func SplitShift(shift *models.Shift, override *models.Override, claimedStart, claimedEnd interval.TimeOfDay, takerID uuid.UUID, now time.Time) []models.Shift {
	var segments []models.Shift
	parentID := shift.ID

	if shift.StartTime < claimedStart {
		segments = append(segments, models.Shift{
			ID:             uuid.New(),
			UserID:         shift.UserID,
			OriginUserID:   shift.OriginUserID,
			OrganizationID: shift.OrganizationID,
			Date:           shift.Date,
			StartTime:      shift.StartTime,
			EndTime:        claimedStart,
			Note:           shift.Note,
			Status:         shift.Status,
			ParentShiftID:  &parentID,
			CreatedAt:      now,
		})
	}

	segments = append(segments, models.Shift{
		ID:             uuid.New(),
		UserID:         takerID,
		OriginUserID:   shift.OriginUserID,
		OrganizationID: shift.OrganizationID,
		Date:           shift.Date,
		StartTime:      claimedStart,
		EndTime:        claimedEnd,
		Note:           fmt.Sprintf("Taken via override %s", override.ID),
		Status:         models.ShiftStatusTaken,
		ParentShiftID:  &parentID,
		CreatedAt:      now,
	})

	if claimedEnd < shift.EndTime {
		segments = append(segments, models.Shift{
			ID:             uuid.New(),
			UserID:         shift.UserID,
			OriginUserID:   shift.OriginUserID,
			OrganizationID: shift.OrganizationID,
			Date:           shift.Date,
			StartTime:      claimedEnd,
			EndTime:        shift.EndTime,
			Note:           shift.Note,
			Status:         shift.Status,
			ParentShiftID:  &parentID,
			CreatedAt:      now,
		})
	}

	return segments
}
