package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/arnavshah/shiftdesk-api-go/pkg/interval"
	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/arnavshah/shiftdesk-api-go/pkg/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OverrideCreate is the input for offering part of a shift for coverage.
type OverrideCreate struct {
	ShiftID        uuid.UUID          `json:"shift_id" binding:"required"`
	RequesterID    uuid.UUID          `json:"requester_id" binding:"required"`
	OrganizationID uuid.UUID          `json:"organization_id"`
	Date           string             `json:"date" binding:"required"`
	StartTime      interval.TimeOfDay `json:"start_time"`
	EndTime        interval.TimeOfDay `json:"end_time"`
}

// OverrideTake is the input for claiming an open override. The claimed range
// may narrow the offered one but must stay inside it.
type OverrideTake struct {
	TakenByID uuid.UUID          `json:"taken_by_id" binding:"required"`
	StartTime interval.TimeOfDay `json:"start_time"`
	EndTime   interval.TimeOfDay `json:"end_time"`
}

// OverrideTakeResult reports the outcome of a successful claim: the taken
// override and the shift segments the original was split into.
type OverrideTakeResult struct {
	Override *models.Override `json:"override"`
	Segments []models.Shift   `json:"segments"`
}

// OverrideService manages coverage requests and the claim/split flow.
type OverrideService struct {
	stores store.Stores
	tx     store.TxRunner
	logger *zap.Logger
	now    func() time.Time
}

// NewOverrideService wires an override service.
func NewOverrideService(stores store.Stores, tx store.TxRunner, logger *zap.Logger) *OverrideService {
	return &OverrideService{stores: stores, tx: tx, logger: logger, now: time.Now}
}

// Create validates and persists an open override. The offered range must lie
// within the referenced shift, match its date, and not overlap another
// override already offered for the same shift.
func (s *OverrideService) Create(req OverrideCreate) (*models.Override, error) {
	date, err := interval.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRange, err)
	}
	iv := interval.Interval{Date: date, Start: req.StartTime, End: req.EndTime}
	if !iv.Valid() {
		return nil, fmt.Errorf("%w: start time must be before end time", models.ErrInvalidOverride)
	}

	var out *models.Override
	err = s.tx.InTransaction(func(st store.Stores) error {
		shift, err := st.Shifts.GetByID(req.ShiftID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("%w: referenced shift does not exist", models.ErrInvalidOverride)
			}
			return err
		}
		if shift.Date != date {
			return fmt.Errorf("%w: date does not match the shift's date", models.ErrInvalidOverride)
		}
		if !shift.Interval().Contains(iv) {
			return fmt.Errorf("%w: offered range is outside the shift", models.ErrInvalidOverride)
		}

		existing, err := st.Overrides.GetByShift(req.ShiftID)
		if err != nil {
			return err
		}
		for _, ex := range existing {
			if ex.Interval().Overlaps(iv) {
				return fmt.Errorf("%w: overlaps an existing override for this shift", models.ErrInvalidOverride)
			}
		}

		o := &models.Override{
			ID:             uuid.New(),
			ShiftID:        req.ShiftID,
			RequesterID:    req.RequesterID,
			OrganizationID: req.OrganizationID,
			Date:           date,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			IsTaken:        false,
			CreatedAt:      s.now(),
		}
		if err := st.Overrides.Add(o); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("override created",
		zap.String("override_id", out.ID.String()),
		zap.String("shift_id", out.ShiftID.String()),
		zap.String("date", out.Date),
	)
	return out, nil
}

// Take claims an open override for a worker and splits the underlying shift
// around the claimed range. The original shift is canceled; the claimed
// segment belongs to the taker, any remainder stays with the original owner.
// Losing a race for the same override surfaces as ErrInvalidOverride.
func (s *OverrideService) Take(id uuid.UUID, req OverrideTake) (*OverrideTakeResult, error) {
	claim := interval.Interval{Start: req.StartTime, End: req.EndTime}
	if !claim.Valid() {
		return nil, fmt.Errorf("%w: start time must be before end time", models.ErrInvalidOverride)
	}

	var result *OverrideTakeResult
	err := s.tx.InTransaction(func(st store.Stores) error {
		override, err := st.Overrides.GetByID(id)
		if err != nil {
			return err
		}
		if override.IsTaken {
			return fmt.Errorf("%w: override has already been taken", models.ErrInvalidOverride)
		}

		shift, err := st.Shifts.GetByID(override.ShiftID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("%w: referenced shift no longer exists", models.ErrInvalidOverride)
			}
			return err
		}

		claim.Date = override.Date
		if !override.Interval().Contains(claim) {
			return fmt.Errorf("%w: claimed range is outside the offered range", models.ErrInvalidOverride)
		}
		if !shift.Interval().Contains(claim) {
			return fmt.Errorf("%w: claimed range is outside the shift", models.ErrInvalidOverride)
		}
		if req.TakenByID == shift.UserID {
			return fmt.Errorf("%w: shift owner cannot take their own override", models.ErrInvalidOverride)
		}

		now := s.now()
		segments := SplitShift(shift, override, req.StartTime, req.EndTime, req.TakenByID, now)
		for i := range segments {
			if err := st.Shifts.Add(&segments[i]); err != nil {
				return err
			}
		}

		ok, err := st.Overrides.MarkTaken(id, req.TakenByID, req.StartTime, req.EndTime, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: override has already been taken", models.ErrInvalidOverride)
		}

		if _, err := st.Shifts.Update(shift.ID, map[string]any{"status": models.ShiftStatusCanceled}); err != nil {
			return err
		}

		taken, err := st.Overrides.GetByID(id)
		if err != nil {
			return err
		}
		result = &OverrideTakeResult{Override: taken, Segments: segments}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("override taken",
		zap.String("override_id", id.String()),
		zap.String("taken_by", req.TakenByID.String()),
		zap.Int("segments", len(result.Segments)),
	)
	return result, nil
}

// GetByID returns one override.
func (s *OverrideService) GetByID(id uuid.UUID) (*models.Override, error) {
	return s.stores.Overrides.GetByID(id)
}

// List returns all overrides.
func (s *OverrideService) List() ([]models.Override, error) {
	return s.stores.Overrides.GetAll()
}

// ListOpen returns overrides that are still up for grabs.
func (s *OverrideService) ListOpen() ([]models.Override, error) {
	return s.stores.Overrides.GetOpen()
}

// GetByShift returns a shift's overrides.
func (s *OverrideService) GetByShift(shiftID uuid.UUID) ([]models.Override, error) {
	return s.stores.Overrides.GetByShift(shiftID)
}
