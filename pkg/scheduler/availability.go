package scheduler

import (
	"fmt"
	"time"

	"github.com/arnavshah/shiftdesk-api-go/pkg/interval"
	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/arnavshah/shiftdesk-api-go/pkg/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityCreate is the input for declaring an availability window.
type AvailabilityCreate struct {
	UserID         uuid.UUID          `json:"user_id" binding:"required"`
	OrganizationID uuid.UUID          `json:"organization_id"`
	Date           string             `json:"date" binding:"required"`
	StartTime      interval.TimeOfDay `json:"start_time"`
	EndTime        interval.TimeOfDay `json:"end_time"`
	Note           string             `json:"note"`
}

// AvailabilityUpdate carries the mutable fields of an availability. The
// interval is immutable after creation; only the note can change.
type AvailabilityUpdate struct {
	Note *string `json:"note"`
}

// AvailabilityService validates and stores workers' availability windows.
type AvailabilityService struct {
	stores store.Stores
	tx     store.TxRunner
	logger *zap.Logger
	now    func() time.Time
}

// NewAvailabilityService wires an availability service.
func NewAvailabilityService(stores store.Stores, tx store.TxRunner, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{stores: stores, tx: tx, logger: logger, now: time.Now}
}

// Create validates and persists a new availability window. It rejects
// inverted or past-dated ranges and any overlap with the worker's existing
// windows on the same date.
func (s *AvailabilityService) Create(req AvailabilityCreate) (*models.Availability, error) {
	date, err := interval.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRange, err)
	}
	iv := interval.Interval{Date: date, Start: req.StartTime, End: req.EndTime}
	if !iv.Valid() {
		return nil, fmt.Errorf("%w: start time must be before end time", models.ErrInvalidRange)
	}
	if date < s.now().Format(interval.DateLayout) {
		return nil, fmt.Errorf("%w: date must be today or in the future", models.ErrInvalidRange)
	}

	var out *models.Availability
	err = s.tx.InTransaction(func(st store.Stores) error {
		existing, err := st.Availabilities.GetByUserAndDate(req.UserID, date)
		if err != nil {
			return err
		}
		for _, ex := range existing {
			if ex.Interval().Overlaps(iv) {
				return fmt.Errorf("%w: overlaps an existing availability", models.ErrInvalidAvailability)
			}
		}

		a := &models.Availability{
			ID:             uuid.New(),
			UserID:         req.UserID,
			OrganizationID: req.OrganizationID,
			Date:           date,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Note:           req.Note,
			CreatedAt:      s.now(),
		}
		if err := st.Availabilities.Add(a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("availability created",
		zap.String("availability_id", out.ID.String()),
		zap.String("user_id", out.UserID.String()),
		zap.String("date", out.Date),
	)
	return out, nil
}

// Update applies a note change. Requests to move the interval are not
// supported; workers delete and re-create instead.
func (s *AvailabilityService) Update(id uuid.UUID, upd AvailabilityUpdate) (*models.Availability, error) {
	if upd.Note == nil {
		return s.GetByID(id)
	}
	return s.stores.Availabilities.Update(id, map[string]any{"note": *upd.Note})
}

// Delete removes an availability window.
func (s *AvailabilityService) Delete(id uuid.UUID) error {
	if err := s.stores.Availabilities.Delete(id); err != nil {
		return err
	}
	s.logger.Info("availability deleted", zap.String("availability_id", id.String()))
	return nil
}

// GetByID returns one availability.
func (s *AvailabilityService) GetByID(id uuid.UUID) (*models.Availability, error) {
	return s.stores.Availabilities.GetByID(id)
}

// List returns all availabilities.
func (s *AvailabilityService) List() ([]models.Availability, error) {
	return s.stores.Availabilities.GetAll()
}

// GetByUser returns a worker's availabilities.
func (s *AvailabilityService) GetByUser(userID uuid.UUID) ([]models.Availability, error) {
	return s.stores.Availabilities.GetByUser(userID)
}

// GetByUserAndDate returns a worker's availabilities on one date.
func (s *AvailabilityService) GetByUserAndDate(userID uuid.UUID, date string) ([]models.Availability, error) {
	return s.stores.Availabilities.GetByUserAndDate(userID, date)
}

// GetByDate returns all availabilities on one date.
func (s *AvailabilityService) GetByDate(date string) ([]models.Availability, error) {
	return s.stores.Availabilities.GetByDate(date)
}
