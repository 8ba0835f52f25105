package scheduler

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/arnavshah/shiftdesk-api-go/pkg/interval"
	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/arnavshah/shiftdesk-api-go/pkg/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShiftCreate is the input for a direct shift assignment.
type ShiftCreate struct {
	UserID         uuid.UUID          `json:"user_id" binding:"required"`
	OriginUserID   uuid.UUID          `json:"origin_user_id"`
	OrganizationID uuid.UUID          `json:"organization_id"`
	Date           string             `json:"date" binding:"required"`
	StartTime      interval.TimeOfDay `json:"start_time"`
	EndTime        interval.TimeOfDay `json:"end_time"`
	Note           string             `json:"note"`
}

// ShiftUpdate carries a partial field set; nil fields are left untouched.
type ShiftUpdate struct {
	UserID    *uuid.UUID          `json:"user_id"`
	Date      *string             `json:"date"`
	StartTime *interval.TimeOfDay `json:"start_time"`
	EndTime   *interval.TimeOfDay `json:"end_time"`
	Note      *string             `json:"note"`
	Status    *models.ShiftStatus `json:"status"`
}

// ShiftBulkResult is the per-item outcome of a bulk creation. Exactly one of
// Shift and Error is set; results keep the input order.
type ShiftBulkResult struct {
	Shift *models.Shift `json:"shift,omitempty"`
	Error string        `json:"error,omitempty"`
}

// SlotCreate is the input for a new shift slot template.
type SlotCreate struct {
	OrganizationID  uuid.UUID          `json:"organization_id" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	StartTime       interval.TimeOfDay `json:"start_time"`
	EndTime         interval.TimeOfDay `json:"end_time"`
	Description     string             `json:"description"`
	ExpectedWorkers int                `json:"expected_workers"`
}

// SlotUpdate carries a partial slot field set.
type SlotUpdate struct {
	Name            *string             `json:"name"`
	StartTime       *interval.TimeOfDay `json:"start_time"`
	EndTime         *interval.TimeOfDay `json:"end_time"`
	Description     *string             `json:"description"`
	ExpectedWorkers *int                `json:"expected_workers"`
	IsActive        *bool               `json:"is_active"`
}

// ShiftCalculationRequest asks for a coverage plan for one date.
type ShiftCalculationRequest struct {
	Date           string    `json:"date" binding:"required"`
	OrganizationID uuid.UUID `json:"organization_id" binding:"required"`
}

// ShiftService creates and validates shifts, manages slot templates and runs
// the automatic shift/worker matching.
type ShiftService struct {
	stores store.Stores
	tx     store.TxRunner
	logger *zap.Logger
	rng    *rand.Rand
	now    func() time.Time
}

// NewShiftService wires a shift service with a time-seeded random source for
// the calculator's fallback selection.
func NewShiftService(stores store.Stores, tx store.TxRunner, logger *zap.Logger) *ShiftService {
	return &ShiftService{
		stores: stores,
		tx:     tx,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// Create validates and persists a shift with status TAKEN. A worker may not
// hold two overlapping shifts on the same date, regardless of their status.
func (s *ShiftService) Create(req ShiftCreate) (*models.Shift, error) {
	date, err := interval.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRange, err)
	}
	iv := interval.Interval{Date: date, Start: req.StartTime, End: req.EndTime}
	if !iv.Valid() {
		return nil, fmt.Errorf("%w: start time must be before end time", models.ErrInvalidRange)
	}

	originID := req.OriginUserID
	if originID == uuid.Nil {
		originID = req.UserID
	}

	var out *models.Shift
	err = s.tx.InTransaction(func(st store.Stores) error {
		existing, err := st.Shifts.GetByUserAndDate(req.UserID, date)
		if err != nil {
			return err
		}
		for _, ex := range existing {
			if ex.Interval().Overlaps(iv) {
				return fmt.Errorf("%w: user already has a shift from %s to %s on %s",
					models.ErrOverlappingShift, ex.StartTime, ex.EndTime, ex.Date)
			}
		}

		shift := &models.Shift{
			ID:             uuid.New(),
			UserID:         req.UserID,
			OriginUserID:   originID,
			OrganizationID: req.OrganizationID,
			Date:           date,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Note:           req.Note,
			Status:         models.ShiftStatusTaken,
			CreatedAt:      s.now(),
		}
		if err := st.Shifts.Add(shift); err != nil {
			return err
		}
		out = shift
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shift created",
		zap.String("shift_id", out.ID.String()),
		zap.String("user_id", out.UserID.String()),
		zap.String("date", out.Date),
	)
	return out, nil
}

// CreateBulk applies Create to each request independently, best-effort: a
// failing item does not stop the batch. The result list keeps input order
// and records the failure reason for every skipped item.
func (s *ShiftService) CreateBulk(reqs []ShiftCreate) []ShiftBulkResult {
	results := make([]ShiftBulkResult, 0, len(reqs))
	for _, req := range reqs {
		shift, err := s.Create(req)
		if err != nil {
			results = append(results, ShiftBulkResult{Error: err.Error()})
			continue
		}
		results = append(results, ShiftBulkResult{Shift: shift})
	}
	return results
}

// Update applies a partial field change. When the owner, date or times
// change, the same overlap validation used at creation is re-run against the
// resulting interval.
func (s *ShiftService) Update(id uuid.UUID, upd ShiftUpdate) (*models.Shift, error) {
	fields := map[string]any{}
	if upd.UserID != nil {
		fields["user_id"] = *upd.UserID
	}
	if upd.Date != nil {
		date, err := interval.ParseDate(*upd.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidRange, err)
		}
		fields["date"] = date
	}
	if upd.StartTime != nil {
		fields["start_time"] = *upd.StartTime
	}
	if upd.EndTime != nil {
		fields["end_time"] = *upd.EndTime
	}
	if upd.Note != nil {
		fields["note"] = *upd.Note
	}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}

	var out *models.Shift
	err := s.tx.InTransaction(func(st store.Stores) error {
		if upd.UserID != nil || upd.Date != nil || upd.StartTime != nil || upd.EndTime != nil {
			current, err := st.Shifts.GetByID(id)
			if err != nil {
				return err
			}
			next := *current
			if upd.UserID != nil {
				next.UserID = *upd.UserID
			}
			if upd.Date != nil {
				next.Date = fields["date"].(string)
			}
			if upd.StartTime != nil {
				next.StartTime = *upd.StartTime
			}
			if upd.EndTime != nil {
				next.EndTime = *upd.EndTime
			}
			if !next.Interval().Valid() {
				return fmt.Errorf("%w: start time must be before end time", models.ErrInvalidRange)
			}
			others, err := st.Shifts.GetByUserAndDate(next.UserID, next.Date)
			if err != nil {
				return err
			}
			for _, ex := range others {
				if ex.ID != id && ex.Interval().Overlaps(next.Interval()) {
					return fmt.Errorf("%w: user already has a shift from %s to %s on %s",
						models.ErrOverlappingShift, ex.StartTime, ex.EndTime, ex.Date)
				}
			}
		}

		updated, err := st.Shifts.Update(id, fields)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a shift and its overrides.
func (s *ShiftService) Delete(id uuid.UUID) error {
	if err := s.stores.Shifts.Delete(id); err != nil {
		return err
	}
	s.logger.Info("shift deleted", zap.String("shift_id", id.String()))
	return nil
}

// GetByID returns one shift.
func (s *ShiftService) GetByID(id uuid.UUID) (*models.Shift, error) {
	return s.stores.Shifts.GetByID(id)
}

// List returns all shifts.
func (s *ShiftService) List() ([]models.Shift, error) {
	return s.stores.Shifts.GetAll()
}

// GetByDate returns all shifts on one date.
func (s *ShiftService) GetByDate(date string) ([]models.Shift, error) {
	return s.stores.Shifts.GetByDate(date)
}

// GetByUser returns a worker's shifts.
func (s *ShiftService) GetByUser(userID uuid.UUID) ([]models.Shift, error) {
	return s.stores.Shifts.GetByUser(userID)
}

// GetByUserAndDate returns a worker's shifts on one date.
func (s *ShiftService) GetByUserAndDate(userID uuid.UUID, date string) ([]models.Shift, error) {
	return s.stores.Shifts.GetByUserAndDate(userID, date)
}

// CreateSlot persists a new slot template.
func (s *ShiftService) CreateSlot(req SlotCreate) (*models.ShiftSlot, error) {
	iv := interval.Interval{Start: req.StartTime, End: req.EndTime}
	if !iv.Valid() {
		return nil, fmt.Errorf("%w: start time must be before end time", models.ErrInvalidRange)
	}
	expected := req.ExpectedWorkers
	if expected < 1 {
		expected = 1
	}

	slot := &models.ShiftSlot{
		ID:              uuid.New(),
		OrganizationID:  req.OrganizationID,
		Name:            req.Name,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Description:     req.Description,
		ExpectedWorkers: expected,
		IsActive:        true,
		CreatedAt:       s.now(),
	}
	if err := s.stores.Shifts.AddSlot(slot); err != nil {
		return nil, err
	}

	s.logger.Info("shift slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("name", slot.Name),
	)
	return slot, nil
}

// GetSlots returns every slot template.
func (s *ShiftService) GetSlots() ([]models.ShiftSlot, error) {
	return s.stores.Shifts.GetSlots()
}

// GetSlotsByOrg returns an organization's slot templates.
func (s *ShiftService) GetSlotsByOrg(orgID uuid.UUID) ([]models.ShiftSlot, error) {
	return s.stores.Shifts.GetSlotsByOrg(orgID)
}

// GetSlotByID returns one slot template.
func (s *ShiftService) GetSlotByID(id uuid.UUID) (*models.ShiftSlot, error) {
	return s.stores.Shifts.GetSlotByID(id)
}

// UpdateSlot applies a partial slot change.
func (s *ShiftService) UpdateSlot(id uuid.UUID, upd SlotUpdate) (*models.ShiftSlot, error) {
	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.StartTime != nil {
		fields["start_time"] = *upd.StartTime
	}
	if upd.EndTime != nil {
		fields["end_time"] = *upd.EndTime
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.ExpectedWorkers != nil {
		if *upd.ExpectedWorkers < 1 {
			return nil, fmt.Errorf("%w: expected workers must be at least 1", models.ErrInvalidRange)
		}
		fields["expected_workers"] = *upd.ExpectedWorkers
	}
	if upd.IsActive != nil {
		fields["is_active"] = *upd.IsActive
	}

	if upd.StartTime != nil || upd.EndTime != nil {
		current, err := s.stores.Shifts.GetSlotByID(id)
		if err != nil {
			return nil, err
		}
		start, end := current.StartTime, current.EndTime
		if upd.StartTime != nil {
			start = *upd.StartTime
		}
		if upd.EndTime != nil {
			end = *upd.EndTime
		}
		if start >= end {
			return nil, fmt.Errorf("%w: start time must be before end time", models.ErrInvalidRange)
		}
	}

	return s.stores.Shifts.UpdateSlot(id, fields)
}

// DeleteSlot removes a slot template.
func (s *ShiftService) DeleteSlot(id uuid.UUID) error {
	return s.stores.Shifts.DeleteSlot(id)
}

// CalculateShifts plans coverage for one date: for each active slot it first
// seats workers whose availability contains the slot's window, then fills the
// remaining seats by uniform-random selection without replacement from the
// organization's workers. A worker is used at most once per run. The result
// is a preview; nothing is persisted.
func (s *ShiftService) CalculateShifts(req ShiftCalculationRequest) ([]models.ShiftCalculationResult, error) {
	date, err := interval.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRange, err)
	}

	slots, err := s.stores.Shifts.GetSlotsByOrg(req.OrganizationID)
	if err != nil {
		return nil, err
	}
	avails, err := s.stores.Availabilities.GetByDate(date)
	if err != nil {
		return nil, err
	}

	used := make(map[uuid.UUID]bool)
	var workers []models.User // fallback pool, loaded on first shortfall
	var results []models.ShiftCalculationResult

	for i := range slots {
		slot := slots[i]
		if !slot.IsActive {
			continue
		}
		slotIv := slot.IntervalOn(date)
		seats := slot.ExpectedWorkers
		if seats < 1 {
			seats = 1
		}

		for _, av := range avails {
			if seats == 0 {
				break
			}
			if av.OrganizationID != req.OrganizationID {
				continue
			}
			if used[av.UserID] {
				continue
			}
			if av.Interval().Contains(slotIv) {
				used[av.UserID] = true
				results = append(results, s.planResult(av.UserID, &slot, date))
				seats--
			}
		}

		if seats > 0 {
			if workers == nil {
				workers, err = s.stores.Users.GetByRole(req.OrganizationID, models.RoleWorker)
				if err != nil {
					return nil, err
				}
			}
			var pool []models.User
			for _, w := range workers {
				if !used[w.ID] {
					pool = append(pool, w)
				}
			}
			s.rng.Shuffle(len(pool), func(a, b int) {
				pool[a], pool[b] = pool[b], pool[a]
			})
			for _, w := range pool {
				if seats == 0 {
					break
				}
				used[w.ID] = true
				results = append(results, s.planResult(w.ID, &slot, date))
				seats--
			}
		}
	}

	s.logger.Info("shift calculation completed",
		zap.String("date", date),
		zap.String("organization_id", req.OrganizationID.String()),
		zap.Int("assignments", len(results)),
	)
	return results, nil
}

func (s *ShiftService) planResult(userID uuid.UUID, slot *models.ShiftSlot, date string) models.ShiftCalculationResult {
	user, err := s.stores.Users.GetByID(userID)
	if err != nil {
		user = nil
	}
	return models.ShiftCalculationResult{
		UserID:    userID,
		User:      user,
		Slot:      slot,
		Date:      date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	}
}
