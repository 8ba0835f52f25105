package store

import (
	"errors"
	"time"

	"github.com/arnavshah/shiftdesk-api-go/pkg/interval"
	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gorm provides database-backed stores plus transactional execution.
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps an initialized gorm connection.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Stores returns stores bound to the base connection (auto-commit reads/writes).
func (g *Gorm) Stores() Stores {
	return storesFor(g.db)
}

// InTransaction runs fn inside a database transaction; stores passed to fn
// are bound to it.
func (g *Gorm) InTransaction(fn func(Stores) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return fn(storesFor(tx))
	})
}

func storesFor(db *gorm.DB) Stores {
	return Stores{
		Shifts:         gormShiftStore{db},
		Availabilities: gormAvailabilityStore{db},
		Overrides:      gormOverrideStore{db},
		Users:          gormUserStore{db},
		Organizations:  gormOrgStore{db},
	}
}

// notFound translates gorm's miss sentinel into the domain kind.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}

type gormShiftStore struct{ db *gorm.DB }

func (s gormShiftStore) Add(shift *models.Shift) error {
	return s.db.Create(shift).Error
}

func (s gormShiftStore) GetByID(id uuid.UUID) (*models.Shift, error) {
	var shift models.Shift
	if err := s.db.First(&shift, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &shift, nil
}

func (s gormShiftStore) GetAll() ([]models.Shift, error) {
	var shifts []models.Shift
	err := s.db.Order("date, start_time").Find(&shifts).Error
	return shifts, err
}

func (s gormShiftStore) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		// Overrides are owned by the shift and go with it.
		if err := tx.Where("shift_id = ?", id).Delete(&models.Override{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Shift{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

func (s gormShiftStore) GetByDate(date string) ([]models.Shift, error) {
	var shifts []models.Shift
	err := s.db.Where("date = ?", date).Order("start_time").Find(&shifts).Error
	return shifts, err
}

func (s gormShiftStore) GetByUser(userID uuid.UUID) ([]models.Shift, error) {
	var shifts []models.Shift
	err := s.db.Where("user_id = ?", userID).Order("date, start_time").Find(&shifts).Error
	return shifts, err
}

func (s gormShiftStore) GetByUserAndDate(userID uuid.UUID, date string) ([]models.Shift, error) {
	var shifts []models.Shift
	err := s.db.Where("user_id = ? AND date = ?", userID, date).Order("start_time").Find(&shifts).Error
	return shifts, err
}

func (s gormShiftStore) Update(id uuid.UUID, fields map[string]any) (*models.Shift, error) {
	// Updates with an empty map affects 0 rows; a no-op change is not a miss.
	if len(fields) == 0 {
		return s.GetByID(id)
	}
	res := s.db.Model(&models.Shift{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrNotFound
	}
	return s.GetByID(id)
}

func (s gormShiftStore) AddSlot(slot *models.ShiftSlot) error {
	return s.db.Create(slot).Error
}

func (s gormShiftStore) GetSlots() ([]models.ShiftSlot, error) {
	var slots []models.ShiftSlot
	err := s.db.Order("start_time").Find(&slots).Error
	return slots, err
}

func (s gormShiftStore) GetSlotsByOrg(orgID uuid.UUID) ([]models.ShiftSlot, error) {
	var slots []models.ShiftSlot
	err := s.db.Where("organization_id = ?", orgID).Order("start_time").Find(&slots).Error
	return slots, err
}

func (s gormShiftStore) GetSlotByID(id uuid.UUID) (*models.ShiftSlot, error) {
	var slot models.ShiftSlot
	if err := s.db.First(&slot, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &slot, nil
}

func (s gormShiftStore) UpdateSlot(id uuid.UUID, fields map[string]any) (*models.ShiftSlot, error) {
	fields["updated_at"] = time.Now()
	res := s.db.Model(&models.ShiftSlot{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrNotFound
	}
	return s.GetSlotByID(id)
}

func (s gormShiftStore) DeleteSlot(id uuid.UUID) error {
	res := s.db.Delete(&models.ShiftSlot{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

type gormAvailabilityStore struct{ db *gorm.DB }

func (s gormAvailabilityStore) Add(a *models.Availability) error {
	return s.db.Create(a).Error
}

func (s gormAvailabilityStore) Update(id uuid.UUID, fields map[string]any) (*models.Availability, error) {
	res := s.db.Model(&models.Availability{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrNotFound
	}
	return s.GetByID(id)
}

func (s gormAvailabilityStore) Delete(id uuid.UUID) error {
	res := s.db.Delete(&models.Availability{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s gormAvailabilityStore) GetByID(id uuid.UUID) (*models.Availability, error) {
	var a models.Availability
	if err := s.db.First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s gormAvailabilityStore) GetByUser(userID uuid.UUID) ([]models.Availability, error) {
	var out []models.Availability
	err := s.db.Where("user_id = ?", userID).Order("date, start_time").Find(&out).Error
	return out, err
}

func (s gormAvailabilityStore) GetByUserAndDate(userID uuid.UUID, date string) ([]models.Availability, error) {
	var out []models.Availability
	err := s.db.Where("user_id = ? AND date = ?", userID, date).Order("start_time").Find(&out).Error
	return out, err
}

func (s gormAvailabilityStore) GetByDate(date string) ([]models.Availability, error) {
	var out []models.Availability
	err := s.db.Where("date = ?", date).Order("start_time").Find(&out).Error
	return out, err
}

func (s gormAvailabilityStore) GetAll() ([]models.Availability, error) {
	var out []models.Availability
	err := s.db.Order("date, start_time").Find(&out).Error
	return out, err
}

type gormOverrideStore struct{ db *gorm.DB }

func (s gormOverrideStore) Add(o *models.Override) error {
	return s.db.Create(o).Error
}

func (s gormOverrideStore) GetByID(id uuid.UUID) (*models.Override, error) {
	var o models.Override
	if err := s.db.First(&o, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (s gormOverrideStore) GetAll() ([]models.Override, error) {
	var out []models.Override
	err := s.db.Order("created_at").Find(&out).Error
	return out, err
}

func (s gormOverrideStore) GetOpen() ([]models.Override, error) {
	var out []models.Override
	err := s.db.Where("is_taken = ?", false).Order("created_at").Find(&out).Error
	return out, err
}

func (s gormOverrideStore) GetByShift(shiftID uuid.UUID) ([]models.Override, error) {
	var out []models.Override
	err := s.db.Where("shift_id = ?", shiftID).Order("created_at").Find(&out).Error
	return out, err
}

func (s gormOverrideStore) Update(id uuid.UUID, fields map[string]any) (*models.Override, error) {
	res := s.db.Model(&models.Override{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrNotFound
	}
	return s.GetByID(id)
}

// MarkTaken is a conditional update keyed on is_taken = false, so two
// concurrent claims cannot both win.
func (s gormOverrideStore) MarkTaken(id uuid.UUID, takenBy uuid.UUID, start, end interval.TimeOfDay, at time.Time) (bool, error) {
	res := s.db.Model(&models.Override{}).
		Where("id = ? AND is_taken = ?", id, false).
		Updates(map[string]any{
			"is_taken":    true,
			"taken_by_id": takenBy,
			"taken_at":    at,
			"start_time":  start,
			"end_time":    end,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

type gormUserStore struct{ db *gorm.DB }

func (s gormUserStore) Add(u *models.User) error {
	return s.db.Create(u).Error
}

func (s gormUserStore) GetByID(id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s gormUserStore) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "email = ?", email).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s gormUserStore) GetByOrg(orgID uuid.UUID) ([]models.User, error) {
	var out []models.User
	err := s.db.Where("organization_id = ?", orgID).Order("full_name").Find(&out).Error
	return out, err
}

func (s gormUserStore) GetByRole(orgID uuid.UUID, role string) ([]models.User, error) {
	q := s.db.Where("role = ?", role)
	if orgID != uuid.Nil {
		q = q.Where("organization_id = ?", orgID)
	}
	var out []models.User
	err := q.Order("full_name").Find(&out).Error
	return out, err
}

func (s gormUserStore) Delete(id uuid.UUID) error {
	res := s.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

type gormOrgStore struct{ db *gorm.DB }

func (s gormOrgStore) Add(org *models.Organization) error {
	return s.db.Create(org).Error
}

func (s gormOrgStore) GetByID(id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.First(&org, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &org, nil
}

func (s gormOrgStore) GetByCode(code string) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.First(&org, "org_code = ?", code).Error; err != nil {
		return nil, notFound(err)
	}
	return &org, nil
}
