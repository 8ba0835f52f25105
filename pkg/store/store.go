package store

import (
	"time"

	"github.com/arnavshah/shiftdesk-api-go/pkg/interval"
	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/google/uuid"
)

// ShiftStore persists shifts and the organization's shift slot templates.
// Lookups that miss return models.ErrNotFound.
type ShiftStore interface {
	Add(shift *models.Shift) error
	GetByID(id uuid.UUID) (*models.Shift, error)
	GetAll() ([]models.Shift, error)
	Delete(id uuid.UUID) error
	GetByDate(date string) ([]models.Shift, error)
	GetByUser(userID uuid.UUID) ([]models.Shift, error)
	GetByUserAndDate(userID uuid.UUID, date string) ([]models.Shift, error)
	Update(id uuid.UUID, fields map[string]any) (*models.Shift, error)

	AddSlot(slot *models.ShiftSlot) error
	GetSlots() ([]models.ShiftSlot, error)
	GetSlotsByOrg(orgID uuid.UUID) ([]models.ShiftSlot, error)
	GetSlotByID(id uuid.UUID) (*models.ShiftSlot, error)
	UpdateSlot(id uuid.UUID, fields map[string]any) (*models.ShiftSlot, error)
	DeleteSlot(id uuid.UUID) error
}

// AvailabilityStore persists workers' declared availability windows.
type AvailabilityStore interface {
	Add(a *models.Availability) error
	Update(id uuid.UUID, fields map[string]any) (*models.Availability, error)
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*models.Availability, error)
	GetByUser(userID uuid.UUID) ([]models.Availability, error)
	GetByUserAndDate(userID uuid.UUID, date string) ([]models.Availability, error)
	GetByDate(date string) ([]models.Availability, error)
	GetAll() ([]models.Availability, error)
}

// OverrideStore persists shift-coverage requests.
type OverrideStore interface {
	Add(o *models.Override) error
	GetByID(id uuid.UUID) (*models.Override, error)
	GetAll() ([]models.Override, error)
	GetOpen() ([]models.Override, error)
	GetByShift(shiftID uuid.UUID) ([]models.Override, error)
	Update(id uuid.UUID, fields map[string]any) (*models.Override, error)

	// MarkTaken claims the override only if it is still open, narrowing its
	// interval to the claimed sub-range. It reports whether the claim won;
	// a false result with nil error means the override was already taken.
	MarkTaken(id uuid.UUID, takenBy uuid.UUID, start, end interval.TimeOfDay, at time.Time) (bool, error)
}

// UserStore persists organization members.
type UserStore interface {
	Add(u *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByOrg(orgID uuid.UUID) ([]models.User, error)
	// GetByRole filters by role within an organization; passing uuid.Nil as
	// orgID searches across all organizations.
	GetByRole(orgID uuid.UUID, role string) ([]models.User, error)
	Delete(id uuid.UUID) error
}

// OrganizationStore persists tenant organizations.
type OrganizationStore interface {
	Add(org *models.Organization) error
	GetByID(id uuid.UUID) (*models.Organization, error)
	GetByCode(code string) (*models.Organization, error)
}

// Stores bundles the per-aggregate stores handed to services.
type Stores struct {
	Shifts         ShiftStore
	Availabilities AvailabilityStore
	Overrides      OverrideStore
	Users          UserStore
	Organizations  OrganizationStore
}

// TxRunner executes fn with a Stores view whose reads and writes are
// isolated as a single transaction. Services run every validate-then-mutate
// sequence through it so overlap checks and claims hold under concurrency.
type TxRunner interface {
	InTransaction(fn func(Stores) error) error
}
