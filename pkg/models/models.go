package models

import (
	"time"

	"github.com/arnavshah/shiftdesk-api-go/pkg/interval"
	"github.com/google/uuid"
)

// ShiftStatus is the lifecycle state of a shift. Transitions run one way:
// PENDING -> TAKEN -> CANCELED.
type ShiftStatus string

const (
	ShiftStatusPending  ShiftStatus = "PENDING"
	ShiftStatusTaken    ShiftStatus = "TAKEN"
	ShiftStatusCanceled ShiftStatus = "CANCELED"
)

// User roles.
const (
	RoleWorker  = "worker"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Organization is the tenancy boundary; it owns users, slots, shifts,
// overrides and availabilities.
type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	OrgCode   string    `gorm:"uniqueIndex;not null" json:"org_code"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a member of an organization.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName       string    `gorm:"not null" json:"full_name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	Role           string    `gorm:"not null" json:"role"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index" json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Availability is a worker's self-declared open window. The interval is
// immutable after creation; only the note may change.
type Availability struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID          `gorm:"type:uuid;index:idx_avail_user_date" json:"user_id"`
	OrganizationID uuid.UUID          `gorm:"type:uuid;index" json:"organization_id"`
	Date           string             `gorm:"index:idx_avail_user_date;not null" json:"date"`
	StartTime      interval.TimeOfDay `gorm:"not null" json:"start_time"`
	EndTime        interval.TimeOfDay `gorm:"not null" json:"end_time"`
	Note           string             `json:"note,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// Interval returns the availability's time range.
func (a Availability) Interval() interval.Interval {
	return interval.Interval{Date: a.Date, Start: a.StartTime, End: a.EndTime}
}

// ShiftSlot is an organization's template for a recurring coverage need,
// e.g. "Morning 06:00-13:00" with one expected worker.
type ShiftSlot struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID  uuid.UUID          `gorm:"type:uuid;index" json:"organization_id"`
	Name            string             `gorm:"not null" json:"name"`
	StartTime       interval.TimeOfDay `gorm:"not null" json:"start_time"`
	EndTime         interval.TimeOfDay `gorm:"not null" json:"end_time"`
	Description     string             `json:"description,omitempty"`
	ExpectedWorkers int                `gorm:"default:1" json:"expected_workers"`
	IsActive        bool               `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       *time.Time         `json:"updated_at,omitempty"`
}

// IntervalOn projects the slot template onto a concrete date.
func (s ShiftSlot) IntervalOn(date string) interval.Interval {
	return interval.Interval{Date: date, Start: s.StartTime, End: s.EndTime}
}

// Shift is a concrete, owned, time-bounded work assignment. Segments created
// by splitting reference the shift they came from via ParentShiftID and keep
// the original requester in OriginUserID.
type Shift struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID          `gorm:"type:uuid;index:idx_shift_user_date" json:"user_id"`
	OriginUserID   uuid.UUID          `gorm:"type:uuid" json:"origin_user_id"`
	OrganizationID uuid.UUID          `gorm:"type:uuid;index" json:"organization_id"`
	Date           string             `gorm:"index:idx_shift_user_date;not null" json:"date"`
	StartTime      interval.TimeOfDay `gorm:"not null" json:"start_time"`
	EndTime        interval.TimeOfDay `gorm:"not null" json:"end_time"`
	Note           string             `json:"note,omitempty"`
	Status         ShiftStatus        `gorm:"not null" json:"status"`
	ParentShiftID  *uuid.UUID         `gorm:"type:uuid" json:"parent_shift_id,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// Interval returns the shift's time range.
func (s Shift) Interval() interval.Interval {
	return interval.Interval{Date: s.Date, Start: s.StartTime, End: s.EndTime}
}

// Override is a request by a shift's owner to give away part (or all) of the
// shift. Once taken it is terminal; the stored interval is narrowed to the
// range that was actually claimed.
type Override struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ShiftID        uuid.UUID          `gorm:"type:uuid;index" json:"shift_id"`
	RequesterID    uuid.UUID          `gorm:"type:uuid" json:"requester_id"`
	OrganizationID uuid.UUID          `gorm:"type:uuid;index" json:"organization_id"`
	Date           string             `gorm:"not null" json:"date"`
	StartTime      interval.TimeOfDay `gorm:"not null" json:"start_time"`
	EndTime        interval.TimeOfDay `gorm:"not null" json:"end_time"`
	TakenByID      *uuid.UUID         `gorm:"type:uuid" json:"taken_by_id,omitempty"`
	TakenAt        *time.Time         `json:"taken_at,omitempty"`
	IsTaken        bool               `gorm:"default:false" json:"is_taken"`
	CreatedAt      time.Time          `json:"created_at"`
}

// Interval returns the override's offered time range.
func (o Override) Interval() interval.Interval {
	return interval.Interval{Date: o.Date, Start: o.StartTime, End: o.EndTime}
}

// ShiftCalculationResult is one planned assignment produced by the automatic
// calculator. Results are a planning preview and are never persisted.
type ShiftCalculationResult struct {
	UserID    uuid.UUID          `json:"user_id"`
	User      *User              `json:"user,omitempty"`
	Slot      *ShiftSlot         `json:"shift_slot,omitempty"`
	Date      string             `json:"date"`
	StartTime interval.TimeOfDay `json:"start_time"`
	EndTime   interval.TimeOfDay `json:"end_time"`
}
