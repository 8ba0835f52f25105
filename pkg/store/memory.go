package store

import (
	"sort"
	"sync"
	"time"

	"github.com/arnavshah/shiftdesk-api-go/pkg/interval"
	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/google/uuid"
)

// Memory is a map-backed implementation of the stores, used by tests and as
// a throwaway backend for local experiments. Transactions serialize on a
// single mutex; there is no rollback.
type Memory struct {
	mu sync.Mutex

	shifts         map[uuid.UUID]models.Shift
	slots          map[uuid.UUID]models.ShiftSlot
	availabilities map[uuid.UUID]models.Availability
	overrides      map[uuid.UUID]models.Override
	users          map[uuid.UUID]models.User
	orgs           map[uuid.UUID]models.Organization

	seq int64 // insertion order tiebreak for stable listings
	ord map[uuid.UUID]int64
}

// NewMemory returns an empty in-memory store set.
func NewMemory() *Memory {
	return &Memory{
		shifts:         make(map[uuid.UUID]models.Shift),
		slots:          make(map[uuid.UUID]models.ShiftSlot),
		availabilities: make(map[uuid.UUID]models.Availability),
		overrides:      make(map[uuid.UUID]models.Override),
		users:          make(map[uuid.UUID]models.User),
		orgs:           make(map[uuid.UUID]models.Organization),
		ord:            make(map[uuid.UUID]int64),
	}
}

// Stores returns the store bundle backed by this instance.
func (m *Memory) Stores() Stores {
	return Stores{
		Shifts:         memShiftStore{m},
		Availabilities: memAvailabilityStore{m},
		Overrides:      memOverrideStore{m},
		Users:          memUserStore{m},
		Organizations:  memOrgStore{m},
	}
}

// InTransaction serializes fn against all other transactions.
func (m *Memory) InTransaction(fn func(Stores) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.Stores())
}

func (m *Memory) track(id uuid.UUID) {
	m.seq++
	m.ord[id] = m.seq
}

type memShiftStore struct{ m *Memory }

func (s memShiftStore) Add(shift *models.Shift) error {
	s.m.shifts[shift.ID] = *shift
	s.m.track(shift.ID)
	return nil
}

func (s memShiftStore) GetByID(id uuid.UUID) (*models.Shift, error) {
	shift, ok := s.m.shifts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := shift
	return &out, nil
}

func (s memShiftStore) GetAll() ([]models.Shift, error) {
	out := make([]models.Shift, 0, len(s.m.shifts))
	for _, sh := range s.m.shifts {
		out = append(out, sh)
	}
	s.m.sortShifts(out)
	return out, nil
}

func (s memShiftStore) Delete(id uuid.UUID) error {
	if _, ok := s.m.shifts[id]; !ok {
		return models.ErrNotFound
	}
	for oid, o := range s.m.overrides {
		if o.ShiftID == id {
			delete(s.m.overrides, oid)
		}
	}
	delete(s.m.shifts, id)
	return nil
}

func (s memShiftStore) GetByDate(date string) ([]models.Shift, error) {
	var out []models.Shift
	for _, sh := range s.m.shifts {
		if sh.Date == date {
			out = append(out, sh)
		}
	}
	s.m.sortShifts(out)
	return out, nil
}

func (s memShiftStore) GetByUser(userID uuid.UUID) ([]models.Shift, error) {
	var out []models.Shift
	for _, sh := range s.m.shifts {
		if sh.UserID == userID {
			out = append(out, sh)
		}
	}
	s.m.sortShifts(out)
	return out, nil
}

func (s memShiftStore) GetByUserAndDate(userID uuid.UUID, date string) ([]models.Shift, error) {
	var out []models.Shift
	for _, sh := range s.m.shifts {
		if sh.UserID == userID && sh.Date == date {
			out = append(out, sh)
		}
	}
	s.m.sortShifts(out)
	return out, nil
}

func (s memShiftStore) Update(id uuid.UUID, fields map[string]any) (*models.Shift, error) {
	shift, ok := s.m.shifts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "user_id":
			shift.UserID = v.(uuid.UUID)
		case "date":
			shift.Date = v.(string)
		case "start_time":
			shift.StartTime = v.(interval.TimeOfDay)
		case "end_time":
			shift.EndTime = v.(interval.TimeOfDay)
		case "note":
			shift.Note = v.(string)
		case "status":
			shift.Status = v.(models.ShiftStatus)
		}
	}
	s.m.shifts[id] = shift
	out := shift
	return &out, nil
}

func (s memShiftStore) AddSlot(slot *models.ShiftSlot) error {
	s.m.slots[slot.ID] = *slot
	s.m.track(slot.ID)
	return nil
}

func (s memShiftStore) GetSlots() ([]models.ShiftSlot, error) {
	out := make([]models.ShiftSlot, 0, len(s.m.slots))
	for _, sl := range s.m.slots {
		out = append(out, sl)
	}
	s.m.sortSlots(out)
	return out, nil
}

func (s memShiftStore) GetSlotsByOrg(orgID uuid.UUID) ([]models.ShiftSlot, error) {
	var out []models.ShiftSlot
	for _, sl := range s.m.slots {
		if sl.OrganizationID == orgID {
			out = append(out, sl)
		}
	}
	s.m.sortSlots(out)
	return out, nil
}

func (s memShiftStore) GetSlotByID(id uuid.UUID) (*models.ShiftSlot, error) {
	sl, ok := s.m.slots[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := sl
	return &out, nil
}

func (s memShiftStore) UpdateSlot(id uuid.UUID, fields map[string]any) (*models.ShiftSlot, error) {
	sl, ok := s.m.slots[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			sl.Name = v.(string)
		case "description":
			sl.Description = v.(string)
		case "start_time":
			sl.StartTime = v.(interval.TimeOfDay)
		case "end_time":
			sl.EndTime = v.(interval.TimeOfDay)
		case "expected_workers":
			sl.ExpectedWorkers = v.(int)
		case "is_active":
			sl.IsActive = v.(bool)
		}
	}
	now := time.Now()
	sl.UpdatedAt = &now
	s.m.slots[id] = sl
	out := sl
	return &out, nil
}

func (s memShiftStore) DeleteSlot(id uuid.UUID) error {
	if _, ok := s.m.slots[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.m.slots, id)
	return nil
}

func (m *Memory) sortShifts(shifts []models.Shift) {
	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		if shifts[i].StartTime != shifts[j].StartTime {
			return shifts[i].StartTime < shifts[j].StartTime
		}
		return m.ord[shifts[i].ID] < m.ord[shifts[j].ID]
	})
}

func (m *Memory) sortSlots(slots []models.ShiftSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return m.ord[slots[i].ID] < m.ord[slots[j].ID]
	})
}

type memAvailabilityStore struct{ m *Memory }

func (s memAvailabilityStore) Add(a *models.Availability) error {
	s.m.availabilities[a.ID] = *a
	s.m.track(a.ID)
	return nil
}

func (s memAvailabilityStore) Update(id uuid.UUID, fields map[string]any) (*models.Availability, error) {
	a, ok := s.m.availabilities[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	for k, v := range fields {
		if k == "note" {
			a.Note = v.(string)
		}
	}
	s.m.availabilities[id] = a
	out := a
	return &out, nil
}

func (s memAvailabilityStore) Delete(id uuid.UUID) error {
	if _, ok := s.m.availabilities[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.m.availabilities, id)
	return nil
}

func (s memAvailabilityStore) GetByID(id uuid.UUID) (*models.Availability, error) {
	a, ok := s.m.availabilities[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := a
	return &out, nil
}

func (s memAvailabilityStore) GetByUser(userID uuid.UUID) ([]models.Availability, error) {
	var out []models.Availability
	for _, a := range s.m.availabilities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	s.m.sortAvailabilities(out)
	return out, nil
}

func (s memAvailabilityStore) GetByUserAndDate(userID uuid.UUID, date string) ([]models.Availability, error) {
	var out []models.Availability
	for _, a := range s.m.availabilities {
		if a.UserID == userID && a.Date == date {
			out = append(out, a)
		}
	}
	s.m.sortAvailabilities(out)
	return out, nil
}

func (s memAvailabilityStore) GetByDate(date string) ([]models.Availability, error) {
	var out []models.Availability
	for _, a := range s.m.availabilities {
		if a.Date == date {
			out = append(out, a)
		}
	}
	s.m.sortAvailabilities(out)
	return out, nil
}

func (s memAvailabilityStore) GetAll() ([]models.Availability, error) {
	out := make([]models.Availability, 0, len(s.m.availabilities))
	for _, a := range s.m.availabilities {
		out = append(out, a)
	}
	s.m.sortAvailabilities(out)
	return out, nil
}

func (m *Memory) sortAvailabilities(out []models.Availability) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return m.ord[out[i].ID] < m.ord[out[j].ID]
	})
}

type memOverrideStore struct{ m *Memory }

func (s memOverrideStore) Add(o *models.Override) error {
	s.m.overrides[o.ID] = *o
	s.m.track(o.ID)
	return nil
}

func (s memOverrideStore) GetByID(id uuid.UUID) (*models.Override, error) {
	o, ok := s.m.overrides[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := o
	return &out, nil
}

func (s memOverrideStore) GetAll() ([]models.Override, error) {
	out := make([]models.Override, 0, len(s.m.overrides))
	for _, o := range s.m.overrides {
		out = append(out, o)
	}
	s.m.sortOverrides(out)
	return out, nil
}

func (s memOverrideStore) GetOpen() ([]models.Override, error) {
	var out []models.Override
	for _, o := range s.m.overrides {
		if !o.IsTaken {
			out = append(out, o)
		}
	}
	s.m.sortOverrides(out)
	return out, nil
}

func (s memOverrideStore) GetByShift(shiftID uuid.UUID) ([]models.Override, error) {
	var out []models.Override
	for _, o := range s.m.overrides {
		if o.ShiftID == shiftID {
			out = append(out, o)
		}
	}
	s.m.sortOverrides(out)
	return out, nil
}

func (s memOverrideStore) Update(id uuid.UUID, fields map[string]any) (*models.Override, error) {
	o, ok := s.m.overrides[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "start_time":
			o.StartTime = v.(interval.TimeOfDay)
		case "end_time":
			o.EndTime = v.(interval.TimeOfDay)
		}
	}
	s.m.overrides[id] = o
	out := o
	return &out, nil
}

func (s memOverrideStore) MarkTaken(id uuid.UUID, takenBy uuid.UUID, start, end interval.TimeOfDay, at time.Time) (bool, error) {
	o, ok := s.m.overrides[id]
	if !ok || o.IsTaken {
		return false, nil
	}
	o.IsTaken = true
	o.TakenByID = &takenBy
	o.TakenAt = &at
	o.StartTime = start
	o.EndTime = end
	s.m.overrides[id] = o
	return true, nil
}

func (m *Memory) sortOverrides(out []models.Override) {
	sort.Slice(out, func(i, j int) bool {
		return m.ord[out[i].ID] < m.ord[out[j].ID]
	})
}

type memUserStore struct{ m *Memory }

func (s memUserStore) Add(u *models.User) error {
	s.m.users[u.ID] = *u
	s.m.track(u.ID)
	return nil
}

func (s memUserStore) GetByID(id uuid.UUID) (*models.User, error) {
	u, ok := s.m.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := u
	return &out, nil
}

func (s memUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range s.m.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s memUserStore) GetByOrg(orgID uuid.UUID) ([]models.User, error) {
	var out []models.User
	for _, u := range s.m.users {
		if u.OrganizationID == orgID {
			out = append(out, u)
		}
	}
	s.m.sortUsers(out)
	return out, nil
}

func (s memUserStore) GetByRole(orgID uuid.UUID, role string) ([]models.User, error) {
	var out []models.User
	for _, u := range s.m.users {
		if u.Role != role {
			continue
		}
		if orgID != uuid.Nil && u.OrganizationID != orgID {
			continue
		}
		out = append(out, u)
	}
	s.m.sortUsers(out)
	return out, nil
}

func (s memUserStore) Delete(id uuid.UUID) error {
	if _, ok := s.m.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.m.users, id)
	return nil
}

func (m *Memory) sortUsers(out []models.User) {
	sort.Slice(out, func(i, j int) bool {
		return m.ord[out[i].ID] < m.ord[out[j].ID]
	})
}

type memOrgStore struct{ m *Memory }

func (s memOrgStore) Add(org *models.Organization) error {
	s.m.orgs[org.ID] = *org
	s.m.track(org.ID)
	return nil
}

func (s memOrgStore) GetByID(id uuid.UUID) (*models.Organization, error) {
	org, ok := s.m.orgs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := org
	return &out, nil
}

func (s memOrgStore) GetByCode(code string) (*models.Organization, error) {
	for _, org := range s.m.orgs {
		if org.OrgCode == code {
			out := org
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}
