package scheduler

import (
	"math/rand"
	"time"

	"github.com/arnavshah/shiftdesk-api-go/pkg/interval"
	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/arnavshah/shiftdesk-api-go/pkg/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// testEnv bundles services over a shared in-memory store with a frozen clock
// and a deterministic random source.
type testEnv struct {
	mem          *store.Memory
	stores       store.Stores
	now          time.Time
	shifts       *ShiftService
	overrides    *OverrideService
	avail        *AvailabilityService
	registration *RegistrationService
	users        *UserService
}

func newTestEnv() *testEnv {
	mem := store.NewMemory()
	stores := mem.Stores()
	logger := zap.NewNop()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	shifts := NewShiftService(stores, mem, logger)
	shifts.now = clock
	shifts.rng = rand.New(rand.NewSource(1))

	overrides := NewOverrideService(stores, mem, logger)
	overrides.now = clock

	avail := NewAvailabilityService(stores, mem, logger)
	avail.now = clock

	registration := NewRegistrationService(stores, mem, logger)
	registration.now = clock
	registration.rng = rand.New(rand.NewSource(1))

	return &testEnv{
		mem:          mem,
		stores:       stores,
		now:          now,
		shifts:       shifts,
		overrides:    overrides,
		avail:        avail,
		registration: registration,
		users:        NewUserService(stores, logger),
	}
}

func (e *testEnv) addWorker(name string, orgID uuid.UUID) uuid.UUID {
	id := uuid.New()
	e.stores.Users.Add(&models.User{
		ID:             id,
		FullName:       name,
		Email:          name + "@example.com",
		Role:           models.RoleWorker,
		IsActive:       true,
		OrganizationID: orgID,
		CreatedAt:      e.now,
	})
	return id
}

func tod(s string) interval.TimeOfDay {
	return interval.MustTimeOfDay(s)
}
