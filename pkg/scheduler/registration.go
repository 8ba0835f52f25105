package scheduler

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/arnavshah/shiftdesk-api-go/pkg/auth"
	"github.com/arnavshah/shiftdesk-api-go/pkg/interval"
	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/arnavshah/shiftdesk-api-go/pkg/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrgRegistration is the input for creating an organization together with its
// first manager account.
type OrgRegistration struct {
	OrganizationName string `json:"organization_name" binding:"required"`
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8"`
}

// OrgJoin is the input for joining an existing organization by code.
type OrgJoin struct {
	OrgCode  string `json:"org_code" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RegistrationResult bundles the created organization and account.
type RegistrationResult struct {
	Organization *models.Organization `json:"organization"`
	User         *models.User         `json:"user"`
}

// RegistrationService creates organizations and member accounts.
type RegistrationService struct {
	stores store.Stores
	tx     store.TxRunner
	logger *zap.Logger
	rng    *rand.Rand
	now    func() time.Time
}

// NewRegistrationService wires a registration service.
func NewRegistrationService(stores store.Stores, tx store.TxRunner, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		stores: stores,
		tx:     tx,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// RegisterOrganization creates an organization with a fresh join code, its
// first manager account, and the two default slot templates the calculator
// plans against.
func (s *RegistrationService) RegisterOrganization(req OrgRegistration) (*RegistrationResult, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var result *RegistrationResult
	err = s.tx.InTransaction(func(st store.Stores) error {
		if _, err := st.Users.GetByEmail(req.Email); err == nil {
			return fmt.Errorf("%w: email already registered", models.ErrConflict)
		} else if !errors.Is(err, models.ErrNotFound) {
			return err
		}

		code, err := s.uniqueOrgCode(st)
		if err != nil {
			return err
		}

		now := s.now()
		org := &models.Organization{
			ID:        uuid.New(),
			Name:      req.OrganizationName,
			OrgCode:   code,
			CreatedAt: now,
		}
		if err := st.Organizations.Add(org); err != nil {
			return err
		}

		user := &models.User{
			ID:             uuid.New(),
			FullName:       req.FullName,
			Email:          req.Email,
			PasswordHash:   hash,
			Role:           models.RoleManager,
			IsActive:       true,
			OrganizationID: org.ID,
			CreatedAt:      now,
		}
		if err := st.Users.Add(user); err != nil {
			return err
		}

		for _, tpl := range defaultSlots(org.ID, now) {
			slot := tpl
			if err := st.Shifts.AddSlot(&slot); err != nil {
				return err
			}
		}

		result = &RegistrationResult{Organization: org, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("organization registered",
		zap.String("organization_id", result.Organization.ID.String()),
		zap.String("org_code", result.Organization.OrgCode),
	)
	return result, nil
}

// JoinOrganization creates a worker account in the organization that owns the
// given join code.
func (s *RegistrationService) JoinOrganization(req OrgJoin) (*RegistrationResult, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var result *RegistrationResult
	err = s.tx.InTransaction(func(st store.Stores) error {
		org, err := st.Organizations.GetByCode(req.OrgCode)
		if err != nil {
			return err
		}

		if _, err := st.Users.GetByEmail(req.Email); err == nil {
			return fmt.Errorf("%w: email already registered", models.ErrConflict)
		} else if !errors.Is(err, models.ErrNotFound) {
			return err
		}

		user := &models.User{
			ID:             uuid.New(),
			FullName:       req.FullName,
			Email:          req.Email,
			PasswordHash:   hash,
			Role:           models.RoleWorker,
			IsActive:       true,
			OrganizationID: org.ID,
			CreatedAt:      s.now(),
		}
		if err := st.Users.Add(user); err != nil {
			return err
		}

		result = &RegistrationResult{Organization: org, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user joined organization",
		zap.String("user_id", result.User.ID.String()),
		zap.String("organization_id", result.Organization.ID.String()),
	)
	return result, nil
}

// uniqueOrgCode draws 6-digit codes until one is free.
func (s *RegistrationService) uniqueOrgCode(st store.Stores) (string, error) {
	for i := 0; i < 100; i++ {
		code := fmt.Sprintf("%06d", s.rng.Intn(1000000))
		_, err := st.Organizations.GetByCode(code)
		if errors.Is(err, models.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not generate a unique organization code")
}

func defaultSlots(orgID uuid.UUID, now time.Time) []models.ShiftSlot {
	return []models.ShiftSlot{
		{
			ID:              uuid.New(),
			OrganizationID:  orgID,
			Name:            "Morning",
			StartTime:       interval.MustTimeOfDay("06:00"),
			EndTime:         interval.MustTimeOfDay("13:00"),
			ExpectedWorkers: 1,
			IsActive:        true,
			CreatedAt:       now,
		},
		{
			ID:              uuid.New(),
			OrganizationID:  orgID,
			Name:            "Afternoon",
			StartTime:       interval.MustTimeOfDay("13:00"),
			EndTime:         interval.MustTimeOfDay("20:00"),
			ExpectedWorkers: 1,
			IsActive:        true,
			CreatedAt:       now,
		},
	}
}
