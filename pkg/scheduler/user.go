package scheduler

import (
	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/arnavshah/shiftdesk-api-go/pkg/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService reads and removes organization members. Account creation lives
// in RegistrationService.
type UserService struct {
	stores store.Stores
	logger *zap.Logger
}

// NewUserService wires a user service.
func NewUserService(stores store.Stores, logger *zap.Logger) *UserService {
	return &UserService{stores: stores, logger: logger}
}

// GetByID returns one user.
func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	return s.stores.Users.GetByID(id)
}

// ListByOrg returns an organization's members.
func (s *UserService) ListByOrg(orgID uuid.UUID) ([]models.User, error) {
	return s.stores.Users.GetByOrg(orgID)
}

// ListByRole returns an organization's members with the given role.
func (s *UserService) ListByRole(orgID uuid.UUID, role string) ([]models.User, error) {
	return s.stores.Users.GetByRole(orgID, role)
}

// Delete removes a member.
func (s *UserService) Delete(id uuid.UUID) error {
	if err := s.stores.Users.Delete(id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}
