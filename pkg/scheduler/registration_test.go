package scheduler

import (
	"testing"

	"github.com/arnavshah/shiftdesk-api-go/pkg/auth"
	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterOrganization(t *testing.T) {
	env := newTestEnv()

	result, err := env.registration.RegisterOrganization(OrgRegistration{
		OrganizationName: "Corner Cafe",
		FullName:         "Dana Smith",
		Email:            "dana@example.com",
		Password:         "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "Corner Cafe", result.Organization.Name)
	assert.Len(t, result.Organization.OrgCode, 6)
	assert.Equal(t, models.RoleManager, result.User.Role)
	assert.Equal(t, result.Organization.ID, result.User.OrganizationID)
	assert.True(t, auth.CheckPasswordHash("correct horse", result.User.PasswordHash))

	// Default slot templates come with the organization.
	slots, err := env.shifts.GetSlotsByOrg(result.Organization.ID)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "Morning", slots[0].Name)
	assert.Equal(t, tod("06:00"), slots[0].StartTime)
	assert.Equal(t, tod("13:00"), slots[0].EndTime)
	assert.Equal(t, "Afternoon", slots[1].Name)
	assert.Equal(t, tod("13:00"), slots[1].StartTime)
	assert.Equal(t, tod("20:00"), slots[1].EndTime)
}

func TestRegisterOrganizationDuplicateEmail(t *testing.T) {
	env := newTestEnv()

	_, err := env.registration.RegisterOrganization(OrgRegistration{
		OrganizationName: "Corner Cafe",
		FullName:         "Dana Smith",
		Email:            "dana@example.com",
		Password:         "correct horse",
	})
	require.NoError(t, err)

	_, err = env.registration.RegisterOrganization(OrgRegistration{
		OrganizationName: "Other Shop",
		FullName:         "Dana Smith",
		Email:            "dana@example.com",
		Password:         "correct horse",
	})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestJoinOrganization(t *testing.T) {
	env := newTestEnv()

	reg, err := env.registration.RegisterOrganization(OrgRegistration{
		OrganizationName: "Corner Cafe",
		FullName:         "Dana Smith",
		Email:            "dana@example.com",
		Password:         "correct horse",
	})
	require.NoError(t, err)

	joined, err := env.registration.JoinOrganization(OrgJoin{
		OrgCode:  reg.Organization.OrgCode,
		FullName: "Eli Park",
		Email:    "eli@example.com",
		Password: "battery staple",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleWorker, joined.User.Role)
	assert.Equal(t, reg.Organization.ID, joined.User.OrganizationID)

	// Bad code.
	_, err = env.registration.JoinOrganization(OrgJoin{
		OrgCode:  "000000",
		FullName: "Nobody",
		Email:    "nobody@example.com",
		Password: "battery staple",
	})
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Duplicate email across the platform.
	_, err = env.registration.JoinOrganization(OrgJoin{
		OrgCode:  reg.Organization.OrgCode,
		FullName: "Eli Again",
		Email:    "eli@example.com",
		Password: "battery staple",
	})
	assert.ErrorIs(t, err, models.ErrConflict)
}
