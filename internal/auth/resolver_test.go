package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ack-hub/internal/directory"
	"github.com/spec-kit/ack-hub/internal/domain"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

func TestResolveUnknownEmails(t *testing.T) {
	resolver := NewResolver(directory.Default(""))

	for _, email := range []string{
		"",
		"   ",
		"nobody@domain.com",
		"ahmed.khaled@other.com",
		"supervisorZ@domain.com",
		"ahmed@domain.com",
	} {
		t.Run(email, func(t *testing.T) {
			identity, err := resolver.Resolve(email)
			require.Error(t, err)
			assert.Nil(t, identity)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
		})
	}
}

func TestResolveRoles(t *testing.T) {
	resolver := NewResolver(directory.Default(""))

	tests := []struct {
		name       string
		email      string
		role       domain.Role
		unit       string
		display    string
		supervisor string
	}{
		{name: "admin", email: "amer.alsomali@domain.com", role: domain.RoleAdmin, display: "Amer Alsomali"},
		{name: "second admin", email: " admin2@domain.com ", role: domain.RoleAdmin, display: "Admin2"},
		{name: "supervisor first row wins", email: "supervisorA@domain.com", role: domain.RoleSupervisor, unit: "YSOD Unit #1", display: "SupervisorA"},
		{name: "employee", email: "sara.ahmed@domain.com", role: domain.RoleEmployee, unit: "YSOD Unit #4", display: "Sara Ahmed", supervisor: "supervisorB@domain.com"},
		{name: "employee case insensitive", email: "Omar.Khalil@Domain.com", role: domain.RoleEmployee, unit: "YST Unit & Day Concept", display: "Omar Khalil", supervisor: "supervisorC@domain.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := resolver.Resolve(tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.role, identity.Role)
			assert.Equal(t, tt.unit, identity.Unit)
			assert.Equal(t, tt.display, identity.DisplayName)
			assert.Equal(t, tt.supervisor, identity.SupervisorEmail)
		})
	}
}

func TestResolveAdminPrecedesOtherTables(t *testing.T) {
	dir := directory.New(
		[]domain.AdminEntry{{Email: "boss@domain.com"}, {Email: "ahmed.khaled@domain.com"}},
		[]domain.EmployeeEntry{
			{EmployeeName: "Ahmed Khaled", SupervisorEmail: "boss@domain.com", Unit: "Unit A"},
		},
		"domain.com",
	)
	resolver := NewResolver(dir)

	for _, admin := range dir.Admins() {
		identity, err := resolver.Resolve(admin.Email)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, identity.Role, admin.Email)
		assert.Empty(t, identity.Unit)
	}
}

func TestSupervisedUnits(t *testing.T) {
	resolver := NewResolver(directory.Default(""))

	assert.Equal(t, []string{"YSOD Unit #1", "YSOD Unit #3"}, resolver.SupervisedUnits("supervisorA@domain.com"))
	assert.Equal(t, []string{"YST Unit & Day Concept"}, resolver.SupervisedUnits("supervisorC@domain.com"))
	assert.Empty(t, resolver.SupervisedUnits("amer.alsomali@domain.com"))
}
