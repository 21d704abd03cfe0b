package auth

import (
	"strings"

	"github.com/spec-kit/ack-hub/internal/domain"
)

// CanManageCatalog reports whether the identity may create, update or delete
// acknowledgment types.
func CanManageCatalog(identity *domain.Identity) bool {
	return identity != nil && identity.Role == domain.RoleAdmin
}

// CanViewSubmission applies the role visibility rules to a single record.
func CanViewSubmission(identity *domain.Identity, sub domain.Submission) bool {
	if identity == nil {
		return false
	}
	switch identity.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleSupervisor:
		return identity.Unit != "" && sub.Unit == identity.Unit
	case domain.RoleEmployee:
		if sub.EmployeeEmail != "" {
			return strings.EqualFold(sub.EmployeeEmail, identity.Email)
		}
		return sub.EmployeeName == identity.DisplayName
	}
	return false
}
