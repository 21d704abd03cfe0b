package auth

import (
	"strings"

	"github.com/spec-kit/ack-hub/internal/directory"
	"github.com/spec-kit/ack-hub/internal/domain"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

// Resolver maps an email address to an Identity using the directory tables.
type Resolver struct {
	dir *directory.Directory
}

// NewResolver constructs a resolver over dir.
func NewResolver(dir *directory.Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve returns the identity for email. Admins win over supervisors, and
// supervisors over employees. Unknown addresses yield a NOT_FOUND error.
func (r *Resolver) Resolve(email string) (*domain.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewNotFound("identity", nil)
	}

	for _, admin := range r.dir.Admins() {
		if admin.Email == email {
			return &domain.Identity{
				Email:       admin.Email,
				DisplayName: directory.DisplayNameFromEmail(admin.Email),
				Role:        domain.RoleAdmin,
			}, nil
		}
	}

	employees := r.dir.Employees()
	for _, row := range employees {
		if row.SupervisorEmail == email {
			return &domain.Identity{
				Email:       row.SupervisorEmail,
				DisplayName: directory.DisplayNameFromEmail(row.SupervisorEmail),
				Role:        domain.RoleSupervisor,
				Unit:        row.Unit,
			}, nil
		}
	}

	for _, row := range employees {
		derived := r.dir.EmployeeEmail(row.EmployeeName)
		if strings.EqualFold(derived, email) {
			return &domain.Identity{
				Email:           derived,
				DisplayName:     row.EmployeeName,
				Role:            domain.RoleEmployee,
				Unit:            row.Unit,
				SupervisorEmail: row.SupervisorEmail,
			}, nil
		}
	}

	return nil, apperrors.NewNotFound("identity", map[string]any{"email": email})
}

// SupervisedUnits lists every distinct unit the supervisor appears against,
// in table order.
func (r *Resolver) SupervisedUnits(email string) []string {
	email = strings.TrimSpace(email)
	seen := make(map[string]struct{})
	var units []string
	for _, row := range r.dir.Employees() {
		if row.SupervisorEmail != email {
			continue
		}
		if _, ok := seen[row.Unit]; ok {
			continue
		}
		seen[row.Unit] = struct{}{}
		units = append(units, row.Unit)
	}
	return units
}
