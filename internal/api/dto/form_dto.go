package dto

import (
	"time"

	"github.com/spec-kit/ack-hub/internal/domain"
)

// OpenFormRequest selects an acknowledgment type.
type OpenFormRequest struct {
	TypeID string `json:"type_id"`
}

// UpdateFormRequest edits an open form. Omitted fields are left unchanged.
type UpdateFormRequest struct {
	RequestNumber *string `json:"request_number"`
	EmployeeName  *string `json:"employee_name"`
	Acknowledged  *bool   `json:"acknowledged"`
}

// FormResponse represents a form draft.
type FormResponse struct {
	ID            string            `json:"id"`
	TypeID        string            `json:"type_id"`
	TypeTitle     string            `json:"type_title"`
	RequestNumber string            `json:"request_number"`
	EmployeeName  string            `json:"employee_name"`
	NameLocked    bool              `json:"name_locked"`
	Acknowledged  bool              `json:"acknowledged"`
	State         domain.FormState  `json:"state"`
	FieldErrors   map[string]string `json:"field_errors,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
