package domain

import "time"

// FormState enumerates the stored states of a form draft. Selecting a type
// opens the form directly; an accepted form is deleted, which returns the
// caller to the idle state.
type FormState string

const (
	FormStateFormOpen   FormState = "form_open"
	FormStateValidating FormState = "validating"
)

// Form field names used in validation details.
const (
	FieldRequestNumber = "request_number"
	FieldEmployeeName  = "employee_name"
	FieldAcknowledged  = "acknowledged"
)

// Draft holds the in-progress form for one selected acknowledgment type.
type Draft struct {
	ID            string            `json:"id"`
	OwnerEmail    string            `json:"owner_email"`
	TypeID        string            `json:"type_id"`
	TypeTitle     string            `json:"type_title"`
	RequestNumber string            `json:"request_number"`
	EmployeeName  string            `json:"employee_name"`
	NameLocked    bool              `json:"name_locked"`
	Acknowledged  bool              `json:"acknowledged"`
	State         FormState         `json:"state"`
	FieldErrors   map[string]string `json:"field_errors,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
