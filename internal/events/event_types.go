package events

import (
	"time"

	"github.com/spec-kit/ack-hub/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSubmissionCreated EventType = "submission_created"
	EventTypeCreated       EventType = "acknowledgment_type_created"
	EventTypeUpdated       EventType = "acknowledgment_type_updated"
	EventTypeDeleted       EventType = "acknowledgment_type_deleted"
)

// Actor encapsulates actor metadata for an event. Email is empty for
// anonymous submissions.
type Actor struct {
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SubmissionCreatedPayload payload.
type SubmissionCreatedPayload struct {
	TypeID          string `json:"type_id"`
	TypeTitle       string `json:"type_title"`
	EmployeeName    string `json:"employee_name"`
	EmployeeEmail   string `json:"employee_email,omitempty"`
	RequestNumber   string `json:"request_number"`
	Unit            string `json:"unit,omitempty"`
	SupervisorEmail string `json:"supervisor_email,omitempty"`
}

// TypeChangedPayload payload for catalog mutations.
type TypeChangedPayload struct {
	Title string `json:"title,omitempty"`
}

// ActorFor builds the actor block for an identity, which may be nil.
func ActorFor(identity *domain.Identity) Actor {
	if identity == nil {
		return Actor{}
	}
	return Actor{Email: identity.Email, Role: identity.Role}
}
