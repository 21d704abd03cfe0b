package dto

import (
	"time"

	"github.com/spec-kit/ack-hub/internal/domain"
)

// SubmissionResponse represents a stored acknowledgment.
type SubmissionResponse struct {
	ID                   string    `json:"id"`
	AcknowledgmentTypeID string    `json:"acknowledgment_type_id"`
	TypeTitle            string    `json:"type_title"`
	EmployeeName         string    `json:"employee_name"`
	EmployeeEmail        string    `json:"employee_email,omitempty"`
	RequestNumber        string    `json:"request_number"`
	Date                 string    `json:"date"`
	SubmittedAt          time.Time `json:"submitted_at"`
	Acknowledged         bool      `json:"acknowledged"`
	Unit                 string    `json:"unit,omitempty"`
	SupervisorEmail      string    `json:"supervisor_email,omitempty"`
}

// SubmissionDetailResponse adds the current type content to a submission.
type SubmissionDetailResponse struct {
	SubmissionResponse
	Content *domain.TypeContent `json:"content"`
}

// StatsResponse summarizes visible submissions.
type StatsResponse struct {
	Total        int            `json:"total"`
	ByUnit       map[string]int `json:"by_unit"`
	ByType       map[string]int `json:"by_type"`
	UnitsManaged *int           `json:"units_managed,omitempty"`
}
