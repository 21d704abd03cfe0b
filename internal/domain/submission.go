package domain

import "time"

// SubmittedAtDateLayout is the display format captured at submission time.
const SubmittedAtDateLayout = "1/2/2006"

// Submission is an immutable acknowledgment record.
type Submission struct {
	ID                   string
	AcknowledgmentTypeID string
	TypeTitle            string
	EmployeeName         string
	EmployeeEmail        string
	RequestNumber        string
	SubmittedAtDate      string
	SubmittedAt          time.Time
	Acknowledged         bool
	Unit                 string
	SupervisorEmail      string
}

// SubmissionStats summarizes the submissions visible to one identity.
type SubmissionStats struct {
	Total        int
	ByUnit       map[string]int
	ByType       map[string]int
	UnitsManaged *int
}
