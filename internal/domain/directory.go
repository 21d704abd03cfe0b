package domain

// AdminEntry is a row of the admin allowlist.
type AdminEntry struct {
	Email string
}

// EmployeeEntry maps an employee to a supervisor and a unit.
type EmployeeEntry struct {
	EmployeeName    string
	SupervisorEmail string
	Unit            string
}
