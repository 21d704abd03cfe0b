// Package directory holds the static reference tables the role resolver reads:
// the admin allowlist and the employee to supervisor/unit map.
package directory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spec-kit/ack-hub/internal/domain"
)

// DefaultEmailDomain is appended to derived employee addresses.
const DefaultEmailDomain = "domain.com"

var defaultAdmins = []domain.AdminEntry{
	{Email: "amer.alsomali@domain.com"},
	{Email: "admin2@domain.com"},
}

var defaultEmployees = []domain.EmployeeEntry{
	{EmployeeName: "Ahmed Khaled", SupervisorEmail: "supervisorA@domain.com", Unit: "YSOD Unit #1"},
	{EmployeeName: "Reem Abdullah", SupervisorEmail: "supervisorB@domain.com", Unit: "YSOD Unit #2"},
	{EmployeeName: "Mohammed Hassan", SupervisorEmail: "supervisorA@domain.com", Unit: "YSOD Unit #3"},
	{EmployeeName: "Sara Ahmed", SupervisorEmail: "supervisorB@domain.com", Unit: "YSOD Unit #4"},
	{EmployeeName: "Omar Khalil", SupervisorEmail: "supervisorC@domain.com", Unit: "YST Unit & Day Concept"},
	{EmployeeName: "Nour Ali", SupervisorEmail: "supervisorD@domain.com", Unit: "YSOD Unit #1"},
	{EmployeeName: "Khalid Omar", SupervisorEmail: "supervisorE@domain.com", Unit: "YSOD Unit #2"},
}

// Directory is an immutable pair of lookup tables.
type Directory struct {
	admins      []domain.AdminEntry
	employees   []domain.EmployeeEntry
	emailDomain string
}

// New builds a directory from explicit tables.
func New(admins []domain.AdminEntry, employees []domain.EmployeeEntry, emailDomain string) *Directory {
	emailDomain = strings.TrimPrefix(strings.TrimSpace(emailDomain), "@")
	if emailDomain == "" {
		emailDomain = DefaultEmailDomain
	}
	return &Directory{
		admins:      append([]domain.AdminEntry(nil), admins...),
		employees:   append([]domain.EmployeeEntry(nil), employees...),
		emailDomain: emailDomain,
	}
}

// Default returns the built-in tables.
func Default(emailDomain string) *Directory {
	return New(defaultAdmins, defaultEmployees, emailDomain)
}

// Admins returns the admin allowlist in declaration order.
func (d *Directory) Admins() []domain.AdminEntry {
	return append([]domain.AdminEntry(nil), d.admins...)
}

// Employees returns the employee rows in declaration order.
func (d *Directory) Employees() []domain.EmployeeEntry {
	return append([]domain.EmployeeEntry(nil), d.employees...)
}

// EmployeeEmail derives the login address of an employee from the display name.
func (d *Directory) EmployeeEmail(employeeName string) string {
	local := strings.Join(strings.Fields(strings.ToLower(employeeName)), ".")
	return local + "@" + d.emailDomain
}

// KnownEmails lists every address that resolves to an identity: admins, then
// supervisors, then employees, without duplicates.
func (d *Directory) KnownEmails() []string {
	seen := make(map[string]struct{})
	emails := make([]string, 0, len(d.admins)+2*len(d.employees))
	add := func(email string) {
		key := strings.ToLower(email)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		emails = append(emails, email)
	}
	for _, admin := range d.admins {
		add(admin.Email)
	}
	for _, row := range d.employees {
		add(row.SupervisorEmail)
	}
	for _, row := range d.employees {
		add(d.EmployeeEmail(row.EmployeeName))
	}
	return emails
}

// DisplayNameFromEmail turns "amer.alsomali@domain.com" into "Amer Alsomali".
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	words := strings.Fields(strings.ReplaceAll(local, ".", " "))
	return cases.Title(language.English, cases.NoLower).String(strings.Join(words, " "))
}
