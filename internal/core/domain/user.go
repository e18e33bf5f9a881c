package domain

import (
	"strings"
	"time"
)

// User represents an employee record held by the external store.
// Identity is the literal (first name, last name, employee ID) triple.
type User struct {
	UserID     string    `json:"id"` // Primary Key (UUID in the store)
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	EmployeeID string    `json:"employeeId"`
	IsAdmin    bool      `json:"isAdmin"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DisplayName returns "First Last".
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsDirector reports whether the user gets the director view: either the
// admin flag is set or the employee ID starts with the reserved prefix.
func (u User) IsDirector(reservedPrefix string) bool {
	if u.IsAdmin {
		return true
	}
	return reservedPrefix != "" && strings.HasPrefix(u.EmployeeID, reservedPrefix)
}

// Identity is the asserted login triple.
type Identity struct {
	FirstName  string `form:"firstName" json:"firstName" validate:"required"`
	LastName   string `form:"lastName" json:"lastName" validate:"required"`
	EmployeeID string `form:"employeeId" json:"employeeId" validate:"required"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (i Identity) Trimmed() Identity {
	return Identity{
		FirstName:  strings.TrimSpace(i.FirstName),
		LastName:   strings.TrimSpace(i.LastName),
		EmployeeID: strings.TrimSpace(i.EmployeeID),
	}
}

// Matches reports an exact, case-sensitive match on all three fields.
func (i Identity) Matches(u User) bool {
	return u.FirstName == i.FirstName && u.LastName == i.LastName && u.EmployeeID == i.EmployeeID
}
