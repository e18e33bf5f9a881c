package models

import "time"

// User is a row of the store's users table.
type User struct {
	UserID     string    `db:"id"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	EmployeeID string    `db:"employee_id"`
	IsAdmin    bool      `db:"is_admin"`
	CreatedAt  time.Time `db:"created_at"`
}
