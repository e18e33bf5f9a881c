package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a row of the store's expenses table.
// Pointer fields are nullable columns.
type Expense struct {
	ExpenseID     string          `db:"id"`
	UserID        *string         `db:"user_id"`
	Merchant      *string         `db:"merchant"`
	Category      *string         `db:"category"`
	Amount        decimal.Decimal `db:"amount"`
	Currency      *string         `db:"currency"`
	Status        *string         `db:"status"`
	StatusReason  *string         `db:"status_reason"`
	ReceiptDate   *time.Time      `db:"receipt_date"`
	ReceiptNumber *string         `db:"receipt_number"`
	Description   *string         `db:"description"`
	ImageURL      *string         `db:"image_url"`
	CreatedAt     time.Time       `db:"created_at"`

	// Populated by joins with users.
	SubmitterFirstName *string `db:"first_name"`
	SubmitterLastName  *string `db:"last_name"`
}
