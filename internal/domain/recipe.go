package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is a record owned by exactly one account. The owner reference is
// immutable after creation.
type Recipe struct {
	ID              int64
	AccountID       int64
	Title           string
	Slug            string
	Description     string
	DurationMinutes int
	Price           decimal.Decimal
	Link            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
