package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EventType names a change to the transactions table.
type EventType string

const (
	EventTransactionCreated EventType = "transaction.created"
	EventTransactionDeleted EventType = "transaction.deleted"
)

type (
	// Transaction is a single signed monetary entry owned by one user.
	// Negative amounts are expenses, positive amounts are income.
	Transaction struct {
		ID        int64     `json:"id"`
		UserID    string    `json:"user_id"`
		Title     string    `json:"title"`
		Amount    Money     `json:"amount"`
		Category  string    `json:"category"`
		CreatedAt time.Time `json:"created_at"`
	}

	// NewTransaction holds validated fields for an insert. The store assigns
	// ID and CreatedAt.
	NewTransaction struct {
		UserID   string
		Title    string
		Amount   Money
		Category string
	}

	// CreateInput is the raw create request as received over the wire.
	// Amount is a pointer so an absent or null amount can be told apart.
	CreateInput struct {
		UserID   string `json:"user_id"`
		Title    string `json:"title"`
		Amount   *Money `json:"amount"`
		Category string `json:"category"`
	}
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("transaction not found")

	ErrMissingUserID   = fmt.Errorf("%w: user_id is required", ErrValidation)
	ErrMissingTitle    = fmt.Errorf("%w: title is required", ErrValidation)
	ErrMissingAmount   = fmt.Errorf("%w: amount is required", ErrValidation)
	ErrZeroAmount      = fmt.Errorf("%w: amount must not be zero", ErrValidation)
	ErrMissingCategory = fmt.Errorf("%w: category is required", ErrValidation)
	ErrInvalidAmount   = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidID       = fmt.Errorf("%w: invalid transaction id", ErrValidation)
)

// Validate applies the create rules: every field must be present and
// truthy. A zero amount counts as missing.
func (in CreateInput) Validate() (NewTransaction, error) {
	nt := NewTransaction{
		UserID:   strings.TrimSpace(in.UserID),
		Title:    strings.TrimSpace(in.Title),
		Category: strings.TrimSpace(in.Category),
	}
	if nt.UserID == "" {
		return NewTransaction{}, ErrMissingUserID
	}
	if nt.Title == "" {
		return NewTransaction{}, ErrMissingTitle
	}
	if in.Amount == nil {
		return NewTransaction{}, ErrMissingAmount
	}
	if in.Amount.IsZero() {
		return NewTransaction{}, ErrZeroAmount
	}
	if nt.Category == "" {
		return NewTransaction{}, ErrMissingCategory
	}
	nt.Amount = *in.Amount
	return nt, nil
}

// IsExpense reports whether the transaction takes money out.
func (t Transaction) IsExpense() bool {
	return t.Amount.Cents < 0
}

// ParseID parses a transaction id from a path segment. Only base-10
// integers are accepted.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
