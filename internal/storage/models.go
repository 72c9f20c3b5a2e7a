package storage

import "finance/internal/core"

// Transaction mirrors a row of the transactions table.
type Transaction struct {
	ID          int64
	UserID      string
	Title       string
	AmountCents int64
	Category    string
	CreatedAt   Timestamp
}

func (t Transaction) toCore() core.Transaction {
	return core.Transaction{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Amount:    core.Money{Cents: t.AmountCents},
		Category:  t.Category,
		CreatedAt: t.CreatedAt.Time,
	}
}
