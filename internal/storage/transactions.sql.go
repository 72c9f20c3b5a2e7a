package storage

import (
	"context"
)

const transactionColumns = `id, user_id, title, amount_cents, category, created_at`

const listTransactionsByUser = `SELECT ` + transactionColumns + `
FROM transactions
WHERE user_id = ?
ORDER BY created_at DESC, id DESC`

func (q *Queries) ListTransactionsByUser(ctx context.Context, userID string) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, rebind(q.dialect, listTransactionsByUser), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transaction{}
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Title,
			&i.AmountCents,
			&i.Category,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createTransaction = `INSERT INTO transactions (user_id, title, amount_cents, category)
VALUES (?, ?, ?, ?)
RETURNING ` + transactionColumns

type CreateTransactionParams struct {
	UserID      string
	Title       string
	AmountCents int64
	Category    string
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, rebind(q.dialect, createTransaction),
		arg.UserID,
		arg.Title,
		arg.AmountCents,
		arg.Category,
	)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Title,
		&i.AmountCents,
		&i.Category,
		&i.CreatedAt,
	)
	return i, err
}

const deleteTransaction = `DELETE FROM transactions
WHERE id = ?
RETURNING ` + transactionColumns

func (q *Queries) DeleteTransaction(ctx context.Context, id int64) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, rebind(q.dialect, deleteTransaction), id)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Title,
		&i.AmountCents,
		&i.Category,
		&i.CreatedAt,
	)
	return i, err
}

const getBalance = `SELECT COALESCE(SUM(amount_cents), 0) FROM transactions WHERE user_id = ?`

func (q *Queries) GetBalance(ctx context.Context, userID string) (int64, error) {
	row := q.db.QueryRowContext(ctx, rebind(q.dialect, getBalance), userID)
	var total int64
	err := row.Scan(&total)
	return total, err
}

const getIncome = `SELECT COALESCE(SUM(amount_cents), 0) FROM transactions WHERE user_id = ? AND amount_cents > 0`

func (q *Queries) GetIncome(ctx context.Context, userID string) (int64, error) {
	row := q.db.QueryRowContext(ctx, rebind(q.dialect, getIncome), userID)
	var total int64
	err := row.Scan(&total)
	return total, err
}

const getExpense = `SELECT COALESCE(SUM(amount_cents), 0) FROM transactions WHERE user_id = ? AND amount_cents < 0`

func (q *Queries) GetExpense(ctx context.Context, userID string) (int64, error) {
	row := q.db.QueryRowContext(ctx, rebind(q.dialect, getExpense), userID)
	var total int64
	err := row.Scan(&total)
	return total, err
}
