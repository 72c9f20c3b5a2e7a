package core

// Summary aggregates one user's transactions. Expense is the sum of the
// negative amounts, so Balance == Income + Expense.
type Summary struct {
	Balance Money `json:"balance"`
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
}

// Summarize recomputes a summary from scratch.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		s.Balance = s.Balance.Add(t.Amount)
		switch {
		case t.Amount.Cents > 0:
			s.Income = s.Income.Add(t.Amount)
		case t.Amount.Cents < 0:
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	return s
}
