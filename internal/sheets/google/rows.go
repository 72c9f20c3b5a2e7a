package google

import (
	"fmt"
	"strings"
	"time"

	"finance/internal/core"
)

// Column layout A:F of the mirror tab.
var columns = []string{"ID", "Created At", "User ID", "Title", "Amount", "Category"}

func headerRow() []interface{} {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	return row
}

func transactionRow(tx core.Transaction) []interface{} {
	return []interface{}{
		idString(tx.ID),
		tx.CreatedAt.UTC().Format(time.RFC3339),
		tx.UserID,
		tx.Title,
		tx.Amount.String(),
		tx.Category,
	}
}

// findRowIndex returns the zero-based row whose first cell equals id, or -1.
// Header and blank rows never match.
func findRowIndex(values [][]interface{}, id int64) int {
	want := idString(id)
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == want {
			return i
		}
	}
	return -1
}
