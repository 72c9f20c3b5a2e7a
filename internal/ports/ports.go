package ports

import (
	"context"

	"finance/internal/core"
)

// Ports for outbound adapters.
type (
	// TransactionStore is the persistence boundary for transactions.
	TransactionStore interface {
		// ListByUser returns the user's transactions, newest first.
		// An unknown user yields an empty, non-nil slice.
		ListByUser(ctx context.Context, userID string) ([]core.Transaction, error)
		// Create inserts a row and returns it with id and created_at set.
		Create(ctx context.Context, nt core.NewTransaction) (core.Transaction, error)
		// DeleteByID removes a row and returns what was deleted.
		// It returns core.ErrNotFound when no row matches.
		DeleteByID(ctx context.Context, id int64) (core.Transaction, error)
		// SumsByUser aggregates the user's amounts. No rows means zeros.
		SumsByUser(ctx context.Context, userID string) (core.Summary, error)
	}

	// HealthChecker reports whether a dependency is reachable.
	HealthChecker interface {
		Ping(ctx context.Context) error
	}

	// EventPublisher announces transaction changes to other processes.
	EventPublisher interface {
		PublishTransactionEvent(ctx context.Context, event core.EventType, tx core.Transaction) error
	}

	// TransactionMirror keeps an external copy of transactions in sync.
	TransactionMirror interface {
		AppendTransaction(ctx context.Context, tx core.Transaction) error
		DeleteTransaction(ctx context.Context, id int64) error
	}
)
