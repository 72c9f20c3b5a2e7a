package services

import (
	"context"
	"errors"
	"fmt"

	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/ports"
)

// TransactionService validates requests, runs them against the store and
// announces changes on the optional publisher.
type TransactionService struct {
	store     ports.TransactionStore
	publisher ports.EventPublisher
	logger    *applog.Logger
	events    *applog.StructuredLogger
}

// NewTransactionService wires a service. publisher may be nil, in which
// case events are skipped.
func NewTransactionService(store ports.TransactionStore, publisher ports.EventPublisher, logger *applog.Logger) *TransactionService {
	if logger == nil {
		logger = applog.NewDefault()
	}
	logger = logger.WithComponent(applog.ComponentTransaction)
	return &TransactionService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		events:    applog.NewStructuredLogger(logger),
	}
}

// List returns the user's transactions, newest first.
func (s *TransactionService) List(ctx context.Context, userID string) ([]core.Transaction, error) {
	txs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Summary returns balance, income and expense for the user.
func (s *TransactionService) Summary(ctx context.Context, userID string) (core.Summary, error) {
	sum, err := s.store.SumsByUser(ctx, userID)
	if err != nil {
		return core.Summary{}, fmt.Errorf("summarize transactions: %w", err)
	}
	return sum, nil
}

// Create validates the input and inserts it.
func (s *TransactionService) Create(ctx context.Context, in core.CreateInput) (core.Transaction, error) {
	nt, err := in.Validate()
	if err != nil {
		return core.Transaction{}, err
	}

	tx, err := s.store.Create(ctx, nt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.events.LogTransactionCreated(ctx, tx.ID, tx.UserID, tx.Category, tx.Amount.Cents)

	s.publish(ctx, core.EventTransactionCreated, tx)
	return tx, nil
}

// Delete removes the transaction with the given id. It returns
// core.ErrNotFound when there is none.
func (s *TransactionService) Delete(ctx context.Context, id int64) (core.Transaction, error) {
	tx, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.Transaction{}, err
		}
		return core.Transaction{}, fmt.Errorf("delete transaction: %w", err)
	}
	s.events.LogTransactionDeleted(ctx, tx.ID, tx.UserID)

	s.publish(ctx, core.EventTransactionDeleted, tx)
	return tx, nil
}

// publish never fails the caller: the row is already committed.
func (s *TransactionService) publish(ctx context.Context, event core.EventType, tx core.Transaction) {
	if s.publisher == nil {
		s.logger.DebugContext(ctx, "Event publisher not configured, skipping event", applog.FieldEvent, event)
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, event, tx); err != nil {
		fields := applog.NewFields()
		fields[applog.FieldEvent] = string(event)
		fields[applog.FieldTransactionID] = tx.ID
		s.events.LogError(ctx, "Failed to publish transaction event", err, applog.OpPublish, fields)
	}
}
