package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"finance/internal/core"
	applog "finance/internal/log"

	"golang.org/x/sync/errgroup"
)

// API is the part of Client the Ledger depends on.
type API interface {
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	Summary(ctx context.Context, userID string) (core.Summary, error)
	CreateTransaction(ctx context.Context, in core.CreateInput) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// Notifier shows a short message to the user.
type Notifier interface {
	Alert(title, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(title, message string)

// Alert calls f(title, message).
func (f NotifierFunc) Alert(title, message string) { f(title, message) }

type nopNotifier struct{}

func (nopNotifier) Alert(string, string) {}

// Messages shown through the Notifier.
const (
	AlertError   = "Error"
	AlertSuccess = "Success"

	msgDeleteFailed  = "Failed to delete transaction"
	msgDeleted       = "Transaction deleted successfully"
	msgCreateFailed  = "Failed to create transaction."
	msgCreated       = "Transaction created successfully."
	msgTitleRequired = "Please enter a transaction title."
	msgInvalidAmount = "Please enter a valid amount."
	msgNoCategory    = "Please select a category."
)

// ErrInvalidDraft wraps client-side validation failures of Add.
var ErrInvalidDraft = errors.New("invalid transaction draft")

// DraftError carries the message shown to the user for a rejected draft.
type DraftError struct {
	Message string
}

func (e *DraftError) Error() string { return ErrInvalidDraft.Error() + ": " + e.Message }

func (e *DraftError) Unwrap() error { return ErrInvalidDraft }

// Draft is a transaction as typed into a create form. Amount is the
// unsigned magnitude; IsExpense decides the sign.
type Draft struct {
	Title     string
	Amount    string
	Category  string
	IsExpense bool
}

// Input validates the draft and converts it to a create request.
func (d Draft) Input(userID string) (core.CreateInput, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return core.CreateInput{}, &DraftError{Message: msgTitleRequired}
	}

	amount, err := core.ParseMoney(d.Amount)
	if err != nil || amount.Cents <= 0 {
		return core.CreateInput{}, &DraftError{Message: msgInvalidAmount}
	}

	if strings.TrimSpace(d.Category) == "" {
		return core.CreateInput{}, &DraftError{Message: msgNoCategory}
	}

	if d.IsExpense {
		amount = core.Money{Cents: -amount.Cents}
	}
	return core.CreateInput{
		UserID:   userID,
		Title:    title,
		Amount:   &amount,
		Category: d.Category,
	}, nil
}

// Ledger holds one user's transactions and summary as last fetched from
// the API. Fetches are not deduplicated or sequenced: the last response
// to arrive wins.
type Ledger struct {
	api      API
	userID   string
	notifier Notifier
	logger   *applog.Logger

	mu           sync.Mutex
	transactions []core.Transaction
	summary      core.Summary
	loading      bool
}

// NewLedger creates a ledger for userID. The ledger starts in the
// loading state until the first Load completes. notifier may be nil.
func NewLedger(api API, userID string, notifier Notifier, logger *applog.Logger) *Ledger {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = applog.NewDefault()
	}
	return &Ledger{
		api:          api,
		userID:       userID,
		notifier:     notifier,
		logger:       logger.WithComponent(applog.ComponentClient),
		transactions: []core.Transaction{},
		loading:      true,
	}
}

// UserID returns the user the ledger belongs to.
func (l *Ledger) UserID() string { return l.userID }

// Load fetches transactions and summary in parallel. Each fetch updates
// only its own state; a failed fetch is logged and leaves the previous
// value in place. Load does nothing when the user id is empty.
func (l *Ledger) Load(ctx context.Context) {
	if l.userID == "" {
		return
	}

	l.setLoading(true)
	defer l.setLoading(false)

	var g errgroup.Group
	g.Go(func() error {
		txs, err := l.api.ListTransactions(ctx, l.userID)
		if err != nil {
			l.logger.ErrorContext(ctx, "Error fetching transactions",
				applog.FieldUserID, l.userID, applog.FieldError, err.Error())
			return nil
		}
		l.mu.Lock()
		l.transactions = txs
		l.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		sum, err := l.api.Summary(ctx, l.userID)
		if err != nil {
			l.logger.ErrorContext(ctx, "Error fetching summary",
				applog.FieldUserID, l.userID, applog.FieldError, err.Error())
			return nil
		}
		l.mu.Lock()
		l.summary = sum
		l.mu.Unlock()
		return nil
	})
	_ = g.Wait()
}

// Remove deletes a transaction. On failure the user is alerted and the
// state is left untouched; on success the ledger reloads and then
// confirms.
func (l *Ledger) Remove(ctx context.Context, id int64) error {
	if err := l.api.DeleteTransaction(ctx, id); err != nil {
		l.logger.ErrorContext(ctx, "Error deleting transaction",
			applog.FieldTransactionID, id, applog.FieldError, err.Error())
		l.notifier.Alert(AlertError, failureMessage(err, msgDeleteFailed))
		return err
	}

	l.Load(ctx)
	l.notifier.Alert(AlertSuccess, msgDeleted)
	return nil
}

// Add validates and creates a transaction, then reloads.
func (l *Ledger) Add(ctx context.Context, d Draft) (core.Transaction, error) {
	in, err := d.Input(l.userID)
	if err != nil {
		var de *DraftError
		if errors.As(err, &de) {
			l.notifier.Alert(AlertError, de.Message)
		}
		return core.Transaction{}, err
	}

	tx, err := l.api.CreateTransaction(ctx, in)
	if err != nil {
		l.logger.ErrorContext(ctx, "Error creating transaction",
			applog.FieldUserID, l.userID, applog.FieldError, err.Error())
		l.notifier.Alert(AlertError, failureMessage(err, msgCreateFailed))
		return core.Transaction{}, err
	}

	l.notifier.Alert(AlertSuccess, msgCreated)
	l.Load(ctx)
	return tx, nil
}

// Transactions returns a copy of the current transactions.
func (l *Ledger) Transactions() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Summary returns the current summary.
func (l *Ledger) Summary() core.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.summary
}

// IsLoading reports whether a Load is in progress.
func (l *Ledger) IsLoading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *Ledger) setLoading(v bool) {
	l.mu.Lock()
	l.loading = v
	l.mu.Unlock()
}

// failureMessage prefers the server's message over the generic fallback.
func failureMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
