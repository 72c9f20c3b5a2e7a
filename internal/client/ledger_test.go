package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"finance/internal/core"
	applog "finance/internal/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu        sync.Mutex
	txs       []core.Transaction
	summary   core.Summary
	listErr   error
	sumErr    error
	deleteErr error
	createErr error
	lists     int
	created   []core.CreateInput
}

func (f *fakeAPI) ListTransactions(context.Context, string) ([]core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.txs, nil
}

func (f *fakeAPI) Summary(context.Context, string) (core.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sumErr != nil {
		return core.Summary{}, f.sumErr
	}
	return f.summary, nil
}

func (f *fakeAPI) CreateTransaction(_ context.Context, in core.CreateInput) (core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return core.Transaction{}, f.createErr
	}
	f.created = append(f.created, in)
	return core.Transaction{ID: int64(len(f.created)), UserID: in.UserID, Title: in.Title, Amount: *in.Amount, Category: in.Category}, nil
}

func (f *fakeAPI) DeleteTransaction(context.Context, int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteErr
}

type alert struct{ title, message string }

type recorder struct {
	mu     sync.Mutex
	alerts []alert
}

func (r *recorder) Alert(title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, alert{title, message})
}

func (r *recorder) last() alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.alerts) == 0 {
		return alert{}
	}
	return r.alerts[len(r.alerts)-1]
}

func coffee() core.Transaction {
	return core.Transaction{ID: 1, UserID: "u1", Title: "Coffee", Amount: core.Money{Cents: -450}, Category: "Food & Drinks", CreatedAt: time.Now()}
}

func TestLedgerLoad(t *testing.T) {
	api := &fakeAPI{
		txs:     []core.Transaction{coffee()},
		summary: core.Summary{Balance: core.Money{Cents: -450}, Expense: core.Money{Cents: -450}},
	}
	l := NewLedger(api, "u1", nil, applog.Discard())
	assert.True(t, l.IsLoading())

	l.Load(context.Background())

	assert.False(t, l.IsLoading())
	require.Len(t, l.Transactions(), 1)
	assert.Equal(t, "Coffee", l.Transactions()[0].Title)
	assert.Equal(t, int64(-450), l.Summary().Balance.Cents)
}

func TestLedgerLoadEmptyUserIsNoop(t *testing.T) {
	api := &fakeAPI{}
	l := NewLedger(api, "", nil, applog.Discard())

	l.Load(context.Background())
	assert.Zero(t, api.lists)
}

func TestLedgerLoadPartialFailureKeepsPriorSummary(t *testing.T) {
	prior := core.Summary{Balance: core.Money{Cents: 1000}, Income: core.Money{Cents: 1000}}
	api := &fakeAPI{txs: []core.Transaction{coffee()}, summary: prior}
	l := NewLedger(api, "u1", nil, applog.Discard())
	l.Load(context.Background())

	api.mu.Lock()
	api.sumErr = errors.New("summary down")
	api.txs = []core.Transaction{}
	api.mu.Unlock()

	l.Load(context.Background())

	assert.Empty(t, l.Transactions())
	assert.Equal(t, prior, l.Summary())
	assert.False(t, l.IsLoading())
}

func TestLedgerRemoveFailureDoesNotReload(t *testing.T) {
	api := &fakeAPI{deleteErr: &APIError{StatusCode: 500, Message: ""}}
	rec := &recorder{}
	l := NewLedger(api, "u1", rec, applog.Discard())

	err := l.Remove(context.Background(), 7)
	require.Error(t, err)
	assert.Zero(t, api.lists)
	assert.Equal(t, alert{AlertError, "Failed to delete transaction"}, rec.last())
}

func TestLedgerRemoveSuccessReloads(t *testing.T) {
	api := &fakeAPI{}
	rec := &recorder{}
	l := NewLedger(api, "u1", rec, applog.Discard())

	require.NoError(t, l.Remove(context.Background(), 1))
	assert.Equal(t, 1, api.lists)
	assert.Equal(t, alert{AlertSuccess, "Transaction deleted successfully"}, rec.last())
}

func TestLedgerAdd(t *testing.T) {
	api := &fakeAPI{}
	rec := &recorder{}
	l := NewLedger(api, "u1", rec, applog.Discard())

	tx, err := l.Add(context.Background(), Draft{Title: " Coffee ", Amount: "4.5", Category: "Food & Drinks", IsExpense: true})
	require.NoError(t, err)
	assert.Equal(t, int64(-450), tx.Amount.Cents)
	assert.Equal(t, "Coffee", tx.Title)
	assert.Equal(t, 1, api.lists)
	assert.Equal(t, AlertSuccess, rec.alerts[0].title)

	tx, err = l.Add(context.Background(), Draft{Title: "Salary", Amount: "2500", Category: "Income"})
	require.NoError(t, err)
	assert.Equal(t, int64(250000), tx.Amount.Cents)
}

func TestLedgerAddValidation(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  string
	}{
		{"blank title", Draft{Title: " ", Amount: "1", Category: "Bills"}, "Please enter a transaction title."},
		{"non numeric", Draft{Title: "a", Amount: "abc", Category: "Bills"}, "Please enter a valid amount."},
		{"zero", Draft{Title: "a", Amount: "0", Category: "Bills"}, "Please enter a valid amount."},
		{"negative", Draft{Title: "a", Amount: "-3", Category: "Bills"}, "Please enter a valid amount."},
		{"no category", Draft{Title: "a", Amount: "3"}, "Please select a category."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			rec := &recorder{}
			l := NewLedger(api, "u1", rec, applog.Discard())

			_, err := l.Add(context.Background(), tt.draft)
			assert.ErrorIs(t, err, ErrInvalidDraft)
			assert.Empty(t, api.created)
			assert.Equal(t, alert{AlertError, tt.want}, rec.last())
		})
	}
}

func TestLedgerAddServerError(t *testing.T) {
	api := &fakeAPI{createErr: &APIError{StatusCode: 400, Message: "All fields are required."}}
	rec := &recorder{}
	l := NewLedger(api, "u1", rec, applog.Discard())

	_, err := l.Add(context.Background(), Draft{Title: "a", Amount: "1", Category: "Bills"})
	require.Error(t, err)
	assert.Equal(t, alert{AlertError, "All fields are required."}, rec.last())
	assert.Zero(t, api.lists)
}

func TestLedgerConcurrentLoads(t *testing.T) {
	api := &fakeAPI{txs: []core.Transaction{coffee()}}
	l := NewLedger(api, "u1", NotifierFunc(func(string, string) {}), applog.Discard())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Load(context.Background())
		}()
	}
	wg.Wait()
	assert.Len(t, l.Transactions(), 1)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.May, 20, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "May 20, 2025", FormatDate(d))
}
