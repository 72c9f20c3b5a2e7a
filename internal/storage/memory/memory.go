package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"finance/internal/core"
)

// Store keeps transactions in process memory. Ids increase monotonically
// and are never reused, matching the SQL stores.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Transaction
	now    func() time.Time
}

func New() *Store {
	return &Store{nextID: 1, now: time.Now}
}

// NewWithClock is New with an injectable clock.
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

func (s *Store) ListByUser(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Transaction, 0)
	for _, t := range s.items {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) Create(_ context.Context, nt core.NewTransaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := core.Transaction{
		ID:        s.nextID,
		UserID:    nt.UserID,
		Title:     nt.Title,
		Amount:    nt.Amount,
		Category:  nt.Category,
		CreatedAt: s.now().UTC(),
	}
	s.nextID++
	s.items = append(s.items, t)
	return t, nil
}

func (s *Store) DeleteByID(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return t, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

func (s *Store) SumsByUser(_ context.Context, userID string) (core.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var own []core.Transaction
	for _, t := range s.items {
		if t.UserID == userID {
			own = append(own, t)
		}
	}
	return core.Summarize(own), nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
