package worker

import (
	"context"
	"errors"
	"testing"

	"finance/internal/amqp"
	"finance/internal/core"
	applog "finance/internal/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMirror struct {
	appended []int64
	deleted  []int64
	err      error
}

func (f *fakeMirror) AppendTransaction(_ context.Context, tx core.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, tx.ID)
	return nil
}

func (f *fakeMirror) DeleteTransaction(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestMirrorWorkerHandleEvent(t *testing.T) {
	mirror := &fakeMirror{}
	w := NewMirrorWorker(mirror, applog.Discard())
	ctx := context.Background()
	tx := core.Transaction{ID: 3, UserID: "u1", Title: "Coffee", Amount: core.Money{Cents: -450}, Category: "food"}

	require.NoError(t, w.HandleEvent(ctx, amqp.NewTransactionEvent(core.EventTransactionCreated, tx)))
	require.NoError(t, w.HandleEvent(ctx, amqp.NewTransactionEvent(core.EventTransactionDeleted, tx)))
	require.NoError(t, w.HandleEvent(ctx, amqp.NewTransactionEvent("transaction.updated", tx)))

	assert.Equal(t, []int64{3}, mirror.appended)
	assert.Equal(t, []int64{3}, mirror.deleted)
}

func TestMirrorWorkerPropagatesFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	w := NewMirrorWorker(&fakeMirror{err: boom}, applog.Discard())
	tx := core.Transaction{ID: 9}

	err := w.HandleEvent(context.Background(), amqp.NewTransactionEvent(core.EventTransactionCreated, tx))
	assert.ErrorIs(t, err, boom)

	err = w.HandleEvent(context.Background(), amqp.NewTransactionEvent(core.EventTransactionDeleted, tx))
	assert.ErrorIs(t, err, boom)
}
