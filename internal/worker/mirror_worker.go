package worker

import (
	"context"
	"fmt"
	"time"

	"finance/internal/amqp"
	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/ports"
)

// MirrorWorker applies transaction events to an external mirror.
type MirrorWorker struct {
	mirror  ports.TransactionMirror
	logger  *applog.Logger
	backoff func(attempt int) time.Duration
}

func NewMirrorWorker(mirror ports.TransactionMirror, logger *applog.Logger) *MirrorWorker {
	if logger == nil {
		logger = applog.NewDefault()
	}
	return &MirrorWorker{
		mirror: mirror,
		logger: logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleEvent is an amqp.EventHandler. Unknown events are logged and
// acknowledged so they do not loop on the queue.
func (w *MirrorWorker) HandleEvent(ctx context.Context, msg *amqp.TransactionEvent) error {
	tx := msg.Transaction

	switch msg.Event {
	case core.EventTransactionCreated:
		if err := w.mirror.AppendTransaction(ctx, tx); err != nil {
			return fmt.Errorf("mirror created transaction %d: %w", tx.ID, err)
		}
	case core.EventTransactionDeleted:
		if err := w.mirror.DeleteTransaction(ctx, tx.ID); err != nil {
			return fmt.Errorf("mirror deleted transaction %d: %w", tx.ID, err)
		}
	default:
		w.logger.WarnContext(ctx, "Ignoring unknown event",
			applog.FieldEvent, msg.Event,
			applog.FieldMessageID, msg.ID)
		return nil
	}

	w.logger.InfoContext(ctx, "Event mirrored",
		applog.FieldEvent, msg.Event,
		applog.FieldTransactionID, tx.ID,
		applog.FieldOperation, applog.OpMirror)
	return nil
}
