package worker

import (
	"context"
	"errors"
	"time"

	"finance/internal/amqp"
	applog "finance/internal/log"
)

// Consumer delivers events until ctx ends or the connection drops.
type Consumer interface {
	ConsumeTransactionEvents(ctx context.Context, handler amqp.EventHandler) error
	Close() error
}

// Dialer opens a fresh broker connection.
type Dialer func(ctx context.Context) (Consumer, error)

// Run consumes events with w.HandleEvent, reconnecting with exponential
// backoff whenever the broker connection fails. It returns nil once ctx is
// cancelled.
func (w *MirrorWorker) Run(ctx context.Context, dial Dialer) error {
	backoff := w.backoff
	if backoff == nil {
		backoff = amqp.Backoff
	}

	attempt := 0
	for {
		if ctx.Err() != nil {
			return nil
		}

		consumer, err := dial(ctx)
		if err != nil {
			delay := backoff(attempt)
			w.logger.ErrorContext(ctx, "Failed to connect to broker, retrying",
				applog.FieldError, err,
				"attempt", attempt+1,
				"retry_in", delay.String())
			attempt++
			if !sleep(ctx, delay) {
				return nil
			}
			continue
		}
		attempt = 0

		err = consumer.ConsumeTransactionEvents(ctx, w.HandleEvent)
		if closeErr := consumer.Close(); closeErr != nil {
			w.logger.WarnContext(ctx, "Failed to close consumer", applog.FieldError, closeErr)
		}
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return nil
		}
		w.logger.ErrorContext(ctx, "Consumer stopped, reconnecting", applog.FieldError, err)
		if !sleep(ctx, backoff(0)) {
			return nil
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
