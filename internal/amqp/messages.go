package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"finance/internal/core"

	"github.com/google/uuid"
)

// TransactionEvent is published after a transaction is created or deleted.
// It carries the full row so consumers never have to read the database.
type TransactionEvent struct {
	ID          string           `json:"id"`
	Event       core.EventType   `json:"event"`
	Transaction core.Transaction `json:"transaction"`
	Timestamp   time.Time        `json:"timestamp"`
}

// NewTransactionEvent stamps a new event with a random id and the current time.
func NewTransactionEvent(event core.EventType, tx core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		ID:          uuid.NewString(),
		Event:       event,
		Transaction: tx,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionEventFromJSON decodes a message body. A body without an event
// name is rejected.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var msg TransactionEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Event == "" {
		return nil, fmt.Errorf("missing event name")
	}
	return &msg, nil
}
