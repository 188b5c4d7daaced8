// Package events publishes ledger change notifications after a database
// transaction commits.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event names.
const (
	SeriesCreated       = "serie_criada"
	TransactionCreated  = "lancamento_criado"
	TransactionUpdated  = "lancamento_atualizado"
	TransactionsDeleted = "lancamentos_excluidos"
)

// Event describes one committed change to the ledger.
type Event struct {
	Name      string    `json:"evento"`
	Kind      string    `json:"tipo"`
	UserID    uint      `json:"usuario_id,omitempty"`
	IDs       []uint    `json:"ids,omitempty"`
	GroupID   string    `json:"grupo_recorrencia,omitempty"`
	Count     int64     `json:"quantidade"`
	Timestamp time.Time `json:"timestamp"`
}

// New stamps an event with the current time.
func New(name, kind string) Event {
	return Event{Name: name, Kind: kind, Timestamp: time.Now().UTC()}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes an event from JSON bytes
func FromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher delivers events to whatever listens for ledger changes.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
