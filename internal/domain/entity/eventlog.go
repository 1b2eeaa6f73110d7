package entity

import "time"

// EventLog is one entry in the append-only audit trail. Either OSID or
// IdeiaID is set depending on the scope of the event. Entries are never
// mutated or deleted; they are the only durable history of intermediate
// work order states.
type EventLog struct {
	ID        string    `json:"id"`
	OSID      string    `json:"os_id,omitempty"`
	IdeiaID   string    `json:"ideia_id,omitempty"`
	Autor     string    `json:"autor"`
	Acao      LogAction `json:"acao"`
	Detalhe   string    `json:"detalhe"`
	CreatedAt time.Time `json:"created_at"`
}
