package domain

import "time"

// EventType identifica o tipo de evento publicado no feed.
type EventType string

const (
	EventRequestCreated EventType = "request.created"
	EventRequestUpdated EventType = "request.updated"
	EventStockLow       EventType = "stock.low"
)

// Event é a mensagem publicada para os clientes conectados ao feed.
// Eventos de solicitação só chegam aos administradores e ao próprio solicitante.
type Event struct {
	Type        EventType     `json:"type"`
	RequestID   string        `json:"request_id,omitempty"`
	RequesterID string        `json:"requester_id,omitempty"`
	Status      RequestStatus `json:"status,omitempty"`
	MaterialID  string        `json:"material_id,omitempty"`
	Stock       *int          `json:"stock,omitempty"`
	Message     string        `json:"message,omitempty"`
	At          time.Time     `json:"at"`
}
