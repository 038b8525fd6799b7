package domain

import "time"

// MovementType é o tipo de movimentação de estoque.
type MovementType string

const (
	MovementEntrada   MovementType = "ENTRADA"
	MovementSaida     MovementType = "SAIDA"
	MovementDevolucao MovementType = "DEVOLUCAO"
)

// StockDirection indica o sentido de um ajuste de estoque.
type StockDirection string

const (
	StockAdd    StockDirection = "ADD"
	StockRemove StockDirection = "REMOVE"
)

// Direction retorna o sentido de estoque correspondente ao tipo de movimentação.
// ENTRADA e DEVOLUCAO aumentam o estoque; SAIDA reduz.
func (t MovementType) Direction() StockDirection {
	if t == MovementSaida {
		return StockRemove
	}
	return StockAdd
}

// Movement é um registro imutável do livro de movimentações.
type Movement struct {
	ID          string       `json:"id"`
	Type        MovementType `json:"type"`
	MaterialID  string       `json:"material_id"`
	Quantity    int          `json:"quantity"`
	Date        string       `json:"date"` // YYYY-MM-DD
	Responsible string       `json:"responsible"`
	Recipient   string       `json:"recipient,omitempty"`
	DeliveredBy string       `json:"delivered_by,omitempty"`
	NF          string       `json:"nf,omitempty"`
	RequestID   string       `json:"request_id,omitempty"`
	Contract    string       `json:"contract,omitempty"`
	Order       string       `json:"order,omitempty"`
	Ticket      string       `json:"ticket,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// MovementFilter define os filtros do relatório de movimentações.
type MovementFilter struct {
	Date     string       // Igualdade exata (YYYY-MM-DD)
	Type     MovementType // Vazio = todos
	Material string       // Substring da descrição do material
}

// DateLayout é o formato de data usado em movimentações e solicitações.
const DateLayout = "2006-01-02"

// HistoryDateLayout é o formato de data/hora do histórico de solicitações.
const HistoryDateLayout = "2006-01-02 15:04"

// MovementView é a movimentação acompanhada da descrição atual do material.
type MovementView struct {
	Movement
	MaterialDescription string `json:"material_description"`
}
