package domain

// RequestStatus representa o estado de uma solicitação de material.
type RequestStatus string

const (
	StatusPendente           RequestStatus = "PENDENTE"
	StatusEmAtendimento      RequestStatus = "EM_ATENDIMENTO"
	StatusAguardandoCorrecao RequestStatus = "AGUARDANDO_CORRECAO"
	StatusConcluido          RequestStatus = "CONCLUIDO"
	StatusCancelado          RequestStatus = "CANCELADO"
	StatusRejeitado          RequestStatus = "REJEITADO" // Legado: nenhuma transição nova produz este status
)

// IsTerminal indica se nenhuma ação pode mais ser aplicada.
func (s RequestStatus) IsTerminal() bool {
	switch s {
	case StatusConcluido, StatusCancelado, StatusRejeitado:
		return true
	}
	return false
}

// IsOpen indica se a solicitação ainda aguarda o almoxarifado.
func (s RequestStatus) IsOpen() bool {
	return s == StatusPendente || s == StatusEmAtendimento
}

// Valid indica se o status é conhecido.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPendente, StatusEmAtendimento, StatusAguardandoCorrecao, StatusConcluido, StatusCancelado, StatusRejeitado:
		return true
	}
	return false
}

// RequestAction é o nome gravado no histórico para cada transição.
type RequestAction string

const (
	ActionAbertura        RequestAction = "Abertura"
	ActionAtender         RequestAction = "Atender"
	ActionConclusao       RequestAction = "Conclusão"
	ActionPedirCorrecao   RequestAction = "Pedir Correção"
	ActionRejeitar        RequestAction = "Rejeitar"
	ActionCorrecaoEnviada RequestAction = "Correção Enviada"
	ActionCancelado       RequestAction = "Cancelado"
)

// transition descreve os estados de origem aceitos por uma ação e o estado resultante.
type transition struct {
	from []RequestStatus // nil = qualquer estado não terminal
	to   RequestStatus
}

var transitions = map[RequestAction]transition{
	ActionAtender:         {from: []RequestStatus{StatusPendente}, to: StatusEmAtendimento},
	ActionConclusao:       {from: []RequestStatus{StatusEmAtendimento}, to: StatusConcluido},
	ActionPedirCorrecao:   {to: StatusAguardandoCorrecao},
	ActionRejeitar:        {to: StatusCancelado},
	ActionCorrecaoEnviada: {from: []RequestStatus{StatusAguardandoCorrecao}, to: StatusPendente},
	ActionCancelado:       {from: []RequestStatus{StatusAguardandoCorrecao}, to: StatusCancelado},
}

// NextStatus retorna o status resultante de aplicar a ação no status atual.
// O segundo retorno é false quando a transição não é permitida.
func NextStatus(current RequestStatus, action RequestAction) (RequestStatus, bool) {
	t, ok := transitions[action]
	if !ok || current.IsTerminal() {
		return "", false
	}
	if t.from == nil {
		return t.to, true
	}
	for _, s := range t.from {
		if s == current {
			return t.to, true
		}
	}
	return "", false
}

// RequestItem é um item da solicitação. Nome e unidade são cópias do catálogo
// no momento da solicitação e não acompanham alterações posteriores.
type RequestItem struct {
	MaterialID   string `json:"material_id"`
	Quantity     int    `json:"quantity"`
	MaterialName string `json:"material_name"`
	MaterialUnit string `json:"material_unit"`
}

// HistoryEntry é uma entrada da trilha de auditoria da solicitação.
type HistoryEntry struct {
	Date        string        `json:"date"`
	User        string        `json:"user"`
	Action      RequestAction `json:"action"`
	Message     string        `json:"message"`
	Attachments []string      `json:"attachments,omitempty"`
}

// MaterialRequest é uma solicitação de materiais e seu histórico.
type MaterialRequest struct {
	ID               string         `json:"id"`
	RequesterID      string         `json:"requester_id"`
	RequesterName    string         `json:"requester_name"`
	RequesterCompany string         `json:"requester_company"`
	Department       string         `json:"department"`
	Date             string         `json:"date"`
	Status           RequestStatus  `json:"status"`
	Items            []RequestItem  `json:"items"`
	Location         string         `json:"location"`
	Justification    string         `json:"justification"`
	History          []HistoryEntry `json:"history"`
}

// Clone devolve uma cópia profunda, para que chamadores não compartilhem slices com o repositório.
func (r MaterialRequest) Clone() MaterialRequest {
	c := r
	c.Items = append([]RequestItem(nil), r.Items...)
	c.History = make([]HistoryEntry, len(r.History))
	for i, h := range r.History {
		h.Attachments = append([]string(nil), h.Attachments...)
		c.History[i] = h
	}
	return c
}

// IsOwnedBy indica se a solicitação pertence ao usuário.
func (r MaterialRequest) IsOwnedBy(userID string) bool {
	return r.RequesterID == userID
}

// RequestFilter define os filtros da listagem de solicitações.
type RequestFilter struct {
	ID          string        // Substring do ID
	Status      RequestStatus // Vazio = todos
	RequesterID string        // Preenchido para listar apenas as solicitações de um usuário
}
