// Package requestservice conduz as solicitações de material pelo fluxo de aprovação.
package requestservice

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
)

// RequestRepository define o contrato de persistência das solicitações.
type RequestRepository interface {
	CreateRequest(ctx context.Context, req domain.MaterialRequest) (domain.MaterialRequest, error)
	GetRequestByID(ctx context.Context, id string) (domain.MaterialRequest, error)
	ListRequests(ctx context.Context) ([]domain.MaterialRequest, error)
	UpdateRequest(ctx context.Context, req domain.MaterialRequest) (domain.MaterialRequest, error)
}

// MaterialCatalog fornece o nome, a unidade e o saldo atual dos materiais.
type MaterialCatalog interface {
	GetMaterialByID(ctx context.Context, id string) (domain.Material, error)
}

// UserDirectory fornece os dados do solicitante copiados para a solicitação.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

// StockLedger baixa o estoque e registra as saídas na conclusão.
type StockLedger interface {
	AdjustStock(ctx context.Context, materialID string, quantity int, direction domain.StockDirection) (domain.Material, error)
	RecordMovement(ctx context.Context, entry domain.Movement) (string, error)
}

// EventPublisher recebe os eventos de ciclo de vida.
type EventPublisher interface {
	Publish(evt domain.Event)
}

// Validator valida formulários com tags `validate`.
type Validator interface {
	Struct(s interface{}) error
}

// Service implementa a máquina de estados das solicitações.
type Service struct {
	mu sync.Mutex // serializa as operações de escrita

	repo      RequestRepository
	catalog   MaterialCatalog
	users     UserDirectory
	ledger    StockLedger
	events    EventPublisher
	validator Validator
	logger    logger.Logger

	allowNegativeStock bool
	now                func() time.Time
}

// NewService cria o gerenciador de solicitações.
// Com allowNegativeStock, a conclusão não confere o saldo antes de baixar o estoque.
func NewService(repo RequestRepository, catalog MaterialCatalog, users UserDirectory, ledger StockLedger,
	events EventPublisher, v Validator, logger logger.Logger, allowNegativeStock bool) *Service {
	return &Service{
		repo:               repo,
		catalog:            catalog,
		users:              users,
		ledger:             ledger,
		events:             events,
		validator:          v,
		logger:             logger,
		allowNegativeStock: allowNegativeStock,
		now:                time.Now,
	}
}

// SetClock troca a fonte de horário usada nas datas e no histórico.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Submit abre uma nova solicitação com status PENDENTE.
func (s *Service) Submit(ctx context.Context, actor domain.Actor, form domain.RequestForm) (domain.MaterialRequest, error) {
	s.logger.Debug("Iniciando abertura de solicitação no serviço.", map[string]interface{}{"user_id": actor.UserID, "items": len(form.Items)})

	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. Validação
	form = normalizeForm(form)
	if err := s.validator.Struct(form); err != nil {
		s.logger.Warn("Solicitação inválida.", map[string]interface{}{"error": err.Error()})
		return domain.MaterialRequest{}, err
	}

	// 2. Dados do solicitante
	requester, err := s.users.GetUserByID(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("Falha ao buscar solicitante.", err)
		return domain.MaterialRequest{}, repoError(err, "Falha interna ao buscar solicitante.")
	}

	// 3. Itens com nome e unidade do catálogo
	items, err := s.buildItems(ctx, form.Items, nil)
	if err != nil {
		return domain.MaterialRequest{}, err
	}

	// 4. Persistência
	now := s.now()
	created, err := s.repo.CreateRequest(ctx, domain.MaterialRequest{
		RequesterID:      requester.ID,
		RequesterName:    requester.Name,
		RequesterCompany: requester.Company,
		Department:       requester.Department,
		Date:             now.Format(domain.DateLayout),
		Status:           domain.StatusPendente,
		Items:            items,
		Location:         form.Location,
		Justification:    form.Justification,
		History: []domain.HistoryEntry{{
			Date:    now.Format(domain.HistoryDateLayout),
			User:    requester.Name,
			Action:  domain.ActionAbertura,
			Message: "Solicitação criada.",
		}},
	})
	if err != nil {
		s.logger.Error("Falha ao gravar solicitação.", err)
		return domain.MaterialRequest{}, repoError(err, "Falha interna ao criar solicitação.")
	}

	s.publish(domain.EventRequestCreated, created, string(domain.ActionAbertura))
	s.logger.Info("Solicitação criada com sucesso.", map[string]interface{}{"request_id": created.ID, "user_id": actor.UserID})
	return created, nil
}

// Attend coloca uma solicitação pendente em atendimento.
func (s *Service) Attend(ctx context.Context, actor domain.Actor, id string, form domain.ActionForm) (domain.MaterialRequest, error) {
	return s.adminAction(ctx, actor, id, domain.ActionAtender, form)
}

// RequestCorrection devolve a solicitação ao solicitante para ajustes.
func (s *Service) RequestCorrection(ctx context.Context, actor domain.Actor, id string, form domain.ActionForm) (domain.MaterialRequest, error) {
	return s.adminAction(ctx, actor, id, domain.ActionPedirCorrecao, form)
}

// Reject encerra a solicitação como CANCELADO.
func (s *Service) Reject(ctx context.Context, actor domain.Actor, id string, form domain.ActionForm) (domain.MaterialRequest, error) {
	return s.adminAction(ctx, actor, id, domain.ActionRejeitar, form)
}

func (s *Service) adminAction(ctx context.Context, actor domain.Actor, id string, action domain.RequestAction, form domain.ActionForm) (domain.MaterialRequest, error) {
	form.Observation = strings.TrimSpace(form.Observation)
	if err := requireAdmin(actor); err != nil {
		return domain.MaterialRequest{}, err
	}
	if err := s.validator.Struct(form); err != nil {
		return domain.MaterialRequest{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.historyEntry(actor, action, form.Observation)
	entry.Attachments = form.Attachments
	return s.apply(ctx, id, action, entry, nil, nil)
}

// Complete conclui o atendimento: baixa o estoque de cada item e registra as saídas.
func (s *Service) Complete(ctx context.Context, actor domain.Actor, id string, form domain.CompletionForm) (domain.MaterialRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.MaterialRequest{}, err
	}
	form.Recipient = strings.TrimSpace(form.Recipient)
	form.Observation = strings.TrimSpace(form.Observation)
	if err := s.validator.Struct(form); err != nil {
		return domain.MaterialRequest{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	message := form.Observation
	if message == "" {
		message = "..."
	}
	entry := s.historyEntry(actor, domain.ActionConclusao, message)

	return s.apply(ctx, id, domain.ActionConclusao, entry, nil, func(ctx context.Context, req *domain.MaterialRequest) error {
		recipient := form.Recipient
		if form.DeliverTo == domain.DeliverToRequester {
			recipient = req.RequesterName
		}
		return s.dispatchItems(ctx, actor, *req, recipient)
	})
}

// SubmitCorrection reenvia a solicitação corrigida pelo solicitante.
func (s *Service) SubmitCorrection(ctx context.Context, actor domain.Actor, id string, form domain.RequestForm) (domain.MaterialRequest, error) {
	form = normalizeForm(form)
	if err := s.validator.Struct(form); err != nil {
		return domain.MaterialRequest{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.historyEntry(actor, domain.ActionCorrecaoEnviada, "Correções aplicadas pelo solicitante.")
	return s.apply(ctx, id, domain.ActionCorrecaoEnviada, entry, requireOwner(actor, "corrigir"), func(ctx context.Context, req *domain.MaterialRequest) error {
		items, err := s.buildItems(ctx, form.Items, req.Items)
		if err != nil {
			return err
		}
		req.Items = items
		req.Justification = form.Justification
		req.Location = form.Location
		return nil
	})
}

// Cancel encerra, a pedido do solicitante, uma solicitação que aguardava correção.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id string) (domain.MaterialRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.historyEntry(actor, domain.ActionCancelado, "Solicitação cancelada pelo usuário.")
	return s.apply(ctx, id, domain.ActionCancelado, entry, requireOwner(actor, "cancelar"), nil)
}

// GetRequest retorna uma solicitação. Solicitantes só enxergam as próprias.
func (s *Service) GetRequest(ctx context.Context, actor domain.Actor, id string) (domain.MaterialRequest, error) {
	req, err := s.repo.GetRequestByID(ctx, id)
	if err != nil {
		return domain.MaterialRequest{}, repoError(err, "Falha interna ao buscar solicitação.")
	}
	if !actor.IsAdmin() && !req.IsOwnedBy(actor.UserID) {
		s.logger.Warn("Acesso a solicitação de outro usuário.", map[string]interface{}{"request_id": id, "user_id": actor.UserID})
		return domain.MaterialRequest{}, apperror.NewForbiddenError("Você só pode visualizar as suas solicitações.")
	}
	return req, nil
}

// ListRequests lista as solicitações do mais novo para o mais antigo.
// Para solicitantes, o filtro é restrito às próprias solicitações.
func (s *Service) ListRequests(ctx context.Context, actor domain.Actor, filter domain.RequestFilter) ([]domain.MaterialRequest, error) {
	if !actor.IsAdmin() {
		filter.RequesterID = actor.UserID
	}

	all, err := s.repo.ListRequests(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar solicitações.", err)
		return nil, repoError(err, "Falha interna ao listar solicitações.")
	}

	term := strings.ToUpper(strings.TrimSpace(filter.ID))
	result := make([]domain.MaterialRequest, 0, len(all))
	for _, r := range all {
		if filter.RequesterID != "" && r.RequesterID != filter.RequesterID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if term != "" && !strings.Contains(strings.ToUpper(r.ID), term) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

// apply carrega a solicitação, confere a permissão e a transição, executa o efeito
// e grava o novo status com a entrada de histórico. Deve ser chamado com s.mu travado.
func (s *Service) apply(ctx context.Context, id string, action domain.RequestAction, entry domain.HistoryEntry,
	guard func(domain.MaterialRequest) error, effect func(context.Context, *domain.MaterialRequest) error) (domain.MaterialRequest, error) {
	// 1. Carregar
	req, err := s.repo.GetRequestByID(ctx, id)
	if err != nil {
		return domain.MaterialRequest{}, repoError(err, "Falha interna ao buscar solicitação.")
	}

	// 2. Permissão
	if guard != nil {
		if err := guard(req); err != nil {
			s.logger.Warn("Ação negada.", map[string]interface{}{"request_id": id, "action": action})
			return domain.MaterialRequest{}, err
		}
	}

	// 3. Transição
	next, ok := domain.NextStatus(req.Status, action)
	if !ok {
		s.logger.Warn("Transição não permitida.", map[string]interface{}{"request_id": id, "action": action, "status": req.Status})
		return domain.MaterialRequest{}, apperror.NewConflictError(
			fmt.Sprintf("Ação '%s' não permitida para solicitação com status %s.", action, req.Status))
	}

	// 4. Efeitos
	if effect != nil {
		// Efeitos podem mexer no estoque: a partir daqui efeito e gravação vão até o fim,
		// mesmo que o cliente desconecte.
		if err := ctx.Err(); err != nil {
			return domain.MaterialRequest{}, apperror.NewInternalError("Operação cancelada.", err)
		}
		ctx = context.WithoutCancel(ctx)
		if err := effect(ctx, &req); err != nil {
			return domain.MaterialRequest{}, err
		}
	}

	// 5. Status e histórico
	req.Status = next
	req.History = append(req.History, entry)

	updated, err := s.repo.UpdateRequest(ctx, req)
	if err != nil {
		s.logger.Error("Falha ao gravar solicitação.", err)
		return domain.MaterialRequest{}, repoError(err, "Falha interna ao atualizar solicitação.")
	}

	s.publish(domain.EventRequestUpdated, updated, string(action))
	s.logger.Info("Solicitação atualizada.", map[string]interface{}{"request_id": updated.ID, "action": action, "status": updated.Status})
	return updated, nil
}

// dispatchItems confere o saldo e baixa cada item, registrando uma SAIDA por item.
func (s *Service) dispatchItems(ctx context.Context, actor domain.Actor, req domain.MaterialRequest, recipient string) error {
	if !s.allowNegativeStock {
		if err := s.checkStock(ctx, req.Items); err != nil {
			return err
		}
	}
	if recipient == "" {
		recipient = "Não informado"
	}

	date := s.now().Format(domain.DateLayout)
	for _, item := range req.Items {
		if _, err := s.ledger.AdjustStock(ctx, item.MaterialID, item.Quantity, domain.StockRemove); err != nil {
			s.logger.Error("Falha ao baixar estoque na conclusão.", err)
			return err
		}
		if _, err := s.ledger.RecordMovement(ctx, domain.Movement{
			Type:        domain.MovementSaida,
			MaterialID:  item.MaterialID,
			Quantity:    item.Quantity,
			Date:        date,
			Responsible: actor.Name,
			Recipient:   recipient,
			RequestID:   req.ID,
		}); err != nil {
			s.logger.Error("Falha ao registrar saída na conclusão.", err)
			return err
		}
	}
	return nil
}

// checkStock soma as quantidades por material e compara com o saldo atual.
func (s *Service) checkStock(ctx context.Context, items []domain.RequestItem) error {
	needed := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, it := range items {
		if _, seen := needed[it.MaterialID]; !seen {
			order = append(order, it.MaterialID)
		}
		needed[it.MaterialID] += it.Quantity
	}

	for _, id := range order {
		material, err := s.catalog.GetMaterialByID(ctx, id)
		if err != nil {
			if apperror.Is(err, "NOT_FOUND") {
				return apperror.NewConflictError(fmt.Sprintf("O material %s não está mais no catálogo.", id))
			}
			return repoError(err, "Falha interna ao conferir estoque.")
		}
		if material.CurrentStock < needed[id] {
			return apperror.NewConflictError(fmt.Sprintf("Estoque insuficiente para o material %s (disponível: %d, solicitado: %d).",
				material.Description, material.CurrentStock, needed[id]))
		}
	}
	return nil
}

// buildItems monta os itens da solicitação. Quantidades repetidas do mesmo material são somadas.
// Itens já presentes em previous mantêm o nome e a unidade gravados originalmente.
func (s *Service) buildItems(ctx context.Context, forms []domain.RequestItemForm, previous []domain.RequestItem) ([]domain.RequestItem, error) {
	snapshots := make(map[string]domain.RequestItem, len(previous))
	for _, it := range previous {
		snapshots[it.MaterialID] = it
	}

	items := make([]domain.RequestItem, 0, len(forms))
	index := make(map[string]int, len(forms))
	for _, f := range forms {
		if i, ok := index[f.MaterialID]; ok {
			items[i].Quantity += f.Quantity
			continue
		}

		item, ok := snapshots[f.MaterialID]
		if !ok {
			material, err := s.catalog.GetMaterialByID(ctx, f.MaterialID)
			if err != nil {
				if apperror.Is(err, "NOT_FOUND") {
					return nil, apperror.NewValidationError(fmt.Sprintf("Material %s não encontrado no catálogo.", f.MaterialID))
				}
				return nil, repoError(err, "Falha interna ao buscar material.")
			}
			item = domain.RequestItem{MaterialID: material.ID, MaterialName: material.Description, MaterialUnit: material.Unit}
		}
		item.Quantity = f.Quantity

		index[f.MaterialID] = len(items)
		items = append(items, item)
	}
	return items, nil
}

func (s *Service) historyEntry(actor domain.Actor, action domain.RequestAction, message string) domain.HistoryEntry {
	return domain.HistoryEntry{
		Date:    s.now().Format(domain.HistoryDateLayout),
		User:    actor.Name,
		Action:  action,
		Message: message,
	}
}

func (s *Service) publish(t domain.EventType, req domain.MaterialRequest, message string) {
	if s.events == nil {
		return
	}
	s.events.Publish(domain.Event{
		Type:        t,
		RequestID:   req.ID,
		RequesterID: req.RequesterID,
		Status:      req.Status,
		Message:     message,
		At:          s.now(),
	})
}

func requireAdmin(actor domain.Actor) error {
	if !actor.IsAdmin() {
		return apperror.NewForbiddenError("Apenas administradores podem executar esta ação.")
	}
	return nil
}

func requireOwner(actor domain.Actor, verb string) func(domain.MaterialRequest) error {
	return func(req domain.MaterialRequest) error {
		if !req.IsOwnedBy(actor.UserID) {
			return apperror.NewForbiddenError(fmt.Sprintf("Apenas o solicitante pode %s esta solicitação.", verb))
		}
		return nil
	}
}

func normalizeForm(form domain.RequestForm) domain.RequestForm {
	form.Justification = strings.TrimSpace(form.Justification)
	form.Location = strings.TrimSpace(form.Location)
	return form
}

// repoError mantém os erros tipados e encapsula os demais como internos.
func repoError(err error, msg string) error {
	if _, ok := err.(apperror.AppError); ok {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
