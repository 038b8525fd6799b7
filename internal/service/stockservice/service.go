package stockservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
)

// MaterialRepository define o contrato que o livro de estoque espera do catálogo.
type MaterialRepository interface {
	GetMaterialByID(ctx context.Context, id string) (domain.Material, error)
	ListMaterials(ctx context.Context, filter domain.MaterialFilter) ([]domain.Material, error)
	AdjustStock(ctx context.Context, id string, delta int) (domain.Material, error)
}

// MovementRepository define o contrato do livro de movimentações.
type MovementRepository interface {
	AppendMovement(ctx context.Context, movement domain.Movement) (domain.Movement, error)
	ListMovements(ctx context.Context) ([]domain.Movement, error)
}

// EventPublisher recebe os avisos de estoque baixo.
type EventPublisher interface {
	Publish(evt domain.Event)
}

// Validator valida formulários com tags `validate`.
type Validator interface {
	Struct(s interface{}) error
}

// Service é o livro de estoque: ajustes de saldo e registro de movimentações.
type Service struct {
	materials MaterialRepository
	movements MovementRepository
	events    EventPublisher
	validator Validator
	logger    logger.Logger
	now       func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(materials MaterialRepository, movements MovementRepository, events EventPublisher, v Validator, logger logger.Logger) *Service {
	return &Service{
		materials: materials,
		movements: movements,
		events:    events,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// AdjustStock soma ou subtrai quantity do saldo do material. Não há limite inferior:
// quem precisa impedir saldo negativo deve verificar antes de chamar.
func (s *Service) AdjustStock(ctx context.Context, materialID string, quantity int, direction domain.StockDirection) (domain.Material, error) {
	s.logger.Debug("Iniciando ajuste de estoque no serviço.", map[string]interface{}{
		"material_id": materialID,
		"quantity":    quantity,
		"direction":   direction,
	})

	if quantity <= 0 {
		return domain.Material{}, apperror.NewValidationError("A quantidade deve ser maior que zero.")
	}

	var delta int
	switch direction {
	case domain.StockAdd:
		delta = quantity
	case domain.StockRemove:
		delta = -quantity
	default:
		return domain.Material{}, apperror.NewValidationError(fmt.Sprintf("Direção de ajuste inválida: %s.", direction))
	}

	material, err := s.materials.AdjustStock(ctx, materialID, delta)
	if err != nil {
		s.logger.Error("Falha ao ajustar estoque no repositório.", err)
		return domain.Material{}, repoError(err, "Falha interna ao ajustar estoque.")
	}

	if material.CurrentStock < 0 {
		s.logger.Warn("Estoque negativo após ajuste.", map[string]interface{}{"material_id": materialID, "current_stock": material.CurrentStock})
	}
	if material.IsLowStock() && s.events != nil {
		stock := material.CurrentStock
		s.events.Publish(domain.Event{
			Type:       domain.EventStockLow,
			MaterialID: material.ID,
			Stock:      &stock,
			Message:    fmt.Sprintf("%s abaixo do estoque mínimo (%d/%d).", material.Description, material.CurrentStock, material.MinStock),
			At:         s.now(),
		})
	}

	s.logger.Info("Estoque ajustado com sucesso.", map[string]interface{}{
		"material_id":   material.ID,
		"current_stock": material.CurrentStock,
	})
	return material, nil
}

// RecordMovement grava uma movimentação imutável e retorna o ID atribuído.
// O livro não decide o sentido do saldo: o chamador ajusta o estoque separadamente.
func (s *Service) RecordMovement(ctx context.Context, entry domain.Movement) (string, error) {
	switch entry.Type {
	case domain.MovementEntrada, domain.MovementSaida, domain.MovementDevolucao:
	default:
		return "", apperror.NewValidationError(fmt.Sprintf("Tipo de movimentação inválido: %s.", entry.Type))
	}
	if entry.MaterialID == "" {
		return "", apperror.NewValidationError("Selecione um material.")
	}
	if entry.Quantity <= 0 {
		return "", apperror.NewValidationError("A quantidade deve ser maior que zero.")
	}
	if entry.Date == "" {
		entry.Date = s.now().Format(domain.DateLayout)
	}

	recorded, err := s.movements.AppendMovement(ctx, entry)
	if err != nil {
		s.logger.Error("Falha ao registrar movimentação.", err)
		return "", repoError(err, "Falha interna ao registrar movimentação.")
	}
	return recorded.ID, nil
}

// RegisterEntry registra uma entrada (compra) ou devolução: soma ao saldo e grava a movimentação.
func (s *Service) RegisterEntry(ctx context.Context, actor domain.Actor, form domain.StockEntryForm) (domain.Movement, error) {
	s.logger.Debug("Iniciando registro de entrada no serviço.", map[string]interface{}{"material_id": form.MaterialID, "type": form.Type})

	// 1. Validação do formulário
	if err := s.validator.Struct(form); err != nil {
		s.logger.Warn("Formulário de entrada inválido.", map[string]interface{}{"error": err.Error()})
		return domain.Movement{}, err
	}

	// 2. Material precisa existir no catálogo
	if _, err := s.materials.GetMaterialByID(ctx, form.MaterialID); err != nil {
		return domain.Movement{}, repoError(err, "Falha interna ao buscar material.")
	}

	// 3. ENTRADA e DEVOLUCAO aumentam o saldo
	if _, err := s.AdjustStock(ctx, form.MaterialID, form.Quantity, form.Type.Direction()); err != nil {
		return domain.Movement{}, err
	}

	// 4. Movimentação
	movement := domain.Movement{
		Type:        form.Type,
		MaterialID:  form.MaterialID,
		Quantity:    form.Quantity,
		Date:        s.now().Format(domain.DateLayout),
		Responsible: responsibleName(actor),
		NF:          strings.TrimSpace(form.NF),
		Ticket:      strings.TrimSpace(form.Observation),
		Contract:    strings.TrimSpace(form.Contract),
		Order:       strings.TrimSpace(form.Order),
	}
	if form.Type == domain.MovementDevolucao {
		movement.DeliveredBy = strings.TrimSpace(form.DeliveredBy)
	}

	recorded, err := s.movements.AppendMovement(ctx, movement)
	if err != nil {
		s.logger.Error("Falha ao registrar movimentação de entrada.", err)
		return domain.Movement{}, repoError(err, "Falha interna ao registrar movimentação.")
	}

	s.logger.Info("Entrada registrada com sucesso.", map[string]interface{}{"movement_id": recorded.ID, "type": recorded.Type})
	return recorded, nil
}

// ListMovements retorna as movimentações filtradas, da mais recente para a mais antiga.
func (s *Service) ListMovements(ctx context.Context, filter domain.MovementFilter) ([]domain.MovementView, error) {
	movements, err := s.movements.ListMovements(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar movimentações.", err)
		return nil, repoError(err, "Falha interna ao listar movimentações.")
	}

	materials, err := s.materials.ListMaterials(ctx, domain.MaterialFilter{})
	if err != nil {
		s.logger.Error("Falha ao listar materiais para o relatório.", err)
		return nil, repoError(err, "Falha interna ao listar materiais.")
	}
	descriptions := make(map[string]string, len(materials))
	for _, m := range materials {
		descriptions[m.ID] = m.Description
	}

	term := strings.ToLower(strings.TrimSpace(filter.Material))
	views := make([]domain.MovementView, 0, len(movements))
	for _, mv := range movements {
		if filter.Date != "" && mv.Date != filter.Date {
			continue
		}
		if filter.Type != "" && mv.Type != filter.Type {
			continue
		}
		description, ok := descriptions[mv.MaterialID]
		if !ok {
			description = mv.MaterialID // material excluído do catálogo
		}
		if term != "" && !strings.Contains(strings.ToLower(description), term) {
			continue
		}
		views = append(views, domain.MovementView{Movement: mv, MaterialDescription: description})
	}

	s.logger.Debug("Movimentações listadas.", map[string]interface{}{"count": len(views)})
	return views, nil
}

func responsibleName(actor domain.Actor) string {
	if actor.Name == "" {
		return "Admin"
	}
	return actor.Name
}

// repoError mantém os erros tipados do repositório e encapsula os demais como internos.
func repoError(err error, msg string) error {
	if _, ok := err.(apperror.AppError); ok {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
