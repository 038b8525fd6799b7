package movementrepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
)

// MovementRepository é o livro de movimentações: apenas inserção, nunca edição.
type MovementRepository struct {
	mu        sync.RWMutex
	movements []domain.Movement // Ordem de inserção
	ids       map[string]struct{}
	now       func() time.Time
	logger    logger.Logger
}

// NewMovementRepository cria o livro. A carga inicial deve vir da mais antiga para a mais recente.
func NewMovementRepository(log logger.Logger, seed ...domain.Movement) *MovementRepository {
	r := &MovementRepository{ids: make(map[string]struct{}), now: time.Now, logger: log}
	for _, m := range seed {
		r.movements = append(r.movements, m)
		r.ids[m.ID] = struct{}{}
	}
	return r
}

// nextID gera "mov-<unix millis>". Em caso de colisão avança o milissegundo,
// garantindo unicidade dentro do processo. Deve ser chamado com o lock adquirido.
func (r *MovementRepository) nextID(at time.Time) string {
	ms := at.UnixMilli()
	for {
		id := fmt.Sprintf("mov-%d", ms)
		if _, taken := r.ids[id]; !taken {
			return id
		}
		ms++
	}
}

// AppendMovement grava uma nova movimentação e devolve o registro com ID atribuído.
func (r *MovementRepository) AppendMovement(ctx context.Context, movement domain.Movement) (domain.Movement, error) {
	if err := ctx.Err(); err != nil {
		return domain.Movement{}, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	movement.ID = r.nextID(now)
	movement.CreatedAt = now
	if movement.Date == "" {
		movement.Date = now.Format(domain.DateLayout)
	}

	r.movements = append(r.movements, movement)
	r.ids[movement.ID] = struct{}{}

	r.logger.Info("Movimentação registrada.", map[string]interface{}{
		"id":          movement.ID,
		"type":        movement.Type,
		"material_id": movement.MaterialID,
		"quantity":    movement.Quantity,
	})
	return movement, nil
}

// ListMovements retorna todas as movimentações, da mais recente para a mais antiga.
func (r *MovementRepository) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.NewInternalError("Operação cancelada.", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]domain.Movement, 0, len(r.movements))
	for i := len(r.movements) - 1; i >= 0; i-- {
		list = append(list, r.movements[i])
	}
	return list, nil
}
