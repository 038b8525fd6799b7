package movementrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoqueti/internal/domain"
	"estoqueti/internal/pkg/logger"
)

func TestAppendMovement_UniqueIDsWithinSameMillisecond(t *testing.T) {
	repo := NewMovementRepository(logger.NewLogger("debug"))
	fixed := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	first, err := repo.AppendMovement(ctx, domain.Movement{Type: domain.MovementSaida, MaterialID: "m1", Quantity: 2})
	require.NoError(t, err)
	second, err := repo.AppendMovement(ctx, domain.Movement{Type: domain.MovementSaida, MaterialID: "m2", Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, "mov-1710063000000", first.ID)
	assert.Equal(t, "mov-1710063000001", second.ID)
	assert.Equal(t, "2024-03-10", first.Date)
}

func TestListMovements_NewestFirst(t *testing.T) {
	repo := NewMovementRepository(logger.NewLogger("debug"),
		domain.Movement{ID: "mov-1", Type: domain.MovementEntrada, MaterialID: "m1", Quantity: 10},
	)
	ctx := context.Background()

	added, err := repo.AppendMovement(ctx, domain.Movement{Type: domain.MovementDevolucao, MaterialID: "m1", Quantity: 1, Date: "2024-01-02"})
	require.NoError(t, err)

	list, err := repo.ListMovements(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, added.ID, list[0].ID)
	assert.Equal(t, "2024-01-02", list[0].Date)
	assert.Equal(t, "mov-1", list[1].ID)
}
