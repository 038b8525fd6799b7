package materialrepo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/repository/materialrepo"
	"estoqueti/internal/repository/seed"
)

func newRepo() *materialrepo.MaterialRepository {
	return materialrepo.NewMaterialRepository(logger.NewLogger("debug"), seed.Materials()...)
}

func TestCreateMaterial_AssignsNextDATCodeAndZeroStock(t *testing.T) {
	repo := newRepo()

	created, err := repo.CreateMaterial(context.Background(), domain.Material{
		Description:  "Patch Cord 2m",
		Unit:         "Unidade",
		SupplierID:   2,
		CurrentStock: 99,
		MinStock:     5,
		Category:     "Cabeamento",
	})

	require.NoError(t, err)
	assert.Equal(t, "DAT-011", created.CodeDAT)
	assert.Equal(t, 0, created.CurrentStock)
	assert.NotEmpty(t, created.ID)

	second, err := repo.CreateMaterial(context.Background(), domain.Material{Description: "Outro", Unit: "Kit", SupplierID: 1, Category: "Geral"})
	require.NoError(t, err)
	assert.Equal(t, "DAT-012", second.CodeDAT)
}

func TestCreateMaterial_EmptyCatalog(t *testing.T) {
	repo := materialrepo.NewMaterialRepository(logger.NewLogger("debug"))

	created, err := repo.CreateMaterial(context.Background(), domain.Material{Description: "Primeiro"})

	require.NoError(t, err)
	assert.Equal(t, "DAT-001", created.CodeDAT)
}

func TestAdjustStock_NoLowerBound(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	m, err := repo.AdjustStock(ctx, "m5", -3)

	require.NoError(t, err)
	assert.Equal(t, -1, m.CurrentStock)

	stored, err := repo.GetMaterialByID(ctx, "m5")
	require.NoError(t, err)
	assert.Equal(t, -1, stored.CurrentStock)
}

func TestAdjustStock_NotFound(t *testing.T) {
	repo := newRepo()

	_, err := repo.AdjustStock(context.Background(), "inexistente", 1)

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestUpdateMaterial_KeepsStockAndCode(t *testing.T) {
	repo := newRepo()

	updated, err := repo.UpdateMaterial(context.Background(), domain.Material{
		ID:           "m1",
		CodeDAT:      "DAT-999",
		Description:  "Cabo UTP Cat6 Azul 305m",
		Unit:         "Caixa",
		SupplierID:   2,
		CurrentStock: 0,
		MinStock:     12,
		Category:     "Cabeamento",
	})

	require.NoError(t, err)
	assert.Equal(t, "DAT-001", updated.CodeDAT)
	assert.Equal(t, 45, updated.CurrentStock)
	assert.Equal(t, 12, updated.MinStock)
}

func TestListMaterials_Filters(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	byQuery, err := repo.ListMaterials(ctx, domain.MaterialFilter{Query: "dell"})
	require.NoError(t, err)
	assert.Len(t, byQuery, 2)

	byCode, err := repo.ListMaterials(ctx, domain.MaterialFilter{Query: "dat-010"})
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "m10", byCode[0].ID)

	low, err := repo.ListMaterials(ctx, domain.MaterialFilter{LowStockOnly: true})
	require.NoError(t, err)
	ids := make([]string, 0, len(low))
	for _, m := range low {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"m3", "m4", "m5", "m6", "m7", "m9", "m10"}, ids)

	epi, err := repo.ListMaterials(ctx, domain.MaterialFilter{Category: "epi"})
	require.NoError(t, err)
	assert.Len(t, epi, 2)
}

func TestDeleteMaterial(t *testing.T) {
	repo := newRepo()
	ctx := context.Background()

	require.NoError(t, repo.DeleteMaterial(ctx, "m6"))
	_, err := repo.GetMaterialByID(ctx, "m6")
	assert.IsType(t, &apperror.NotFoundError{}, err)

	assert.IsType(t, &apperror.NotFoundError{}, repo.DeleteMaterial(ctx, "m6"))
}
