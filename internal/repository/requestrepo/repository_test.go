package requestrepo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoqueti/internal/domain"
	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/logger"
	"estoqueti/internal/repository/requestrepo"
	"estoqueti/internal/repository/seed"
)

func TestCreateRequest_SequentialIDs(t *testing.T) {
	ctx := context.Background()

	empty := requestrepo.NewRequestRepository(logger.NewLogger("debug"))
	first, err := empty.CreateRequest(ctx, domain.MaterialRequest{Status: domain.StatusPendente})
	require.NoError(t, err)
	assert.Equal(t, "ID_00001", first.ID)

	seeded := requestrepo.NewRequestRepository(logger.NewLogger("debug"), seed.Requests()...)
	third, err := seeded.CreateRequest(ctx, domain.MaterialRequest{Status: domain.StatusPendente})
	require.NoError(t, err)
	assert.Equal(t, "ID_00003", third.ID)
}

func TestGetRequestByID_ReturnsCopy(t *testing.T) {
	repo := requestrepo.NewRequestRepository(logger.NewLogger("debug"), seed.Requests()...)
	ctx := context.Background()

	req, err := repo.GetRequestByID(ctx, "ID_00001")
	require.NoError(t, err)
	req.Items[0].Quantity = 999
	req.History = append(req.History, domain.HistoryEntry{Action: domain.ActionAtender})

	again, err := repo.GetRequestByID(ctx, "ID_00001")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items[0].Quantity)
	assert.Len(t, again.History, 1)
}

func TestListRequests_NewestFirst(t *testing.T) {
	repo := requestrepo.NewRequestRepository(logger.NewLogger("debug"), seed.Requests()...)

	list, err := repo.ListRequests(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ID_00002", list[0].ID)
	assert.Equal(t, "ID_00001", list[1].ID)
}

func TestUpdateRequest_NotFound(t *testing.T) {
	repo := requestrepo.NewRequestRepository(logger.NewLogger("debug"))

	_, err := repo.UpdateRequest(context.Background(), domain.MaterialRequest{ID: "ID_00042"})

	assert.IsType(t, &apperror.NotFoundError{}, err)
}
