package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgadmin/backend/internal/domain/inventory"
	"github.com/orgadmin/backend/internal/domain/shared"
)

func TestGormAssetRepository_FindAllUnknownSortFallsBack(t *testing.T) {
	db := setupCascadeTestDB(t)
	ctx := context.Background()

	repo := NewGormAssetRepository(db)

	asset, err := inventory.NewAsset("Projector")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, asset))

	filter := shared.DefaultFilter()
	filter.OrderBy = "purchase_date"

	assets, err := repo.FindAll(ctx, filter)

	assert.NoError(t, err)
	assert.Len(t, assets, 1)
}
