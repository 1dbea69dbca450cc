package deliveries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/weilintw/farmgate-backend/pkg/db/models"
	"github.com/weilintw/farmgate-backend/pkg/enums"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.ContractDelivery{}))
	return NewRepository(conn)
}

func seedRecord(t *testing.T, repo Repository) models.ContractDelivery {
	t.Helper()
	rec := validFields(t).model()
	require.NoError(t, repo.Create(context.Background(), &rec))
	require.NotZero(t, rec.ID)
	return rec
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	created := seedRecord(t, repo)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "大雞腿", got.MeatName)
	assert.Equal(t, enums.FreezingTypeFrozen, got.FreezingType)
	assert.True(t, got.TotalWeight.Equal(created.TotalWeight), "totalWeight = %s", got.TotalWeight)
	assert.True(t, got.WeightGrade.Equal(created.WeightGrade), "weightGrade = %s", got.WeightGrade)
}

func TestRepositoryListOrdersByID(t *testing.T) {
	repo := newTestRepo(t)
	first := seedRecord(t, repo)
	second := seedRecord(t, repo)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
}

func TestRepositoryCreateBatch(t *testing.T) {
	repo := newTestRepo(t)

	recs := []models.ContractDelivery{
		validFields(t).model(),
		validFields(t).model(),
		validFields(t).model(),
	}
	created, err := repo.CreateBatch(context.Background(), recs)
	require.NoError(t, err)
	require.Len(t, created, 3)
	for _, rec := range created {
		assert.NotZero(t, rec.ID)
	}

	empty, err := repo.CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepositoryUpdatePartial(t *testing.T) {
	repo := newTestRepo(t)
	created := seedRecord(t, repo)

	boxes := 25
	updated, err := repo.Update(context.Background(), created.ID, Fields{BoxCount: &boxes})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.BoxCount)

	// Untouched fields survive, including the average weight: it is not
	// rederived when counts or totals change.
	assert.Equal(t, created.MeatName, updated.MeatName)
	assert.Equal(t, created.PieceCount, updated.PieceCount)
	assert.True(t, updated.AvgWeight.Equal(created.AvgWeight), "avgWeight = %s", updated.AvgWeight)
	assert.True(t, updated.TotalWeight.Equal(created.TotalWeight), "totalWeight = %s", updated.TotalWeight)
}

func TestRepositoryUpdateTotalLeavesAverage(t *testing.T) {
	repo := newTestRepo(t)
	created := seedRecord(t, repo)

	updated, err := repo.Update(context.Background(), created.ID, Fields{TotalWeight: dec(t, "999.99")})
	require.NoError(t, err)
	assert.Equal(t, "999.99", updated.TotalWeight.String())
	assert.True(t, updated.AvgWeight.Equal(created.AvgWeight), "avgWeight must not be recomputed, got %s", updated.AvgWeight)
}

func TestRepositoryUpdateMissing(t *testing.T) {
	repo := newTestRepo(t)

	boxes := 1
	_, err := repo.Update(context.Background(), 9999, Fields{BoxCount: &boxes})
	require.ErrorIs(t, err, ErrNotFound)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
