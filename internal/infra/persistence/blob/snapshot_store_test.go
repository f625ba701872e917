package blob

import (
	"context"
	"testing"
	"time"

	"novasalud/internal/domain/entity"
	"novasalud/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestSnapshotStore_LoadMissing(t *testing.T) {
	store := NewSnapshotStore(memblob.OpenBucket(nil), "state.json")
	defer store.Close()

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, repository.ErrSnapshotNotFound)
}

func TestSnapshotStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(memblob.OpenBucket(nil), "state.json")
	defer store.Close()

	expiry := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	saved := &entity.Snapshot{
		Products: []*entity.Product{{
			ID:         "P001",
			Name:       "Paracetamol 500mg",
			Category:   entity.CategoryMedicine,
			Price:      decimal.RequireFromString("5.50"),
			Stock:      150,
			ExpiryDate: &expiry,
		}},
		Sales: []*entity.Sale{{
			ID:       "V001",
			Customer: "C001",
			Products: []entity.SaleLine{{ProductID: "P001", Quantity: 2}},
			Total:    decimal.RequireFromString("11.00"),
			Status:   entity.SaleStatusCompleted,
		}},
		Counters: entity.Counters{Product: 1, Sale: 1},
	}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Products, 1)
	assert.Equal(t, "P001", loaded.Products[0].ID)
	assert.True(t, saved.Products[0].Price.Equal(loaded.Products[0].Price))
	assert.True(t, expiry.Equal(*loaded.Products[0].ExpiryDate))
	require.Len(t, loaded.Sales, 1)
	assert.Equal(t, []entity.SaleLine{{ProductID: "P001", Quantity: 2}}, loaded.Sales[0].Products)
	assert.Equal(t, saved.Counters, loaded.Counters)
}

func TestSnapshotStore_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	require.NoError(t, bucket.WriteAll(ctx, "state.json", []byte("{not json"), nil))

	store := NewSnapshotStore(bucket, "state.json")
	defer store.Close()

	_, err := store.Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrSnapshotNotFound)
}

func TestOpen_MemURL(t *testing.T) {
	store, err := Open(context.Background(), "mem://", "state.json")
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}
