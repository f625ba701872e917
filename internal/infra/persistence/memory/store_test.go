package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"novasalud/internal/domain/entity"
	domainerrors "novasalud/internal/domain/errors"
	"novasalud/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSnapshotStore keeps the last saved snapshot as JSON so tests exercise the wire format.
type fakeSnapshotStore struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	saveErr error
	loadErr error
}

func (f *fakeSnapshotStore) Load(context.Context) (*entity.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.data == nil {
		return nil, repository.ErrSnapshotNotFound
	}
	snap := new(entity.Snapshot)
	if err := json.Unmarshal(f.data, snap); err != nil {
		return nil, err
	}

	return snap, nil
}

func (f *fakeSnapshotStore) Save(_ context.Context, snap *entity.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	f.data = data
	f.saves++

	return nil
}

func (f *fakeSnapshotStore) Close() error { return nil }

func (f *fakeSnapshotStore) put(t *testing.T, snap *entity.Snapshot) {
	t.Helper()
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	f.data = data
}

var fixedNow = time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, snapshots *fakeSnapshotStore, seedOnEmpty bool) *Store {
	t.Helper()
	store := NewStore(snapshots, slog.New(slog.DiscardHandler), Options{
		NotificationCapacity: 3,
		SeedOnEmpty:          seedOnEmpty,
		Now:                  func() time.Time { return fixedNow },
	})
	require.NoError(t, store.Load(context.Background()))

	return store
}

func TestStore_LoadSeedsWhenMissing(t *testing.T) {
	store := newTestStore(t, &fakeSnapshotStore{}, true)

	snap := store.Snapshot()
	assert.Len(t, snap.Products, 8)
	assert.Len(t, snap.Customers, 4)
	assert.Len(t, snap.Sales, 5)
	assert.Equal(t, entity.Counters{Product: 8, Customer: 4, Sale: 5}, snap.Counters)
}

func TestStore_LoadWithoutSeeding(t *testing.T) {
	store := newTestStore(t, &fakeSnapshotStore{}, false)

	snap := store.Snapshot()
	assert.Empty(t, snap.Products)
	assert.Empty(t, snap.Customers)
	assert.Empty(t, snap.Sales)
}

func TestStore_LoadSeedsOnlyEmptyCollections(t *testing.T) {
	snapshots := &fakeSnapshotStore{}
	snapshots.put(t, &entity.Snapshot{
		Products: []*entity.Product{{ID: "P042", Name: "Custom", Category: entity.CategoryMedicine}},
	})

	store := newTestStore(t, snapshots, true)

	snap := store.Snapshot()
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "P042", snap.Products[0].ID)
	assert.Len(t, snap.Customers, 4)
	assert.Equal(t, 42, snap.Counters.Product)
}

func TestStore_LoadRaisesCountersPastStoredIDs(t *testing.T) {
	snapshots := &fakeSnapshotStore{}
	snapshots.put(t, &entity.Snapshot{
		Products:  []*entity.Product{{ID: "P003"}, {ID: "P010"}, {ID: "legacy"}},
		Customers: []*entity.Customer{{ID: "C002"}},
		Sales:     []*entity.Sale{{ID: "V007"}},
		Counters:  entity.Counters{Product: 4, Customer: 9, Sale: 1},
	})
	store := newTestStore(t, snapshots, false)

	snap := store.Snapshot()
	assert.Equal(t, entity.Counters{Product: 10, Customer: 9, Sale: 7}, snap.Counters)

	product := &entity.Product{Name: "Nuevo"}
	require.NoError(t, NewProductRepository(store).CreateProduct(context.Background(), product))
	assert.Equal(t, "P011", product.ID)
}

func TestStore_LoadError(t *testing.T) {
	store := NewStore(&fakeSnapshotStore{loadErr: errors.New("disk gone")}, slog.New(slog.DiscardHandler), Options{})

	assert.Error(t, store.Load(context.Background()))
}

func TestStore_RejectsWorkBeforeLoad(t *testing.T) {
	ctx := context.Background()
	snapshots := &fakeSnapshotStore{}
	snapshots.put(t, &entity.Snapshot{
		Customers: []*entity.Customer{{ID: "C001", Name: "Ana Ruiz"}},
		Counters:  entity.Counters{Customer: 1},
	})
	store := NewStore(snapshots, slog.New(slog.DiscardHandler), Options{SeedOnEmpty: true, Now: func() time.Time { return fixedNow }})

	err := NewProductRepository(store).CreateProduct(ctx, &entity.Product{Name: "Paracetamol", Category: entity.CategoryMedicine})
	require.ErrorIs(t, err, domainerrors.ErrStoreNotReady)
	_, err = NewCustomerRepository(store).ListCustomers(ctx)
	require.ErrorIs(t, err, domainerrors.ErrStoreNotReady)
	assert.Zero(t, snapshots.saves)

	require.NoError(t, store.Load(ctx))

	snap := store.Snapshot()
	require.Len(t, snap.Customers, 1)
	assert.Equal(t, "C001", snap.Customers[0].ID)
	assert.Len(t, snap.Products, 8)
}

func TestTransactionManager_CommitPersistsAndPublishes(t *testing.T) {
	ctx := context.Background()
	snapshots := &fakeSnapshotStore{}
	store := newTestStore(t, snapshots, true)
	tm := NewTransactionManager(store)

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		products := f.NewProductRepository()
		p, err := products.FindProductByID(ctx, "P001")
		if err != nil {
			return err
		}
		p.Stock -= 2

		return products.UpdateProduct(ctx, p)
	})
	require.NoError(t, err)

	p, err := NewProductRepository(store).FindProductByID(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 148, p.Stock)
	assert.Equal(t, 1, snapshots.saves)

	persisted, err := snapshots.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 148, persisted.Products[0].Stock)
}

func TestTransactionManager_ErrorDiscardsDraft(t *testing.T) {
	ctx := context.Background()
	snapshots := &fakeSnapshotStore{}
	store := newTestStore(t, snapshots, true)
	tm := NewTransactionManager(store)
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		products := f.NewProductRepository()
		p, err := products.FindProductByID(ctx, "P001")
		if err != nil {
			return err
		}
		p.Stock = 0
		if err := products.UpdateProduct(ctx, p); err != nil {
			return err
		}
		if err := f.NewSaleRepository().CreateSale(ctx, &entity.Sale{Customer: "C001"}); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	snap := store.Snapshot()
	assert.Equal(t, 150, snap.Products[0].Stock)
	assert.Len(t, snap.Sales, 5)
	assert.Equal(t, 5, snap.Counters.Sale)
	assert.Zero(t, snapshots.saves)
}

func TestTransactionManager_SaveFailureDiscardsDraft(t *testing.T) {
	ctx := context.Background()
	snapshots := &fakeSnapshotStore{}
	store := newTestStore(t, snapshots, true)
	snapshots.saveErr = errors.New("quota exceeded")

	product := &entity.Product{Name: "Nuevo", Category: entity.CategoryMedicine}
	err := NewProductRepository(store).CreateProduct(ctx, product)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPersistenceFailed)
	assert.Len(t, store.Snapshot().Products, 8)
	assert.Equal(t, 8, store.Snapshot().Counters.Product)
}

func TestTransactionManager_CanceledContext(t *testing.T) {
	store := newTestStore(t, &fakeSnapshotStore{}, true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewTransactionManager(store).Execute(ctx, func(repository.RepositoryFactory) error {
		called = true

		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestTransactionManager_ConcurrentWritersAreSerialised(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeSnapshotStore{}, true)
	tm := NewTransactionManager(store)

	const writers = 20
	var wg sync.WaitGroup
	for range writers {
		wg.Go(func() {
			err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
				products := f.NewProductRepository()
				p, err := products.FindProductByID(ctx, "P008")
				if err != nil {
					return err
				}
				p.Stock--

				return products.UpdateProduct(ctx, p)
			})
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	p, err := NewProductRepository(store).FindProductByID(ctx, "P008")
	require.NoError(t, err)
	assert.Equal(t, 200-writers, p.Stock)
}

func TestRepositories_ReturnCopies(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeSnapshotStore{}, true)
	products := NewProductRepository(store)

	p, err := products.FindProductByID(ctx, "P001")
	require.NoError(t, err)
	p.Stock = 1
	p.Price = decimal.NewFromInt(999)

	again, err := products.FindProductByID(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 150, again.Stock)
	assert.Equal(t, "5.5", again.Price.String())
}

func TestRepositories_NotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeSnapshotStore{}, true)

	_, err := NewProductRepository(store).FindProductByID(ctx, "P999")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	assert.ErrorIs(t, NewProductRepository(store).DeleteProduct(ctx, "P999"), repository.ErrProductNotFound)

	_, err = NewCustomerRepository(store).FindCustomerByID(ctx, "C999")
	assert.ErrorIs(t, err, repository.ErrCustomerNotFound)
	assert.ErrorIs(t, NewCustomerRepository(store).UpdateCustomer(ctx, &entity.Customer{ID: "C999"}), repository.ErrCustomerNotFound)

	_, err = NewSaleRepository(store).FindSaleByID(ctx, "V999")
	assert.ErrorIs(t, err, repository.ErrSaleNotFound)
}

func TestSaleRepository_ExistsByCustomer(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeSnapshotStore{}, true)
	sales := NewSaleRepository(store)

	exists, err := sales.ExistsByCustomer(ctx, "C001")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, NewCustomerRepository(store).CreateCustomer(ctx, &entity.Customer{Name: "Nuevo"}))
	exists, err = sales.ExistsByCustomer(ctx, "C005")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteKeepsOrderAndNeverReusesIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeSnapshotStore{}, true)
	products := NewProductRepository(store)

	require.NoError(t, products.DeleteProduct(ctx, "P008"))
	created := &entity.Product{Name: "Gel antibacterial"}
	require.NoError(t, products.CreateProduct(ctx, created))
	assert.Equal(t, "P009", created.ID)

	list, err := products.ListProducts(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"P001", "P002", "P003", "P004", "P005", "P006", "P007", "P009"}, ids)
}

func TestNotificationRepository_RingBuffer(t *testing.T) {
	ctx := context.Background()
	snapshots := &fakeSnapshotStore{}
	store := newTestStore(t, snapshots, false)
	notifications := NewNotificationRepository(store)

	var ids []*entity.Notification
	for i := range 5 {
		n := entity.NewNotification(fmt.Sprintf("msg %d", i), entity.NotificationInfo, fixedNow.Add(time.Duration(i)*time.Minute))
		ids = append(ids, n)
		require.NoError(t, notifications.AppendNotification(ctx, n))
	}

	list, err := notifications.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "msg 4", list[0].Message)
	assert.Equal(t, "msg 3", list[1].Message)
	assert.Equal(t, "msg 2", list[2].Message)

	require.NoError(t, notifications.MarkNotificationAsRead(ctx, ids[3].ID))
	assert.ErrorIs(t, notifications.MarkNotificationAsRead(ctx, ids[0].ID), repository.ErrNotificationNotFound)

	list, err = notifications.ListNotifications(ctx)
	require.NoError(t, err)
	assert.False(t, list[0].Read)
	assert.True(t, list[1].Read)

	reloaded := newTestStore(t, snapshots, false)
	list, err = NewNotificationRepository(reloaded).ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "msg 4", list[0].Message)
	assert.True(t, list[1].Read)

	require.NoError(t, notifications.ClearNotifications(ctx))
	list, err = notifications.ListNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_ReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	snapshots := &fakeSnapshotStore{}
	store := newTestStore(t, snapshots, true)

	customer := &entity.Customer{Name: "Luis Torres", TotalPurchases: decimal.RequireFromString("10.25")}
	require.NoError(t, NewCustomerRepository(store).CreateCustomer(ctx, customer))
	assert.Equal(t, "C005", customer.ID)

	reloaded := newTestStore(t, snapshots, true)
	got, err := NewCustomerRepository(reloaded).FindCustomerByID(ctx, "C005")
	require.NoError(t, err)
	assert.Equal(t, "Luis Torres", got.Name)
	assert.True(t, got.TotalPurchases.Equal(decimal.RequireFromString("10.25")))
	assert.Equal(t, 5, reloaded.Snapshot().Counters.Customer)
}
