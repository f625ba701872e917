package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"novasalud/config"
	"novasalud/internal/domain/entity"
	"novasalud/internal/domain/repository"
	"novasalud/internal/domain/service"
	blobstore "novasalud/internal/infra/persistence/blob"
	"novasalud/internal/infra/persistence/memory"
	mockSvc "novasalud/internal/mocks/service"
	"novasalud/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

type pushedAlert struct {
	topic string
	title string
	body  string
}

// storeFixture wires every service against a seeded memory store persisted to an in-memory bucket.
type storeFixture struct {
	store     *memory.Store
	snapshots repository.SnapshotStore

	products      usecase.ProductUsecase
	customers     usecase.CustomerUsecase
	sales         usecase.SaleUsecase
	notifications usecase.NotificationUsecase

	mu     sync.Mutex
	events []*service.StoreEvent
	alerts []pushedAlert
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Store: &config.StoreConfig{
			NotificationCapacity: 50,
			RecentSalesLimit:     3,
			ExpiryWindow:         90 * 24 * time.Hour,
			Timezone:             "America/Lima",
			SeedOnEmpty:          true,
		},
	}
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	snapshots := blobstore.NewSnapshotStore(bucket, "nova-salud-storage.json")
	t.Cleanup(func() { _ = snapshots.Close() })

	return newStoreFixtureWith(t, snapshots, memory.Options{NotificationCapacity: 50, SeedOnEmpty: true})
}

func newStoreFixtureWith(t *testing.T, snapshots repository.SnapshotStore, opts memory.Options) *storeFixture {
	t.Helper()

	logger := newDiscardLogger()
	store := memory.NewStore(snapshots, logger, opts)
	require.NoError(t, store.Load(context.Background()))

	f := &storeFixture{store: store, snapshots: snapshots}

	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().PublishStoreEvent(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, event *service.StoreEvent) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.events = append(f.events, event)

			return nil
		}).Maybe()

	push := mockSvc.NewMockPushService(t)
	push.EXPECT().SendTopicNotification(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, topic, title, body string, _ map[string]string) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.alerts = append(f.alerts, pushedAlert{topic: topic, title: title, body: body})

			return nil
		}).Maybe()

	txManager := memory.NewTransactionManager(store)
	productRepo := memory.NewProductRepository(store)
	customerRepo := memory.NewCustomerRepository(store)
	saleRepo := memory.NewSaleRepository(store)
	dispatcher := EventDispatcherParams{
		Publisher: publisher,
		Push:      push,
		Config:    newTestConfig(),
		Logger:    logger,
	}

	f.products = NewProductService(ProductServiceParams{
		EventDispatcherParams: dispatcher,
		TxManager:             txManager,
		ProductRepo:           productRepo,
		Labels:                stubLabels{},
	})
	f.customers = NewCustomerService(CustomerServiceParams{
		TxManager:    txManager,
		CustomerRepo: customerRepo,
		SaleRepo:     saleRepo,
		Logger:       logger,
	})
	f.sales = NewSaleService(SaleServiceParams{
		EventDispatcherParams: dispatcher,
		TxManager:             txManager,
		SaleRepo:              saleRepo,
		ProductRepo:           productRepo,
		CustomerRepo:          customerRepo,
	})
	f.notifications = NewNotificationService(NotificationServiceParams{
		NotificationRepo: memory.NewNotificationRepository(store),
		Logger:           logger,
	})

	return f
}

func (f *storeFixture) eventTypes() []service.StoreEventType {
	f.mu.Lock()
	defer f.mu.Unlock()

	types := make([]service.StoreEventType, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.Type)
	}

	return types
}

func (f *storeFixture) pushedAlerts() []pushedAlert {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]pushedAlert(nil), f.alerts...)
}

func (f *storeFixture) product(t *testing.T, id string) *entity.Product {
	t.Helper()

	p, err := f.products.GetProductByID(context.Background(), id)
	require.NoError(t, err)

	return p
}

func (f *storeFixture) customer(t *testing.T, id string) *entity.Customer {
	t.Helper()

	c, err := f.customers.GetCustomerByID(context.Background(), id)
	require.NoError(t, err)

	return c
}

// latestNotification returns the head of the notification log.
func (f *storeFixture) latestNotification(t *testing.T) *entity.Notification {
	t.Helper()

	notifications, err := f.notifications.ListNotifications(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, notifications)

	return notifications[0]
}

func (f *storeFixture) notificationMessages(t *testing.T) []string {
	t.Helper()

	notifications, err := f.notifications.ListNotifications(context.Background())
	require.NoError(t, err)

	messages := make([]string, 0, len(notifications))
	for _, n := range notifications {
		messages = append(messages, n.Message)
	}

	return messages
}

type stubLabels struct{}

func (stubLabels) GenerateProductLabel(productID string, _ *string) ([]byte, error) {
	return []byte("label:" + productID), nil
}

func (stubLabels) ParseProductLabel(payload string) (string, error) {
	return payload, nil
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}
