package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"novasalud/config"
	deliverycontext "novasalud/internal/delivery/context"
	httpmiddleware "novasalud/internal/delivery/http/middleware"
	"novasalud/internal/delivery/http/router"
	"novasalud/internal/delivery/http/router/handler"
	"novasalud/internal/infra/auth"
	"novasalud/internal/infra/notification"
	blobstore "novasalud/internal/infra/persistence/blob"
	"novasalud/internal/infra/persistence/memory"
	"novasalud/internal/infra/pubsub"
	"novasalud/internal/infra/qrcode"
	"novasalud/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "mostrador-2023"

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
	RequestID string `json:"request_id"`
}

type apiFixture struct {
	echo  *echo.Echo
	token string
	logs  *logBuffer
}

// logBuffer collects log output for assertions.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func newAPIConfig(t *testing.T) *config.Config {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Store: &config.StoreConfig{
			NotificationCapacity: 50,
			RecentSalesLimit:     3,
			ExpiryWindow:         90 * 24 * time.Hour,
			Timezone:             "America/Lima",
			SeedOnEmpty:          true,
		},
		Auth: &config.AuthConfig{
			Enabled:              true,
			OperatorName:         "farmacia",
			OperatorPasswordHash: string(hash),
			SecretKey:            "server_test_secret_key_long_enough",
			AccessTTL:            time.Hour,
		},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"

	return cfg
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	cfg := newAPIConfig(t)
	logs := &logBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))

	snapshots := blobstore.NewSnapshotStore(memblob.OpenBucket(nil), "nova-salud-storage.json")
	t.Cleanup(func() { _ = snapshots.Close() })
	store := memory.NewStore(snapshots, logger, memory.Options{NotificationCapacity: 50, SeedOnEmpty: true})
	require.NoError(t, store.Load(context.Background()))

	txManager := memory.NewTransactionManager(store)
	productRepo := memory.NewProductRepository(store)
	customerRepo := memory.NewCustomerRepository(store)
	saleRepo := memory.NewSaleRepository(store)
	dispatcher := impl.EventDispatcherParams{
		Publisher: pubsub.NewNoopPublisher(logger),
		Push:      notification.NewNoopPushService(logger),
		Config:    cfg,
		Logger:    logger,
	}

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	dashboard, err := impl.NewDashboardService(impl.DashboardServiceParams{
		ProductRepo:  productRepo,
		CustomerRepo: customerRepo,
		SaleRepo:     saleRepo,
		Config:       cfg,
		Logger:       logger,
	})
	require.NoError(t, err)

	params := router.RouterParams{
		ProductHandler: handler.NewProductHandler(handler.ProductHandlerParams{
			ProductUC: impl.NewProductService(impl.ProductServiceParams{
				EventDispatcherParams: dispatcher,
				TxManager:             txManager,
				ProductRepo:           productRepo,
				Labels:                qrcode.NewLabelService(128, "M"),
			}),
			Logger: logger,
		}),
		CustomerHandler: handler.NewCustomerHandler(handler.CustomerHandlerParams{
			CustomerUC: impl.NewCustomerService(impl.CustomerServiceParams{
				TxManager:    txManager,
				CustomerRepo: customerRepo,
				SaleRepo:     saleRepo,
				Logger:       logger,
			}),
			Logger: logger,
		}),
		SaleHandler: handler.NewSaleHandler(handler.SaleHandlerParams{
			SaleUC: impl.NewSaleService(impl.SaleServiceParams{
				EventDispatcherParams: dispatcher,
				TxManager:             txManager,
				SaleRepo:              saleRepo,
				ProductRepo:           productRepo,
				CustomerRepo:          customerRepo,
			}),
			Logger: logger,
		}),
		NotificationHandler: handler.NewNotificationHandler(handler.NotificationHandlerParams{
			NotificationUC: impl.NewNotificationService(impl.NotificationServiceParams{
				NotificationRepo: memory.NewNotificationRepository(store),
				Logger:           logger,
			}),
			Logger: logger,
		}),
		DashboardHandler: handler.NewDashboardHandler(handler.DashboardHandlerParams{DashboardUC: dashboard}),
		SessionHandler: handler.NewSessionHandler(handler.SessionHandlerParams{
			SessionUC: impl.NewSessionService(impl.SessionServiceParams{
				Config: cfg,
				Hasher: auth.NewBcryptHasherWithCost(bcrypt.MinCost),
				Tokens: tokens,
				Logger: logger,
			}),
		}),
		AuthMiddleware: httpmiddleware.NewAuthMiddleware(httpmiddleware.AuthMiddlewareParams{TokenSvc: tokens, Config: cfg}),
	}

	f := &apiFixture{echo: NewEcho(cfg, logger, params), logs: logs}

	rec := f.do(t, http.MethodPost, "/auth/login", `{"operator":"farmacia","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &login))
	f.token = login.AccessToken

	return f
}

func (f *apiFixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if f.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+f.token)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func TestServer_HealthIsPublic(t *testing.T) {
	f := newAPIFixture(t)
	f.token = ""

	rec := f.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	assert.Equal(t, env.RequestID, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestServer_RequiresToken(t *testing.T) {
	f := newAPIFixture(t)
	f.token = ""

	rec := f.do(t, http.MethodGet, "/products", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", decodeEnvelope(t, rec).Error.Code)
}

func TestServer_LoginWrongPassword(t *testing.T) {
	f := newAPIFixture(t)
	f.token = ""

	rec := f.do(t, http.MethodPost, "/auth/login", `{"operator":"farmacia","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeEnvelope(t, rec).Error.Code)
}

func TestServer_ListProductsFilters(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/products?stock_level=low", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var products []struct {
		ID          string `json:"id"`
		StockStatus struct {
			Status string `json:"status"`
			Class  string `json:"class"`
		} `json:"stock_status"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &products))
	require.Len(t, products, 2)
	assert.Equal(t, "P003", products[0].ID)
	assert.Equal(t, "P007", products[1].ID)
	assert.Equal(t, "low", products[0].StockStatus.Status)
	assert.Equal(t, "warning", products[0].StockStatus.Class)

	rec = f.do(t, http.MethodGet, "/products?requires_prescription=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ListCategories(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/products/categories", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var categories []string
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &categories))
	assert.Equal(t, []string{"Medicamentos", "Equipos Médicos", "Cuidado Personal", "Vitaminas y Suplementos"}, categories)
}

func TestServer_SaleLogsOperator(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/sales",
		`{"customer":"C002","products":[{"product_id":"P002","quantity":1}],"total":"8.90","payment_method":"Cash"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodDelete, "/sales/V006", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	logs := f.logs.String()
	assert.Contains(t, logs, `msg="Sale recorded" sale_id=V006`)
	assert.Contains(t, logs, `msg="Sale deleted" sale_id=V006 operator=farmacia`)
}

func TestServer_SaleLifecycle(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/sales",
		`{"customer":"C001","products":[{"product_id":"P001","quantity":2}],"total":"11.00","payment_method":"Cash"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sale struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &sale))
	assert.Equal(t, "V006", sale.ID)
	assert.Equal(t, "Completed", sale.Status)

	var product struct {
		Stock int `json:"stock"`
	}
	rec = f.do(t, http.MethodGet, "/products/P001", "")
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &product))
	assert.Equal(t, 148, product.Stock)

	rec = f.do(t, http.MethodGet, "/sales/V006", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		CustomerName string `json:"customer_name"`
		Lines        []struct {
			ProductName string `json:"product_name"`
		} `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &detail))
	assert.Equal(t, "Juan Pérez García", detail.CustomerName)
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, "Paracetamol 500mg", detail.Lines[0].ProductName)

	rec = f.do(t, http.MethodPatch, "/sales/V006", `{"status":"Refunded"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/products/P001", "")
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &product))
	assert.Equal(t, 150, product.Stock)

	rec = f.do(t, http.MethodPatch, "/sales/V006", `{"status":"Completed"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_STATUS_TRANSITION", decodeEnvelope(t, rec).Error.Code)
}

func TestServer_SaleErrors(t *testing.T) {
	f := newAPIFixture(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "no lines",
			method:     http.MethodPost,
			target:     "/sales",
			body:       `{"customer":"C001","products":[],"total":"0","payment_method":"Cash"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "insufficient stock",
			method:     http.MethodPost,
			target:     "/sales",
			body:       `{"customer":"C001","products":[{"product_id":"P003","quantity":999}],"total":"10","payment_method":"Yape"}`,
			wantStatus: http.StatusConflict,
			wantCode:   "INSUFFICIENT_STOCK",
		},
		{
			name:       "unknown sale",
			method:     http.MethodGet,
			target:     "/sales/V404",
			wantStatus: http.StatusNotFound,
			wantCode:   "SALE_NOT_FOUND",
		},
		{
			name:       "malformed body",
			method:     http.MethodPost,
			target:     "/sales",
			body:       `{"customer":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestServer_CustomerWithSalesCannotBeDeleted(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodDelete, "/customers/C001", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CUSTOMER_HAS_SALES", decodeEnvelope(t, rec).Error.Code)

	rec = f.do(t, http.MethodPost, "/customers/reconcile?apply=sometimes", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Notifications(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/notifications", `{"message":"Inventory count at 18:00","type":"info"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))

	rec = f.do(t, http.MethodGet, "/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list handler.NotificationList
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &list))
	require.NotEmpty(t, list.Items)
	assert.Equal(t, "Inventory count at 18:00", list.Items[0].Message)
	assert.Equal(t, 1, list.Unread)

	rec = f.do(t, http.MethodPost, "/notifications/"+created.ID+"/read", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/notifications/not-a-uuid/read", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodDelete, "/notifications", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/notifications", "")
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &list))
	assert.Empty(t, list.Items)
	assert.Zero(t, list.Unread)
}

func TestServer_ProductLabel(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/products/P001/label.png", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte("\x89PNG"), rec.Body.Bytes()[:4])
}

func TestServer_DashboardMetrics(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/dashboard/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var metrics struct {
		OrderCount          int    `json:"order_count"`
		TotalSalesFormatted string `json:"total_sales_formatted"`
		ProductCount        int    `json:"product_count"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &metrics))
	assert.Equal(t, 4, metrics.OrderCount)
	assert.Equal(t, "S/ 110.60", metrics.TotalSalesFormatted)
	assert.Equal(t, 8, metrics.ProductCount)
}
