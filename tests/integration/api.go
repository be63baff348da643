//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appaudit "github.com/medstock/backend/internal/application/audit"
	catalogapp "github.com/medstock/backend/internal/application/catalog"
	identityapp "github.com/medstock/backend/internal/application/identity"
	inventoryapp "github.com/medstock/backend/internal/application/inventory"
	partnerapp "github.com/medstock/backend/internal/application/partner"
	reportapp "github.com/medstock/backend/internal/application/report"
	retentionapp "github.com/medstock/backend/internal/application/retention"
	tradeapp "github.com/medstock/backend/internal/application/trade"
	"github.com/medstock/backend/internal/infrastructure/auth"
	"github.com/medstock/backend/internal/infrastructure/config"
	"github.com/medstock/backend/internal/infrastructure/persistence"
	"github.com/medstock/backend/internal/infrastructure/storage"
	"github.com/medstock/backend/internal/interfaces/http/dto"
	"github.com/medstock/backend/internal/interfaces/http/handler"
	"github.com/medstock/backend/internal/interfaces/http/middleware"
	"github.com/medstock/backend/internal/interfaces/http/router"
	"github.com/medstock/backend/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// TestAPI is the full HTTP stack wired to a test database
type TestAPI struct {
	Engine  *gin.Engine
	Client  *testutil.APIClient
	Archive *storage.MemoryArchive
	DB      *TestDB

	users *identityapp.UserService
}

// NewTestAPI wires every service and handler the way the server does, with
// in-memory token revocation and report archive
func NewTestAPI(t *testing.T, tdb *TestDB) *TestAPI {
	t.Helper()
	middleware.SetupValidator()

	db := tdb.DB
	log := zap.NewNop()
	jwtService := testutil.NewJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	archive := storage.NewMemoryArchive()

	userRepo := persistence.NewGormUserRepository(db)
	vendorRepo := persistence.NewGormVendorRepository(db)
	itemRepo := persistence.NewGormItemRepository(db)
	locationRepo := persistence.NewGormLocationRepository(db)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db)
	activityRepo := persistence.NewGormActivityLogRepository(db)
	recorder := appaudit.NewActivityRecorder(activityRepo, log)

	cleanupService, err := retentionapp.NewCleanupService(
		persistence.NewGormRetentionStore(db, 5*time.Second), nil, recorder, retentionapp.WithLogger(log))
	require.NoError(t, err)

	userService := identityapp.NewUserService(userRepo, blacklist, time.Hour, recorder, log)

	h := router.Handlers{
		Health:        handler.NewHealthHandler(pingerFunc(tdb.SqlDB.PingContext)),
		Auth:          handler.NewAuthHandler(identityapp.NewAuthService(userRepo, jwtService, blacklist, recorder, log)),
		User:          handler.NewUserHandler(userService),
		Notification:  handler.NewNotificationHandler(identityapp.NewNotificationService(persistence.NewGormNotificationRepository(db), userRepo, recorder)),
		ActivityLog:   handler.NewActivityLogHandler(appaudit.NewActivityLogService(activityRepo)),
		Vendor:        handler.NewVendorHandler(partnerapp.NewVendorService(vendorRepo, recorder)),
		Item:          handler.NewItemHandler(catalogapp.NewItemService(itemRepo, recorder)),
		PurchaseOrder: handler.NewPurchaseOrderHandler(tradeapp.NewPurchaseOrderService(orderRepo, vendorRepo, itemRepo, recorder, log)),
		ASN:           handler.NewASNHandler(tradeapp.NewASNService(persistence.NewGormASNRepository(db), orderRepo, recorder)),
		Location:      handler.NewLocationHandler(inventoryapp.NewLocationService(locationRepo, recorder)),
		Report:        handler.NewReportHandler(reportapp.NewReportService(persistence.NewGormReportRepository(db), archive)),
		Cleanup:       handler.NewCleanupHandler(cleanupService, appaudit.NewDeletionLogService(persistence.NewGormDeletionLogRepository(db))),
	}
	h.VendorItem = handler.NewVendorItemHandler(partnerapp.NewVendorItemService(
		persistence.NewGormVendorItemRepository(db), vendorRepo, itemRepo, recorder))
	h.Inventory = handler.NewInventoryHandler(inventoryapp.NewStockService(
		persistence.NewGormStockRecordRepository(db), itemRepo, locationRepo, recorder))
	h.StockRule = handler.NewStockRuleHandler(inventoryapp.NewStockRuleService(
		persistence.NewGormStockRuleRepository(db), itemRepo, recorder))
	h.MRN = handler.NewMRNHandler(inventoryapp.NewMRNService(
		persistence.NewGormMRNRepository(db), vendorRepo, orderRepo, recorder, log))
	h.Binning = handler.NewBinningHandler(inventoryapp.NewBinningService(
		persistence.NewGormTransactionScope(db), persistence.NewGormBinningLogRepository(db), locationRepo, recorder, log))

	engine := router.NewEngine(router.EngineConfig{
		ServiceName:    "medstock-integration",
		HTTP:           config.HTTPConfig{MaxBodySize: 1 << 20},
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	}, h)

	return &TestAPI{Engine: engine, Client: testutil.NewAPIClient(engine), Archive: archive, DB: tdb, users: userService}
}

// Do sends a request with token as bearer credentials
func (a *TestAPI) Do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	return a.Client.WithToken(token).Do(t, method, path, body)
}

// Login creates an account with role and returns an access token. Only the
// user role can self-register, so other roles are created directly.
func (a *TestAPI) Login(t *testing.T, username, role string) string {
	t.Helper()
	if role == "user" {
		w, _ := a.Do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"username": username,
			"email":    username + "@medstock.test",
			"password": "secret123",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	} else {
		_, err := a.users.Create(context.Background(), identityapp.CreateUserRequest{
			Username: username,
			Email:    username + "@medstock.test",
			Password: "secret123",
			Role:     role,
		})
		require.NoError(t, err)
	}

	w, resp := a.Do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := testutil.DataMap(t, resp)["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

// Create posts body and returns the id of the created resource
func (a *TestAPI) Create(t *testing.T, path, token string, body any) string {
	t.Helper()
	w, resp := a.Do(t, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, _ := testutil.DataMap(t, resp)["id"].(string)
	require.NotEmpty(t, id, "created resource has no id")
	return id
}
