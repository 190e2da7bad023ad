package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rent-kart/internal/admin"
	"rent-kart/internal/auth"
	"rent-kart/internal/catalog"
	"rent-kart/internal/handler"
	"rent-kart/internal/invoice"
	"rent-kart/internal/kyc"
	"rent-kart/internal/model"
	"rent-kart/internal/notify"
	"rent-kart/internal/order"
	"rent-kart/internal/router"
	"rent-kart/internal/session"
	"rent-kart/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "test-admin-key"

// fixedCatalog serves the catalogue cache without a database.
type fixedCatalog struct {
	products []model.Product
}

func (r *fixedCatalog) GetAll(ctx context.Context) ([]model.Product, error) {
	return append([]model.Product(nil), r.products...), nil
}

func (r *fixedCatalog) GetByID(ctx context.Context, id string) (*model.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

type memArtifacts struct{}

func (memArtifacts) Upload(ctx context.Context, path string, data []byte) (string, error) {
	return "mem://" + path, nil
}

// setupAPI wires the whole HTTP surface over the in-memory record store.
func setupAPI(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	logger := zerolog.Nop()

	purchase := 1800.0
	repo := &fixedCatalog{products: []model.Product{
		{
			ID:            "LAP001",
			Name:          "MacBook Pro 14",
			Category:      "laptops",
			BasePrice:     2000,
			PurchasePrice: &purchase,
			RentalOptions: []model.RentalOption{
				{TenureMonths: 6, MonthlyPrice: 400},
				{TenureMonths: 12, MonthlyPrice: 320},
			},
			Availability: model.AvailabilityBoth,
		},
		{
			ID:           "MON001",
			Name:         "Dell U2723QE",
			Category:     "monitors",
			BasePrice:    550,
			Availability: model.AvailabilityBuy,
		},
	}}
	cache, err := catalog.NewCache(ctx, repo, logger)
	require.NoError(t, err)

	recordStore := store.NewMemory()
	invoices := invoice.NewService(invoice.NewTextRenderer(), memArtifacts{}, logger)
	notifier := notify.New(notify.NewTemplateDrafter(), logger)

	provider := auth.NewMemoryProvider(logger)
	manager := session.NewManager(recordStore, cache, invoices, notifier, logger)
	manager.Bind(provider)

	engine := order.NewEngine(recordStore, invoices, notifier, logger)
	reviewer := kyc.NewReviewer(recordStore, invoices, notifier, logger)
	console, err := admin.NewConsole(ctx, recordStore, logger)
	require.NoError(t, err)
	t.Cleanup(console.Close)

	return router.New(
		handler.NewCatalogHandler(cache, logger),
		handler.NewAuthHandler(provider, logger),
		handler.NewSessionHandler(manager, logger),
		handler.NewAdminHandler(engine, reviewer, console, logger),
		testAdminKey,
		logger,
	)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func TestAPI_HealthAndCatalog(t *testing.T) {
	api := setupAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, api, http.MethodGet, "/api/products", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var products []model.Product
	decodeBody(t, rec, &products)
	assert.Len(t, products, 2)

	rec = doJSON(t, api, http.MethodGet, "/api/products/LAP001", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, api, http.MethodGet, "/api/products/NOPE", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_CartRequiresSignIn(t *testing.T) {
	api := setupAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/api/cart/items", map[string]any{
		"productId": "MON001",
		"mode":      "buy",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp model.ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, model.ErrCodeUnauthenticated, resp.Error)
}

func TestAPI_PurchaseFlow(t *testing.T) {
	api := setupAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "jo@example.com",
		"password": "hunter2",
		"name":     "Jo",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, api, http.MethodPost, "/api/cart/items", map[string]any{
		"productId": "MON001",
		"mode":      "buy",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var item model.CartItem
	decodeBody(t, rec, &item)
	assert.Equal(t, 550.0, item.UnitPrice)

	rec = doJSON(t, api, http.MethodPost, "/api/checkout", map[string]any{
		"address":       "12 Baker St",
		"paymentMethod": "card",
		"delivery":      "delivery",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var result session.CheckoutResult
	decodeBody(t, rec, &result)
	require.NotNil(t, result.Order)
	assert.False(t, result.VerificationRequired)

	// The admin console sees the order; status moves through the engine.
	adminHeaders := map[string]string{"X-Admin-Key": testAdminKey}
	rec = doJSON(t, api, http.MethodGet, "/admin/orders", nil, adminHeaders)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []model.Order
	decodeBody(t, rec, &orders)
	require.Len(t, orders, 1)

	rec = doJSON(t, api, http.MethodPatch, fmt.Sprintf("/admin/orders/%s/status", result.Order.ID), map[string]any{
		"status": "Processing",
	}, adminHeaders)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Shipped without tracking is a conflict.
	rec = doJSON(t, api, http.MethodPatch, fmt.Sprintf("/admin/orders/%s/status", result.Order.ID), map[string]any{
		"status": "Shipped",
	}, adminHeaders)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAPI_DeferredRentalCheckoutAndReview(t *testing.T) {
	api := setupAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "al@example.com",
		"password": "hunter2",
		"name":     "Al",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var identity auth.Identity
	decodeBody(t, rec, &identity)

	rec = doJSON(t, api, http.MethodPost, "/api/cart/items", map[string]any{
		"productId":    "LAP001",
		"mode":         "rent",
		"tenureMonths": 12,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Rental checkout without approval is deferred with 202.
	rec = doJSON(t, api, http.MethodPost, "/api/checkout", map[string]any{
		"address":       "12 Baker St",
		"paymentMethod": "card",
		"delivery":      "delivery",
	}, nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	var result session.CheckoutResult
	decodeBody(t, rec, &result)
	assert.True(t, result.VerificationRequired)
	assert.Nil(t, result.Order)

	rec = doJSON(t, api, http.MethodPost, "/api/kyc/documents", map[string]any{
		"documentRefs": []string{"doc://id-front"},
	}, nil)
	require.Equal(t, http.StatusAccepted, rec.Code)

	adminHeaders := map[string]string{"X-Admin-Key": testAdminKey}

	rec = doJSON(t, api, http.MethodGet, "/admin/kyc/queue", nil, adminHeaders)
	require.Equal(t, http.StatusOK, rec.Code)
	var queue []model.CustomerRecord
	decodeBody(t, rec, &queue)
	require.Len(t, queue, 1)

	// Approval materializes the deferred checkout.
	rec = doJSON(t, api, http.MethodPost, fmt.Sprintf("/admin/customers/%s/kyc", identity.ID), map[string]any{
		"decision": "approved",
	}, adminHeaders)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, api, http.MethodGet, "/api/me", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var record model.CustomerRecord
	decodeBody(t, rec, &record)
	assert.Empty(t, record.Cart)
	assert.Nil(t, record.PendingCheckout)
	require.Len(t, record.Orders, 1)
	assert.Equal(t, model.StatusPlaced, record.Orders[0].Status)
}

func TestAPI_AdminRequiresKey(t *testing.T) {
	api := setupAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/admin/orders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, api, http.MethodGet, "/admin/orders", nil, map[string]string{"X-Admin-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, api, http.MethodGet, "/admin/orders", nil, map[string]string{"X-Admin-Key": testAdminKey})
	assert.Equal(t, http.StatusOK, rec.Code)
}
