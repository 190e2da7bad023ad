package order

import (
	"context"
	"fmt"
	"testing"

	"rent-kart/internal/invoice"
	"rent-kart/internal/model"
	"rent-kart/internal/notify"
	"rent-kart/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubArtifacts struct {
	fail bool
}

func (s stubArtifacts) Upload(ctx context.Context, path string, data []byte) (string, error) {
	if s.fail {
		return "", fmt.Errorf("artifact store unavailable")
	}
	return "mem://" + path, nil
}

func newEngineFixture(t *testing.T, failArtifacts bool) (*Engine, *store.Memory, string) {
	t.Helper()
	logger := zerolog.Nop()

	mem := store.NewMemory()
	record := model.NewCustomerRecord("cust-1", "jo@example.com", "Jo")
	placed := buyOrder()
	placed.InvoiceURL = ""
	record.Orders = append(record.Orders, *placed)
	require.NoError(t, mem.EnsureRecord(context.Background(), record))

	invoices := invoice.NewService(invoice.NewTextRenderer(), stubArtifacts{fail: failArtifacts}, logger)
	notifier := notify.New(notify.NewTemplateDrafter(), logger)

	return NewEngine(mem, invoices, notifier, logger), mem, placed.ID
}

func TestEngine_UpdateOrderStatus(t *testing.T) {
	engine, mem, orderID := newEngineFixture(t, false)
	ctx := context.Background()

	updated, err := engine.UpdateOrderStatus(ctx, orderID, model.StatusProcessing, nil, "packed")
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, updated.Status)

	// The transition is visible on the authoritative record.
	_, stored, err := mem.FindOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, stored.Status)
	require.Len(t, stored.Timeline, 2)
	assert.Equal(t, "packed", stored.Timeline[1].Note)
}

func TestEngine_UpdateOrderStatus_RejectionLeavesRecordUntouched(t *testing.T) {
	engine, mem, orderID := newEngineFixture(t, false)
	ctx := context.Background()

	// Placed cannot ship, and Shipped needs tracking anyway.
	_, err := engine.UpdateOrderStatus(ctx, orderID, model.StatusShipped, nil, "")
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	_, stored, err := mem.FindOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPlaced, stored.Status)
	assert.Len(t, stored.Timeline, 1)
}

func TestEngine_UpdateOrderStatus_UnknownOrder(t *testing.T) {
	engine, _, _ := newEngineFixture(t, false)

	_, err := engine.UpdateOrderStatus(context.Background(), "no-such-order", model.StatusProcessing, nil, "")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestEngine_AddNote(t *testing.T) {
	engine, mem, orderID := newEngineFixture(t, false)
	ctx := context.Background()

	require.NoError(t, engine.AddNote(ctx, orderID, "customer requested gift wrap"))
	require.NoError(t, engine.AddNote(ctx, orderID, "fragile"))

	_, stored, err := mem.FindOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, []string{"customer requested gift wrap", "fragile"}, stored.Notes)
}

func TestEngine_RetryInvoice(t *testing.T) {
	engine, mem, orderID := newEngineFixture(t, false)
	ctx := context.Background()

	url, err := engine.RetryInvoice(ctx, orderID)
	require.NoError(t, err)
	assert.NotEmpty(t, url)

	_, stored, err := mem.FindOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, url, stored.InvoiceURL)

	// A second retry returns the existing reference without regenerating.
	again, err := engine.RetryInvoice(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, url, again)
}

func TestEngine_RetryInvoice_StoreFailureIsSideEffectFailed(t *testing.T) {
	engine, mem, orderID := newEngineFixture(t, true)
	ctx := context.Background()

	_, err := engine.RetryInvoice(ctx, orderID)
	assert.ErrorIs(t, err, model.ErrSideEffectFailed)

	// Nothing written back on failure.
	_, stored, err := mem.FindOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Empty(t, stored.InvoiceURL)
}

func TestEngine_NotificationFailureNeverBlocksTransition(t *testing.T) {
	logger := zerolog.Nop()
	mem := store.NewMemory()
	record := model.NewCustomerRecord("cust-1", "jo@example.com", "Jo")
	placed := buyOrder()
	record.Orders = append(record.Orders, *placed)
	require.NoError(t, mem.EnsureRecord(context.Background(), record))

	invoices := invoice.NewService(invoice.NewTextRenderer(), stubArtifacts{}, logger)
	engine := NewEngine(mem, invoices, notify.New(failingDrafter{}, logger), logger)

	updated, err := engine.UpdateOrderStatus(context.Background(), placed.ID, model.StatusProcessing, nil, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, updated.Status)
}

type failingDrafter struct{}

func (failingDrafter) Draft(ctx context.Context, event notify.Event) (string, error) {
	return "", fmt.Errorf("draft backend down")
}
