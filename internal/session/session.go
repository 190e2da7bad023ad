// Package session owns the signed-in customer's working state: the
// optimistic mirror of their remote record, the cart operations mutating
// it, and checkout. A Session is constructed at sign-in and torn down at
// sign-out; nothing here is process-global.
package session

import (
	"context"
	"fmt"
	"sync"

	"rent-kart/internal/auth"
	"rent-kart/internal/catalog"
	"rent-kart/internal/invoice"
	"rent-kart/internal/model"
	"rent-kart/internal/notify"
	"rent-kart/internal/store"

	"github.com/rs/zerolog"
)

// Session is one customer's live connection to their record. Two state
// layers back every read: the confirmed layer holds the latest remote
// snapshot, and pending intents hold local mutations the remote store has
// not acknowledged yet. Record() composes the two.
type Session struct {
	customerID string
	store      store.RecordStore
	catalog    *catalog.Cache
	invoices   *invoice.Service
	notifier   *notify.Notifier
	logger     zerolog.Logger

	mu        sync.Mutex
	confirmed *model.CustomerRecord
	intents   []intent
	cancel    store.CancelFunc
}

// intent is a local mutation awaiting remote confirmation. It re-applies
// on top of every incoming snapshot until its write lands.
type intent struct {
	field string
	apply func(record *model.CustomerRecord)
}

// New opens a session for the identity: ensures the remote record exists,
// loads the initial snapshot, and subscribes to remote-origin changes.
func New(ctx context.Context, identity *auth.Identity, recordStore store.RecordStore, cache *catalog.Cache, invoices *invoice.Service, notifier *notify.Notifier, logger zerolog.Logger) (*Session, error) {
	if err := recordStore.EnsureRecord(ctx, model.NewCustomerRecord(identity.ID, identity.Email, identity.Name)); err != nil {
		return nil, fmt.Errorf("failed to ensure customer record: %w", err)
	}

	record, err := recordStore.GetRecord(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer record: %w", err)
	}

	s := &Session{
		customerID: identity.ID,
		store:      recordStore,
		catalog:    cache,
		invoices:   invoices,
		notifier:   notifier,
		logger:     logger.With().Str("component", "session").Str("customer_id", identity.ID).Logger(),
		confirmed:  record,
	}

	cancel, err := recordStore.Subscribe(ctx, identity.ID, s.onSnapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to customer record: %w", err)
	}
	s.cancel = cancel

	s.logger.Info().Msg("session opened")
	return s, nil
}

// CustomerID returns the owning customer's id.
func (s *Session) CustomerID() string {
	return s.customerID
}

// Close tears the session down and stops the subscription.
func (s *Session) Close() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.logger.Info().Msg("session closed")
}

// Manager ties the auth provider's session changes to Session lifecycle:
// a new identity opens a Session, a nil identity tears it down.
type Manager struct {
	store    store.RecordStore
	catalog  *catalog.Cache
	invoices *invoice.Service
	notifier *notify.Notifier
	logger   zerolog.Logger

	mu      sync.Mutex
	current *Session
}

// NewManager creates a session manager.
func NewManager(recordStore store.RecordStore, cache *catalog.Cache, invoices *invoice.Service, notifier *notify.Notifier, logger zerolog.Logger) *Manager {
	return &Manager{
		store:    recordStore,
		catalog:  cache,
		invoices: invoices,
		notifier: notifier,
		logger:   logger.With().Str("component", "session-manager").Logger(),
	}
}

// Bind subscribes the manager to the auth provider.
func (m *Manager) Bind(provider auth.Provider) {
	provider.OnChange(m.onIdentity)
}

// Current returns the active session, or ErrUnauthenticated. Callers are
// expected to resolve the failure (prompt sign-in) rather than drop the
// operation.
func (m *Manager) Current() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, model.ErrUnauthenticated
	}
	return m.current, nil
}

func (m *Manager) onIdentity(identity *auth.Identity) {
	m.mu.Lock()
	old := m.current
	m.current = nil
	m.mu.Unlock()

	if old != nil {
		old.Close()
	}
	if identity == nil {
		return
	}

	sess, err := New(context.Background(), identity, m.store, m.catalog, m.invoices, m.notifier, m.logger)
	if err != nil {
		m.logger.Error().Err(err).Str("customer_id", identity.ID).Msg("failed to open session")
		return
	}

	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()
}
