package store

import (
	"context"
	"sync"

	"rent-kart/internal/model"
)

// Memory implements RecordStore in process memory. It carries the
// same semantics as the PostgreSQL adapter (field-level writes, locked
// read-modify-write Apply, change delivery to subscribers) and backs unit
// tests and local development without external services.
type Memory struct {
	mu          sync.Mutex
	records     map[string]*model.CustomerRecord
	subscribers map[string][]ChangeHandler
	collection  []ChangeHandler

	// FailWrites makes write operations fail; tests use it to exercise
	// the retryable remote-write-failed path.
	failWrites bool
}

// NewMemory creates an in-memory record store.
func NewMemory() *Memory {
	return &Memory{
		records:     make(map[string]*model.CustomerRecord),
		subscribers: make(map[string][]ChangeHandler),
	}
}

// SetFailWrites toggles failure injection for write operations.
func (s *Memory) SetFailWrites(fail bool) {
	s.mu.Lock()
	s.failWrites = fail
	s.mu.Unlock()
}

func (s *Memory) EnsureRecord(ctx context.Context, record *model.CustomerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.ID]; !ok {
		s.records[record.ID] = record.Clone()
	}
	return nil
}

func (s *Memory) GetRecord(ctx context.Context, customerID string) (*model.CustomerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[customerID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return record.Clone(), nil
}

func (s *Memory) WriteFields(ctx context.Context, customerID string, fields map[string]any) error {
	s.mu.Lock()
	record, ok := s.records[customerID]
	if !ok {
		s.mu.Unlock()
		return model.ErrNotFound
	}
	if s.failWrites {
		s.mu.Unlock()
		return model.ErrRemoteWriteFailed
	}

	for field, value := range fields {
		applyField(record, field, value)
	}
	snapshot := record.Clone()
	handlers := s.handlersFor(customerID)
	s.mu.Unlock()

	notify(handlers, snapshot)
	return nil
}

func (s *Memory) Apply(ctx context.Context, customerID string, fn func(record *model.CustomerRecord) error) error {
	s.mu.Lock()
	record, ok := s.records[customerID]
	if !ok {
		s.mu.Unlock()
		return model.ErrNotFound
	}
	if s.failWrites {
		s.mu.Unlock()
		return model.ErrRemoteWriteFailed
	}

	working := record.Clone()
	if err := fn(working); err != nil {
		s.mu.Unlock()
		return err
	}
	s.records[customerID] = working
	snapshot := working.Clone()
	handlers := s.handlersFor(customerID)
	s.mu.Unlock()

	notify(handlers, snapshot)
	return nil
}

func (s *Memory) Subscribe(ctx context.Context, customerID string, handler ChangeHandler) (CancelFunc, error) {
	s.mu.Lock()
	s.subscribers[customerID] = append(s.subscribers[customerID], handler)
	idx := len(s.subscribers[customerID]) - 1
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		handlers := s.subscribers[customerID]
		if idx < len(handlers) {
			handlers[idx] = nil
		}
	}, nil
}

func (s *Memory) SubscribeCollection(ctx context.Context, handler ChangeHandler) (CancelFunc, error) {
	s.mu.Lock()
	s.collection = append(s.collection, handler)
	idx := len(s.collection) - 1
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.collection) {
			s.collection[idx] = nil
		}
	}, nil
}

func (s *Memory) ListRecords(ctx context.Context) ([]model.CustomerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.CustomerRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, *record.Clone())
	}
	return out, nil
}

func (s *Memory) FindOrder(ctx context.Context, orderID string) (string, *model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, record := range s.records {
		if order := record.FindOrder(orderID); order != nil {
			copied := record.Clone().FindOrder(orderID)
			return id, copied, nil
		}
	}
	return "", nil, model.ErrNotFound
}

func (s *Memory) handlersFor(customerID string) []ChangeHandler {
	handlers := append([]ChangeHandler(nil), s.subscribers[customerID]...)
	return append(handlers, s.collection...)
}

func notify(handlers []ChangeHandler, snapshot *model.CustomerRecord) {
	for _, h := range handlers {
		if h != nil {
			h(snapshot.Clone())
		}
	}
}

// applyField mirrors the JSONB top-level merge the PostgreSQL adapter
// performs.
func applyField(record *model.CustomerRecord, field string, value any) {
	switch field {
	case model.FieldCart:
		record.Cart, _ = value.([]model.CartItem)
	case model.FieldOrders:
		record.Orders, _ = value.([]model.Order)
	case model.FieldAddresses:
		record.Addresses, _ = value.([]model.Address)
	case model.FieldKYC:
		if kyc, ok := value.(model.KYCRecord); ok {
			record.KYC = kyc
		}
	case model.FieldPendingCheckout:
		if value == nil {
			record.PendingCheckout = nil
			return
		}
		record.PendingCheckout, _ = value.(*model.PendingCheckout)
	case model.FieldWishlist:
		record.Wishlist, _ = value.([]string)
	case model.FieldTickets:
		record.Tickets, _ = value.([]model.SupportTicket)
	}
}
