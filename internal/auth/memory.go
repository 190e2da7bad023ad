package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// memoryProvider is a self-contained Provider used for local development
// and tests. Credentials live in process memory; reset just logs.
type memoryProvider struct {
	logger zerolog.Logger

	mu       sync.Mutex
	accounts map[string]account
	current  *Identity
	handlers []ChangeHandler
}

type account struct {
	identity Identity
	password string
}

// NewMemoryProvider creates an in-memory authentication provider.
func NewMemoryProvider(logger zerolog.Logger) Provider {
	return &memoryProvider{
		logger:   logger.With().Str("component", "auth").Logger(),
		accounts: make(map[string]account),
	}
}

func (p *memoryProvider) CreateIdentity(ctx context.Context, email, password, name string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	p.mu.Lock()
	if _, exists := p.accounts[email]; exists {
		p.mu.Unlock()
		return nil, fmt.Errorf("identity already exists for %s", email)
	}

	identity := Identity{ID: uuid.NewString(), Email: email, Name: name}
	p.accounts[email] = account{identity: identity, password: password}
	p.current = &identity
	handlers := append([]ChangeHandler(nil), p.handlers...)
	p.mu.Unlock()

	p.logger.Info().Str("email", email).Msg("identity created")
	emit(handlers, &identity)
	return &identity, nil
}

func (p *memoryProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	p.mu.Lock()
	acct, ok := p.accounts[email]
	if !ok || acct.password != password {
		p.mu.Unlock()
		return nil, fmt.Errorf("invalid credentials")
	}
	identity := acct.identity
	p.current = &identity
	handlers := append([]ChangeHandler(nil), p.handlers...)
	p.mu.Unlock()

	p.logger.Info().Str("email", email).Msg("signed in")
	emit(handlers, &identity)
	return &identity, nil
}

func (p *memoryProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	p.current = nil
	handlers := append([]ChangeHandler(nil), p.handlers...)
	p.mu.Unlock()

	emit(handlers, nil)
	return nil
}

func (p *memoryProvider) ResetPassword(ctx context.Context, email string) error {
	p.mu.Lock()
	_, ok := p.accounts[strings.ToLower(strings.TrimSpace(email))]
	p.mu.Unlock()
	if !ok {
		// Do not reveal whether the account exists.
		p.logger.Info().Str("email", email).Msg("password reset requested for unknown email")
		return nil
	}

	p.logger.Info().Str("email", email).Msg("password reset triggered")
	return nil
}

func (p *memoryProvider) OnChange(handler ChangeHandler) {
	p.mu.Lock()
	p.handlers = append(p.handlers, handler)
	identity := p.current
	p.mu.Unlock()

	// Deliver the current state immediately so late registrants converge.
	handler(identity)
}

func emit(handlers []ChangeHandler, identity *Identity) {
	for _, h := range handlers {
		h(identity)
	}
}
