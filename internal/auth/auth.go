// Package auth holds the authentication provider contract. The provider
// itself is an external collaborator; the orchestration layer only needs
// identity creation, credential sign-in, a password-reset trigger, and a
// stream of session changes.
package auth

import "context"

// Identity is a signed-in customer identity.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ChangeHandler receives the current identity on every session change; nil
// means signed out.
type ChangeHandler func(identity *Identity)

// Provider is the authentication collaborator contract.
type Provider interface {
	// CreateIdentity registers a new identity and signs it in.
	CreateIdentity(ctx context.Context, email, password, name string) (*Identity, error)

	// SignIn authenticates with credentials and emits a session change.
	SignIn(ctx context.Context, email, password string) (*Identity, error)

	// SignOut ends the current session and emits a nil identity.
	SignOut(ctx context.Context) error

	// ResetPassword triggers a password-reset flow for the email.
	ResetPassword(ctx context.Context, email string) error

	// OnChange registers a session-change handler.
	OnChange(handler ChangeHandler)
}
