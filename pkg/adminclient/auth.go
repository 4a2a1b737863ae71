package adminclient

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// AuthState tracks the signed-in admin for an interactive session. It is
// safe for concurrent use; network calls run outside the lock.
type AuthState struct {
	mu     sync.Mutex
	client *Client
	admin  *Admin
}

func NewAuthState(client *Client) *AuthState {
	return &AuthState{client: client}
}

// Init attempts a silent re-auth with whatever token the store holds. A
// rejected or missing token leaves the session anonymous and clears the
// stored token; it is not an error.
func (a *AuthState) Init(ctx context.Context) error {
	token, err := a.client.Tokens.Token()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	admin, err := a.client.Profile(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("stored token rejected, starting anonymous")
		if clearErr := a.client.Tokens.Clear(); clearErr != nil {
			return clearErr
		}
		return nil
	}
	a.mu.Lock()
	a.admin = admin
	a.mu.Unlock()
	return nil
}

// Login authenticates, persists the token, and seeds the session from the
// login payload. The profile is then re-fetched to pick up any fields the
// login response omits; a failure there keeps the login-supplied record.
func (a *AuthState) Login(ctx context.Context, email, password string) (*Admin, error) {
	result, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	admin := result.Admin
	if fresh, err := a.client.Profile(ctx); err != nil {
		log.Debug().Err(err).Msg("profile fetch after login failed")
	} else {
		admin = *fresh
	}
	a.mu.Lock()
	a.admin = &admin
	a.mu.Unlock()
	return &admin, nil
}

// Logout drops the session locally. Tokens are opaque and expire
// server-side on their own, so no request is made.
func (a *AuthState) Logout() error {
	a.mu.Lock()
	a.admin = nil
	a.mu.Unlock()
	return a.client.Tokens.Clear()
}

func (a *AuthState) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.admin != nil
}

// CurrentAdmin returns a copy of the signed-in admin, or nil when
// anonymous.
func (a *AuthState) CurrentAdmin() *Admin {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.admin == nil {
		return nil
	}
	admin := *a.admin
	return &admin
}
