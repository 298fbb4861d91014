// Package services contains the application services of the client: the
// auth state machine, the notification center, group/friend flows and the
// per-game polling session. All I/O goes through the api.Client interface
// so every service can be tested against fakes.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/kartli/kartli-client/internal/client/api"
	"github.com/kartli/kartli-client/internal/client/models"
	"github.com/kartli/kartli-client/internal/client/session"
	"github.com/kartli/kartli-client/internal/logging"
)

// AuthState is the client-side authentication state.
type AuthState string

const (
	StateLoading         AuthState = "loading"
	StateAuthenticated   AuthState = "authenticated"
	StateUnauthenticated AuthState = "unauthenticated"
)

// ErrExchangeInFlight is returned when a session exchange is requested
// while another one is still running. At most one exchange may be in
// flight at a time.
var ErrExchangeInFlight = errors.New("session exchange already in flight")

// Auth tracks the authentication state machine:
//
//	loading -> {authenticated, unauthenticated}
//
// The persisted token lives in the session store only; Auth injects it
// into the API client and never caches it anywhere else.
type Auth struct {
	api      api.Client
	sessions *session.Store
	log      logging.Logger

	mu         sync.Mutex
	state      AuthState
	user       *models.User
	processing bool

	// Transition hooks: onAuthenticated runs after every transition into
	// the authenticated state (pending-invite replay, watcher start);
	// onUnauthenticated runs when an authenticated session ends.
	onAuthenticated   []func(ctx context.Context)
	onUnauthenticated []func(ctx context.Context)
}

func NewAuth(apiClient api.Client, sessions *session.Store, log logging.Logger) *Auth {
	return &Auth{
		api:      apiClient,
		sessions: sessions,
		log:      log,
		state:    StateLoading,
	}
}

// OnAuthenticated registers a hook invoked after each transition into
// the authenticated state. Must be called before the state machine starts.
func (a *Auth) OnAuthenticated(fn func(ctx context.Context)) {
	a.onAuthenticated = append(a.onAuthenticated, fn)
}

// OnUnauthenticated registers a hook invoked when an authenticated
// session transitions out (logout or a rejected identity check). Must be
// called before the state machine starts.
func (a *Auth) OnUnauthenticated(fn func(ctx context.Context)) {
	a.onUnauthenticated = append(a.onUnauthenticated, fn)
}

// State returns the current authentication state.
func (a *Auth) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Authenticated reports whether the state machine is settled in the
// authenticated state.
func (a *Auth) Authenticated() bool {
	return a.State() == StateAuthenticated
}

// Processing reports whether a session exchange is in flight. The route
// guard suppresses redirects while this is true.
func (a *Auth) Processing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.processing
}

// User returns a copy of the authenticated user, or nil.
func (a *Auth) User() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// CheckAuth resolves the initial loading state from the persisted token.
// A missing token, a 401 and a transport failure all end unauthenticated
// with the stored token removed; expiry is silent by design.
func (a *Auth) CheckAuth(ctx context.Context) bool {
	token := a.sessions.Token(ctx)
	if token == "" {
		a.become(ctx, StateUnauthenticated, nil)
		return false
	}

	a.api.SetToken(token)

	user, err := a.api.Me(ctx)
	if err != nil {
		a.log.Debug(ctx, "identity check failed, dropping session", "error", err)
		_ = a.sessions.ClearToken(ctx)
		a.api.SetToken("")
		a.become(ctx, StateUnauthenticated, nil)
		return false
	}

	a.become(ctx, StateAuthenticated, user)
	return true
}

// ExchangeSession posts the one-time external session id and, on success,
// persists the returned token and becomes authenticated. On failure the
// prior state is left untouched. Only one exchange may run at a time.
func (a *Auth) ExchangeSession(ctx context.Context, sessionID string) (*models.User, error) {
	a.mu.Lock()
	if a.processing {
		a.mu.Unlock()
		return nil, ErrExchangeInFlight
	}
	a.processing = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.processing = false
		a.mu.Unlock()
	}()

	resp, err := a.api.ExchangeSession(ctx, sessionID)
	if err != nil {
		a.log.Warn(ctx, "session exchange failed", "error", err)
		return nil, err
	}

	if err := a.sessions.SetToken(ctx, resp.SessionToken); err != nil {
		// The session is still valid for this process; only persistence
		// across restarts is lost.
		a.log.Warn(ctx, "failed to persist session token", "error", err)
	}
	a.api.SetToken(resp.SessionToken)

	user := resp.User
	a.become(ctx, StateAuthenticated, &user)
	return a.User(), nil
}

// Logout invalidates the server session best-effort, then unconditionally
// clears the local token and becomes unauthenticated.
func (a *Auth) Logout(ctx context.Context) {
	if err := a.api.Logout(ctx); err != nil {
		a.log.Debug(ctx, "server logout failed, clearing local session anyway", "error", err)
	}

	_ = a.sessions.ClearToken(ctx)
	a.api.SetToken("")
	a.become(ctx, StateUnauthenticated, nil)
}

// SetDisplayName patches the cached user's name locally. There is no
// profile-update endpoint, so the change is not sent to the server and is
// superseded by the next successful identity fetch.
func (a *Auth) SetDisplayName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user != nil {
		a.user.Name = name
	}
}

func (a *Auth) become(ctx context.Context, state AuthState, user *models.User) {
	a.mu.Lock()
	wasAuthenticated := a.state == StateAuthenticated
	a.state = state
	a.user = user
	a.mu.Unlock()

	switch {
	case state == StateAuthenticated && !wasAuthenticated:
		for _, fn := range a.onAuthenticated {
			fn(ctx)
		}
	case state == StateUnauthenticated && wasAuthenticated:
		for _, fn := range a.onUnauthenticated {
			fn(ctx)
		}
	}
}
