// Package cli is the interactive front end of the client: a REPL standing
// in for the mobile app's screens. All state and I/O live in the service
// layer; this package only renders snapshots and dispatches commands.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/kartli/kartli-client/internal/client/api"
	"github.com/kartli/kartli-client/internal/client/config"
	"github.com/kartli/kartli-client/internal/client/deeplink"
	"github.com/kartli/kartli-client/internal/client/services"
	"github.com/kartli/kartli-client/internal/client/session"
	"github.com/kartli/kartli-client/internal/client/storage"
	"github.com/kartli/kartli-client/internal/logging"
)

// genericErr is the fallback alert text when the server sent no detail.
const genericErr = "Something went wrong, please try again"

type App struct {
	config        *config.Config
	log           logging.Logger
	api           *api.HTTPClient
	sessions      *session.Store
	auth          *services.Auth
	social        *services.Social
	notifications *services.NotificationCenter
	links         *deeplink.Dispatcher
	clock         clockwork.Clock
	reader        *bufio.Reader

	watchMu     sync.Mutex
	watchCancel context.CancelFunc
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewTextLogger(os.Stderr, slog.LevelWarn).
		With("client_id", uuid.NewString())

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(storage.NewSQLiteRepository(db))
	apiClient := api.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	clock := clockwork.NewRealClock()

	auth := services.NewAuth(apiClient, sessions, log)
	social := services.NewSocial(apiClient, sessions, log)
	auth.OnAuthenticated(func(ctx context.Context) {
		social.ConsumePendingInvite(ctx)
	})

	notifications := services.NewNotificationCenter(apiClient, log, clock, cfg.NotificationPollInterval)
	links := deeplink.NewDispatcher(auth, social, sessions, log)

	return &App{
		config:        cfg,
		log:           log,
		api:           apiClient,
		sessions:      sessions,
		auth:          auth,
		social:        social,
		notifications: notifications,
		links:         links,
		clock:         clock,
		reader:        bufio.NewReader(os.Stdin),
	}, nil
}

// Run resolves the initial auth state and enters the command loop. The
// notification watcher runs only while a session is authenticated; a
// signed-out client issues no background polls.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.api.CloseIdleConnections()

	a.auth.OnAuthenticated(func(context.Context) { a.startNotificationWatch(ctx) })
	a.auth.OnUnauthenticated(func(context.Context) { a.stopNotificationWatch() })

	a.auth.CheckAuth(ctx)

	a.root(ctx)
}

func (a *App) startNotificationWatch(ctx context.Context) {
	a.watchMu.Lock()
	defer a.watchMu.Unlock()
	if a.watchCancel != nil {
		return
	}
	wctx, cancel := context.WithCancel(ctx)
	a.watchCancel = cancel
	go a.notifications.Watch(wctx)
}

func (a *App) stopNotificationWatch() {
	a.watchMu.Lock()
	defer a.watchMu.Unlock()
	if a.watchCancel == nil {
		return
	}
	a.watchCancel()
	a.watchCancel = nil
}
