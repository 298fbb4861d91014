package deeplink

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kartli/kartli-client/internal/client/models"
	"github.com/kartli/kartli-client/internal/client/session"
	"github.com/kartli/kartli-client/internal/client/storage"
	"github.com/kartli/kartli-client/internal/logging"
)

type fakeExchanger struct {
	mu            sync.Mutex
	authenticated bool
	exchangeErr   error
	sessionIDs    []string
	block         chan struct{}
}

func (f *fakeExchanger) ExchangeSession(ctx context.Context, sessionID string) (*models.User, error) {
	f.mu.Lock()
	f.sessionIDs = append(f.sessionIDs, sessionID)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &models.User{UserID: "u1"}, nil
}

func (f *fakeExchanger) Authenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authenticated
}

type fakeConsumer struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeConsumer) ConsumePendingInvite(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return true
}

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := storage.Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return session.NewStore(storage.NewSQLiteRepository(db))
}

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

func TestParseSessionIDFromQuery(t *testing.T) {
	link, err := Parse("kartli://auth?session_id=abc123")
	require.NoError(t, err)
	require.Equal(t, "abc123", link.SessionID)
	require.Empty(t, link.InviteCode)
}

func TestParseSessionIDFromFragment(t *testing.T) {
	link, err := Parse("https://app.kartli.example/profile#session_id=abc123&state=xyz")
	require.NoError(t, err)
	require.Equal(t, "abc123", link.SessionID)
}

func TestParseQueryWinsOverFragment(t *testing.T) {
	link, err := Parse("https://app.kartli.example/?session_id=fromquery#session_id=fromfragment")
	require.NoError(t, err)
	require.Equal(t, "fromquery", link.SessionID)
}

func TestParseInvitePair(t *testing.T) {
	link, err := Parse("kartli://join?code=ABC123&ref=P-42")
	require.NoError(t, err)
	require.Equal(t, "ABC123", link.InviteCode)
	require.Equal(t, "P-42", link.InviteRef)
	require.Empty(t, link.SessionID)
}

func TestParseEmptyLink(t *testing.T) {
	link, err := Parse("kartli://home")
	require.NoError(t, err)
	require.True(t, link.Empty())
}

func TestHandleSessionLink(t *testing.T) {
	ctx := context.Background()
	auth := &fakeExchanger{}
	invites := &fakeConsumer{}
	d := NewDispatcher(auth, invites, newTestStore(t), testLogger())

	require.NoError(t, d.Handle(ctx, "kartli://auth?session_id=abc123"))
	require.Equal(t, []string{"abc123"}, auth.sessionIDs)
}

func TestHandleInviteBeforeAuthIsStored(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	auth := &fakeExchanger{authenticated: false}
	invites := &fakeConsumer{}
	d := NewDispatcher(auth, invites, store, testLogger())

	require.NoError(t, d.Handle(ctx, "kartli://join?code=ABC123&ref=P-42"))

	invite := store.PendingInvite(ctx)
	require.NotNil(t, invite)
	require.Equal(t, "ABC123", invite.Code)
	require.Equal(t, "P-42", invite.Ref)
	require.Zero(t, invites.calls)
}

func TestHandleInviteWhenAuthenticatedConsumesImmediately(t *testing.T) {
	ctx := context.Background()
	auth := &fakeExchanger{authenticated: true}
	invites := &fakeConsumer{}
	d := NewDispatcher(auth, invites, newTestStore(t), testLogger())

	require.NoError(t, d.Handle(ctx, "kartli://join?code=ABC123"))
	require.Equal(t, 1, invites.calls)
}

func TestHandleExchangeFailurePropagates(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("invalid session")
	auth := &fakeExchanger{exchangeErr: wantErr}
	d := NewDispatcher(auth, &fakeConsumer{}, newTestStore(t), testLogger())

	err := d.Handle(ctx, "kartli://auth?session_id=bad")
	require.ErrorIs(t, err, wantErr)
}

func TestHandleSingleFlight(t *testing.T) {
	ctx := context.Background()
	block := make(chan struct{})
	auth := &fakeExchanger{block: block}
	d := NewDispatcher(auth, &fakeConsumer{}, newTestStore(t), testLogger())

	done := make(chan error, 1)
	go func() {
		done <- d.Handle(ctx, "kartli://auth?session_id=first")
	}()

	require.Eventually(t, func() bool {
		auth.mu.Lock()
		defer auth.mu.Unlock()
		return len(auth.sessionIDs) == 1
	}, time.Second, 5*time.Millisecond)

	require.ErrorIs(t, d.Handle(ctx, "kartli://auth?session_id=second"), ErrLinkInFlight)

	close(block)
	require.NoError(t, <-done)

	// The second link never reached the exchanger.
	require.Equal(t, []string{"first"}, auth.sessionIDs)

	// And the guard releases once the first link is done.
	auth.block = nil
	require.NoError(t, d.Handle(ctx, "kartli://auth?session_id=third"))
}

func TestHandleUnknownLinkIsIgnored(t *testing.T) {
	ctx := context.Background()
	auth := &fakeExchanger{}
	invites := &fakeConsumer{}
	store := newTestStore(t)
	d := NewDispatcher(auth, invites, store, testLogger())

	require.NoError(t, d.Handle(ctx, "kartli://home"))
	require.Empty(t, auth.sessionIDs)
	require.Zero(t, invites.calls)
	require.Nil(t, store.PendingInvite(ctx))
}
