// Package deeplink merges the two external entry vectors, the identity
// provider's redirect URL and the app's custom URL scheme, into the auth
// state machine without double-processing.
//
// A link may carry a one-time session_id (query or fragment) and/or a group
// invite pair {code, ref}. The dispatcher processes at most one link at a
// time and never stores the raw URL, so a captured session id cannot be
// replayed.
package deeplink

import (
	"context"
	"errors"
	"net/url"
	"sync/atomic"

	"github.com/kartli/kartli-client/internal/client/models"
	"github.com/kartli/kartli-client/internal/client/session"
	"github.com/kartli/kartli-client/internal/logging"
)

// ErrLinkInFlight is returned when a link arrives while a previous one is
// still being processed.
var ErrLinkInFlight = errors.New("link processing already in flight")

// Link is the payload extracted from a deep link or redirect URL.
type Link struct {
	SessionID  string
	InviteCode string
	InviteRef  string
}

// Empty reports whether the link carried nothing this client understands.
func (l Link) Empty() bool {
	return l.SessionID == "" && l.InviteCode == ""
}

// Parse extracts the session id and invite pair from raw. The session id is
// looked up in the query string first, then in the URL fragment, matching
// how the identity provider appends it on web redirects.
func Parse(raw string) (Link, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Link{}, err
	}

	link := Link{}

	query := u.Query()
	link.SessionID = query.Get("session_id")
	link.InviteCode = query.Get("code")
	link.InviteRef = query.Get("ref")

	if link.SessionID == "" && u.Fragment != "" {
		// Fragment arrives as "session_id=...&..." after provider redirects.
		if values, err := url.ParseQuery(u.Fragment); err == nil {
			link.SessionID = values.Get("session_id")
		}
	}

	return link, nil
}

// Exchanger is the slice of the auth state machine the dispatcher needs.
type Exchanger interface {
	ExchangeSession(ctx context.Context, sessionID string) (*models.User, error)
	Authenticated() bool
}

// InviteConsumer replays a stored pending invite.
type InviteConsumer interface {
	ConsumePendingInvite(ctx context.Context) bool
}

// Dispatcher routes parsed links into the session store and auth machine.
// A single-flight guard rejects a second link while one is being handled.
type Dispatcher struct {
	auth     Exchanger
	invites  InviteConsumer
	sessions *session.Store
	log      logging.Logger

	busy atomic.Bool
}

func NewDispatcher(auth Exchanger, invites InviteConsumer, sessions *session.Store, log logging.Logger) *Dispatcher {
	return &Dispatcher{auth: auth, invites: invites, sessions: sessions, log: log}
}

// Handle processes one incoming link. Invite pairs are persisted first and
// consumed immediately when already authenticated; a session id is then fed
// to the exchange. Unknown links are ignored.
func (d *Dispatcher) Handle(ctx context.Context, raw string) error {
	if !d.busy.CompareAndSwap(false, true) {
		return ErrLinkInFlight
	}
	defer d.busy.Store(false)

	link, err := Parse(raw)
	if err != nil {
		d.log.Debug(ctx, "unparseable link ignored", "error", err)
		return err
	}
	if link.Empty() {
		return nil
	}

	if link.InviteCode != "" {
		invite := session.PendingInvite{Code: link.InviteCode, Ref: link.InviteRef}
		if err := d.sessions.SetPendingInvite(ctx, invite); err != nil {
			d.log.Warn(ctx, "failed to persist pending invite", "error", err)
		} else if d.auth.Authenticated() {
			d.invites.ConsumePendingInvite(ctx)
		}
	}

	if link.SessionID != "" {
		if _, err := d.auth.ExchangeSession(ctx, link.SessionID); err != nil {
			return err
		}
	}

	return nil
}
