package services

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/kartli/kartli-client/internal/client/api"
	"github.com/kartli/kartli-client/internal/client/models"
	"github.com/kartli/kartli-client/internal/logging"
)

// NotificationCenter keeps the in-memory notification list and the derived
// unread badge count. The count is never pushed by the server: the full
// list is fetched on a fixed interval and filtered locally.
//
// Mark operations are optimistic: the local mutation is applied first and
// the server call fires afterwards with no rollback on failure; the next
// poll reconciles any divergence.
type NotificationCenter struct {
	api      api.Client
	log      logging.Logger
	clock    clockwork.Clock
	interval time.Duration

	mu     sync.Mutex
	list   []models.Notification
	unread int
}

func NewNotificationCenter(apiClient api.Client, log logging.Logger, clock clockwork.Clock, interval time.Duration) *NotificationCenter {
	return &NotificationCenter{
		api:      apiClient,
		log:      log,
		clock:    clock,
		interval: interval,
	}
}

// Refresh replaces the list with the server's copy and recomputes the
// unread count.
func (n *NotificationCenter) Refresh(ctx context.Context) error {
	list, err := n.api.Notifications(ctx)
	if err != nil {
		return err
	}

	n.mu.Lock()
	n.list = list
	n.unread = countUnread(list)
	n.mu.Unlock()
	return nil
}

// Notifications returns the current list.
func (n *NotificationCenter) Notifications() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.Notification, len(n.list))
	copy(out, n.list)
	return out
}

// UnreadCount returns the derived badge count.
func (n *NotificationCenter) UnreadCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.unread
}

// MarkRead flips one notification to read locally, then notifies the
// server. The server error is logged and otherwise ignored.
func (n *NotificationCenter) MarkRead(ctx context.Context, notificationID string) {
	n.mu.Lock()
	for i := range n.list {
		if n.list[i].NotificationID == notificationID {
			n.list[i].Read = true
		}
	}
	n.unread = countUnread(n.list)
	n.mu.Unlock()

	if err := n.api.MarkNotificationRead(ctx, notificationID); err != nil {
		n.log.Debug(ctx, "mark notification read failed", "notification_id", notificationID, "error", err)
	}
}

// MarkAllRead flips every notification to read locally, then notifies the
// server.
func (n *NotificationCenter) MarkAllRead(ctx context.Context) {
	n.mu.Lock()
	for i := range n.list {
		n.list[i].Read = true
	}
	n.unread = 0
	n.mu.Unlock()

	if err := n.api.MarkAllNotificationsRead(ctx); err != nil {
		n.log.Debug(ctx, "mark all notifications read failed", "error", err)
	}
}

// AcceptInvite accepts a game-invite notification: the server joins the
// user into the invite's group and waiting game and marks the notification
// read. The local copy is flipped to read to match; the returned GameID is
// where the user should be routed next.
func (n *NotificationCenter) AcceptInvite(ctx context.Context, notificationID string) (*models.InviteAccept, error) {
	result, err := n.api.AcceptInviteNotification(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	for i := range n.list {
		if n.list[i].NotificationID == notificationID {
			n.list[i].Read = true
		}
	}
	n.unread = countUnread(n.list)
	n.mu.Unlock()
	return result, nil
}

// Watch refreshes the list on a fixed interval until ctx is cancelled.
// Fetch failures are logged and the loop keeps going; there is no backoff.
func (n *NotificationCenter) Watch(ctx context.Context) {
	ticker := n.clock.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := n.Refresh(ctx); err != nil {
				n.log.Debug(ctx, "notification refresh failed", "error", err)
			}
		}
	}
}

func countUnread(list []models.Notification) int {
	count := 0
	for _, notification := range list {
		if !notification.Read {
			count++
		}
	}
	return count
}
