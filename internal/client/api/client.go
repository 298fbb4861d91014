// Package api defines the remote game API surface consumed by the client
// and its HTTP/JSON implementation. Every call is an explicit suspension
// point; all authoritative game logic lives behind this boundary.
package api

import (
	"context"

	"github.com/kartli/kartli-client/internal/client/models"
)

// Client is the full API surface of the game backend. Services depend on
// this interface so reconciliation logic can be exercised against fakes.
//
// All methods honor context cancellation. SetToken installs the bearer
// credential used on every authenticated request; the session store remains
// the single durable source of that token.
type Client interface {
	// SetToken installs (or clears, with "") the bearer token.
	SetToken(token string)

	// Auth.
	Me(ctx context.Context) (*models.User, error)
	ExchangeSession(ctx context.Context, sessionID string) (*models.SessionExchange, error)
	Logout(ctx context.Context) error

	// Notifications.
	Notifications(ctx context.Context) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
	MarkAllNotificationsRead(ctx context.Context) error
	AcceptInviteNotification(ctx context.Context, notificationID string) (*models.InviteAccept, error)

	// Groups.
	Groups(ctx context.Context) ([]models.Group, error)
	CreateGroup(ctx context.Context, name string) (*models.Group, error)
	JoinGroup(ctx context.Context, inviteCode, referrerPlayerID string) error
	GroupDetail(ctx context.Context, groupID string) (*models.Group, error)

	// Games.
	CreateGame(ctx context.Context, groupID string) (*models.Game, error)
	JoinGame(ctx context.Context, gameID string) error
	StartGame(ctx context.Context, gameID string) error
	Game(ctx context.Context, gameID string) (*models.Game, error)
	MyCards(ctx context.Context, gameID string) (*models.Hand, error)
	Submissions(ctx context.Context, gameID string) ([]models.Submission, error)
	Chat(ctx context.Context, gameID string) ([]models.ChatMessage, error)
	PlayCard(ctx context.Context, gameID string, req models.PlayRequest) (*models.PlayResult, error)
	SwapCard(ctx context.Context, gameID, cardID string) (*models.SwapResult, error)
	Vote(ctx context.Context, submissionID, voteType string) (*models.VoteResult, error)
	SendChat(ctx context.Context, gameID, content string) error

	// Leaderboard and friends.
	Leaderboard(ctx context.Context) ([]models.User, error)
	Friends(ctx context.Context) ([]models.Friend, error)
	FriendRequests(ctx context.Context) ([]models.FriendRequest, error)
	SendFriendRequest(ctx context.Context, playerID string) error
	AcceptFriendRequest(ctx context.Context, requestID string) error
	RejectFriendRequest(ctx context.Context, requestID string) error
}
