package models

// Notification types the client reacts to beyond rendering.
const (
	NotificationGameInvite = "game_invite"
)

// Notification is a server-produced notification. The unread badge is
// derived locally from the Read flag, never pushed.
type Notification struct {
	NotificationID string         `json:"notification_id"`
	UserID         string         `json:"user_id"`
	Type           string         `json:"type"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Data           map[string]any `json:"data,omitempty"`
	Read           bool           `json:"read"`
	CreatedAt      string         `json:"created_at"`
}

// InviteAccept is the accept-invite endpoint response: the server has
// joined the user into the group and its waiting game.
type InviteAccept struct {
	Message string `json:"message,omitempty"`
	GameID  string `json:"game_id"`
	GroupID string `json:"group_id"`
}
