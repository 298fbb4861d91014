package models

// Friend is a confirmed friend projection.
type Friend struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	PlayerID    string `json:"player_id"`
	Picture     string `json:"picture,omitempty"`
	WeeklyScore int    `json:"weekly_score"`
}

// FriendRequest is a pending friend request.
type FriendRequest struct {
	RequestID  string             `json:"request_id"`
	FromUserID string             `json:"from_user_id"`
	ToUserID   string             `json:"to_user_id"`
	Status     string             `json:"status"`
	CreatedAt  string             `json:"created_at"`
	FromUser   *FriendRequestUser `json:"from_user,omitempty"`
}

// FriendRequestUser is the sender preview embedded in a friend request.
type FriendRequestUser struct {
	Name     string `json:"name"`
	PlayerID string `json:"player_id"`
	Picture  string `json:"picture,omitempty"`
}
