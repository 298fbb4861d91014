package models

// Group is a group summary; detail responses additionally carry members,
// the admin flag and the group's active game.
type Group struct {
	GroupID     string        `json:"group_id"`
	Name        string        `json:"name"`
	InviteCode  string        `json:"invite_code"`
	CreatedBy   string        `json:"created_by"`
	CreatedAt   string        `json:"created_at"`
	MemberCount int           `json:"member_count,omitempty"`
	IsAdmin     bool          `json:"is_admin,omitempty"`
	Members     []GroupMember `json:"members,omitempty"`
	ActiveGame  *Game         `json:"active_game,omitempty"`
}

// GroupMember is one member inside a group detail response.
type GroupMember struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	PlayerID    string `json:"player_id"`
	Picture     string `json:"picture,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
	WeeklyScore int    `json:"weekly_score"`
}
