// Package models contains the wire types exchanged with the game API.
// All fields mirror the server JSON contract; the client never owns this
// data, it only renders the last fetched copy.
package models

// User is the identity record returned by the identity endpoint, including
// cumulative and weekly scores maintained by the server.
type User struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Picture     string `json:"picture,omitempty"`
	PlayerID    string `json:"player_id"`
	CreatedAt   string `json:"created_at"`
	WeeklyScore int    `json:"weekly_score"`
	TotalScore  int    `json:"total_score"`
}

// SessionExchange is the response of the session-exchange endpoint.
type SessionExchange struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}
