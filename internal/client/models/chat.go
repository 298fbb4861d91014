package models

// ChatMessage is one entry in a game's chat feed. System and submission
// messages are produced server-side.
type ChatMessage struct {
	MessageID    string          `json:"message_id"`
	GameID       string          `json:"game_id"`
	UserID       string          `json:"user_id"`
	Content      string          `json:"content"`
	MessageType  string          `json:"message_type"`
	SubmissionID string          `json:"submission_id,omitempty"`
	CreatedAt    string          `json:"created_at"`
	User         *SubmissionUser `json:"user,omitempty"`
	Submission   *Submission     `json:"submission,omitempty"`
}
