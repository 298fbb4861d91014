package models

// Submission statuses and vote values.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"

	VoteApprove = "approve"
	VoteReject  = "reject"
)

// Submission is a player's proof-of-completion artifact pending peer vote.
type Submission struct {
	SubmissionID string          `json:"submission_id"`
	GameID       string          `json:"game_id"`
	HandNumber   int             `json:"hand_number"`
	UserID       string          `json:"user_id"`
	CardID       string          `json:"card_id"`
	PhotoBase64  string          `json:"photo_base64,omitempty"`
	Note         string          `json:"note,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    string          `json:"created_at"`
	VotesApprove int             `json:"votes_approve"`
	VotesReject  int             `json:"votes_reject"`
	User         *SubmissionUser `json:"user,omitempty"`
	Card         *Card           `json:"card,omitempty"`
	MyVote       string          `json:"my_vote,omitempty"`
}

// SubmissionUser is the author preview embedded in a submission.
type SubmissionUser struct {
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// VoteResult is the vote endpoint response; Result is "approved" or
// "rejected" once the vote threshold is reached, otherwise reports the
// vote as recorded.
type VoteResult struct {
	Result string `json:"result,omitempty"`
}
