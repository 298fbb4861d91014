package models

// Game status values as emitted by the server. The status machine is
// server-driven; the client only branches its polling on it.
const (
	GameStatusWaiting  = "waiting"
	GameStatusReady    = "ready"
	GameStatusStarted  = "started"
	GameStatusActive   = "active"
	GameStatusFinished = "finished"
)

// Game is the game summary projection.
type Game struct {
	GameID           string       `json:"game_id"`
	GroupID          string       `json:"group_id"`
	Status           string       `json:"status"`
	CurrentHand      int          `json:"current_hand"`
	CreatedBy        string       `json:"created_by"`
	CreatedAt        string       `json:"created_at"`
	FinishedAt       string       `json:"finished_at,omitempty"`
	Players          []GamePlayer `json:"players,omitempty"`
	TurnOrder        []string     `json:"turn_order,omitempty"`
	CurrentTurnIndex int          `json:"current_turn_index,omitempty"`
}

// CurrentTurnUserID returns the user id whose turn it is, or "" when the
// server has not published a turn order yet.
func (g *Game) CurrentTurnUserID() string {
	if g == nil || len(g.TurnOrder) == 0 {
		return ""
	}
	idx := g.CurrentTurnIndex
	if idx < 0 || idx >= len(g.TurnOrder) {
		return ""
	}
	return g.TurnOrder[idx]
}

// GamePlayer is one player's entry in a game.
type GamePlayer struct {
	PlayerEntryID string `json:"player_entry_id"`
	GameID        string `json:"game_id"`
	UserID        string `json:"user_id"`
	PassUsed      bool   `json:"pass_used"`
	SwapUsed      bool   `json:"swap_used"`
	Score         int    `json:"score"`
	JoinedAt      string `json:"joined_at"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	PlayerID      string `json:"player_id,omitempty"`
}

// Play actions accepted by the play endpoint.
const (
	PlayActionPlay   = "play"
	PlayActionPass   = "pass"
	PlayActionRefuse = "refuse"
)

// PlayRequest is the body of the play endpoint.
type PlayRequest struct {
	CardID      string `json:"card_id"`
	Action      string `json:"action"`
	PhotoBase64 string `json:"photo_base64,omitempty"`
	Note        string `json:"note,omitempty"`
}

// PlayResult is the play endpoint response. PenaltyCard is set when a
// refused card earned the player a penalty.
type PlayResult struct {
	Message     string `json:"message,omitempty"`
	PenaltyCard *Card  `json:"penalty_card,omitempty"`
}

// SwapResult is the swap endpoint response.
type SwapResult struct {
	Message string `json:"message,omitempty"`
	NewCard *Card  `json:"new_card,omitempty"`
}
