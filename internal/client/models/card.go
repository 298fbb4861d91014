package models

// Card is a challenge card dealt by the server.
type Card struct {
	CardID      string `json:"card_id"`
	DeckType    string `json:"deck_type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  int    `json:"difficulty"`
	Points      int    `json:"points"`
	TimeLimit   int    `json:"time_limit,omitempty"`
}

// HandCard is a card currently held by the local player.
type HandCard struct {
	HandCardID string `json:"hand_card_id"`
	Card       Card   `json:"card"`
	Selected   bool   `json:"selected,omitempty"`
}

// Hand is the my-cards response: the local player's cards for the current
// hand plus the one-shot pass/swap flags.
type Hand struct {
	Cards             []HandCard `json:"cards"`
	PassUsed          bool       `json:"pass_used"`
	SwapUsed          bool       `json:"swap_used"`
	HandTimeRemaining int        `json:"hand_time_remaining,omitempty"`
}
