package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/kartli/kartli-client/internal/client/api"
	"github.com/kartli/kartli-client/internal/client/models"
	"github.com/kartli/kartli-client/internal/logging"
)

var (
	// ErrNotYourTurn short-circuits a play attempt when the locally cached
	// turn order says it is another player's turn. This is a UX check only;
	// the server validates every accepted request independently.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrSwapAlreadyUsed short-circuits a swap when the local hand already
	// reports the one-shot swap as spent.
	ErrSwapAlreadyUsed = errors.New("swap already used")
)

// GameSnapshot is a point-in-time copy of the reconciled game state for
// rendering. Every field is a full replacement of the previous fetch.
type GameSnapshot struct {
	Game        *models.Game
	Hand        *models.Hand
	Submissions []models.Submission
	Chat        []models.ChatMessage
}

// GameSession is the client-side view of one game while its screen is
// mounted. Run polls the server on a fixed cadence, branching on the last
// known game status; actions fire single requests and refetch the affected
// collections immediately so the UI never waits a full interval.
//
// Overlapping fetches are tolerated by design: each response fully replaces
// its snapshot field at completion time, so the last completed response
// wins regardless of issue order. After Close, late responses are dropped
// instead of mutating torn-down state.
type GameSession struct {
	api      api.Client
	log      logging.Logger
	clock    clockwork.Clock
	interval time.Duration
	gameID   string
	userID   string

	mu          sync.Mutex
	closed      bool
	game        *models.Game
	hand        *models.Hand
	submissions []models.Submission
	chat        []models.ChatMessage
}

func NewGameSession(apiClient api.Client, log logging.Logger, clock clockwork.Clock, interval time.Duration, gameID, userID string) *GameSession {
	return &GameSession{
		api:      apiClient,
		log:      log.With("game_id", gameID),
		clock:    clock,
		interval: interval,
		gameID:   gameID,
		userID:   userID,
	}
}

// Load performs the initial out-of-cadence fetch when the screen mounts.
func (s *GameSession) Load(ctx context.Context) error {
	if err := s.RefreshGame(ctx); err != nil {
		return err
	}
	if s.Status() == models.GameStatusStarted {
		s.refreshStarted(ctx)
	}
	return nil
}

// Run polls until ctx is cancelled. The cadence is fixed: no backoff, no
// jitter. While the game is waiting or ready only the summary is fetched;
// once started, hand, submissions and chat ride along.
func (s *GameSession) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.poll(ctx)
		}
	}
}

func (s *GameSession) poll(ctx context.Context) {
	status := s.Status()

	if err := s.RefreshGame(ctx); err != nil {
		s.log.Debug(ctx, "game refresh failed", "error", err)
		return
	}

	if status == models.GameStatusStarted {
		s.refreshStarted(ctx)
	}
}

func (s *GameSession) refreshStarted(ctx context.Context) {
	if err := s.RefreshHand(ctx); err != nil {
		s.log.Debug(ctx, "hand refresh failed", "error", err)
	}
	if err := s.RefreshSubmissions(ctx); err != nil {
		s.log.Debug(ctx, "submission refresh failed", "error", err)
	}
	if err := s.RefreshChat(ctx); err != nil {
		s.log.Debug(ctx, "chat refresh failed", "error", err)
	}
}

// Close marks the session torn down. In-flight requests are not cancelled;
// their responses are discarded when they land.
func (s *GameSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// RefreshGame replaces the game summary.
func (s *GameSession) RefreshGame(ctx context.Context) error {
	game, err := s.api.Game(ctx, s.gameID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.game = game
	return nil
}

// RefreshHand replaces the local player's hand.
func (s *GameSession) RefreshHand(ctx context.Context) error {
	hand, err := s.api.MyCards(ctx, s.gameID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.hand = hand
	return nil
}

// RefreshSubmissions replaces the submission list.
func (s *GameSession) RefreshSubmissions(ctx context.Context) error {
	submissions, err := s.api.Submissions(ctx, s.gameID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.submissions = submissions
	return nil
}

// RefreshChat replaces the chat feed.
func (s *GameSession) RefreshChat(ctx context.Context) error {
	chat, err := s.api.Chat(ctx, s.gameID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.chat = chat
	return nil
}

// Status returns the last fetched game status, or "" before the first load.
func (s *GameSession) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		return ""
	}
	return s.game.Status
}

// Snapshot returns a copy of the reconciled state for rendering.
func (s *GameSession) Snapshot() GameSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := GameSnapshot{}
	if s.game != nil {
		game := *s.game
		snap.Game = &game
	}
	if s.hand != nil {
		hand := *s.hand
		snap.Hand = &hand
	}
	snap.Submissions = make([]models.Submission, len(s.submissions))
	copy(snap.Submissions, s.submissions)
	snap.Chat = make([]models.ChatMessage, len(s.chat))
	copy(snap.Chat, s.chat)
	return snap
}

// IsMyTurn reports whether the locally cached turn order points at the
// local user.
func (s *GameSession) IsMyTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.game.CurrentTurnUserID()
	return current != "" && current == s.userID
}

// PendingVotes returns peer submissions the local user has not voted on.
func (s *GameSession) PendingVotes() []models.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []models.Submission
	for _, sub := range s.submissions {
		if sub.UserID != s.userID && sub.MyVote == "" && sub.Status == models.SubmissionPending {
			pending = append(pending, sub)
		}
	}
	return pending
}

// Join enters the game and refetches the summary on success.
func (s *GameSession) Join(ctx context.Context) error {
	if err := s.api.JoinGame(ctx, s.gameID); err != nil {
		return err
	}
	return s.RefreshGame(ctx)
}

// Start launches the game and refetches summary and hand on success.
func (s *GameSession) Start(ctx context.Context) error {
	if err := s.api.StartGame(ctx, s.gameID); err != nil {
		return err
	}
	if err := s.RefreshGame(ctx); err != nil {
		return err
	}
	if err := s.RefreshHand(ctx); err != nil {
		s.log.Debug(ctx, "hand refresh after start failed", "error", err)
	}
	return nil
}

// Play submits a play/pass/refuse for a card. Out-of-turn attempts are
// rejected locally before any request is made; the server stays the
// authority on everything else. On success the hand, submissions and chat
// are refetched immediately.
func (s *GameSession) Play(ctx context.Context, cardID, action, photoBase64, note string) (*models.PlayResult, error) {
	if !s.IsMyTurn() {
		return nil, ErrNotYourTurn
	}

	req := models.PlayRequest{CardID: cardID, Action: action}
	if action == models.PlayActionPlay {
		req.PhotoBase64 = photoBase64
		req.Note = note
	}

	result, err := s.api.PlayCard(ctx, s.gameID, req)
	if err != nil {
		return nil, err
	}

	s.refreshStarted(ctx)
	return result, nil
}

// Swap exchanges a hand card for a fresh one; usable once per game.
func (s *GameSession) Swap(ctx context.Context, cardID string) (*models.SwapResult, error) {
	s.mu.Lock()
	swapUsed := s.hand != nil && s.hand.SwapUsed
	s.mu.Unlock()
	if swapUsed {
		return nil, ErrSwapAlreadyUsed
	}

	result, err := s.api.SwapCard(ctx, s.gameID, cardID)
	if err != nil {
		return nil, err
	}

	if err := s.RefreshHand(ctx); err != nil {
		s.log.Debug(ctx, "hand refresh after swap failed", "error", err)
	}
	return result, nil
}

// Vote records an approve/reject vote on a peer submission and refetches
// submissions and chat.
func (s *GameSession) Vote(ctx context.Context, submissionID, voteType string) (*models.VoteResult, error) {
	result, err := s.api.Vote(ctx, submissionID, voteType)
	if err != nil {
		return nil, err
	}

	if err := s.RefreshSubmissions(ctx); err != nil {
		s.log.Debug(ctx, "submission refresh after vote failed", "error", err)
	}
	if err := s.RefreshChat(ctx); err != nil {
		s.log.Debug(ctx, "chat refresh after vote failed", "error", err)
	}
	return result, nil
}

// SendChat posts a message and refetches the feed. Empty or whitespace-only
// content issues no network call.
func (s *GameSession) SendChat(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	if err := s.api.SendChat(ctx, s.gameID, content); err != nil {
		return err
	}
	return s.RefreshChat(ctx)
}
