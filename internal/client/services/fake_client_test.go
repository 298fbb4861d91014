package services

import (
	"context"
	"sync"

	"github.com/kartli/kartli-client/internal/client/api"
	"github.com/kartli/kartli-client/internal/client/models"
)

// fakeClient implements api.Client for unit tests. Counters record calls;
// the fn overrides let individual tests block or reorder responses.
type fakeClient struct {
	mu sync.Mutex

	token string

	user  *models.User
	meErr error

	exchangeResp  *models.SessionExchange
	exchangeErr   error
	exchangeCalls int
	exchangeFn    func(ctx context.Context, sessionID string) (*models.SessionExchange, error)

	logoutErr   error
	logoutCalls int

	notifications []models.Notification
	notifErr      error
	notifCalls    int
	notifFetched  chan struct{}
	markReadIDs   []string
	markReadErr   error
	markAllCalls  int
	markAllErr    error
	acceptIDs     []string
	acceptErr     error
	acceptResult  *models.InviteAccept

	groups          []models.Group
	groupsCalls     int
	joinGroupErr    error
	joinGroupCalls  int
	joinGroupCodes  []string
	friends         []models.Friend
	friendsCalls    int
	requests        []models.FriendRequest
	requestsCalls   int
	acceptCalls     int
	rejectCalls     int
	sendRequestIDs  []string
	leaderboard     []models.User
	leaderboardErrs error

	game        *models.Game
	gameErr     error
	gameCalls   int
	gameFetched chan struct{}
	gameFn      func(ctx context.Context, gameID string) (*models.Game, error)

	hand      *models.Hand
	handErr   error
	handCalls int

	submissions []models.Submission
	subCalls    int

	chat      []models.ChatMessage
	chatCalls int

	joinGameCalls  int
	startGameCalls int
	playCalls      int
	playErr        error
	playResult     *models.PlayResult
	swapCalls      int
	swapResult     *models.SwapResult
	voteCalls      int
	voteResult     *models.VoteResult
	sendChatCalls  int
	sendChatErr    error
	sentMessages   []string
}

func (f *fakeClient) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeClient) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.meErr != nil {
		return nil, f.meErr
	}
	u := *f.user
	return &u, nil
}

func (f *fakeClient) ExchangeSession(ctx context.Context, sessionID string) (*models.SessionExchange, error) {
	f.mu.Lock()
	f.exchangeCalls++
	fn := f.exchangeFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, sessionID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	resp := *f.exchangeResp
	return &resp, nil
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeClient) Notifications(ctx context.Context) ([]models.Notification, error) {
	f.mu.Lock()
	f.notifCalls++
	err := f.notifErr
	list := append([]models.Notification(nil), f.notifications...)
	ch := f.notifFetched
	f.mu.Unlock()
	if ch != nil {
		ch <- struct{}{}
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (f *fakeClient) MarkNotificationRead(ctx context.Context, notificationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markReadIDs = append(f.markReadIDs, notificationID)
	return f.markReadErr
}

func (f *fakeClient) MarkAllNotificationsRead(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markAllCalls++
	return f.markAllErr
}

func (f *fakeClient) AcceptInviteNotification(ctx context.Context, notificationID string) (*models.InviteAccept, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acceptIDs = append(f.acceptIDs, notificationID)
	if f.acceptErr != nil {
		return nil, f.acceptErr
	}
	if f.acceptResult != nil {
		return f.acceptResult, nil
	}
	return &models.InviteAccept{}, nil
}

func (f *fakeClient) Groups(ctx context.Context) ([]models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groupsCalls++
	return append([]models.Group(nil), f.groups...), nil
}

func (f *fakeClient) CreateGroup(ctx context.Context, name string) (*models.Group, error) {
	return &models.Group{GroupID: "g-new", Name: name, InviteCode: "CODE"}, nil
}

func (f *fakeClient) JoinGroup(ctx context.Context, inviteCode, referrerPlayerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joinGroupCalls++
	f.joinGroupCodes = append(f.joinGroupCodes, inviteCode)
	return f.joinGroupErr
}

func (f *fakeClient) GroupDetail(ctx context.Context, groupID string) (*models.Group, error) {
	return &models.Group{GroupID: groupID}, nil
}

func (f *fakeClient) CreateGame(ctx context.Context, groupID string) (*models.Game, error) {
	return &models.Game{GameID: "game-new", GroupID: groupID, Status: models.GameStatusWaiting}, nil
}

func (f *fakeClient) JoinGame(ctx context.Context, gameID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joinGameCalls++
	return nil
}

func (f *fakeClient) StartGame(ctx context.Context, gameID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startGameCalls++
	return nil
}

func (f *fakeClient) Game(ctx context.Context, gameID string) (*models.Game, error) {
	f.mu.Lock()
	f.gameCalls++
	fn := f.gameFn
	err := f.gameErr
	var game *models.Game
	if f.game != nil {
		g := *f.game
		game = &g
	}
	ch := f.gameFetched
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, gameID)
	}
	if ch != nil {
		ch <- struct{}{}
	}
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (f *fakeClient) MyCards(ctx context.Context, gameID string) (*models.Hand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handCalls++
	if f.handErr != nil {
		return nil, f.handErr
	}
	if f.hand == nil {
		return &models.Hand{}, nil
	}
	h := *f.hand
	return &h, nil
}

func (f *fakeClient) Submissions(ctx context.Context, gameID string) ([]models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subCalls++
	return append([]models.Submission(nil), f.submissions...), nil
}

func (f *fakeClient) Chat(ctx context.Context, gameID string) ([]models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatCalls++
	return append([]models.ChatMessage(nil), f.chat...), nil
}

func (f *fakeClient) PlayCard(ctx context.Context, gameID string, req models.PlayRequest) (*models.PlayResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playCalls++
	if f.playErr != nil {
		return nil, f.playErr
	}
	if f.playResult != nil {
		return f.playResult, nil
	}
	return &models.PlayResult{}, nil
}

func (f *fakeClient) SwapCard(ctx context.Context, gameID, cardID string) (*models.SwapResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.swapCalls++
	if f.swapResult != nil {
		return f.swapResult, nil
	}
	return &models.SwapResult{}, nil
}

func (f *fakeClient) Vote(ctx context.Context, submissionID, voteType string) (*models.VoteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voteCalls++
	if f.voteResult != nil {
		return f.voteResult, nil
	}
	return &models.VoteResult{}, nil
}

func (f *fakeClient) SendChat(ctx context.Context, gameID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendChatCalls++
	f.sentMessages = append(f.sentMessages, content)
	return f.sendChatErr
}

func (f *fakeClient) Leaderboard(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.leaderboardErrs != nil {
		return nil, f.leaderboardErrs
	}
	return append([]models.User(nil), f.leaderboard...), nil
}

func (f *fakeClient) Friends(ctx context.Context) ([]models.Friend, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.friendsCalls++
	return append([]models.Friend(nil), f.friends...), nil
}

func (f *fakeClient) FriendRequests(ctx context.Context) ([]models.FriendRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requestsCalls++
	return append([]models.FriendRequest(nil), f.requests...), nil
}

func (f *fakeClient) SendFriendRequest(ctx context.Context, playerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendRequestIDs = append(f.sendRequestIDs, playerID)
	return nil
}

func (f *fakeClient) AcceptFriendRequest(ctx context.Context, requestID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acceptCalls++
	return nil
}

func (f *fakeClient) RejectFriendRequest(ctx context.Context, requestID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejectCalls++
	return nil
}

var _ api.Client = (*fakeClient)(nil)
