package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/kartli/kartli-client/internal/client/models"
)

// HTTPClient implements Client over the HTTP/JSON API.
type HTTPClient struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for the API at baseURL. The transport is
// tuned for many small frequent requests (the polling loop fires every
// couple of seconds), so idle connections are kept around.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Transport: transport, Timeout: timeout},
	}
}

// SetToken installs the bearer token used on subsequent requests.
// An empty string clears it.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errDetail is the error envelope of non-2xx responses.
type errDetail struct {
	Detail string `json:"detail"`
}

// do performs one JSON request. payload and result may be nil. Non-2xx
// responses are mapped to *Error, which unwraps to ErrUnauthorized or
// ErrNotFound for those statuses; transport failures wrap ErrUnavailable.
// No retries at this layer.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapStatus(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

func mapStatus(status int, body []byte) error {
	var ed errDetail
	_ = json.Unmarshal(body, &ed)
	return &Error{Status: status, Detail: ed.Detail}
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ExchangeSession(ctx context.Context, sessionID string) (*models.SessionExchange, error) {
	req := map[string]string{"session_id": sessionID}
	var resp models.SessionExchange
	if err := c.do(ctx, http.MethodPost, "/api/auth/session", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *HTTPClient) Notifications(ctx context.Context) ([]models.Notification, error) {
	var list []models.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, notificationID string) error {
	path := "/api/notifications/" + url.PathEscape(notificationID) + "/read"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *HTTPClient) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/notifications/read-all", nil, nil)
}

func (c *HTTPClient) AcceptInviteNotification(ctx context.Context, notificationID string) (*models.InviteAccept, error) {
	path := "/api/notifications/" + url.PathEscape(notificationID) + "/accept-invite"
	var result models.InviteAccept
	if err := c.do(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Groups(ctx context.Context) ([]models.Group, error) {
	var list []models.Group
	if err := c.do(ctx, http.MethodGet, "/api/groups", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateGroup(ctx context.Context, name string) (*models.Group, error) {
	req := map[string]string{"name": name}
	// The server wraps the created group in a {group} envelope.
	var resp struct {
		Group models.Group `json:"group"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/groups", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Group, nil
}

func (c *HTTPClient) JoinGroup(ctx context.Context, inviteCode, referrerPlayerID string) error {
	req := map[string]string{"invite_code": inviteCode}
	if referrerPlayerID != "" {
		req["referrer_player_id"] = referrerPlayerID
	}
	return c.do(ctx, http.MethodPost, "/api/groups/join", req, nil)
}

func (c *HTTPClient) GroupDetail(ctx context.Context, groupID string) (*models.Group, error) {
	var group models.Group
	path := "/api/groups/" + url.PathEscape(groupID)
	if err := c.do(ctx, http.MethodGet, path, nil, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (c *HTTPClient) CreateGame(ctx context.Context, groupID string) (*models.Game, error) {
	req := map[string]string{"group_id": groupID}
	var game models.Game
	if err := c.do(ctx, http.MethodPost, "/api/games", req, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (c *HTTPClient) JoinGame(ctx context.Context, gameID string) error {
	return c.do(ctx, http.MethodPost, "/api/games/"+url.PathEscape(gameID)+"/join", nil, nil)
}

func (c *HTTPClient) StartGame(ctx context.Context, gameID string) error {
	return c.do(ctx, http.MethodPost, "/api/games/"+url.PathEscape(gameID)+"/start", nil, nil)
}

func (c *HTTPClient) Game(ctx context.Context, gameID string) (*models.Game, error) {
	var game models.Game
	if err := c.do(ctx, http.MethodGet, "/api/games/"+url.PathEscape(gameID), nil, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (c *HTTPClient) MyCards(ctx context.Context, gameID string) (*models.Hand, error) {
	var hand models.Hand
	path := "/api/games/" + url.PathEscape(gameID) + "/my-cards"
	if err := c.do(ctx, http.MethodGet, path, nil, &hand); err != nil {
		return nil, err
	}
	return &hand, nil
}

func (c *HTTPClient) Submissions(ctx context.Context, gameID string) ([]models.Submission, error) {
	var list []models.Submission
	path := "/api/games/" + url.PathEscape(gameID) + "/submissions"
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) Chat(ctx context.Context, gameID string) ([]models.ChatMessage, error) {
	var list []models.ChatMessage
	path := "/api/games/" + url.PathEscape(gameID) + "/chat"
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) PlayCard(ctx context.Context, gameID string, req models.PlayRequest) (*models.PlayResult, error) {
	var result models.PlayResult
	path := "/api/games/" + url.PathEscape(gameID) + "/play"
	if err := c.do(ctx, http.MethodPost, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) SwapCard(ctx context.Context, gameID, cardID string) (*models.SwapResult, error) {
	req := map[string]string{"card_id": cardID}
	var result models.SwapResult
	path := "/api/games/" + url.PathEscape(gameID) + "/swap"
	if err := c.do(ctx, http.MethodPost, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Vote(ctx context.Context, submissionID, voteType string) (*models.VoteResult, error) {
	req := map[string]string{"vote_type": voteType}
	var result models.VoteResult
	path := "/api/submissions/" + url.PathEscape(submissionID) + "/vote"
	if err := c.do(ctx, http.MethodPost, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) SendChat(ctx context.Context, gameID, content string) error {
	req := map[string]string{"content": content}
	path := "/api/games/" + url.PathEscape(gameID) + "/chat"
	return c.do(ctx, http.MethodPost, path, req, nil)
}

func (c *HTTPClient) Leaderboard(ctx context.Context) ([]models.User, error) {
	var list []models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/leaderboard", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) Friends(ctx context.Context) ([]models.Friend, error) {
	var list []models.Friend
	if err := c.do(ctx, http.MethodGet, "/api/friends", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) FriendRequests(ctx context.Context) ([]models.FriendRequest, error) {
	var list []models.FriendRequest
	if err := c.do(ctx, http.MethodGet, "/api/friends/requests", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) SendFriendRequest(ctx context.Context, playerID string) error {
	req := map[string]string{"player_id": playerID}
	return c.do(ctx, http.MethodPost, "/api/friends/request", req, nil)
}

func (c *HTTPClient) AcceptFriendRequest(ctx context.Context, requestID string) error {
	path := "/api/friends/requests/" + url.PathEscape(requestID) + "/accept"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *HTTPClient) RejectFriendRequest(ctx context.Context, requestID string) error {
	path := "/api/friends/requests/" + url.PathEscape(requestID) + "/reject"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// CloseIdleConnections releases pooled connections, used on shutdown.
func (c *HTTPClient) CloseIdleConnections() {
	c.client.CloseIdleConnections()
}

var _ Client = (*HTTPClient)(nil)
