package services

import (
	"context"
	"sync"

	"github.com/kartli/kartli-client/internal/client/api"
	"github.com/kartli/kartli-client/internal/client/models"
	"github.com/kartli/kartli-client/internal/client/session"
	"github.com/kartli/kartli-client/internal/logging"
)

// Social covers the group, friend and leaderboard flows. Lists are cached
// as ephemeral copies and fully replaced on every successful fetch; each
// mutation triggers an immediate refetch of the collections it affects.
type Social struct {
	api      api.Client
	sessions *session.Store
	log      logging.Logger

	mu       sync.Mutex
	groups   []models.Group
	friends  []models.Friend
	requests []models.FriendRequest
}

func NewSocial(apiClient api.Client, sessions *session.Store, log logging.Logger) *Social {
	return &Social{api: apiClient, sessions: sessions, log: log}
}

// RefreshGroups replaces the cached group list.
func (s *Social) RefreshGroups(ctx context.Context) error {
	groups, err := s.api.Groups(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.groups = groups
	s.mu.Unlock()
	return nil
}

// Groups returns the last fetched group list.
func (s *Social) Groups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Group, len(s.groups))
	copy(out, s.groups)
	return out
}

// CreateGroup creates a group and refetches the list.
func (s *Social) CreateGroup(ctx context.Context, name string) (*models.Group, error) {
	group, err := s.api.CreateGroup(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.RefreshGroups(ctx); err != nil {
		s.log.Debug(ctx, "group list refresh after create failed", "error", err)
	}
	return group, nil
}

// JoinGroup joins by invite code and refetches the list on success.
func (s *Social) JoinGroup(ctx context.Context, inviteCode, referrerPlayerID string) error {
	if err := s.api.JoinGroup(ctx, inviteCode, referrerPlayerID); err != nil {
		return err
	}
	if err := s.RefreshGroups(ctx); err != nil {
		s.log.Debug(ctx, "group list refresh after join failed", "error", err)
	}
	return nil
}

// GroupDetail fetches one group with members, admin flag and active game.
func (s *Social) GroupDetail(ctx context.Context, groupID string) (*models.Group, error) {
	return s.api.GroupDetail(ctx, groupID)
}

// CreateGame starts a new game in the group.
func (s *Social) CreateGame(ctx context.Context, groupID string) (*models.Game, error) {
	return s.api.CreateGame(ctx, groupID)
}

// ConsumePendingInvite replays a deep-link invite captured before the user
// was authenticated. The join is attempted at most once: the pending record
// is deleted regardless of the outcome, a failed join is logged and the
// invite is dropped.
func (s *Social) ConsumePendingInvite(ctx context.Context) bool {
	invite := s.sessions.PendingInvite(ctx)
	if invite == nil {
		return false
	}

	err := s.api.JoinGroup(ctx, invite.Code, invite.Ref)
	_ = s.sessions.ClearPendingInvite(ctx)
	if err != nil {
		s.log.Warn(ctx, "pending invite join failed, dropping invite",
			"invite_code", invite.Code, "error", err)
		return false
	}

	s.log.Info(ctx, "pending invite consumed", "invite_code", invite.Code)
	if err := s.RefreshGroups(ctx); err != nil {
		s.log.Debug(ctx, "group list refresh after invite failed", "error", err)
	}
	return true
}

// RefreshFriends replaces the cached friend list.
func (s *Social) RefreshFriends(ctx context.Context) error {
	friends, err := s.api.Friends(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.friends = friends
	s.mu.Unlock()
	return nil
}

// Friends returns the last fetched friend list.
func (s *Social) Friends() []models.Friend {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Friend, len(s.friends))
	copy(out, s.friends)
	return out
}

// RefreshFriendRequests replaces the cached request list.
func (s *Social) RefreshFriendRequests(ctx context.Context) error {
	requests, err := s.api.FriendRequests(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.requests = requests
	s.mu.Unlock()
	return nil
}

// FriendRequests returns the last fetched request list.
func (s *Social) FriendRequests() []models.FriendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FriendRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// SendFriendRequest sends a friend request by player id.
func (s *Social) SendFriendRequest(ctx context.Context, playerID string) error {
	return s.api.SendFriendRequest(ctx, playerID)
}

// AcceptFriendRequest accepts a request and refetches requests and friends.
func (s *Social) AcceptFriendRequest(ctx context.Context, requestID string) error {
	if err := s.api.AcceptFriendRequest(ctx, requestID); err != nil {
		return err
	}
	if err := s.RefreshFriendRequests(ctx); err != nil {
		s.log.Debug(ctx, "request list refresh after accept failed", "error", err)
	}
	if err := s.RefreshFriends(ctx); err != nil {
		s.log.Debug(ctx, "friend list refresh after accept failed", "error", err)
	}
	return nil
}

// RejectFriendRequest rejects a request and refetches the request list.
func (s *Social) RejectFriendRequest(ctx context.Context, requestID string) error {
	if err := s.api.RejectFriendRequest(ctx, requestID); err != nil {
		return err
	}
	if err := s.RefreshFriendRequests(ctx); err != nil {
		s.log.Debug(ctx, "request list refresh after reject failed", "error", err)
	}
	return nil
}

// Leaderboard fetches the weekly leaderboard.
func (s *Social) Leaderboard(ctx context.Context) ([]models.User, error) {
	return s.api.Leaderboard(ctx)
}
