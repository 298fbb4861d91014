// Package session holds the client's only durable cross-screen state: the
// bearer session token and a pending group invite captured from a deep link
// before authentication completed.
package session

import (
	"context"
	"encoding/json"

	"github.com/kartli/kartli-client/internal/client/storage"
)

const (
	keySessionToken  = "session_token"
	keyPendingInvite = "pending_group_invite"
)

// PendingInvite is a group invite waiting for the user to authenticate.
// Ref is the optional referrer player id from the invite link.
type PendingInvite struct {
	Code string `json:"code"`
	Ref  string `json:"ref,omitempty"`
}

// Store is the single source of truth for the persisted session token.
// Storage failures are swallowed and reported as "absent": the client
// fails safe to the logged-out state rather than crashing on a broken
// local database.
type Store struct {
	repo storage.Repository
}

func NewStore(repo storage.Repository) *Store {
	return &Store{repo: repo}
}

// Token returns the persisted bearer token, or "" when absent or unreadable.
func (s *Store) Token(ctx context.Context) string {
	value, err := s.repo.Get(ctx, keySessionToken)
	if err != nil {
		return ""
	}
	return string(value)
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, keySessionToken, []byte(token))
}

func (s *Store) ClearToken(ctx context.Context) error {
	return s.repo.Delete(ctx, keySessionToken)
}

// PendingInvite returns the stored invite, or nil when absent. A corrupt
// record is discarded on read so it cannot wedge the replay flow.
func (s *Store) PendingInvite(ctx context.Context) *PendingInvite {
	value, err := s.repo.Get(ctx, keyPendingInvite)
	if err != nil || len(value) == 0 {
		return nil
	}

	var invite PendingInvite
	if err := json.Unmarshal(value, &invite); err != nil || invite.Code == "" {
		_ = s.repo.Delete(ctx, keyPendingInvite)
		return nil
	}
	return &invite
}

func (s *Store) SetPendingInvite(ctx context.Context, invite PendingInvite) error {
	data, err := json.Marshal(invite)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, keyPendingInvite, data)
}

func (s *Store) ClearPendingInvite(ctx context.Context) error {
	return s.repo.Delete(ctx, keyPendingInvite)
}
