package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kartli/kartli-client/internal/client/models"
)

func newTestClient(handler http.Handler) (*HTTPClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewHTTPClient(server.URL, 5*time.Second), server
}

func TestHTTPClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.User{UserID: "u1"})
	}))
	defer server.Close()

	client.SetToken("token-1")
	user, err := client.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", user.UserID)
	require.Equal(t, "Bearer token-1", gotAuth)
}

func TestHTTPClientOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.User{})
	}))
	defer server.Close()

	_, err := client.Me(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestHTTPClientExchangeSession(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/session", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ext-1", body["session_id"])

		json.NewEncoder(w).Encode(models.SessionExchange{
			User:         models.User{UserID: "u1"},
			SessionToken: "token-1",
		})
	}))
	defer server.Close()

	resp, err := client.ExchangeSession(context.Background(), "ext-1")
	require.NoError(t, err)
	require.Equal(t, "u1", resp.User.UserID)
	require.Equal(t, "token-1", resp.SessionToken)
}

func TestHTTPClientMapsUnauthorized(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Session expired"})
	}))
	defer server.Close()

	_, err := client.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Contains(t, err.Error(), "Session expired")

	// The sentinel match and the server detail travel on the same error.
	require.Equal(t, "Session expired", Detail(err, "fallback"))
}

func TestHTTPClientMapsNotFound(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Game not found"})
	}))
	defer server.Close()

	_, err := client.Game(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, "Game not found", Detail(err, "fallback"))
}

func TestHTTPClientMapsNotFoundWithoutDetail(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := client.Game(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, "fallback", Detail(err, "fallback"))
}

func TestHTTPClientMapsApplicationError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not your turn"})
	}))
	defer server.Close()

	_, err := client.PlayCard(context.Background(), "g1", models.PlayRequest{CardID: "c1", Action: models.PlayActionPlay})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Not your turn", apiErr.Detail)
	require.Equal(t, "Not your turn", Detail(err, "fallback"))
}

func TestHTTPClientTransportFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing is listening anymore

	client := NewHTTPClient(server.URL, time.Second)
	_, err := client.Me(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, "fallback", Detail(err, "fallback"))
}

func TestHTTPClientCreateGroupUnwrapsEnvelope(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"group": models.Group{GroupID: "g1", Name: "Crew", InviteCode: "ABC123"},
		})
	}))
	defer server.Close()

	group, err := client.CreateGroup(context.Background(), "Crew")
	require.NoError(t, err)
	require.Equal(t, "g1", group.GroupID)
	require.Equal(t, "ABC123", group.InviteCode)
}

func TestHTTPClientEscapesPathSegments(t *testing.T) {
	var gotPath string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(models.Game{})
	}))
	defer server.Close()

	_, err := client.Game(context.Background(), "g/../1")
	require.NoError(t, err)
	require.Equal(t, "/api/games/g%2F..%2F1", gotPath)
}

func TestHTTPClientAcceptInviteNotification(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/notifications/n1/accept-invite", r.URL.Path)
		json.NewEncoder(w).Encode(models.InviteAccept{GameID: "g1", GroupID: "grp1"})
	}))
	defer server.Close()

	result, err := client.AcceptInviteNotification(context.Background(), "n1")
	require.NoError(t, err)
	require.Equal(t, "g1", result.GameID)
	require.Equal(t, "grp1", result.GroupID)
}

func TestHTTPClientVote(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/submissions/s1/vote", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, models.VoteApprove, body["vote_type"])

		json.NewEncoder(w).Encode(models.VoteResult{Result: models.SubmissionApproved})
	}))
	defer server.Close()

	result, err := client.Vote(context.Background(), "s1", models.VoteApprove)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionApproved, result.Result)
}

func TestHTTPClientJoinGroupOmitsEmptyReferrer(t *testing.T) {
	var body map[string]string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	}))
	defer server.Close()

	require.NoError(t, client.JoinGroup(context.Background(), "ABC123", ""))
	require.Equal(t, map[string]string{"invite_code": "ABC123"}, body)

	require.NoError(t, client.JoinGroup(context.Background(), "ABC123", "P-42"))
	require.Equal(t, "P-42", body["referrer_player_id"])
}
