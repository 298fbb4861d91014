package cli

import (
	"context"
	"fmt"

	"github.com/kartli/kartli-client/internal/client/api"
	"github.com/kartli/kartli-client/internal/client/models"
)

func (a *App) listFriends(ctx context.Context) {
	if err := a.social.RefreshFriends(ctx); err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	friends := a.social.Friends()
	if len(friends) == 0 {
		fmt.Println("No friends yet. Use 'addfriend <player_id>'.")
		return
	}
	for _, friend := range friends {
		fmt.Printf("  %s (%s) — weekly %d\n", friend.Name, friend.PlayerID, friend.WeeklyScore)
	}
}

func (a *App) listFriendRequests(ctx context.Context) {
	if err := a.social.RefreshFriendRequests(ctx); err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	requests := a.social.FriendRequests()
	if len(requests) == 0 {
		fmt.Println("No pending requests.")
		return
	}
	for _, request := range requests {
		from := request.FromUserID
		if request.FromUser != nil {
			from = fmt.Sprintf("%s (%s)", request.FromUser.Name, request.FromUser.PlayerID)
		}
		fmt.Printf("  %s  from %s\n", request.RequestID, from)
	}
}

func (a *App) addFriend(ctx context.Context, playerID string) {
	if err := a.social.SendFriendRequest(ctx, playerID); err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	fmt.Println("Request sent.")
}

func (a *App) acceptFriend(ctx context.Context, requestID string) {
	if err := a.social.AcceptFriendRequest(ctx, requestID); err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	fmt.Println("Accepted.")
}

func (a *App) rejectFriend(ctx context.Context, requestID string) {
	if err := a.social.RejectFriendRequest(ctx, requestID); err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	fmt.Println("Rejected.")
}

func (a *App) showLeaderboard(ctx context.Context) {
	users, err := a.social.Leaderboard(ctx)
	if err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	for i, user := range users {
		fmt.Printf("  %2d. %-20s %d\n", i+1, user.Name, user.WeeklyScore)
	}
}

func (a *App) listNotifications(ctx context.Context) {
	if err := a.notifications.Refresh(ctx); err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	list := a.notifications.Notifications()
	if len(list) == 0 {
		fmt.Println("No notifications.")
		return
	}
	for _, n := range list {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s %s  %s — %s\n", marker, n.NotificationID, n.Title, n.Message)
		if n.Type == models.NotificationGameInvite {
			fmt.Printf("    game invite, accept with 'acceptinvite %s'\n", n.NotificationID)
		}
	}
}

// acceptInvite accepts a game-invite notification and drops straight into
// the joined game, mirroring the mobile app's notification tap.
func (a *App) acceptInvite(ctx context.Context, notificationID string) {
	result, err := a.notifications.AcceptInvite(ctx, notificationID)
	if err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	fmt.Println("Joined the group and its game!")
	if result.GameID != "" {
		a.gameLoop(ctx, result.GameID)
	}
}
