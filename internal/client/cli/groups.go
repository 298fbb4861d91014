package cli

import (
	"context"
	"fmt"

	"github.com/kartli/kartli-client/internal/client/api"
)

func (a *App) listGroups(ctx context.Context) {
	if err := a.social.RefreshGroups(ctx); err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}

	groups := a.social.Groups()
	if len(groups) == 0 {
		fmt.Println("No groups yet. Use 'creategroup <name>' or 'joingroup <code>'.")
		return
	}
	for _, group := range groups {
		fmt.Printf("  %s  %s (invite %s, %d members)\n",
			group.GroupID, group.Name, group.InviteCode, group.MemberCount)
	}
}

func (a *App) showGroup(ctx context.Context, groupID string) {
	group, err := a.social.GroupDetail(ctx, groupID)
	if err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}

	fmt.Printf("%s (invite %s)\n", group.Name, group.InviteCode)
	for _, member := range group.Members {
		admin := ""
		if member.IsAdmin {
			admin = " (admin)"
		}
		fmt.Printf("  %s%s — weekly %d\n", member.Name, admin, member.WeeklyScore)
	}
	if group.ActiveGame != nil {
		fmt.Printf("Active game: %s (%s)\n", group.ActiveGame.GameID, group.ActiveGame.Status)
	}
}

func (a *App) createGroup(ctx context.Context, name string) {
	group, err := a.social.CreateGroup(ctx, name)
	if err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	fmt.Printf("Created %s — share invite code %s\n", group.Name, group.InviteCode)
}

func (a *App) joinGroup(ctx context.Context, code, ref string) {
	if err := a.social.JoinGroup(ctx, code, ref); err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	fmt.Println("Joined!")
}

func (a *App) newGame(ctx context.Context, groupID string) {
	game, err := a.social.CreateGame(ctx, groupID)
	if err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	fmt.Printf("Game %s created. Use 'game %s' to open it.\n", game.GameID, game.GameID)
}
