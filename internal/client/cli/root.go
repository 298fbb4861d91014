package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) prompt() string {
	if user := a.auth.User(); user != nil {
		badge := ""
		if unread := a.notifications.UnreadCount(); unread > 0 {
			badge = fmt.Sprintf(" [%d]", unread)
		}
		return fmt.Sprintf("kartli (%s)%s> ", user.Name, badge)
	}
	return "kartli> "
}

// root runs the top-level command loop. The route guard decides each
// iteration whether the user belongs on the login screen or in the app.
func (a *App) root(ctx context.Context) {
	fmt.Println("Kartli — type 'help' for commands")

	current := routeHome

	for {
		if next, redirect := resolveRoute(a.auth.State(), a.auth.Processing(), current); redirect {
			current = next
			switch current {
			case routeLogin:
				fmt.Println("You are signed out. Use 'login' to sign in.")
			case routeHome:
				fmt.Println("Signed in. Type 'help' for commands.")
			}
		}

		fmt.Print(a.prompt())
		line, ok := readLine(a.reader)
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.printHelp(current)

		case "login":
			a.login(ctx)
		case "link":
			if len(args) == 0 {
				fmt.Println("Usage: link <url>")
				continue
			}
			a.handleLink(ctx, args[0])
		case "logout":
			a.auth.Logout(ctx)
			fmt.Println("Signed out.")
		case "whoami":
			a.whoami()
		case "setname":
			if len(args) == 0 {
				fmt.Println("Usage: setname <name>")
				continue
			}
			// Local-only: there is no profile endpoint, the next identity
			// fetch restores the server's copy.
			a.auth.SetDisplayName(strings.Join(args, " "))

		case "groups":
			a.listGroups(ctx)
		case "group":
			if len(args) == 0 {
				fmt.Println("Usage: group <id>")
				continue
			}
			a.showGroup(ctx, args[0])
		case "creategroup":
			if len(args) == 0 {
				fmt.Println("Usage: creategroup <name>")
				continue
			}
			a.createGroup(ctx, strings.Join(args, " "))
		case "joingroup":
			if len(args) == 0 {
				fmt.Println("Usage: joingroup <code> [referrer]")
				continue
			}
			ref := ""
			if len(args) > 1 {
				ref = args[1]
			}
			a.joinGroup(ctx, args[0], ref)
		case "newgame":
			if len(args) == 0 {
				fmt.Println("Usage: newgame <group_id>")
				continue
			}
			a.newGame(ctx, args[0])
		case "game":
			if len(args) == 0 {
				fmt.Println("Usage: game <id>")
				continue
			}
			a.gameLoop(ctx, args[0])

		case "friends":
			a.listFriends(ctx)
		case "requests":
			a.listFriendRequests(ctx)
		case "addfriend":
			if len(args) == 0 {
				fmt.Println("Usage: addfriend <player_id>")
				continue
			}
			a.addFriend(ctx, args[0])
		case "accept":
			if len(args) == 0 {
				fmt.Println("Usage: accept <request_id>")
				continue
			}
			a.acceptFriend(ctx, args[0])
		case "reject":
			if len(args) == 0 {
				fmt.Println("Usage: reject <request_id>")
				continue
			}
			a.rejectFriend(ctx, args[0])
		case "leaderboard":
			a.showLeaderboard(ctx)

		case "notifications":
			a.listNotifications(ctx)
		case "read":
			if len(args) == 0 {
				fmt.Println("Usage: read <notification_id>")
				continue
			}
			a.notifications.MarkRead(ctx, args[0])
		case "readall":
			a.notifications.MarkAllRead(ctx)
		case "acceptinvite":
			if len(args) == 0 {
				fmt.Println("Usage: acceptinvite <notification_id>")
				continue
			}
			a.acceptInvite(ctx, args[0])

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func (a *App) printHelp(current route) {
	if current == routeLogin {
		fmt.Println("Available commands: login, link <url>, exit")
		return
	}
	fmt.Println("Available commands:")
	fmt.Println("  whoami, setname <name>, logout")
	fmt.Println("  groups, group <id>, creategroup <name>, joingroup <code> [ref]")
	fmt.Println("  newgame <group_id>, game <id>")
	fmt.Println("  friends, requests, addfriend <player_id>, accept <id>, reject <id>")
	fmt.Println("  leaderboard, notifications, read <id>, readall, acceptinvite <id>")
	fmt.Println("  link <url>, exit")
}

func (a *App) whoami() {
	user := a.auth.User()
	if user == nil {
		fmt.Println("Not signed in.")
		return
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	fmt.Printf("  player id: %s\n", user.PlayerID)
	fmt.Printf("  weekly score: %d, total score: %d\n", user.WeeklyScore, user.TotalScore)
}
