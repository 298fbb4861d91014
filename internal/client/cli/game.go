package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kartli/kartli-client/internal/client/api"
	"github.com/kartli/kartli-client/internal/client/models"
	"github.com/kartli/kartli-client/internal/client/services"
)

// gameLoop is the game screen: it mounts a polling session for the
// lifetime of the sub-loop and tears it down on 'back'.
func (a *App) gameLoop(ctx context.Context, gameID string) {
	user := a.auth.User()
	if user == nil {
		fmt.Println("Sign in first.")
		return
	}

	sess := services.NewGameSession(a.api, a.log, a.clock, a.config.GamePollInterval, gameID, user.UserID)
	if err := sess.Load(ctx); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Println("Game not found.")
			return
		}
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}

	pollCtx, cancel := context.WithCancel(ctx)
	go sess.Run(pollCtx)
	defer func() {
		cancel()
		sess.Close()
	}()

	a.renderGame(sess)
	fmt.Println("In game. Commands: status, hand, subs, chat, join, start, play/pass/refuse <n>, swap <n>, vote <id> approve|reject, post <msg>, back")

	for {
		fmt.Printf("game %s> ", gameID)
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
		case "status", "refresh":
			a.renderGame(sess)
		case "hand":
			a.renderHand(sess)
		case "subs":
			a.renderSubmissions(sess)
		case "chat":
			a.renderChat(sess)

		case "join":
			if err := sess.Join(ctx); err != nil {
				fmt.Println("Error:", api.Detail(err, genericErr))
				continue
			}
			fmt.Println("Joined the game!")
		case "start":
			snap := sess.Snapshot()
			if snap.Game != nil && len(snap.Game.Players) < 2 {
				fmt.Println("At least 2 players are required.")
				continue
			}
			if err := sess.Start(ctx); err != nil {
				fmt.Println("Error:", api.Detail(err, genericErr))
				continue
			}
			fmt.Println("Game started!")

		case "play", "pass", "refuse":
			if len(args) == 0 {
				fmt.Printf("Usage: %s <card#>\n", cmd)
				continue
			}
			a.playCard(ctx, sess, cmd, args[0])
		case "swap":
			if len(args) == 0 {
				fmt.Println("Usage: swap <card#>")
				continue
			}
			a.swapCard(ctx, sess, args[0])
		case "vote":
			if len(args) < 2 || (args[1] != models.VoteApprove && args[1] != models.VoteReject) {
				fmt.Println("Usage: vote <submission_id> approve|reject")
				continue
			}
			a.vote(ctx, sess, args[0], args[1])
		case "post":
			if len(args) == 0 {
				fmt.Println("Usage: post <message>")
				continue
			}
			if err := sess.SendChat(ctx, strings.Join(args, " ")); err != nil {
				fmt.Println("Error:", api.Detail(err, genericErr))
			}

		case "back", "exit":
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func (a *App) renderGame(sess *services.GameSession) {
	snap := sess.Snapshot()
	game := snap.Game
	if game == nil {
		fmt.Println("No game data yet.")
		return
	}

	fmt.Printf("Game %s — %s, hand %d\n", game.GameID, game.Status, game.CurrentHand)
	for _, player := range game.Players {
		turn := "  "
		if player.UserID == game.CurrentTurnUserID() {
			turn = "->"
		}
		fmt.Printf("  %s %s — %d points\n", turn, player.Name, player.Score)
	}
	if game.Status == models.GameStatusStarted {
		if sess.IsMyTurn() {
			fmt.Println("It is your turn.")
		}
		if pending := sess.PendingVotes(); len(pending) > 0 {
			fmt.Printf("%d submissions are waiting for your vote ('subs').\n", len(pending))
		}
	}
}

func (a *App) renderHand(sess *services.GameSession) {
	snap := sess.Snapshot()
	if snap.Hand == nil || len(snap.Hand.Cards) == 0 {
		fmt.Println("No cards in hand.")
		return
	}
	for i, handCard := range snap.Hand.Cards {
		card := handCard.Card
		fmt.Printf("  %d. [%s] %s (%d pts) — %s\n", i+1, card.DeckType, card.Title, card.Points, card.Description)
	}
	fmt.Printf("  pass used: %v, swap used: %v\n", snap.Hand.PassUsed, snap.Hand.SwapUsed)
}

func (a *App) renderSubmissions(sess *services.GameSession) {
	snap := sess.Snapshot()
	if len(snap.Submissions) == 0 {
		fmt.Println("No submissions yet.")
		return
	}
	for _, sub := range snap.Submissions {
		author := sub.UserID
		if sub.User != nil {
			author = sub.User.Name
		}
		title := sub.CardID
		if sub.Card != nil {
			title = sub.Card.Title
		}
		fmt.Printf("  %s  %s — %s (%s, +%d/-%d)\n",
			sub.SubmissionID, author, title, sub.Status, sub.VotesApprove, sub.VotesReject)
	}
}

func (a *App) renderChat(sess *services.GameSession) {
	snap := sess.Snapshot()
	for _, msg := range snap.Chat {
		author := msg.UserID
		if msg.User != nil {
			author = msg.User.Name
		}
		if msg.MessageType == "system" {
			author = "*"
		}
		fmt.Printf("  %s: %s\n", author, msg.Content)
	}
}

func (a *App) playCard(ctx context.Context, sess *services.GameSession, action, index string) {
	card, ok := a.cardAt(sess, index)
	if !ok {
		return
	}

	photo := ""
	note := ""
	if action == models.PlayActionPlay {
		path, err := getSimpleText(a.reader, "Path to proof photo")
		if err != nil || path == "" {
			fmt.Println("A proof photo is required to play a card.")
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Println("Could not read photo:", err)
			return
		}
		photo = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)

		note, _ = getMultiline(a.reader, "Note (optional)")
	}

	result, err := sess.Play(ctx, card.Card.CardID, action, photo, note)
	if err != nil {
		if errors.Is(err, services.ErrNotYourTurn) {
			fmt.Println("It is not your turn.")
			return
		}
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}

	switch {
	case action == models.PlayActionRefuse && result.PenaltyCard != nil:
		fmt.Printf("Penalty card! %s: %s\n", result.PenaltyCard.Title, result.PenaltyCard.Description)
	case action == models.PlayActionPlay:
		fmt.Println("Proof submitted! Wait for the vote.")
	default:
		fmt.Println("You passed this turn.")
	}
}

func (a *App) swapCard(ctx context.Context, sess *services.GameSession, index string) {
	card, ok := a.cardAt(sess, index)
	if !ok {
		return
	}

	result, err := sess.Swap(ctx, card.Card.CardID)
	if err != nil {
		if errors.Is(err, services.ErrSwapAlreadyUsed) {
			fmt.Println("You already used your swap.")
			return
		}
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	if result.NewCard != nil {
		fmt.Printf("Card swapped! New card: %s\n", result.NewCard.Title)
	} else {
		fmt.Println("Card swapped!")
	}
}

func (a *App) vote(ctx context.Context, sess *services.GameSession, submissionID, voteType string) {
	result, err := sess.Vote(ctx, submissionID, voteType)
	if err != nil {
		fmt.Println("Error:", api.Detail(err, genericErr))
		return
	}
	switch result.Result {
	case models.SubmissionApproved:
		fmt.Println("Approved! The challenge was accepted.")
	case models.SubmissionRejected:
		fmt.Println("Rejected! A penalty was assigned.")
	default:
		fmt.Println("Vote recorded.")
	}
}

func (a *App) cardAt(sess *services.GameSession, index string) (models.HandCard, bool) {
	n, err := strconv.Atoi(index)
	if err != nil {
		fmt.Println("Card number must be numeric.")
		return models.HandCard{}, false
	}
	snap := sess.Snapshot()
	if snap.Hand == nil || n < 1 || n > len(snap.Hand.Cards) {
		fmt.Println("No such card; see 'hand'.")
		return models.HandCard{}, false
	}
	return snap.Hand.Cards[n-1], true
}
