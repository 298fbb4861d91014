package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kartli/kartli-client/internal/client/api"
	"github.com/kartli/kartli-client/internal/client/deeplink"
	"github.com/kartli/kartli-client/internal/client/services"
)

// authProviderURL is the external identity provider's entry point. The
// provider redirects back with a one-time session_id after sign-in.
const authProviderURL = "https://auth.emergentagent.com/"

// login drives the external sign-in flow: the user opens the provider URL
// in a browser, signs in, and pastes either the full redirect URL or the
// bare session id back into the terminal. The identifier is read without
// echo and never stored, so it cannot be replayed.
func (a *App) login(ctx context.Context) {
	redirect := url.QueryEscape(a.config.ServerURL + "/")
	fmt.Println("Open this URL in your browser and sign in:")
	fmt.Printf("  %s?redirect=%s\n", authProviderURL, redirect)

	pasted, err := getSecret("Paste the redirect URL or session id")
	if err != nil {
		fmt.Println("Could not read input.")
		return
	}
	if pasted == "" {
		return
	}

	// A bare id has no scheme; wrap it so the link dispatcher handles both
	// forms the same way.
	if !strings.Contains(pasted, "://") {
		pasted = "kartli://auth?session_id=" + url.QueryEscape(pasted)
	}

	a.handleLink(ctx, pasted)
}

// handleLink feeds an incoming deep link (invite or auth redirect) into
// the dispatcher, mirroring the mobile app's URL-event handler.
func (a *App) handleLink(ctx context.Context, raw string) {
	err := a.links.Handle(ctx, raw)
	switch {
	case err == nil:
		if a.auth.Authenticated() {
			if user := a.auth.User(); user != nil {
				fmt.Printf("Signed in as %s.\n", user.Name)
			}
		}
	case errors.Is(err, deeplink.ErrLinkInFlight),
		errors.Is(err, services.ErrExchangeInFlight):
		fmt.Println("Still processing a previous link, try again in a moment.")
	default:
		fmt.Println("Sign-in failed:", api.Detail(err, genericErr))
	}
}
