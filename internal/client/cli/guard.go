package cli

import "github.com/kartli/kartli-client/internal/client/services"

// route identifies a top-level section of the UI.
type route string

const (
	routeLogin route = "login"
	routeHome  route = "home"
)

// resolveRoute is the route guard: given the auth state, the in-flight
// exchange flag and the current location it returns where the user should
// be and whether a redirect is needed. While the state machine is loading
// or an exchange is processing, the current location is held: redirecting
// on the stale unauthenticated state would bounce the user back to login
// mid-exchange. The function is idempotent, feeding its output back in
// yields no further redirect.
func resolveRoute(state services.AuthState, processing bool, current route) (route, bool) {
	if processing || state == services.StateLoading {
		return current, false
	}
	if state == services.StateUnauthenticated && current != routeLogin {
		return routeLogin, true
	}
	if state == services.StateAuthenticated && current == routeLogin {
		return routeHome, true
	}
	return current, false
}
