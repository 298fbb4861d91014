package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrUnavailable covers transport failures: no response was received.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized is any 401: missing, invalid or expired session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is a 404 on the addressed resource.
	ErrNotFound = errors.New("not found")
)

// Error is a non-2xx application error. Detail carries the server's
// localized message verbatim and is what the UI shows to the user.
// Unwrap exposes the status sentinels, so errors.Is keeps working on a
// 401 or 404 that also carries a detail message.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Detail extracts the user-facing message from err. Application errors
// return the server's detail string; everything else falls back to the
// generic message, matching the alert behavior of the app.
func Detail(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
