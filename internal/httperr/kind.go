package httperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindAuthenticationRequired
	KindAuthorizationDenied
	KindValidationFailed
	KindNotFound
	KindConflict
	KindRateLimited
)

var codeKinds = map[string]Kind{
	"unauthenticated":       KindAuthenticationRequired,
	"invalid_token":         KindAuthenticationRequired,
	"forbidden":             KindAuthorizationDenied,
	"invalid_csrf_token":    KindAuthorizationDenied,
	"invalid_request":       KindValidationFailed,
	"validation_failed":     KindValidationFailed,
	"invalid_status":        KindValidationFailed,
	"invalid_image":         KindValidationFailed,
	"no_deposit":            KindValidationFailed,
	"profile_not_found":     KindNotFound,
	"client_not_found":      KindNotFound,
	"artist_not_found":      KindNotFound,
	"artist_inactive":       KindNotFound,
	"studio_not_found":      KindNotFound,
	"appointment_not_found": KindNotFound,
	"time_conflict":         KindConflict,
	"invalid_state":         KindConflict,
	"rate_limited":          KindRateLimited,
}

var messages = map[string]string{
	"unauthenticated":       "Authentication required.",
	"invalid_token":         "Invalid or expired session.",
	"forbidden":             "You are not allowed to perform this action.",
	"invalid_csrf_token":    "Missing or invalid anti-forgery token.",
	"invalid_request":       "Invalid request.",
	"validation_failed":     "Validation failed.",
	"invalid_status":        "Unknown appointment status.",
	"invalid_image":         "Unsupported or corrupt image.",
	"no_deposit":            "This appointment has no deposit to pay.",
	"profile_not_found":     "Profile not found.",
	"client_not_found":      "Client profile not found.",
	"artist_not_found":      "Artist not found or inactive.",
	"artist_inactive":       "Artist not found or inactive.",
	"studio_not_found":      "Studio not found.",
	"appointment_not_found": "Appointment not found.",
	"time_conflict":         "Time slot not available.",
	"invalid_state":         "Appointment cannot change to the requested status.",
	"rate_limited":          "Too many requests.",
}

func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidationFailed
	}
	if k, ok := codeKinds[CodeOf(err)]; ok {
		return k
	}
	return KindInternal
}

func (k Kind) Status() int {
	switch k {
	case KindAuthenticationRequired:
		return http.StatusUnauthorized
	case KindAuthorizationDenied:
		return http.StatusForbidden
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func StatusOf(err error) int {
	return KindOf(err).Status()
}

// MessageFor returns the client-facing message for a business code.
func MessageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Internal server error."
}
