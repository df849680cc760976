package tracktikerrors

import (
	"net/http"

	"github.com/vjorihoxha/tiktak-vjori/internal/shared/apperror"
)

var (
	ErrNoCredential = apperror.New(
		apperror.CodeNoCredential,
		"TrackTik: no access token available. Set TRACKTIK_REFRESH_TOKEN (and optionally TRACKTIK_ACCESS_TOKEN)",
		http.StatusBadGateway,
	)
	ErrTokenRefresh = apperror.New(
		apperror.CodeTokenRefresh,
		"Failed to refresh TrackTik access token",
		http.StatusBadGateway,
	)
	ErrUnauthorized = apperror.New(
		apperror.CodeUnauthorized,
		"TrackTik rejected the request as unauthorized",
		http.StatusBadGateway,
	)
	ErrTransport = apperror.New(
		apperror.CodeTransport,
		"TrackTik request failed",
		http.StatusBadGateway,
	)
)
