package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput        = "INVALID_INPUT"
	CodeInvalidPayload      = "INVALID_PAYLOAD"
	CodeUnsupportedProvider = "UNSUPPORTED_PROVIDER"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"

	// Server / downstream errors (5xx)
	CodeInternalError = "INTERNAL_ERROR"
	CodeNoCredential  = "NO_CREDENTIAL"
	CodeTokenRefresh  = "TOKEN_REFRESH_FAILED"
	CodeTransport     = "TRANSPORT_ERROR"
)
