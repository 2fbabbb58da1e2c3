package errors

// ErrorCode is a machine-readable error code returned to clients.
type ErrorCode string

// Authentication errors
const (
	// ErrCodeInvalidCredentials indicates a failed sign-in. Unknown identifier
	// and wrong password both map here so callers cannot enumerate accounts.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeInvalidToken indicates a tampered or structurally malformed token.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeTokenExpired indicates a structurally valid token past its expiry.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeRefreshRejected indicates a refresh attempt with an unusable
	// refresh token (expired, tampered, or issued to a different subject).
	ErrCodeRefreshRejected ErrorCode = "REFRESH_REJECTED"
	// ErrCodeUnauthorized indicates a protected path reached without credentials.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates an authenticated principal with the wrong role.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the request body failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Infrastructure errors
const (
	// ErrCodeUserStoreUnavailable indicates the user store could not be reached.
	ErrCodeUserStoreUnavailable ErrorCode = "USER_STORE_UNAVAILABLE"
	// ErrCodeRateLimited indicates the client exceeded the request rate.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeUserStoreUnavailable: true,
	ErrCodeRateLimited:          true,
}

// IsRetryableCode returns true if the error code indicates a retryable failure.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
