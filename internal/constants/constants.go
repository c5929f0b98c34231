package constants

// Context keys used to pass the authenticated user and guarded resources
// between middleware and handlers.
const (
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "user"
	ContextKeyProject = "project"
	ContextKeyTask    = "task"
)

// AuthScheme is the expected prefix of the Authorization header,
// as in "Authorization: Token <value>".
const AuthScheme = "Token"

// TokenKeyBytes is the number of random bytes in a token key (hex encoded,
// so the key itself is twice as long).
const TokenKeyBytes = 20

const MinPasswordLength = 8

// Pagination limits for list endpoints.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
