package constants

const (
	// SessionCookieName names the cookie that carries the login session
	SessionCookieName = "task_session"

	// Session keys
	SessionKeyUsername = "username"
	SessionKeyRole     = "role"

	// Context keys set by middleware
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
	ContextKeyTask     = "task"

	// SessionMaxAge is the session lifetime in seconds (7 days)
	SessionMaxAge = 86400 * 7
)
