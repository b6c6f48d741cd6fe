package internal

const (
	COOKIE_SESSION_NAME  = "wayfarer_session"
	COOKIE_REDIRECT_NAME = "wayfarer_redirect"
)
