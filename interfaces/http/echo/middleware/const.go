package middleware

const (
	SessionHeader     = "Session"
	RequestSessionKey = "requestSession"
	RequestIDHeader   = "X-Request-ID"
)
