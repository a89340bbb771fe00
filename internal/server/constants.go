package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "⚠️ SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "⚠️ SECURITY ALERT: Blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderCacheControl   = "Cache-Control"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderRequestID      = "X-Request-ID"
)

// Request limits
const (
	MaxRequestBytes          = 1 << 20
	DefaultRateLimit         = 1000
	DefaultRateWindow        = 5 * time.Minute
	FailedAuthAlertThreshold = 5
	// RateAlertEvery spaces out rate alerts for a throttled client
	RateAlertEvery = 100
)

// Security header values
const (
	HeaderValueNoSniff      = "nosniff"
	HeaderValueDeny         = "DENY"
	HeaderValueNoStore      = "no-store"
	HeaderValueReferrerNone = "no-referrer"
)

// SecurityHeaderValues is set on every response. The API never serves
// documents, so framing and caching are refused outright.
var SecurityHeaderValues = map[string]string{
	HeaderContentType:    HeaderValueNoSniff,
	HeaderFrameOptions:   HeaderValueDeny,
	HeaderCacheControl:   HeaderValueNoStore,
	HeaderReferrerPolicy: HeaderValueReferrerNone,
}

// Public path prefixes that bypass authentication
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
}

// QuietPaths are polled too often to log
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// MaxRequestIDLength bounds a caller-supplied request id
const MaxRequestIDLength = 64

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
