package common

import "time"

const (
	// SessionCookieName is the cookie that carries the session token.
	SessionCookieName = "authToken"

	// AuthorizationHeaderName carries "Bearer <token>" on HTTP requests and
	// gRPC metadata (lowercased by grpc).
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "

	// SessionTTL is the fixed lifetime of an issued session token.
	SessionTTL = time.Hour

	// PasscodeLength is the number of digits in a passcode.
	PasscodeLength = 6
)
