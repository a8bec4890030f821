// Package common contains shared constants and sentinel errors used across
// bizcards components.
package common

// AuthTokenHeaderName is the HTTP header that carries the raw API token on
// outbound requests.
const AuthTokenHeaderName = "x-auth-token"

// RequestIDHeaderName tags every outbound request for log correlation.
const RequestIDHeaderName = "X-Request-Id"

// TokenMetadataKey is the single persisted key holding the raw token string.
const TokenMetadataKey = "token"
