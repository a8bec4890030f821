// Package client is the data access layer of bizcards: a thin, typed
// wrapper over the business-card REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (the Client interface): login,
//     registration, own-profile read and update, card listing, detail,
//     creation and like toggling, plus a liveness probe.
//  2. A concrete HTTP implementation (HTTPClient) whose RoundTripper injects
//     the raw token header, a request id and a user agent, and paces
//     requests with a token-bucket limiter.
//
// # Credentials
//
// Calls that need a credential read it from a TokenSource at call time. If
// the source is empty the request is never sent and ErrNoCredential is
// returned, so callers can redirect to login instead of provoking a 401.
//
// # Error Handling
//
// Responses are mapped to sentinel errors that callers match with
// errors.Is: ErrUnauthorized, ErrNotFound, ErrRejected, ErrUnavailable.
// *APIError carries the status code and server message.
//
// No call is retried automatically.
package client
