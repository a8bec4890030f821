// Package models defines the client-side shapes of the directory API:
// user identities, business cards, and the payloads the client submits.
//
// JSON tags follow the remote API's field names (_id, isBusiness,
// user_id, ...). Values held by the client are replicas; the API owns the
// authoritative records.
package models
