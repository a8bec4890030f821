// Package services contains the application services of the bizcards
// client: the sign-in flow and authorization gate, card browsing with
// optimistic likes, and profile management.
//
// Services share one session.Store and one identity.Cache, both owned by
// the application root and passed in at construction.
package services
