// Package state provides per-user conversation session storage for bots:
// a typed in-memory store with idle expiry and a keyed mutex to serialize
// work for a single user.
package state
