// Package exchange implements the PaySafeCard to Litecoin conversation: a
// per-user draft that collects address, card code, amount and payment proof,
// turns a completed draft into a pending order and applies the admin's
// accept or decline decision.
//
// The engine is transport agnostic. It consumes events tagged with the
// sender's id and returns actions for the adapter to deliver.
package exchange
