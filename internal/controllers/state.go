package controllers

// The controllers in this package model each screen intent as a small state
// machine. The current state is readable at any time and every transition is
// also pushed to a conflating updates channel, so a renderer can either poll
// or subscribe. Close releases any store subscriptions a controller holds;
// screens must call it on teardown.

// DetailStateKind enumerates the states of the detail screen intent.
type DetailStateKind int

const (
	DetailLoading DetailStateKind = iota
	DetailFound
	DetailNotFound
	// DetailDeleted is terminal: the screen should navigate away.
	DetailDeleted
)

// FormStateKind enumerates the states of the add and edit screen intents.
type FormStateKind int

const (
	FormEditable FormStateKind = iota
	FormSaving
	FormSuccess
	// FormError is not terminal; a retry re-enters FormSaving.
	FormError
)

// emit pushes state into a conflating channel of capacity 1: an unconsumed
// older state is replaced by the newer one.
func emit[T any](ch chan T, state T) {
	select {
	case ch <- state:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}
