package usecases

import "errors"

// Errors reported by the streamer use cases.
var (
	// ErrNotFound is returned when the search provider has no result for a query.
	ErrNotFound = errors.New("no results found")

	// ErrResolutionFailed is returned when the search provider itself fails.
	// It wraps the provider error.
	ErrResolutionFailed = errors.New("track resolution failed")

	// ErrSessionClosed is returned when a session was disconnected while an
	// operation on it was suspended.
	ErrSessionClosed = errors.New("session was disconnected")

	// ErrUserNotInVoice is returned when the user is not in a voice channel.
	ErrUserNotInVoice = errors.New("user is not in a voice channel")
)
