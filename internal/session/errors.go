package session

import "errors"

// Errors surfaced by session operations. Remote question-load failures
// are never among these: they are recovered internally by falling back
// to the built-in question set.
var (
	// ErrAuthRequired is returned by Submit when no authenticated
	// identity (or an identity without an email) is provided.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotActive is returned by mutating operations on a session
	// that has ended or was never started.
	ErrNotActive = errors.New("session is not active")

	// ErrIndexOutOfRange is returned by NavigateTo for a cursor
	// target outside [0, len(questions)-1].
	ErrIndexOutOfRange = errors.New("question index out of range")

	// ErrOptionOutOfRange is returned by SelectAnswer for an option
	// index outside the question's option list.
	ErrOptionOutOfRange = errors.New("option index out of range")

	// ErrMalformedFallback is returned by Start when the built-in
	// fallback set contains a malformed question. This indicates a
	// programming defect rather than a runtime condition and is the
	// only fatal outcome of question selection.
	ErrMalformedFallback = errors.New("built-in question set is malformed")
)
