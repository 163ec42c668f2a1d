package extract

import "errors"

var (
	// ErrDocumentUnreadable indicates the input document could not be
	// opened or read at all. Fatal for the whole extraction.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrNoResults indicates extraction completed but found no lab
	// results. Recoverable; callers surface it as a user-actionable
	// condition rather than a failure.
	ErrNoResults = errors.New("no lab results found")
)
