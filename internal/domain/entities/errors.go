package entities

import "errors"

var (
	// ErrConfiguration is returned for invalid component declarations
	// (unknown kind, bad filter, unparsable version) before any I/O happens.
	ErrConfiguration = errors.New("configuration error")

	// ErrRemoteFetch is returned when a version source answers with a
	// non-success status or cannot be reached.
	ErrRemoteFetch = errors.New("remote fetch failed")

	// ErrNoCandidateVersion is returned when filtering and exclusions leave
	// no upstream version to choose from.
	ErrNoCandidateVersion = errors.New("no valid upstream version found")

	// ErrAmbiguousMarker is returned when the current marker occurs more than
	// once in a tracked file.
	ErrAmbiguousMarker = errors.New("ambiguous version marker")

	// ErrNoOpReplacement is returned when substituting the marker leaves the
	// file content unchanged.
	ErrNoOpReplacement = errors.New("no replacement performed")

	// ErrExternalProcess is returned when the test or commit command fails.
	ErrExternalProcess = errors.New("external process failed")
)
