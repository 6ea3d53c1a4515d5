package entities

import "time"

// CachedVersions is a version listing stored together with its fetch time.
type CachedVersions struct {
	Tags      []string  `json:"tags"`
	FetchedAt time.Time `json:"fetched_at"`
}

// IsStale reports whether the entry is older than window at now.
func (c CachedVersions) IsStale(now time.Time, window time.Duration) bool {
	return now.Sub(c.FetchedAt) >= window
}
