package entities

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
	"golang.org/x/mod/semver"
)

// legacyPattern splits a non PEP 440 tag such as "3.11-slim" into its
// dotted numeric release and the remaining suffix.
var legacyPattern = regexp.MustCompile(`^(\d+(?:\.\d+)*)(.*)$`) //nolint:gochecknoglobals // compiled once

// Version is an ordered version value parsed from an upstream tag.
// Tags that are not PEP 440 but start with a dotted numeric release are
// kept as legacy versions, which order below every PEP 440 version.
// The zero value is lower than every parsed version.
type Version struct {
	tag        string
	normalized string
	parsed     pep440.Version
	legacy     bool
	release    []int
	suffix     string
	valid      bool
}

// ParseVersion parses a tag with PEP 440 ordering, falling back to a legacy
// release plus suffix ordering. A leading "v" is accepted.
func ParseVersion(tag string) (Version, error) {
	trimmed := strings.TrimSpace(tag)
	trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "v"), "V")
	parsed, err := pep440.Parse(trimmed)
	if err == nil {
		return Version{tag: tag, normalized: parsed.String(), parsed: parsed, valid: true}, nil
	}

	legacy, ok := parseLegacy(trimmed)
	if !ok {
		return Version{}, fmt.Errorf("invalid version %q: %w", tag, err)
	}
	legacy.tag = tag
	return legacy, nil
}

func parseLegacy(trimmed string) (Version, bool) {
	match := legacyPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return Version{}, false
	}
	parts := strings.Split(match[1], ".")
	release := make([]int, 0, len(parts))
	for _, part := range parts {
		number, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, false
		}
		release = append(release, number)
	}
	return Version{
		normalized: trimmed,
		legacy:     true,
		release:    release,
		suffix:     match[2],
		valid:      true,
	}, true
}

// Compare returns -1, 0 or 1.
func (v Version) Compare(other Version) int {
	switch {
	case !v.valid && !other.valid:
		return 0
	case !v.valid:
		return -1
	case !other.valid:
		return 1
	case v.legacy && !other.legacy:
		return -1
	case !v.legacy && other.legacy:
		return 1
	case v.legacy:
		return compareLegacy(v, other)
	default:
		return v.parsed.Compare(other.parsed)
	}
}

// compareLegacy orders by release segments, missing segments counting as
// zero, then by suffix.
func compareLegacy(a, b Version) int {
	length := max(len(a.release), len(b.release))
	for i := range length {
		if result := cmp.Compare(segment(a.release, i), segment(b.release, i)); result != 0 {
			return result
		}
	}
	return cmp.Compare(a.suffix, b.suffix)
}

func segment(release []int, i int) int {
	if i < len(release) {
		return release[i]
	}
	return 0
}

// GreaterThan reports whether v orders strictly after other.
func (v Version) GreaterThan(other Version) bool { return v.Compare(other) > 0 }

// Tag returns the tag the version was parsed from.
func (v Version) Tag() string { return v.tag }

// IsZero reports whether v was never parsed.
func (v Version) IsZero() bool { return !v.valid }

// IsLegacy reports whether the tag fell back to release plus suffix ordering.
func (v Version) IsLegacy() bool { return v.legacy }

// String returns the normalized form of the version.
func (v Version) String() string {
	return v.normalized
}

// UpdateType classifies the distance between two versions.
type UpdateType string

const (
	UpdateTypeMajor   UpdateType = "major"
	UpdateTypeMinor   UpdateType = "minor"
	UpdateTypePatch   UpdateType = "patch"
	UpdateTypeUnknown UpdateType = "unknown"
)

// ClassifyUpdate compares two tags with semver rules. Tags that are not
// semver-like (after adding a "v" prefix) are classified as unknown.
func ClassifyUpdate(currentTag, nextTag string) UpdateType {
	current := toSemver(currentTag)
	next := toSemver(nextTag)
	if !semver.IsValid(current) || !semver.IsValid(next) {
		return UpdateTypeUnknown
	}

	if semver.Major(current) != semver.Major(next) {
		return UpdateTypeMajor
	}
	if semver.MajorMinor(current) != semver.MajorMinor(next) {
		return UpdateTypeMinor
	}
	return UpdateTypePatch
}

// toSemver ensures the tag has the "v" prefix the semver package expects.
func toSemver(tag string) string {
	tag = strings.TrimSpace(tag)
	if strings.HasPrefix(tag, "v") {
		return tag
	}
	return "v" + tag
}
