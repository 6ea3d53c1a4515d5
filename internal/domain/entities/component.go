package entities

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	logger "github.com/sirupsen/logrus"
)

const (
	// DefaultFilter matches every upstream tag.
	DefaultFilter = "/.*/"
	// DefaultDockerRepository is the Docker Hub namespace of official images.
	DefaultDockerRepository = "library"
)

// latestTags are sentinel tags that always count as up to date.
var latestTags = []string{"latest"} //nolint:gochecknoglobals // read-only sentinel list

// VersionKey identifies one remote version listing.
type VersionKey struct {
	Kind       ComponentKind
	Name       string
	Repository string
}

func (k VersionKey) String() string {
	if k.Repository == "" {
		return fmt.Sprintf("%s/%s", k.Kind, k.Name)
	}
	return fmt.Sprintf("%s/%s/%s", k.Kind, k.Repository, k.Name)
}

// VersionFetcher lists the raw upstream tags for a key.
type VersionFetcher interface {
	FetchVersions(ctx context.Context, key VersionKey) ([]string, error)
}

// Component is a single tracked artifact with its current and candidate version.
type Component struct {
	kind ComponentKind

	Name       string
	Repository string // docker-image only

	CurrentVersionTag string
	CurrentVersion    Version
	NextVersionTag    string
	NextVersion       Version

	Prefix          string
	VersionPattern  string
	ExcludeVersions []string
	Files           []string

	// VersionTags holds the tags returned by the last fetch.
	VersionTags []string

	filter   string
	filterRe *regexp.Regexp
}

// Kind returns the ecosystem of the component.
func (c *Component) Kind() ComponentKind { return c.kind }

// Filter returns the version filter as declared.
func (c *Component) Filter() string { return c.filter }

// SetFilter compiles and stores a version filter. Both a bare expression and
// the "/expr/flags" form are accepted; a tag is kept when the expression
// matches anywhere in it, so use ^ and $ to match the whole tag.
func (c *Component) SetFilter(filter string) error {
	if filter == "" {
		filter = DefaultFilter
	}
	re, err := compileFilter(filter)
	if err != nil {
		return fmt.Errorf("%w: component %q has an invalid filter %q: %w", ErrConfiguration, c.Name, filter, err)
	}
	c.filter = filter
	c.filterRe = re
	return nil
}

// Key returns the cache and lookup key of the component.
func (c *Component) Key() VersionKey {
	key := VersionKey{Kind: c.kind, Name: c.Name}
	if c.kind == KindDockerImage {
		key.Repository = c.Repository
	}
	return key
}

// IsLatest reports whether the current tag is a sentinel like "latest".
func (c *Component) IsLatest() bool {
	return slices.Contains(latestTags, c.CurrentVersionTag)
}

// NewerVersionExists reports whether the last check found a higher version.
func (c *Component) NewerVersionExists() bool {
	if c.IsLatest() {
		return false
	}
	return c.NextVersion.GreaterThan(c.CurrentVersion)
}

// Check fetches the upstream tags, picks the highest one allowed by the
// filter and exclusions, and stores it as the next version.
func (c *Component) Check(ctx context.Context, fetcher VersionFetcher) (bool, error) {
	if c.IsLatest() {
		return false, nil
	}

	tags, err := fetcher.FetchVersions(ctx, c.Key())
	if err != nil {
		return false, err
	}
	c.VersionTags = tags

	best, found := c.highestCandidate(tags)
	if !found {
		return false, fmt.Errorf(
			"%w for %s (filter %s, excluded %v, %d upstream tags)",
			ErrNoCandidateVersion, c.Name, c.filter, c.ExcludeVersions, len(tags),
		)
	}

	if best.GreaterThan(c.CurrentVersion) {
		c.NextVersion = best
		c.NextVersionTag = c.renderTag(best)
	} else {
		c.NextVersion = c.CurrentVersion
		c.NextVersionTag = c.CurrentVersionTag
	}

	return c.NewerVersionExists(), nil
}

// highestCandidate returns the maximum parsable tag that passes the filter
// and is not excluded. Equal versions keep the first tag seen.
func (c *Component) highestCandidate(tags []string) (Version, bool) {
	var best Version
	found := false
	for _, tag := range tags {
		if !c.filterRe.MatchString(tag) || slices.Contains(c.ExcludeVersions, tag) {
			continue
		}
		parsed, err := ParseVersion(tag)
		if err != nil {
			logger.Debugf("[check] %s: skipping tag %q: %v", c.Name, tag, err)
			continue
		}
		if !found || parsed.GreaterThan(best) {
			best = parsed
			found = true
		}
	}
	return best, found
}

func (c *Component) renderTag(v Version) string {
	if c.Prefix == "" {
		return v.Tag()
	}
	return c.Prefix + v.String()
}

// RenderedMarker applies the version pattern to a tag, producing the literal
// text expected in tracked files.
func (c *Component) RenderedMarker(tag string) string {
	return strings.NewReplacer("{version}", tag, "{component}", c.Name).Replace(c.VersionPattern)
}

// RewriteFiles replaces the current marker with the next marker in every
// tracked file below fs. It returns the number of files processed.
func (c *Component) RewriteFiles(fs billy.Filesystem, dryRun bool) (int, error) {
	updater := NewFileUpdater(fs)
	return updater.RewriteAll(
		c.Files,
		c.RenderedMarker(c.CurrentVersionTag),
		c.RenderedMarker(c.NextVersionTag),
		dryRun,
	)
}

// Advance makes the next version the new baseline.
func (c *Component) Advance() {
	c.CurrentVersion = c.NextVersion
	c.CurrentVersionTag = c.NextVersionTag
}

// compileFilter turns "/expr/flags" or "expr" into an unanchored expression.
func compileFilter(filter string) (*regexp.Regexp, error) {
	expr := filter
	flags := ""
	if len(filter) >= 2 && strings.HasPrefix(filter, "/") {
		if end := strings.LastIndex(filter, "/"); end > 0 {
			expr = filter[1:end]
			flags = filter[end+1:]
		}
	}

	var sb strings.Builder
	if strings.Contains(flags, "i") {
		sb.WriteString("(?i)")
	}
	sb.WriteString(expr)
	return regexp.Compile(sb.String())
}
