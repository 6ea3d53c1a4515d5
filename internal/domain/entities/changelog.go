package entities

import (
	"fmt"
	"slices"
	"strings"
)

const (
	unreleasedHeading = "## [Unreleased]"
	changedHeading    = "### Changed"
)

// ChangelogEntry describes a component update as a changelog bullet.
func ChangelogEntry(component *Component, from, to string) string {
	return fmt.Sprintf(
		"- changed the `%s` %s from `%s` to `%s`",
		component.Name, component.Kind().noun(), from, to,
	)
}

// changelogSection holds the line ranges of the Unreleased section.
type changelogSection struct {
	unreleased int // line of "## [Unreleased]"
	end        int // first line after the section
	changed    int // line of "### Changed" inside the section, -1 if absent
}

// InsertChangelogEntries adds bullets to the "### Changed" subsection of
// "## [Unreleased]", creating the subsection when needed. It reports false
// and returns content unchanged when there is no Unreleased section.
func InsertChangelogEntries(content string, entries ...string) (string, bool) {
	if len(entries) == 0 {
		return content, false
	}

	lines := strings.Split(content, "\n")
	section, ok := locateUnreleased(lines)
	if !ok {
		return content, false
	}

	if section.changed < 0 {
		block := append([]string{"", changedHeading, ""}, entries...)
		lines = slices.Insert(lines, section.unreleased+1, block...)
		return strings.Join(lines, "\n"), true
	}

	at := section.changed
	for i := section.changed + 1; i < section.end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "- ") {
			break
		}
		at = i
	}
	lines = slices.Insert(lines, at+1, entries...)
	return strings.Join(lines, "\n"), true
}

func locateUnreleased(lines []string) (changelogSection, bool) {
	section := changelogSection{unreleased: -1, end: len(lines), changed: -1}
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case section.unreleased < 0:
			if trimmed == unreleasedHeading {
				section.unreleased = i
			}
		case strings.HasPrefix(trimmed, "## ["):
			section.end = i
			return section, true
		case trimmed == changedHeading && section.changed < 0:
			section.changed = i
		}
	}
	return section, section.unreleased >= 0
}
