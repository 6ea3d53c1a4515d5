package entities

import (
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	logger "github.com/sirupsen/logrus"
)

const rewrittenFileMode = 0o644

// FileUpdater substitutes version markers in files below a filesystem root.
type FileUpdater struct {
	fs billy.Filesystem
}

// NewFileUpdater creates an updater rooted at fs.
func NewFileUpdater(fs billy.Filesystem) *FileUpdater {
	return &FileUpdater{fs: fs}
}

// plannedRewrite is a validated substitution waiting to be written.
type plannedRewrite struct {
	path    string
	content string
}

// CountMarker returns how many times marker occurs in the file.
func (u *FileUpdater) CountMarker(path, marker string) (int, error) {
	content, err := util.ReadFile(u.fs, path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return len(markerIndexes(string(content), marker)), nil
}

// RewriteAll validates every file first and only writes once all of them
// are safe to change, so a failure leaves every file untouched. In dry-run
// mode only the occurrence check is performed.
func (u *FileUpdater) RewriteAll(paths []string, current, next string, dryRun bool) (int, error) {
	planned := make([]plannedRewrite, 0, len(paths))
	for _, path := range paths {
		plan, err := u.plan(path, current, next, dryRun)
		if err != nil {
			return 0, err
		}
		planned = append(planned, plan)
	}

	if dryRun {
		return len(planned), nil
	}

	for _, plan := range planned {
		if err := util.WriteFile(u.fs, plan.path, []byte(plan.content), rewrittenFileMode); err != nil {
			return 0, fmt.Errorf("failed to write %q: %w", plan.path, err)
		}
		logger.Debugf("[update] rewrote %s: %q -> %q", plan.path, current, next)
	}
	return len(planned), nil
}

func (u *FileUpdater) plan(path, current, next string, dryRun bool) (plannedRewrite, error) {
	raw, err := util.ReadFile(u.fs, path)
	if err != nil {
		return plannedRewrite{}, fmt.Errorf("failed to read %q: %w", path, err)
	}
	original := string(raw)

	indexes := markerIndexes(original, current)
	if count := len(indexes); count > 1 {
		return plannedRewrite{}, fmt.Errorf(
			"%w: %q occurs %d times in %s", ErrAmbiguousMarker, current, count, path,
		)
	}
	if dryRun {
		return plannedRewrite{path: path, content: original}, nil
	}

	updated := replaceAt(original, indexes, len(current), next)
	if updated == original {
		return plannedRewrite{}, fmt.Errorf(
			"%w: %q -> %q left %s unchanged", ErrNoOpReplacement, current, next, path,
		)
	}
	return plannedRewrite{path: path, content: updated}, nil
}

// isVersionChar reports whether c can continue a version string.
func isVersionChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	default:
		return c == '.' || c == '+' || c == '-'
	}
}

// markerIndexes returns the offsets of marker in content. When the marker
// ends in a version character, occurrences that continue with another
// version character are part of a longer version and are not counted, so
// "requests==2.3" does not match inside "requests==2.3.1".
func markerIndexes(content, marker string) []int {
	if marker == "" {
		return nil
	}
	bounded := isVersionChar(marker[len(marker)-1])

	var indexes []int
	for offset := 0; offset <= len(content)-len(marker); {
		found := strings.Index(content[offset:], marker)
		if found < 0 {
			break
		}
		start := offset + found
		end := start + len(marker)
		if !bounded || end == len(content) || !isVersionChar(content[end]) {
			indexes = append(indexes, start)
			offset = end
			continue
		}
		offset = start + 1
	}
	return indexes
}

func replaceAt(content string, indexes []int, length int, replacement string) string {
	if len(indexes) == 0 {
		return content
	}
	var sb strings.Builder
	last := 0
	for _, index := range indexes {
		sb.WriteString(content[last:index])
		sb.WriteString(replacement)
		last = index + length
	}
	sb.WriteString(content[last:])
	return sb.String()
}
