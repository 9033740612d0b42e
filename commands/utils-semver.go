package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ParseVersionTag parses a version tag with an optional leading 'v' into
// a semantic version. Build metadata is retained but ignored for ordering.
func ParseVersionTag(tag string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(strings.TrimPrefix(tag, "v"))
	if err != nil {
		return nil, fmt.Errorf("version tag '%s' is not a valid semantic version (e.g., v1.2.3): %v", tag, err)
	}
	return v, nil
}

// SortVersionsDescending returns the tags sorted highest-first by semantic
// version precedence. Fails if any tag does not parse; the input slice is
// left untouched either way.
func SortVersionsDescending(tags []string) ([]string, error) {
	type taggedVersion struct {
		tag    string
		parsed *semver.Version
	}
	versions := make([]taggedVersion, len(tags))
	for i, tag := range tags {
		v, err := ParseVersionTag(tag)
		if err != nil {
			return nil, err
		}
		versions[i] = taggedVersion{tag: tag, parsed: v}
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].parsed.GreaterThan(versions[j].parsed)
	})
	sorted := make([]string, len(versions))
	for i, v := range versions {
		sorted[i] = v.tag
	}
	return sorted, nil
}

// MaxVersionTag returns the higher of two version tags
func MaxVersionTag(tag1, tag2 string) (string, error) {
	v1, err := ParseVersionTag(tag1)
	if err != nil {
		return "", err
	}
	v2, err := ParseVersionTag(tag2)
	if err != nil {
		return "", err
	}
	if v2.GreaterThan(v1) {
		return tag2, nil
	}
	return tag1, nil
}
