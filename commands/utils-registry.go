package commands

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"pkgreg/types"

	"gopkg.in/yaml.v3"
)

// LoadRegistry reads and parses the registry document. A missing file is
// a fatal storage error; an empty file is an empty registry.
func LoadRegistry(registryFile string) (types.Registry, error) {
	data, err := os.ReadFile(registryFile)
	if err != nil {
		return types.Registry{}, fmt.Errorf("failed to read registry at %s: %v", registryFile, err)
	}
	var registry types.Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return types.Registry{}, fmt.Errorf("failed to parse registry at %s: %v", registryFile, err)
	}
	if registry.Packages == nil {
		registry.Packages = make(map[string]types.PackageEntry)
	}
	return registry, nil
}

// SaveRegistry writes the registry document, fully replacing the prior file
func SaveRegistry(registry types.Registry, registryFile string) error {
	data, err := MarshalRegistry(registry)
	if err != nil {
		return err
	}
	if err := os.WriteFile(registryFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry to %s: %v", registryFile, err)
	}
	return nil
}

// MarshalRegistry serializes the registry with package keys sorted
// ascending, entry fields in their fixed order, and a blank line between
// package entries for readability.
func MarshalRegistry(registry types.Registry) ([]byte, error) {
	packagesNode := &yaml.Node{Kind: yaml.MappingNode}
	ids := make([]string, 0, len(registry.Packages))
	for id := range registry.Packages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		entry := registry.Packages[id]
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: id}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(entry); err != nil {
			return nil, fmt.Errorf("failed to marshal registry entry for '%s': %v", id, err)
		}
		packagesNode.Content = append(packagesNode.Content, keyNode, valueNode)
	}
	doc := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "packages"},
			packagesNode,
		},
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal registry: %v", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal registry: %v", err)
	}
	return insertEntrySpacing(buf.Bytes()), nil
}

// insertEntrySpacing adds a blank line before every package entry except
// the first. Presentation only: the output parses back identically.
func insertEntrySpacing(data []byte) []byte {
	lines := strings.Split(string(data), "\n")
	out := make([]string, 0, len(lines))
	first := true
	for _, line := range lines {
		if isPackageKeyLine(line) {
			if !first {
				out = append(out, "")
			}
			first = false
		}
		out = append(out, line)
	}
	return []byte(strings.Join(out, "\n"))
}

// isPackageKeyLine matches keys nested exactly one level under 'packages:'
func isPackageKeyLine(line string) bool {
	return len(line) > 2 && line[0] == ' ' && line[1] == ' ' &&
		line[2] != ' ' && line[2] != '-' && strings.HasSuffix(line, ":")
}

// PackageIDFromRepo derives the registry key from a repository identifier
// (the final path segment of 'owner/name').
func PackageIDFromRepo(repo string) string {
	return path.Base(repo)
}

// UpsertPackage merges one validated release into the registry and returns
// the updated registry value. The input registry is not modified and no
// I/O happens here. Re-applying the same release is a no-op.
//
// A version set containing a tag that does not parse as a semantic version
// does not abort the update: the list keeps its current order, the prior
// latest_stable is preserved, and a warning is returned for the caller to
// surface.
func UpsertPackage(registry types.Registry, meta types.Metadata, repo, tag string) (types.Registry, []string) {
	updated := types.Registry{Packages: make(map[string]types.PackageEntry, len(registry.Packages)+1)}
	for id, entry := range registry.Packages {
		updated.Packages[id] = entry
	}

	packageID := PackageIDFromRepo(repo)
	entry, exists := updated.Packages[packageID]
	if !exists {
		// The only place the repository URL is ever assigned.
		entry = types.PackageEntry{Repository: "https://github.com/" + repo}
	}

	entry.Name = meta.Name
	entry.Description = meta.Description
	entry.Author = meta.Author

	versions := make([]string, len(entry.Versions))
	copy(versions, entry.Versions)
	if !contains(versions, tag) {
		versions = append(versions, tag)
	}
	entry.Versions = versions

	var warnings []string
	sorted, err := SortVersionsDescending(versions)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("could not sort versions for '%s' due to an invalid semantic version: %v", packageID, err))
	} else {
		entry.Versions = sorted
		entry.LatestStable = sorted[0]
	}

	updated.Packages[packageID] = entry
	return updated, warnings
}
