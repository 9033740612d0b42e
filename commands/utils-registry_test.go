package commands

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"pkgreg/types"

	"gopkg.in/yaml.v3"
)

func demoMetadata() types.Metadata {
	return types.Metadata{
		Name:        "demo",
		Description: "x",
		Author:      types.Author{Name: "A", Email: "a@b.com"},
		Provides:    types.Provides{Code: "main.py"},
	}
}

func emptyRegistry() types.Registry {
	return types.Registry{Packages: make(map[string]types.PackageEntry)}
}

func TestUpsertPackageFirstPublish(t *testing.T) {
	registry, warnings := UpsertPackage(emptyRegistry(), demoMetadata(), "acme/demo", "v1.0.0")
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
	entry, exists := registry.Packages["demo"]
	if !exists {
		t.Fatal("Expected package 'demo' in registry")
	}
	expected := types.PackageEntry{
		Name:         "demo",
		Description:  "x",
		Author:       types.Author{Name: "A", Email: "a@b.com"},
		Repository:   "https://github.com/acme/demo",
		LatestStable: "v1.0.0",
		Versions:     []string{"v1.0.0"},
	}
	if !reflect.DeepEqual(entry, expected) {
		t.Errorf("Expected entry %+v, got %+v", expected, entry)
	}
}

func TestUpsertPackageVersionUnion(t *testing.T) {
	registry, _ := UpsertPackage(emptyRegistry(), demoMetadata(), "acme/demo", "v1.0.0")
	registry, _ = UpsertPackage(registry, demoMetadata(), "acme/demo", "v0.9.0")

	entry := registry.Packages["demo"]
	if !reflect.DeepEqual(entry.Versions, []string{"v1.0.0", "v0.9.0"}) {
		t.Errorf("Expected versions [v1.0.0 v0.9.0], got %v", entry.Versions)
	}
	if entry.LatestStable != "v1.0.0" {
		t.Errorf("Expected latest_stable v1.0.0, got %q", entry.LatestStable)
	}
}

func TestUpsertPackageNewerTagMovesLatest(t *testing.T) {
	registry, _ := UpsertPackage(emptyRegistry(), demoMetadata(), "acme/demo", "v1.0.0")
	registry, _ = UpsertPackage(registry, demoMetadata(), "acme/demo", "v2.0.0")

	entry := registry.Packages["demo"]
	if entry.LatestStable != "v2.0.0" {
		t.Errorf("Expected latest_stable v2.0.0, got %q", entry.LatestStable)
	}
	if !reflect.DeepEqual(entry.Versions, []string{"v2.0.0", "v1.0.0"}) {
		t.Errorf("Expected versions [v2.0.0 v1.0.0], got %v", entry.Versions)
	}
}

func TestUpsertPackageIdempotent(t *testing.T) {
	once, _ := UpsertPackage(emptyRegistry(), demoMetadata(), "acme/demo", "v1.0.0")
	twice, _ := UpsertPackage(once, demoMetadata(), "acme/demo", "v1.0.0")
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Expected idempotent upsert, got %+v then %+v", once, twice)
	}
}

func TestUpsertPackageRepositoryInvariant(t *testing.T) {
	registry, _ := UpsertPackage(emptyRegistry(), demoMetadata(), "acme/demo", "v1.0.0")
	// A later publisher cannot move the repository, whatever identifier wins the race.
	registry.Packages["demo"] = withRepository(registry.Packages["demo"], "https://github.com/original/demo")
	registry, _ = UpsertPackage(registry, demoMetadata(), "acme/demo", "v1.1.0")
	if repo := registry.Packages["demo"].Repository; repo != "https://github.com/original/demo" {
		t.Errorf("Expected repository to stay stable, got %q", repo)
	}
}

func withRepository(entry types.PackageEntry, repository string) types.PackageEntry {
	entry.Repository = repository
	return entry
}

func TestUpsertPackageStaticFieldRefresh(t *testing.T) {
	registry, _ := UpsertPackage(emptyRegistry(), demoMetadata(), "acme/demo", "v1.0.0")
	updated := demoMetadata()
	updated.Description = "a better description"
	updated.Author = types.Author{Name: "B", Email: "b@c.com"}
	registry, _ = UpsertPackage(registry, updated, "acme/demo", "v1.1.0")

	entry := registry.Packages["demo"]
	if entry.Description != "a better description" || entry.Author.Name != "B" {
		t.Errorf("Expected static fields refreshed, got %+v", entry)
	}
}

func TestUpsertPackageUnparseableExistingTag(t *testing.T) {
	registry := emptyRegistry()
	registry.Packages["demo"] = types.PackageEntry{
		Name:         "demo",
		Repository:   "https://github.com/acme/demo",
		LatestStable: "v1.0.0",
		Versions:     []string{"v1.0.0", "nightly"},
	}

	updated, warnings := UpsertPackage(registry, demoMetadata(), "acme/demo", "v1.1.0")
	if len(warnings) != 1 {
		t.Fatalf("Expected one warning, got %v", warnings)
	}
	entry := updated.Packages["demo"]
	if entry.LatestStable != "v1.0.0" {
		t.Errorf("Expected latest_stable preserved at v1.0.0, got %q", entry.LatestStable)
	}
	if !reflect.DeepEqual(entry.Versions, []string{"v1.0.0", "nightly", "v1.1.0"}) {
		t.Errorf("Expected new tag appended without reordering, got %v", entry.Versions)
	}
}

func TestUpsertPackageDoesNotModifyInput(t *testing.T) {
	registry, _ := UpsertPackage(emptyRegistry(), demoMetadata(), "acme/demo", "v1.0.0")
	before := registry.Packages["demo"]
	_, _ = UpsertPackage(registry, demoMetadata(), "acme/demo", "v2.0.0")
	if !reflect.DeepEqual(registry.Packages["demo"], before) {
		t.Errorf("Input registry was modified: %+v", registry.Packages["demo"])
	}
}

func TestPackageIDFromRepo(t *testing.T) {
	if id := PackageIDFromRepo("acme/demo"); id != "demo" {
		t.Errorf("Expected 'demo', got %q", id)
	}
}

func twoPackageRegistry() types.Registry {
	return types.Registry{Packages: map[string]types.PackageEntry{
		"zeta": {
			Name:         "zeta",
			Description:  "Last package",
			Author:       types.Author{Name: "Z", Email: "z@b.com"},
			Repository:   "https://github.com/acme/zeta",
			LatestStable: "v2.0.0",
			Versions:     []string{"v2.0.0", "v1.0.0"},
		},
		"alpha": {
			Name:         "alpha",
			Description:  "First package",
			Author:       types.Author{Name: "A", Email: "a@b.com"},
			Repository:   "https://github.com/acme/alpha",
			LatestStable: "v0.2.0",
			Versions:     []string{"v0.2.0", "v0.1.0"},
		},
	}}
}

func TestMarshalRegistryOrdering(t *testing.T) {
	data, err := MarshalRegistry(twoPackageRegistry())
	if err != nil {
		t.Fatalf("Failed to marshal registry: %v", err)
	}
	text := string(data)

	alphaAt := strings.Index(text, "  alpha:")
	zetaAt := strings.Index(text, "  zeta:")
	if alphaAt < 0 || zetaAt < 0 || alphaAt > zetaAt {
		t.Errorf("Expected package keys sorted ascending, got:\n%s", text)
	}

	// Fixed field order within an entry.
	entry := text[alphaAt:zetaAt]
	fields := []string{"name:", "description:", "author:", "repository:", "latest_stable:", "versions:"}
	last := -1
	for _, field := range fields {
		at := strings.Index(entry, field)
		if at < 0 {
			t.Fatalf("Expected field %q in entry:\n%s", field, entry)
		}
		if at < last {
			t.Errorf("Expected field %q after previous field, got:\n%s", field, entry)
		}
		last = at
	}

	if !strings.Contains(text, "\n\n  zeta:") {
		t.Errorf("Expected a blank line before the second package entry, got:\n%s", text)
	}
}

func TestMarshalRegistryRoundTrip(t *testing.T) {
	registry := twoPackageRegistry()
	data, err := MarshalRegistry(registry)
	if err != nil {
		t.Fatalf("Failed to marshal registry: %v", err)
	}
	var parsed types.Registry
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to parse marshalled registry: %v", err)
	}
	if !reflect.DeepEqual(parsed, registry) {
		t.Errorf("Round trip changed the registry:\nbefore: %+v\nafter:  %+v", registry, parsed)
	}
}

func TestLoadRegistry(t *testing.T) {
	tempDir := t.TempDir()
	registryFile := filepath.Join(tempDir, "registry.yaml")

	if _, err := LoadRegistry(registryFile); err == nil {
		t.Error("Expected an error for a missing registry file, got none")
	}

	if err := os.WriteFile(registryFile, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to write registry file: %v", err)
	}
	registry, err := LoadRegistry(registryFile)
	if err != nil {
		t.Fatalf("Expected an empty file to load, got %v", err)
	}
	if registry.Packages == nil || len(registry.Packages) != 0 {
		t.Errorf("Expected an initialized empty package map, got %+v", registry.Packages)
	}
}

func TestSaveAndLoadRegistry(t *testing.T) {
	tempDir := t.TempDir()
	registryFile := filepath.Join(tempDir, "registry.yaml")
	registry := twoPackageRegistry()

	if err := SaveRegistry(registry, registryFile); err != nil {
		t.Fatalf("Failed to save registry: %v", err)
	}
	loaded, err := LoadRegistry(registryFile)
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}
	if !reflect.DeepEqual(loaded, registry) {
		t.Errorf("Persisted registry differs:\nbefore: %+v\nafter:  %+v", registry, loaded)
	}
}
