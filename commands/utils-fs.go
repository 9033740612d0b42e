package commands

import (
	"fmt"
	"os"

	"pkgreg/types"

	"gopkg.in/yaml.v3"
)

// MetadataFileName is the per-package release descriptor
const MetadataFileName = "package.yaml"

// LoadMetadata reads and parses an already-validated metadata document
func LoadMetadata(metadataFile string) (types.Metadata, error) {
	data, err := os.ReadFile(metadataFile)
	if err != nil {
		return types.Metadata{}, fmt.Errorf("failed to read metadata at %s: %v", metadataFile, err)
	}
	var meta types.Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return types.Metadata{}, fmt.Errorf("failed to parse metadata at %s: %v", metadataFile, err)
	}
	return meta, nil
}

// LoadAllowlist reads and parses the publishing allowlist
func LoadAllowlist(allowlistFile string) (types.Allowlist, error) {
	data, err := os.ReadFile(allowlistFile)
	if err != nil {
		return types.Allowlist{}, fmt.Errorf("failed to read allowlist at %s: %v", allowlistFile, err)
	}
	var allowlist types.Allowlist
	if err := yaml.Unmarshal(data, &allowlist); err != nil {
		return types.Allowlist{}, fmt.Errorf("failed to parse allowlist at %s: %v", allowlistFile, err)
	}
	return allowlist, nil
}
