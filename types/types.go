package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata describes a single package release (package.yaml)
type Metadata struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Author      Author   `yaml:"author"`
	Provides    Provides `yaml:"provides"`
}

// Author identifies the package publisher
type Author struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// UnmarshalYAML accepts both the canonical mapping form and the legacy
// bare-string form ("Jane Doe <jane@example.com>") of the author field.
func (a *Author) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return fmt.Errorf("failed to decode author: %v", err)
		}
		*a = NormalizeAuthorString(s)
		return nil
	}
	type plainAuthor Author
	var plain plainAuthor
	if err := value.Decode(&plain); err != nil {
		return fmt.Errorf("failed to decode author: %v", err)
	}
	*a = Author(plain)
	return nil
}

// NormalizeAuthorString converts a legacy bare-string author into the
// canonical structured form. "Name <email>" splits on the angle brackets;
// anything else becomes the name with an empty email.
func NormalizeAuthorString(s string) Author {
	open := strings.LastIndex(s, "<")
	end := strings.LastIndex(s, ">")
	if open >= 0 && end > open {
		return Author{
			Name:  strings.TrimSpace(s[:open]),
			Email: strings.TrimSpace(s[open+1 : end]),
		}
	}
	return Author{Name: strings.TrimSpace(s)}
}

// Provides describes what a release contains: an entry point, assets, or both
type Provides struct {
	Code   string  `yaml:"code,omitempty"`
	Assets []Asset `yaml:"assets,omitempty"`
}

// Asset is a file shipped with the package, relative to the package root
type Asset struct {
	Path string `yaml:"path"`
}

// Registry is the persisted catalog of all published packages (registry.yaml)
type Registry struct {
	Packages map[string]PackageEntry `yaml:"packages"`
}

// PackageEntry is one package's record within the registry. Field order
// here is the serialization order.
type PackageEntry struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Author       Author   `yaml:"author"`
	Repository   string   `yaml:"repository"`
	LatestStable string   `yaml:"latest_stable"`
	Versions     []string `yaml:"versions"`
}

// Allowlist names the repositories authorized to publish (allowed-repositories.yaml)
type Allowlist struct {
	Repositories []AllowedRepo `yaml:"repositories"`
}

// AllowedRepo is one allowlist entry. Mode is empty when unspecified.
type AllowedRepo struct {
	Repo string `yaml:"repo"`
	Mode string `yaml:"mode,omitempty"`
}
