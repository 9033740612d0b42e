package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// updateConfig holds configuration for merging a release into the registry
type updateConfig struct {
	metadataFile string
	registryFile string
	repo         string
	tag          string
}

// Update merges a validated release into the registry: load the current
// registry, apply the upsert, and persist the result.
func Update(cmd *cobra.Command, args []string) error {
	config, err := parseUpdateArgs(cmd, args)
	if err != nil {
		return err
	}

	meta, err := LoadMetadata(config.metadataFile)
	if err != nil {
		return err
	}
	registry, err := LoadRegistry(config.registryFile)
	if err != nil {
		return err
	}

	updated, warnings := UpsertPackage(registry, meta, config.repo, config.tag)
	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	if err := SaveRegistry(updated, config.registryFile); err != nil {
		return err
	}

	fmt.Printf("Successfully updated registry for %s@%s\n", PackageIDFromRepo(config.repo), config.tag)
	return nil
}

// parseUpdateArgs parses arguments and flags to initialize the update config
func parseUpdateArgs(cmd *cobra.Command, args []string) (*updateConfig, error) {
	config := &updateConfig{metadataFile: args[0]}
	config.repo, _ = cmd.Flags().GetString("repo")
	config.tag, _ = cmd.Flags().GetString("tag")
	config.registryFile, _ = cmd.Flags().GetString("registry")

	if config.repo == "" || !strings.Contains(config.repo, "/") {
		return nil, fmt.Errorf("repository '%s' must be of the form 'owner/name'", config.repo)
	}
	if config.tag == "" {
		return nil, fmt.Errorf("version tag must not be empty")
	}
	if config.registryFile == "" {
		return nil, fmt.Errorf("registry file must not be empty")
	}
	return config, nil
}
