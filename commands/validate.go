package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// validateConfig holds configuration for validating a package
type validateConfig struct {
	rootDir      string
	tag          string
	expectedName string
	repo         string
}

// Validate checks a package's metadata document against the schema and
// content rules. It validates either a local package directory or, with
// --repo, a fresh clone of the repository.
func Validate(cmd *cobra.Command, args []string) error {
	config, err := parseValidateArgs(cmd, args)
	if err != nil {
		return err
	}

	if config.repo != "" {
		clonePath, err := cloneRepoToTempDir(config.repo)
		if err != nil {
			return err
		}
		defer func() {
			if err := cleanupTempClone(clonePath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}()
		if config.tag != "" {
			if err := checkoutTag(clonePath, config.tag); err != nil {
				return err
			}
		}
		config.rootDir = clonePath
	}

	fmt.Printf("Validating package at: %s\n", config.rootDir)

	metadataFile := filepath.Join(config.rootDir, MetadataFileName)
	data, err := os.ReadFile(metadataFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("metadata file not found at %s", metadataFile)
		}
		return fmt.Errorf("failed to read metadata at %s: %v", metadataFile, err)
	}

	meta, err := ValidateMetadata(data, config.rootDir, config.tag, config.expectedName)
	if err != nil {
		return fmt.Errorf("validation failed: %v", err)
	}

	fmt.Printf("Package metadata for '%s' is valid\n", meta.Name)
	return nil
}

// parseValidateArgs parses arguments and flags to initialize the validate config
func parseValidateArgs(cmd *cobra.Command, args []string) (*validateConfig, error) {
	config := &validateConfig{rootDir: "."}
	if len(args) == 1 {
		config.rootDir = args[0]
	}
	config.tag, _ = cmd.Flags().GetString("tag")
	config.expectedName, _ = cmd.Flags().GetString("name")
	config.repo, _ = cmd.Flags().GetString("repo")

	if config.repo != "" {
		if len(args) == 1 {
			return nil, fmt.Errorf("cannot combine a local path with --repo")
		}
		if !strings.Contains(config.repo, "/") {
			return nil, fmt.Errorf("repository '%s' must be of the form 'owner/name'", config.repo)
		}
	}

	absRoot, err := filepath.Abs(config.rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve package root %s: %v", config.rootDir, err)
	}
	config.rootDir = absRoot
	return config, nil
}
