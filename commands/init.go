package commands

import (
	"fmt"
	"os"

	"pkgreg/types"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Init scaffolds a package.yaml in the current directory, filling the
// author from git config so the file validates without edits.
func Init(cmd *cobra.Command, args []string) error {
	packageName := args[0]
	if packageName == "" {
		return fmt.Errorf("package name must not be empty")
	}

	if _, err := os.Stat(MetadataFileName); !os.IsNotExist(err) {
		return fmt.Errorf("%s already exists in this directory", MetadataFileName)
	}

	meta := types.Metadata{
		Name:        packageName,
		Description: fmt.Sprintf("The %s package", packageName),
		Author:      getGitAuthor(),
		Provides:    types.Provides{Code: "main.py"},
	}

	data, err := yaml.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %v", MetadataFileName, err)
	}
	if err := os.WriteFile(MetadataFileName, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", MetadataFileName, err)
	}

	fmt.Printf("Initialized package '%s' in %s\n", packageName, MetadataFileName)
	return nil
}
