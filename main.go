// pkgreg --version
// pkgreg init <package name>
// pkgreg validate [path] [--tag v<version>] [--name <package name>]
// pkgreg validate --repo <owner/repo> [--tag v<version>] [--name <package name>]
// pkgreg update <metadata-file> --repo <owner/repo> --tag v<version> [--registry <file>]
// pkgreg authorize <owner/repo> [--allowlist <file>]

package main

import (
	"fmt"
	"os"

	"pkgreg/commands"

	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:          "pkgreg",
		Short:        "Maintain a registry of versioned packages",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Welcome to pkgreg! Use a subcommand like 'validate', 'update', or 'authorize'.")
		},
	}

	var versionFlag bool
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Print the version number")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if versionFlag {
			commands.PrintVersion()
		}
	}

	var initCmd = &cobra.Command{
		Use:   "init [package-name]",
		Short: "Scaffold a package.yaml for a new package",
		Args:  cobra.ExactArgs(1),
		RunE:  commands.Init,
	}

	var validateCmd = &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a package's metadata document",
		Args:  cobra.MaximumNArgs(1),
		RunE:  commands.Validate,
	}
	validateCmd.Flags().String("tag", "", "Version tag to validate (used by CI, optional locally)")
	validateCmd.Flags().String("name", "", "Expected package name (used by CI, optional locally)")
	validateCmd.Flags().String("repo", "", "Validate a clone of <owner/repo> instead of a local path")

	var updateCmd = &cobra.Command{
		Use:   "update [metadata-file]",
		Short: "Merge a new release into the registry",
		Args:  cobra.ExactArgs(1),
		RunE:  commands.Update,
	}
	updateCmd.Flags().String("repo", "", "Repository name (owner/repo)")
	updateCmd.Flags().String("tag", "", "Git tag of the new release")
	updateCmd.Flags().String("registry", "registry.yaml", "Path to the registry file")

	var authorizeCmd = &cobra.Command{
		Use:   "authorize [owner/repo]",
		Short: "Look up the commit mode for an allowlisted repository",
		Args:  cobra.ExactArgs(1),
		RunE:  commands.Authorize,
	}
	authorizeCmd.Flags().String("allowlist", "allowed-repositories.yaml", "Path to the allowlist file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(authorizeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
