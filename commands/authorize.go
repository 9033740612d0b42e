package commands

import (
	"fmt"
	"os"

	"pkgreg/types"

	"github.com/spf13/cobra"
)

// DefaultCommitMode is the safe fallback when an allowlist entry omits
// or misstates its mode.
const DefaultCommitMode = "pr"

// Authorize checks the repository against the allowlist and prints the
// commit mode the publishing pipeline should use.
func Authorize(cmd *cobra.Command, args []string) error {
	repo := args[0]
	allowlistFile, _ := cmd.Flags().GetString("allowlist")

	allowlist, err := LoadAllowlist(allowlistFile)
	if err != nil {
		return fmt.Errorf("authorization failed: %v", err)
	}

	mode, warnings, err := LookupCommitMode(allowlist, repo)
	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}
	if err != nil {
		return fmt.Errorf("authorization failed: repository '%s' is not on the allowlist", repo)
	}

	fmt.Println(mode)
	return nil
}

// LookupCommitMode resolves the commit mode for a repository. An entry
// without a mode gets the default; an unrecognized mode falls back to the
// default with a warning; an absent repository is an authorization failure.
func LookupCommitMode(allowlist types.Allowlist, repo string) (string, []string, error) {
	for _, entry := range allowlist.Repositories {
		if entry.Repo != repo {
			continue
		}
		switch entry.Mode {
		case "":
			return DefaultCommitMode, nil, nil
		case "direct", "pr":
			return entry.Mode, nil, nil
		default:
			warning := fmt.Sprintf("invalid mode '%s' for '%s': falling back to safe default '%s'", entry.Mode, repo, DefaultCommitMode)
			return DefaultCommitMode, []string{warning}, nil
		}
	}
	return "", nil, ErrNotAllowlisted
}
