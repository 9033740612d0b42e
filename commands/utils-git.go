package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"pkgreg/types"

	"github.com/google/uuid"
)

// gitCommand executes a Git command in the specified directory, returning the output and any error.
// The subcommand is the Git command (e.g., "clone", "checkout"), followed by its arguments.
func gitCommand(dir, subcommand string, args ...string) (string, error) {
	if subcommand == "" {
		return "", fmt.Errorf("no Git subcommand provided for directory %s", dir)
	}
	cmdArgs := append([]string{"git", subcommand}, args...)
	return runCommand(dir, cmdArgs...)
}

// getGitAuthor retrieves the author info from git config or uses a default
func getGitAuthor() types.Author {
	name, errName := gitCommand("", "config", "user.name")
	if errName != nil {
		name = ""
	}
	email, errEmail := gitCommand("", "config", "user.email")
	if errEmail != nil {
		email = ""
	}
	if name == "" || email == "" {
		fmt.Fprintln(os.Stderr, "Warning: Could not retrieve git user.name or user.email, defaulting to 'unknown <unknown@author.com>'")
		return types.Author{Name: "unknown", Email: "unknown@author.com"}
	}
	return types.Author{Name: name, Email: email}
}

// repoCloneURL maps a repository identifier (owner/name) to its clone URL
func repoCloneURL(repo string) string {
	return "https://github.com/" + repo + ".git"
}

// cloneRepoToTempDir clones the repository into a uniquely named temporary
// directory and returns its path. The caller removes it with cleanupTempClone.
func cloneRepoToTempDir(repo string) (string, error) {
	tmpClonePath := filepath.Join(os.TempDir(), "pkgreg-clone-"+uuid.New().String())
	if _, err := gitCommand("", "clone", repoCloneURL(repo), tmpClonePath); err != nil {
		return "", fmt.Errorf("failed to clone repository '%s': %v", repo, err)
	}
	return tmpClonePath, nil
}

// checkoutTag checks out the given tag in the cloned repository
func checkoutTag(clonePath, tag string) error {
	if _, err := gitCommand(clonePath, "checkout", tag); err != nil {
		return fmt.Errorf("failed to checkout tag '%s' in %s: %v", tag, clonePath, err)
	}
	return nil
}

// cleanupTempClone removes the temporary clone directory
func cleanupTempClone(tmpClonePath string) error {
	if err := os.RemoveAll(tmpClonePath); err != nil {
		return fmt.Errorf("failed to clean up temporary clone directory %s: %v", tmpClonePath, err)
	}
	return nil
}
