package commands

import (
	"fmt"
	"os/exec"
	"strings"
)

// runCommand executes a command in the specified directory, returning the output and any error.
// The command is provided as a slice of arguments (e.g., []string{"git", "checkout", "v1.2.3"}).
func runCommand(dir string, args ...string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("no command arguments provided")
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	outputStr := strings.TrimSpace(string(output))
	if err != nil {
		return outputStr, fmt.Errorf("failed to run '%s' in %s: %v\nOutput: %s", strings.Join(args, " "), dir, err, outputStr)
	}
	return outputStr, nil
}

// contains checks if a slice contains a specific string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
