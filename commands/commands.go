package commands

import (
	"fmt"
	"os"
)

const Version = "0.1.0"

// PrintVersion prints the version of the pkgreg tool and exits
func PrintVersion() {
	fmt.Printf("pkgreg version %s\n", Version)
	os.Exit(0)
}
