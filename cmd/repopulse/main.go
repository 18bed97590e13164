// Command repopulse analyzes repository health through an analysis service.
// Usage: repopulse analyze owner/repo | repopulse serve | repopulse version
package main

import (
	"fmt"
	"os"

	"github.com/raysh454/repopulse/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCodeOf(err))
	}
}
