// Command editpilot is the CLI for the edit-block engine and incremental
// markdown renderer.
package main

import (
	"fmt"
	"os"

	"github.com/chainlaunch/editcore/cmd/editpilot/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
