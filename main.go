// main is the entry point for the ckscope CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ckscope/ckscope/cmd"
	"github.com/ckscope/ckscope/internal/resultstore"
)

func main() {
	// Close the results store before exiting; os.Exit skips defers.
	err := cmd.Execute()
	resultstore.CloseStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
