package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crucible",
	Short: "Crucible - Python execution and lint service",
	Long: `Crucible runs untrusted Python submissions in supervised subprocesses
under a wall-clock limit, lints them with flake8, and serves the combined
report over HTTP.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
