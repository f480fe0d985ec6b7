package main

import (
	"github.com/spf13/cobra"
)

// version is stamped at build time:
//
//	go build -ldflags "-X main.version=v0.2.0" ./cmd/crucible
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the crucible version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("crucible %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
