// Package main implements the mdtodo CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "mdtodo",
	Short:        "Markdown todo lists, one file per user, year and project",
	SilenceUsage: true,
}

var rootOpts keyOptions

func init() {
	addKeyFlags(rootCmd.PersistentFlags(), &rootOpts)
}
