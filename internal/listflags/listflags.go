// Package listflags defines the flags shared by commands that print todos.
package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all/-a flag to commands that hide some todos by
// default.
func AddAllFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().BoolP("all", "a", false, "Include hidden todos")
		return
	}

	cmd.Flags().BoolVarP(target, "all", "a", false, "Include hidden todos")
}

// AddJSONFlag adds a shared --json flag to commands with machine-readable
// output.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("json", false, "Output as JSON")
		return
	}

	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}
