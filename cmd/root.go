// Package cmd implements the CLI commands for wpimport using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wpimport",
	Short: "wpimport — import WordPress posts into static site sources",
	Long: `wpimport reads posts from the WordPress REST API and writes one
static-site source file per post: YAML front matter followed by the post body
rewritten into the site's markup.

Usage:
  wpimport import --url=<posts endpoint> [flags]
  wpimport check [dir]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
