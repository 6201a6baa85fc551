// Package cmd — check command.
// Reads generated post files back and verifies the front-matter keys the
// site generator depends on.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/wpimport/core/document"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Verify the front matter of imported post files",
	Long: `Check parses every file in dir (default: src/blog) and verifies that it has
a front matter block with title, date (YYYY-MM-DD), permalink (ending in /)
and layout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "src/blog"
		if len(args) == 1 {
			dir = args[0]
		}
		return checkDir(dir, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkDir validates every visible regular file in dir and prints one line
// per file.
func checkDir(dir string, out io.Writer) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	var errCount int
	for _, path := range paths {
		if _, err := document.CheckFile(path); err != nil {
			fmt.Fprintf(out, "✗ %s: %s\n", path, strings.ReplaceAll(err.Error(), "\n", "; "))
			errCount++
			continue
		}
		fmt.Fprintf(out, "✓ %s\n", path)
	}

	if errCount > 0 {
		return fmt.Errorf("%d/%d files failed the front matter check", errCount, len(paths))
	}
	return nil
}
