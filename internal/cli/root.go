// Package cli implements the pgdoc command line interface.
//
// The CLI is the external collaborator around the loader core: it owns
// configuration loading and the database connection lifecycle, then hands a
// live session to the loader. The core itself never opens or closes
// connections.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pgdoc",
	Short: "Load documents and metadata out of PostgreSQL",
	Long: `pgdoc loads text documents and their metadata out of PostgreSQL tables or
files, normalizes HTML-derived metadata (title, meta tags) into a flat
key/value map, and stamps each document with a content-addressable object id
for downstream chunking and embedding stages.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid source descriptor or parameters
  11 - Database connection failed
  13 - Catalog lookup or document query failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return false
	}
	return verbose
}
