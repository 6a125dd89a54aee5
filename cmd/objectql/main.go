// Command objectql is a development harness for the ObjectQL query
// language: evaluate a single query against a JSON document, browse the
// built-in function library, or explore a document interactively.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "objectql",
	Short: "Evaluate ObjectQL boolean queries against tree-shaped JSON data",
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(evalCmd, replCmd, functionsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
