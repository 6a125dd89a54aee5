package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritamzico/objectql"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the built-in functions available to queries",
	RunE:  runFunctions,
}

func runFunctions(cmd *cobra.Command, args []string) error {
	ev := objectql.NewEvaluator(objectql.Value{})
	for _, name := range ev.Functions() {
		fmt.Println(name)
	}
	return nil
}
