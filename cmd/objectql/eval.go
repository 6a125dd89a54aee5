package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ritamzico/objectql"
)

var (
	evalDataPath string
	evalQuery    string
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a single query against a JSON data file",
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().StringVar(&evalDataPath, "data", "", "path to a JSON data file (required)")
	evalCmd.Flags().StringVar(&evalQuery, "query", "", "ObjectQL query to evaluate (required)")
	_ = evalCmd.MarkFlagRequired("data")
	_ = evalCmd.MarkFlagRequired("query")
}

func runEval(cmd *cobra.Command, args []string) error {
	log := newLogger()

	raw, err := os.ReadFile(evalDataPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", evalDataPath, err)
	}
	log.Debug("loaded data file", "path", evalDataPath, "bytes", len(raw))

	result, err := objectql.EvaluateJSON(string(raw), evalQuery)
	if err != nil {
		return err
	}

	fmt.Println(result)
	return nil
}
