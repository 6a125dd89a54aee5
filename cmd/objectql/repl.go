package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ritamzico/objectql"
)

const replHelp = `objectql interactive REPL

Commands:
  load <file>   Load a JSON data file as the query root
  functions     List registered functions
  help          Show this help message
  exit / quit   Exit the REPL

Any other input is evaluated as an ObjectQL query against the loaded root.
`

var replDataPath string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive query REPL",
	RunE:  runRepl,
}

func init() {
	replCmd.Flags().StringVar(&replDataPath, "data", "", "path to a JSON data file to load at startup")
}

func runRepl(cmd *cobra.Command, args []string) error {
	log := newLogger()

	var ev *objectql.Evaluator
	if replDataPath != "" {
		loaded, err := loadEvaluator(replDataPath)
		if err != nil {
			return err
		}
		ev = loaded
		log.Debug("loaded data file", "path", replDataPath)
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("objectql — embeddable boolean query language")
	fmt.Println(`Type "help" for available commands.`)
	fmt.Println()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "exit" || line == "quit":
			return nil

		case line == "help":
			fmt.Print(replHelp)

		case line == "functions":
			if ev == nil {
				fmt.Fprintln(os.Stderr, "no data loaded — use 'load <file>' first")
				continue
			}
			for _, name := range ev.Functions() {
				fmt.Println(" ", name)
			}

		case strings.HasPrefix(line, "load "):
			path := strings.TrimSpace(strings.TrimPrefix(line, "load "))
			loaded, err := loadEvaluator(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error loading %q: %v\n", path, err)
				continue
			}
			ev = loaded
			fmt.Printf("loaded %q\n", path)

		default:
			if ev == nil {
				fmt.Fprintln(os.Stderr, "no data loaded — use 'load <file>' first")
				continue
			}
			result, err := objectql.EvaluateWith(ev, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "query error: %v\n", err)
				continue
			}
			fmt.Println(result)
		}
	}
}

func loadEvaluator(path string) (*objectql.Evaluator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return objectql.NewEvaluatorJSON(string(raw))
}
