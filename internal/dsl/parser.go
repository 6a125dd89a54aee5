// Package dsl parses ObjectQL query text into the domain AST defined by
// internal/ast, mirroring the teacher's two-stage participle pipeline
// (lexer.go + grammar.go produce a grammar-shaped tree, convert.go folds
// it into the package the rest of the system actually consumes).
package dsl

import "github.com/ritamzico/objectql/internal/ast"

// Parse compiles query text into an *ast.Query, or returns a ParseError
// describing the first syntax error participle encountered (spec.md §4.2).
func Parse(src string) (*ast.Query, error) {
	g, err := parseGrammar(src)
	if err != nil {
		return nil, enrichSyntaxError(err)
	}
	return convertQuery(g)
}
