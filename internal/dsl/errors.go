package dsl

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
)

// ParseError reports a syntax error in query text (spec.md §4.2/§7). Its
// Error() message follows the spec's required wording exactly so callers
// that pattern-match on it (and the CLI, which prints it verbatim) see a
// stable format.
type ParseError struct {
	Line, Col int
	Detail    string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("Failed to parse query: Syntax error at line %d:%d - %s", e.Line, e.Col, e.Detail)
}

// enrichSyntaxError pulls the line/column participle already tracked
// during lexing out of its error type, the same enrichment the teacher's
// ParseLine performed (internal/dsl/parser.go's enrichSyntaxError) before
// handing a bare error back to the caller.
func enrichSyntaxError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return ParseError{Line: pos.Line, Col: pos.Column, Detail: perr.Message()}
	}
	return ParseError{Line: 1, Col: 1, Detail: err.Error()}
}
