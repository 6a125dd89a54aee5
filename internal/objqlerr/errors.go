// Package objqlerr defines the façade-level error types the root package
// returns (spec.md §7): ArgumentError and ResultTypeError are raised
// directly since they are caller mistakes rather than evaluation
// failures; EvaluationError wraps any downstream parse/resolution/
// registry/eval failure, following holomush's oops.Code(...).With(...)
// .Wrap(err) convention (cmd/holomush/gateway.go, seed.go) so the cause
// chain survives through errors.Is/errors.Unwrap.
package objqlerr

import (
	"fmt"

	"github.com/samber/oops"
)

// ArgumentError reports a caller mistake raised by the façade before
// parsing ever begins: an empty/blank query, or a root value the facade
// could not turn into a value.Value (spec.md §7).
type ArgumentError struct {
	Message string
}

func (e ArgumentError) Error() string { return e.Message }

func Argument(format string, args ...any) error {
	return ArgumentError{Message: fmt.Sprintf(format, args...)}
}

// ResultTypeError reports a top-level query result that is not Bool
// (spec.md §7). Every ast.Query root is a Predication, so evaluation
// always yields a bool (see internal/eval's Eval doc comment); no code
// path in this module currently raises it.
type ResultTypeError struct {
	Message string
}

func (e ResultTypeError) Error() string { return e.Message }

func ResultType(format string, args ...any) error {
	return ResultTypeError{Message: fmt.Sprintf(format, args...)}
}

// Evaluation wraps cause in an EvaluationError carrying the offending
// query text, per spec.md §7's required message shape:
// "Error evaluating query '<query>': <cause-msg>".
func Evaluation(query string, cause error) error {
	return oops.
		Code("QUERY_EVALUATION_FAILED").
		With("query", query).
		Wrap(fmt.Errorf("Error evaluating query '%s': %w", query, cause))
}
