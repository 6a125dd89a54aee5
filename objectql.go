// Package objectql is an embeddable boolean query language for evaluating
// predicates over tree-shaped data (spec.md §1). It is a thin façade over
// internal/dsl (parsing), internal/eval (evaluation), internal/path
// (identifier resolution) and internal/registry (built-in and
// host-registered functions) — the same "small root package wrapping
// internal/..." shape the teacher uses in pgraph.go.
package objectql

import (
	"strings"

	"github.com/ritamzico/objectql/internal/dsl"
	"github.com/ritamzico/objectql/internal/eval"
	"github.com/ritamzico/objectql/internal/objqlerr"
	"github.com/ritamzico/objectql/internal/path"
	"github.com/ritamzico/objectql/internal/registry"
	"github.com/ritamzico/objectql/internal/value"
)

type (
	// Value is ObjectQL's uniform runtime value (spec.md §3).
	Value = value.Value

	// Func is a host-registered callable (spec.md §4.4).
	Func = registry.Func

	// InstanceTagResolver resolves a host-supplied `@name` instance tag to
	// an integer index (spec.md §9).
	InstanceTagResolver = path.InstanceTagResolver
)

// Re-exported error kinds (spec.md §7), so callers can errors.As against
// them without reaching into internal packages.
type (
	ArgumentError   = objqlerr.ArgumentError
	ResultTypeError = objqlerr.ResultTypeError
)

// Evaluator holds a root data tree and a function registry across
// multiple queries, per spec.md §6.2's evaluator.register/evaluate_with
// API. It is not safe for concurrent use (spec.md §5).
type Evaluator struct {
	ev *eval.Evaluator
}

// NewEvaluator constructs an Evaluator over an already-built Value tree,
// seeded with the 16 required built-ins (spec.md §4.4).
func NewEvaluator(root Value) *Evaluator {
	return &Evaluator{ev: eval.New(root, registry.New(), nil)}
}

// NewEvaluatorJSON constructs an Evaluator by decoding a JSON document
// into a Value tree (spec.md §6.2's `root: Value|JsonString` union,
// split into two constructors since Go has no such union type).
func NewEvaluatorJSON(jsonDoc string) (*Evaluator, error) {
	v, err := value.FromJSON([]byte(jsonDoc))
	if err != nil {
		return nil, objqlerr.Argument("objectql: root is not valid JSON: %v", err)
	}
	return NewEvaluator(v), nil
}

// Register adds or replaces a callable in e's function registry
// (spec.md §4.4 invariant 5: re-registration replaces the old callable).
func (e *Evaluator) Register(name string, fn Func) error {
	return e.ev.Registry.Register(name, fn)
}

// WithInstanceTags configures the host's `@name` index resolver
// (spec.md §9). Passing nil (the default) means any instance tag in a
// query is a resolution error.
func (e *Evaluator) WithInstanceTags(tags InstanceTagResolver) *Evaluator {
	e.ev.Tags = tags
	return e
}

// Functions returns the names currently registered, sorted.
func (e *Evaluator) Functions() []string {
	return e.ev.Registry.Names()
}

// Evaluate constructs a default Evaluator over root and evaluates query
// against it (spec.md §6.2's evaluate()).
func Evaluate(root Value, query string) (bool, error) {
	return EvaluateWith(NewEvaluator(root), query)
}

// EvaluateJSON is Evaluate for a JSON-encoded root document.
func EvaluateJSON(jsonDoc, query string) (bool, error) {
	e, err := NewEvaluatorJSON(jsonDoc)
	if err != nil {
		return false, err
	}
	return EvaluateWith(e, query)
}

// EvaluateWith evaluates query against an existing Evaluator, preserving
// any custom registrations (spec.md §6.2's evaluate_with()).
//
// An empty or blank query is an ArgumentError raised before parsing, per
// spec.md §6.2 and §7. Any later failure — a ParseError, a resolution
// error, an UnknownFunction/FunctionExecutionFailed from a call, or a
// TypeMismatch — is wrapped in an EvaluationError carrying the query text
// (spec.md §7's "Error evaluating query '<query>': <cause-msg>"), with
// the original error reachable via errors.Unwrap/errors.As.
func EvaluateWith(e *Evaluator, query string) (bool, error) {
	if strings.TrimSpace(query) == "" {
		return false, objqlerr.Argument("objectql: query must not be empty")
	}

	q, err := dsl.Parse(query)
	if err != nil {
		return false, objqlerr.Evaluation(query, err)
	}

	result, err := e.ev.Eval(q)
	if err != nil {
		return false, objqlerr.Evaluation(query, err)
	}
	return result, nil
}
