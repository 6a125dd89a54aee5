package eval

import (
	"github.com/ritamzico/objectql/internal/ast"
	"github.com/ritamzico/objectql/internal/path"
	"github.com/ritamzico/objectql/internal/value"
)

// evalCall evaluates a function call's arguments in order, then invokes
// the registered callable (spec.md §4.5: "Calls"). registry.Registry.Call
// already turns an unknown name or a raised/panicking callable into the
// UnknownFunction / FunctionExecutionFailed errors spec.md §7 names.
func (e *Evaluator) evalCall(c ast.Call) (value.Value, error) {
	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := e.evalArg(a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	return e.Registry.Call(c.Name, args)
}

// evalArg resolves an identifier argument to its raw value, unlike
// evalTextExpr/evalMathExpr's coercion rules — a call argument that is
// just an identifier passes through whatever kind the path holds
// (internal/dsl's argGrammar doc comment; spec.md's `arg := identifier |
// textExpr | mathExpr` puts identifier first for the same reason).
func (e *Evaluator) evalArg(a ast.Arg) (value.Value, error) {
	switch n := a.(type) {
	case ast.IdentArg:
		return path.Resolve(e.Root, n.Path, e.Tags)
	case ast.TextArg:
		return e.evalTextExpr(n.Expr)
	case ast.MathArg:
		return e.evalMathExpr(n.Expr)
	default:
		return value.Value{}, typeMismatch("unrecognized call argument node")
	}
}
