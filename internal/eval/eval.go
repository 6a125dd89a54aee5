// Package eval walks the AST produced by internal/dsl against a root
// value.Value, per spec.md §4.5's per-node contracts. It is a pure
// recursive descent: no state machine, no retries, the first
// non-recoverable error aborts evaluation (§4.5's closing line).
package eval

import (
	"strings"

	"github.com/ritamzico/objectql/internal/ast"
	"github.com/ritamzico/objectql/internal/path"
	"github.com/ritamzico/objectql/internal/registry"
	"github.com/ritamzico/objectql/internal/value"
)

// Evaluator holds the (root, registry) pair a query is evaluated against,
// plus the per-instance LIKE-pattern regex cache spec.md §5 permits
// ("Regex patterns compiled for text match may be cached across calls
// within a single evaluator but must not leak between evaluators"). The
// zero value is not usable; construct with New.
//
// An Evaluator is not safe for concurrent use: the registry is a shared
// mutable map and the regex cache is written lazily on first match of a
// given pattern (spec.md §5).
type Evaluator struct {
	Root     value.Value
	Registry *registry.Registry
	Tags     path.InstanceTagResolver

	likeCache map[string]*likePattern
}

// New returns an Evaluator over root using reg for function calls. tags
// may be nil, in which case any `@tag` index in a query is an error
// (spec.md §9).
func New(root value.Value, reg *registry.Registry, tags path.InstanceTagResolver) *Evaluator {
	return &Evaluator{Root: root, Registry: reg, Tags: tags, likeCache: make(map[string]*likePattern)}
}

// Eval runs q's predication to completion and returns its boolean result.
// Because ast.Query.Root is statically typed as a Predication, the
// top-level "result must be Bool" contract (spec.md §4.5) is enforced by
// the Go type system for any ast.Query, parsed or hand-built, so no code
// path here or in the façade raises ResultTypeError (spec.md §7).
func (e *Evaluator) Eval(q *ast.Query) (bool, error) {
	return e.evalPredication(q.Root)
}

func (e *Evaluator) evalPredication(p ast.Predication) (bool, error) {
	switch n := p.(type) {
	case ast.And:
		left, err := e.evalPredication(n.Left)
		if err != nil {
			return false, err
		}
		if !left {
			return false, nil
		}
		return e.evalPredication(n.Right)
	case ast.Or:
		left, err := e.evalPredication(n.Left)
		if err != nil {
			return false, err
		}
		if left {
			return true, nil
		}
		return e.evalPredication(n.Right)
	case ast.ConditionNode:
		return e.evalCondition(n.Cond)
	default:
		return false, typeMismatch("unrecognized predication node")
	}
}

func (e *Evaluator) evalCondition(c ast.Condition) (bool, error) {
	switch n := c.(type) {
	case ast.Between:
		return e.evalBetween(n)
	case ast.In:
		return e.evalIn(n)
	case ast.Relational:
		return e.evalRelational(n)
	case ast.NullCompare:
		isNull, err := e.mathExprIsNull(n.Lhs)
		if err != nil {
			return false, err
		}
		if n.Negated {
			return !isNull, nil
		}
		return isNull, nil
	case ast.TextCompare:
		lhs, err := e.evalTextExpr(n.Lhs)
		if err != nil {
			return false, err
		}
		rhs, err := e.evalTextExpr(n.Rhs)
		if err != nil {
			return false, err
		}
		if lhs.IsNull() || rhs.IsNull() {
			return n.Op == ast.EqNE, nil
		}
		eq := value.Equal(lhs, rhs)
		if n.Op == ast.EqEQ {
			return eq, nil
		}
		return !eq, nil
	case ast.BoolCompare:
		lhs, err := e.evalBoolExpr(n.Lhs)
		if err != nil {
			return false, err
		}
		rhs, err := e.evalBoolExpr(n.Rhs)
		if err != nil {
			return false, err
		}
		if n.Op == ast.EqEQ {
			return lhs == rhs, nil
		}
		return lhs != rhs, nil
	case ast.BoolCondition:
		return e.evalBoolExpr(n.Expr)
	case ast.TextMatch:
		return e.evalTextMatch(n)
	case ast.BoolLit:
		return n.Value, nil
	case ast.CallCondition:
		v, err := e.evalCall(n.Call)
		if err != nil {
			return false, err
		}
		return coerceToBool(v), nil
	default:
		return false, typeMismatch("unrecognized condition node")
	}
}

func (e *Evaluator) evalBetween(b ast.Between) (bool, error) {
	val, err := e.evalMathExpr(b.Val)
	if err != nil {
		return false, err
	}
	lo, err := e.evalMathExpr(b.Lo)
	if err != nil {
		return false, err
	}
	hi, err := e.evalMathExpr(b.Hi)
	if err != nil {
		return false, err
	}
	if val.IsNull() || lo.IsNull() || hi.IsNull() {
		return false, nil
	}
	vf, _ := val.AsFloat()
	lf, _ := lo.AsFloat()
	hf, _ := hi.AsFloat()
	return lf <= vf && vf <= hf, nil
}

func (e *Evaluator) evalIn(n ast.In) (bool, error) {
	switch n.Form {
	case ast.InTextList:
		lhs, err := e.evalTextExpr(n.TextLhs)
		if err != nil {
			return false, err
		}
		if lhs.IsNull() {
			return false, nil
		}
		found := false
		for _, te := range n.TextList {
			v, err := e.evalTextExpr(te)
			if err != nil {
				return false, err
			}
			if value.Equal(lhs, v) {
				found = true
				break
			}
		}
		if n.Negated {
			return !found, nil
		}
		return found, nil

	case ast.InNumList:
		lhs, err := e.evalMathExpr(n.NumLhs)
		if err != nil {
			return false, err
		}
		if lhs.IsNull() {
			return false, nil
		}
		found := false
		for _, me := range n.NumList {
			v, err := e.evalMathExpr(me)
			if err != nil {
				return false, err
			}
			if value.Equal(lhs, v) {
				found = true
				break
			}
		}
		if n.Negated {
			return !found, nil
		}
		return found, nil

	default: // ast.InIdentifier
		lhs, err := e.evalTextExpr(n.TextLhs)
		if err != nil {
			return false, err
		}
		if lhs.IsNull() {
			return false, nil
		}
		rhs, err := path.Resolve(e.Root, n.IdentRhs, e.Tags)
		if err != nil {
			return false, err
		}
		if rhs.IsNull() {
			if n.Negated {
				return true, nil
			}
			return false, nil
		}
		if rhs.Kind != value.List {
			return false, notAList(identifierString(n.IdentRhs))
		}
		found := false
		for _, v := range rhs.L {
			if value.Equal(lhs, v) {
				found = true
				break
			}
		}
		if n.Negated {
			return !found, nil
		}
		return found, nil
	}
}

func (e *Evaluator) evalRelational(r ast.Relational) (bool, error) {
	lhs, err := e.evalMathExpr(r.Lhs)
	if err != nil {
		return false, err
	}
	rhs, err := e.evalMathExpr(r.Rhs)
	if err != nil {
		return false, err
	}
	if lhs.IsNull() || rhs.IsNull() {
		return false, nil
	}

	switch r.Op {
	case ast.OpEQ, ast.OpNE:
		eq := false
		if lhs.Kind == value.Integer && rhs.Kind == value.Integer {
			eq = lhs.I == rhs.I
		} else {
			lf, _ := lhs.AsFloat()
			rf, _ := rhs.AsFloat()
			eq = lf == rf
		}
		if r.Op == ast.OpEQ {
			return eq, nil
		}
		return !eq, nil
	default:
		lf, _ := lhs.AsFloat()
		rf, _ := rhs.AsFloat()
		switch r.Op {
		case ast.OpLT:
			return lf < rf, nil
		case ast.OpLTE:
			return lf <= rf, nil
		case ast.OpGT:
			return lf > rf, nil
		case ast.OpGTE:
			return lf >= rf, nil
		default:
			return false, typeMismatch("unrecognized relational operator")
		}
	}
}

// coerceToBool implements the "identifiers (and, by the same grammar
// symmetry, calls) resolving to non-booleans are coerced by parsing their
// string form: true (case-insensitive) yields true, anything else false"
// rule (spec.md §4.5, flagged deprecated in §9). A Null value's string
// form is "null", which never matches, so a missing identifier used as a
// bare boolean condition already falls out to false without a special
// case — the behavior §4.5's Predication note asks for.
func coerceToBool(v value.Value) bool {
	if v.Kind == value.Bool {
		return v.B
	}
	return strings.EqualFold(v.String(), "true")
}

func (e *Evaluator) evalBoolExpr(b ast.BoolExpr) (bool, error) {
	switch n := b.(type) {
	case ast.BoolLitExpr:
		return n.Value, nil
	case ast.BoolIdent:
		v, err := path.Resolve(e.Root, n.Path, e.Tags)
		if err != nil {
			return false, err
		}
		return coerceToBool(v), nil
	case ast.BoolCall:
		v, err := e.evalCall(n.Call)
		if err != nil {
			return false, err
		}
		return coerceToBool(v), nil
	default:
		return false, typeMismatch("unrecognized bool expression node")
	}
}

func identifierString(id ast.Identifier) string {
	parts := make([]string, len(id.Segments))
	for i, s := range id.Segments {
		parts[i] = s.Name
	}
	return strings.Join(parts, ".")
}
