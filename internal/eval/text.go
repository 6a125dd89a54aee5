package eval

import (
	"regexp"
	"strings"

	"github.com/ritamzico/objectql/internal/ast"
	"github.com/ritamzico/objectql/internal/path"
	"github.com/ritamzico/objectql/internal/value"
)

// evalTextExpr implements spec.md §4.5's TextExpr side of Text match. A
// non-string, non-null identifier or call result is coerced through
// Value.String() the same way concat() and the CLI render values — the
// grammar allows any identifier or call in a text position, and spec.md
// §4.5 does not single out a different rule for them the way it does for
// boolean coercion, so scalar values are rendered textually rather than
// treated as a type error.
func (e *Evaluator) evalTextExpr(t ast.TextExpr) (value.Value, error) {
	switch n := t.(type) {
	case ast.TextLit:
		return value.StringValue(n.Value), nil
	case ast.TextNullLit:
		return value.NullValue(), nil
	case ast.TextIdent:
		v, err := path.Resolve(e.Root, n.Path, e.Tags)
		if err != nil {
			return value.Value{}, err
		}
		return coerceToText(v), nil
	case ast.TextCall:
		v, err := e.evalCall(n.Call)
		if err != nil {
			return value.Value{}, err
		}
		return coerceToText(v), nil
	default:
		return value.Value{}, typeMismatch("unrecognized text expression node")
	}
}

func coerceToText(v value.Value) value.Value {
	if v.IsNull() || v.Kind == value.String {
		return v
	}
	return value.StringValue(v.String())
}

// likePattern is a compiled LIKE-family pattern, cached by its raw %-form
// so repeated evaluations of the same query (or the same rhs pattern
// across rows) reuse one regexp.Regexp (spec.md §5).
type likePattern struct {
	re *regexp.Regexp
}

// evalTextMatch implements spec.md §4.5's Text match contract in full,
// including the literal-NULL special case and the four wildcard shapes.
func (e *Evaluator) evalTextMatch(t ast.TextMatch) (bool, error) {
	_, lhsIsNullLit := t.Lhs.(ast.TextNullLit)
	_, rhsIsNullLit := t.Rhs.(ast.TextNullLit)

	switch {
	case lhsIsNullLit && rhsIsNullLit:
		return true, nil
	case lhsIsNullLit:
		rhs, err := e.evalTextExpr(t.Rhs)
		if err != nil {
			return false, err
		}
		return rhs.IsNull(), nil
	case rhsIsNullLit:
		lhs, err := e.evalTextExpr(t.Lhs)
		if err != nil {
			return false, err
		}
		return lhs.IsNull(), nil
	}

	lhs, err := e.evalTextExpr(t.Lhs)
	if err != nil {
		return false, err
	}
	rhs, err := e.evalTextExpr(t.Rhs)
	if err != nil {
		return false, err
	}

	negated := t.Op == ast.OpNotLike || t.Op == ast.OpNotILike
	if lhs.IsNull() || rhs.IsNull() {
		// "false for match operators and ==; != is true" (spec.md §4.5),
		// read as Like/ILike siding with == and NotLike/NotILike with !=.
		return negated, nil
	}

	fold := t.Op == ast.OpILike || t.Op == ast.OpNotILike
	subject, pattern := lhs.S, rhs.S
	if fold {
		subject = strings.ToLower(subject)
		pattern = strings.ToLower(pattern)
	}

	re, err := e.compileLikePattern(pattern)
	if err != nil {
		return false, err
	}
	matched := re.re.MatchString(subject)
	if negated {
		return !matched, nil
	}
	return matched, nil
}

// compileLikePattern turns a %-wildcard pattern into an anchored regex
// and caches it by its exact source text. A leading % means "ends with",
// a trailing % means "starts with", both means "contains", neither means
// an exact match (spec.md §4.5).
func (e *Evaluator) compileLikePattern(pattern string) (*likePattern, error) {
	if cached, ok := e.likeCache[pattern]; ok {
		return cached, nil
	}

	leading := strings.HasPrefix(pattern, "%")
	trailing := strings.HasSuffix(pattern, "%")
	core := pattern
	if leading {
		core = strings.TrimPrefix(core, "%")
	}
	if trailing {
		core = strings.TrimSuffix(core, "%")
	}
	escaped := regexp.QuoteMeta(core)

	var src string
	switch {
	case leading && trailing:
		src = "^.*" + escaped + ".*$"
	case leading:
		src = "^.*" + escaped + "$"
	case trailing:
		src = "^" + escaped + ".*$"
	default:
		src = "^" + escaped + "$"
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, typeMismatch("invalid LIKE pattern: " + pattern)
	}
	compiled := &likePattern{re: re}
	e.likeCache[pattern] = compiled
	return compiled, nil
}
