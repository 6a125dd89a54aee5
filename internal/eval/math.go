package eval

import (
	"math"

	"github.com/ritamzico/objectql/internal/ast"
	"github.com/ritamzico/objectql/internal/path"
	"github.com/ritamzico/objectql/internal/value"
)

// evalMathExpr implements spec.md §4.5's Arithmetic and "identifier as
// math expression" contracts. Any Null operand anywhere in the tree
// propagates as Null rather than erroring (the Null-absorption invariant,
// spec.md §8).
func (e *Evaluator) evalMathExpr(m ast.MathExpr) (value.Value, error) {
	switch n := m.(type) {
	case ast.IntLit:
		return value.IntValue(n.Value), nil
	case ast.FloatLit:
		return value.FloatValue(n.Value), nil
	case ast.Power:
		return e.evalPower(n)
	case ast.BinaryArith:
		return e.evalBinaryArith(n)
	case ast.MathIdent:
		v, err := path.Resolve(e.Root, n.Path, e.Tags)
		if err != nil {
			return value.Value{}, err
		}
		if v.IsNumeric() {
			return v, nil
		}
		return value.NullValue(), nil
	case ast.MathCall:
		v, err := e.evalCall(n.Call)
		if err != nil {
			return value.Value{}, err
		}
		if v.IsNull() || v.IsNumeric() {
			return v, nil
		}
		return value.Value{}, typeMismatch("function " + n.Call.Name + " did not return a numeric value")
	default:
		return value.Value{}, typeMismatch("unrecognized math expression node")
	}
}

// mathExprIsNull reports whether m resolves to Null, for the NullCompare
// condition (`expr == null`). It deliberately does not reuse evalMathExpr
// for MathIdent/MathCall: evalMathExpr's "non-numeric identifier/call
// result is Null-or-TypeMismatch" coercion is the right rule inside
// arithmetic, but would wrongly report a string-valued field or a
// string-returning call (e.g. replace, concat) as Null just because it
// isn't numeric. Here we want the raw resolved/returned value's actual
// null-ness.
func (e *Evaluator) mathExprIsNull(m ast.MathExpr) (bool, error) {
	switch n := m.(type) {
	case ast.IntLit, ast.FloatLit:
		return false, nil
	case ast.MathIdent:
		v, err := path.Resolve(e.Root, n.Path, e.Tags)
		if err != nil {
			return false, err
		}
		return v.IsNull(), nil
	case ast.MathCall:
		v, err := e.evalCall(n.Call)
		if err != nil {
			return false, err
		}
		return v.IsNull(), nil
	case ast.Power, ast.BinaryArith:
		v, err := e.evalMathExpr(n)
		if err != nil {
			return false, err
		}
		return v.IsNull(), nil
	default:
		return false, typeMismatch("unrecognized math expression node")
	}
}

// evalPower always produces a Float, even for an all-integer base^exponent
// form (spec.md §4.5: "^ (power) is always Float-valued").
func (e *Evaluator) evalPower(p ast.Power) (value.Value, error) {
	base, err := e.evalMathExpr(p.Base)
	if err != nil {
		return value.Value{}, err
	}
	exp, err := e.evalMathExpr(p.Exponent)
	if err != nil {
		return value.Value{}, err
	}
	bf, _ := base.AsFloat()
	ef, _ := exp.AsFloat()
	return value.FloatValue(math.Pow(bf, ef)), nil
}

func (e *Evaluator) evalBinaryArith(n ast.BinaryArith) (value.Value, error) {
	left, err := e.evalMathExpr(n.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := e.evalMathExpr(n.Right)
	if err != nil {
		return value.Value{}, err
	}
	if left.IsNull() || right.IsNull() {
		return value.NullValue(), nil
	}

	if left.Kind == value.Integer && right.Kind == value.Integer {
		return evalIntegerArith(n.Op, left.I, right.I)
	}

	lf, _ := left.AsFloat()
	rf, _ := right.AsFloat()
	return evalFloatArith(n.Op, lf, rf)
}

func opSymbol(op ast.ArithOp) string {
	switch op {
	case ast.ArithAdd:
		return "+"
	case ast.ArithSub:
		return "-"
	case ast.ArithMul:
		return "*"
	case ast.ArithDiv:
		return "/"
	case ast.ArithMod:
		return "%"
	default:
		return "?"
	}
}

// evalIntegerArith keeps the result an Integer when both operands are
// Integer, using Go's truncating / and % for division and "truncated
// remainder" respectively (spec.md §4.5).
func evalIntegerArith(op ast.ArithOp, l, r int64) (value.Value, error) {
	switch op {
	case ast.ArithAdd:
		return value.IntValue(l + r), nil
	case ast.ArithSub:
		return value.IntValue(l - r), nil
	case ast.ArithMul:
		return value.IntValue(l * r), nil
	case ast.ArithDiv:
		if r == 0 {
			return value.Value{}, divisionByZero(opSymbol(op))
		}
		return value.IntValue(l / r), nil
	case ast.ArithMod:
		if r == 0 {
			return value.Value{}, divisionByZero(opSymbol(op))
		}
		return value.IntValue(l % r), nil
	default:
		return value.Value{}, typeMismatch("unrecognized arithmetic operator")
	}
}

func evalFloatArith(op ast.ArithOp, l, r float64) (value.Value, error) {
	switch op {
	case ast.ArithAdd:
		return value.FloatValue(l + r), nil
	case ast.ArithSub:
		return value.FloatValue(l - r), nil
	case ast.ArithMul:
		return value.FloatValue(l * r), nil
	case ast.ArithDiv:
		if r == 0 {
			return value.Value{}, divisionByZero(opSymbol(op))
		}
		return value.FloatValue(l / r), nil
	case ast.ArithMod:
		if r == 0 {
			return value.Value{}, divisionByZero(opSymbol(op))
		}
		return value.FloatValue(math.Mod(l, r)), nil
	default:
		return value.Value{}, typeMismatch("unrecognized arithmetic operator")
	}
}
