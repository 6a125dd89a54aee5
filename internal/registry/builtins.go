package registry

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/ritamzico/objectql/internal/value"
)

// registerBuiltins seeds r with the required built-in library (spec.md
// §4.4's table, exact names and arities). Each entry validates its own
// arity, surfacing a plain error that Registry.Call wraps as
// FunctionExecutionFailed. The numeric built-ins and substring's bounds
// also reject non-numeric arguments; the string built-ins (replace, upper,
// lower, substring's subject, contains, startsWith, endsWith) do not check
// argument kinds and treat a non-string, non-null argument as empty text.
func registerBuiltins(r *Registry) {
	r.fns["replace"] = biReplace
	r.fns["upper"] = biUpper
	r.fns["lower"] = biLower
	r.fns["substring"] = biSubstring
	r.fns["concat"] = biConcat
	r.fns["length"] = biLength
	r.fns["min"] = biMin
	r.fns["max"] = biMax
	r.fns["abs"] = biAbs
	r.fns["round"] = biRound
	r.fns["ceil"] = biCeil
	r.fns["floor"] = biFloor
	r.fns["sqrt"] = biSqrt
	r.fns["contains"] = biContains
	r.fns["startsWith"] = biStartsWith
	r.fns["endsWith"] = biEndsWith
}

func arity(name string, args []value.Value, min, max int) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		if min == max {
			return fmt.Errorf("%s expects %d argument(s), got %d", name, min, len(args))
		}
		return fmt.Errorf("%s expects between %d and %d arguments, got %d", name, min, max, len(args))
	}
	return nil
}

func biReplace(args []value.Value) (value.Value, error) {
	if err := arity("replace", args, 3, 3); err != nil {
		return value.Value{}, err
	}
	if args[0].IsNull() || args[1].IsNull() || args[2].IsNull() {
		return value.NullValue(), nil
	}
	pattern, err := regexp.Compile(args[1].S)
	if err != nil {
		return value.Value{}, fmt.Errorf("replace: invalid pattern %q: %w", args[1].S, err)
	}
	return value.StringValue(pattern.ReplaceAllString(args[0].S, args[2].S)), nil
}

func biUpper(args []value.Value) (value.Value, error) {
	if err := arity("upper", args, 1, 1); err != nil {
		return value.Value{}, err
	}
	if args[0].IsNull() {
		return value.NullValue(), nil
	}
	return value.StringValue(strings.ToUpper(args[0].S)), nil
}

func biLower(args []value.Value) (value.Value, error) {
	if err := arity("lower", args, 1, 1); err != nil {
		return value.Value{}, err
	}
	if args[0].IsNull() {
		return value.NullValue(), nil
	}
	return value.StringValue(strings.ToLower(args[0].S)), nil
}

func biSubstring(args []value.Value) (value.Value, error) {
	if err := arity("substring", args, 2, 3); err != nil {
		return value.Value{}, err
	}
	if args[0].IsNull() || args[1].IsNull() {
		return value.NullValue(), nil
	}

	s := args[0].S
	start, ok := asInt(args[1])
	if !ok {
		return value.Value{}, fmt.Errorf("substring: start must be numeric")
	}

	end := len(s)
	if len(args) == 3 {
		if args[2].IsNull() {
			return value.NullValue(), nil
		}
		e, ok := asInt(args[2])
		if !ok {
			return value.Value{}, fmt.Errorf("substring: end must be numeric")
		}
		end = e
	}

	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start > end {
		start = end
	}
	return value.StringValue(s[start:end]), nil
}

func biConcat(args []value.Value) (value.Value, error) {
	if err := arity("concat", args, 1, -1); err != nil {
		return value.Value{}, err
	}
	var b strings.Builder
	for _, a := range args {
		if a.IsNull() {
			continue
		}
		b.WriteString(a.String())
	}
	return value.StringValue(b.String()), nil
}

func biLength(args []value.Value) (value.Value, error) {
	if err := arity("length", args, 1, 1); err != nil {
		return value.Value{}, err
	}
	switch args[0].Kind {
	case value.Null:
		return value.NullValue(), nil
	case value.String:
		return value.IntValue(int64(len(args[0].S))), nil
	case value.List:
		return value.IntValue(int64(len(args[0].L))), nil
	default:
		return value.IntValue(0), nil
	}
}

func biMin(args []value.Value) (value.Value, error) {
	return numericFold("min", args, func(a, b float64) float64 { return math.Min(a, b) })
}

func biMax(args []value.Value) (value.Value, error) {
	return numericFold("max", args, func(a, b float64) float64 { return math.Max(a, b) })
}

func numericFold(name string, args []value.Value, fold func(a, b float64) float64) (value.Value, error) {
	if err := arity(name, args, 1, -1); err != nil {
		return value.Value{}, err
	}
	var (
		acc   float64
		found bool
	)
	for _, a := range args {
		f, ok := a.AsFloat()
		if !ok {
			continue
		}
		if !found {
			acc = f
			found = true
			continue
		}
		acc = fold(acc, f)
	}
	if !found {
		return value.Value{}, fmt.Errorf("%s: no numeric arguments", name)
	}
	return value.FloatValue(acc), nil
}

func unaryMath(name string, args []value.Value, fn func(float64) float64) (value.Value, error) {
	if err := arity(name, args, 1, 1); err != nil {
		return value.Value{}, err
	}
	if args[0].IsNull() {
		return value.NullValue(), nil
	}
	f, ok := args[0].AsFloat()
	if !ok {
		return value.Value{}, fmt.Errorf("%s: argument must be numeric", name)
	}
	return value.FloatValue(fn(f)), nil
}

func biAbs(args []value.Value) (value.Value, error)   { return unaryMath("abs", args, math.Abs) }
func biRound(args []value.Value) (value.Value, error) { return unaryMath("round", args, math.Round) }
func biCeil(args []value.Value) (value.Value, error)  { return unaryMath("ceil", args, math.Ceil) }
func biFloor(args []value.Value) (value.Value, error) { return unaryMath("floor", args, math.Floor) }
func biSqrt(args []value.Value) (value.Value, error)  { return unaryMath("sqrt", args, math.Sqrt) }

func biContains(args []value.Value) (value.Value, error) {
	return stringPredicate("contains", args, strings.Contains)
}

func biStartsWith(args []value.Value) (value.Value, error) {
	return stringPredicate("startsWith", args, strings.HasPrefix)
}

func biEndsWith(args []value.Value) (value.Value, error) {
	return stringPredicate("endsWith", args, strings.HasSuffix)
}

func stringPredicate(name string, args []value.Value, pred func(s, sub string) bool) (value.Value, error) {
	if err := arity(name, args, 2, 3); err != nil {
		return value.Value{}, err
	}
	if args[0].IsNull() || args[1].IsNull() {
		return value.BoolValue(false), nil
	}

	s, needle := args[0].S, args[1].S
	if len(args) == 3 && !args[2].IsNull() && args[2].Kind == value.Bool && args[2].B {
		s, needle = strings.ToLower(s), strings.ToLower(needle)
	}
	return value.BoolValue(pred(s, needle)), nil
}

func asInt(v value.Value) (int, bool) {
	switch v.Kind {
	case value.Integer:
		return int(v.I), true
	case value.Float:
		return int(v.F), true
	default:
		return 0, false
	}
}
