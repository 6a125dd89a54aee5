package registry

import (
	"testing"

	"github.com/ritamzico/objectql/internal/value"
)

func TestRegistry_UnknownFunction(t *testing.T) {
	r := New()
	_, err := r.Call("nope", nil)
	if err == nil {
		t.Fatal("expected an UnknownFunction error")
	}
	re, ok := err.(RegistryError)
	if !ok || re.Kind != "UnknownFunction" {
		t.Fatalf("expected RegistryError{Kind: UnknownFunction}, got %v", err)
	}
}

func TestRegistry_RegisterReplacesIdempotently(t *testing.T) {
	r := New()
	calls := 0
	first := func(args []value.Value) (value.Value, error) { calls = 1; return value.IntValue(1), nil }
	second := func(args []value.Value) (value.Value, error) { calls = 2; return value.IntValue(2), nil }

	if err := r.Register("custom", first); err != nil {
		t.Fatalf("register first: %v", err)
	}
	if err := r.Register("custom", second); err != nil {
		t.Fatalf("register second: %v", err)
	}

	got, err := r.Call("custom", nil)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if got.I != 2 || calls != 2 {
		t.Errorf("expected only the latest registration to be visible, got %+v (calls=%d)", got, calls)
	}
}

func TestRegistry_RegisterValidatesInputs(t *testing.T) {
	r := New()
	if err := r.Register("", func(args []value.Value) (value.Value, error) { return value.Value{}, nil }); err == nil {
		t.Error("expected error for empty name")
	}
	if err := r.Register("x", nil); err == nil {
		t.Error("expected error for nil callable")
	}
}

func TestRegistry_CallWrapsExecutionFailure(t *testing.T) {
	r := New()
	_ = r.Register("boom", func(args []value.Value) (value.Value, error) {
		panic("kaboom")
	})
	_, err := r.Call("boom", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	re, ok := err.(RegistryError)
	if !ok || re.Kind != "FunctionExecutionFailed" {
		t.Fatalf("expected FunctionExecutionFailed, got %v", err)
	}
}

func TestBuiltins_NullPassthrough(t *testing.T) {
	r := New()

	cases := []string{"upper", "lower", "abs", "round", "ceil", "floor", "sqrt"}
	for _, name := range cases {
		got, err := r.Call(name, []value.Value{value.NullValue()})
		if err != nil {
			t.Errorf("%s(null) unexpected error: %v", name, err)
		}
		if !got.IsNull() {
			t.Errorf("%s(null) = %+v, want Null", name, got)
		}
	}
}

func TestBuiltins_Replace(t *testing.T) {
	r := New()
	got, err := r.Call("replace", []value.Value{value.StringValue("hello world"), value.StringValue("o"), value.StringValue("0")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.S != "hell0 w0rld" {
		t.Errorf("got %q", got.S)
	}
}

func TestBuiltins_ReplaceNullIsNull(t *testing.T) {
	r := New()
	got, err := r.Call("replace", []value.Value{value.NullValue(), value.StringValue("a"), value.StringValue("b")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsNull() {
		t.Errorf("expected Null, got %+v", got)
	}
}

func TestBuiltins_Substring(t *testing.T) {
	r := New()
	got, err := r.Call("substring", []value.Value{value.StringValue("hello world"), value.IntValue(6)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.S != "world" {
		t.Errorf("got %q", got.S)
	}

	got, err = r.Call("substring", []value.Value{value.StringValue("hello"), value.IntValue(0), value.IntValue(100)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.S != "hello" {
		t.Errorf("expected end clamped to len(s), got %q", got.S)
	}
}

func TestBuiltins_Concat(t *testing.T) {
	r := New()
	got, err := r.Call("concat", []value.Value{value.StringValue("a"), value.NullValue(), value.IntValue(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.S != "a1" {
		t.Errorf("got %q", got.S)
	}
}

func TestBuiltins_Length(t *testing.T) {
	r := New()

	got, _ := r.Call("length", []value.Value{value.StringValue("hello")})
	if got.I != 5 {
		t.Errorf("expected 5, got %+v", got)
	}

	got, _ = r.Call("length", []value.Value{value.ListValue([]value.Value{value.IntValue(1), value.IntValue(2)})})
	if got.I != 2 {
		t.Errorf("expected 2, got %+v", got)
	}

	got, _ = r.Call("length", []value.Value{value.NullValue()})
	if !got.IsNull() {
		t.Errorf("expected Null, got %+v", got)
	}

	got, _ = r.Call("length", []value.Value{value.IntValue(5)})
	if got.I != 0 {
		t.Errorf("expected 0 for non-string/list, got %+v", got)
	}
}

func TestBuiltins_MinMax(t *testing.T) {
	r := New()

	got, err := r.Call("min", []value.Value{value.IntValue(3), value.FloatValue(1.5), value.NullValue()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.F != 1.5 {
		t.Errorf("expected 1.5, got %+v", got)
	}

	got, err = r.Call("max", []value.Value{value.IntValue(3), value.FloatValue(1.5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.F != 3 {
		t.Errorf("expected 3, got %+v", got)
	}
}

func TestBuiltins_ContainsFamily(t *testing.T) {
	r := New()

	got, _ := r.Call("contains", []value.Value{value.StringValue("Hello World"), value.StringValue("world"), value.BoolValue(true)})
	if !got.B {
		t.Error("expected case-insensitive contains to match")
	}

	got, _ = r.Call("startsWith", []value.Value{value.StringValue("Hello"), value.StringValue("he")})
	if got.B {
		t.Error("expected case-sensitive startsWith to not match")
	}

	got, _ = r.Call("endsWith", []value.Value{value.NullValue(), value.StringValue("lo")})
	if got.B {
		t.Error("expected false when required arg is Null")
	}
}
