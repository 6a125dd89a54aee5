package value

import "testing"

func TestEqual_Numeric(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"int-int equal", IntValue(3), IntValue(3), true},
		{"int-float equal", IntValue(3), FloatValue(3.0), true},
		{"int-float unequal", IntValue(3), FloatValue(3.5), false},
		{"string-string equal", StringValue("a"), StringValue("a"), true},
		{"string-string unequal", StringValue("a"), StringValue("b"), false},
		{"bool mismatch kind", BoolValue(true), IntValue(1), false},
		{"null-null", NullValue(), NullValue(), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Equal(c.a, c.b); got != c.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestEqual_ListsAndMaps(t *testing.T) {
	a := ListValue([]Value{IntValue(1), StringValue("x")})
	b := ListValue([]Value{IntValue(1), StringValue("x")})
	c := ListValue([]Value{IntValue(1), StringValue("y")})

	if !Equal(a, b) {
		t.Error("expected equal lists to compare equal")
	}
	if Equal(a, c) {
		t.Error("expected differing lists to compare unequal")
	}

	m1 := MapValue(map[string]Value{"k": IntValue(1)})
	m2 := MapValue(map[string]Value{"k": IntValue(1)})
	if !Equal(m1, m2) {
		t.Error("expected equal maps to compare equal")
	}
}

func TestFromNative_NumberNarrowing(t *testing.T) {
	v := FromNative(float64(42))
	if v.Kind != Integer || v.I != 42 {
		t.Fatalf("expected whole-number JSON float to narrow to Integer, got %+v", v)
	}

	v2 := FromNative(float64(42.5))
	if v2.Kind != Float || v2.F != 42.5 {
		t.Fatalf("expected fractional JSON float to stay Float, got %+v", v2)
	}
}

func TestFromJSON_RoundTrip(t *testing.T) {
	v, err := FromJSON([]byte(`{"age": 25, "scores": [10, 20, 30], "active": true, "missing": null}`))
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if v.Kind != Map {
		t.Fatalf("expected Map, got %v", v.Kind)
	}
	if v.M["age"].Kind != Integer || v.M["age"].I != 25 {
		t.Errorf("age: got %+v", v.M["age"])
	}
	if v.M["scores"].Kind != List || len(v.M["scores"].L) != 3 {
		t.Errorf("scores: got %+v", v.M["scores"])
	}
	if v.M["missing"].Kind != Null {
		t.Errorf("missing: got %+v", v.M["missing"])
	}
}

func TestToNative_Inverse(t *testing.T) {
	v := MapValue(map[string]Value{
		"n": IntValue(7),
		"l": ListValue([]Value{StringValue("a")}),
	})
	native := ToNative(v).(map[string]any)
	if native["n"].(int64) != 7 {
		t.Errorf("expected n=7, got %v", native["n"])
	}
}
