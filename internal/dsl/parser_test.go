package dsl

import (
	"testing"

	"github.com/ritamzico/objectql/internal/ast"
)

func TestParse_SimpleRelational(t *testing.T) {
	q, err := Parse("age > 18")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cn, ok := q.Root.(ast.ConditionNode)
	if !ok {
		t.Fatalf("expected ConditionNode, got %T", q.Root)
	}
	rel, ok := cn.Cond.(ast.Relational)
	if !ok {
		t.Fatalf("expected Relational, got %T", cn.Cond)
	}
	if rel.Op != ast.OpGT {
		t.Errorf("expected OpGT, got %v", rel.Op)
	}
	if _, ok := rel.Lhs.(ast.MathIdent); !ok {
		t.Errorf("expected MathIdent lhs, got %T", rel.Lhs)
	}
	if lit, ok := rel.Rhs.(ast.IntLit); !ok || lit.Value != 18 {
		t.Errorf("expected IntLit(18) rhs, got %#v", rel.Rhs)
	}
}

func TestParse_AlphabeticRelationalSpelling(t *testing.T) {
	q1, err := Parse("age GT 18")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q2, err := Parse("age > 18")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r1 := q1.Root.(ast.ConditionNode).Cond.(ast.Relational)
	r2 := q2.Root.(ast.ConditionNode).Cond.(ast.Relational)
	if r1.Op != r2.Op {
		t.Errorf("GT and > should produce the same RelOp, got %v vs %v", r1.Op, r2.Op)
	}
}

func TestParse_LogicalPrecedenceIsFlatLeftAssociative(t *testing.T) {
	q, err := Parse("a == 1 OR b == 2 AND c == 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (a==1 OR b==2) AND c==3, not a==1 OR (b==2 AND c==3).
	top, ok := q.Root.(ast.And)
	if !ok {
		t.Fatalf("expected top-level And, got %T", q.Root)
	}
	if _, ok := top.Left.(ast.Or); !ok {
		t.Errorf("expected left side to be the earlier Or, got %T", top.Left)
	}
}

func TestParse_Between(t *testing.T) {
	q, err := Parse("age >=< [18, 65]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, ok := q.Root.(ast.ConditionNode).Cond.(ast.Between)
	if !ok {
		t.Fatalf("expected Between, got %T", q.Root.(ast.ConditionNode).Cond)
	}
}

func TestParse_BetweenAlphabeticSpelling(t *testing.T) {
	_, err := Parse("age BETWEEN [18, 65]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParse_InTextList(t *testing.T) {
	q, err := Parse(`status IN ['active', 'pending']`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in, ok := q.Root.(ast.ConditionNode).Cond.(ast.In)
	if !ok {
		t.Fatalf("expected In, got %T", q.Root.(ast.ConditionNode).Cond)
	}
	if in.Form != ast.InTextList || in.Negated || len(in.TextList) != 2 {
		t.Errorf("unexpected In: %+v", in)
	}
}

func TestParse_NotInNumList(t *testing.T) {
	q, err := Parse("age <> [13, 14, 15]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := q.Root.(ast.ConditionNode).Cond.(ast.In)
	if in.Form != ast.InNumList || !in.Negated || len(in.NumList) != 3 {
		t.Errorf("unexpected In: %+v", in)
	}
}

func TestParse_InIdentifierForm(t *testing.T) {
	q, err := Parse("role IN allowedRoles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := q.Root.(ast.ConditionNode).Cond.(ast.In)
	if in.Form != ast.InIdentifier {
		t.Errorf("expected InIdentifier, got %+v", in)
	}
}

func TestParse_NotInIdentifierForm(t *testing.T) {
	q, err := Parse("role NOT IN allowedRoles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := q.Root.(ast.ConditionNode).Cond.(ast.In)
	if in.Form != ast.InIdentifier || !in.Negated {
		t.Errorf("expected negated InIdentifier, got %+v", in)
	}
}

func TestParse_CallComparedToNullKeyword(t *testing.T) {
	q, err := Parse("replace(missing, 'a', 'b') == null")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nc, ok := q.Root.(ast.ConditionNode).Cond.(ast.NullCompare)
	if !ok {
		t.Fatalf("expected NullCompare, got %T", q.Root.(ast.ConditionNode).Cond)
	}
	if nc.Negated {
		t.Errorf("expected non-negated NullCompare")
	}
	if _, ok := nc.Lhs.(ast.MathCall); !ok {
		t.Errorf("expected MathCall lhs, got %#v", nc.Lhs)
	}
}

func TestParse_TextMatchWildcards(t *testing.T) {
	cases := []string{`name ~ 'Jo%'`, `name LIKE 'Jo%'`, `name ~~ '%jo%'`, `name !~ 'x%'`, `name !~~ '%x%'`}
	for _, src := range cases {
		q, err := Parse(src)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", src, err)
		}
		if _, ok := q.Root.(ast.ConditionNode).Cond.(ast.TextMatch); !ok {
			t.Errorf("%q: expected TextMatch, got %T", src, q.Root.(ast.ConditionNode).Cond)
		}
	}
}

func TestParse_TextEquality(t *testing.T) {
	cases := []struct {
		src string
		op  ast.EqOp
	}{
		{"city == 'Springfield'", ast.EqEQ},
		{"status != 'pending'", ast.EqNE},
	}
	for _, c := range cases {
		q, err := Parse(c.src)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.src, err)
		}
		tc, ok := q.Root.(ast.ConditionNode).Cond.(ast.TextCompare)
		if !ok {
			t.Fatalf("%q: expected TextCompare, got %T", c.src, q.Root.(ast.ConditionNode).Cond)
		}
		if tc.Op != c.op {
			t.Errorf("%q: expected op %v, got %v", c.src, c.op, tc.Op)
		}
		if _, ok := tc.Lhs.(ast.TextIdent); !ok {
			t.Errorf("%q: expected TextIdent lhs, got %#v", c.src, tc.Lhs)
		}
		if lit, ok := tc.Rhs.(ast.TextLit); !ok {
			t.Errorf("%q: expected TextLit rhs, got %#v", c.src, tc.Rhs)
		} else if c.src == "city == 'Springfield'" && lit.Value != "Springfield" {
			t.Errorf("%q: expected rhs literal Springfield, got %q", c.src, lit.Value)
		}
	}
}

func TestParse_TextMatchAlphabeticNegatedSpelling(t *testing.T) {
	cases := []struct {
		src string
		op  ast.TextOp
	}{
		{"name NOT LIKE 'x%'", ast.OpNotLike},
		{"name NOT ILIKE 'x%'", ast.OpNotILike},
	}
	for _, c := range cases {
		q, err := Parse(c.src)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.src, err)
		}
		tm, ok := q.Root.(ast.ConditionNode).Cond.(ast.TextMatch)
		if !ok {
			t.Fatalf("%q: expected TextMatch, got %T", c.src, q.Root.(ast.ConditionNode).Cond)
		}
		if tm.Op != c.op {
			t.Errorf("%q: expected op %v, got %v", c.src, c.op, tm.Op)
		}
	}
}

func TestParse_ArithmeticPrecedence(t *testing.T) {
	q, err := Parse("1 + 2 * 3 == 7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rel := q.Root.(ast.ConditionNode).Cond.(ast.Relational)
	add, ok := rel.Lhs.(ast.BinaryArith)
	if !ok || add.Op != ast.ArithAdd {
		t.Fatalf("expected top-level Add, got %#v", rel.Lhs)
	}
	mul, ok := add.Right.(ast.BinaryArith)
	if !ok || mul.Op != ast.ArithMul {
		t.Errorf("expected multiplication nested on the right, got %#v", add.Right)
	}
}

func TestParse_Power(t *testing.T) {
	q, err := Parse("2^8 == 256")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rel := q.Root.(ast.ConditionNode).Cond.(ast.Relational)
	if _, ok := rel.Lhs.(ast.Power); !ok {
		t.Fatalf("expected Power, got %#v", rel.Lhs)
	}
}

func TestParse_CallWithMixedArgs(t *testing.T) {
	q, err := Parse(`contains(name, 'bob', caseInsensitive) == true`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = q
}

func TestParse_NestedPath(t *testing.T) {
	q, err := Parse("person.contact.phones[0].active == true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bc, ok := q.Root.(ast.ConditionNode).Cond.(ast.BoolCompare)
	if !ok {
		t.Fatalf("expected BoolCompare, got %T", q.Root.(ast.ConditionNode).Cond)
	}
	id, ok := bc.Lhs.(ast.BoolIdent)
	if !ok {
		t.Fatalf("expected BoolIdent, got %#v", bc.Lhs)
	}
	if len(id.Path.Segments) != 4 {
		t.Fatalf("expected 4 path segments, got %d", len(id.Path.Segments))
	}
	if id.Path.Segments[2].Index == nil || id.Path.Segments[2].Index.Int != 0 {
		t.Errorf("expected phones[0], got %+v", id.Path.Segments[2])
	}
}

func TestParse_InstanceTagIndex(t *testing.T) {
	q, err := Parse("items[@primary].active == true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bc := q.Root.(ast.ConditionNode).Cond.(ast.BoolCompare)
	id := bc.Lhs.(ast.BoolIdent)
	if !id.Path.Segments[0].Index.IsTag || id.Path.Segments[0].Index.Tag != "primary" {
		t.Errorf("expected instance tag 'primary', got %+v", id.Path.Segments[0].Index)
	}
}

func TestParse_ParenthesizedGrouping(t *testing.T) {
	q, err := Parse("(a == 1 OR b == 2) AND c == 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := q.Root.(ast.And); !ok {
		t.Fatalf("expected And, got %T", q.Root)
	}
}

func TestParse_BareBoolIdentifierCondition(t *testing.T) {
	q, err := Parse("isActive")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bc, ok := q.Root.(ast.ConditionNode).Cond.(ast.BoolCondition)
	if !ok {
		t.Fatalf("expected BoolCondition, got %T", q.Root.(ast.ConditionNode).Cond)
	}
	if _, ok := bc.Expr.(ast.BoolIdent); !ok {
		t.Errorf("expected BoolIdent, got %#v", bc.Expr)
	}
}

func TestParse_BareLiteralCondition(t *testing.T) {
	q, err := Parse("TRUE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lit, ok := q.Root.(ast.ConditionNode).Cond.(ast.BoolLit)
	if !ok || !lit.Value {
		t.Fatalf("expected BoolLit(true), got %#v", q.Root.(ast.ConditionNode).Cond)
	}
}

func TestParse_SyntaxErrorReportsPosition(t *testing.T) {
	_, err := Parse("age >< 10")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	perr, ok := err.(ParseError)
	if !ok {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
	if perr.Line == 0 {
		t.Errorf("expected a nonzero line number, got %+v", perr)
	}
}

func TestParse_EmptyInputIsSyntaxError(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Error("expected an error for empty input")
	}
}
