package dsl

import (
	"fmt"
	"strings"

	"github.com/ritamzico/objectql/internal/ast"
)

// convertQuery folds the parsed grammar tree into the domain ast.Query
// (internal/ast/ast.go), the same "grammar AST in, domain AST out" split
// the teacher's convertGrammar/convertQuery pair uses (internal/dsl/
// convert.go), generalized from pgraph's statement/query dispatch to
// ObjectQL's predicate grammar.
func convertQuery(g *queryGrammar) (*ast.Query, error) {
	root, err := convertPredication(g.Predication)
	if err != nil {
		return nil, err
	}
	return &ast.Query{Root: root}, nil
}

// convertPredication folds the flat (term, op, term, op, term, ...) chain
// left to right, which is what makes AND and OR equal-precedence and
// left-associative (SPEC_FULL.md §6, Open Question 1).
func convertPredication(p *predicationGrammar) (ast.Predication, error) {
	acc, err := convertTerm(p.First)
	if err != nil {
		return nil, err
	}
	for _, ot := range p.Rest {
		rhs, err := convertTerm(ot.Term)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(ot.Op, "AND") {
			acc = ast.And{Left: acc, Right: rhs}
		} else {
			acc = ast.Or{Left: acc, Right: rhs}
		}
	}
	return acc, nil
}

func convertTerm(t *termGrammar) (ast.Predication, error) {
	if t.Paren != nil {
		return convertPredication(t.Paren)
	}
	cond, err := convertCondition(t.Condition)
	if err != nil {
		return nil, err
	}
	return ast.ConditionNode{Cond: cond}, nil
}

func convertCondition(c *conditionGrammar) (ast.Condition, error) {
	switch {
	case c.Between != nil:
		return convertBetween(c.Between)
	case c.In != nil:
		return convertIn(c.In)
	case c.Relational != nil:
		return convertRelational(c.Relational)
	case c.TextMatch != nil:
		return convertTextMatch(c.TextMatch)
	case c.BoolLit != nil:
		return ast.BoolLit{Value: strings.EqualFold(*c.BoolLit, "TRUE")}, nil
	default:
		call, err := convertCall(c.Call)
		if err != nil {
			return nil, err
		}
		return ast.CallCondition{Call: call}, nil
	}
}

func convertBetween(b *betweenGrammar) (ast.Condition, error) {
	val, err := convertMathExpr(&b.Val)
	if err != nil {
		return nil, err
	}
	lo, err := convertMathExpr(&b.Lo)
	if err != nil {
		return nil, err
	}
	hi, err := convertMathExpr(&b.Hi)
	if err != nil {
		return nil, err
	}
	return ast.Between{Val: val, Lo: lo, Hi: hi}, nil
}

// isNegatedOp reports whether the captured In/NotIn token text spells the
// negated form, covering both spellings ("<>" and "NOT IN").
func isNegatedOp(op string) bool {
	return strings.HasPrefix(op, "<") || strings.HasPrefix(op, "NOT")
}

func convertIn(in *inGrammar) (ast.Condition, error) {
	switch {
	case in.TextList != nil:
		g := in.TextList
		lhs, err := convertTextExpr(&g.Lhs)
		if err != nil {
			return nil, err
		}
		list := make([]ast.TextExpr, len(g.List))
		for i := range g.List {
			e, err := convertTextExpr(&g.List[i])
			if err != nil {
				return nil, err
			}
			list[i] = e
		}
		return ast.In{Form: ast.InTextList, TextLhs: lhs, TextList: list, Negated: isNegatedOp(g.Op)}, nil

	case in.NumList != nil:
		g := in.NumList
		lhs, err := convertMathExpr(&g.Lhs)
		if err != nil {
			return nil, err
		}
		list := make([]ast.MathExpr, len(g.List))
		for i := range g.List {
			e, err := convertMathExpr(&g.List[i])
			if err != nil {
				return nil, err
			}
			list[i] = e
		}
		return ast.In{Form: ast.InNumList, NumLhs: lhs, NumList: list, Negated: isNegatedOp(g.Op)}, nil

	default:
		g := in.IdentRhs
		lhs, err := convertTextExpr(&g.Lhs)
		if err != nil {
			return nil, err
		}
		return ast.In{Form: ast.InIdentifier, TextLhs: lhs, IdentRhs: convertIdentifier(g.Ident), Negated: isNegatedOp(g.Op)}, nil
	}
}

var relOps = map[string]ast.RelOp{
	"==": ast.OpEQ, "EQ": ast.OpEQ,
	"!=": ast.OpNE, "NE": ast.OpNE,
	"<": ast.OpLT, "LT": ast.OpLT,
	"<=": ast.OpLTE, "LTE": ast.OpLTE,
	">": ast.OpGT, "GT": ast.OpGT,
	">=": ast.OpGTE, "GTE": ast.OpGTE,
}

var textOps = map[string]ast.TextOp{
	"~": ast.OpLike, "LIKE": ast.OpLike,
	"~~": ast.OpILike, "ILIKE": ast.OpILike,
	"!~": ast.OpNotLike, "NOT LIKE": ast.OpNotLike,
	"!~~": ast.OpNotILike, "NOT ILIKE": ast.OpNotILike,
}

// normalizeOpText collapses the internal whitespace run the lexer's
// `\bNOT\s+LIKE\b`-style patterns allow (e.g. "NOT  LIKE") down to the
// single space textOps keys on, so the map lookup below isn't sensitive to
// how many spaces the source query used between NOT and LIKE/ILIKE.
func normalizeOpText(op string) string {
	return strings.Join(strings.Fields(op), " ")
}

func convertRelational(r *relCondGrammar) (ast.Condition, error) {
	switch {
	case r.MathRel != nil:
		lhs, err := convertMathExpr(&r.MathRel.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := convertMathExpr(&r.MathRel.Rhs)
		if err != nil {
			return nil, err
		}
		return ast.Relational{Lhs: lhs, Rhs: rhs, Op: relOps[r.MathRel.Op]}, nil
	case r.NullRel != nil:
		lhs, err := convertMathExpr(&r.NullRel.Lhs)
		if err != nil {
			return nil, err
		}
		return ast.NullCompare{Lhs: lhs, Negated: r.NullRel.Op == "!=" || r.NullRel.Op == "NE"}, nil
	case r.TextRel != nil:
		lhs, err := convertTextExpr(&r.TextRel.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := convertTextExpr(&r.TextRel.Rhs)
		if err != nil {
			return nil, err
		}
		op := ast.EqEQ
		if r.TextRel.Op == "!=" || r.TextRel.Op == "NE" {
			op = ast.EqNE
		}
		return ast.TextCompare{Lhs: lhs, Rhs: rhs, Op: op}, nil
	default:
		return reduceBoolChain(r.BoolRel)
	}
}

// reduceBoolChain turns a parsed boolExpr chain into the specific
// ast.Condition variant spec.md §3 enumerates: a bare literal becomes
// ast.BoolLit, a bare call becomes ast.CallCondition, a bare identifier
// becomes ast.BoolCondition, and exactly one ==/!= becomes ast.BoolCompare.
// A chain of more than one comparison (`a == b == c`) is not meaningfully
// defined by the spec; only the first comparison is kept.
func reduceBoolChain(chain *boolChainGrammar) (ast.Condition, error) {
	if len(chain.Rest) == 0 {
		return boolPrimaryToCondition(chain.First)
	}
	lhs, err := boolPrimaryToExpr(chain.First)
	if err != nil {
		return nil, err
	}
	rhs, err := boolPrimaryToExpr(chain.Rest[0].Primary)
	if err != nil {
		return nil, err
	}
	op := ast.EqEQ
	if chain.Rest[0].Op == "!=" || chain.Rest[0].Op == "NE" {
		op = ast.EqNE
	}
	return ast.BoolCompare{Lhs: lhs, Rhs: rhs, Op: op}, nil
}

func boolPrimaryToCondition(p *boolPrimaryGrammar) (ast.Condition, error) {
	switch {
	case p.Paren != nil:
		return reduceBoolChain(p.Paren)
	case p.Lit != nil:
		return ast.BoolLit{Value: strings.EqualFold(*p.Lit, "TRUE")}, nil
	case p.Call != nil:
		call, err := convertCall(p.Call)
		if err != nil {
			return nil, err
		}
		return ast.CallCondition{Call: call}, nil
	default:
		return ast.BoolCondition{Expr: ast.BoolIdent{Path: convertIdentifier(*p.Ident)}}, nil
	}
}

// boolPrimaryToExpr is used when a boolExpr operand is needed rather than a
// whole condition (both sides of a BoolCompare, or a parenthesized nested
// boolExpr). A nested comparison inside the parens is collapsed to its
// first operand, since ast.BoolExpr has no "compare" variant of its own.
func boolPrimaryToExpr(p *boolPrimaryGrammar) (ast.BoolExpr, error) {
	switch {
	case p.Paren != nil:
		return boolPrimaryToExpr(p.Paren.First)
	case p.Lit != nil:
		return ast.BoolLitExpr{Value: strings.EqualFold(*p.Lit, "TRUE")}, nil
	case p.Call != nil:
		call, err := convertCall(p.Call)
		if err != nil {
			return nil, err
		}
		return ast.BoolCall{Call: call}, nil
	default:
		return ast.BoolIdent{Path: convertIdentifier(*p.Ident)}, nil
	}
}

func convertTextMatch(t *textMatchGrammar) (ast.Condition, error) {
	lhs, err := convertTextExpr(&t.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := convertTextExpr(&t.Rhs)
	if err != nil {
		return nil, err
	}
	op, ok := textOps[normalizeOpText(t.Op)]
	if !ok {
		return nil, ParseError{Detail: fmt.Sprintf("unrecognized text-match operator %q", t.Op)}
	}
	return ast.TextMatch{Lhs: lhs, Rhs: rhs, Op: op}, nil
}

func convertTextExpr(t *TextExprGrammar) (ast.TextExpr, error) {
	switch {
	case t.Paren != nil:
		return convertTextExpr(t.Paren)
	case t.Null != nil:
		return ast.TextNullLit{}, nil
	case t.Str != nil:
		return ast.TextLit{Value: *t.Str}, nil
	case t.Call != nil:
		call, err := convertCall(t.Call)
		if err != nil {
			return nil, err
		}
		return ast.TextCall{Call: call}, nil
	default:
		return ast.TextIdent{Path: convertIdentifier(*t.Ident)}, nil
	}
}

var arithOps = map[string]ast.ArithOp{
	"+": ast.ArithAdd, "-": ast.ArithSub,
	"*": ast.ArithMul, "/": ast.ArithDiv, "%": ast.ArithMod,
}

func convertMathExpr(m *MathExprGrammar) (ast.MathExpr, error) {
	acc, err := convertMathTerm(m.First)
	if err != nil {
		return nil, err
	}
	for _, op := range m.Rest {
		rhs, err := convertMathTerm(op.Term)
		if err != nil {
			return nil, err
		}
		acc = ast.BinaryArith{Left: acc, Right: rhs, Op: arithOps[op.Op]}
	}
	return acc, nil
}

func convertMathTerm(t *mathTermGrammar) (ast.MathExpr, error) {
	acc, err := convertMathFactor(t.First)
	if err != nil {
		return nil, err
	}
	for _, op := range t.Rest {
		rhs, err := convertMathFactor(op.Factor)
		if err != nil {
			return nil, err
		}
		acc = ast.BinaryArith{Left: acc, Right: rhs, Op: arithOps[op.Op]}
	}
	return acc, nil
}

func convertMathFactor(f *mathFactorGrammar) (ast.MathExpr, error) {
	switch {
	case f.Paren != nil:
		return convertMathExpr(f.Paren)
	case f.Power != nil:
		return convertPower(f.Power), nil
	case f.Float != nil:
		return ast.FloatLit{Value: *f.Float}, nil
	case f.Int != nil:
		return ast.IntLit{Value: *f.Int}, nil
	case f.Call != nil:
		call, err := convertCall(f.Call)
		if err != nil {
			return nil, err
		}
		return ast.MathCall{Call: call}, nil
	default:
		return ast.MathIdent{Path: convertIdentifier(*f.Ident)}, nil
	}
}

func convertPower(p *powerGrammar) ast.MathExpr {
	var base, exp ast.MathExpr
	if p.BaseFloat != nil {
		base = ast.FloatLit{Value: *p.BaseFloat}
	} else {
		base = ast.IntLit{Value: *p.BaseInt}
	}
	if p.ExpFloat != nil {
		exp = ast.FloatLit{Value: *p.ExpFloat}
	} else {
		exp = ast.IntLit{Value: *p.ExpInt}
	}
	return ast.Power{Base: base, Exponent: exp}
}

func convertCall(c *callGrammar) (ast.Call, error) {
	args := make([]ast.Arg, len(c.Args))
	for i := range c.Args {
		a, err := convertArg(&c.Args[i])
		if err != nil {
			return ast.Call{}, err
		}
		args[i] = a
	}
	return ast.Call{Name: c.Name, Args: args}, nil
}

func convertArg(a *argGrammar) (ast.Arg, error) {
	switch {
	case a.Ident != nil:
		return ast.IdentArg{Path: convertIdentifier(*a.Ident)}, nil
	case a.Text != nil:
		e, err := convertTextExpr(a.Text)
		if err != nil {
			return nil, err
		}
		return ast.TextArg{Expr: e}, nil
	default:
		e, err := convertMathExpr(a.Math)
		if err != nil {
			return nil, err
		}
		return ast.MathArg{Expr: e}, nil
	}
}

func convertIdentifier(id IdentifierGrammar) ast.Identifier {
	segs := make([]ast.PathSegment, len(id.Segments))
	for i, s := range id.Segments {
		seg := ast.PathSegment{Name: s.Name}
		if s.Index != nil {
			if s.Index.Tag != nil {
				seg.Index = &ast.IndexStep{IsTag: true, Tag: strings.TrimPrefix(*s.Index.Tag, "@")}
			} else {
				seg.Index = &ast.IndexStep{Int: int(*s.Index.Int)}
			}
		}
		segs[i] = seg
	}
	return ast.Identifier{Segments: segs}
}
