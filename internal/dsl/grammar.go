package dsl

import (
	"github.com/alecthomas/participle/v2"
)

// The grammar types below mirror spec.md §6.1 almost one-for-one, with two
// mechanical transforms participle (a PEG parser, no left recursion)
// forces on any left-recursive grammar:
//
//  1. `predication := predication AND predication | predication OR predication
//     | condition` becomes a flat "first term, then zero or more (op, term)
//     pairs" chain (predicationGrammar.Rest). convert.go folds the chain
//     left to right, which is what gives AND/OR their documented equal,
//     left-associative precedence (SPEC_FULL.md §6) — a deliberately flatter
//     reading than the usual "AND binds tighter than OR".
//  2. `mathExpr := mathExpr aritOp mathExpr | ...` becomes the conventional
//     term/factor precedence layering (mathTerm for +/-, mathFactor for
//     */%) seen throughout the example pack's recursive-descent grammars.
//
// Several declared alternatives below are unreachable in practice because
// an earlier alternative already accepts the same input (e.g. Condition's
// BoolLit and Call fields are shadowed by Relational's boolExpr arm, which
// accepts a bare literal or call too). This mirrors spec.md §6.1's own
// grammar, which lists bool/call as separate condition productions even
// though relCond's boolExpr branch already covers them; convert.go is what
// gives a bare literal or call its own ast.BoolLit/ast.CallCondition node,
// so the AST-level distinction the spec asks for survives even though the
// grammar-level alternative is never what fires.
var objqlParser = participle.MustBuild[queryGrammar](
	participle.Lexer(objqlLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(participle.MaxLookahead),
)

type queryGrammar struct {
	Predication *predicationGrammar `parser:"@@"`
}

type predicationGrammar struct {
	First *termGrammar     `parser:"@@"`
	Rest  []*opTermGrammar `parser:"@@*"`
}

type opTermGrammar struct {
	Op   string       `parser:"@(And|Or)"`
	Term *termGrammar `parser:"@@"`
}

type termGrammar struct {
	Paren     *predicationGrammar `parser:"  LParen @@ RParen"`
	Condition *conditionGrammar   `parser:"| @@"`
}

// conditionGrammar's field order follows spec.md §6.1's
// `between | inCond | relCond | textMatch | bool | call`.
type conditionGrammar struct {
	Between    *betweenGrammar   `parser:"  @@"`
	In         *inGrammar        `parser:"| @@"`
	Relational *relCondGrammar   `parser:"| @@"`
	TextMatch  *textMatchGrammar `parser:"| @@"`
	BoolLit    *string           `parser:"| @(True|False)"`
	Call       *callGrammar      `parser:"| @@"`
}

type betweenGrammar struct {
	Val MathExprGrammar `parser:"@@ Between LBracket"`
	Lo  MathExprGrammar `parser:"@@ Comma"`
	Hi  MathExprGrammar `parser:"@@ RBracket"`
}

// inGrammar covers all three spec.md surface forms:
//
//	textExpr (NOT)? IN '[' textExpr (',' textExpr)* ']'
//	mathExpr (NOT)? IN '[' mathExpr (',' mathExpr)* ']'
//	textExpr (NOT)? IN identifier
type inGrammar struct {
	TextList *textInListGrammar  `parser:"  @@"`
	NumList  *numInListGrammar   `parser:"| @@"`
	IdentRhs *textInIdentGrammar `parser:"| @@"`
}

type textInListGrammar struct {
	Lhs  TextExprGrammar   `parser:"@@"`
	Op   string            `parser:"@(In|NotIn)"`
	List []TextExprGrammar `parser:"LBracket @@ (Comma @@)* RBracket"`
}

type numInListGrammar struct {
	Lhs  MathExprGrammar   `parser:"@@"`
	Op   string            `parser:"@(In|NotIn)"`
	List []MathExprGrammar `parser:"LBracket @@ (Comma @@)* RBracket"`
}

type textInIdentGrammar struct {
	Lhs   TextExprGrammar   `parser:"@@"`
	Op    string            `parser:"@(In|NotIn)"`
	Ident IdentifierGrammar `parser:"@@"`
}

// relCondGrammar adds two alternatives beyond spec.md §6.1's literal
// `mathExpr relOp mathExpr | boolExpr`:
//
//   - NullRel covers `mathExpr (==|!=) NULL`, which neither mathExpr nor
//     boolExpr's own alternatives can reach since NULL is only a primary
//     within textExpr. Needed for queries like `replace(missing, 'a', 'b')
//     == null` (spec.md §8 scenario 6).
//   - TextRel covers `textExpr (==|!=) textExpr`, which neither mathExpr
//     (no String primary) nor boolExpr (no String primary) can reach
//     either. Needed for string-literal equality like `city == 'Springfield'`
//     (spec.md §8 scenarios 8-9).
//
// Participle's backtracking lookahead tries MathRel first, then NullRel,
// then TextRel, falling through each time the right-hand side doesn't
// match that alternative's operand grammar (a literal NULL for NullRel, a
// String/quoted operand for TextRel).
type relCondGrammar struct {
	MathRel *mathRelGrammar   `parser:"  @@"`
	NullRel *nullRelGrammar   `parser:"| @@"`
	TextRel *textRelGrammar   `parser:"| @@"`
	BoolRel *boolChainGrammar `parser:"| @@"`
}

type nullRelGrammar struct {
	Lhs MathExprGrammar `parser:"@@"`
	Op  string          `parser:"@(Eq|Ne) Null"`
}

type textRelGrammar struct {
	Lhs TextExprGrammar `parser:"@@"`
	Op  string          `parser:"@(Eq|Ne)"`
	Rhs TextExprGrammar `parser:"@@"`
}

type mathRelGrammar struct {
	Lhs MathExprGrammar `parser:"@@"`
	Op  string          `parser:"@(Eq|Ne|Lt|Lte|Gt|Gte)"`
	Rhs MathExprGrammar `parser:"@@"`
}

type textMatchGrammar struct {
	Lhs TextExprGrammar `parser:"@@"`
	Op  string          `parser:"@(Like|ILike|NotLike|NotILike)"`
	Rhs TextExprGrammar `parser:"@@"`
}

// --- textExpr ---

type TextExprGrammar struct {
	Paren *TextExprGrammar   `parser:"  LParen @@ RParen"`
	Null  *string            `parser:"| @Null"`
	Str   *string            `parser:"| @String"`
	Call  *callGrammar       `parser:"| @@"`
	Ident *IdentifierGrammar `parser:"| @@"`
}

// --- boolExpr, flattened into a left-associative ==/!= chain ---

type boolChainGrammar struct {
	First *boolPrimaryGrammar `parser:"@@"`
	Rest  []*boolOpGrammar    `parser:"@@*"`
}

type boolOpGrammar struct {
	Op      string              `parser:"@(Eq|Ne)"`
	Primary *boolPrimaryGrammar `parser:"@@"`
}

type boolPrimaryGrammar struct {
	Paren *boolChainGrammar  `parser:"  LParen @@ RParen"`
	Lit   *string            `parser:"| @(True|False)"`
	Call  *callGrammar       `parser:"| @@"`
	Ident *IdentifierGrammar `parser:"| @@"`
}

// --- mathExpr, layered into term (+/-) over factor (* / %) over power/atom ---

type MathExprGrammar struct {
	First *mathTermGrammar    `parser:"@@"`
	Rest  []*mathAddOpGrammar `parser:"@@*"`
}

type mathAddOpGrammar struct {
	Op   string           `parser:"@(Plus|Minus)"`
	Term *mathTermGrammar `parser:"@@"`
}

type mathTermGrammar struct {
	First *mathFactorGrammar  `parser:"@@"`
	Rest  []*mathMulOpGrammar `parser:"@@*"`
}

type mathMulOpGrammar struct {
	Op     string             `parser:"@(Star|Slash|Percent)"`
	Factor *mathFactorGrammar `parser:"@@"`
}

type mathFactorGrammar struct {
	Paren *MathExprGrammar   `parser:"  LParen @@ RParen"`
	Power *powerGrammar      `parser:"| @@"`
	Float *float64           `parser:"| @Float"`
	Int   *int64             `parser:"| @Int"`
	Call  *callGrammar       `parser:"| @@"`
	Ident *IdentifierGrammar `parser:"| @@"`
}

// powerGrammar implements the dedicated, non-chaining base^exponent form
// (spec.md §4.2): both operands are numeric literals, never a nested
// expression, so "no chaining, no mixing without parentheses" falls out of
// the grammar shape rather than needing a runtime check.
type powerGrammar struct {
	BaseFloat *float64 `parser:"(  @Float"`
	BaseInt   *int64   `parser:"  | @Int ) Caret"`
	ExpFloat  *float64 `parser:"(  @Float"`
	ExpInt    *int64   `parser:"  | @Int )"`
}

// --- call, arg, identifier ---

type callGrammar struct {
	Name string       `parser:"@Ident LParen"`
	Args []argGrammar `parser:"(@@ (Comma @@)*)? RParen"`
}

// argGrammar tries a bare identifier first so that a plain path argument
// resolves to its raw Value rather than being coerced through text or
// math evaluation rules (spec.md §3's arg := identifier | textExpr |
// mathExpr, in that order). Participle's backtracking lookahead retries
// the later alternatives when an identifier alone doesn't consume the
// whole argument, e.g. `f(a + 1)`.
type argGrammar struct {
	Ident *IdentifierGrammar `parser:"  @@"`
	Text  *TextExprGrammar   `parser:"| @@"`
	Math  *MathExprGrammar   `parser:"| @@"`
}

type indexStepGrammar struct {
	Int *int64  `parser:"LBracket (  @Int"`
	Tag *string `parser:"          | @InstanceTag )RBracket"`
}

type pathSegmentGrammar struct {
	Name  string            `parser:"@Ident"`
	Index *indexStepGrammar `parser:"@@?"`
}

type IdentifierGrammar struct {
	Segments []pathSegmentGrammar `parser:"@@ (Dot @@)*"`
}

// parseGrammar builds the participle AST for src, or returns a
// *participle.Error / *participle.UnexpectedTokenError describing the
// failure, which enrichSyntaxError (errors.go) turns into a ParseError.
func parseGrammar(src string) (*queryGrammar, error) {
	return objqlParser.ParseString("", src)
}
