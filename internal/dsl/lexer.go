package dsl

import "github.com/alecthomas/participle/v2/lexer"

// objqlLexer tokenizes ObjectQL source text (spec.md §4.1). Each operator
// gets its own named token type whose pattern matches BOTH the symbolic
// and the alphabetic spelling, the same trick the teacher's sibling
// holomush-holomush DSL uses for its comparator tokens (OpEq, OpNe, ...
// internal/access/policy/dsl/ast.go) — the grammar then captures the
// matched text and convert.go maps it to an ast.RelOp/ast.TextOp/etc.
// without caring which spelling was used.
//
// Order matters: longer symbolic spellings that share a prefix with a
// shorter one must come first, exactly as holomush-holomush's lexer
// comment says ("longer patterns must come before shorter ones that share
// a prefix"). The conflicts here are:
//
//	">=<" (Between) and ">+<" (In) before ">=" (Gte) before ">" (Gt)
//	"<>"  (NotIn)                  before "<=" (Lte) before "<" (Lt)
//	"!~~" (NotILike)               before "!~" (NotLike) and "!=" (Ne)
//	"~~"  (ILike)                  before "~" (Like)
//
// The "NOT IN" / "NOT LIKE" / "NOT ILIKE" alphabetic spellings embed a
// space; they are matched as a single token via `\s+` between the two
// words so "NOT" is never lexed as a standalone identifier. They must
// precede the bare Ident rule, which they do by virtue of Ident being
// listed last among the word-forming rules.
var objqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'[A-Za-z0-9 .+()/%#\\@]*'|"[A-Za-z0-9 .+()/%#\\@]*"`},

	{Name: "Between", Pattern: `>=<|\bBETWEEN\b`},
	{Name: "In", Pattern: `>\+<|\bIN\b`},
	{Name: "NotIn", Pattern: `<>|\bNOT\s+IN\b`},
	{Name: "NotILike", Pattern: `!~~|\bNOT\s+ILIKE\b`},
	{Name: "NotLike", Pattern: `!~|\bNOT\s+LIKE\b`},
	{Name: "Ne", Pattern: `!=|\bNE\b`},
	{Name: "ILike", Pattern: `~~|\bILIKE\b`},
	{Name: "Like", Pattern: `~|\bLIKE\b`},
	{Name: "Eq", Pattern: `==|\bEQ\b`},
	{Name: "Lte", Pattern: `<=|\bLTE\b`},
	{Name: "Gte", Pattern: `>=|\bGTE\b`},
	{Name: "Lt", Pattern: `<|\bLT\b`},
	{Name: "Gt", Pattern: `>|\bGT\b`},

	{Name: "And", Pattern: `(?i)\bAND\b`},
	{Name: "Or", Pattern: `(?i)\bOR\b`},
	{Name: "True", Pattern: `(?i)\bTRUE\b`},
	{Name: "False", Pattern: `(?i)\bFALSE\b`},
	{Name: "Null", Pattern: `(?i)\bNULL\b`},

	{Name: "Float", Pattern: `[0-9]+\.[0-9]+`},
	{Name: "Int", Pattern: `[0-9]+`},

	{Name: "InstanceTag", Pattern: `@[A-Za-z]+`},
	{Name: "Ident", Pattern: `\$?[A-Za-z_][A-Za-z0-9_]*`},

	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Caret", Pattern: `\^`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Percent", Pattern: `%`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},

	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
