package lang

import (
	"log/slog"
	"strconv"
)

// Position locates a token or node in the source text.
// Line and Column are 1-based; Offset is the 0-based byte offset.
type Position struct {
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
	Offset int `json:"offset" yaml:"offset"`
}

// String returns the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// LogValue implements slog.LogValuer.
func (p Position) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
		slog.Int("offset", p.Offset),
	)
}

// Token is a single lexeme. For strings, Text holds the unquoted content.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// String returns the token as KIND("text"), or just KIND for tokens whose
// text is fixed by their kind.
func (t Token) String() string {
	switch t.Kind {
	case KindEOF, KindNewline:
		return t.Kind.String()
	}

	return t.Kind.String() + "(" + strconv.Quote(t.Text) + ")"
}

// Kind identifies the lexical category of a token.
type Kind int

// Structural, literal, and marker kinds. Keyword kinds follow in keyword.go.
const (
	KindUnknown Kind = iota
	KindEOF
	KindNewline

	KindString
	KindNumber
	KindIdent

	KindPipe        // |
	KindTriplePipe  // |||
	KindExclaimPipe // |!!|
	KindLBracket    // [
	KindRBracket    // ]
	KindLParen      // (
	KindRParen      // )
	KindLBrace      // {
	KindRBrace      // }
	KindLAngle      // <
	KindRAngle      // >
	KindColon       // :
	KindEquals      // =
	KindComma       // ,
	KindDollar      // $
	KindAt          // @
	KindDot         // .
	KindSlash       // /
	KindTilde       // ~
	KindBang        // !

	KindShellBridge // ~!!
	KindTreeDown    // ╰──➤
	KindComment     // //
	KindDocComment  // ///
	KindPlxExt      // .plx

	keywordStart
)

// TreeDown is the glyph sequence that introduces one level of nesting.
const TreeDown = "╰──➤"

var kindName = map[Kind]string{
	KindUnknown:     "UNKNOWN",
	KindEOF:         "EOF",
	KindNewline:     "NEWLINE",
	KindString:      "STRING",
	KindNumber:      "NUMBER",
	KindIdent:       "IDENTIFIER",
	KindPipe:        "PIPE",
	KindTriplePipe:  "TRIPLE_PIPE",
	KindExclaimPipe: "EXCLAIM_PIPE",
	KindLBracket:    "BRACKET_OPEN",
	KindRBracket:    "BRACKET_CLOSE",
	KindLParen:      "PAREN_OPEN",
	KindRParen:      "PAREN_CLOSE",
	KindLBrace:      "BRACE_OPEN",
	KindRBrace:      "BRACE_CLOSE",
	KindLAngle:      "ANGLE_OPEN",
	KindRAngle:      "ANGLE_CLOSE",
	KindColon:       "COLON",
	KindEquals:      "EQUALS",
	KindComma:       "COMMA",
	KindDollar:      "DOLLAR",
	KindAt:          "AT",
	KindDot:         "DOT",
	KindSlash:       "SLASH",
	KindTilde:       "TILDE",
	KindBang:        "BANG",
	KindShellBridge: "SHELL_BRIDGE",
	KindTreeDown:    "TREE_DOWN",
	KindComment:     "COMMENT",
	KindDocComment:  "DOC_COMMENT",
	KindPlxExt:      "PLX_EXT",
}

var punctuation = map[rune]Kind{
	'[': KindLBracket,
	']': KindRBracket,
	'(': KindLParen,
	')': KindRParen,
	'{': KindLBrace,
	'}': KindRBrace,
	'<': KindLAngle,
	'>': KindRAngle,
	':': KindColon,
	'=': KindEquals,
	',': KindComma,
	'$': KindDollar,
	'@': KindAt,
	'!': KindBang,
}

// String returns the upper-case name of the kind.
func (k Kind) String() string {
	if s, ok := kindName[k]; ok {
		return s
	}

	if kw, ok := keywordOf(k); ok {
		return kw.name
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsKeyword reports whether k is one of the keyword kinds.
func (k Kind) IsKeyword() bool {
	_, ok := keywordOf(k)

	return ok
}

// IsCommand reports whether k is a keyword that may start a statement.
func (k Kind) IsCommand() bool {
	kw, ok := keywordOf(k)

	return ok && kw.command
}

// Spelling returns the exact source spelling of a keyword kind, or the empty
// string for any other kind.
func (k Kind) Spelling() string {
	if kw, ok := keywordOf(k); ok {
		return kw.spelling
	}

	return ""
}

// isLiteral reports whether a token of kind k can stand alone as a parameter
// value: a string, number, identifier, or any keyword.
func (k Kind) isLiteral() bool {
	switch k {
	case KindString, KindNumber, KindIdent:
		return true
	}

	return k.IsKeyword()
}

// isBridge reports whether k hands the rest of the line to verbatim capture.
func (k Kind) isBridge() bool {
	return k == KindShellBridge || k == KindComment || k == KindDocComment
}
