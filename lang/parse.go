package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/plx/log"
)

// DefaultMaxDepth is the default maximum statement nesting depth.
const DefaultMaxDepth = 100

// Option configures the parser.
type Option func(*parser)

// WithMaxDepth bounds statement nesting. A statement nested deeper than depth
// aborts the parse with an invalid syntax error. Zero or less disables the
// bound.
func WithMaxDepth(depth int) Option {
	return func(p *parser) { p.maxDepth = depth }
}

// WithLogger sets the logger that receives parser trace records.
func WithLogger(logger log.Logger) Option {
	return func(p *parser) { p.logger = logger }
}

func withContext(ctx context.Context) Option {
	return func(p *parser) { p.ctx = ctx }
}

// Result holds the output of each pipeline stage for one source.
type Result struct {
	Tokens []Token
	File   *File
	Errors []*ParserError
}

// Err joins the parser errors, or returns nil if there are none.
func (r Result) Err() error {
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}

	return errors.Join(errs...)
}

// ParseString tokenizes and parses s.
func ParseString(ctx context.Context, s string, opts ...Option) Result {
	tokens := Tokenize(s)
	file, errs := Parse(tokens, append([]Option{withContext(ctx)}, opts...)...)

	return Result{Tokens: tokens, File: file, Errors: errs}
}

// ParseReader reads all of r and parses it.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (Result, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return Result{}, ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...), nil
}

// Parse builds a syntax tree from tokens.
//
// Nesting is carried by descend markers (╰──➤) at the start of a line rather
// than by indentation: a statement's children are the following lines that
// start with exactly one more marker than the statement's own line. Unknown
// leading tokens are skipped silently, so most malformed input yields fewer
// statements rather than errors. If parsing is aborted, the returned file is
// nil and the error list holds the cause.
func Parse(tokens []Token, opts ...Option) (file *File, errs []*ParserError) {
	p := &parser{
		ctx:      context.TODO(),
		tokens:   tokens,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*ParserError)
			if !ok {
				panic(r)
			}

			p.logger.TraceContext(p.ctx, "parse aborted", slog.Any("error", perr))
			file, errs = nil, append(p.errs, perr)
		}
	}()

	file = &File{Pos: p.peek().Pos}
	file.Statements = p.parseFile()

	p.logger.TraceContext(p.ctx, "parse complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("statements", len(file.Statements)),
		slog.Int("errors", len(p.errs)))

	return file, p.errs
}

// parser holds the parser state.
type parser struct {
	ctx      context.Context
	tokens   []Token
	pos      int
	maxDepth int
	errs     []*ParserError
	logger   log.Logger
}

// parseFile parses root-level statements. A line that starts deeper than the
// root with no parent to own it is parsed as a detached statement: each of
// its descend markers raises the working level by one.
func (p *parser) parseFile() []*Statement {
	var stmts []*Statement

	for {
		stmts = append(stmts, p.parseStatements(0)...)

		if p.eof() {
			return stmts
		}

		level := 0
		for p.at(KindTreeDown) {
			p.advance()
			level++
		}

		p.logger.TraceContext(p.ctx, "detached statement",
			slog.Any("position", p.peek().Pos),
			slog.Int("indent", level))

		if s := p.parseStatement(level); s != nil {
			stmts = append(stmts, s)
		}
	}
}

// parseStatements parses consecutive statements whose lines start with
// exactly level descend markers. It returns at end of input or at the first
// line with any other number of markers.
func (p *parser) parseStatements(level int) []*Statement {
	var stmts []*Statement

	for {
		p.skipNewlines()

		if p.eof() || p.depth() != level {
			return stmts
		}

		p.pos += level

		if s := p.parseStatement(level); s != nil {
			stmts = append(stmts, s)
		}
	}
}

// parseStatement parses one statement at the current position, skipping
// leading tokens that cannot start one. It returns nil if the line holds no
// statement.
func (p *parser) parseStatement(level int) *Statement {
	if p.maxDepth > 0 && level > p.maxDepth {
		panic(NewInvalidSyntaxError(
			"at most "+strconv.Itoa(p.maxDepth)+" nesting levels",
			strconv.Itoa(level),
			p.peek().Pos,
		))
	}

	for {
		t := p.peek()

		switch {
		case t.Kind.IsCommand():
			return p.parseCommand(level)

		case t.Kind.isBridge():
			return p.parseShell(level)

		case p.atLineEnd():
			return nil

		default:
			p.logger.TraceContext(p.ctx, "skip token", slog.String("token", t.String()))
			p.advance()
		}
	}
}

// parseCommand parses: Command (Param | Pipe)* [Bridge] Children.
func (p *parser) parseCommand(level int) *Statement {
	cmd := p.advance()
	s := &Statement{Command: cmd.Text, Indent: level, Pos: cmd.Pos}

	for !p.atLineEnd() {
		t := p.peek()

		switch {
		case t.Kind == KindPipe || t.Kind == KindTriplePipe || t.Kind == KindExclaimPipe:
			p.advance()

		case t.Kind.isBridge():
			s.Bridge, s.HasBridge = p.captureBridge(), true

		default:
			if param := p.parseParam(); param != nil {
				s.Params = append(s.Params, param)
			} else {
				p.advance()
			}
		}
	}

	p.logger.TraceContext(p.ctx, "statement",
		slog.String("command", s.Command),
		slog.Int("params", len(s.Params)),
		slog.Int("indent", level))

	s.Children = p.parseStatements(level + 1)

	return s
}

// parseShell parses a line introduced by a shell bridge or a comment.
func (p *parser) parseShell(level int) *Statement {
	s := &Statement{
		Command:   ShellCommand,
		Indent:    level,
		Pos:       p.peek().Pos,
		HasBridge: true,
	}
	s.Bridge = p.captureBridge()
	s.Children = p.parseStatements(level + 1)

	return s
}

// captureBridge consumes a bridge or comment token and returns the text it
// hands off: the rest of the line for a bridge, the body for a comment.
// Tokens after a bridge are re-joined with single spaces.
func (p *parser) captureBridge() string {
	t := p.advance()
	if t.Kind != KindShellBridge {
		return commentBody(t.Text)
	}

	var parts []string

	for !p.eof() && !p.at(KindNewline) {
		parts = append(parts, p.advance().Text)
	}

	return strings.Join(parts, " ")
}

func commentBody(text string) string {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, "/")

	return strings.TrimSpace(text)
}

// parseParam parses, in priority order: a list, a reference, a key: value
// pair, or a bare literal. It returns nil without consuming anything if the
// current token starts none of these.
func (p *parser) parseParam() *Param {
	t := p.peek()

	switch {
	case t.Kind == KindLBracket:
		return &Param{Value: p.parseList(), Pos: t.Pos}

	case t.Kind == KindAt:
		return &Param{Value: p.parseReference(), Pos: t.Pos}

	case (t.Kind == KindIdent || t.Kind.IsKeyword()) && p.peekAt(1).Kind == KindColon:
		p.advance()
		p.advance()

		return &Param{Key: t.Text, Value: p.parseValue(), Pos: t.Pos}

	case t.Kind.isLiteral():
		return &Param{Value: p.parseLiteral(), Pos: t.Pos}
	}

	return nil
}

// parseValue parses the value of a key: value pair. A missing value is an
// empty string.
func (p *parser) parseValue() Value {
	t := p.peek()

	switch {
	case t.Kind == KindLBracket:
		return p.parseList()
	case t.Kind == KindAt:
		return p.parseReference()
	case t.Kind.isLiteral():
		return p.parseLiteral()
	}

	return &String{Pos: t.Pos}
}

// parseList parses '[' Item (',' Item)* ']'. Lists do not nest: a nested
// bracket group is dropped whole and the outer list continues after it.
// Other items that are neither references nor literals are skipped. A list
// left open at the end of the line is kept and reported.
func (p *parser) parseList() *List {
	open := p.advance()
	l := &List{Pos: open.Pos}

	for {
		t := p.peek()

		switch {
		case t.Kind == KindRBracket:
			p.advance()

			return l

		case p.atLineEnd():
			p.errs = append(p.errs, NewInvalidSyntaxError("]", t.Kind.String(), t.Pos))

			return l

		case t.Kind == KindAt:
			l.Items = append(l.Items, p.parseReference())

		case t.Kind.isLiteral():
			l.Items = append(l.Items, p.parseLiteral())

		case t.Kind == KindLBracket:
			p.skipGroup()

		default:
			p.advance()
		}
	}
}

// skipGroup consumes a bracket group starting at '[' through its matching
// ']', stopping early at the end of the line.
func (p *parser) skipGroup() {
	depth := 0

	for !p.atLineEnd() {
		switch p.advance().Kind {
		case KindLBracket:
			depth++
		case KindRBracket:
			depth--
		}

		if depth == 0 {
			return
		}
	}
}

// parseReference parses '@' followed by an unbroken run of dots,
// identifiers, and keywords. Whitespace ends the path.
func (p *parser) parseReference() *Reference {
	at := p.advance()
	end := at.Pos.Offset + len(at.Text)

	var path strings.Builder

	path.WriteString("@")

	for {
		t := p.peek()
		if t.Kind != KindDot && t.Kind != KindIdent && !t.Kind.IsKeyword() {
			break
		}

		if t.Pos.Offset != end {
			break
		}

		path.WriteString(p.advance().Text)
		end = t.Pos.Offset + len(t.Text)
	}

	return &Reference{Path: path.String(), Pos: at.Pos}
}

func (p *parser) parseLiteral() Value {
	t := p.advance()

	switch t.Kind {
	case KindString:
		return &String{Text: t.Text, Quoted: true, Pos: t.Pos}
	case KindNumber:
		return &Number{Value: parseNumber(t.Text), Text: t.Text, Pos: t.Pos}
	default:
		return &String{Text: t.Text, Pos: t.Pos}
	}
}

// parseNumber reads the leading digits[.digits] run of s; "1.2.3" is 1.2.
func parseNumber(s string) float64 {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		if j := strings.IndexByte(s[i+1:], '.'); j >= 0 {
			s = s[:i+1+j]
		}
	}

	f, _ := strconv.ParseFloat(s, 64)

	return f
}

// depth counts the consecutive descend markers at the current position.
func (p *parser) depth() int {
	n := 0
	for p.peekAt(n).Kind == KindTreeDown {
		n++
	}

	return n
}

func (p *parser) skipNewlines() {
	for p.at(KindNewline) {
		p.advance()
	}
}

// atLineEnd reports whether the current token ends a statement's line.
func (p *parser) atLineEnd() bool {
	return p.eof() || p.at(KindNewline) || p.at(KindTreeDown)
}

func (p *parser) at(kind Kind) bool { return p.peek().Kind == kind }

func (p *parser) eof() bool { return p.at(KindEOF) }

func (p *parser) peek() Token { return p.peekAt(0) }

// peekAt returns the token n positions ahead. Past the end of input it
// returns an EOF token positioned after the last token.
func (p *parser) peekAt(n int) Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}

	if len(p.tokens) == 0 {
		return Token{Kind: KindEOF, Pos: Position{Line: 1, Column: 1}}
	}

	return Token{Kind: KindEOF, Pos: p.tokens[len(p.tokens)-1].Pos}
}

func (p *parser) advance() Token {
	t := p.peek()
	if p.pos < len(p.tokens) && t.Kind != KindEOF {
		p.pos++
	}

	return t
}
