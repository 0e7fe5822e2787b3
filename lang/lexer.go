package lang

import (
	"strings"
	"unicode/utf8"
)

// Tokenize converts src into a sequence of tokens. It never fails: characters
// that cannot start any lexeme become [KindUnknown] tokens carrying their
// text. The result always ends with exactly one [KindEOF] token.
func Tokenize(src string) []Token {
	l := &lexer{src: src, line: 1, col: 1}

	for !l.eof() {
		l.scan()
	}

	return append(l.tokens, Token{Kind: KindEOF, Pos: l.position()})
}

// lexer holds the scanner state.
type lexer struct {
	src    string
	off    int
	line   int
	col    int
	tokens []Token
}

func (l *lexer) scan() {
	start := l.position()
	r := l.advance()

	switch {
	case r == ' ' || r == '\t' || r == '\r':

	case r == '\n':
		l.emit(KindNewline, "\n", start)

	case r == '|':
		switch {
		case l.consume("||"):
			l.emit(KindTriplePipe, "|||", start)
		case l.consume("!!|"):
			l.emit(KindExclaimPipe, "|!!|", start)
		default:
			l.emit(KindPipe, "|", start)
		}

	case r == '~':
		if l.consume("!!") {
			l.emit(KindShellBridge, "~!!", start)
		} else {
			l.emit(KindTilde, "~", start)
		}

	case r == '.':
		// ".mf" without the trailing tilde is an ordinary dot; the
		// identifier "mf" is picked up by the next scan.
		switch {
		case l.consume("plx"):
			l.emit(KindPlxExt, ".plx", start)
		case l.consume("mf~"):
			l.emit(KwManifest, ".mf~", start)
		default:
			l.emit(KindDot, ".", start)
		}

	case r == '/':
		kind := KindSlash

		switch {
		case l.consume("//"):
			kind = KindDocComment
		case l.consume("/"):
			kind = KindComment
		}

		if kind != KindSlash {
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}
		}

		l.emit(kind, l.src[start.Offset:l.off], start)

	case r == '╰':
		if l.consume("──➤") {
			l.emit(KindTreeDown, TreeDown, start)
		} else {
			l.emit(KindUnknown, "╰", start)
		}

	case r == '"' || r == '\'':
		l.scanString(r, start)

	case isDigit(r):
		for isDigit(l.peek()) || l.peek() == '.' {
			l.advance()
		}

		l.emit(KindNumber, l.src[start.Offset:l.off], start)

	case isIdentStart(r):
		for isIdentContinue(l.peek()) {
			l.advance()
		}

		text := l.src[start.Offset:l.off]

		kind, ok := LookupKeyword(text)
		if !ok {
			kind = KindIdent
		}

		l.emit(kind, text, start)

	default:
		kind, ok := punctuation[r]
		if !ok {
			kind = KindUnknown
		}

		l.emit(kind, l.src[start.Offset:l.off], start)
	}
}

// scanString scans the body of a string opened by quote. The body may span
// lines. Reaching the end of input first yields an unknown token carrying
// whatever was scanned.
func (l *lexer) scanString(quote rune, start Position) {
	body := l.off

	for !l.eof() && l.peek() != quote {
		l.advance()
	}

	if l.eof() {
		l.emit(KindUnknown, l.src[body:l.off], start)

		return
	}

	text := l.src[body:l.off]
	l.advance()
	l.emit(KindString, text, start)
}

func (l *lexer) emit(kind Kind, text string, pos Position) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Pos: pos})
}

func (l *lexer) eof() bool { return l.off >= len(l.src) }

// peek returns the next rune without consuming it, or 0 at end of input.
func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.off:])

	return r
}

// advance consumes one rune. Invalid UTF-8 is consumed one byte at a time.
func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

// consume advances past s if the remaining input starts with it.
func (l *lexer) consume(s string) bool {
	if !strings.HasPrefix(l.src[l.off:], s) {
		return false
	}

	for range s {
		l.advance()
	}

	return true
}

func (l *lexer) position() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.off}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentContinue(r rune) bool {
	switch r {
	case '_', '-', '~', '!', '$':
		return true
	}

	return isIdentStart(r) || isDigit(r)
}
