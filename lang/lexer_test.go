package lang

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// lexeme is a token without its position.
type lexeme struct {
	Kind Kind
	Text string
}

func lexemes(tokens []Token) []lexeme {
	out := make([]lexeme, len(tokens))
	for i, t := range tokens {
		out[i] = lexeme{t.Kind, t.Text}
	}

	return out
}

func TestTokenize(t *testing.T) {
	eof := lexeme{KindEOF, ""}
	nl := lexeme{KindNewline, "\n"}

	tests := []struct {
		name  string
		input string
		want  []lexeme
	}{
		{
			name:  "empty",
			input: "",
			want:  []lexeme{eof},
		},
		{
			name:  "command with identifier",
			input: "call~ test",
			want:  []lexeme{{KwCall, "call~"}, {KindIdent, "test"}, eof},
		},
		{
			name:  "case sensitive keywords",
			input: "Store~ store~ Build~ build~ Build~!!",
			want: []lexeme{
				{KwStoreCap, "Store~"}, {KwStore, "store~"},
				{KwBuildCap, "Build~"}, {KwBuild, "build~"}, {KwBuildBang, "Build~!!"},
				eof,
			},
		},
		{
			name:  "identifier with keyword prefix",
			input: "call~x sniff!~!!",
			want:  []lexeme{{KindIdent, "call~x"}, {KwSniffBang, "sniff!~!!"}, eof},
		},
		{
			name:  "pipes",
			input: "| ||| |!!| ||",
			want: []lexeme{
				{KindPipe, "|"}, {KindTriplePipe, "|||"}, {KindExclaimPipe, "|!!|"},
				{KindPipe, "|"}, {KindPipe, "|"},
				eof,
			},
		},
		{
			name:  "tilde and shell bridge",
			input: "~ ~!! ~!",
			want: []lexeme{
				{KindTilde, "~"}, {KindShellBridge, "~!!"},
				{KindTilde, "~"}, {KindBang, "!"},
				eof,
			},
		},
		{
			name:  "dot forms",
			input: ".plx .mf~ .mf .x",
			want: []lexeme{
				{KindPlxExt, ".plx"}, {KwManifest, ".mf~"},
				{KindDot, "."}, {KindIdent, "mf"},
				{KindDot, "."}, {KindIdent, "x"},
				eof,
			},
		},
		{
			name:  "comments consume the line",
			input: "// note | x\n/// doc\n/",
			want: []lexeme{
				{KindComment, "// note | x"}, nl,
				{KindDocComment, "/// doc"}, nl,
				{KindSlash, "/"},
				eof,
			},
		},
		{
			name:  "tree descend",
			input: "╰──➤ ID~",
			want:  []lexeme{{KindTreeDown, TreeDown}, {KwID, "ID~"}, eof},
		},
		{
			name:  "partial tree descend",
			input: "╰─➤",
			want:  []lexeme{{KindUnknown, "╰"}, {KindUnknown, "─"}, {KindUnknown, "➤"}, eof},
		},
		{
			name:  "strings",
			input: `"Test Panel" 'single'`,
			want:  []lexeme{{KindString, "Test Panel"}, {KindString, "single"}, eof},
		},
		{
			name:  "multi-line string",
			input: "\"a\nb\" x",
			want:  []lexeme{{KindString, "a\nb"}, {KindIdent, "x"}, eof},
		},
		{
			name:  "unterminated string",
			input: `show~ "open`,
			want:  []lexeme{{KwShow, "show~"}, {KindUnknown, "open"}, eof},
		},
		{
			name:  "numbers",
			input: "3 1.5 1.2.3",
			want:  []lexeme{{KindNumber, "3"}, {KindNumber, "1.5"}, {KindNumber, "1.2.3"}, eof},
		},
		{
			name:  "punctuation",
			input: "[](){}<>:=,$@",
			want: []lexeme{
				{KindLBracket, "["}, {KindRBracket, "]"},
				{KindLParen, "("}, {KindRParen, ")"},
				{KindLBrace, "{"}, {KindRBrace, "}"},
				{KindLAngle, "<"}, {KindRAngle, ">"},
				{KindColon, ":"}, {KindEquals, "="}, {KindComma, ","},
				{KindDollar, "$"}, {KindAt, "@"},
				eof,
			},
		},
		{
			name:  "unknown characters are kept",
			input: "#%é",
			want:  []lexeme{{KindUnknown, "#"}, {KindUnknown, "%"}, {KindUnknown, "é"}, eof},
		},
		{
			name:  "whitespace is discarded",
			input: " \t\r\n",
			want:  []lexeme{nl, eof},
		},
		{
			name:  "word keywords",
			input: "ALL LIVE sensors target FORCED!! Link_$",
			want: []lexeme{
				{KwAll, "ALL"}, {KwLive, "LIVE"}, {KwSensors, "sensors"},
				{KwTarget, "target"}, {KwForced, "FORCED!!"}, {KwLink, "Link_$"},
				eof,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexemes(Tokenize(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	got := Tokenize("Panel~!!\n╰──➤ ID~ \"x\"")

	want := []Token{
		{Kind: KwPanelBang, Text: "Panel~!!", Pos: Position{Line: 1, Column: 1, Offset: 0}},
		{Kind: KindNewline, Text: "\n", Pos: Position{Line: 1, Column: 9, Offset: 8}},
		{Kind: KindTreeDown, Text: TreeDown, Pos: Position{Line: 2, Column: 1, Offset: 9}},
		{Kind: KwID, Text: "ID~", Pos: Position{Line: 2, Column: 6, Offset: 22}},
		{Kind: KindString, Text: "x", Pos: Position{Line: 2, Column: 10, Offset: 26}},
		{Kind: KindEOF, Pos: Position{Line: 2, Column: 13, Offset: 29}},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize_MultiLineStringAdvancesLine(t *testing.T) {
	got := Tokenize("\"a\nb\"\ncall~")

	last := got[len(got)-2]
	if last.Kind != KwCall || last.Pos.Line != 3 || last.Pos.Column != 1 {
		t.Errorf("token after multi-line string = %+v, want call~ at 3:1", last)
	}
}

func TestTokenize_KindsSurviveWhitespaceVariation(t *testing.T) {
	inputs := []string{
		"Sniff~ [ALL] | detect~!! sensors",
		"Fetch~!!   needed\tfirmware [ sensors , 3 ]",
		"Store~ @.attributes.value",
		"ASK~!! | SENSOR_ACCESS ||| x",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens := Tokenize(input)

			texts := make([]string, 0, len(tokens))
			for _, tok := range tokens[:len(tokens)-1] {
				texts = append(texts, tok.Text)
			}

			respaced := Tokenize(strings.Join(texts, " "))

			kinds := func(ts []Token) []Kind {
				ks := make([]Kind, len(ts))
				for i, tok := range ts {
					ks[i] = tok.Kind
				}

				return ks
			}

			if diff := cmp.Diff(kinds(tokens), kinds(respaced)); diff != "" {
				t.Errorf("kind sequence changed (-original +respaced):\n%s", diff)
			}
		})
	}
}

func TestKind_Metadata(t *testing.T) {
	tests := []struct {
		kind     Kind
		name     string
		spelling string
		command  bool
	}{
		{KwCall, "CALL", "call~", true},
		{KwPanelBang, "PANEL_BANG", "Panel~!!", true},
		{KwManifest, "MANIFEST", ".mf~", true},
		{KwText, "TEXT", "text~", true},
		{KwTextLower, "TEXT_LOWER", "text", false},
		{KwAll, "ALL", "ALL", false},
		{KindPipe, "PIPE", "", false},
		{KindTreeDown, "TREE_DOWN", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}

			if got := tt.kind.Spelling(); got != tt.spelling {
				t.Errorf("Spelling() = %q, want %q", got, tt.spelling)
			}

			if got := tt.kind.IsCommand(); got != tt.command {
				t.Errorf("IsCommand() = %v, want %v", got, tt.command)
			}
		})
	}
}

func TestLookupKeyword_RoundTrip(t *testing.T) {
	n := 0

	for k := range Keywords() {
		n++

		got, ok := LookupKeyword(k.Spelling())
		if !ok || got != k {
			t.Errorf("LookupKeyword(%q) = %v, %v; want %v", k.Spelling(), got, ok, k)
		}
	}

	if n != int(keywordEnd-keywordStart) {
		t.Errorf("Keywords() yielded %d kinds, want %d", n, keywordEnd-keywordStart)
	}

	if _, ok := LookupKeyword("Call~"); ok {
		t.Error("LookupKeyword matched a spelling that differs only in case")
	}
}
