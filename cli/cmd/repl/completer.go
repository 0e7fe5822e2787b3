package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/plx/intent"
	"github.com/ardnew/plx/pkgstore"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "intents", "backend", "tokens", "ast", "pkg", "clear", "quit",
}

// isWordBoundary reports whether r separates words for completion. The
// command marks '~', '!' and '.' are part of a word so that spellings like
// "detect~!!" and ".mf~" complete as a whole. The tree-descend glyphs are
// boundaries so that a child statement's command completes too.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', '[', ']', '{', '}', '<', '>',
		'|', ',', '=', ':', '"', '\'',
		'╰', '─', '➤':
		return true
	}

	return false
}

// wordBounds returns the word around cursor and its byte offsets within
// input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	for start = cursor; start > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	for end = cursor; end < len(input); {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// leadingWord returns the first word of input, ignoring any tree-descend
// prefix.
func leadingWord(input string) string {
	start := strings.IndexFunc(input, func(r rune) bool { return !isWordBoundary(r) })
	if start < 0 {
		return ""
	}

	word, _, _ := wordBounds(input, start)

	return word
}

// candidates returns the completion candidates for the word starting at
// wordStart. The first word of a line completes to a command; later words
// complete to arguments of that command.
func (m model) candidates(input string, wordStart int) []string {
	if strings.TrimFunc(input[:wordStart], isWordBoundary) == "" {
		if m.mode == modeCtrl {
			return ctrlCommands
		}

		return m.commands
	}

	first := leadingWord(input)

	if m.mode == modeCtrl {
		switch first {
		case "backend":
			names := make([]string, 0, len(intent.Backends()))
			for _, b := range intent.Backends() {
				names = append(names, b.String())
			}

			return names

		case "pkg":
			return m.session.packages()
		}

		return nil
	}

	if in, ok := m.session.registry.Lookup(first); ok && in.Name == pkgstore.Import().Name {
		return m.session.packages()
	}

	return nil
}

// computeMatches returns the fuzzy matches for the word at the cursor, best
// first, along with the word's byte offsets.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, wordStart, wordEnd
	}

	cands := m.candidates(input, wordStart)
	if len(cands) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, cands), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, truncated with
// an ellipsis to fit width.
func renderCandidateBar(matches fuzzy.Matches, selected int, tabbing bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var (
		b    strings.Builder
		used int
	)

	for i, match := range matches {
		rendered := renderCandidate(match, tabbing && i == selected)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		last := i == len(matches)-1
		if i > 0 && (used+w > width || (!last && used+w+reserve > width)) {
			b.WriteString(sep + ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched runes highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
