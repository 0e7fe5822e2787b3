package repl

import (
	"strings"

	"github.com/ardnew/plx/intent"
)

// commandCall is the command of the line being typed and the index of the
// parameter under the cursor.
type commandCall struct {
	command  string
	argIndex int
	inArgs   bool
}

// detectCommandCall finds the leading command of input and counts the
// whitespace-separated parameters before cursor. inArgs is false while the
// cursor is still inside the command itself.
func detectCommandCall(input string, cursor int) commandCall {
	cursor = min(cursor, len(input))

	command := leadingWord(input)
	if command == "" {
		return commandCall{}
	}

	end := strings.Index(input, command) + len(command)
	if cursor <= end {
		return commandCall{command: command}
	}

	before := input[end:cursor]
	n := len(strings.Fields(before))

	if n > 0 && !strings.HasSuffix(before, " ") {
		n--
	}

	return commandCall{command: command, argIndex: n, inArgs: true}
}

// paramNames returns the parameter names of in in positional order, with
// the optional ones bracketed.
func paramNames(in intent.Intent) []string {
	names := make([]string, 0, len(in.Required)+len(in.Optional))
	names = append(names, in.Required...)

	for _, o := range in.Optional {
		names = append(names, "["+o+"]")
	}

	return names
}

// renderParamHint renders the intent name and its parameters with the
// parameter at current highlighted, followed by the description.
func renderParamHint(in intent.Intent, current int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(in.Name))
	b.WriteString(signatureStyle.Render("("))

	for i, name := range paramNames(in) {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == current {
			b.WriteString(currentParamStyle.Render(name))
		} else {
			b.WriteString(signatureStyle.Render(name))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	if in.Description != "" {
		b.WriteString(signatureStyle.Render("  " + in.Description))
	}

	return b.String()
}
