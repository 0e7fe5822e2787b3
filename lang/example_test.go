package lang_test

import (
	"context"
	"fmt"
	"os"

	"github.com/ardnew/plx/lang"
)

func ExampleParseString() {
	res := lang.ParseString(context.Background(), "Panel~!!\n╰──➤ ID~ \"TestPanel\"\n╰──➤ Feed~ LIVE")

	for s := range res.File.All() {
		fmt.Println(s.Indent, s.Command, len(s.Params))
	}
	// Output:
	// 0 Panel~!! 0
	// 1 ID~ 1
	// 1 Feed~ 1
}

func ExampleTokenize() {
	for _, tok := range lang.Tokenize("Sniff~ [ALL]") {
		fmt.Println(tok)
	}
	// Output:
	// SNIFF("Sniff~")
	// BRACKET_OPEN("[")
	// ALL("ALL")
	// BRACKET_CLOSE("]")
	// EOF
}

func ExampleFile_Format() {
	res := lang.ParseString(context.Background(), "call~   test |  rows:3")

	_ = res.File.Format(context.Background(), os.Stdout)
	// Output: call~ test rows: 3
}
