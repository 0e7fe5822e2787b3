package intent_test

import (
	"context"
	"fmt"

	"github.com/ardnew/plx/intent"
	"github.com/ardnew/plx/lang"
)

func ExampleResolver_ResolveAll() {
	res := lang.ParseString(context.Background(), "Sniff~ [ALL]\n╰──➤ call~ test")

	r := intent.NewResolver(intent.Default(), intent.Context{Backend: intent.Shell})
	for _, ri := range r.ResolveAll(res.File.Statements) {
		fmt.Printf("%s: %s\n", ri.Intent.Name, ri.Output)
	}

	// Output:
	// device.sniff: sniff ALL --target ALL
	// exec.call: call test
}

func ExampleRegistry_Lookup() {
	in, ok := intent.Default().Lookup("fetch~")
	fmt.Println(in.Name, in.Command, ok)

	// Output:
	// device.fetch Fetch~!! true
}
