// Package intent binds parsed PlexCode statements to named actions and
// renders them into backend dialects.
//
// A [Registry] maps command spellings to [Intent] values and keeps one
// [RenderFunc] per supported [Backend]. [Default] returns a registry
// holding the builtin catalogue; collaborators add their own entries with
// [Registry.Register].
//
//	res := intent.NewResolver(intent.Default(), intent.Context{Backend: intent.Shell})
//	for _, ri := range res.ResolveAll(file.Statements) {
//		fmt.Println(ri.Intent.Name, ri.Output)
//	}
//
// Commands match exactly first, then with '~' and '!' removed and case
// ignored, so "sniff~" finds "Sniff~".
//
// [Validate] is the semantic pass that follows parsing. It reports unknown
// commands, intents missing their parameters, and references that do not
// resolve against a state document.
package intent
