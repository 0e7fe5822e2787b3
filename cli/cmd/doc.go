// Package cmd implements the plx subcommands: tokens, ast, resolve, check,
// intents, pkg, repl and init. Commands share a [Session] carried in the context.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
