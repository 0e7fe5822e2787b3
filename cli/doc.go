// Package cli contains the command line interface for plx.
//
// # Usage
//
// With no subcommand, plx resolves the given sources:
//
//	plx program.plx
//	plx --backend=ncom resolve program.plx
//	echo 'Sniff~ [ALL]' | plx resolve --format=json
//
// The subcommands are implemented in package [github.com/ardnew/plx/cli/cmd].
//
// # Configuration Loader
//
// Flag defaults are read from config.yaml in the user configuration
// directory. The document maps flag names to values, optionally under a
// top-level "plx" mapping. Nested mappings are joined with "-":
//
//	plx:
//	  backend: html
//	  log:
//	    level: debug
//
// Run "plx init" to write the current flag values as a starting point.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize output on terminals
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o plx .
//
// Then:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/plx/pprof)
package cli
