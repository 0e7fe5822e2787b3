// Package log provides a structured logging interface built on [log/slog]
// with an additional Trace level.
//
// A [Logger] is an immutable value: options are applied when it is created
// with [Make] or derived with [Logger.Wrap], and [Logger.With] returns a new
// Logger carrying extra attributes. The zero Logger discards everything,
// which is how the plx packages stay silent unless a caller hands them a
// configured logger.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("parse complete", slog.Int("statements", 3))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("Kitchen"),
//		log.WithCaller(true))
//
// # Default Logger
//
// The package-level functions ([Info], [DebugContext], ...) write through a
// process-wide default logger that the CLI reconfigures with [Config] as
// flags are parsed. Context-unaware variants use [DefaultContextProvider].
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText] are supported. Both have a
// colorized "pretty" rendition enabled by default with [WithPretty].
package log
