package cli

import (
	"context"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/plx/log"
)

// logFormat configures the logger format as a side effect of parsing via
// encoding.TextUnmarshaler, early enough to affect errors reported by kong.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"json"    enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                         help:"Set timestamp layout, a time package constant name or 'none'."`
	Caller     bool      `default:"false"                           help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                            help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	lower := func(seq iter.Seq[string]) string {
		var names []string
		for name := range seq {
			names = append(names, strings.ToLower(name))
		}

		return strings.Join(names, ",")
	}

	return kong.Vars{
		"logLevelEnum":  lower(log.Levels()),
		"logFormatEnum": lower(log.Formats()),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start applies every parsed logger setting, including those without a
// TextUnmarshaler.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan performs an early pass over command-line arguments to extract and
// apply logger configuration before kong begins parsing, so that the logger
// is configured regardless of flag position.
//
// Boolean flags like --log-pretty do not pass through a TextUnmarshaler,
// which is why they are applied here as well.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		negated := strings.HasPrefix(name, "--no-log-")
		if !negated && !strings.HasPrefix(name, "--log-") {
			continue
		}

		key := strings.TrimPrefix(name, "--log-")
		if negated {
			key = strings.TrimPrefix(name, "--no-log-")
		}

		switch key {
		case "level":
			if negated {
				continue
			}

			value, i = flagArg(args, i, value, assigned)
			_ = f.Level.UnmarshalText([]byte(value))

		case "format":
			if negated {
				continue
			}

			value, i = flagArg(args, i, value, assigned)
			_ = f.Format.UnmarshalText([]byte(value))

		case "pretty":
			if v, ok := boolArg(value, assigned, negated); ok {
				f.Pretty = v
				log.Config(log.WithPretty(v))
			}

		case "caller":
			if v, ok := boolArg(value, assigned, negated); ok {
				f.Caller = v
				log.Config(log.WithCaller(v))
			}
		}
	}
}

// flagArg returns the value of a non-boolean flag at args[i], consuming the
// next argument when the value was not assigned with "=".
func flagArg(args []string, i int, value string, assigned bool) (string, int) {
	if !assigned && i+1 < len(args) && args[i+1] != "" && args[i+1][0] != '-' {
		return args[i+1], i + 1
	}

	return value, i
}

// boolArg returns the value of a boolean flag, which only takes a value when
// it is assigned with "=".
func boolArg(value string, assigned, negated bool) (bool, bool) {
	v := true

	if assigned {
		var err error
		if v, err = strconv.ParseBool(value); err != nil {
			return false, false
		}
	}

	return v != negated, true
}
