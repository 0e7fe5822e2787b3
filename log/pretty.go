package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyBase holds the state shared by both pretty handlers. Attributes added
// through WithAttrs are stored pre-qualified with the active group prefix.
type prettyBase struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	prefix string
}

func newPrettyBase(w io.Writer, opts *slog.HandlerOptions) prettyBase {
	return prettyBase{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func (b prettyBase) enabled(level slog.Level) bool {
	threshold := slog.LevelInfo
	if b.opts.Level != nil {
		threshold = b.opts.Level.Level()
	}

	return level >= threshold
}

func (b prettyBase) withAttrs(attrs []slog.Attr) prettyBase {
	qualified := make([]slog.Attr, len(b.attrs), len(b.attrs)+len(attrs))
	copy(qualified, b.attrs)

	for _, a := range attrs {
		a.Key = b.prefix + a.Key
		qualified = append(qualified, a)
	}

	b.attrs = qualified

	return b
}

func (b prettyBase) withGroup(name string) prettyBase {
	if name != "" {
		b.prefix += name + "."
	}

	return b
}

// header collects the built-in fields of r, passed through ReplaceAttr.
func (b prettyBase) header(r slog.Record) []slog.Attr {
	fields := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		fields = append(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if b.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))

	out := fields[:0]

	for _, a := range fields {
		if b.opts.ReplaceAttr != nil {
			a = b.opts.ReplaceAttr(nil, a)
		}

		if a.Key != "" {
			out = append(out, a)
		}
	}

	return out
}

func (b prettyBase) body(r slog.Record) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(b.attrs)+r.NumAttrs())
	attrs = append(attrs, b.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		a.Key = b.prefix + a.Key
		attrs = append(attrs, a)

		return true
	})

	return attrs
}

func (b prettyBase) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.w.Write(buf.Bytes())

	return err
}

// prettyTextHandler writes one colorized key=value line per record.
type prettyTextHandler struct{ prettyBase }

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyTextHandler {
	return &prettyTextHandler{newPrettyBase(w, opts)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range h.header(r) {
		writeTextAttr(buf, a)
	}

	for _, a := range h.body(r) {
		writeTextAttr(buf, a)
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

func writeTextAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, sub := range a.Value.Group() {
			if a.Key != "" {
				sub.Key = a.Key + "." + sub.Key
			}

			writeTextAttr(buf, sub)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray + a.Key + colorReset + "=")
	writeColorValue(buf, a.Value)
}

// writeColorValue renders v unquoted, colored by kind.
func writeColorValue(buf *bytes.Buffer, v slog.Value) {
	color, text := colorCyan, v.String()

	switch v.Kind() {
	case slog.KindInt64:
		color, text = colorYellow, strconv.FormatInt(v.Int64(), 10)

	case slog.KindUint64:
		color, text = colorYellow, strconv.FormatUint(v.Uint64(), 10)

	case slog.KindFloat64:
		color, text = colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)

	case slog.KindBool:
		color = colorRed
		if v.Bool() {
			color = colorGreen
		}

	case slog.KindDuration:
		color = colorMagenta

	case slog.KindTime:
		color = colorBlue

	case slog.KindString:
		color, text = levelColor(v.String())

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			color, text = levelColor(strings.ToUpper(Level(level).String()))
		}
	}

	buf.WriteString(color + text + colorReset)
}

// levelColor colors level names rewritten by ReplaceAttr; any other string
// is cyan.
func levelColor(s string) (string, string) {
	switch s {
	case "ERROR":
		return colorRed, s
	case "WARN":
		return colorYellow, s
	case "INFO":
		return colorGreen, s
	case "DEBUG", "TRACE":
		return colorBlue, s
	default:
		return colorCyan, s
	}
}

// prettyJSONHandler writes an indented, colorized JSON-like object per
// record.
type prettyJSONHandler struct{ prettyBase }

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyBase(w, opts)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString("{")

	first := true

	for _, a := range append(h.header(r), h.body(r)...) {
		writeJSONField(buf, a, "  ", &first)
	}

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

func writeJSONField(buf *bytes.Buffer, a slog.Attr, indent string, first *bool) {
	a.Value = a.Value.Resolve()

	if !*first {
		buf.WriteString(",")
	}

	*first = false

	buf.WriteString("\n" + indent + colorGray + a.Key + colorReset + ": ")

	if a.Value.Kind() != slog.KindGroup {
		writeColorValue(buf, a.Value)

		return
	}

	buf.WriteString("{")

	inner := true
	for _, sub := range a.Value.Group() {
		writeJSONField(buf, sub, indent+"  ", &inner)
	}

	buf.WriteString("\n" + indent + "}")
}
