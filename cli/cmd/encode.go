package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Structured output formats shared by the resolve, intents and pkg commands.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// encode writes v to w as JSON or YAML with the given indent width.
func encode(ctx context.Context, w io.Writer, format string, indent int, v any) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case formatJSON:
		if indent > 0 {
			data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
		} else {
			data, err = json.Marshal(v)
		}

		data = append(data, '\n')

	case formatYAML:
		opts := []yaml.EncodeOption{yaml.Flow(indent <= 0)}
		if indent > 0 {
			opts = append(opts, yaml.Indent(indent))
		}

		data, err = yaml.MarshalContext(ctx, v, opts...)

	default:
		return ErrEncode.With(slog.String("format", format))
	}

	if err != nil {
		return ErrEncode.With(slog.String("format", format)).Wrap(err)
	}

	_, err = w.Write(data)

	return err
}

// flow renders v as a single line of flow-style YAML, such as
// "{scope: ALL, target: cam}".
func flow(v any) string {
	data, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}
