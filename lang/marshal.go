package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for File.
func (f *File) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.ToMap())
}

// MarshalYAML implements yaml.InterfaceMarshaler for File.
func (f *File) MarshalYAML() (any, error) {
	return f.ToMap(), nil
}

// ToMap converts the file to native Go values.
func (f *File) ToMap() map[string]any {
	stmts := make([]any, len(f.Statements))
	for i, s := range f.Statements {
		stmts[i] = s.ToMap()
	}

	return map[string]any{"statements": stmts}
}

// ToMap converts the statement and its children to native Go values.
// Optional fields are omitted when empty.
func (s *Statement) ToMap() map[string]any {
	m := map[string]any{
		"command": s.Command,
		"indent":  s.Indent,
		"line":    s.Pos.Line,
		"column":  s.Pos.Column,
	}

	if len(s.Params) > 0 {
		params := make([]any, len(s.Params))

		for i, p := range s.Params {
			pm := map[string]any{"value": ToNative(p.Value)}
			if p.Key != "" {
				pm["key"] = p.Key
			}

			params[i] = pm
		}

		m["params"] = params
	}

	if s.HasBridge {
		m["bridge"] = s.Bridge
	}

	if len(s.Children) > 0 {
		children := make([]any, len(s.Children))
		for i, c := range s.Children {
			children[i] = c.ToMap()
		}

		m["children"] = children
	}

	return m
}

// ToNative converts a value to its native Go type: string, float64,
// []any for lists, and a single-key map {"reference": path} for references.
func ToNative(v Value) any {
	switch v := v.(type) {
	case *String:
		return v.Text

	case *Number:
		return v.Value

	case *Reference:
		return map[string]any{"reference": v.Path}

	case *List:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = ToNative(item)
		}

		return items
	}

	return nil
}
