package intent

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/plx/lang"
)

var ErrReadState = lang.NewError("failed to read state")

// LoadState decodes the state document read from r. The document is YAML
// (or JSON) with a mapping at its root. An empty document is an empty,
// non-nil state.
func LoadState(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadState.Wrap(err)
	}

	state := map[string]any{}
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, ErrReadState.Wrap(err)
	}

	if state == nil {
		state = map[string]any{}
	}

	return state, nil
}
