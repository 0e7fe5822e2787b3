package intent

import "strconv"

// pythonRenderers render intents as Python call expressions.
//
//nolint:gochecknoglobals
var pythonRenderers = map[string]RenderFunc{
	"state.store": func(p Params) string {
		return "store(" + strconv.Quote(p.Or("", "ref", "target")) + ")"
	},
}
