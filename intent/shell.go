package intent

// shellRenderers render intents as shell command lines. Empty arguments are
// dropped rather than left as blank words.
//
//nolint:gochecknoglobals
var shellRenderers = map[string]RenderFunc{
	"device.sniff": func(p Params) string {
		target := ""
		if t, ok := p.Text("target"); ok {
			target = "--target " + t
		}

		return words("sniff", p.Or("ALL", "scope"), target)
	},
	"device.detect": func(p Params) string {
		return words("detect-sensors", p.Or("", "target"))
	},
	"device.fetch": func(p Params) string {
		return words("fetch-firmware", p.Or("", "target"), p.Or("", "scope"))
	},
	"device.pair": func(p Params) string {
		return words("pair-device", p.Or("", "device", "target"))
	},
	"device.sense": func(p Params) string {
		return words("sense", p.Or("", "target"))
	},
	"state.store": func(p Params) string {
		return words("store", p.Or("", "ref", "target"))
	},
	"ui.build": func(p Params) string {
		return words("build-ui", p.Or("", "target"))
	},
	"ui.panel": func(p Params) string {
		return words("create-panel", p.Or("default", "id"))
	},
	"ui.show": func(p Params) string {
		return words("show", p.Or("", "target"))
	},
	"auth.ask": func(p Params) string {
		return words("request-permission", p.Or("", "permission", "target"))
	},
	"auth.access": func(p Params) string {
		return words("grant-access", p.Or("", "resource", "target"))
	},
	"exec.call": func(p Params) string {
		return words("call", p.Or("", "target"))
	},
	"exec.send": func(p Params) string {
		return words("send", p.Or("", "data", "scope"), "to", p.Or("", "target"))
	},
	"exec.get": func(p Params) string {
		return words("get", p.Or("", "target"))
	},
	"core.simcore": func(p Params) string {
		action, target := simcoreArgs(p)

		return words("simcore", action, target)
	},
	"core.ncom": func(p Params) string {
		return words("ncom", p.Or("", "action", "target"))
	},
	"config.feed": func(p Params) string {
		return words("set-feed", p.Or("", "mode", "target"))
	},
	"config.source": func(p Params) string {
		return words("set-source", p.Or("", "target"))
	},
	"config.permissions": func(p Params) string {
		return words("set-permissions", p.Or("", "level", "target"))
	},
	"config.log": func(p Params) string {
		return words("set-logging", p.Or("", "mode", "target"))
	},
}

// simcoreArgs reads the action and target of a simulation core command. A
// positional action shifts the target to the second position.
func simcoreArgs(p Params) (action, target string) {
	if a, ok := p.Text("action"); ok {
		return a, p.Or("", "target")
	}

	return p.Or("", "target"), p.Or("", "scope")
}
