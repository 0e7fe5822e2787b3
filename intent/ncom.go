package intent

import "strings"

// ncomRenderers render intents as NCOM protocol frames.
//
//nolint:gochecknoglobals
var ncomRenderers = map[string]RenderFunc{
	"device.sniff": func(p Params) string {
		return frame("NCOM_SNIFF", p.Or("ALL", "scope"))
	},
	"device.detect": func(p Params) string {
		return frame("NCOM_DETECT", p.Or("", "target"))
	},
	"device.fetch": func(p Params) string {
		return frame("NCOM_FETCH", p.Or("", "target"))
	},
	"device.pair": func(p Params) string {
		return frame("NCOM_PAIR", p.Or("AUTO", "device", "target"))
	},
	"device.sense": func(p Params) string {
		return frame("NCOM_SENSE", p.Or("", "target"))
	},
	"auth.access": func(p Params) string {
		return frame("NCOM_ACCESS", p.Or("", "resource", "target"))
	},
	"exec.call": func(p Params) string {
		return frame("NCOM_CALL", p.Or("", "target"))
	},
	"exec.send": func(p Params) string {
		return frame("NCOM_SEND", p.Or("", "target"), p.Or("", "data", "scope"))
	},
	"exec.get": func(p Params) string {
		return frame("NCOM_GET", p.Or("", "target"))
	},
	"core.simcore": func(p Params) string {
		action, _ := simcoreArgs(p)
		if action == "" {
			action = "RUN"
		}

		return frame("SIMCORE", action)
	},
	"core.ncom": func(p Params) string {
		return frame("NCOM_CORE", p.Or("", "action", "target"))
	},
}

// frame formats an NCOM frame: OPCODE[arg,arg].
func frame(opcode string, args ...string) string {
	return opcode + "[" + strings.Join(args, ",") + "]"
}
