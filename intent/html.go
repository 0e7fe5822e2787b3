package intent

import (
	"fmt"
	"html"
	"maps"
	"slices"
	"strings"

	"github.com/zeebo/xxh3"
)

// htmlRenderers render intents as HTML fragments. Parameter text is escaped
// before it is placed in attributes or content.
//
//nolint:gochecknoglobals
var htmlRenderers = map[string]RenderFunc{
	"device.sniff": func(p Params) string {
		return `<button class="plexcode-sniff" data-scope="` + esc(p.Or("ALL", "scope")) +
			`">Sniff Devices</button>`
	},
	"ui.build": func(p Params) string {
		return `<div class="plexcode-builder" data-target="` + esc(p.Or("default", "target")) +
			`"></div>`
	},
	"ui.panel": renderPanel,
	"ui.panels": func(p Params) string {
		return `<div class="plexcode-panels" data-layout="` + esc(p.Or("grid", "layout", "target")) +
			`"></div>`
	},
	"ui.grid": func(p Params) string {
		return fmt.Sprintf(
			`<div class="grid" style="grid-template-rows: %s; grid-template-columns: %s;"></div>`,
			esc(p.Or("auto", "rows")), esc(p.Or("auto", "columns")),
		)
	},
	"ui.show": func(p Params) string {
		target := esc(p.Or("", "target"))

		return `<div class="show-` + target + `">` + target + `</div>`
	},
	"auth.ask": func(p Params) string {
		perm := esc(p.Or("UNKNOWN", "permission", "target"))

		return `<div class="permission-prompt">
  <p>App requests: ` + perm + `</p>
  <button onclick="grantPermission('` + perm + `')">Allow</button>
  <button onclick="denyPermission('` + perm + `')">Deny</button>
</div>`
	},
}

func renderPanel(p Params) string {
	id := esc(p.Or(PanelID(p), "id"))

	return `<div class="plexcode-panel" id="` + id +
		`" data-feed="` + esc(p.Or("STATIC", "feed")) +
		`" data-source="` + esc(p.Or("default", "source")) + `">
  <div class="panel-header">` + id + `</div>
  <div class="panel-content"></div>
</div>`
}

// PanelID returns the element id given to a panel without an explicit id:
// "panel-" followed by the xxh3 hash of its parameters in key order. Equal
// parameters always give the same id.
func PanelID(p Params) string {
	var sb strings.Builder

	for _, key := range slices.Sorted(maps.Keys(p)) {
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(formatValue(p[key]))
		sb.WriteByte(0)
	}

	return fmt.Sprintf("panel-%016x", xxh3.HashString(sb.String()))
}

func esc(s string) string { return html.EscapeString(s) }
