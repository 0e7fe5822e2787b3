package pkgstore

import (
	"html"

	"github.com/ardnew/plx/intent"
)

// Import is the intent that asks to install a package.
func Import() intent.Intent {
	return intent.Intent{
		Name:        "package.import",
		Command:     "import~",
		Category:    intent.CategoryPackage,
		Required:    []string{"target"},
		Description: "Import a package, offering to install it when missing",
		Examples:    []string{"import~ blender", "import~!! photoshop"},
	}
}

// Register adds the [Import] intent to r with renderers bound to s.
func Register(r *intent.Registry, s *Store) error {
	return r.Register(Import(), intent.Renderers{
		intent.Shell: func(p intent.Params) string {
			return s.Prompt(p.Or("", "target"))
		},
		intent.HTML: func(p intent.Params) string {
			name := p.Or("", "target")
			esc := html.EscapeString(name)

			return `<div class="import-prompt" data-package="` + esc + `">
  <p>` + html.EscapeString(s.Prompt(name)) + `</p>
  <button onclick="installPackage('` + esc + `')">Y</button>
  <button onclick="cancelInstall('` + esc + `')">N</button>
</div>`
		},
		intent.NCOM: func(p intent.Params) string {
			return "NCOM_IMPORT[" + p.Or("", "target") + "]"
		},
	})
}
