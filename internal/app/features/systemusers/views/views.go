// internal/app/features/systemusers/views/views.go
package systemusers

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "systemusers",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
