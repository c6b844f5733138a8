// internal/app/features/appointments/views/views.go
package appointments

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "appointments",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
