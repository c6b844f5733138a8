// internal/app/features/servicesadmin/views/views.go
package servicesadmin

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "servicesadmin",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
