// internal/app/features/consulttypesadmin/views/views.go
package consulttypesadmin

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "consulttypesadmin",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
