// internal/app/bootstrap/views.go
package bootstrap

// Each feature's views package registers its embedded template set in
// an init function. Blank imports here pull every set into the binary
// before the template engine boots in BuildHandler.
import (
	_ "github.com/mizanlegal/mizan/internal/app/features/about/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/appointments/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/auditlog/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/cases/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/consulttypesadmin/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/dashboard/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/home/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/login/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/messages/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/notifications/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/profile/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/services/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/servicesadmin/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/settings/views"
	_ "github.com/mizanlegal/mizan/internal/app/features/systemusers/views"
)
