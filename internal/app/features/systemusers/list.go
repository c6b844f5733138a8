// internal/app/features/systemusers/list.go
package systemusers

import (
	"context"
	"net/http"
	"strconv"

	userstore "github.com/mizanlegal/mizan/internal/app/store/users"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const pageSize = 50

type userRow struct {
	models.User
	Role models.Role
}

type listViewData struct {
	viewdata.BaseVM
	Users    []userRow
	Total    int64
	Search   string
	Status   string
	Page     int64
	PrevPage int64
	NextPage int64
	HasPrev  bool
	HasNext  bool
	AllRoles []models.Role
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/users                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, _ := strconv.ParseInt(query.Get(r, "page"), 10, 64)
	if page < 1 {
		page = 1
	}

	vm := listViewData{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "المستخدمون", "/dashboard"),
		Search:   query.Get(r, "q"),
		Status:   query.Get(r, "status"),
		Page:     page,
		AllRoles: models.AllRoles,
	}

	users, total, err := h.Users.List(ctx, userstore.ListFilter{
		Search: vm.Search,
		Status: vm.Status,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list users", err, "تعذّر تحميل المستخدمين.", "/dashboard")
		return
	}

	vm.Total = total
	vm.HasPrev = page > 1
	vm.HasNext = page*pageSize < total
	vm.PrevPage = page - 1
	vm.NextPage = page + 1
	vm.Users = h.withRoles(ctx, users)

	templates.Render(w, r, "systemusers_list", vm)
}

// withRoles resolves each user's active role for display. A failed
// lookup shows the default client role.
func (h *Handler) withRoles(ctx context.Context, users []models.User) []userRow {
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		role, err := h.Roles.ActiveRole(ctx, u.ID)
		if err != nil {
			h.Log.Warn("resolve user role failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
			role = models.RoleClient
		}
		rows = append(rows, userRow{User: u, Role: role})
	}
	return rows
}

func parseUserID(raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	return id, err == nil
}
