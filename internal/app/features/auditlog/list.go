// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mizanlegal/mizan/internal/app/store/audit"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const pageSize = 50

type eventRow struct {
	audit.Event
	ActorName string
	UserName  string
}

type listViewData struct {
	viewdata.BaseVM
	Events    []eventRow
	Total     int64
	Category  string
	EventType string
	StartDate string
	EndDate   string
	Page      int
	PrevPage  int
	NextPage  int
	HasPrev   bool
	HasNext   bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/audit                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	vm := listViewData{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, "سجل التدقيق", "/dashboard"),
		Category:  strings.TrimSpace(r.URL.Query().Get("category")),
		EventType: strings.TrimSpace(r.URL.Query().Get("event_type")),
		StartDate: strings.TrimSpace(r.URL.Query().Get("start_date")),
		EndDate:   strings.TrimSpace(r.URL.Query().Get("end_date")),
		Page:      1,
	}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		vm.Page = p
	}

	filter := audit.QueryFilter{
		Category:  vm.Category,
		EventType: vm.EventType,
		Limit:     pageSize,
		Offset:    int64((vm.Page - 1) * pageSize),
	}
	if vm.StartDate != "" {
		if t, err := time.Parse("2006-01-02", vm.StartDate); err == nil {
			filter.StartTime = &t
		}
	}
	if vm.EndDate != "" {
		if t, err := time.Parse("2006-01-02", vm.EndDate); err == nil {
			endOfDay := t.Add(24*time.Hour - time.Second)
			filter.EndTime = &endOfDay
		}
	}

	events, err := h.Audit.Query(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "query audit events", err, "تعذّر تحميل سجل التدقيق.", "/dashboard")
		return
	}
	total, err := h.Audit.CountByFilter(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count audit events", err, "تعذّر تحميل سجل التدقيق.", "/dashboard")
		return
	}

	vm.Events = h.withNames(ctx, events)
	vm.Total = total
	vm.HasPrev = vm.Page > 1
	vm.HasNext = int64(vm.Page)*pageSize < total
	vm.PrevPage = vm.Page - 1
	vm.NextPage = vm.Page + 1

	templates.Render(w, r, "auditlog_list", vm)
}

// withNames resolves actor and affected-user names for display.
func (h *Handler) withNames(ctx context.Context, events []audit.Event) []eventRow {
	ids := make([]primitive.ObjectID, 0, len(events)*2)
	seen := make(map[primitive.ObjectID]bool)
	collect := func(id *primitive.ObjectID) {
		if id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	for _, ev := range events {
		collect(ev.ActorID)
		collect(ev.UserID)
	}

	names := make(map[primitive.ObjectID]string)
	users, err := h.Users.GetByIDs(ctx, ids)
	if err != nil {
		h.Log.Warn("load audit user names failed", zap.Error(err))
	}
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	rows := make([]eventRow, 0, len(events))
	for _, ev := range events {
		row := eventRow{Event: ev}
		if ev.ActorID != nil {
			row.ActorName = names[*ev.ActorID]
		}
		if ev.UserID != nil {
			row.UserName = names[*ev.UserID]
		}
		rows = append(rows, row)
	}
	return rows
}
