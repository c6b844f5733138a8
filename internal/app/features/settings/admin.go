// internal/app/features/settings/admin.go
package settings

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/htmlsanitize"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/app/system/viewdata"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
)

// maxLogoSize caps logo uploads at 4 MB.
const maxLogoSize = 4 << 20

type settingsViewData struct {
	viewdata.BaseVM
	Settings   models.SiteSettings
	CurrentURL string
	ErrorMsg   string
	SuccessMsg string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/settings                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	h.renderSettings(w, r, "", successMessage(r))
}

func successMessage(r *http.Request) string {
	if r.URL.Query().Get("success") == "1" {
		return "تم حفظ الإعدادات."
	}
	return ""
}

func (h *Handler) renderSettings(w http.ResponseWriter, r *http.Request, errorMsg, successMsg string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	settings, err := h.Settings.Get(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load site settings", err, "تعذّر تحميل الإعدادات.", "/dashboard")
		return
	}

	vm := settingsViewData{
		BaseVM:     viewdata.NewBaseVM(r, h.DB, "إعدادات الموقع", "/dashboard"),
		Settings:   settings,
		ErrorMsg:   errorMsg,
		SuccessMsg: successMsg,
	}
	if settings.HasLogo() {
		vm.CurrentURL = h.Storage.URL(settings.LogoPath)
	}

	templates.Render(w, r, "settings_admin", vm)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/settings                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	_, actorName, actorID, _ := authz.UserCtx(r)

	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse settings form", err, "تعذّر قراءة النموذج، حجم الشعار الأقصى 4 م.ب.", "/admin/settings")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	settings, err := h.Settings.Get(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load site settings", err, "تعذّر تحميل الإعدادات.", "/dashboard")
		return
	}

	siteName := strings.TrimSpace(r.FormValue("site_name"))
	siteNameAr := strings.TrimSpace(r.FormValue("site_name_ar"))
	if siteName == "" || siteNameAr == "" {
		h.renderSettings(w, r, "اسم الموقع مطلوب بالعربية والإنجليزية.", "")
		return
	}

	settings.SiteName = siteName
	settings.SiteNameAr = siteNameAr
	settings.FooterHTML = htmlsanitize.Sanitize(r.FormValue("footer_html"))
	settings.ContactEmail = strings.TrimSpace(r.FormValue("contact_email"))
	settings.ContactPhone = strings.TrimSpace(r.FormValue("contact_phone"))
	settings.Address = strings.TrimSpace(r.FormValue("address"))

	if key, uploaded, err := h.storeLogo(ctx, r); err != nil {
		h.renderSettings(w, r, "تعذّر رفع الشعار.", "")
		return
	} else if uploaded {
		settings.LogoPath = key
	}

	now := time.Now().UTC()
	settings.UpdatedAt = &now
	settings.UpdatedByID = &actorID
	settings.UpdatedByName = actorName

	if err := h.Settings.Save(ctx, settings); err != nil {
		h.ErrLog.LogServerError(w, r, "save site settings", err, "تعذّر حفظ الإعدادات.", "/admin/settings")
		return
	}

	h.AuditLog.AdminAction(ctx, r, actorID, "settings_updated", map[string]string{
		"site_name": settings.SiteName,
	})
	http.Redirect(w, r, "/admin/settings?success=1", http.StatusSeeOther)
}

// storeLogo saves an uploaded logo, if any, under branding/.
func (h *Handler) storeLogo(ctx context.Context, r *http.Request) (key string, uploaded bool, err error) {
	file, header, err := r.FormFile("logo")
	if err != nil || header == nil || header.Size == 0 {
		return "", false, nil
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".svg", ".webp":
	default:
		return "", false, fmt.Errorf("unsupported logo type %q", ext)
	}

	key = fmt.Sprintf("branding/%s%s", uuid.New().String()[:8], ext)
	opts := &storage.PutOptions{ContentType: header.Header.Get("Content-Type")}
	if err := h.Storage.Put(ctx, key, file, opts); err != nil {
		return "", false, fmt.Errorf("upload logo: %w", err)
	}
	return key, true, nil
}
