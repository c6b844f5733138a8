// internal/app/features/cases/documents.go
package cases

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/mizanlegal/mizan/internal/app/system/authz"
	"github.com/mizanlegal/mizan/internal/app/system/timeouts"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxDocumentSize caps case document uploads at 32 MB.
const maxDocumentSize = 32 << 20

/*─────────────────────────────────────────────────────────────────────────────*
| POST /cases/{caseID}/documents – upload                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	role, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	c := h.loadCase(w, r, ctx, chi.URLParam(r, "caseID"))
	if c == nil {
		return
	}

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse upload form", err, "تعذّر قراءة الملف، الحد الأقصى 32 م.ب.", "/cases/"+c.ID.Hex())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil || header == nil || header.Size == 0 {
		h.ErrLog.LogBadRequest(w, r, "missing upload file", err, "يرجى اختيار ملف.", "/cases/"+c.ID.Hex())
		return
	}
	defer file.Close()

	key, err := h.storeBlob(ctx, header.Filename, file, header.Header.Get("Content-Type"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "store case document", err, "تعذّر رفع الملف.", "/cases/"+c.ID.Hex())
		return
	}

	// Notify the other party: client uploads go to the assigned
	// lawyer, staff uploads to the client.
	var recipient *primitive.ObjectID
	if role == models.RoleClient {
		recipient = c.LawyerID
	} else {
		clientID := c.ClientID
		recipient = &clientID
	}

	doc, err := h.Documents.Add(ctx, models.CaseDocument{
		CaseID:      c.ID,
		UploaderID:  userID,
		FileName:    header.Filename,
		StorageKey:  key,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, recipient)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "record case document", err, "تعذّر حفظ بيانات الملف.", "/cases/"+c.ID.Hex())
		return
	}

	h.AuditLog.DocumentUploaded(ctx, r, userID, c.ID, doc.ID, doc.FileName)
	http.Redirect(w, r, "/cases/"+c.ID.Hex(), http.StatusSeeOther)
}

// storeBlob writes the file under a unique key: cases/YYYY/MM/uuid-name.
func (h *Handler) storeBlob(ctx context.Context, filename string, reader io.Reader, contentType string) (string, error) {
	now := time.Now().UTC()
	dateDir := fmt.Sprintf("cases/%04d/%02d", now.Year(), now.Month())
	key := filepath.ToSlash(filepath.Join(dateDir, fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))))

	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.Storage.Put(ctx, key, reader, opts); err != nil {
		return "", fmt.Errorf("upload case document: %w", err)
	}
	return key, nil
}

// sanitizeFilename keeps only characters safe in storage keys and
// content-disposition headers, preserving the extension.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /cases/{caseID}/documents/{documentID} – download                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDownload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c := h.loadCase(w, r, ctx, chi.URLParam(r, "caseID"))
	if c == nil {
		return
	}

	docID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "documentID"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "bad document id", "المستند غير موجود.", "/cases/"+c.ID.Hex())
		return
	}

	doc, err := h.Documents.GetByID(ctx, docID)
	if err == mongo.ErrNoDocuments || (err == nil && doc.CaseID != c.ID) {
		h.ErrLog.LogNotFound(w, r, "document not found", "المستند غير موجود.", "/cases/"+c.ID.Hex())
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load document", err, "تعذّر تحميل المستند.", "/cases/"+c.ID.Hex())
		return
	}

	contentDisposition := "attachment; filename=\"" + sanitizeFilename(doc.FileName) + "\""

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	// Local storage serves the file directly; remote storage redirects
	// to a short-lived signed URL.
	if localStorage, ok := h.Storage.(*storage.Local); ok {
		fullPath, err := localStorage.GetFullPath(doc.StorageKey)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "resolve document path", err, "تعذّر تنزيل المستند.", "/cases/"+c.ID.Hex())
			return
		}
		w.Header().Set("Content-Disposition", contentDisposition)
		http.ServeFile(w, r, fullPath)
		return
	}

	signedURL, err := h.Storage.PresignedURL(ctx, doc.StorageKey, &storage.PresignOptions{
		Expires:            15 * time.Minute,
		ContentDisposition: contentDisposition,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "sign document url", err, "تعذّر تنزيل المستند.", "/cases/"+c.ID.Hex())
		return
	}
	http.Redirect(w, r, signedURL, http.StatusSeeOther)
}
