package uploadshandler

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"paiefacile/internal/transport/http/api"
)

type Handler struct {
	UploadsDir    string
	PublicBaseURL string
}

func NewHandler(uploadsDir, publicBaseURL string) *Handler {
	return &Handler{UploadsDir: uploadsDir, PublicBaseURL: publicBaseURL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload", h.handleUpload)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Error(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.UploadsDir, 0o755); err != nil {
		log.Printf("create uploads dir: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	// Client filenames are untrusted; only the extension survives.
	ext := strings.ToLower(filepath.Ext(filepath.Base(header.Filename)))
	name := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(h.UploadsDir, name))
	if err != nil {
		log.Printf("create upload file: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("write upload file: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	api.JSON(w, map[string]string{"publicUrl": h.publicURL(r, name)})
}

func (h *Handler) publicURL(r *http.Request, name string) string {
	base := strings.TrimSuffix(h.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + "/uploads/" + name
}
