package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/resume"
)

type ResumeHandler struct {
	resume *models.Resume
	images resume.Images
}

func NewResumeHandler(r *models.Resume, images resume.Images) *ResumeHandler {
	return &ResumeHandler{resume: r, images: images}
}

func (h *ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.resume)
}

// Image redirects a public image key to its real location.
func (h *ResumeHandler) Image(w http.ResponseWriter, r *http.Request) {
	target, ok := h.images.URL(chi.URLParam(r, "key"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Image not found", r))
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.Redirect(w, r, target, http.StatusFound)
}
