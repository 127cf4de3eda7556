package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/BISU-Projects/bamboo/internal/models"
	"github.com/BISU-Projects/bamboo/internal/recognition"
	"github.com/google/uuid"
)

const maxUploadSize = 10 * 1024 * 1024

// HandleRecognize accepts a multipart image upload, runs recognition and
// stores the outcome as a session. Recognition failures are part of the
// session, not HTTP errors.
func (h *Handler) HandleRecognize(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.recognizer == nil {
		h.writeError(w, "Recognition is not configured", http.StatusServiceUnavailable)
		return
	}

	file, header, err := r.FormFile("files")
	if err != nil {
		file, header, err = r.FormFile("file")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	if err := h.ensureUploadsDir(); err != nil {
		h.writeError(w, "Failed to create uploads directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Limit file size to 10MB
	fileData, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if len(fileData) > maxUploadSize {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}

	saved, err := h.saveImageFile(fileData, header.Filename)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	client := recognition.NewClient(h.recognizer)
	st := client.Submit(r.Context(), saved.Path)

	session := models.NewRecognitionSession(uuid.NewString(), st, h.catalog)
	session.ImageFilename = saved.Filename
	session.ImageURL = "/static/uploads/" + saved.Filename
	session.ImageWidth = saved.Width
	session.ImageHeight = saved.Height
	if saved.ThumbnailFilename != "" {
		session.ThumbnailURL = "/static/uploads/" + saved.ThumbnailFilename
	}
	session.Provider = h.provider

	h.sessionStore.Set(session.ID, session)

	slog.Info("Recognition session created",
		"session_id", session.ID,
		"label", session.Label,
		"confidence", session.Confidence,
		"in_catalog", session.Species != nil,
		"error", session.Error)

	h.writeJSON(w, session)
}
