package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/BISU-Projects/bamboo/internal/models"
	"github.com/BISU-Projects/bamboo/internal/recognition"
	"github.com/BISU-Projects/bamboo/internal/species"
	"github.com/BISU-Projects/bamboo/internal/storage"
)

// Config wires the handler to its catalog and recognition backend
type Config struct {
	Catalog    *species.Catalog
	Recognizer recognition.Recognizer
	Provider   string
	UploadsDir string
}

type Handler struct {
	catalog      *species.Catalog
	recognizer   recognition.Recognizer
	provider     string
	uploadsDir   string
	sessionStore *storage.SessionStore
}

func New(cfg Config) *Handler {
	if cfg.Catalog == nil {
		cfg.Catalog = species.Default()
	}
	if cfg.UploadsDir == "" {
		cfg.UploadsDir = "uploads"
	}
	return &Handler{
		catalog:      cfg.Catalog,
		recognizer:   cfg.Recognizer,
		provider:     cfg.Provider,
		uploadsDir:   cfg.UploadsDir,
		sessionStore: storage.New(),
	}
}

// Routes registers every endpoint on a new mux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/species", h.HandleSpecies)
	mux.HandleFunc("/api/species/", h.HandleSpeciesDetail)
	mux.HandleFunc("/api/recognize", h.HandleRecognize)
	mux.HandleFunc("/api/sessions", h.HandleSessions)
	mux.HandleFunc("/api/sessions/", h.HandleSessionDetail)
	mux.HandleFunc("/static/uploads/", h.HandleUploads)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	return mux
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*models.RecognitionSession, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// File operation helpers
func (h *Handler) ensureUploadsDir() error {
	return os.MkdirAll(h.uploadsDir, 0755)
}
