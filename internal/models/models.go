package models

import (
	"time"

	"github.com/BISU-Projects/bamboo/internal/recognition"
	"github.com/BISU-Projects/bamboo/internal/species"
)

// RecognitionSession represents one uploaded image and its recognition outcome
type RecognitionSession struct {
	ID            string              `json:"id"`
	ImageFilename string              `json:"image_filename"`
	ImageURL      string              `json:"image_url"`
	ThumbnailURL  string              `json:"thumbnail_url,omitempty"`
	ImageWidth    int                 `json:"image_width,omitempty"`
	ImageHeight   int                 `json:"image_height,omitempty"`
	Provider      string              `json:"provider,omitempty"`
	Result        *recognition.Result `json:"result,omitempty"`
	Error         string              `json:"error,omitempty"`
	Label         string              `json:"label"`
	Confidence    string              `json:"confidence,omitempty"`
	Details       []recognition.Field `json:"details,omitempty"`
	Species       *species.Record     `json:"species,omitempty"` // nil when the label is not in the catalog
	CreatedAt     time.Time           `json:"created_at"`
}

// NewRecognitionSession fills the display fields from a finished client state
// and resolves the label against the catalog.
func NewRecognitionSession(id string, st recognition.State, catalog *species.Catalog) *RecognitionSession {
	session := &RecognitionSession{
		ID:        id,
		Result:    st.Result,
		Error:     st.Error,
		Label:     st.Result.DisplayLabel(),
		Details:   st.Result.ExtraFields(),
		CreatedAt: time.Now(),
	}

	if c, ok := st.Result.DisplayConfidence(); ok {
		session.Confidence = recognition.FormatConfidence(c)
	}

	// A response body can report a failure even when the request succeeded
	if session.Error == "" && st.Result.Failed() {
		session.Error = st.Result.Error
	}

	if session.Error == "" && catalog != nil {
		if r, ok := catalog.ByName(session.Label); ok {
			session.Species = &r
		}
	}

	return session
}
