package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/minutesgen/errors"
	"github.com/johnquangdev/minutesgen/internal/domain/entities"
)

// LocalWriter persists the rendered document and the raw structured record
// as a standalone file pair. Filenames are derived from the transcript's
// base name and the current date; a second run on the same day and source
// overwrites the previous pair.
type LocalWriter struct {
	dir    string
	now    func() time.Time
	logger *zap.Logger
}

// NewLocalWriter creates a writer rooted at dir, creating it on first save
func NewLocalWriter(dir string, logger *zap.Logger) *LocalWriter {
	return &LocalWriter{
		dir:    dir,
		now:    time.Now,
		logger: logger,
	}
}

// Save writes the HTML document and the JSON record and returns both paths.
func (w *LocalWriter) Save(stem string, html string, m *entities.MeetingMinutes) (string, string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", "", apperrors.ErrLocalSaveFailed(w.dir, err)
	}

	datePart := w.now().Format("20060102")

	htmlPath := filepath.Join(w.dir, fmt.Sprintf("minutes_%s_%s.html", stem, datePart))
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return "", "", apperrors.ErrLocalSaveFailed(htmlPath, err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", "", apperrors.ErrLocalSaveFailed(w.dir, err)
	}
	jsonPath := filepath.Join(w.dir, fmt.Sprintf("minutes_%s_%s.json", stem, datePart))
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", "", apperrors.ErrLocalSaveFailed(jsonPath, err)
	}

	w.logger.Info("✅ Local copy saved",
		zap.String("html", htmlPath),
		zap.String("json", jsonPath),
	)
	return htmlPath, jsonPath, nil
}
