package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/infrastructure/document"
)

// readDocument loads a local txt, pdf or docx file as plain text
func readDocument(extractor *document.Extractor, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if document.KindOf(path, data) == document.KindUnknown {
		return "", fmt.Errorf("%s: %w", path, domain.ErrUnsupportedFileType)
	}

	text := extractor.Extract(filepath.Base(path), data)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", path, domain.ErrEmptyDocument)
	}
	return text, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
