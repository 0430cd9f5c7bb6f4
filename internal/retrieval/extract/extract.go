package extract

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
	"github.com/campuslms/RetrievalAPI/pkg/logger_i"
)

var (
	logger *logger_i.Logger
	once   sync.Once
)

func log() *logger_i.Logger {
	once.Do(func() { logger = logger_i.NewLogger("Text Extraction ") })
	return logger
}

// DetectType maps an uploaded file's extension to its container format.
func DetectType(docPath string) segmentModel.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return segmentModel.PDF
	case ".docx", ".rtf", ".odt":
		return segmentModel.DOCX
	case ".txt":
		return segmentModel.TXT
	default:
		return segmentModel.ERR
	}
}

// Text decodes a supported container into one plain-text string. A corrupt
// or partially-unreadable container degrades to whatever text could be
// recovered - possibly empty - rather than failing the pipeline; the caller
// decides what an empty result means.
func Text(path string, contentType segmentModel.DocType) (string, error) {
	switch contentType {
	case segmentModel.PDF:
		return extractPDF(path)
	case segmentModel.DOCX, segmentModel.TXT:
		return extractWithCat(path)
	default:
		return "", errUnsupported(contentType)
	}
}
