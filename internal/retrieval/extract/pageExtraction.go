package extract

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"

	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
)

func errUnsupported(t segmentModel.DocType) error {
	return fmt.Errorf("unsupported content type: %s", t)
}

func extractPDF(path string) (string, error) {
	log().Debug("extractPDF", "attempting extraction", path)
	f, err := pdf.Open(path)
	if err != nil {
		log().Error("failed opening of pdf file", "error", err)
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var text strings.Builder
	numPages := f.NumPage()
	log().Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// A bad page is skipped, the rest of the document still counts
			log().Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		text.WriteString(content)
		text.WriteString("\n")
	}
	return text.String(), nil
}

// extractWithCat reads a .odt, .docx, .rtf or plaintext file and returns the
// content as a string.
func extractWithCat(path string) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		log().Error("Error extracting content from doc", "error", err)
		return "", fmt.Errorf("failed to extract document: %w", err)
	}
	return text, nil
}

// protectExtract runs a single page extraction on its own goroutine so a
// malformed page cannot hang the whole ingestion.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		log().Error("pageExtract", "timeout", true)
		return "", errors.New("timeout")
	}
}
