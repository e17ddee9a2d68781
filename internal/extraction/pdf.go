package extraction

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"go-resume-builder/pkg/logger"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// PDFExtractor extracts plain text from uploaded PDF bytes.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText reads every page of the PDF and concatenates the extracted
// text. Pages that fail individually are skipped; the whole call fails only
// when the document is unreadable or yields no text at all.
func (p *PDFExtractor) ExtractText(data []byte) (string, error) {
	pdfReader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", pdfError(fmt.Errorf("failed to read PDF: %w", err))
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", pdfError(fmt.Errorf("failed to get page count: %w", err))
	}
	if numPages == 0 {
		return "", pdfError(errors.New("PDF has no pages"))
	}

	var textBuilder strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			logger.Log.Warn("Skipping unreadable PDF page", "page", i, "error", err)
			continue
		}

		ex, err := extractor.New(page)
		if err != nil {
			logger.Log.Warn("Skipping PDF page without extractor", "page", i, "error", err)
			continue
		}

		pageText, err := ex.ExtractText()
		if err != nil {
			logger.Log.Warn("Failed to extract text from PDF page", "page", i, "error", err)
			continue
		}

		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n")
		}
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", pdfError(errors.New("no text could be extracted from any page"))
	}
	return text, nil
}
