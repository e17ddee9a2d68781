package extraction

import "fmt"

// ExtractionError reports an upstream failure while turning a PDF into
// structured text, either in the PDF reader or in the LLM provider call.
type ExtractionError struct {
	Stage string // "pdf" or "llm"
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed (%s): %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func pdfError(err error) *ExtractionError {
	return &ExtractionError{Stage: "pdf", Err: err}
}

func llmError(err error) *ExtractionError {
	return &ExtractionError{Stage: "llm", Err: err}
}
