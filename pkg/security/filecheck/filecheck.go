// Package filecheck validates uploaded files by content, not by the
// extension or MIME type the client claims.
package filecheck

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// %PDF
var pdfMagic = []byte{0x25, 0x50, 0x44, 0x46}

// ValidatePDF checks that an upload really is a PDF. A filename extension,
// when present, must be .pdf; the content must start with the PDF magic
// bytes regardless of what the extension says.
func ValidatePDF(filename string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" && ext != ".pdf" {
		return errors.New("file extension not allowed: " + ext)
	}

	if len(data) < len(pdfMagic) {
		return errors.New("file too small to be a PDF")
	}

	if !bytes.HasPrefix(data, pdfMagic) {
		return errors.New("file content does not match PDF format (potential file spoofing)")
	}
	return nil
}
