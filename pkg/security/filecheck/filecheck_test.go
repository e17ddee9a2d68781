package filecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePDF(t *testing.T) {
	pdf := []byte("%PDF-1.7 fake content")

	assert.NoError(t, ValidatePDF("resume.pdf", pdf))
	assert.NoError(t, ValidatePDF("upload", pdf)) // browsers may omit the extension

	assert.Error(t, ValidatePDF("resume.exe", pdf))
	assert.Error(t, ValidatePDF("resume.pdf", []byte("MZ executable")))
	assert.Error(t, ValidatePDF("resume.pdf", []byte{0x25}))
	assert.Error(t, ValidatePDF("resume.pdf", nil))
}
