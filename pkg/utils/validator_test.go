package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateROCDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"full form", "113.05.20", false},
		{"single digit month and day", "114.1.5", false},
		{"two digit year", "99.12.31", false},
		{"gregorian format rejected", "2025-01-15", true},
		{"slash separators rejected", "114/1/15", true},
		{"four digit year rejected", "2025.1.15", true},
		{"trailing text rejected", "114.1.15 ", true},
		{"missing day rejected", "114.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateROCDate(tt.date)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateImageExtension(t *testing.T) {
	assert.NoError(t, ValidateImageExtension("bankbook.jpg"))
	assert.NoError(t, ValidateImageExtension("bankbook.JPEG"))
	assert.NoError(t, ValidateImageExtension("scan.png"))
	assert.NoError(t, ValidateImageExtension("scan.gif"))
	assert.Error(t, ValidateImageExtension("scan.pdf"))
	assert.Error(t, ValidateImageExtension("scan"))
	assert.Error(t, ValidateImageExtension("scan.png.exe"))
}

func TestValidateImageContentType(t *testing.T) {
	assert.NoError(t, ValidateImageContentType("image/jpeg"))
	assert.NoError(t, ValidateImageContentType("image/png"))
	assert.NoError(t, ValidateImageContentType("image/gif"))
	assert.Error(t, ValidateImageContentType("application/pdf"))
	assert.Error(t, ValidateImageContentType("text/html"))
	assert.Error(t, ValidateImageContentType(""))
}
