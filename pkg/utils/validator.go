package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var rocDateRegex = regexp.MustCompile(`^\d{1,3}\.\d{1,2}\.\d{1,2}$`)

// ValidateROCDate validates a Republic of China calendar date string
// in the form xxx.xx.xx (e.g. 113.05.20). Empty strings are allowed
// because the application date is optional.
func ValidateROCDate(date string) error {
	if date == "" {
		return nil
	}
	if !rocDateRegex.MatchString(date) {
		return fmt.Errorf("date must be in ROC format xxx.xx.xx: %s", date)
	}
	return nil
}

// ValidateImageExtension checks that filename carries a supported image extension
func ValidateImageExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
		return nil
	}
	return fmt.Errorf("unsupported image extension: %s", ext)
}

// ValidateImageContentType checks an uploaded file's declared content type
func ValidateImageContentType(contentType string) error {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif":
		return nil
	}
	return fmt.Errorf("unsupported image content type: %s", contentType)
}
