package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidatePageIndex checks that page addresses one of count pages.
func ValidatePageIndex(page, count int) error {
	if count <= 0 {
		return New(ErrCodeInvalidPage, "document has no pages")
	}
	if page < 0 || page >= count {
		return New(ErrCodeInvalidPage, "page %d out of range [0, %d)", page, count)
	}
	return nil
}

// ValidateSize checks that a pixel size is positive and not absurdly large.
// The upper bound keeps a typo on the command line from allocating gigabytes.
func ValidateSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return New(ErrCodeInvalidSize, "size %dx%d must be positive", w, h)
	}
	if w > 16384 || h > 16384 {
		return New(ErrCodeInvalidSize, "size %dx%d exceeds 16384 pixels", w, h)
	}
	return nil
}

// ValidateDocumentPath validates a user-supplied document path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be .pdf or .md
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "document path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "document path contains control characters")
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".md", ".markdown":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "unsupported document type %q (want .pdf or .md)", filepath.Ext(path))
	}
}
