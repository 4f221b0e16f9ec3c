package util

import (
	"errors"
	"strings"
	"unicode"
)

const maxFileNameLen = 255

// SanitizeFileName removes path separators and rejects traversal patterns,
// control characters, and overlong names.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" || len(s) > maxFileNameLen {
		return "", errors.New("invalid file name")
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", errors.New("invalid file name")
		}
	}
	return s, nil
}
