package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// imageExtensions are probed in order when a base path has no extension.
var imageExtensions = []string{".jpg", ".jpeg", ".png"}

// FindExistingImage resolves a base path to an existing image file.
// A path that already carries an extension is tested as-is; otherwise the
// known extensions are probed in order. Returns "" when nothing exists —
// callers treat that as "no match", not an error.
func FindExistingImage(basePath string) string {
	if filepath.Ext(basePath) != "" {
		if fileExists(basePath) {
			return basePath
		}
		return ""
	}
	for _, ext := range imageExtensions {
		candidate := basePath + ext
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// FindImageForName probes dir for an image named after name, returning the
// matching path or "". The name match is case-sensitive.
func FindImageForName(dir, name string) string {
	return FindExistingImage(filepath.Join(dir, name))
}

// MimeTypeFor maps an image file extension to its MIME type.
func MimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
