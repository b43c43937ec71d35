package constants

import (
	"path/filepath"
	"strings"
)

// Format tags the two supported input kinds.
type Format string

const (
	PDF   Format = "PDF"
	IMAGE Format = "IMAGE"
)

// imageExtensions holds the raster formats the OCR path accepts.
var imageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"bmp":  {},
	"tif":  {},
	"tiff": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to its input format.
// Returns "" for unsupported extensions.
func MapExtToFormat(ext string) Format {
	ext = NormalizeExt(ext)
	if ext == "pdf" {
		return PDF
	}
	if _, ok := imageExtensions[ext]; ok {
		return IMAGE
	}
	return ""
}

// FormatForPath resolves the input format from a path's extension.
func FormatForPath(path string) Format {
	return MapExtToFormat(filepath.Ext(path))
}
