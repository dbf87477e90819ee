package constants

import "strings"

// Media formats the ingestion endpoint understands.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
	TEXT  = "TEXT"
)

// AllowedExtensions holds the default allowed file extensions for receipt ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
	"txt":  {},
}

var imageMIMEs = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/jpg":  {},
	"image/webp": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to a media format, or "" if unsupported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png", "webp":
		return IMAGE
	case "txt", "text":
		return TEXT
	default:
		return ""
	}
}

// MapMediaType maps a declared MIME type to a media format, falling back to
// the filename extension when the type is generic or absent.
func MapMediaType(contentType, filename string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if _, ok := imageMIMEs[ct]; ok {
		return IMAGE
	}
	switch {
	case ct == "application/pdf":
		return PDF
	case strings.HasPrefix(ct, "text/"):
		return TEXT
	}
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return MapExtToFormat(filename[i:])
	}
	return ""
}
