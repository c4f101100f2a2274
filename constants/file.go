package constants

import "strings"

const (
	PDF = "PDF"
	TXT = "TXT"
)

// FileTypes holds the source formats the pipeline accepts.
var FileTypes = []string{PDF, TXT}

// AllowedExtensions holds the default extensions picked up by directory ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// PDFMimeType is the content type stamped on every split output.
const PDFMimeType = "application/pdf"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension onto one of FileTypes, or "" if unsupported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "txt":
		return TXT
	default:
		return ""
	}
}
