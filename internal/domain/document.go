package domain

// DocType prefixes every generated filename.
const DocType = "sppt"

// MIME types produced by the renderers.
const (
	MimePDF  = "application/pdf"
	MimeHTML = "text/html; charset=utf-8"
)

// Document is one rendering of a Model.
type Document struct {
	Bytes    []byte
	MimeType string
	Filename string
}

// Extension returns the file extension matching the document's MIME type.
func (d Document) Extension() string {
	return ExtensionFor(d.MimeType)
}

// ExtensionFor maps a MIME type to "pdf" or "html"; anything else is "bin".
func ExtensionFor(mime string) string {
	switch mime {
	case MimePDF:
		return "pdf"
	case MimeHTML, "text/html":
		return "html"
	default:
		return "bin"
	}
}

// MimeFor maps a filename extension back to a MIME type, defaulting to PDF.
func MimeFor(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			if filename[i+1:] == "html" {
				return MimeHTML
			}
			break
		}
	}
	return MimePDF
}
