// Package export serializes itineraries into downloadable formats.
package export

// Format identifies an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ContentType returns the MIME type for a format, or "" for an unknown
// one.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	}
	return ""
}

// Extension returns the file extension for a format, without the dot.
func (f Format) Extension() string {
	return string(f)
}
