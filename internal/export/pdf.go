package export

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/tripgpt/planning-platform/internal/model"
)

// PDF serializes the paginated document form: a destination heading,
// then one heading and body per day. Enrichment fields are omitted.
func PDF(it *model.Itinerary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, tr(it.Destination))
	pdf.Ln(16)

	for _, day := range it.Days {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 9, tr(fmt.Sprintf("Jour %d : %s", day.Number, day.Title)))
		pdf.Ln(9)

		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, tr(day.Description), "", "L", false)
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return buf.Bytes(), nil
}
