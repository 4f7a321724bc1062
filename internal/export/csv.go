package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/tripgpt/planning-platform/internal/model"
)

// CSV serializes the tabular form: one row per day with number, title,
// and description. Enrichment fields are omitted.
func CSV(it *model.Itinerary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"day", "title", "description"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, day := range it.Days {
		record := []string{strconv.Itoa(day.Number), day.Title, day.Description}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}
