package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tripgpt/planning-platform/internal/model"
)

// JSON serializes a full-fidelity itinerary, all fields included.
func JSON(it *model.Itinerary) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(it); err != nil {
		return nil, fmt.Errorf("failed to encode itinerary: %w", err)
	}
	return buf.Bytes(), nil
}
