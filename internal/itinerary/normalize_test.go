package itinerary_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgpt/planning-platform/internal/itinerary"
	"github.com/tripgpt/planning-platform/internal/model"
)

func TestNormalize_WellFormedInput(t *testing.T) {
	raw := "Jour 1: Arrival\n- Airport\nJour 2: City tour\n- Museum\n- Lunch"

	days := itinerary.Normalize(raw, 2)

	require.Len(t, days, 2)
	assert.Equal(t, model.Day{Number: 1, Title: "Arrival", Description: "Airport\n"}, days[0])
	assert.Equal(t, model.Day{Number: 2, Title: "City tour", Description: "Museum\nLunch\n"}, days[1])
}

func TestNormalize_GeneratedShape(t *testing.T) {
	// k well-formed day blocks round-trip numbers, titles, and details.
	const k = 5
	var b strings.Builder
	for n := 1; n <= k; n++ {
		fmt.Fprintf(&b, "Jour %d: Titre %d\n- premier %d\n- second %d\n", n, n, n, n)
	}

	days := itinerary.Normalize(b.String(), k)

	require.Len(t, days, k)
	for i, day := range days {
		n := i + 1
		assert.Equal(t, n, day.Number)
		assert.Equal(t, fmt.Sprintf("Titre %d", n), day.Title)
		assert.Equal(t, fmt.Sprintf("premier %d\nsecond %d\n", n, n), day.Description)
	}
}

func TestNormalize_LengthLaw(t *testing.T) {
	// The result always has exactly requestedDays entries, no matter
	// how many headings the text contains.
	raw := "Jour 1: A\nJour 2: B\nJour 3: C"
	for d := 1; d <= 6; d++ {
		assert.Len(t, itinerary.Normalize(raw, d), d, "requestedDays=%d", d)
	}
}

func TestNormalize_EmptyInputPadding(t *testing.T) {
	days := itinerary.Normalize("", 4)

	require.Len(t, days, 4)
	for i, day := range days {
		assert.Equal(t, i+1, day.Number)
		assert.Equal(t, fmt.Sprintf("Jour %d", i+1), day.Title)
		assert.Equal(t, itinerary.PlaceholderDescription, day.Description)
	}
}

func TestNormalize_TruncationKeepsVerbatimNumbers(t *testing.T) {
	// Day numbers come from the text, not from position: truncating
	// "Jour 1 / Jour 3" to two entries keeps numbers 1 and 3.
	days := itinerary.Normalize("Jour 1: A\nJour 3: B", 2)

	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].Number)
	assert.Equal(t, 3, days[1].Number)
}

func TestNormalize_DuplicateNumbersPassThrough(t *testing.T) {
	days := itinerary.Normalize("Jour 2: Encore\nJour 2: Toujours", 2)

	require.Len(t, days, 2)
	assert.Equal(t, 2, days[0].Number)
	assert.Equal(t, "Encore", days[0].Title)
	assert.Equal(t, 2, days[1].Number)
	assert.Equal(t, "Toujours", days[1].Title)
}

func TestNormalize_ListMarkerStripping(t *testing.T) {
	raw := "Jour 1\n- Visit museum\n* Walk the park\nVisit harbor"

	days := itinerary.Normalize(raw, 1)

	require.Len(t, days, 1)
	assert.Equal(t, "Visit museum\nWalk the park\nVisit harbor\n", days[0].Description)
}

func TestNormalize_DefaultTitle(t *testing.T) {
	days := itinerary.Normalize("Jour 1\n- quelque chose\nJour 2:\n- autre chose", 2)

	require.Len(t, days, 2)
	assert.Equal(t, "Jour 1", days[0].Title)
	assert.Equal(t, "Jour 2", days[1].Title)
}

func TestNormalize_HeadingVariants(t *testing.T) {
	cases := []struct {
		line   string
		number int
		title  string
	}{
		{"Jour 1: Arrivée", 1, "Arrivée"},
		{"jour 2. Vieille ville", 2, "Vieille ville"},
		{"JOUR 10 Marchés", 10, "Marchés"},
		{"  Jour 3 : Plage", 3, "Plage"},
	}
	for _, tc := range cases {
		days := itinerary.Parse(tc.line)
		require.Len(t, days, 1, "line %q", tc.line)
		assert.Equal(t, tc.number, days[0].Number, "line %q", tc.line)
		assert.Equal(t, tc.title, days[0].Title, "line %q", tc.line)
	}
}

func TestParse_PreHeadingLinesDiscarded(t *testing.T) {
	raw := "Voici votre itinéraire:\nIl sera magnifique.\nJour 1: Départ\n- Vol"

	days := itinerary.Parse(raw)

	require.Len(t, days, 1)
	assert.Equal(t, "Vol\n", days[0].Description)
}

func TestParse_HeadinglessInput(t *testing.T) {
	assert.Empty(t, itinerary.Parse("just prose\nwith no structure at all"))
}

func TestParse_BlankLinesIgnored(t *testing.T) {
	raw := "Jour 1: A\n\n- ligne un\n\n\n- ligne deux\n"

	days := itinerary.Parse(raw)

	require.Len(t, days, 1)
	assert.Equal(t, "ligne un\nligne deux\n", days[0].Description)
}

func TestNormalize_NeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"Jour",
		"Jour : sans numéro",
		"Jour 0: zéro",
		"Jour 99999999999999999999: déborde",
		strings.Repeat("- détail orphelin\n", 100),
	}
	for _, raw := range inputs {
		assert.Len(t, itinerary.Normalize(raw, 3), 3, "input %q", raw)
	}
}
