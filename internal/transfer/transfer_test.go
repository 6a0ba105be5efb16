package transfer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/wellness/internal/models"
)

func sampleDataset() models.Dataset {
	ds := models.DefaultDataset()
	ds.Moods = []models.MoodEntry{{ID: "m1", Date: "2025-06-15", Emoji: "😌", Mood: "Calm", Note: "tea", Rating: 4, Timestamp: 1749978000000}}
	ds.Hydration = []models.HydrationEntry{{ID: "h1", Date: "2025-06-15", Amount: 1250, Timestamp: 1749978000000}}
	ds.HabitEntries = []models.HabitEntry{{ID: "e1", HabitID: "3", Date: "2025-06-15", Completed: true, Value: 12.5, Timestamp: 1749978000000}}
	return ds
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatCBOR} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Export(&buf, sampleDataset(), format); err != nil {
				t.Fatalf("Export failed: %v", err)
			}

			got, err := Import(buf.Bytes(), format)
			if err != nil {
				t.Fatalf("Import failed: %v", err)
			}
			if diff := cmp.Diff(sampleDataset(), got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExportJSONKeepsUnknownKeys(t *testing.T) {
	ds := sampleDataset()
	ds.Extra = map[string]json.RawMessage{"theme": json.RawMessage(`"dark"`)}

	var buf bytes.Buffer
	if err := Export(&buf, ds, FormatJSON); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"theme": "dark"`) {
		t.Errorf("expected unknown key in export:\n%s", buf.String())
	}
}

func TestImportJSONC(t *testing.T) {
	input := []byte(`{
		// hand-edited export
		"habits": [
			{"id": "x", "name": "Walk", "target": 20, "unit": "minutes",},
		],
		/* moods intentionally omitted */
	}`)

	ds, err := Import(input, FormatJSONC)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(ds.Habits) != 1 || ds.Habits[0].Name != "Walk" {
		t.Errorf("unexpected habits: %+v", ds.Habits)
	}
	if ds.Moods == nil || len(ds.Moods) != 0 {
		t.Errorf("omitted moods should default to empty, got %+v", ds.Moods)
	}
}

func TestImportYAMLMergeRules(t *testing.T) {
	input := []byte(`
habits: []
hydration:
  - id: h1
    date: "2025-06-15"
    amount: 500
    timestamp: 1
moods: oops
`)
	ds, err := Import(input, FormatYAML)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(ds.Habits) != 0 {
		t.Errorf("empty habits should override defaults, got %d", len(ds.Habits))
	}
	if len(ds.Hydration) != 1 || ds.Hydration[0].Amount != 500 {
		t.Errorf("unexpected hydration: %+v", ds.Hydration)
	}
	if len(ds.Moods) != 0 {
		t.Errorf("wrong-shaped moods should fall back to default, got %+v", ds.Moods)
	}
}

func TestImportYAMLUnquotedDates(t *testing.T) {
	input := []byte(`
hydration:
  - id: h1
    date: 2025-06-15
    amount: 250
    timestamp: 1
`)
	ds, err := Import(input, FormatYAML)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(ds.Hydration) != 1 || ds.Hydration[0].Date != "2025-06-15" {
		t.Errorf("unquoted date not kept as a calendar day: %+v", ds.Hydration)
	}
}

func TestImportRejectsNonMapping(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatJSON, `[1, 2]`},
		{FormatYAML, `- a`},
		{FormatYAML, ``},
		{FormatJSON, `{oops`},
	}
	for _, tt := range tests {
		if _, err := Import([]byte(tt.input), tt.format); err == nil {
			t.Errorf("Import(%q, %s) expected error", tt.input, tt.format)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML, "cbor": FormatCBOR, "jsonc": FormatJSONC}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}

	if got := FormatFromPath("/tmp/export.yml"); got != FormatYAML {
		t.Errorf("FormatFromPath(.yml) = %q", got)
	}
	if got := FormatFromPath("/tmp/export"); got != FormatJSON {
		t.Errorf("FormatFromPath(no ext) = %q", got)
	}
}
