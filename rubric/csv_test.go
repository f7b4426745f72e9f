package rubric

import (
	"strings"
	"testing"
)

func TestWriteCSV_Shape(t *testing.T) {
	// WHAT: Each round renders as name row, header row, entry rows, blank row.
	// WHY: Scorekeepers open this in a spreadsheet; the shape is the contract.
	r := Rubric{
		{Name: "Round 1: Warmup", Entries: []Entry{{"1", "4"}, {"2", "Paris"}}},
		{Name: "Tiebreakers", Entries: []Entry{{"1", "42"}}},
	}
	var sb strings.Builder
	if err := WriteCSV(&sb, r); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "Round 1: Warmup\n" +
		"Question,Answer\n" +
		"1,4\n" +
		"2,Paris\n" +
		"\n" +
		"Tiebreakers\n" +
		"Question,Answer\n" +
		"1,42\n" +
		"\n"
	if sb.String() != want {
		t.Errorf("csv = %q, want %q", sb.String(), want)
	}
}

func TestWriteCSV_QuotesCommas(t *testing.T) {
	// WHAT: Answers containing commas are quoted.
	// WHY: Cleaned answers legitimately contain ", " lists.
	r := Rubric{{Name: "Round 1: Lists", Entries: []Entry{{"1", "salt, pepper"}}}}
	var sb strings.Builder
	if err := WriteCSV(&sb, r); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.Contains(sb.String(), `"salt, pepper"`) {
		t.Errorf("csv = %q, want quoted answer", sb.String())
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	// WHAT: An empty rubric writes nothing.
	var sb strings.Builder
	if err := WriteCSV(&sb, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if sb.String() != "" {
		t.Errorf("csv = %q, want empty", sb.String())
	}
}
