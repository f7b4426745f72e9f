package quizpipe

import (
	"bytes"
	"compress/zlib"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/rubrique/rubric"
)

// buildExport wraps page-content payloads in a stream container the way the
// trivia exports do: each payload flate-compressed between stream/endstream.
func buildExport(t *testing.T, payloads ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")
	for _, p := range payloads {
		var comp bytes.Buffer
		zw := zlib.NewWriter(&comp)
		if _, err := zw.Write([]byte(p)); err != nil {
			t.Fatalf("compress: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("close compressor: %v", err)
		}
		buf.WriteString("4 0 obj\n<< /Filter /FlateDecode >>\nstream\n")
		buf.Write(comp.Bytes())
		buf.WriteString("\nendstream\nendobj\n")
	}
	buf.WriteString("%%EOF\n")
	return buf.Bytes()
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	pipe, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return pipe
}

func TestExtract_EndToEnd(t *testing.T) {
	// WHAT: A synthetic export runs through scan, tokenize, flatten and
	// segment into the expected rubric.
	// WHY: The full path is the product; unit tests alone miss stage wiring.
	raw := buildExport(t,
		"BT (Round 1: Warmup ) Tj (1. What is 2+2? 4! ) Tj ET",
		"BT (2. Capital of France? Paris|) Tj ET",
	)
	res, err := newTestPipeline(t).Extract(context.Background(), raw)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Rubric) != 1 {
		t.Fatalf("rounds = %d, want 1", len(res.Rubric))
	}
	round := res.Rubric[0]
	if round.Name != "Round 1: Warmup" {
		t.Errorf("round name = %q, want %q", round.Name, "Round 1: Warmup")
	}
	want := []rubric.Entry{{Number: "1", Answer: "4"}, {Number: "2", Answer: "Paris"}}
	if len(round.Entries) != 2 || round.Entries[0] != want[0] || round.Entries[1] != want[1] {
		t.Errorf("entries = %v, want %v", round.Entries, want)
	}
	if res.Quality == nil {
		t.Fatal("expected quality metrics")
	}
	if res.Quality.BlockCount != 2 {
		t.Errorf("BlockCount = %d, want 2", res.Quality.BlockCount)
	}
}

func TestExtract_NoRounds(t *testing.T) {
	// WHAT: A structureless document returns ErrNoRounds with diagnostics
	// attached.
	// WHY: Callers map this to exit code 2 / HTTP 422 and need the quality
	// block to explain it.
	raw := buildExport(t, "BT (just some text without structure) Tj ET")
	res, err := newTestPipeline(t).Extract(context.Background(), raw)
	if !errors.Is(err, rubric.ErrNoRounds) {
		t.Fatalf("err = %v, want ErrNoRounds", err)
	}
	if res == nil || res.Quality == nil {
		t.Fatal("expected result with quality despite the error")
	}
	if res.Quality.DocChars == 0 {
		t.Error("expected recovered text in diagnostics")
	}
}

func TestExtract_LocaleArtifacts(t *testing.T) {
	// WHAT: Locale markers injected between glyph runs do not break headers.
	// WHY: The exports leak "en-US" mid-word; segmentation must still match.
	raw := buildExport(t, "(Round 1: Mixeden-US )(1. Sure? )(en-USYes)")
	res, err := newTestPipeline(t).Extract(context.Background(), raw)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Rubric[0].Entries[0].Answer != "Yes" {
		t.Errorf("answer = %q, want Yes", res.Rubric[0].Entries[0].Answer)
	}
}

func TestExtractFile_RoundTrip(t *testing.T) {
	// WHAT: ExtractFile reads from disk and matches Extract on the same bytes.
	dir := t.TempDir()
	path := filepath.Join(dir, "quiz.pdf")
	raw := buildExport(t, "(Round 1: Disk )(1. Works? Indeed)")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatal(err)
	}
	res, err := newTestPipeline(t).ExtractFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if res.Rubric.TotalEntries() != 1 {
		t.Errorf("entries = %d, want 1", res.Rubric.TotalEntries())
	}
}

func TestExtractFile_TooLarge(t *testing.T) {
	// WHAT: Files over the configured cap are rejected before reading.
	dir := t.TempDir()
	path := filepath.Join(dir, "big.pdf")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 2048), 0644); err != nil {
		t.Fatal(err)
	}
	pipe, err := New(Config{MaxFileSize: 1024})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := pipe.ExtractFile(context.Background(), path); err == nil ||
		!strings.Contains(err.Error(), "too large") {
		t.Errorf("err = %v, want file-too-large", err)
	}
}

func TestExtractFile_Missing(t *testing.T) {
	// WHAT: A missing path surfaces the stat error.
	if _, err := newTestPipeline(t).ExtractFile(context.Background(), filepath.Join(t.TempDir(), "nope.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	// WHAT: An empty path returns usable defaults.
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MaxFileSize <= 0 {
		t.Error("expected positive MaxFileSize default")
	}
	if cfg.Logger == nil {
		t.Error("expected default logger")
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	// WHAT: YAML values override defaults; untouched fields keep theirs.
	dir := t.TempDir()
	path := filepath.Join(dir, "rubrique.yaml")
	yml := `
max_file_size: 1048576
sanitize:
  locale_markers: ["fr-FR"]
rounds:
  tiebreaker_keyword: "Finale"
questions:
  continue_on_sequence_break: true
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MaxFileSize != 1048576 {
		t.Errorf("MaxFileSize = %d, want 1048576", cfg.MaxFileSize)
	}
	if len(cfg.Sanitize.LocaleMarkers) != 1 || cfg.Sanitize.LocaleMarkers[0] != "fr-FR" {
		t.Errorf("LocaleMarkers = %v, want [fr-FR]", cfg.Sanitize.LocaleMarkers)
	}
	if cfg.Rounds.TiebreakerKeyword != "Finale" {
		t.Errorf("TiebreakerKeyword = %q, want Finale", cfg.Rounds.TiebreakerKeyword)
	}
	if !cfg.Questions.ContinueOnSequenceBreak {
		t.Error("expected ContinueOnSequenceBreak = true")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	// WHAT: Out-of-range values are rejected.
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("sanitize:\n  printable_threshold: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected validation error for threshold > 1")
	}
}
