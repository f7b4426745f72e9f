package pdftext

import "testing"

func TestPrintableRatio_Normal(t *testing.T) {
	// WHAT: Normal text has high printable ratio.
	// WHY: Validates baseline quality scoring.
	ratio := printableRatio("Round 1: a normal sentence with standard characters.")
	if ratio < 0.95 {
		t.Errorf("printable ratio = %f, want > 0.95", ratio)
	}
}

func TestPrintableRatio_Garbage(t *testing.T) {
	// WHAT: Control chars produce low printable ratio.
	// WHY: Detects garbled glyph extraction.
	ratio := printableRatio("abc\x01\x02\x03\x04\x05\x06\x07\x08def\x0e\x0f\x10\x11\x12")
	if ratio >= 0.85 {
		t.Errorf("printable ratio = %f, want < 0.85", ratio)
	}
}

func TestWordlikeRatio_Normal(t *testing.T) {
	// WHAT: Normal phrases have high wordlike ratio.
	// WHY: Real answers are multi-character words.
	ratio := wordlikeRatio("What is the capital of France Paris of course")
	if ratio < 0.70 {
		t.Errorf("wordlike ratio = %f, want > 0.70", ratio)
	}
}

func TestWordlikeRatio_SingleChar(t *testing.T) {
	// WHAT: Single-char tokens produce low wordlike ratio.
	// WHY: Detects broken character-by-character extraction.
	ratio := wordlikeRatio("a b c d e f g h i j k l")
	if ratio >= 0.40 {
		t.Errorf("wordlike ratio = %f, want < 0.40", ratio)
	}
}

func TestScore_CountsAndChars(t *testing.T) {
	// WHAT: Score carries the pipeline counters through.
	q := Score("Round 1: Alpha", 3, 12)
	if q.BlockCount != 3 || q.TokenCount != 12 || q.DocChars != 14 {
		t.Errorf("Score = %+v", q)
	}
}

func TestLooksScanned(t *testing.T) {
	// WHAT: Almost no text plus image streams flags a scan.
	// WHY: The most common cause of an empty rubric is a photographed quiz.
	q := &Quality{DocChars: 10, HasImageStreams: true}
	if !q.LooksScanned() {
		t.Error("expected LooksScanned=true for low chars + images")
	}
	q = &Quality{DocChars: 5000, HasImageStreams: true}
	if q.LooksScanned() {
		t.Error("expected LooksScanned=false for plenty of text")
	}
	q = &Quality{DocChars: 10, HasImageStreams: false}
	if q.LooksScanned() {
		t.Error("expected LooksScanned=false without image streams")
	}
}
