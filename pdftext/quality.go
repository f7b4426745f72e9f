// CLAUDE:SUMMARY Extraction-quality scoring over the flattened document — explains empty results.
// CLAUDE:EXPORTS Quality, Score, LooksScanned
package pdftext

import "strings"

// Quality captures metrics about one extraction pass. It is advisory: the
// pipeline attaches it to every result so callers can tell "genuinely empty
// export" apart from "glyph soup" or "image-only scan" when no rounds come out.
type Quality struct {
	BlockCount     int     `json:"block_count"`
	TokenCount     int     `json:"token_count"`
	DocChars       int     `json:"doc_chars"`
	PrintableRatio float64 `json:"printable_ratio"`
	WordlikeRatio  float64 `json:"wordlike_ratio"`

	// Filled from ReadMeta when the full file was available.
	PageCount       int  `json:"page_count,omitempty"`
	HasImageStreams bool `json:"has_image_streams,omitempty"`
}

// Score computes quality metrics for a flattened document.
func Score(doc string, blocks, tokens int) *Quality {
	return &Quality{
		BlockCount:     blocks,
		TokenCount:     tokens,
		DocChars:       len(doc),
		PrintableRatio: printableRatio(doc),
		WordlikeRatio:  wordlikeRatio(doc),
	}
}

// LooksScanned reports whether the document is likely an image-only scan:
// almost no recovered text despite image streams being present.
func (q *Quality) LooksScanned() bool {
	return q.DocChars < 50 && q.HasImageStreams
}

func printableRatio(text string) float64 {
	if len(text) == 0 {
		return 1.0
	}
	printable := 0
	for i := 0; i < len(text); i++ {
		if printableByte(text[i]) {
			printable++
		}
	}
	return float64(printable) / float64(len(text))
}

// wordlikeRatio returns the share of whitespace-separated tokens with a
// plausible word length (2-15). Character-by-character glyph extraction
// produces mostly single-letter tokens and scores low.
func wordlikeRatio(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	wordlike := 0
	for _, f := range fields {
		if n := len(f); n >= 2 && n <= 15 {
			wordlike++
		}
	}
	return float64(wordlike) / float64(len(fields))
}
