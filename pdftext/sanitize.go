// CLAUDE:SUMMARY Filters tokens to mostly-printable text and collapses them into one flattened document string.
// CLAUDE:EXPORTS SanitizeConfig, Flatten
package pdftext

import "strings"

// SanitizeConfig tunes the token filter and artifact cleanup.
type SanitizeConfig struct {
	// PrintableThreshold is the minimum share of printable bytes a token needs
	// to survive the filter (default 0.8). Fully printable tokens always pass.
	PrintableThreshold float64 `json:"printable_threshold" yaml:"printable_threshold"`

	// LocaleMarkers are artifact strings the export leaks between glyph runs;
	// each occurrence is replaced by a single space (default: "en-US").
	LocaleMarkers []string `json:"locale_markers" yaml:"locale_markers"`
}

func (c *SanitizeConfig) defaults() {
	if c.PrintableThreshold <= 0 {
		c.PrintableThreshold = 0.8
	}
	if c.LocaleMarkers == nil {
		c.LocaleMarkers = []string{"en-US"}
	}
}

// Flatten filters tokens to mostly-printable ones, concatenates the survivors
// in order, strips remaining non-printable bytes, removes locale-marker
// artifacts, and collapses all whitespace to single spaces. The result
// contains only printable ASCII; flattening an already-flattened string is a
// no-op.
func Flatten(tokens []string, cfg SanitizeConfig) string {
	cfg.defaults()

	var sb strings.Builder
	for _, tok := range tokens {
		if !mostlyPrintable(tok, cfg.PrintableThreshold) {
			continue
		}
		for i := 0; i < len(tok); i++ {
			if printableByte(tok[i]) {
				sb.WriteByte(tok[i])
			}
		}
	}

	doc := sb.String()
	for _, marker := range cfg.LocaleMarkers {
		doc = strings.ReplaceAll(doc, marker, " ")
	}
	return collapseWhitespace(doc)
}

// mostlyPrintable reports whether at least threshold of the token's bytes are
// printable ASCII or tab/CR/LF, or all of them are (short tokens where one bad
// byte would otherwise sink the ratio). Empty tokens never pass.
func mostlyPrintable(tok string, threshold float64) bool {
	if tok == "" {
		return false
	}
	printable := 0
	for i := 0; i < len(tok); i++ {
		if printableByte(tok[i]) {
			printable++
		}
	}
	return printable >= int(float64(len(tok))*threshold) || printable == len(tok)
}

func printableByte(b byte) bool {
	return (b >= 0x20 && b <= 0x7E) || b == '\t' || b == '\r' || b == '\n'
}

func collapseWhitespace(s string) string {
	var sb strings.Builder
	prevSpace := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		default:
			sb.WriteByte(s[i])
			prevSpace = false
		}
	}
	return strings.TrimRight(sb.String(), " ")
}
