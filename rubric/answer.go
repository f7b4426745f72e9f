// CLAUDE:SUMMARY Answer cleanup — note-annotation stripping, delimiter normalization, numeric comma rejoin.
// CLAUDE:EXPORTS CleanAnswer
package rubric

import (
	"regexp"
	"strings"
)

var (
	// notePattern matches the "| (note: ...)" annotation tail some exports
	// append to answers.
	notePattern = regexp.MustCompile(`(?i)\|\s*\(note:.*`)

	slashSpaceRe = regexp.MustCompile(`\s*/\s*`)
	commaSpaceRe = regexp.MustCompile(`\s*,\s*`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// CleanAnswer normalizes a raw answer: drops note annotations, strips trailing
// pipes, gives slashes and commas single-space spacing, re-joins digit groups
// the comma step would otherwise split (so "1,000" stays "1,000"), and
// collapses leftover whitespace.
func CleanAnswer(answer string) string {
	answer = notePattern.Split(strings.TrimSpace(answer), 2)[0]
	answer = strings.TrimSpace(strings.TrimRight(answer, "|"))
	answer = slashSpaceRe.ReplaceAllString(answer, " / ")
	answer = commaSpaceRe.ReplaceAllString(answer, ", ")
	answer = rejoinDigitCommas(answer)
	answer = multiSpaceRe.ReplaceAllString(answer, " ")
	return strings.TrimSpace(answer)
}

// rejoinDigitCommas collapses the ", " between two digits back to a bare
// comma. Runs right after comma normalization, so the separator is always
// exactly one comma and one space.
func rejoinDigitCommas(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && i > 0 && i+2 < len(s) &&
			isDigit(s[i-1]) && s[i+1] == ' ' && isDigit(s[i+2]) {
			sb.WriteByte(',')
			i++ // swallow the space
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
