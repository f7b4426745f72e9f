// CLAUDE:SUMMARY Parses numbered question fragments from a round body with the monotonic-numbering heuristics.
// CLAUDE:EXPORTS QuestionPolicy, ParseEntries
package rubric

import (
	"regexp"
	"strconv"
	"strings"
)

// entryMarkRe matches a question-number marker: digits, a dot, whitespace.
var entryMarkRe = regexp.MustCompile(`(\d+)\.\s+`)

// QuestionPolicy tunes the numbering heuristics. The observed exports append
// boilerplate that restarts at "1.", so by default a forward jump or a restart
// at 1 ends the body scan, while any other backward jump is treated as a
// numbering reset and resynced. Neither rule is load-bearing beyond empirical
// tolerance of real exports, hence the knobs. The zero value is the default
// behavior.
type QuestionPolicy struct {
	// ContinueOnSequenceBreak keeps scanning when the numbering jumps ahead
	// or restarts at 1 instead of ending the body scan there.
	ContinueOnSequenceBreak bool `json:"continue_on_sequence_break" yaml:"continue_on_sequence_break"`

	// KeepCounterOnDrop keeps the expected counter unchanged when a number
	// falls below it instead of resyncing to the new value.
	KeepCounterOnDrop bool `json:"keep_counter_on_drop" yaml:"keep_counter_on_drop"`
}

// ParseEntries scans a round body for numbered fragments and extracts a
// cleaned answer from each. Fragments that carry no answer are dropped
// without stopping the scan; the numbering heuristics in pol decide what an
// out-of-sequence number means.
func ParseEntries(body string, pol QuestionPolicy) []Entry {
	marks := entryMarkRe.FindAllStringSubmatchIndex(body, -1)

	var entries []Entry
	expected := -1
	for k, m := range marks {
		fragEnd := len(body)
		if k+1 < len(marks) {
			fragEnd = marks[k+1][0]
		}
		fragment := strings.TrimSpace(body[m[1]:fragEnd])
		if fragment == "" {
			continue
		}

		numText := body[m[2]:m[3]]
		num, err := strconv.Atoi(numText)
		if err != nil {
			continue
		}

		switch {
		case expected < 0:
			expected = num
		case num > expected:
			if !pol.ContinueOnSequenceBreak {
				return entries
			}
		case num < expected:
			// A restart at 1 is trailing boilerplate, not a reset.
			if num == 1 && !pol.ContinueOnSequenceBreak {
				return entries
			}
			if !pol.KeepCounterOnDrop {
				expected = num
			}
		}

		// The number is accepted, so the counter moves past it whether or
		// not the fragment carries an answer.
		expected = num + 1

		answer, ok := extractAnswer(fragment)
		if !ok {
			// Question text with no captured answer; keep scanning.
			continue
		}
		entries = append(entries, Entry{Number: numText, Answer: CleanAnswer(answer)})
	}
	return entries
}

// extractAnswer pulls the answer from a question+answer fragment: the text
// after the last question mark, else after the last exclamation mark, else
// the whole fragment (answer-only fragments never restate the question mark).
// Emphasis marks trailing the answer itself ("4!") are dropped. ok is false
// when the fragment is question text only.
func extractAnswer(fragment string) (string, bool) {
	text := strings.TrimSpace(fragment)
	if text == "" {
		return "", false
	}
	for _, mark := range []string{"?", "!"} {
		if pos := strings.LastIndex(text, mark); pos >= 0 {
			trailing := strings.TrimSpace(strings.TrimRight(text[pos+1:], "?! "))
			if trailing == "" {
				return "", false
			}
			return trailing, true
		}
	}
	return text, true
}
