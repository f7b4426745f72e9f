// CLAUDE:SUMMARY Defines Entry, Round, Rubric and the ErrNoRounds sentinel for the answer-key model.
package rubric

import "errors"

// ErrNoRounds is returned when a document yields no rounds and no tiebreaker
// section. It is the one failure the core surfaces: a round-less document is
// almost always an unsupported export rather than a genuinely empty quiz, and
// callers need to tell the two apart.
var ErrNoRounds = errors.New("no rounds recovered")

// Entry is one recovered question within a round. Number is kept as written in
// the source; Answer is non-empty after cleanup.
type Entry struct {
	Number string `json:"number"`
	Answer string `json:"answer"`
}

// Round is a named section of the quiz with its entries, in source order.
// Tiebreaker sections use the literal name "Tiebreakers".
type Round struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Rubric is the ordered answer key for a whole document.
type Rubric []Round

// TotalEntries returns the entry count across all rounds.
func (r Rubric) TotalEntries() int {
	n := 0
	for _, round := range r {
		n += len(round.Entries)
	}
	return n
}
