// CLAUDE:SUMMARY Segments the flattened document into named rounds plus a trailing Tiebreakers section.
// CLAUDE:EXPORTS SegmentConfig, Segmenter, NewSegmenter
package rubric

import (
	"fmt"
	"regexp"
	"strings"
)

// questionMarkRe locates the first question-number marker inside a section.
var questionMarkRe = regexp.MustCompile(`\b\d+\.`)

// SegmentConfig names the keywords that delimit sections. Matching is
// case-insensitive.
type SegmentConfig struct {
	RoundKeyword      string `json:"round_keyword" yaml:"round_keyword"`
	TiebreakerKeyword string `json:"tiebreaker_keyword" yaml:"tiebreaker_keyword"`
}

func (c *SegmentConfig) defaults() {
	if c.RoundKeyword == "" {
		c.RoundKeyword = "Round"
	}
	if c.TiebreakerKeyword == "" {
		c.TiebreakerKeyword = "Tiebreakers"
	}
}

// Segmenter carries the matchers for round and tiebreaker boundaries,
// compiled once. It is stateless and safe for concurrent use.
type Segmenter struct {
	roundRe       *regexp.Regexp
	tiebreakRe    *regexp.Regexp
	tiebreakLabel string
	questions     QuestionPolicy
}

// NewSegmenter compiles the boundary matchers for the given keywords.
func NewSegmenter(cfg SegmentConfig, questions QuestionPolicy) (*Segmenter, error) {
	cfg.defaults()

	roundRe, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(cfg.RoundKeyword) + `\s+\d+:`)
	if err != nil {
		return nil, fmt.Errorf("round pattern: %w", err)
	}
	tiebreakRe, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(cfg.TiebreakerKeyword) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("tiebreaker pattern: %w", err)
	}
	return &Segmenter{
		roundRe:       roundRe,
		tiebreakRe:    tiebreakRe,
		tiebreakLabel: cfg.TiebreakerKeyword,
		questions:     questions,
	}, nil
}

// Segment scans the flattened document for "Round N: title" sections, each
// running up to the next round, the tiebreaker keyword, or end of document,
// and parses their entries. If the tiebreaker keyword occurs anywhere, the
// rest of the document after it becomes a final section named by the keyword,
// appended after all numbered rounds regardless of where it sat in the
// source. Sections with no question marker or no extractable entries are
// dropped silently.
func (s *Segmenter) Segment(doc string) Rubric {
	starts := s.roundRe.FindAllStringIndex(doc, -1)
	tiebreaks := s.tiebreakRe.FindAllStringIndex(doc, -1)

	var rubric Rubric
	for k, loc := range starts {
		end := len(doc)
		if k+1 < len(starts) {
			end = starts[k+1][0]
		}
		// Any keyword occurrence inside the span caps the round, not just
		// the first one in the document.
		for _, tb := range tiebreaks {
			if tb[0] > loc[0] && tb[0] < end {
				end = tb[0]
				break
			}
		}

		name, body, ok := splitAtFirstMarker(doc[loc[0]:end])
		if !ok {
			continue
		}
		entries := ParseEntries(body, s.questions)
		if len(entries) == 0 {
			continue
		}
		rubric = append(rubric, Round{Name: name, Entries: entries})
	}

	if len(tiebreaks) > 0 {
		// The trailing section starts at the first occurrence.
		section := strings.TrimSpace(doc[tiebreaks[0][1]:])
		if _, body, ok := splitAtFirstMarker(section); ok {
			if entries := ParseEntries(body, s.questions); len(entries) > 0 {
				rubric = append(rubric, Round{Name: s.tiebreakLabel, Entries: entries})
			}
		}
	}
	return rubric
}

// splitAtFirstMarker cuts a section at its first question-number marker.
// Text before the marker is the round name, text from the marker on is the
// body. Sections without a marker are decorative; ok is false.
func splitAtFirstMarker(section string) (name, body string, ok bool) {
	section = strings.TrimSpace(section)
	loc := questionMarkRe.FindStringIndex(section)
	if loc == nil {
		return "", "", false
	}
	return strings.TrimSpace(section[:loc[0]]), strings.TrimSpace(section[loc[0]:]), true
}
