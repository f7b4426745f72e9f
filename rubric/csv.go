// CLAUDE:SUMMARY CSV serialization of a Rubric — round header rows, Question/Answer columns, blank separators.
// CLAUDE:EXPORTS Writer, NewWriter, WriteCSV
package rubric

import (
	"encoding/csv"
	"io"
)

// Writer serializes rubrics as CSV. Each round is written as a name row, a
// "Question","Answer" header row, one row per entry, and a blank separator
// row.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteRubric writes all rounds and flushes the underlying buffer.
func (w *Writer) WriteRubric(r Rubric) error {
	for _, round := range r {
		if err := w.csv.Write([]string{round.Name}); err != nil {
			return err
		}
		if err := w.csv.Write([]string{"Question", "Answer"}); err != nil {
			return err
		}
		for _, e := range round.Entries {
			if err := w.csv.Write([]string{e.Number, e.Answer}); err != nil {
				return err
			}
		}
		if err := w.csv.Write([]string{""}); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}

// WriteCSV writes r to w in one call.
func WriteCSV(w io.Writer, r Rubric) error {
	return NewWriter(w).WriteRubric(r)
}
