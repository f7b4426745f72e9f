// CLAUDE:SUMMARY Locates flate-compressed stream/endstream regions in a raw PDF buffer and inflates them.
// CLAUDE:EXPORTS ScanBlocks
package pdftext

import (
	"bytes"
	"compress/zlib"
	"io"
)

var (
	streamStart = []byte("stream")
	streamEnd   = []byte("endstream")
)

// ScanBlocks walks raw for stream/endstream delimited regions in file order
// and returns the inflated content of each. The start keyword must be followed
// by an optional CR and a LF; an optional CR+LF preceding the end keyword
// belongs to the delimiter, not the data. Scanning resumes after each matched
// end delimiter, so regions are visited once, in order. Candidates that fail
// to inflate (non-flate content, corruption, encryption) are skipped.
func ScanBlocks(raw []byte) [][]byte {
	var blocks [][]byte
	pos := 0
	for pos < len(raw) {
		i := bytes.Index(raw[pos:], streamStart)
		if i < 0 {
			break
		}
		start := pos + i + len(streamStart)
		if start < len(raw) && raw[start] == '\r' {
			start++
		}
		if start >= len(raw) || raw[start] != '\n' {
			// Keyword without its newline (e.g. the tail of "endstream").
			pos = pos + i + len(streamStart)
			continue
		}
		start++

		j := bytes.Index(raw[start:], streamEnd)
		if j < 0 {
			break
		}
		end := start + j
		pos = end + len(streamEnd)

		if end > start && raw[end-1] == '\n' {
			end--
			if end > start && raw[end-1] == '\r' {
				end--
			}
		}

		dec, err := inflate(raw[start:end])
		if err != nil {
			continue
		}
		blocks = append(blocks, dec)
	}
	return blocks
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
