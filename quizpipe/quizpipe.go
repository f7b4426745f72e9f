// CLAUDE:SUMMARY Core pipeline turning a trivia-export PDF into a structured answer key.
// Package quizpipe recovers the answer key from a trivia PDF export.
//
// The export embeds its text in flate-compressed content streams. The
// pipeline scans the raw bytes for those streams, decodes the literal-string
// tokens of the page-description language, flattens them into one document
// string, then segments that string into named rounds and numbered
// question/answer entries.
//
// Usage:
//
//	pipe := quizpipe.New(quizpipe.Config{})
//	res, err := pipe.ExtractFile(ctx, "quiz.pdf")
//	for _, round := range res.Rubric { ... }
package quizpipe

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hazyhaar/rubrique/pdftext"
	"github.com/hazyhaar/rubrique/rubric"
)

// Pipeline is the extraction engine. Construct with New; safe for concurrent
// use.
type Pipeline struct {
	cfg       Config
	logger    *slog.Logger
	segmenter *rubric.Segmenter
}

// Result is the outcome of one extraction. Quality is always populated, also
// on failure, so callers can explain a round-less document (image-only scan,
// glyph soup, genuinely empty).
type Result struct {
	Rubric  rubric.Rubric    `json:"rubric"`
	Quality *pdftext.Quality `json:"quality,omitempty"`

	// Text is the flattened document the rubric was parsed from. Exposed for
	// the debugging surfaces; omitted from JSON unless asked for.
	Text string `json:"text,omitempty"`
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) (*Pipeline, error) {
	cfg.defaults()
	seg, err := rubric.NewSegmenter(cfg.Rounds, cfg.Questions)
	if err != nil {
		return nil, fmt.Errorf("quizpipe: %w", err)
	}
	return &Pipeline{cfg: cfg, logger: cfg.Logger, segmenter: seg}, nil
}

// ExtractFile reads path and extracts its answer key.
func (p *Pipeline) ExtractFile(ctx context.Context, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > p.cfg.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), p.cfg.MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.Extract(ctx, data)
}

// Extract recovers the answer key from an in-memory document. When no rounds
// come out, the error wraps rubric.ErrNoRounds and the returned Result still
// carries the quality diagnostics.
func (p *Pipeline) Extract(ctx context.Context, data []byte) (*Result, error) {
	blocks := pdftext.ScanBlocks(data)

	var tokens []string
	for _, b := range blocks {
		tokens = append(tokens, pdftext.Tokenize(b)...)
	}

	doc := pdftext.Flatten(tokens, p.cfg.Sanitize)
	quality := pdftext.Score(doc, len(blocks), len(tokens))
	if meta, err := pdftext.ReadMeta(bytes.NewReader(data)); err == nil {
		quality.PageCount = meta.PageCount
		quality.HasImageStreams = meta.HasImageStreams
	} else {
		p.logger.Debug("document metadata unavailable", "error", err)
	}

	rounds := p.segmenter.Segment(doc)
	res := &Result{Rubric: rounds, Quality: quality, Text: doc}

	p.logger.Debug("extraction finished",
		"blocks", len(blocks), "tokens", len(tokens),
		"doc_chars", len(doc), "rounds", len(rounds), "entries", rounds.TotalEntries())

	if len(rounds) == 0 {
		return res, fmt.Errorf("extract: %w", rubric.ErrNoRounds)
	}
	return res, nil
}
