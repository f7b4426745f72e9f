// CLAUDE:SUMMARY PDF document metadata via pdfcpu — page count and image-stream detection.
// CLAUDE:EXPORTS Meta, ReadMeta
package pdftext

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Meta is structural document metadata read from the container's cross
// reference table. The raw scan in ScanBlocks never needs it; it exists for
// diagnostics on weak extractions.
type Meta struct {
	PageCount       int  `json:"page_count"`
	HasImageStreams bool `json:"has_image_streams"`
}

// ReadMeta parses the document with pdfcpu and reports page count and whether
// any image XObjects are present. Errors are expected on malformed exports and
// callers treat them as "metadata unavailable", never as extraction failure.
func ReadMeta(rs io.ReadSeeker) (*Meta, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return &Meta{
		PageCount:       ctx.PageCount,
		HasImageStreams: hasImageStreams(ctx),
	}, nil
}

func hasImageStreams(ctx *model.Context) bool {
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				return true
			}
		}
	}
	// Fallback: scan the xref table for image subtype stream dicts.
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}
