// CLAUDE:SUMMARY Registers the extraction tools on an MCP server.
package quizpipe

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/rubrique/kit"
	"github.com/hazyhaar/rubrique/rubric"
)

// RegisterMCP registers the extraction tools on an MCP server.
func (p *Pipeline) RegisterMCP(srv *mcp.Server) {
	p.registerExtractTool(srv)
	p.registerTextTool(srv)
	p.registerCSVTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// --- extract ---

type extractReq struct {
	Path string `json:"path"`
}

func (p *Pipeline) registerExtractTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "rubrique_extract",
		Description: "Extract the answer key (rounds, question numbers, answers) from a trivia PDF export.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "Path to the PDF file"},
		}, []string{"path"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*extractReq)
		res, err := p.ExtractFile(ctx, r.Path)
		if err != nil {
			return nil, err
		}
		res.Text = ""
		return res, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodePathReq)
}

// --- text ---

func (p *Pipeline) registerTextTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "rubrique_text",
		Description: "Return the flattened text recovered from a trivia PDF export, with quality diagnostics.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "Path to the PDF file"},
		}, []string{"path"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*extractReq)
		res, err := p.ExtractFile(ctx, r.Path)
		if res == nil {
			return nil, err
		}
		// Text is the point of this tool; a round-less document still has it.
		return map[string]any{"text": res.Text, "quality": res.Quality}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodePathReq)
}

// --- csv ---

func (p *Pipeline) registerCSVTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "rubrique_csv",
		Description: "Extract the answer key from a trivia PDF export and render it as CSV.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "Path to the PDF file"},
		}, []string{"path"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*extractReq)
		res, err := p.ExtractFile(ctx, r.Path)
		if err != nil {
			return nil, err
		}
		var sb strings.Builder
		if err := rubric.WriteCSV(&sb, res.Rubric); err != nil {
			return nil, err
		}
		return map[string]any{"csv": sb.String()}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodePathReq)
}

func decodePathReq(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	var r extractReq
	if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
		return nil, err
	}
	return &kit.MCPDecodeResult{Request: &r}, nil
}
