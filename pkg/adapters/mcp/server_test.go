package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/hpgl2svg"
	"github.com/aretw0/hpgl2svg/internal/presentation/pdf"
	"github.com/aretw0/hpgl2svg/internal/presentation/raster"
	"github.com/aretw0/hpgl2svg/internal/presentation/svg"
	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/aretw0/hpgl2svg/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSinks(format string, w io.Writer) (ports.Sink, string, error) {
	switch format {
	case "svg":
		return svg.NewWriter(w, svg.Options{Wrapper: svg.WrapperSVG}), "image/svg+xml", nil
	case "png":
		return raster.NewRenderer(w, raster.DefaultOptions()), "image/png", nil
	case "pdf":
		return pdf.NewDocument(w, pdf.DefaultOptions()), "application/pdf", nil
	}
	return nil, "", fmt.Errorf("unknown format %q", format)
}

func newTestServer() *Server {
	conv := hpgl2svg.New(hpgl2svg.WithCanvas(domain.Rect{Width: 200, Height: 200}))
	return NewServer(conv, testSinks, nil)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

// contentOf returns the first content of type T; tools put a text caption before binary documents.
func contentOf[T mcp.Content](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	for _, c := range res.Content {
		if v, ok := c.(T); ok {
			return v
		}
	}
	var zero T
	require.Failf(t, "missing content", "no %T in %d contents", zero, len(res.Content))
	return zero
}

func TestConvertTool_SVG(t *testing.T) {
	s := newTestServer()

	res, err := s.handleConvert(context.Background(), callRequest("convert_hpgl", map[string]any{
		"program": "SP3;PD0,0,50,50;",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	doc := textOf(t, res)
	assert.True(t, strings.HasPrefix(doc, "<?xml"))
	assert.Contains(t, doc, "stroke:blue")
}

func TestConvertTool_PNG(t *testing.T) {
	s := newTestServer()

	res, err := s.handleConvert(context.Background(), callRequest("convert_hpgl", map[string]any{
		"program": "SP1;PD0,0,50,50;",
		"format":  "png",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	img := contentOf[mcp.ImageContent](t, res)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, "1 segments", textOf(t, res))

	data, err := base64.StdEncoding.DecodeString(img.Data)
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "\x89PNG", string(data[:4]))
}

func TestConvertTool_PDF(t *testing.T) {
	s := newTestServer()

	res, err := s.handleConvert(context.Background(), callRequest("convert_hpgl", map[string]any{
		"program": "SP2;PD0,0,50,50,100,0;",
		"format":  "pdf",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "2 segments", textOf(t, res))

	embedded := contentOf[mcp.EmbeddedResource](t, res)
	blob, ok := embedded.Resource.(mcp.BlobResourceContents)
	require.True(t, ok, "expected blob contents, got %T", embedded.Resource)
	assert.Equal(t, "application/pdf", blob.MIMEType)

	data, err := base64.StdEncoding.DecodeString(blob.Blob)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestConvertTool_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		msg  string
	}{
		{"Unknown Pen", map[string]any{"program": "SP9;"}, "unknown color index 9"},
		{"Syntax Error", map[string]any{"program": "PD1;"}, "odd number of coordinates"},
		{"Unknown Format", map[string]any{"program": "IN;", "format": "tiff"}, `unknown format "tiff"`},
		{"Unknown Argument", map[string]any{"program": "IN;", "colour": "red"}, "invalid arguments"},
		{"Invalid UTF-8", map[string]any{"program": "IN;\xff;"}, "invalid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestServer().handleConvert(context.Background(), callRequest("convert_hpgl", tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, textOf(t, res), tt.msg)
		})
	}
}

func TestInspectTool(t *testing.T) {
	s := newTestServer()

	res, err := s.handleInspect(context.Background(), callRequest("inspect_hpgl", map[string]any{
		"program": "SP2;PD0,0,10,0,10,10;",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var summary domain.Summary
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &summary))
	assert.Equal(t, 2, summary.Segments)
	assert.Equal(t, 2, summary.SegmentsByColor["red"])
	assert.Equal(t, 1, summary.Commands[domain.KindPenDown])
}

func TestInspectTool_Error(t *testing.T) {
	res, err := newTestServer().handleInspect(context.Background(), callRequest("inspect_hpgl", map[string]any{
		"program": "SP1;LT;",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "unsupported command")
}

func TestPaletteResource_CustomPalette(t *testing.T) {
	palette, err := domain.NewPalette(map[uint8]string{1: "navy", 4: "teal"})
	require.NoError(t, err)
	conv := hpgl2svg.New(hpgl2svg.WithPalette(palette), hpgl2svg.WithCanvas(domain.Rect{Width: 200, Height: 200}))
	s := NewServer(conv, testSinks, nil)

	contents, err := s.handlePalette(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok, "expected text contents, got %T", contents[0])
	assert.Equal(t, PaletteURI, text.URI)

	var entries []paletteEntry
	require.NoError(t, json.Unmarshal([]byte(text.Text), &entries))
	assert.Equal(t, []paletteEntry{{Pen: 1, Color: "navy"}, {Pen: 4, Color: "teal"}}, entries)

	res, err := s.handleConvert(context.Background(), callRequest("convert_hpgl", map[string]any{
		"program": "SP4;PD0,0,10,10;",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), "stroke:teal")
}

func TestPaletteEntries(t *testing.T) {
	entries := paletteEntries(domain.DefaultPalette())
	require.Len(t, entries, 8)
	assert.Equal(t, paletteEntry{Pen: 1, Color: "black"}, entries[0])
	assert.Equal(t, paletteEntry{Pen: 8, Color: "pink"}, entries[7])
}
