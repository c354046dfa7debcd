package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/hpgl2svg"
	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/aretw0/hpgl2svg/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// PaletteURI is the resource listing the pen color table.
const PaletteURI = "hpgl://palette"

// Converter defines the conversion core required by the MCP server.
type Converter interface {
	Convert(ctx context.Context, r io.Reader, sink ports.Sink) (*domain.Summary, error)
	Inspect(ctx context.Context, r io.Reader) (*domain.Summary, error)
	Palette() domain.Palette
}

// SinkFactory builds the sink for a format name and reports the document content type.
type SinkFactory func(format string, w io.Writer) (ports.Sink, string, error)

// ConvertArgs are the arguments of the convert_hpgl tool.
type ConvertArgs struct {
	Program string `mapstructure:"program"`
	Format  string `mapstructure:"format"`
}

// InspectArgs are the arguments of the inspect_hpgl tool.
type InspectArgs struct {
	Program string `mapstructure:"program"`
}

// Server wraps the Converter and exposes it as an MCP Server.
type Server struct {
	conv      Converter
	sinks     SinkFactory
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(conv Converter, sinks SinkFactory, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		conv:      conv,
		sinks:     sinks,
		logger:    logger,
		mcpServer: server.NewMCPServer("hpgl2svg-mcp", strings.TrimSpace(hpgl2svg.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	convertTool := mcp.NewTool("convert_hpgl",
		mcp.WithDescription("Convert an HPGL plotter program into a document. SVG is returned as text, PNG as an image and PDF as a base64 blob."),
		mcp.WithString("program", mcp.Required(), mcp.Description("HPGL source, e.g. 'IN;SP1;PD0,0,100,100;'")),
		mcp.WithString("format", mcp.Description("Output format: svg (default), png or pdf"), mcp.Enum("svg", "png", "pdf")),
	)
	s.mcpServer.AddTool(convertTool, s.handleConvert)

	inspectTool := mcp.NewTool("inspect_hpgl",
		mcp.WithDescription("Interpret an HPGL program and return a JSON summary: commands by kind, segments per color, drawn extent and final plotter state."),
		mcp.WithString("program", mcp.Required(), mcp.Description("HPGL source")),
	)
	s.mcpServer.AddTool(inspectTool, s.handleInspect)
}

// decodeArgs copies the tool arguments into out, rejecting unknown keys.
func decodeArgs(request mcp.CallToolRequest, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(request.GetArguments())
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args ConvertArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Format == "" {
		args.Format = "svg"
	}
	program, err := SanitizeProgram(args.Program)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var doc bytes.Buffer
	sink, contentType, err := s.sinks(args.Format, &doc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summary, err := s.conv.Convert(ctx, strings.NewReader(program), sink)
	if err != nil {
		s.logger.Warn("MCP Convert failed", "format", args.Format, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("conversion failed: %v", err)), nil
	}
	s.logger.Debug("MCP Convert", "format", args.Format, "segments", summary.Segments)

	switch {
	case strings.HasPrefix(contentType, "image/png"):
		data := base64.StdEncoding.EncodeToString(doc.Bytes())
		return mcp.NewToolResultImage(fmt.Sprintf("%d segments", summary.Segments), data, contentType), nil
	case strings.HasPrefix(contentType, "application/pdf"):
		return mcp.NewToolResultResource(fmt.Sprintf("%d segments", summary.Segments), mcp.BlobResourceContents{
			URI:      "hpgl://document.pdf",
			MIMEType: contentType,
			Blob:     base64.StdEncoding.EncodeToString(doc.Bytes()),
		}), nil
	}
	return mcp.NewToolResultText(doc.String()), nil
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args InspectArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	program, err := SanitizeProgram(args.Program)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summary, err := s.conv.Inspect(ctx, strings.NewReader(program))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
	}
	jsonBytes, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

type paletteEntry struct {
	Pen   int    `json:"pen"`
	Color string `json:"color"`
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(PaletteURI, "Pen Color Table",
		mcp.WithResourceDescription("Pens accepted by SP. Pen 0 selects no ink."),
		mcp.WithMIMEType("application/json"),
	), s.handlePalette)
}

func (s *Server) handlePalette(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(paletteEntries(s.conv.Palette()))
	if err != nil {
		return nil, fmt.Errorf("failed to encode palette: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      PaletteURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func paletteEntries(p domain.Palette) []paletteEntry {
	var out []paletteEntry
	for pen := uint8(1); pen <= domain.MaxPen; pen++ {
		if c, err := p.Lookup(pen); err == nil {
			out = append(out, paletteEntry{Pen: int(pen), Color: c})
		}
	}
	return out
}
