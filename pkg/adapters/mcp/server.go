package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/folio/internal/logging"
	"github.com/aretw0/folio/pkg/carousel"
	"github.com/aretw0/folio/pkg/content"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultSession is used by tools called without a session_id.
const DefaultSession = "mcp"

const (
	SlidesURI  = "folio://slides"
	ContentURI = "folio://content"
)

// CarouselResponse is the structured result of every carousel tool.
type CarouselResponse struct {
	State domain.State `json:"state" jsonschema_description:"The carousel snapshot after the call"`
	Slide domain.Slide `json:"slide" jsonschema_description:"The active slide"`
}

// Sessions hands out carousels. *session.Manager implements it.
type Sessions interface {
	Get(ctx context.Context, sessionID string) (*carousel.Controller, error)
}

// Server exposes carousels and portfolio content as an MCP server.
type Server struct {
	sessions  Sessions
	slides    *registry.Registry
	library   *content.Library
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

type Option func(*Server)

func WithContent(l *content.Library) Option {
	return func(s *Server) { s.library = l }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions Sessions, slides *registry.Registry, version string, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		slides:    slides,
		library:   content.Default(),
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("folio-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

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

// MCPServer exposes the underlying server (tests, custom transports).
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func sessionArg() mcp.ToolOption {
	return mcp.WithString("session_id", mcp.Description("Carousel session (defaults to \"mcp\")"))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("carousel_state",
		mcp.WithDescription("Return the carousel snapshot and the active slide."),
		sessionArg(),
		mcp.WithOutputSchema[CarouselResponse](),
	), mcp.NewStructuredToolHandler(s.handleState))

	intents := []struct {
		name, desc string
		kind       domain.IntentKind
	}{
		{"carousel_next", "Advance to the next slide (wraps around).", domain.IntentNext},
		{"carousel_prev", "Go back to the previous slide (wraps around).", domain.IntentPrev},
		{"carousel_pause", "Suppress autoplay.", domain.IntentPause},
		{"carousel_resume", "Re-enable autoplay with a full interval.", domain.IntentResume},
	}
	for _, it := range intents {
		s.mcpServer.AddTool(mcp.NewTool(it.name,
			mcp.WithDescription(it.desc),
			sessionArg(),
			mcp.WithOutputSchema[CarouselResponse](),
		), mcp.NewStructuredToolHandler(s.handleIntent(it.kind)))
	}

	s.mcpServer.AddTool(mcp.NewTool("carousel_goto",
		mcp.WithDescription("Navigate to a slide index. Out of range indices wrap around."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based slide index")),
		sessionArg(),
		mcp.WithOutputSchema[CarouselResponse](),
	), mcp.NewStructuredToolHandler(s.handleGoTo))
}

func (s *Server) controller(ctx context.Context, args map[string]interface{}) (*carousel.Controller, error) {
	id, _ := args["session_id"].(string)
	if id == "" {
		id = DefaultSession
	}
	c, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return c, nil
}

func respond(c *carousel.Controller) CarouselResponse {
	st := c.State()
	return CarouselResponse{State: st, Slide: c.Registry().At(st.ActiveIndex)}
}

func (s *Server) handleState(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (CarouselResponse, error) {
	c, err := s.controller(ctx, args)
	if err != nil {
		return CarouselResponse{}, err
	}
	return respond(c), nil
}

func (s *Server) handleIntent(kind domain.IntentKind) func(context.Context, mcp.CallToolRequest, map[string]interface{}) (CarouselResponse, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (CarouselResponse, error) {
		return s.dispatch(ctx, args, domain.Intent{Kind: kind, Source: domain.SourceAPI})
	}
}

func (s *Server) handleGoTo(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (CarouselResponse, error) {
	index, ok := args["index"].(float64)
	if !ok {
		return CarouselResponse{}, fmt.Errorf("index must be a number")
	}
	return s.dispatch(ctx, args, domain.GoTo(int(index), domain.SourceAPI))
}

func (s *Server) dispatch(ctx context.Context, args map[string]interface{}, intent domain.Intent) (CarouselResponse, error) {
	c, err := s.controller(ctx, args)
	if err != nil {
		return CarouselResponse{}, err
	}
	if err := c.Dispatch(ctx, intent); err != nil {
		s.logger.Warn("MCP intent rejected", "intent", intent.String(), "err", err)
		return CarouselResponse{}, fmt.Errorf("%s failed: %w", intent.Kind, err)
	}
	return respond(c), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(SlidesURI, "Carousel slides",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(SlidesURI, s.slides.Slides())
	})

	s.mcpServer.AddResource(mcp.NewResource(ContentURI, "Portfolio content in every language",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		all := map[string]*domain.Portfolio{}
		for _, tag := range s.library.Languages() {
			all[tag.String()] = s.library.For(tag)
		}
		return jsonResource(ContentURI, all)
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

