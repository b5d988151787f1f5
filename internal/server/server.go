package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/ironsheep/dev-tools-mcp/internal/config"
	"github.com/ironsheep/dev-tools-mcp/internal/eyedropper"
	"github.com/ironsheep/dev-tools-mcp/internal/generate"
	"github.com/ironsheep/dev-tools-mcp/internal/logger"
)

// ProtocolVersion is the MCP revision this server speaks.
const ProtocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeToolFailed     = -32000
	CodeRateLimited    = -32029
)

// Server handles MCP protocol communication
type Server struct {
	version  string
	cache    *eyedropper.Cache
	validate *validator.Validate
	limiter  *rate.Limiter

	mu    sync.RWMutex
	cfg   *config.Config
	dice  *generate.RollHistory
	lorem *generate.Lorem
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server using cfg, or the defaults when cfg is nil.
func New(cfg *config.Config, version string) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if version == "" {
		version = "dev"
	}
	s := &Server{
		version:  version,
		cache:    eyedropper.NewCache(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		limiter:  rate.NewLimiter(limitOf(cfg.RateLimit), cfg.RateLimit.Burst),
		cfg:      cfg,
		dice:     generate.NewRollHistory(cfg.Dice.HistorySize),
		lorem:    generate.NewLorem(cfg.Lorem.MaxWords),
	}
	return s
}

// Reload swaps in a new configuration. Rate limits and log level apply to
// the next call; a changed dice history size starts a fresh history.
func (s *Server) Reload(cfg *config.Config) {
	s.mu.Lock()
	old := s.cfg
	s.cfg = cfg
	if cfg.Dice.HistorySize != old.Dice.HistorySize {
		s.dice = generate.NewRollHistory(cfg.Dice.HistorySize)
	}
	if cfg.Lorem.MaxWords != old.Lorem.MaxWords {
		s.lorem = generate.NewLorem(cfg.Lorem.MaxWords)
	}
	s.mu.Unlock()

	s.limiter.SetLimit(limitOf(cfg.RateLimit))
	s.limiter.SetBurst(cfg.RateLimit.Burst)
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.L().Warn("config.reload.level", "error", err)
	}
	logger.L().Info("config.reloaded",
		"rate_per_second", cfg.RateLimit.PerSecond,
		"rate_burst", cfg.RateLimit.Burst,
		"strict_units", cfg.Units.Strict,
	)
}

func (s *Server) config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func limitOf(rl config.RateLimitConfig) rate.Limit {
	if rl.PerSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(rl.PerSecond)
}

// Run serves stdin/stdout until EOF or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to w.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		// Increase buffer size for large requests
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 1024*1024)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	encoder := json.NewEncoder(w)
	log := logger.L()
	log.Info("server.started", "version", s.version, "protocol", ProtocolVersion)

	for {
		select {
		case <-ctx.Done():
			log.Info("server.stopped", "reason", ctx.Err().Error())
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("scanner error: %w", err)
				}
				log.Info("server.stopped", "reason", "eof")
				return nil
			}
			if len(line) == 0 {
				continue
			}

			var req MCPRequest
			if err := json.Unmarshal(line, &req); err != nil {
				log.Warn("request.parse_failed", "error", err)
				continue
			}

			resp := s.handleRequest(ctx, &req)
			if resp != nil {
				if err := encoder.Encode(resp); err != nil {
					log.Error("response.encode_failed", "error", err)
				}
			}
		}
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "dev-tools-mcp",
				"version": s.version,
			},
		},
	}
}

// errorResponse creates a JSON-RPC error response. An empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: e}
}
