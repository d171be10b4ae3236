// Package server exposes live conversion over HTTP and websockets: every
// message carrying new input is answered with fresh code and preview.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/goliatone/go-syqgen/pkg/examples"
	"github.com/goliatone/go-syqgen/pkg/orchestrator"
	"github.com/goliatone/go-syqgen/pkg/render"
	"github.com/goliatone/go-syqgen/pkg/renderers/preview"
)

const defaultMaxInput = 1 << 20

// Converter is the subset of the orchestrator the server needs.
type Converter interface {
	Convert(ctx context.Context, req orchestrator.Request) (orchestrator.Result, error)
}

// ConvertRequest is sent by clients over the websocket or POSTed to /convert.
// Example names a bundled example to convert instead of Input.
type ConvertRequest struct {
	Input   string `json:"input"`
	Example string `json:"example,omitempty"`
}

// ConvertResponse carries both outputs. Error and Hint are set when the
// input failed a precondition; Code and Preview then hold the failure
// outputs.
type ConvertResponse struct {
	Code    string `json:"code"`
	Preview string `json:"preview"`
	Error   string `json:"error,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderOptions sets the mode flags applied to every conversion.
func WithRenderOptions(options render.RenderOptions) Option {
	return func(s *Server) {
		s.options = options
	}
}

// WithMaxInput caps the accepted input size in bytes.
func WithMaxInput(limit int64) Option {
	return func(s *Server) {
		if limit > 0 {
			s.maxInput = limit
		}
	}
}

// WithCheckOrigin overrides the websocket origin check.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(s *Server) {
		if check != nil {
			s.upgrader.CheckOrigin = check
		}
	}
}

// Server serves the live conversion endpoints.
type Server struct {
	converter Converter
	options   render.RenderOptions
	logger    *zap.Logger
	upgrader  websocket.Upgrader
	maxInput  int64
}

// New constructs a Server around converter.
func New(converter Converter, options ...Option) *Server {
	s := &Server{
		converter: converter,
		logger:    zap.NewNop(),
		maxInput:  defaultMaxInput,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Handler returns the HTTP routes:
//
//	GET  /ws              websocket, one ConvertResponse per ConvertRequest
//	POST /convert         single JSON conversion
//	GET  /examples        bundled example list
//	GET  /preview/empty   placeholder preview markup
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("POST /convert", s.handleConvert)
	mux.HandleFunc("GET /examples", s.handleExamples)
	mux.HandleFunc("GET /preview/empty", s.handlePlaceholder)
	return mux
}

// ListenAndServe serves Handler on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server: listen")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.maxInput)

	s.logger.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))

	if err := conn.WriteJSON(placeholderResponse()); err != nil {
		s.logger.Warn("websocket write failed", zap.Error(err))
		return
	}

	for {
		var req ConvertRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		resp, err := s.convert(r.Context(), req)
		if err != nil {
			s.logger.Error("conversion failed", zap.Error(err))
			resp = ConvertResponse{Error: render.Message(err)}
		}
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxInput)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ConvertResponse{Error: "invalid request body"})
		return
	}

	resp, err := s.convert(r.Context(), req)
	if err != nil {
		s.logger.Error("conversion failed", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, ConvertResponse{Error: render.Message(err)})
		return
	}
	status := http.StatusOK
	if resp.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleExamples(w http.ResponseWriter, _ *http.Request) {
	all, err := examples.All()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ConvertResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) handlePlaceholder(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(preview.Placeholder())
}

// convert resolves the request input and runs both passes. Blank input
// yields the placeholder preview and no code.
func (s *Server) convert(ctx context.Context, req ConvertRequest) (ConvertResponse, error) {
	input := req.Input
	if req.Example != "" {
		ex, err := examples.Get(req.Example)
		if err != nil {
			return ConvertResponse{}, err
		}
		input = ex.Markup
	}
	if strings.TrimSpace(input) == "" {
		return placeholderResponse(), nil
	}

	result, err := s.converter.Convert(ctx, orchestrator.Request{Input: input, Options: s.options})
	if err != nil {
		return ConvertResponse{}, err
	}

	resp := ConvertResponse{
		Code:    string(result.Code),
		Preview: string(result.Preview),
	}
	if result.CodeErr != nil {
		resp.Error = render.Message(result.CodeErr)
		resp.Hint = strings.Join(errors.GetAllHints(result.CodeErr), "\n")
	}
	return resp, nil
}

func placeholderResponse() ConvertResponse {
	return ConvertResponse{Preview: string(preview.Placeholder())}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
