// Package gateway serves turns over a websocket connection: one session per
// connection, utterance in, answer out. Transport concerns stop here; the
// engine below it only sees text.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/kiranalabs/kirana/pkg/errorsx"
	"github.com/kiranalabs/kirana/pkg/kirana"
	"github.com/kiranalabs/kirana/pkg/logging"
	"github.com/kiranalabs/kirana/pkg/redact"
	"github.com/kiranalabs/kirana/pkg/runner"
)

type Options struct {
	Addr           string
	Path           string
	AllowAnyOrigin bool
}

// TurnMessage is the wire frame in both directions.
type TurnMessage struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

type Server struct {
	engine   *kirana.Engine
	opts     Options
	upgrader websocket.Upgrader
	httpSrv  *http.Server
	log      *slog.Logger
	state    atomic.Int32
}

func NewServer(engine *kirana.Engine, opts Options, log *slog.Logger) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8089"
	}
	if opts.Path == "" {
		opts.Path = "/ws"
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		engine: engine,
		opts:   opts,
		log:    logging.NewComponentLogger(log, "gateway"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return opts.AllowAnyOrigin || r.Header.Get("Origin") == ""
			},
		},
	}
	s.state.Store(int32(runner.StateNew))
	return s
}

// Run serves until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc(s.opts.Path, s.handleWS)
	s.httpSrv = &http.Server{Addr: s.opts.Addr, Handler: mux}
	s.state.Store(int32(runner.StateRunning))
	s.log.Info("gateway_listening", "addr", s.opts.Addr, "path", s.opts.Path)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) Stop() error {
	s.state.Store(int32(runner.StateDraining))
	defer s.state.Store(int32(runner.StateStopped))
	if s.httpSrv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) State() runner.State {
	return runner.State(s.state.Load())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade_failed", "error", err)
		return
	}
	sessionID := uuid.NewString()
	log := s.log.With("session_id", sessionID)
	log.Info("session_started", "remote", r.RemoteAddr)
	defer func() {
		s.engine.EndSession(sessionID)
		_ = conn.Close()
		log.Info("session_ended")
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read_error", "error", err)
			}
			return
		}
		utterance := parseUtterance(payload)
		if utterance == "" {
			continue
		}
		log.Debug("utterance_received", "text", redact.Text(utterance))

		answer, err := s.engine.HandleTurn(r.Context(), sessionID, utterance)
		var reply TurnMessage
		if err != nil {
			if errorsx.HasReason(err, errorsx.ReasonModelUnavailable) {
				reply = TurnMessage{Type: "error", Error: "model_unavailable"}
			} else {
				reply = TurnMessage{Type: "error", Error: "internal"}
			}
			log.Error("turn_error", "error", err)
		} else {
			reply = TurnMessage{Type: "answer", Text: answer}
		}
		if err := s.write(conn, reply); err != nil {
			log.Warn("write_error", "error", err)
			return
		}
	}
}

// parseUtterance accepts either a JSON turn frame or a bare text payload.
func parseUtterance(payload []byte) string {
	var msg TurnMessage
	if err := json.Unmarshal(payload, &msg); err == nil && msg.Text != "" {
		return strings.TrimSpace(msg.Text)
	}
	return strings.TrimSpace(string(payload))
}

func (s *Server) write(conn *websocket.Conn, msg TurnMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return errorsx.Wrap(err, errorsx.ReasonTransportSend)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return errorsx.Wrap(err, errorsx.ReasonTransportSend)
	}
	return nil
}

var _ runner.Runner = (*Server)(nil)
