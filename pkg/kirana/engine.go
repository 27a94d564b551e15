// Package kirana wires the tool registry, decision procedure, and dispatcher
// into a configured assistant engine.
package kirana

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/kiranalabs/kirana/pkg/decision"
	"github.com/kiranalabs/kirana/pkg/dispatch"
	"github.com/kiranalabs/kirana/pkg/history"
	"github.com/kiranalabs/kirana/pkg/logging"
	"github.com/kiranalabs/kirana/pkg/metrics"
	"github.com/kiranalabs/kirana/pkg/tools"
	"github.com/kiranalabs/kirana/pkg/tools/calc"
	"github.com/kiranalabs/kirana/pkg/tools/search"
)

// Engine owns the process-wide immutable pieces (registry, directive,
// dispatcher) and the per-session conversation buffers. Turns from different
// sessions may run concurrently; each turn owns its own state.
type Engine struct {
	cfg        Config
	dispatcher *dispatch.Dispatcher
	obs        metrics.Observer
	log        *slog.Logger

	mu       sync.Mutex
	sessions map[string]*history.Buffer

	metricsFile *os.File
}

func New(cfg Config, providers *ProviderRegistry, log *slog.Logger) (*Engine, error) {
	if providers == nil {
		providers = DefaultProviders()
	}
	if log == nil {
		log = slog.Default()
	}
	adapter, err := providers.BuildModel(cfg.Vendors.Model.Provider, cfg)
	if err != nil {
		return nil, fmt.Errorf("build model vendor: %w", err)
	}
	searcher, err := providers.BuildSearch(cfg.Vendors.Search.Provider, cfg)
	if err != nil {
		return nil, fmt.Errorf("build search vendor: %w", err)
	}

	registry := tools.NewRegistry()
	if err := registry.Register(calc.Entry()); err != nil {
		return nil, err
	}
	if err := registry.Register(search.NewEntry(searcher)); err != nil {
		return nil, err
	}
	registry.Freeze()

	engine := &Engine{
		cfg:      cfg,
		log:      logging.NewComponentLogger(log, "engine"),
		obs:      metrics.NoopObserver{},
		sessions: make(map[string]*history.Buffer),
	}
	if cfg.Observability.MetricsPath != "" {
		f, err := os.OpenFile(cfg.Observability.MetricsPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open metrics path: %w", err)
		}
		engine.metricsFile = f
		engine.obs = metrics.NewJSONLObserver(f)
	}

	directive := decision.DefaultDirective()
	if cfg.Persona != "" {
		directive.Persona = cfg.Persona
	}
	procedure := decision.NewProcedure(adapter, registry, directive)
	procedure.SetObserver(engine.obs)
	procedure.SetLogger(logging.NewComponentLogger(log, "decision"))

	dispatcher := dispatch.New(procedure, registry)
	dispatcher.SetObserver(engine.obs)
	dispatcher.SetLogger(logging.NewComponentLogger(log, "dispatch"))
	engine.dispatcher = dispatcher
	return engine, nil
}

// HandleTurn processes one utterance for a session and returns the final
// answer. Only model unavailability comes back as an error; the caller can
// retry or report it. History is advanced only on successful turns.
func (e *Engine) HandleTurn(ctx context.Context, sessionID, utterance string) (string, error) {
	if timeout := e.cfg.Tools.TurnTimeoutMS; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Millisecond)
		defer cancel()
	}
	buf := e.session(sessionID)
	answer, err := e.dispatcher.HandleTurn(ctx, utterance, buf.Messages())
	if err != nil {
		return "", err
	}
	buf.Append("user", utterance)
	buf.Append("assistant", answer)
	return answer, nil
}

// EndSession discards a session's conversation context.
func (e *Engine) EndSession(sessionID string) {
	e.mu.Lock()
	delete(e.sessions, sessionID)
	e.mu.Unlock()
}

// Close flushes pending metrics and releases engine resources.
func (e *Engine) Close() error {
	if f, ok := e.obs.(metrics.Flusher); ok {
		if err := f.Flush(); err != nil {
			e.log.Warn("metrics_flush_failed", "error", err)
		}
	}
	if e.metricsFile != nil {
		return e.metricsFile.Close()
	}
	return nil
}

func (e *Engine) session(sessionID string) *history.Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	buf, ok := e.sessions[sessionID]
	if !ok {
		buf = history.NewBuffer(e.cfg.Context.MaxHistory)
		e.sessions[sessionID] = buf
	}
	return buf
}
