package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kiranalabs/kirana/pkg/gateway"
	"github.com/kiranalabs/kirana/pkg/kirana"
	"github.com/kiranalabs/kirana/pkg/logging"
	"github.com/kiranalabs/kirana/pkg/redact"
	"github.com/kiranalabs/kirana/pkg/runner"
)

func main() {
	configPath := flag.String("config", "configs/kirana.yaml", "path to config file")
	flag.Parse()

	runner.PrintBanner()

	cfg, err := kirana.LoadConfig(*configPath)
	if err != nil {
		slog.Error("config_load_failed", "path", *configPath, "error", err)
		os.Exit(1)
	}

	log := logging.InitLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	slog.SetDefault(log)
	redact.SetEnabled(cfg.Privacy.RedactPII)

	engine, err := kirana.New(cfg, kirana.DefaultProviders(), log)
	if err != nil {
		log.Error("engine_init_failed", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	server := gateway.NewServer(engine, gateway.Options{
		Addr:           cfg.Gateway.Addr,
		Path:           cfg.Gateway.Path,
		AllowAnyOrigin: cfg.Gateway.AllowAnyOrigin,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting", "environment", cfg.Environment, "model_vendor", cfg.Vendors.Model.Provider, "search_vendor", cfg.Vendors.Search.Provider)
	if err := server.Run(ctx); err != nil {
		log.Error("gateway_failed", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown_complete")
}
