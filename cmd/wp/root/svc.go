package root

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"waypoint/internal/config"
	"waypoint/internal/engine"
	"waypoint/internal/exchange"
	"waypoint/internal/generate"
	"waypoint/internal/storage"
)

// app bundles everything a command needs: the engine, the generator it
// was built with, and the optional exchange client.
type app struct {
	cfg  *config.Config
	svc  *engine.Service
	gen  engine.Generator
	exch *exchange.Client
}

// openApp wires config, storage, generator and exchange into a running
// engine. The cleanup func flushes in-flight work and closes the db.
func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	gen, err := pickGenerator(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	opts := []engine.Option{engine.WithLogger(log)}
	var client *exchange.Client
	if cfg.HasExchange() {
		client = exchange.NewClient(cfg.ExchangeURL)
		opts = append(opts, engine.WithExchange(client))
	}

	svc, err := engine.NewService(ctx, db, gen, opts...)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		svc.Flush()
		_ = db.Close()
		_ = log.Sync()
	}
	return &app{cfg: cfg, svc: svc, gen: gen, exch: client}, cleanup, nil
}

// pickGenerator prefers Gemini when a key is configured and falls back
// to the offline template generator.
func pickGenerator(ctx context.Context, cfg *config.Config) (engine.Generator, error) {
	if !cfg.HasGemini() {
		return generate.NewStatic(), nil
	}
	gen, err := generate.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("init gemini generator: %w", err)
	}
	return gen, nil
}

func (a *app) exchangeClient() (*exchange.Client, error) {
	if a.exch == nil {
		return nil, fmt.Errorf("no exchange configured; set WAYPOINT_EXCHANGE_URL")
	}
	return a.exch, nil
}

// resolveSession accepts a full id or a unique prefix.
func (a *app) resolveSession(idOrPrefix string) (*engine.Session, error) {
	if sess, ok := a.svc.Session(idOrPrefix); ok {
		return sess, nil
	}
	var match *engine.Session
	for _, sess := range a.svc.Sessions() {
		if strings.HasPrefix(sess.ID, idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("session id %q is ambiguous", idOrPrefix)
			}
			match = sess
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no session matches %q", idOrPrefix)
	}
	return match, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
