package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vk/grafiek/internal/ctxlog"
	"github.com/vk/grafiek/internal/document"
	"github.com/vk/grafiek/internal/engine"
	"github.com/vk/grafiek/internal/gpu"
	"github.com/vk/grafiek/internal/history"
	"github.com/vk/grafiek/modules/remotesync"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	engine *engine.Engine
	sink   io.Closer
	docID  uuid.UUID
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, a software
// texture backend, and an engine holding the loaded document.
func NewApp(outW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// An editor link is optional; without one the engine's messages stay
	// local.
	var onMessage func(history.Message)
	var sink io.Closer
	if appConfig.SyncURL != "" {
		s, err := remotesync.New(ctx, appConfig.SyncURL, remotesync.Options{})
		if err != nil {
			return nil, fmt.Errorf("failed to open editor link: %w", err)
		}
		onMessage = s.Handle
		sink = s
		logger.Debug("Editor link opened.", "url", appConfig.SyncURL)
	}

	device, queue := gpu.NewSoftware()
	eng, err := engine.Init(engine.Descriptor{
		Device:    device,
		Queue:     queue,
		OnMessage: onMessage,
		Logger:    logger,
	})
	if err != nil {
		if sink != nil {
			sink.Close()
		}
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}

	info, err := document.Load(ctx, eng, appConfig.DocumentPath)
	if err != nil {
		if sink != nil {
			sink.Close()
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	logger.Debug("Document loaded into engine.", "nodes", eng.NodeCount(), "edges", eng.EdgeCount())

	return &App{
		outW:   outW,
		logger: logger,
		engine: eng,
		sink:   sink,
		docID:  info.ID,
	}, nil
}

// Engine returns the application's engine. This is primarily for testing.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Close releases the editor link, if one was opened.
func (a *App) Close() error {
	if a.sink != nil {
		return a.sink.Close()
	}
	return nil
}
