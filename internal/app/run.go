package app

import (
	"context"
	"fmt"

	"github.com/vk/grafiek/internal/ctxlog"
	"github.com/vk/grafiek/internal/document"
	"github.com/vk/grafiek/internal/ops"
)

// frameDelta is the timestep between execution passes, a fixed 60 Hz.
const frameDelta = float32(1.0 / 60.0)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.engine.NodeCount() > 0 {
		a.logger.Info("🚀 Starting execution...", "nodes", a.engine.NodeCount(), "frames", appConfig.Frames)
		for frame := 0; frame < appConfig.Frames; frame++ {
			a.engine.SetTiming(ops.TimeInfo{
				Time:  float32(frame) * frameDelta,
				Delta: frameDelta,
				Frame: uint64(frame),
			})
			a.engine.Execute()
		}
		a.logger.Info("🏁 Execution finished.")

		a.printResults()
	} else {
		a.logger.Warn("Document holds no nodes, execution not required.")
	}

	if appConfig.SavePath != "" {
		id, err := document.Save(ctx, a.engine, a.docID, appConfig.SavePath)
		if err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}
		a.docID = id
		a.logger.Info("Document saved.", "path", appConfig.SavePath)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// printResults writes one line per output node to the app's writer.
func (a *App) printResults() {
	outputs := a.engine.OutputNodes()
	if len(outputs) == 0 {
		a.logger.Warn("Document has no output nodes.")
		return
	}

	for i, id := range outputs {
		v, _ := a.engine.Result(i)
		name := fmt.Sprintf("result[%d]", i)
		if n, ok := a.engine.GetNode(id); ok && n.Record().Label != "" {
			name = n.Record().Label
		}
		fmt.Fprintf(a.outW, "%s = %s\n", name, v)
	}
}
