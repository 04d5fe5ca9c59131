package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DocumentPath string // .grafiek.hcl document to load
	SavePath     string // optional: write the document back here after execution
	SyncURL      string // optional: socket.io URL of an editor mirroring the message stream

	LogFormat string
	LogLevel  string
	Frames    int // execution passes to run
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DocumentPath == "" {
		return nil, errors.New("DocumentPath is a required configuration field and cannot be empty")
	}
	if cfg.Frames < 1 {
		cfg.Frames = 1
	}

	return &cfg, nil
}
