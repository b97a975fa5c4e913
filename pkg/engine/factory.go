package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Type selects how the translation model is hosted.
type Type string

const (
	// TypeWorker runs the model in local Python worker subprocesses.
	TypeWorker Type = "worker"
	// TypeRemote calls an external inference server over HTTP.
	TypeRemote Type = "remote"
	// TypeDemo runs with no model at all; the service layer serves its
	// fixed phrasebook instead.
	TypeDemo Type = "demo"
)

// Config holds configuration for creating an Engine instance. Each field has
// a documented default; zero values are filled in by New.
type Config struct {
	// Engine selects the hosting mode. Required.
	Engine Type
	// BaseURL is the inference server URL for TypeRemote.
	// Defaults to http://localhost:8500.
	BaseURL string
	// ModelPath is the directory holding the fine-tuned model for
	// TypeWorker. Defaults to ./models/english-hausa-translator.
	ModelPath string
	// PythonPath is the Python interpreter used to start workers.
	// Defaults to python3.
	PythonPath string
	// ScriptPath is the worker entrypoint.
	// Defaults to scripts/inference_worker.py.
	ScriptPath string
	// Workers is the number of worker subprocesses for TypeWorker.
	// Defaults to 1; generation is CPU/accelerator bound, so size this to
	// the available compute devices.
	Workers int
	// SocketDir is where worker Unix sockets are created.
	// Defaults to /tmp/fassara-workers.
	SocketDir string
	// Logger is the logger instance to use. If nil, a default logger is
	// created.
	Logger *logrus.Logger
}

// New creates an Engine based on the configuration. TypeDemo returns a nil
// handle: demo mode is the absence of an engine, chosen once at startup.
func New(cfg Config) (Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	cfg.Logger.WithFields(logrus.Fields{
		"engine":     cfg.Engine,
		"base_url":   cfg.BaseURL,
		"model_path": cfg.ModelPath,
		"workers":    cfg.Workers,
	}).Info("Creating translation engine")

	switch cfg.Engine {
	case TypeWorker:
		return NewWorkerPool(cfg)
	case TypeRemote:
		return NewRemoteClient(cfg.BaseURL, cfg.Logger), nil
	case TypeDemo:
		return nil, nil
	default:
		cfg.Logger.WithFields(logrus.Fields{
			"engine": cfg.Engine,
		}).Error("Unknown translation engine")
		return nil, fmt.Errorf("unknown translation engine: %s", cfg.Engine)
	}
}

// ParseType parses a string into an engine Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "worker", "Worker", "WORKER":
		return TypeWorker, nil
	case "remote", "Remote", "REMOTE":
		return TypeRemote, nil
	case "demo", "Demo", "DEMO":
		return TypeDemo, nil
	default:
		return "", fmt.Errorf("unknown engine type: %s (supported: worker, remote, demo)", s)
	}
}
