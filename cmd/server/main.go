package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dasmlab/fassara/pkg/engine"
	"github.com/dasmlab/fassara/pkg/server"
	"github.com/dasmlab/fassara/pkg/service"
)

var (
	// Server configuration flags
	port = flag.Int("port", 8000, "HTTP server port")

	// Engine configuration
	engineType   = flag.String("engine", "demo", "Engine hosting mode: worker, remote, or demo")
	engineURL    = flag.String("engine-url", "", "Base URL for the remote inference server (engine=remote)")
	modelPath    = flag.String("model-path", "./models/english-hausa-translator", "Model directory for worker mode")
	pythonPath   = flag.String("python", "python3", "Python interpreter for worker subprocesses")
	workerScript = flag.String("worker-script", "scripts/inference_worker.py", "Inference worker entrypoint")
	workers      = flag.Int("workers", 1, "Number of model worker subprocesses (engine=worker)")

	// Logging configuration
	logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.WithFields(logrus.Fields{
		"port":      *port,
		"engine":    *engineType,
		"log_level": level.String(),
	}).Info("Starting English-Hausa translation server")

	engType, err := engine.ParseType(*engineType)
	if err != nil {
		logger.WithError(err).Fatal("Failed to parse engine type")
	}

	eng, err := engine.New(engine.Config{
		Engine:     engType,
		BaseURL:    *engineURL,
		ModelPath:  *modelPath,
		PythonPath: *pythonPath,
		ScriptPath: *workerScript,
		Workers:    *workers,
		Logger:     logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to create translation engine")
	}

	if eng == nil {
		logger.Warn("No engine configured, serving in demo mode")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		logger.Info("Checking engine health...")
		if err := eng.CheckHealth(ctx); err != nil {
			logger.WithError(err).Warn("Engine health check failed, but continuing anyway")
			logger.Warn("Server will start, but translation requests may fail until the engine is ready")
		} else {
			logger.Info("Engine health check passed")
		}
		cancel()
	}

	svc := service.New(eng, logger)
	srv := server.New(svc, logger, *port)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		logger.WithError(err).Fatal("Server error")
	case sig := <-sigChan:
		logger.WithFields(logrus.Fields{
			"signal": sig.String(),
		}).Info("Received signal, shutting down gracefully...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("Graceful shutdown failed")
		}

		if closer, ok := eng.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.WithError(err).Warn("Engine shutdown failed")
			}
		}

		logger.Info("Server stopped")
	}
}
