package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	workerSocketDir     = "/tmp/fassara-workers"
	workerStartupDelay  = 100 * time.Millisecond
	workerBootTimeout   = 2 * time.Minute
	workerRestartDelay  = 1 * time.Second
	workerCheckoutWait  = 10 * time.Second
	workerGenerateLimit = 5 * time.Minute
)

// WorkerPool hosts the translation model in Python worker subprocesses, one
// model instance per worker, reached over Unix domain sockets. The model's
// generate call is not reentrant, so the pool serializes access: a worker
// handles one generation at a time and is checked out through the ready
// channel.
//
// Worker slots are permanent. A slot's handle enters workerReady exactly once
// at pool startup; a crashed process is relaunched inside its existing slot,
// so the channel never holds more handles than there are slots.
type WorkerPool struct {
	modelPath  string
	pythonPath string
	scriptPath string

	workers    []*inferenceWorker
	workerMu   sync.RWMutex
	maxWorkers int
	socketDir  string

	logger  *logrus.Logger
	metrics *poolMetrics

	workerReady chan *inferenceWorker
	shutdown    chan struct{}
	wg          sync.WaitGroup
}

// inferenceWorker is a single model-hosting slot. The process field is
// replaced on restart; mu guards process, busy, exited, and restarting.
type inferenceWorker struct {
	id         int
	socketPath string
	logger     *logrus.Entry
	pool       *WorkerPool

	mu         sync.Mutex
	process    *exec.Cmd
	busy       bool
	exited     bool
	restarting bool
	startedAt  time.Time
}

// workerRequest is the JSON payload sent to a worker over its socket.
type workerRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	MaxLength  int    `json:"max_length"`
	NumBeams   int    `json:"num_beams"`
}

// workerResponse is a worker's reply.
type workerResponse struct {
	Success        bool   `json:"success"`
	TranslatedText string `json:"translated_text,omitempty"`
	Error          string `json:"error,omitempty"`
}

// NewWorkerPool starts a pool of model workers. The model is loaded once per
// worker during startup and never reloaded.
func NewWorkerPool(cfg Config) (*WorkerPool, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	modelPath := cfg.ModelPath
	if modelPath == "" {
		modelPath = "./models/english-hausa-translator"
	}
	pythonPath := cfg.PythonPath
	if pythonPath == "" {
		pythonPath = "python3"
	}
	scriptPath := cfg.ScriptPath
	if scriptPath == "" {
		scriptPath = "scripts/inference_worker.py"
	}
	maxWorkers := cfg.Workers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	socketDir := cfg.SocketDir
	if socketDir == "" {
		socketDir = workerSocketDir
	}
	if err := os.MkdirAll(socketDir, 0o755); err != nil {
		return nil, fmt.Errorf("create socket directory: %w", err)
	}

	pool := &WorkerPool{
		modelPath:   modelPath,
		pythonPath:  pythonPath,
		scriptPath:  scriptPath,
		maxWorkers:  maxWorkers,
		socketDir:   socketDir,
		logger:      logger,
		workerReady: make(chan *inferenceWorker, maxWorkers),
		shutdown:    make(chan struct{}),
	}
	pool.metrics = newPoolMetrics(pool)

	pool.wg.Add(2)
	go pool.superviseWorkers()
	go pool.updateMetricsLoop()

	for i := 0; i < maxWorkers; i++ {
		if err := pool.startWorker(i); err != nil {
			logger.WithError(err).Warn("Failed to start initial worker, will retry")
		}
	}

	return pool, nil
}

// superviseWorkers periodically relaunches workers whose process died and
// whose monitor gave up on the restart.
func (p *WorkerPool) superviseWorkers() {
	defer p.wg.Done()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.shutdown:
			return
		case <-ticker.C:
			p.restartDeadWorkers()
		}
	}
}

func (p *WorkerPool) updateMetricsLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.shutdown:
			return
		case <-ticker.C:
			p.metrics.updatePoolGauges()
			p.updateWorkerMemory()
		}
	}
}

// updateWorkerMemory reads per-worker RSS from /proc (Linux only).
func (p *WorkerPool) updateWorkerMemory() {
	p.workerMu.RLock()
	defer p.workerMu.RUnlock()

	for _, w := range p.workers {
		w.mu.Lock()
		cmd := w.process
		w.mu.Unlock()
		if cmd != nil && cmd.Process != nil {
			if bytes := processRSS(cmd.Process.Pid); bytes > 0 {
				p.metrics.setWorkerMemory(w.id, bytes)
			}
		}
	}
}

// processRSS reads VmRSS from /proc/[pid]/status, in bytes. Returns 0 when
// unavailable (non-Linux, process gone).
func processRSS(pid int) int64 {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/status", pid))
	if err != nil {
		return 0
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			if kb, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
				return kb * 1024
			}
		}
	}
	return 0
}

// startWorker creates one worker slot, launches its process, and makes the
// slot available for checkout. Called once per slot at pool startup.
func (p *WorkerPool) startWorker(id int) error {
	worker := &inferenceWorker{
		id:         id,
		socketPath: filepath.Join(p.socketDir, fmt.Sprintf("worker-%d.sock", id)),
		logger:     p.logger.WithField("worker_id", id),
		pool:       p,
	}

	if err := p.launchWorker(worker); err != nil {
		return err
	}

	p.workerMu.Lock()
	p.workers = append(p.workers, worker)
	p.workerMu.Unlock()
	p.workerReady <- worker

	return nil
}

// launchWorker starts a model process for an existing slot and waits for its
// socket. Model loading can take minutes, so no locks are held across the
// wait.
func (p *WorkerPool) launchWorker(w *inferenceWorker) error {
	os.Remove(w.socketPath)

	cmd := exec.Command(p.pythonPath, p.scriptPath,
		"--socket", w.socketPath,
		"--model", p.modelPath,
	)
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start worker %d: %w", w.id, err)
	}

	// The worker creates the socket only after the model finished loading,
	// which can take a while on first start.
	deadline := time.Now().Add(workerBootTimeout)
	for {
		if _, err := os.Stat(w.socketPath); err == nil {
			break
		}
		if time.Now().After(deadline) {
			cmd.Process.Kill()
			return fmt.Errorf("worker %d socket not created within %s", w.id, workerBootTimeout)
		}
		time.Sleep(workerStartupDelay)
	}

	select {
	case <-p.shutdown:
		cmd.Process.Kill()
		return fmt.Errorf("pool is shutting down")
	default:
	}

	w.mu.Lock()
	w.process = cmd
	w.startedAt = time.Now()
	w.exited = false
	w.mu.Unlock()

	w.logger.Info("Worker started")
	p.metrics.recordWorkerStart(w.id)

	go w.monitor(cmd)

	return nil
}

// monitor waits on one worker process and relaunches the slot when it exits.
// The slot's handle is never touched: it stays valid across the restart, so
// nothing extra enters workerReady.
func (w *inferenceWorker) monitor(cmd *exec.Cmd) {
	err := cmd.Wait()

	select {
	case <-w.pool.shutdown:
		return
	default:
	}

	w.logger.WithError(err).Warn("Worker process exited")

	w.mu.Lock()
	w.busy = false
	w.exited = true
	w.restarting = true
	w.mu.Unlock()

	w.pool.metrics.recordWorkerRestart(w.id)

	time.Sleep(workerRestartDelay)

	select {
	case <-w.pool.shutdown:
		return
	default:
	}

	lerr := w.pool.launchWorker(w)

	w.mu.Lock()
	w.restarting = false
	w.mu.Unlock()

	if lerr != nil {
		w.logger.WithError(lerr).Error("Failed to restart worker")
	}
}

// restartDeadWorkers relaunches slots whose process exited and whose monitor
// restart failed.
func (p *WorkerPool) restartDeadWorkers() {
	p.workerMu.RLock()
	workers := make([]*inferenceWorker, len(p.workers))
	copy(workers, p.workers)
	p.workerMu.RUnlock()

	for _, w := range workers {
		w.mu.Lock()
		dead := w.exited && !w.restarting
		w.mu.Unlock()
		if dead {
			p.logger.WithField("worker_id", w.id).Warn("Worker is dead, restarting")
			if err := p.launchWorker(w); err != nil {
				p.logger.WithError(err).WithField("worker_id", w.id).Error("Restart failed")
			}
		}
	}
}

// Generate runs one generation on an available worker. Access is serialized:
// the call blocks until a worker is free or the wait times out. The handle is
// always returned to the ready channel, including when the generation failed;
// a slot mid-restart simply fails the dial and the next checkout retries.
func (p *WorkerPool) Generate(ctx context.Context, text, sourceLang, targetLang string, maxLength, numBeams int) (string, error) {
	startTime := time.Now()
	requestSize := len(text)

	waitStart := time.Now()
	var worker *inferenceWorker
	select {
	case worker = <-p.workerReady:
		p.metrics.recordQueueWait(time.Since(waitStart))
	case <-ctx.Done():
		p.metrics.recordGeneration(time.Since(startTime), false, requestSize, 0)
		return "", ctx.Err()
	case <-time.After(workerCheckoutWait):
		p.metrics.recordGeneration(time.Since(startTime), false, requestSize, 0)
		return "", fmt.Errorf("timeout waiting for available worker")
	}

	worker.mu.Lock()
	worker.busy = true
	worker.mu.Unlock()

	defer func() {
		worker.mu.Lock()
		worker.busy = false
		worker.mu.Unlock()
		p.workerReady <- worker
	}()

	conn, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: worker.socketPath, Net: "unix"})
	if err != nil {
		p.metrics.recordGeneration(time.Since(startTime), false, requestSize, 0)
		return "", fmt.Errorf("connect to worker socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(workerGenerateLimit))

	req := &workerRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		MaxLength:  maxLength,
		NumBeams:   numBeams,
	}
	if err := json.NewEncoder(conn).Encode(req); err != nil {
		p.metrics.recordGeneration(time.Since(startTime), false, requestSize, 0)
		return "", fmt.Errorf("send request: %w", err)
	}

	var resp workerResponse
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		p.metrics.recordGeneration(time.Since(startTime), false, requestSize, 0)
		return "", fmt.Errorf("read response: %w", err)
	}

	p.metrics.recordGeneration(time.Since(startTime), resp.Success, requestSize, len(resp.TranslatedText))

	if !resp.Success {
		return "", fmt.Errorf("generation failed: %s", resp.Error)
	}

	return resp.TranslatedText, nil
}

// CheckHealth runs a short generation through the pool.
func (p *WorkerPool) CheckHealth(ctx context.Context) error {
	_, err := p.Generate(ctx, "test", "en", "ha", 64, 1)
	return err
}

// ModelInfo describes the pool and the model it hosts.
func (p *WorkerPool) ModelInfo(ctx context.Context) (map[string]interface{}, error) {
	p.workerMu.RLock()
	workers := len(p.workers)
	p.workerMu.RUnlock()

	return map[string]interface{}{
		"engine":              string(TypeWorker),
		"model_path":          p.modelPath,
		"workers":             workers,
		"supported_languages": []string{"en", "ha"},
	}, nil
}

// Close shuts down the pool and kills all worker processes.
func (p *WorkerPool) Close() error {
	close(p.shutdown)

	p.workerMu.Lock()
	for _, w := range p.workers {
		w.mu.Lock()
		cmd := w.process
		w.mu.Unlock()
		if cmd != nil && cmd.Process != nil {
			cmd.Process.Kill()
		}
		os.Remove(w.socketPath)
	}
	p.workerMu.Unlock()

	p.wg.Wait()
	return nil
}
