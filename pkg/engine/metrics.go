package engine

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	poolTotalWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fassara_worker_pool_total_workers",
			Help: "Total number of model workers in the pool",
		},
	)

	poolBusyWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fassara_worker_pool_busy_workers",
			Help: "Number of workers currently running a generation",
		},
	)

	poolIdleWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fassara_worker_pool_idle_workers",
			Help: "Number of idle workers available for generations",
		},
	)

	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fassara_generations_total",
			Help: "Total number of model generations",
		},
		[]string{"status"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fassara_generation_duration_seconds",
			Help:    "Duration of model generations in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
		},
		[]string{"status"},
	)

	generationRequestSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fassara_generation_request_size_bytes",
			Help:    "Size of generation input text in bytes",
			Buckets: []float64{50, 100, 250, 500, 1000, 2000, 5000},
		},
	)

	generationResponseSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fassara_generation_response_size_bytes",
			Help:    "Size of generation output text in bytes",
			Buckets: []float64{50, 100, 250, 500, 1000, 2000, 5000},
		},
	)

	workerStartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fassara_worker_starts_total",
			Help: "Total number of worker process starts",
		},
		[]string{"worker_id"},
	)

	workerRestartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fassara_worker_restarts_total",
			Help: "Total number of worker process restarts",
		},
		[]string{"worker_id"},
	)

	workerUptime = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fassara_worker_uptime_seconds",
			Help: "Uptime of each worker in seconds",
		},
		[]string{"worker_id"},
	)

	workerMemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fassara_worker_memory_usage_bytes",
			Help: "Resident memory of worker processes in bytes",
		},
		[]string{"worker_id"},
	)

	queueWaitTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fassara_worker_queue_wait_seconds",
			Help:    "Time spent waiting for an available worker",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
		},
	)
)

// poolMetrics bridges a WorkerPool to the package-level collectors.
type poolMetrics struct {
	pool *WorkerPool
}

func newPoolMetrics(pool *WorkerPool) *poolMetrics {
	return &poolMetrics{pool: pool}
}

func (m *poolMetrics) updatePoolGauges() {
	m.pool.workerMu.RLock()
	total := len(m.pool.workers)
	busy := 0
	for _, w := range m.pool.workers {
		w.mu.Lock()
		if w.busy {
			busy++
		}
		workerUptime.WithLabelValues(strconv.Itoa(w.id)).Set(time.Since(w.startedAt).Seconds())
		w.mu.Unlock()
	}
	m.pool.workerMu.RUnlock()

	poolTotalWorkers.Set(float64(total))
	poolBusyWorkers.Set(float64(busy))
	poolIdleWorkers.Set(float64(total - busy))
}

func (m *poolMetrics) recordGeneration(duration time.Duration, success bool, requestSize, responseSize int) {
	status := "success"
	if !success {
		status = "error"
	}
	generationsTotal.WithLabelValues(status).Inc()
	generationDuration.WithLabelValues(status).Observe(duration.Seconds())
	generationRequestSize.Observe(float64(requestSize))
	generationResponseSize.Observe(float64(responseSize))
}

func (m *poolMetrics) recordWorkerStart(workerID int) {
	workerStartsTotal.WithLabelValues(strconv.Itoa(workerID)).Inc()
}

func (m *poolMetrics) recordWorkerRestart(workerID int) {
	workerRestartsTotal.WithLabelValues(strconv.Itoa(workerID)).Inc()
}

func (m *poolMetrics) recordQueueWait(duration time.Duration) {
	queueWaitTime.Observe(duration.Seconds())
}

func (m *poolMetrics) setWorkerMemory(workerID int, bytes int64) {
	workerMemoryUsage.WithLabelValues(strconv.Itoa(workerID)).Set(float64(bytes))
}
