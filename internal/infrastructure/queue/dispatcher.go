package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/concertshift/timesheet/internal/api/metrics"
	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes shift events to a fixed set of workers by hashing the
// user id, so one user's events are recorded in the order they happened.
type Dispatcher struct {
	workers []chan domain.ShiftEvent
	service ports.AuditService
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ShiftEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ShiftEvent, channelBuffer)
	}
	return d
}

var _ ports.AuditSink = (*Dispatcher)(nil)

// Start launches the workers. ctx is handed to every Process call; workers
// exit once their channel is closed by Shutdown.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands ev to its worker without blocking. When the worker's buffer
// is full or the dispatcher has stopped, the event is dropped and counted.
func (d *Dispatcher) Publish(ev domain.ShiftEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.drop(ev, "stopped")
		return
	}

	idx := d.shardIndex(ev.UserID)
	select {
	case d.workers[idx] <- ev:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(ev, "queue_full")
	}
}

// Shutdown stops accepting events and waits for queued ones to be written,
// or for ctx to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) drop(ev domain.ShiftEvent, reason string) {
	metrics.AuditEventsErrorsTotal.WithLabelValues(reason).Inc()
	d.log.Warn().
		Str("entry_id", ev.EntryID).
		Str("action", string(ev.Action)).
		Str("reason", reason).
		Msg("shift event dropped")
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ShiftEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for ev := range ch {
		metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		start := time.Now()

		if err := d.service.Process(ctx, ev); err != nil {
			metrics.AuditEventsErrorsTotal.WithLabelValues("persist_failed").Inc()
			d.log.Error().Err(err).
				Str("entry_id", ev.EntryID).
				Str("action", string(ev.Action)).
				Int("worker_id", id).
				Msg("shift event processing failed")
			continue
		}

		metrics.AuditEventsProcessedTotal.WithLabelValues(string(ev.Action)).Inc()
		metrics.AuditProcessingDuration.WithLabelValues(string(ev.Action)).Observe(time.Since(start).Seconds())
	}
}
