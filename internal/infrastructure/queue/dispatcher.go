package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/mugstore/backoffice/internal/api/metrics"
	"github.com/mugstore/backoffice/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes bulk-upload rows to a fixed set of workers using
// consistent hashing on the SKU, so the same SKU is never processed by two
// workers at once.
type Dispatcher struct {
	workers   []chan ports.ProductRowJob
	processor ports.RowProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.RowProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.ProductRowJob, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ProductRowJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a row to the worker responsible for its SKU.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.ProductRowJob) {
	idx := d.shardIndex(job.Input.SKU)
	d.workers[idx] <- job
	metrics.IngestQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple rows preserving per-SKU ordering.
func (d *Dispatcher) EnqueueBatch(jobs []ports.ProductRowJob) {
	for _, j := range jobs {
		d.Enqueue(j)
	}
}

// shardIndex maps a SKU deterministically to a worker index.
func (d *Dispatcher) shardIndex(sku string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sku))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ProductRowJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.processor.Process(ctx, job); err != nil {
				metrics.IngestRowsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("sku", job.Input.SKU).
					Int("worker_id", id).
					Msg("bulk row ingestion failed")
				continue
			}
			metrics.IngestRowsTotal.WithLabelValues("ok").Inc()
			metrics.IngestQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
