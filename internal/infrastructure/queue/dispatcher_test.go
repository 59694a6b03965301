package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mugstore/backoffice/internal/core/ports"
)

type recordingProcessor struct {
	mu   sync.Mutex
	skus []string
	errs map[string]error
	done chan struct{}
	want int
}

func newRecordingProcessor(want int) *recordingProcessor {
	return &recordingProcessor{
		errs: make(map[string]error),
		done: make(chan struct{}),
		want: want,
	}
}

func (p *recordingProcessor) Process(_ context.Context, job ports.ProductRowJob) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.skus = append(p.skus, job.Input.SKU)
	if len(p.skus) == p.want {
		close(p.done)
	}
	return p.errs[job.Input.SKU]
}

func (p *recordingProcessor) wait(t *testing.T) {
	t.Helper()
	select {
	case <-p.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rows to be processed")
	}
}

func TestShardIndex_Deterministic(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	for _, sku := range []string{"MUG-001", "MUG-002", "", "a-very-long-sku-code-0123456789"} {
		first := d.shardIndex(sku)
		if first < 0 || first >= 4 {
			t.Fatalf("shard index %d out of range for %q", first, sku)
		}
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(sku); got != first {
				t.Fatalf("shardIndex(%q) not stable: %d then %d", sku, first, got)
			}
		}
	}
}

func TestDispatcher_ProcessesBatch(t *testing.T) {
	proc := newRecordingProcessor(6)
	d := NewDispatcher(3, proc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	jobs := make([]ports.ProductRowJob, 0, 6)
	for i := 0; i < 6; i++ {
		jobs = append(jobs, ports.ProductRowJob{
			Actor: ports.Actor{ID: "admin-1"},
			Input: ports.ProductInput{SKU: fmt.Sprintf("MUG-%03d", i)},
		})
	}
	d.EnqueueBatch(jobs)
	proc.wait(t)

	proc.mu.Lock()
	defer proc.mu.Unlock()
	seen := make(map[string]bool, len(proc.skus))
	for _, sku := range proc.skus {
		seen[sku] = true
	}
	for _, j := range jobs {
		if !seen[j.Input.SKU] {
			t.Fatalf("row %s never processed", j.Input.SKU)
		}
	}
}

func TestDispatcher_RowFailureDoesNotStopWorker(t *testing.T) {
	proc := newRecordingProcessor(3)
	proc.errs["MUG-BAD"] = errors.New("duplicate sku")
	// Single worker so all three rows flow through the same goroutine.
	d := NewDispatcher(1, proc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.EnqueueBatch([]ports.ProductRowJob{
		{Input: ports.ProductInput{SKU: "MUG-OK1"}},
		{Input: ports.ProductInput{SKU: "MUG-BAD"}},
		{Input: ports.ProductInput{SKU: "MUG-OK2"}},
	})
	proc.wait(t)

	proc.mu.Lock()
	defer proc.mu.Unlock()
	if len(proc.skus) != 3 {
		t.Fatalf("expected 3 rows processed, got %d", len(proc.skus))
	}
	if proc.skus[2] != "MUG-OK2" {
		t.Fatalf("expected worker to continue past failing row, got order %v", proc.skus)
	}
}

func TestNewDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
