// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel runs the record pipeline across a fixed-size worker pool.
// Each record is processed in isolation: a panic inside one record's
// extraction is recovered and attached to that record's result, never
// aborting the batch.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"urbar-parse/internal/core"
	"urbar-parse/internal/observability"
	"urbar-parse/internal/record"
)

// WorkerPool manages parallel record processing.
type WorkerPool struct {
	workers  int
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	engine   *core.Engine
	observer *observability.StandardObserver
}

// Job is one record queued for processing. Index preserves the input order
// so batch output can be re-sorted after the pool fans in.
type Job struct {
	Index  int
	Record record.Record
}

// Result carries one processed record, or the error that stopped it.
type Result struct {
	Index    int
	Output   *core.Result
	Err      error
	Duration time.Duration
}

// NewWorkerPool creates a pool over a shared engine. A non-positive worker
// count falls back to the CPU count.
func NewWorkerPool(workers int, engine *core.Engine, observer *observability.StandardObserver) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
		engine:   engine,
		observer: observer,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop signals that no further jobs will arrive and waits for the workers
// to drain the queue, then closes the results channel.
func (wp *WorkerPool) Stop() {
	close(wp.jobs)
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Submit queues a record. Blocks when the queue is full; returns early if
// the pool was cancelled.
func (wp *WorkerPool) Submit(job *Job) {
	select {
	case wp.jobs <- job:
	case <-wp.ctx.Done():
	}
}

// Results returns the results channel.
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job, id)

		select {
		case wp.results <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob runs one record through the engine with panic isolation.
func (wp *WorkerPool) processJob(job *Job, workerID int) (result *Result) {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if wp.observer != nil {
		finishTiming = wp.observer.StartTiming("worker_pool", "process_record", job.Record.Territory)
	}

	result = &Result{Index: job.Index}

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("record %d: extraction panic: %v", job.Index, r)
			result.Output = nil
		}
		result.Duration = time.Since(start)

		if finishTiming != nil {
			finishTiming(result.Err == nil, map[string]interface{}{
				"worker_id":   workerID,
				"record":      job.Index,
				"duration_ms": result.Duration.Milliseconds(),
			})
		}
	}()

	result.Output = wp.engine.Process(job.Record)
	return result
}

// ProcessBatch is the convenience path used by the CLI: fan the records out
// over the pool and return the results in input order. Records that failed
// have a nil Output and a non-nil Err at their original index.
func ProcessBatch(records []record.Record, workers int, engine *core.Engine, observer *observability.StandardObserver) []*Result {
	pool := NewWorkerPool(workers, engine, observer)
	pool.Start()

	go func() {
		for i, rec := range records {
			pool.Submit(&Job{Index: i, Record: rec})
		}
		pool.Stop()
	}()

	ordered := make([]*Result, len(records))
	for res := range pool.Results() {
		if res.Index >= 0 && res.Index < len(ordered) {
			ordered[res.Index] = res
		}
	}
	return ordered
}
