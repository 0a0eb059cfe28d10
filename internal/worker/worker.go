package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull = errors.New("worker queue full")
	ErrClosed    = errors.New("worker pool shutting down")
)

// Task is a function that represents a background job. The context is the
// one handed to Submit, so a caller's deadline still applies on the worker.
type Task func(ctx context.Context) error

type queued struct {
	ctx  context.Context
	task Task
}

type WorkerPool struct {
	taskQueue chan queued
	wg        sync.WaitGroup
	mu        sync.RWMutex // guards sends against close
	isClosing atomic.Bool
	logger    *logrus.Logger
}

func NewWorkerPool(size, queueSize int, logger *logrus.Logger) *WorkerPool {
	if size < 1 {
		size = 1
	}
	wp := &WorkerPool{
		taskQueue: make(chan queued, queueSize),
		logger:    logger,
	}

	for range size {
		wp.wg.Add(1)
		go wp.startWorker()
	}

	return wp
}

func (wp *WorkerPool) startWorker() {
	defer wp.wg.Done()
	for q := range wp.taskQueue {
		// the caller may have given up while the task sat in the queue
		if q.ctx.Err() != nil {
			continue
		}
		if err := q.task(q.ctx); err != nil {
			wp.logger.WithError(err).Debug("worker task failed")
		}
	}
}

// Submit enqueues t without blocking
func (wp *WorkerPool) Submit(ctx context.Context, t Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.isClosing.Load() {
		return ErrClosed
	}
	select {
	case wp.taskQueue <- queued{ctx: ctx, task: t}:
		return nil
	default:
		wp.logger.Warn("task queue full, rejecting task")
		return ErrQueueFull
	}
}

// Shutdown closes the queue and waits for workers to finish
func (wp *WorkerPool) Shutdown() {
	wp.mu.Lock()
	if wp.isClosing.Swap(true) {
		wp.mu.Unlock()
		return
	}
	close(wp.taskQueue)
	wp.mu.Unlock()
	wp.wg.Wait()
}
