// Package worker prefetches videos for curated songs in the background,
// warming the resolver cache so the follow-up lookup from the client is
// a cache hit.
package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/moodic-labs/moodic/internal/core/ports"
)

// Job names one song whose videos should be prefetched.
type Job struct {
	Title  string
	Artist string
}

// Pool runs the prefetch workers. Jobs are best-effort; when the queue
// is full they are dropped, never blocking a request.
type Pool struct {
	resolver ports.VideoResolver
	logger   *zap.Logger
	timeout  time.Duration
	jobs     chan Job
	wg       sync.WaitGroup
}

// NewPool creates the pool with the given queue size.
func NewPool(resolver ports.VideoResolver, logger *zap.Logger, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		resolver: resolver,
		logger:   logger,
		timeout:  10 * time.Second,
		jobs:     make(chan Job, queueSize),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.process(job)
			}
		}()
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		p.logger.Warn("dropping prefetch job, queue full",
			zap.String("title", job.Title),
			zap.String("artist", job.Artist))
	}
}

func (p *Pool) process(job Job) {
	if job.Title == "" || job.Artist == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if _, err := p.resolver.Resolve(ctx, job.Title, job.Artist); err != nil {
		p.logger.Warn("video prefetch failed",
			zap.String("title", job.Title),
			zap.String("artist", job.Artist),
			zap.Error(err))
	}
}
