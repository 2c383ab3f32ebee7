// Package redo replays the redo records the Senzing engine queues while
// loading. A Processor fetches records with GetRedoRecord and hands them to a
// bounded pool of workers that call ProcessRedoRecord.
package redo

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szerror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers      = 4
	DefaultPollInterval = 5 * time.Second
)

// Engine is the part of senzing.SzEngine the Processor uses.
type Engine interface {
	GetRedoRecord(ctx context.Context) (string, error)
	ProcessRedoRecord(ctx context.Context, redoRecord string, flags int64) (string, error)
}

var _ Engine = senzing.SzEngine(nil)

// Stats counts what a Processor has done.
type Stats struct {
	Fetched   int64
	Processed int64
	Retried   int64
	Failed    int64
}

// Processor replays redo records. Zero fields take the package defaults.
type Processor struct {
	Engine       Engine
	Workers      int
	PollInterval time.Duration
	Flags        int64
	// OnInfo receives the with-info document of every processed record when
	// Flags includes senzing.SzWithInfo. It is called from worker goroutines.
	OnInfo func(info string)
	Logger *zap.Logger

	fetched   atomic.Int64
	processed atomic.Int64
	retried   atomic.Int64
	failed    atomic.Int64
}

// Run processes redo records until ctx is cancelled, waiting PollInterval
// whenever the queue is empty. A non-retryable failure stops the run and is
// returned; cancellation returns nil.
func (p *Processor) Run(ctx context.Context) error {
	err := p.run(ctx, false)
	if ctx.Err() != nil && (err == nil || errors.Is(err, ctx.Err())) {
		return nil
	}
	return err
}

// Drain processes redo records until the queue is empty.
func (p *Processor) Drain(ctx context.Context) (Stats, error) {
	err := p.run(ctx, true)
	return p.Stats(), err
}

// Stats returns a snapshot of the counters.
func (p *Processor) Stats() Stats {
	return Stats{
		Fetched:   p.fetched.Load(),
		Processed: p.processed.Load(),
		Retried:   p.retried.Load(),
		Failed:    p.failed.Load(),
	}
}

func (p *Processor) run(ctx context.Context, stopWhenEmpty bool) error {
	if p.Engine == nil {
		return szerror.Newf(szerror.KindSdk, "redo processor has no engine")
	}
	logger := p.logger()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())

	var fetchErr error
	for gctx.Err() == nil {
		record, err := p.fetch(gctx)
		if err != nil {
			if gctx.Err() == nil {
				fetchErr = err
			}
			break
		}
		if record == "" {
			if stopWhenEmpty {
				break
			}
			logger.Debug("no redo records, waiting", zap.Duration("interval", p.pollInterval()))
			if !sleep(gctx, p.pollInterval()) {
				break
			}
			continue
		}

		p.fetched.Add(1)
		g.Go(func() error {
			return p.process(gctx, record)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if fetchErr != nil {
		return fetchErr
	}
	return ctx.Err()
}

// fetch gets the next record, retrying once on a retryable failure.
func (p *Processor) fetch(ctx context.Context) (string, error) {
	record, err := p.Engine.GetRedoRecord(ctx)
	if err != nil && szerror.IsRetryable(err) {
		p.logger().Warn("get redo record failed, retrying", zap.Error(err))
		p.retried.Add(1)
		record, err = p.Engine.GetRedoRecord(ctx)
	}
	return record, err
}

func (p *Processor) process(ctx context.Context, record string) error {
	logger := p.logger()

	info, err := p.Engine.ProcessRedoRecord(ctx, record, p.Flags)
	if err != nil && szerror.IsRetryable(err) {
		logger.Warn("redo record failed, retrying", zap.Error(err))
		p.retried.Add(1)
		info, err = p.Engine.ProcessRedoRecord(ctx, record, p.Flags)
	}
	switch {
	case err == nil:
	case szerror.IsRetryable(err):
		p.failed.Add(1)
		logger.Error("redo record failed after retry", zap.Error(err), zap.String("record", record))
		return nil
	default:
		p.failed.Add(1)
		logger.Error("redo record failed", zap.Error(err), zap.String("record", record))
		return err
	}

	p.processed.Add(1)
	if p.OnInfo != nil && p.Flags&senzing.SzWithInfo != 0 && info != "" {
		p.OnInfo(info)
	}
	return nil
}

func (p *Processor) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return DefaultWorkers
}

func (p *Processor) pollInterval() time.Duration {
	if p.PollInterval > 0 {
		return p.PollInterval
	}
	return DefaultPollInterval
}

func (p *Processor) logger() *zap.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return zap.L()
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
