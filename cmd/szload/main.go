// Command szload adds a JSON-lines file of records to a Senzing repository
// through the gRPC server and optionally drains the redo queue afterwards.
// With -follow it keeps processing redo records, polling every
// timeouts.redo_poll, until interrupted.
//
// Stdout carries only with-info documents; logs go to stderr.
//
//	szload -config senzing.toml -file customers.jsonl -workers 16 -redo
//	szload -config senzing.toml -file /dev/null -follow
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/config"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/loader"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/redo"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/sdk"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	configPath string
	file       string
	workers    int
	maxErrors  int
	withInfo   bool
	redo       bool
	follow     bool
	debug      bool
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "config file (.toml, .yaml, .json); without it "+config.EnvGRPCURL+" must be set")
	flag.StringVar(&o.file, "file", "-", "JSON-lines record file, - for stdin")
	flag.IntVar(&o.workers, "workers", loader.DefaultWorkers, "concurrent AddRecord and redo workers")
	flag.IntVar(&o.maxErrors, "max-errors", 0, "rejected records tolerated before stopping, negative for unlimited")
	flag.BoolVar(&o.withInfo, "with-info", false, "print the with-info document of every change to stdout")
	flag.BoolVar(&o.redo, "redo", false, "drain the redo queue after loading")
	flag.BoolVar(&o.follow, "follow", false, "after loading, process redo records until interrupted, polling every timeouts.redo_poll")
	flag.BoolVar(&o.debug, "debug", false, "debug logging")
	flag.Parse()

	logger := newLogger(zapcore.Lock(os.Stderr), o.debug)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil {
		zap.L().Error("szload failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, o options) error {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	core, err := sdk.NewSDK(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := core.Destroy(context.Background()); err != nil {
			zap.L().Warn("destroy", zap.Error(err))
		}
	}()

	if _, err := core.Health(ctx); err != nil {
		return fmt.Errorf("server %s not ready: %w", cfg.GRPCURL, err)
	}

	engine, err := core.CreateEngine(ctx)
	if err != nil {
		return err
	}

	in, err := openInput(o.file)
	if err != nil {
		return err
	}
	defer in.Close()

	var flags int64
	var onInfo func(string)
	if o.withInfo {
		flags = senzing.SzWithInfo
		onInfo = infoWriter(os.Stdout)
	}

	res, err := loader.Load(ctx, engine, in, loader.Options{
		Workers:   o.workers,
		MaxErrors: o.maxErrors,
		Flags:     flags,
		OnInfo:    onInfo,
	})
	zap.L().Info("load finished",
		zap.String("file", o.file),
		zap.Int64("loaded", res.Loaded),
		zap.Int64("skipped", res.Skipped),
		zap.Int("rejected", len(res.Errors)))
	if err != nil {
		return err
	}

	if !o.redo && !o.follow {
		return nil
	}
	p := &redo.Processor{
		Engine:       engine,
		Workers:      o.workers,
		PollInterval: cfg.Timeouts.RedoPoll,
		Flags:        flags,
		OnInfo:       onInfo,
	}
	return processRedo(ctx, p, o.follow)
}

// processRedo drains the redo queue, or with follow keeps polling it until
// ctx is cancelled. Cancellation is not an error.
func processRedo(ctx context.Context, p *redo.Processor, follow bool) error {
	var err error
	if follow {
		zap.L().Info("following redo queue", zap.Duration("poll", p.PollInterval))
		err = p.Run(ctx)
	} else {
		_, err = p.Drain(ctx)
	}
	stats := p.Stats()
	zap.L().Info("redo finished",
		zap.Int64("fetched", stats.Fetched),
		zap.Int64("processed", stats.Processed),
		zap.Int64("retried", stats.Retried),
		zap.Int64("failed", stats.Failed))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// newLogger builds the CLI logger. It replaces the SDK's stdout logger so
// stdout stays reserved for with-info documents.
func newLogger(w zapcore.WriteSyncer, debug bool) *zap.Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), w, level))
}

// infoWriter returns an OnInfo callback that writes one document per line to
// w. It is safe for concurrent use.
func infoWriter(w io.Writer) func(string) {
	var mu sync.Mutex
	return func(info string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, info)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		// NewSDK validates and applies the environment override.
		return &config.Config{}, nil
	}
	return config.Load(path)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" || path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records: %w", err)
	}
	return f, nil
}
