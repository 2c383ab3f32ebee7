// Package loader adds JSON-lines record files to a Senzing repository with a
// bounded pool of workers.
package loader

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szerror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers = 8
	maxLineSize    = 16 * 1024 * 1024
)

// Adder is the part of senzing.SzEngine the loader uses.
type Adder interface {
	AddRecord(ctx context.Context, dataSourceCode, recordID, recordDefinition string, flags int64) (string, error)
}

var _ Adder = senzing.SzEngine(nil)

// Options tune Load. Zero values take the defaults.
type Options struct {
	Workers int
	// MaxErrors is the number of rejected records tolerated before Load
	// gives up. Negative means unlimited.
	MaxErrors int
	Flags     int64
	// OnInfo receives the with-info document of every loaded record when
	// Flags includes senzing.SzWithInfo. It is called from worker goroutines.
	OnInfo func(info string)
	Logger *zap.Logger
}

// Result summarises a Load.
type Result struct {
	Loaded  int64
	Skipped int64
	Errors  []error
}

// LineError is a record that was rejected.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ErrTooManyErrors is returned once more than MaxErrors records were rejected.
var ErrTooManyErrors = errors.New("too many rejected records")

type recordKeys struct {
	DataSource string          `json:"DATA_SOURCE"`
	RecordID   json.RawMessage `json:"RECORD_ID"`
}

// Load reads one JSON record per line from r and adds it. Each record needs
// DATA_SOURCE and RECORD_ID. Records the engine rejects as bad input are
// counted in Result.Errors; a retryable failure is tried once more; any other
// failure stops the load.
func Load(ctx context.Context, engine Adder, r io.Reader, opts Options) (Result, error) {
	l := &load{engine: engine, opts: opts, logger: opts.Logger}
	if l.logger == nil {
		l.logger = zap.L()
	}
	err := l.run(ctx, r)
	return l.result(), err
}

type load struct {
	engine Adder
	opts   Options
	logger *zap.Logger

	loaded  atomic.Int64
	skipped atomic.Int64
	mu      sync.Mutex
	errs    []error
}

func (l *load) run(ctx context.Context, r io.Reader) error {
	workers := l.opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() && gctx.Err() == nil {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		dataSource, recordID, err := parseKeys(text)
		if err != nil {
			if err := l.reject(line, err); err != nil {
				return errors.Join(err, g.Wait())
			}
			continue
		}
		n := line
		g.Go(func() error {
			return l.add(gctx, n, dataSource, recordID, text)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read records: %w", err)
	}
	return ctx.Err()
}

func (l *load) add(ctx context.Context, line int, dataSource, recordID, record string) error {
	info, err := l.engine.AddRecord(ctx, dataSource, recordID, record, l.opts.Flags)
	if err != nil && szerror.IsRetryable(err) {
		l.logger.Warn("add record failed, retrying",
			zap.Int("line", line),
			zap.String("data_source", dataSource),
			zap.String("record_id", recordID),
			zap.Error(err))
		info, err = l.engine.AddRecord(ctx, dataSource, recordID, record, l.opts.Flags)
	}
	switch {
	case err == nil:
	case errors.Is(err, szerror.ErrSzBadInput):
		return l.reject(line, err)
	default:
		return &LineError{Line: line, Err: err}
	}

	l.loaded.Add(1)
	if l.opts.OnInfo != nil && l.opts.Flags&senzing.SzWithInfo != 0 && info != "" {
		l.opts.OnInfo(info)
	}
	return nil
}

// reject records a bad line and reports ErrTooManyErrors once the budget is
// spent.
func (l *load) reject(line int, err error) error {
	l.skipped.Add(1)
	l.logger.Warn("record rejected", zap.Int("line", line), zap.Error(err))

	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, &LineError{Line: line, Err: err})
	if l.opts.MaxErrors >= 0 && len(l.errs) > l.opts.MaxErrors {
		return fmt.Errorf("%w: %d rejected, limit %d", ErrTooManyErrors, len(l.errs), l.opts.MaxErrors)
	}
	return nil
}

func (l *load) result() Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Result{
		Loaded:  l.loaded.Load(),
		Skipped: l.skipped.Load(),
		Errors:  append([]error(nil), l.errs...),
	}
}

// parseKeys extracts DATA_SOURCE and RECORD_ID. RECORD_ID may be a JSON
// string or number.
func parseKeys(text string) (string, string, error) {
	var keys recordKeys
	if err := json.Unmarshal([]byte(text), &keys); err != nil {
		return "", "", szerror.Newf(szerror.KindBadInput, "invalid JSON: %v", err)
	}
	recordID := strings.TrimSpace(string(keys.RecordID))
	if strings.HasPrefix(recordID, `"`) {
		if err := json.Unmarshal(keys.RecordID, &recordID); err != nil {
			return "", "", szerror.Newf(szerror.KindBadInput, "invalid RECORD_ID: %v", err)
		}
	} else if recordID == "null" || strings.HasPrefix(recordID, "{") || strings.HasPrefix(recordID, "[") {
		recordID = ""
	}
	if keys.DataSource == "" || recordID == "" {
		return "", "", szerror.Newf(szerror.KindBadInput, "record needs DATA_SOURCE and RECORD_ID")
	}
	return keys.DataSource, recordID, nil
}
