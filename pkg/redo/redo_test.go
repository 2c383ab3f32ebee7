package redo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine serves a fixed queue of redo records. processFn, when set,
// decides the outcome of each ProcessRedoRecord call.
type fakeEngine struct {
	mu        sync.Mutex
	queue     []string
	processed []string
	fetchErrs []error
	processFn func(record string, attempt int) (string, error)
	attempts  map[string]int
}

func newFakeEngine(n int) *fakeEngine {
	f := &fakeEngine{attempts: make(map[string]int)}
	for i := 0; i < n; i++ {
		f.queue = append(f.queue, fmt.Sprintf(`{"REASON":"test","RECORD_ID":"%d"}`, i))
	}
	return f
}

func (f *fakeEngine) GetRedoRecord(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.fetchErrs) > 0 {
		err := f.fetchErrs[0]
		f.fetchErrs = f.fetchErrs[1:]
		return "", err
	}
	if len(f.queue) == 0 {
		return "", nil
	}
	r := f.queue[0]
	f.queue = f.queue[1:]
	return r, nil
}

func (f *fakeEngine) ProcessRedoRecord(_ context.Context, record string, _ int64) (string, error) {
	f.mu.Lock()
	f.attempts[record]++
	attempt := f.attempts[record]
	fn := f.processFn
	f.mu.Unlock()

	if fn != nil {
		info, err := fn(record, attempt)
		if err != nil {
			return "", err
		}
		f.record(record)
		return info, nil
	}
	f.record(record)
	return `{"AFFECTED_ENTITIES":[]}`, nil
}

func (f *fakeEngine) record(r string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processed = append(f.processed, r)
}

func (f *fakeEngine) push(records ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, records...)
}

func (f *fakeEngine) processedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.processed)
}

func TestDrain(t *testing.T) {
	engine := newFakeEngine(25)
	p := &Processor{Engine: engine, Workers: 3}

	stats, err := p.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Fetched: 25, Processed: 25}, stats)
	assert.Equal(t, 25, engine.processedCount())
}

func TestDrainEmptyQueue(t *testing.T) {
	stats, err := (&Processor{Engine: newFakeEngine(0)}).Drain(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats)
}

func TestRetryableProcessFailureIsRetriedOnce(t *testing.T) {
	engine := newFakeEngine(2)
	engine.processFn = func(record string, attempt int) (string, error) {
		if attempt == 1 {
			return "", szerror.New(1008, "deadlock")
		}
		return "", nil
	}
	p := &Processor{Engine: engine, Workers: 1}

	stats, err := p.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Fetched: 2, Processed: 2, Retried: 2}, stats)
}

func TestRetryableFailureTwiceIsCountedAndSkipped(t *testing.T) {
	engine := newFakeEngine(3)
	engine.processFn = func(record string, attempt int) (string, error) {
		if record == engine.firstRecord() {
			return "", szerror.New(1007, "connection lost")
		}
		return "", nil
	}
	p := &Processor{Engine: engine, Workers: 1}

	stats, err := p.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(2), stats.Processed)
	assert.Equal(t, int64(1), stats.Retried)
}

func (f *fakeEngine) firstRecord() string {
	return `{"REASON":"test","RECORD_ID":"0"}`
}

func TestNonRetryableFailureStopsRun(t *testing.T) {
	engine := newFakeEngine(50)
	engine.processFn = func(string, int) (string, error) {
		return "", szerror.New(2, "Invalid JSON")
	}
	p := &Processor{Engine: engine, Workers: 2}

	_, err := p.Drain(context.Background())
	assert.ErrorIs(t, err, szerror.ErrSzBadInput)
	assert.Less(t, engine.processedCount()+int(p.Stats().Failed), 50)
}

func TestFetchRetry(t *testing.T) {
	engine := newFakeEngine(1)
	engine.fetchErrs = []error{szerror.New(1006, "connection lost")}

	stats, err := (&Processor{Engine: engine}).Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Fetched: 1, Processed: 1, Retried: 1}, stats)
}

func TestFetchFailureReturned(t *testing.T) {
	engine := newFakeEngine(1)
	engine.fetchErrs = []error{szerror.New(48, "not initialized")}

	_, err := (&Processor{Engine: engine}).Drain(context.Background())
	assert.ErrorIs(t, err, szerror.ErrSzNotInitialized)
}

func TestOnInfo(t *testing.T) {
	engine := newFakeEngine(4)
	var mu sync.Mutex
	var infos []string
	p := &Processor{
		Engine:  engine,
		Workers: 2,
		Flags:   senzing.SzWithInfo,
		OnInfo: func(info string) {
			mu.Lock()
			defer mu.Unlock()
			infos = append(infos, info)
		},
	}

	_, err := p.Drain(context.Background())
	require.NoError(t, err)
	assert.Len(t, infos, 4)

	// Without the with-info flag the callback stays silent.
	infos = nil
	engine.push(`{"REASON":"late"}`)
	p.Flags = senzing.SzNoFlags
	_, err = p.Drain(context.Background())
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestRunPollsUntilCancelled(t *testing.T) {
	engine := newFakeEngine(2)
	p := &Processor{Engine: engine, Workers: 2, PollInterval: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool { return engine.processedCount() == 2 }, time.Second, 5*time.Millisecond)
	engine.push(`{"REASON":"late"}`)
	require.Eventually(t, func() bool { return engine.processedCount() == 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	assert.Equal(t, int64(3), p.Stats().Processed)
}

func TestRunWithoutEngine(t *testing.T) {
	err := (&Processor{}).Run(context.Background())
	assert.ErrorIs(t, err, szerror.ErrSzSdk)
}
