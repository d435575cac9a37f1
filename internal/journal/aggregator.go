package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/rounal/internal/source"
)

// ErrIncomplete matches *IncompleteError with errors.Is.
var ErrIncomplete = errors.New("aggregation incomplete")

// FetchError reports the severity whose query failed.
type FetchError struct {
	Severity int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch severity %d (%s): %v", e.Severity, SeverityName(e.Severity), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IncompleteError reports that the run ended before every severity
// signalled completion.
type IncompleteError struct {
	Received int
	Expected int
	Err      error
}

func (e *IncompleteError) Error() string {
	msg := fmt.Sprintf("aggregation incomplete: %d of %d severities finished", e.Received, e.Expected)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IncompleteError) Unwrap() error { return e.Err }

func (e *IncompleteError) Is(target error) bool { return target == ErrIncomplete }

// Aggregator fetches a service's journal once per severity, concurrently.
type Aggregator struct {
	adapter source.Adapter
	logger  *zap.Logger
}

// NewAggregator returns an aggregator that queries adapter.
func NewAggregator(adapter source.Adapter, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{adapter: adapter, logger: logger}
}

// Fetch queries every severity for service and returns the populated store.
//
// One goroutine per severity writes its slice into the shared store and then
// signals on a channel buffered for all of them. Fetch returns on the first
// failure without waiting for the rest; they still complete into the buffer
// and exit. If ctx ends before all signals arrive the result is an
// *IncompleteError.
func (a *Aggregator) Fetch(ctx context.Context, service string) (*Store, error) {
	runID := uuid.NewString()
	log := a.logger.With(zap.String("run", runID), zap.String("service", service))
	start := time.Now()

	store := NewStore()
	const expected = MaxSeverity - MinSeverity + 1
	done := make(chan error, expected)

	for severity := MinSeverity; severity <= MaxSeverity; severity++ {
		severity := severity
		go func() {
			done <- a.fetchSeverity(ctx, log, store, service, severity)
		}()
	}

	received := 0
	for received < expected {
		select {
		case err := <-done:
			received++
			if err != nil {
				log.Warn("journal fetch failed", zap.Error(err))
				return nil, err
			}
		case <-ctx.Done():
			return nil, &IncompleteError{Received: received, Expected: expected, Err: ctx.Err()}
		}
	}

	log.Debug("journal fetched",
		zap.Int("entries", store.Total()),
		zap.Duration("took", time.Since(start)),
	)
	return store, nil
}

func (a *Aggregator) fetchSeverity(ctx context.Context, log *zap.Logger, store *Store, service string, severity int) error {
	q := source.Query{Category: source.CategoryLogs, Service: service, Severity: severity}
	res, err := a.adapter.Run(ctx, q)
	if err != nil {
		return &FetchError{Severity: severity, Err: err}
	}
	if err := res.Err(q); err != nil {
		return &FetchError{Severity: severity, Err: err}
	}

	entries, rejected := ParseListing(res.Lines(), severity)
	if rejected > 0 {
		log.Debug("skipped unparsable journal lines",
			zap.Int("severity", severity),
			zap.Int("count", rejected),
		)
	}
	store.Put(severity, entries)
	return nil
}
