package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
	"github.com/vncsmyrnk/ballotwizard/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vncsmyrnk/ballotwizard/internal/core/services"

// AutoSaveOptions configures the autosaver.
type AutoSaveOptions struct {
	Key       string
	Delay     time.Duration
	MaxAge    time.Duration
	RecentAge time.Duration
}

// DefaultAutoSaveOptions returns a 2s debounce over the "election_autosave"
// slot; snapshots older than 24h are stale and younger than 1h are recent.
func DefaultAutoSaveOptions() AutoSaveOptions {
	return AutoSaveOptions{
		Key:       "election_autosave",
		Delay:     2 * time.Second,
		MaxAge:    24 * time.Hour,
		RecentAge: time.Hour,
	}
}

// AutoSaver writes debounced draft snapshots to a single scratch slot.
// Each Schedule call restarts the timer, so a burst of edits produces one
// write of the last draft. Write failures are logged and dropped.
type AutoSaver struct {
	store  ports.ScratchStore
	clock  ports.Clock
	logger *slog.Logger
	tracer trace.Tracer
	opts   AutoSaveOptions

	mu      sync.Mutex
	timer   ports.Timer
	pending *domain.Draft
	gen     uint64
}

func NewAutoSaver(store ports.ScratchStore, clock ports.Clock, logger *slog.Logger, opts AutoSaveOptions) *AutoSaver {
	if logger == nil {
		logger = slog.Default()
	}
	return &AutoSaver{
		store:  store,
		clock:  clock,
		logger: logger.With("component", "autosave", "key", opts.Key),
		tracer: otel.Tracer(tracerName),
		opts:   opts,
	}
}

// Schedule replaces any pending snapshot with d and restarts the delay.
func (a *AutoSaver) Schedule(d domain.Draft) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()
	a.gen++
	gen := a.gen
	a.pending = &d
	a.timer = a.clock.AfterFunc(a.opts.Delay, func() { a.fire(gen) })
}

// CancelPending drops the scheduled snapshot, if any.
func (a *AutoSaver) CancelPending() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

// Pending reports whether a snapshot is waiting for its timer.
func (a *AutoSaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

// Flush writes the pending snapshot now instead of waiting for the timer.
func (a *AutoSaver) Flush(ctx context.Context) {
	a.mu.Lock()
	d := a.pending
	a.stopLocked()
	a.mu.Unlock()

	if d != nil {
		a.write(ctx, *d)
	}
}

// stopLocked cancels the timer and invalidates any callback already
// racing for the lock.
func (a *AutoSaver) stopLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
	a.gen++
}

func (a *AutoSaver) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || a.pending == nil {
		a.mu.Unlock()
		return
	}
	d := *a.pending
	a.pending = nil
	a.timer = nil
	a.mu.Unlock()

	a.write(context.Background(), d)
}

func (a *AutoSaver) write(ctx context.Context, d domain.Draft) {
	if strings.TrimSpace(d.Title) == "" {
		a.logger.Debug("skipping snapshot of untitled draft")
		return
	}

	ctx, span := a.tracer.Start(ctx, "autosave.write", trace.WithAttributes(attribute.String("autosave.key", a.opts.Key)))
	defer span.End()

	payload, err := json.Marshal(domain.Snapshot{
		Data:      d,
		Timestamp: a.clock.Now().UTC().Format(domain.SnapshotTimeLayout),
		Version:   domain.SnapshotVersion,
	})
	if err != nil {
		a.fail(span, "failed to encode snapshot", err)
		return
	}
	span.SetAttributes(attribute.Int("autosave.bytes", len(payload)))

	if err := a.store.Put(ctx, a.opts.Key, payload); err != nil {
		a.fail(span, "failed to write snapshot", err)
		return
	}
	a.logger.Debug("snapshot written", "bytes", len(payload))
}

// Load reads the stored snapshot. It reports false when the slot is empty,
// unreadable, of another schema version, or older than MaxAge.
func (a *AutoSaver) Load(ctx context.Context) (domain.Recovery, bool) {
	ctx, span := a.tracer.Start(ctx, "autosave.load", trace.WithAttributes(attribute.String("autosave.key", a.opts.Key)))
	defer span.End()

	raw, err := a.store.Get(ctx, a.opts.Key)
	if errors.Is(err, domain.ErrSlotEmpty) {
		return domain.Recovery{}, false
	}
	if err != nil {
		a.fail(span, "failed to read snapshot", err)
		return domain.Recovery{}, false
	}

	rec, err := a.decode(raw)
	if err != nil {
		a.fail(span, "discarding unusable snapshot", err)
		return domain.Recovery{}, false
	}

	age := a.clock.Now().Sub(rec.Timestamp)
	if age > a.opts.MaxAge {
		a.logger.Info("snapshot is stale", "age", age.String())
		return domain.Recovery{}, false
	}
	rec.IsRecent = age < a.opts.RecentAge
	span.SetAttributes(attribute.Bool("autosave.recent", rec.IsRecent))
	return rec, true
}

func (a *AutoSaver) decode(raw []byte) (domain.Recovery, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.Recovery{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != domain.SnapshotVersion {
		return domain.Recovery{}, fmt.Errorf("unsupported snapshot version %q", snap.Version)
	}
	ts, err := time.Parse(time.RFC3339Nano, snap.Timestamp)
	if err != nil {
		return domain.Recovery{}, fmt.Errorf("parse snapshot timestamp: %w", err)
	}
	return domain.Recovery{Data: snap.Data, Timestamp: ts}, nil
}

// Clear deletes the stored snapshot.
func (a *AutoSaver) Clear(ctx context.Context) {
	ctx, span := a.tracer.Start(ctx, "autosave.clear", trace.WithAttributes(attribute.String("autosave.key", a.opts.Key)))
	defer span.End()

	if err := a.store.Delete(ctx, a.opts.Key); err != nil {
		a.fail(span, "failed to clear snapshot", err)
	}
}

func (a *AutoSaver) fail(span trace.Span, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	a.logger.Error(msg, "error", err)
}
