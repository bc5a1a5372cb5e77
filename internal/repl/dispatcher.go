package repl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/maprepl/internal/logging"
	"github.com/cristianoliveira/maprepl/internal/metrics"
	"github.com/google/uuid"
)

const (
	outcomeHandled = "handled"
	outcomeUnknown = "unknown"
	outcomePanic   = "panic"
)

// Future is a pending dispatch. It resolves once the entry is recorded.
type Future struct {
	done  chan struct{}
	entry Entry
	err   error
}

// Done is closed when the entry has been recorded (or recording failed).
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the dispatch resolves.
func (f *Future) Wait() (Entry, error) {
	<-f.done
	return f.entry, f.err
}

// Dispatcher runs command lines against a Registry and records each one in
// a Store. Overlapping dispatches are not serialized: entries are appended in
// the order their handlers finish.
type Dispatcher struct {
	registry *Registry
	store    Store
	log      logging.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
	onRecord func(Entry)
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(l logging.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.log = l }
}

// WithMetrics records command counts and durations into m.
func WithMetrics(m *metrics.Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) { d.now = now }
}

// WithOnRecord registers a callback invoked after each entry is stored.
func WithOnRecord(fn func(Entry)) DispatcherOption {
	return func(d *Dispatcher) { d.onRecord = fn }
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(registry *Registry, store Store, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		store:    store,
		log:      logging.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With("component", "dispatcher")
	return d
}

// Store returns the history the dispatcher records into.
func (d *Dispatcher) Store() Store {
	return d.store
}

// Registry returns the command registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch parses line and runs its handler on a new goroutine. Empty or
// whitespace-only lines return nil and record nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) *Future {
	name, args, ok := Parse(line)
	if !ok {
		return nil
	}
	command := strings.TrimSpace(line)
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		start := time.Now()
		result, label, outcome := d.run(ctx, name, args)
		f.entry, f.err = d.record(command, result)
		d.metrics.ObserveCommand(label, outcome, time.Since(start))
	}()
	return f
}

// Run dispatches line and waits for it. ok is false for empty lines.
func (d *Dispatcher) Run(ctx context.Context, line string) (entry Entry, ok bool, err error) {
	f := d.Dispatch(ctx, line)
	if f == nil {
		return Entry{}, false, nil
	}
	entry, err = f.Wait()
	return entry, true, err
}

// run executes name. label is the metrics label: the name for built-ins,
// the binding kind for user-registered commands.
func (d *Dispatcher) run(ctx context.Context, name string, args []string) (result Result, label, outcome string) {
	b, found := d.registry.Binding(name)
	if !found {
		d.log.Debug("command not found", "command", name)
		return Text(notFoundMessage(name)), outcomeUnknown, outcomeUnknown
	}
	label = name
	if b.Kind != KindBuiltin {
		label = b.Kind.String()
	}
	defer func() {
		if p := recover(); p != nil {
			d.log.Error("handler panicked", "command", name, "panic", fmt.Sprint(p))
			result = Text(fmt.Sprintf("Command %s failed: %v", name, p))
			outcome = outcomePanic
		}
	}()
	return b.Handler.Execute(ctx, args), label, outcomeHandled
}

func (d *Dispatcher) record(command string, result Result) (Entry, error) {
	entry := Entry{
		ID:        uuid.New(),
		Command:   command,
		Timestamp: d.now().UnixMilli(),
		Result:    result,
	}
	if err := d.store.Append(entry); err != nil {
		d.log.Error("history append failed", "command", command, "error", err.Error())
		return entry, fmt.Errorf("repl: record %q: %w", command, err)
	}
	d.metrics.SetHistoryEntries(d.store.Len())
	d.log.Debug("recorded", "command", command, "id", entry.ID.String(), "table", result.IsTable())
	if d.onRecord != nil {
		d.onRecord(entry)
	}
	return entry, nil
}
