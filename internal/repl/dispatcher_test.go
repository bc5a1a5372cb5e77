package repl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/maprepl/internal/metrics"
)

func newTestDispatcher(t *testing.T, opts ...DispatcherOption) (*Dispatcher, *Registry) {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.RegisterFunc("echo", echo))
	return NewDispatcher(reg, NewMemoryStore(), opts...), reg
}

func TestDispatchIgnoresBlankLines(t *testing.T) {
	d, _ := newTestDispatcher(t)

	for _, line := range []string{"", "   ", "\t \n"} {
		assert.Nil(t, d.Dispatch(context.Background(), line))
		_, ok, err := d.Run(context.Background(), line)
		assert.False(t, ok)
		assert.NoError(t, err)
	}
	assert.Equal(t, 0, d.Store().Len())
}

func TestDispatchRecordsEntry(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	d, _ := newTestDispatcher(t, WithClock(func() time.Time { return fixed }))

	entry, ok, err := d.Run(context.Background(), "  echo   a  b ")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "echo   a  b", entry.Command)
	assert.Equal(t, "a b", entry.Result.Message)
	assert.Equal(t, fixed.UnixMilli(), entry.Timestamp)
	assert.NotEqual(t, uuid.Nil, entry.ID)

	got, found := d.Store().Result(entry.ID)
	require.True(t, found)
	assert.Equal(t, entry.Result, got)
	assert.Equal(t, []Entry{entry}, d.Store().Entries())
}

func TestDispatchUnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)

	for _, line := range []string{"nope", "nope with args"} {
		entry, _, err := d.Run(context.Background(), line)
		require.NoError(t, err)
		assert.Equal(t,
			`Command not found: nope. Input "register <commandName> <function>" to register a new command`,
			entry.Result.Message)
	}
	assert.Equal(t, 2, d.Store().Len())
}

func TestDispatchRecoversPanics(t *testing.T) {
	d, reg := newTestDispatcher(t)
	require.NoError(t, reg.RegisterFunc("boom", func(context.Context, []string) Result { panic("kaput") }))

	entry, _, err := d.Run(context.Background(), "boom")
	require.NoError(t, err)
	assert.Equal(t, "Command boom failed: kaput", entry.Result.Message)
}

func TestDispatchRecordsInResolutionOrder(t *testing.T) {
	d, reg := newTestDispatcher(t)
	release := make(chan struct{})
	require.NoError(t, reg.RegisterFunc("slow", func(context.Context, []string) Result {
		<-release
		return Text("slow done")
	}))

	slow := d.Dispatch(context.Background(), "slow")
	_, _, err := d.Run(context.Background(), "echo fast")
	require.NoError(t, err)
	close(release)
	_, err = slow.Wait()
	require.NoError(t, err)

	entries := d.Store().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "echo fast", entries[0].Command)
	assert.Equal(t, "slow", entries[1].Command)
}

func TestDispatchConcurrentEntriesAreUnique(t *testing.T) {
	var mu sync.Mutex
	var seen []Entry
	d, _ := newTestDispatcher(t, WithOnRecord(func(e Entry) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e)
	}))

	futures := make([]*Future, 0, 20)
	for i := 0; i < 20; i++ {
		futures = append(futures, d.Dispatch(context.Background(), "echo x"))
	}
	ids := map[string]bool{}
	for _, f := range futures {
		<-f.Done()
		e, err := f.Wait()
		require.NoError(t, err)
		ids[e.ID.String()] = true
	}

	assert.Len(t, ids, 20)
	assert.Equal(t, 20, d.Store().Len())
	mu.Lock()
	assert.Len(t, seen, 20)
	mu.Unlock()
}

type failingStore struct{ *MemoryStore }

func (failingStore) Append(Entry) error { return ErrDuplicateEntry }

func TestDispatchReportsStoreFailure(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterFunc("echo", echo))
	d := NewDispatcher(reg, failingStore{NewMemoryStore()})

	_, ok, err := d.Run(context.Background(), "echo hi")
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestMemoryStoreRejectsDuplicateIDs(t *testing.T) {
	s := NewMemoryStore()
	d, _ := newTestDispatcher(t)
	e, _, err := d.Run(context.Background(), "echo a")
	require.NoError(t, err)

	require.NoError(t, s.Append(e))
	assert.ErrorIs(t, s.Append(e), ErrDuplicateEntry)
	assert.Equal(t, 1, s.Len())
	assert.NoError(t, s.Close())
}

func TestDispatchMetricsLabelUserCommandsByKind(t *testing.T) {
	m := metrics.New()
	d, reg := newTestDispatcher(t, WithMetrics(m))
	require.NoError(t, reg.RegisterAlias("shout_a1", "echo"))
	require.NoError(t, reg.RegisterExpression("shout_e1", `join(args, "-")`))

	for _, line := range []string{"echo hi", "shout_a1 hi", "shout_e1 a b", "missing"} {
		_, _, err := d.Run(context.Background(), line)
		require.NoError(t, err)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	assert.Contains(t, body, `maprepl_commands_total{command="echo",outcome="handled"} 1`)
	assert.Contains(t, body, `maprepl_commands_total{command="alias",outcome="handled"} 1`)
	assert.Contains(t, body, `maprepl_commands_total{command="expr",outcome="handled"} 1`)
	assert.Contains(t, body, `maprepl_commands_total{command="unknown",outcome="unknown"} 1`)
	assert.NotContains(t, body, "shout_a1")
	assert.NotContains(t, body, "shout_e1")
}
