package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"eviction-cache/internal/core/service"
	"eviction-cache/internal/store"
	"eviction-cache/internal/store/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, maxSize int, kind policy.Kind) (*Interpreter, *Printer, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	printer := NewPrinter(&out)
	s, err := store.New[string, string](store.Config{MaxSize: maxSize, Policy: kind}, printer)
	require.NoError(t, err)
	return NewInterpreter(service.New(s), printer, &out, nil), printer, &out
}

func TestPrinter_RenderLRU(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)
	p.OnRender(store.RenderEvent[string, string]{
		Policy: policy.LRU,
		Entries: []store.Entry[string, string]{
			{Key: "a", Value: "1", Frequency: 1},
			{Key: "b", Value: "2", Frequency: 1},
		},
	})

	assert.Equal(t, "[LRU] 2 entries\n  a: 1\n  b: 2\n", out.String())
}

func TestPrinter_RenderLFU(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)
	p.OnRender(store.RenderEvent[string, string]{
		Policy:  policy.LFU,
		Entries: []store.Entry[string, string]{{Key: "a", Value: "1", Frequency: 3}},
	})

	assert.Equal(t, "[LFU] 1 entries\n  a: 1 (Freq: 3)\n", out.String())
}

func TestPrinter_History(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)
	p.OnLog(store.LogEvent[string, string]{Op: store.OpPut, Key: "a", Value: "1"})
	p.OnLog(store.LogEvent[string, string]{Op: store.OpEvict, Key: "a"})

	assert.Equal(t, []string{"PUT a: 1", "EVICT a"}, p.History())
	assert.Equal(t, "log #1: PUT a: 1\nlog #2: EVICT a\n", out.String())
}

func TestInterpreter_Session(t *testing.T) {
	interp, printer, out := newSession(t, 2, policy.LRU)

	script := strings.Join([]string{
		"put a 1",
		"put b hello world",
		"get a",
		"put c 3",
		"get b",
		"",
		"delete c",
		"delete c",
		"policy lfu",
		"show",
		"quit",
		"put never 1",
	}, "\n")

	require.NoError(t, interp.Run(context.Background(), strings.NewReader(script)))

	assert.Equal(t, []string{
		"PUT a: 1",
		"PUT b: hello world",
		"GET a: Found",
		"EVICT b",
		"PUT c: 3",
		"GET b: Not Found",
		"DELETE c",
	}, printer.History())

	text := out.String()
	assert.Contains(t, text, "a = 1\n")
	assert.Contains(t, text, "b: not found\n")
	assert.Contains(t, text, "[LFU] 1 entries\n  a: 1 (Freq: 1)\n")
	assert.NotContains(t, text, "never")
}

func TestInterpreter_UsageErrors(t *testing.T) {
	interp, printer, out := newSession(t, 2, policy.LRU)
	ctx := context.Background()

	for _, line := range []string{"get", "put a", "delete", "policy", "frobnicate x"} {
		quit, err := interp.Execute(ctx, line)
		assert.False(t, quit, line)
		assert.ErrorIs(t, err, errUsage, line)
	}

	_, err := interp.Execute(ctx, "policy MRU")
	assert.ErrorIs(t, err, policy.ErrUnknownPolicy)

	require.NoError(t, interp.Run(ctx, strings.NewReader("get\nhelp\n")))
	assert.Contains(t, out.String(), "error: usage: get <key>\n")
	assert.Contains(t, out.String(), "policy <LRU|LFU>")
	assert.Empty(t, printer.History())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestInterpreter_ReadError(t *testing.T) {
	interp, _, _ := newSession(t, 1, policy.LRU)
	err := interp.Run(context.Background(), failingReader{})
	assert.ErrorContains(t, err, "tty gone")
}

func TestInterpreter_CancelledContext(t *testing.T) {
	interp, _, _ := newSession(t, 1, policy.LRU)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never returns must not block Run once ctx is done.
	r, w := io.Pipe()
	defer w.Close()
	assert.NoError(t, interp.Run(ctx, r))
}

func TestInterpreter_QuitStopsReader(t *testing.T) {
	interp, _, _ := newSession(t, 2, policy.LRU)
	before := runtime.NumGoroutine()

	for i := 0; i < 20; i++ {
		require.NoError(t, interp.Run(context.Background(), strings.NewReader("quit\nput a 1\nput b 2\n")))
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, time.Second, 10*time.Millisecond, "reader goroutines must exit after quit")
}

func TestInterpreter_PutKeepsValueWhitespace(t *testing.T) {
	interp, printer, out := newSession(t, 2, policy.LRU)
	ctx := context.Background()

	_, err := interp.Execute(ctx, "  put k a  b\tc  ")
	require.NoError(t, err)
	_, err = interp.Execute(ctx, "get k")
	require.NoError(t, err)

	assert.Equal(t, "PUT k: a  b\tc", printer.History()[0])
	assert.Contains(t, out.String(), "k = a  b\tc\n")
}

func TestRestAfter(t *testing.T) {
	assert.Equal(t, "x  y", restAfter("put k x  y", 2))
	assert.Equal(t, "k x", restAfter("  put   k x ", 1))
	assert.Equal(t, "", restAfter("put k", 2))
	assert.Equal(t, "", restAfter("", 1))
}
