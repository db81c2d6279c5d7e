// Package console is the terminal front-end of the cache: it prints state
// renders and the operation log, and turns typed commands into service calls.
package console

import (
	"fmt"
	"io"
	"sync"

	"eviction-cache/internal/store"
	"eviction-cache/internal/store/policy"
)

// Printer prints cache notifications to a writer. It implements
// store.Observer for string keys and values.
type Printer struct {
	mu      sync.Mutex
	out     io.Writer
	history []string
}

var _ store.Observer[string, string] = (*Printer)(nil)

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// OnRender prints the full cache state. LFU entries show their counts.
func (p *Printer) OnRender(ev store.RenderEvent[string, string]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.render(ev)
}

// OnLog appends the operation to the log and prints it.
func (p *Printer) OnLog(ev store.LogEvent[string, string]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := ev.String()
	p.history = append(p.history, line)
	fmt.Fprintf(p.out, "log #%d: %s\n", len(p.history), line)
}

// Render prints a state on demand, e.g. for a snapshot.
func (p *Printer) Render(ev store.RenderEvent[string, string]) {
	p.OnRender(ev)
}

// History returns the operation log lines printed so far.
func (p *Printer) History() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.history...)
}

func (p *Printer) render(ev store.RenderEvent[string, string]) {
	fmt.Fprintf(p.out, "[%s] %d entries\n", ev.Policy, len(ev.Entries))
	for _, e := range ev.Entries {
		if ev.Policy == policy.LFU {
			fmt.Fprintf(p.out, "  %s: %s (Freq: %d)\n", e.Key, e.Value, e.Frequency)
			continue
		}
		fmt.Fprintf(p.out, "  %s: %s\n", e.Key, e.Value)
	}
}
