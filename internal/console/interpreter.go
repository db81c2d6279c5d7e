package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"eviction-cache/internal/core/ports"
	"eviction-cache/internal/core/service"
	"eviction-cache/internal/observability"
)

const usage = `commands:
  get <key>             read a key
  put <key> <value>     write a key
  delete <key>          remove a key (alias: del)
  policy <LRU|LFU>      switch eviction policy
  show                  print the cache state
  help                  print this message
  quit                  leave (alias: exit)
`

// errUsage marks malformed commands; the session continues after it.
var errUsage = errors.New("usage")

// Interpreter executes text commands against a cache service.
type Interpreter struct {
	svc     ports.CacheService
	printer *Printer
	out     io.Writer
	logger  *slog.Logger

	// Prompt is written before each command is read. Empty disables it.
	Prompt string
}

// NewInterpreter creates an interpreter that replies on out and prints
// snapshots through printer. A nil logger discards records.
func NewInterpreter(svc ports.CacheService, printer *Printer, out io.Writer, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Interpreter{
		svc:     svc,
		printer: printer,
		out:     out,
		logger:  logger.With(slog.String("component", "console")),
	}
}

// Run reads commands from in until EOF, quit, or ctx is done.
func (i *Interpreter) Run(ctx context.Context, in io.Reader) error {
	// Cancelled on return so the reader stops even when input remains.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		if i.Prompt != "" {
			fmt.Fprint(i.out, i.Prompt)
		}
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read commands: %w", err)
					}
				default:
				}
				return nil
			}
			quit, err := i.Execute(ctx, line)
			if err != nil {
				i.report(err)
			}
			if quit {
				return nil
			}
		}
	}
}

// Execute runs a single command line and reports whether the session should end.
func (i *Interpreter) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "get":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: get <key>", errUsage)
		}
		val, err := i.svc.Get(ctx, args[0])
		if errors.Is(err, service.ErrNotFound) {
			fmt.Fprintf(i.out, "%s: not found\n", args[0])
			return false, nil
		}
		if err != nil {
			return false, err
		}
		fmt.Fprintf(i.out, "%s = %s\n", args[0], val)
	case "put", "set":
		if len(args) < 2 {
			return false, fmt.Errorf("%w: put <key> <value>", errUsage)
		}
		return false, i.svc.Put(ctx, args[0], restAfter(line, 2))
	case "delete", "del":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: delete <key>", errUsage)
		}
		return false, i.svc.Delete(ctx, args[0])
	case "policy":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: policy <LRU|LFU>", errUsage)
		}
		return false, i.svc.SetPolicy(ctx, args[0])
	case "show":
		snap, err := i.svc.Snapshot(ctx)
		if err != nil {
			return false, err
		}
		i.printer.Render(snap)
	case "help":
		fmt.Fprint(i.out, usage)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("%w: unknown command %q, try help", errUsage, fields[0])
	}
	return false, nil
}

// restAfter returns line without its first n fields, keeping inner whitespace.
func restAfter(line string, n int) string {
	rest := strings.TrimSpace(line)
	for ; n > 0; n-- {
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			return ""
		}
		rest = strings.TrimLeftFunc(rest[end:], unicode.IsSpace)
	}
	return rest
}

func (i *Interpreter) report(err error) {
	fmt.Fprintf(i.out, "error: %v\n", err)
	if errors.Is(err, errUsage) {
		i.logger.Debug("rejected command", observability.Error(err))
		return
	}
	i.logger.Warn("command failed", observability.Error(err))
}
