package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"

	"github.com/yndnr/shopfront-go/internal/client/navigation"
)

// Executor runs one shell line, already split into arguments.
type Executor func(ctx context.Context, args []string) error

// REPL is the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	exec      Executor
	location  *navigation.History
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithHistory sets the command history.
func WithHistory(h *History) Option {
	return func(r *REPL) { r.history = h }
}

// WithCompleter sets the completion source.
func WithCompleter(c *Completer) Option {
	return func(r *REPL) { r.completer = c }
}

// New creates a REPL executing lines with exec and tracking location.
func New(exec Executor, location *navigation.History, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		exec:      exec,
		location:  location,
		completer: NewCompleter(nil),
		history:   NewHistory(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prompt returns the prompt for the current location.
func (r *REPL) Prompt() string {
	return "shop:" + r.location.Path() + "> "
}

// Run reads lines until EOF, exit, or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	reader := bufio.NewReader(r.input)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(r.output, r.Prompt())

		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}
		if err := r.execute(ctx, line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

func (r *REPL) execute(ctx context.Context, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse line: %w", err)
	}
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "open":
		if len(args) != 2 {
			return errors.New("usage: open <path>")
		}
		r.location.Assign(args[1])
		return nil
	case "back":
		if !r.location.Back() {
			return errors.New("no previous location")
		}
		return nil
	case "where":
		fmt.Fprintln(r.output, r.location.Path())
		return nil
	case "trail":
		for _, p := range r.location.Entries() {
			fmt.Fprintln(r.output, p)
		}
		return nil
	case "history":
		for i, entry := range r.history.Entries() {
			fmt.Fprintf(r.output, "%4d  %s\n", i+1, entry)
		}
		return nil
	case "complete":
		prefix := strings.Join(args[1:], " ")
		for _, s := range r.completer.Complete(prefix) {
			fmt.Fprintln(r.output, s)
		}
		return nil
	}

	before := r.location.Path()
	err = r.exec(ctx, args)
	if after := r.location.Path(); after != before {
		fmt.Fprintf(r.output, "-> %s\n", after)
	}
	return err
}
