package repl

import (
	"sort"
	"strings"
)

// builtins are handled by the shell itself.
var builtins = []string{"open", "back", "where", "trail", "history", "complete", "exit", "quit"}

// Completer suggests commands for a typed prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over the shell built-ins plus commands.
func NewCompleter(commands []string) *Completer {
	all := append(append([]string{}, builtins...), commands...)
	sort.Strings(all)
	return &Completer{commands: all}
}

// Complete returns the commands starting with prefix, sorted.
func (c *Completer) Complete(prefix string) []string {
	var out []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			out = append(out, cmd)
		}
	}
	return out
}
