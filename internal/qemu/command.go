// Package qemu builds the argument lists for qemu-img and qemu-system
// invocations.
package qemu

import "github.com/kballard/go-shellquote"

// Command accumulates the tokens of one external invocation, starting with
// the program name and its mandatory leading arguments.
type Command struct {
	args []string
}

func newCommand(binary string, leading ...string) Command {
	c := Command{args: []string{binary}}
	c.args = append(c.args, leading...)
	return c
}

// AddOption appends flag, followed by value when one is given. Empty values
// are treated as absent.
func (c *Command) AddOption(flag string, value ...string) {
	if len(value) == 0 || value[0] == "" {
		c.args = append(c.args, flag)
		return
	}
	c.args = append(c.args, flag, value[0])
}

// Build returns a copy of the accumulated tokens
func (c *Command) Build() []string {
	out := make([]string, len(c.args))
	copy(out, c.args)
	return out
}

// String renders the tokens as a shell-quoted command line, for display only.
func (c *Command) String() string {
	return shellquote.Join(c.args...)
}
