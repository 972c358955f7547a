package runner

import (
	"context"
	"sync"
)

// Recorder collects commands instead of running them. It backs dry runs.
type Recorder struct {
	mu       sync.Mutex
	commands [][]string
}

// Run records a copy of argv
func (r *Recorder) Run(_ context.Context, argv []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := make([]string, len(argv))
	copy(cp, argv)
	r.commands = append(r.commands, cp)
	return nil
}

// Commands returns the recorded commands in the order they were run
func (r *Recorder) Commands() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]string, len(r.commands))
	copy(out, r.commands)
	return out
}
