package xexec

import (
	"context"
	"sync"
)

// Recorder is a Runner that records commands instead of running them.
type Recorder struct {
	// Fail maps an action to the exit code its command fails with.
	Fail map[string]int

	mu       sync.Mutex
	commands []Command
}

var _ Runner = new(Recorder)

func (r *Recorder) Run(ctx context.Context, c Command) error {
	r.mu.Lock()
	r.commands = append(r.commands, c)
	r.mu.Unlock()

	if code, ok := r.Fail[c.Action]; ok {
		return &ExitError{Cmd: c, Code: code}
	}
	return ctx.Err()
}

// Commands returns the recorded commands in the order they were run.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}

// Actions returns the action of every recorded command.
func (r *Recorder) Actions() []string {
	cmds := r.Commands()
	actions := make([]string, 0, len(cmds))
	for _, c := range cmds {
		actions = append(actions, c.Action)
	}
	return actions
}
