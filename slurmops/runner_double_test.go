package slurmops

import (
	"context"
	"strings"
	"sync"
)

// recordedCall is one invocation captured by fakeRunner.
type recordedCall struct {
	name  string
	args  []string
	input string
}

func (c recordedCall) line() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// fakeRunner is a scriptable Runner double. Every invocation is recorded;
// the handle func decides the outcome. A nil handle succeeds with an empty
// Result.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []recordedCall
	handle func(c recordedCall) (Result, error)
}

var _ Runner = (*fakeRunner)(nil)

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return f.RunWithInput(ctx, "", name, args...)
}

func (f *fakeRunner) RunWithInput(_ context.Context, input, name string, args ...string) (Result, error) {
	c := recordedCall{name: name, args: args, input: input}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	handle := f.handle
	f.mu.Unlock()

	if handle == nil {
		return Result{}, nil
	}
	return handle(c)
}

// count returns how many recorded command lines start with prefix.
func (f *fakeRunner) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c.line(), prefix) {
			n++
		}
	}
	return n
}

// last returns the most recent recorded call.
func (f *fakeRunner) last() recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return recordedCall{}
	}
	return f.calls[len(f.calls)-1]
}
