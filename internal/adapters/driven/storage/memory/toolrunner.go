package memory

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/custodia-labs/hookenv/internal/core/ports/driven"
)

// Ensure ToolRunner implements the interface.
var _ driven.ToolRunner = (*ToolRunner)(nil)

// ToolCall records one hook tool invocation.
type ToolCall struct {
	Name string
	Args []string
}

type toolResponse struct {
	output []byte
	err    error
}

// ToolRunner is a scripted driven.ToolRunner for testing. Responses queued
// with On are returned in order per tool; the last one repeats. Tools with
// no responses return empty output.
type ToolRunner struct {
	mu        sync.Mutex
	calls     []ToolCall
	responses map[string][]toolResponse
}

// NewToolRunner creates a new scripted tool runner.
func NewToolRunner() *ToolRunner {
	return &ToolRunner{
		responses: make(map[string][]toolResponse),
	}
}

// On queues a response for the named tool.
func (r *ToolRunner) On(name, output string, err error) *ToolRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[name] = append(r.responses[name], toolResponse{output: []byte(output), err: err})
	return r
}

// OnJSON queues the JSON encoding of v as the named tool's output.
func (r *ToolRunner) OnJSON(name string, v any) *ToolRunner {
	encoded, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return r.On(name, string(encoded), nil)
}

// Output records the call and returns the next scripted response.
func (r *ToolRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, ToolCall{Name: name, Args: slices.Clone(args)})

	queue := r.responses[name]
	if len(queue) == 0 {
		return nil, nil
	}
	resp := queue[0]
	if len(queue) > 1 {
		r.responses[name] = queue[1:]
	}
	return resp.output, resp.err
}

// Run records the call and returns the next scripted error.
func (r *ToolRunner) Run(ctx context.Context, name string, args ...string) error {
	_, err := r.Output(ctx, name, args...)
	return err
}

// Calls returns every recorded call in order.
func (r *ToolRunner) Calls() []ToolCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// CallsTo returns the recorded calls to the named tool.
func (r *ToolRunner) CallsTo(name string) []ToolCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ToolCall
	for _, c := range r.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// LastCall returns the most recent call to the named tool.
func (r *ToolRunner) LastCall(name string) (ToolCall, bool) {
	calls := r.CallsTo(name)
	if len(calls) == 0 {
		return ToolCall{}, false
	}
	return calls[len(calls)-1], true
}
