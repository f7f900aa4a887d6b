package driven

import "context"

// ToolRunner invokes the orchestrator's hook tools (config-get,
// relation-set, ...).
//
// A tool that cannot be found yields an error wrapping
// domain.ErrToolNotFound. A tool that runs and exits non-zero yields a
// *domain.ToolError.
type ToolRunner interface {
	// Output runs the tool and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Run runs the tool, discarding its output.
	Run(ctx context.Context, name string, args ...string) error
}
