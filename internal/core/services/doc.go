// Package services implements the driving port interfaces.
// Services contain the hook environment logic and orchestrate
// calls to driven ports (hook tools, snapshot stores, metadata).
//
// One HookEnv serves one hook invocation; its call cache is reset by the
// Hooks dispatcher before each handler runs.
package services
