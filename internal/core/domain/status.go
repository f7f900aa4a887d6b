package domain

// WorkloadState is the state a unit reports through status-set.
type WorkloadState string

// Workload states accepted by status-set.
const (
	StateMaintenance WorkloadState = "maintenance"
	StateBlocked     WorkloadState = "blocked"
	StateWaiting     WorkloadState = "waiting"
	StateActive      WorkloadState = "active"

	// StateUnknown is reported by StatusGet when the agent has no status-get.
	StateUnknown WorkloadState = "unknown"
)

// IsValid returns true if the state may be passed to status-set.
func (s WorkloadState) IsValid() bool {
	switch s {
	case StateMaintenance, StateBlocked, StateWaiting, StateActive:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s WorkloadState) String() string {
	return string(s)
}

// ValidWorkloadStates returns the states accepted by status-set.
func ValidWorkloadStates() []WorkloadState {
	return []WorkloadState{StateMaintenance, StateBlocked, StateWaiting, StateActive}
}
