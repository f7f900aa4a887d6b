package driven

// Environment exposes the process environment the orchestrator sets up
// for a hook (JUJU_UNIT_NAME, JUJU_RELATION_ID, CHARM_DIR, ...).
type Environment interface {
	// Lookup returns the value of key and whether it is set.
	Lookup(key string) (string, bool)

	// Environ returns a copy of the whole environment.
	Environ() map[string]string
}
