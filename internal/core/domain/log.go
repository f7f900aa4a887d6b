package domain

// LogLevel is a juju-log severity.
type LogLevel string

// Levels understood by juju-log. LevelDefault omits the -l flag.
const (
	LevelDefault  LogLevel = ""
	LevelCritical LogLevel = "CRITICAL"
	LevelError    LogLevel = "ERROR"
	LevelWarning  LogLevel = "WARNING"
	LevelInfo     LogLevel = "INFO"
	LevelDebug    LogLevel = "DEBUG"
)

// String returns the string representation.
func (l LogLevel) String() string {
	return string(l)
}
