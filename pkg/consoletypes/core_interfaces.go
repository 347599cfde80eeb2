package consoletypes

// Manager is the dispatch surface a host or presentation layer may call.
// *console.Console satisfies it.
type Manager interface {
	SetValue(name string, value any, silent bool) ValueResult
	GetValue(name string, silent bool) (ValueResult, any)
	GetStringValue(name string, silent bool) (ValueResult, string)
	RunCommand(name string, args []any, silent bool) RunCommandResult
	RunLine(line string) RunCommandResult
	Log(message string, severity Severity)
	NumLogs() int
	GetLog(index int) (LogRecord, bool)
}

// Binder associates key identifiers with command lines. Bind reports false when the
// key identifier is not recognized. Persistence belongs to the implementation.
type Binder interface {
	Bind(key string, commandLine string) bool
}

// LineRunner runs one raw console line.
type LineRunner interface {
	RunLine(line string) RunCommandResult
}

// HostLevel is the severity tag of a host diagnostic line.
type HostLevel int

const (
	// HostDebug is verbose diagnostic output.
	HostDebug HostLevel = iota
	// HostInfo is informational diagnostic output.
	HostInfo
	// HostWarning reports a soft contract violation.
	HostWarning
	// HostError reports a failed contract or a fault caught at the console boundary.
	HostError
)

// HostLogger receives internal diagnostics that must never reach the user-facing log.
type HostLogger interface {
	WriteLine(message string, level HostLevel)
}

// HostLoggerFunc adapts a function to HostLogger.
type HostLoggerFunc func(message string, level HostLevel)

// WriteLine calls f(message, level).
func (f HostLoggerFunc) WriteLine(message string, level HostLevel) {
	f(message, level)
}

// DiscardHost drops every diagnostic line.
var DiscardHost HostLogger = HostLoggerFunc(func(string, HostLevel) {})
