package consoletypes

import "strings"

// Severity categorizes a console log record.
type Severity int

const (
	// SeverityMessage is ordinary console output.
	SeverityMessage Severity = iota
	// SeverityLight is low-emphasis output such as confirmations.
	SeverityLight
	// SeverityWarning marks something the user should look at.
	SeverityWarning
	// SeverityError marks a failed console operation.
	SeverityError
)

var severityNames = [...]string{"Message", "Light", "Warning", "Error"}

// String returns the canonical severity name.
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "Severity(?)"
	}
	return severityNames[s]
}

// ParseSeverity resolves a severity by name (case-insensitive).
func ParseSeverity(name string) (Severity, bool) {
	for i, n := range severityNames {
		if strings.EqualFold(n, name) {
			return Severity(i), true
		}
	}
	return SeverityMessage, false
}

// LogRecord is one immutable console message.
type LogRecord struct {
	Message  string
	Severity Severity
}
