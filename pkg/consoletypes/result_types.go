// Package consoletypes defines the public contract of the developer console.
// This file contains the result codes returned by every dispatch operation.
package consoletypes

// ValueResult is returned by the convar get/set operations.
type ValueResult int

const (
	// ValueSuccess means the value was read or written.
	ValueSuccess ValueResult = iota
	// UnknownValue means no convar is registered under the requested name.
	UnknownValue
	// InvalidValue means the convar exists but conversion or access failed.
	InvalidValue
)

// String returns the name of the result code.
func (r ValueResult) String() string {
	switch r {
	case ValueSuccess:
		return "Success"
	case UnknownValue:
		return "UnknownValue"
	case InvalidValue:
		return "InvalidValue"
	default:
		return "ValueResult(?)"
	}
}

// RunCommandResult is returned by the command dispatch operations.
type RunCommandResult int

const (
	// CommandSuccess means the command ran to completion.
	CommandSuccess RunCommandResult = iota
	// UnknownCommand means neither a priority nor a registered command matched the name.
	UnknownCommand
	// InvalidArgCount means the number of arguments is outside the accepted range.
	InvalidArgCount
	// InvalidArgs means argument conversion or the invocation itself failed.
	InvalidArgs
)

// String returns the name of the result code.
func (r RunCommandResult) String() string {
	switch r {
	case CommandSuccess:
		return "Success"
	case UnknownCommand:
		return "UnknownCommand"
	case InvalidArgCount:
		return "InvalidArgCount"
	case InvalidArgs:
		return "InvalidArgs"
	default:
		return "RunCommandResult(?)"
	}
}
