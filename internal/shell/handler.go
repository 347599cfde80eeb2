// Package shell runs the interactive console prompt on top of ishell and
// routes every input line to the console.
package shell

import (
	"fmt"
	"strings"

	"devconsole/internal/parser"
	"devconsole/pkg/consoletypes"
)

// commentPrefix marks input lines that are ignored.
const commentPrefix = "//"

// Target is the console surface the shell drives. *console.Console satisfies it.
type Target interface {
	consoletypes.Manager
	HasCommand(name string) bool
	HasValue(name string) bool
}

// ProcessLine runs one line of user input and reports whether anything ran.
// Blank lines and comments are skipped. A line whose first token names a
// convar, and no command, reads the convar when it has no arguments and
// writes it when it has one. Everything else goes to RunLine.
func ProcessLine(target Target, rawInput string) bool {
	rawInput = strings.TrimSpace(rawInput)
	if rawInput == "" || strings.HasPrefix(rawInput, commentPrefix) {
		return false
	}

	line, err := parser.ParseLine(rawInput)
	if err != nil {
		return false
	}
	if target.HasCommand(line.Name) || !target.HasValue(line.Name) {
		target.RunLine(rawInput)
		return true
	}

	switch len(line.Args) {
	case 0:
		if result, s := target.GetStringValue(line.Name, false); result == consoletypes.ValueSuccess {
			target.Log(fmt.Sprintf(`%s = "%s"`, line.Name, s), consoletypes.SeverityLight)
		}
	case 1:
		target.SetValue(line.Name, line.Args[0], false)
	default:
		target.Log(fmt.Sprintf(`Variable "%s" takes one value. %d were given.`, line.Name, len(line.Args)),
			consoletypes.SeverityError)
	}
	return true
}
