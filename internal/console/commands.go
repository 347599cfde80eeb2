package console

import (
	"fmt"
	"sort"

	"devconsole/internal/logger"
	"devconsole/internal/parser"
	"devconsole/pkg/consoletypes"
)

// RunCommand runs the command called name with positional args. Priority
// commands (help, find, clear, bind) are resolved before user commands.
func (c *Console) RunCommand(name string, args []any, silent bool) consoletypes.RunCommandResult {
	if p, ok := priorityCommands[name]; ok {
		return p(c, args, silent)
	}

	cmd, ok := c.reg.Command(name)
	if !ok {
		c.logUnless(silent, fmt.Sprintf(`Invalid command "%s"`, name), consoletypes.SeverityError)
		return consoletypes.UnknownCommand
	}

	if !cmd.AcceptsArgCount(len(args)) {
		c.logUnless(silent, fmt.Sprintf(`Command "%s" requires %d <= # args <= %d. %d arguments were given.`,
			name, cmd.RequiredArgs(), cmd.MaxArgs(), len(args)), consoletypes.SeverityError)
		return consoletypes.InvalidArgCount
	}

	bound, err := cmd.BindArgs(args, c.conv)
	if err == nil {
		err = cmd.Invoke(bound)
	}
	if err != nil {
		c.reportFault(fmt.Sprintf(`run "%s"`, name), err)
		c.logUnless(silent, fmt.Sprintf(`An error occurred running the command "%s"`, name), consoletypes.SeverityError)
		return consoletypes.InvalidArgs
	}
	return consoletypes.CommandSuccess
}

// RunLine tokenizes line and runs it non-silently. A blank line is reported
// as UnknownCommand without logging.
func (c *Console) RunLine(line string) consoletypes.RunCommandResult {
	parsed, err := parser.ParseLine(line)
	if err != nil {
		return consoletypes.UnknownCommand
	}
	logger.CommandDispatch(line)
	return c.RunCommand(parsed.Name, parsed.AnyArgs(), false)
}

// HasCommand reports whether name resolves to a priority or registered command.
func (c *Console) HasCommand(name string) bool {
	if _, ok := priorityCommands[name]; ok {
		return true
	}
	_, ok := c.reg.Command(name)
	return ok
}

// HasValue reports whether name is a registered convar.
func (c *Console) HasValue(name string) bool {
	_, ok := c.reg.Value(name)
	return ok
}

// PriorityCommandNames lists the commands resolved before the registry, sorted.
func PriorityCommandNames() []string {
	names := make([]string, 0, len(priorityCommands))
	for name := range priorityCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
