package console

import (
	"fmt"
	"strings"

	"devconsole/pkg/consoletypes"
)

type priorityFunc func(c *Console, args []any, silent bool) consoletypes.RunCommandResult

// priorityCommands shadow user commands of the same name.
var priorityCommands = map[string]priorityFunc{
	"help":  runHelp,
	"find":  runFind,
	"clear": runClear,
	"bind":  runBind,
}

func runHelp(c *Console, args []any, silent bool) consoletypes.RunCommandResult {
	if len(args) != 0 {
		c.logUnless(silent, `Command "help" does not take any arguments`, consoletypes.SeverityError)
		return consoletypes.InvalidArgCount
	}
	c.listEntries(func(string) bool { return true })
	return consoletypes.CommandSuccess
}

func runFind(c *Console, args []any, silent bool) consoletypes.RunCommandResult {
	if len(args) != 1 {
		c.logUnless(silent, `Command "find" takes only a single argument`, consoletypes.SeverityError)
		return consoletypes.InvalidArgCount
	}
	substr, ok := args[0].(string)
	if !ok {
		c.logUnless(silent, `Command "find" requires a string argument`, consoletypes.SeverityError)
		return consoletypes.InvalidArgs
	}

	if !c.listEntries(func(name string) bool { return strings.Contains(name, substr) }) {
		c.logUnless(silent, fmt.Sprintf(`No console entries match "%s"`, substr), consoletypes.SeverityLight)
	}
	return consoletypes.CommandSuccess
}

func runClear(c *Console, args []any, silent bool) consoletypes.RunCommandResult {
	if len(args) != 0 {
		c.logUnless(silent, `Command "clear" does not take any arguments`, consoletypes.SeverityError)
		return consoletypes.InvalidArgCount
	}
	if logs := c.buffer(); logs != nil {
		logs.TruncateToLast()
	}
	return consoletypes.CommandSuccess
}

func runBind(c *Console, args []any, silent bool) consoletypes.RunCommandResult {
	if len(args) != 2 {
		c.logUnless(silent, `Command "bind" takes only two arguments`, consoletypes.SeverityError)
		return consoletypes.InvalidArgCount
	}
	key, keyOK := args[0].(string)
	line, lineOK := args[1].(string)
	if !keyOK || !lineOK {
		c.logUnless(silent, `Command "bind" requires two string arguments`, consoletypes.SeverityError)
		return consoletypes.InvalidArgs
	}

	binder := c.currentBinder()
	if binder == nil {
		c.logUnless(silent, "Key binding is unavailable", consoletypes.SeverityError)
		return consoletypes.InvalidArgs
	}
	if !binder.Bind(key, line) {
		c.logUnless(silent, fmt.Sprintf(`Invalid key "%s"`, key), consoletypes.SeverityError)
		return consoletypes.InvalidArgs
	}
	c.logUnless(silent, fmt.Sprintf(`Bound %s to "%s"`, key, line), consoletypes.SeverityLight)
	return consoletypes.CommandSuccess
}

// listEntries logs every convar and command whose name passes keep, sorted
// by name, and reports whether anything was listed.
func (c *Console) listEntries(keep func(name string) bool) bool {
	var vars, cmds []string
	for _, name := range c.reg.ValueNames() {
		if keep(name) {
			vars = append(vars, name)
		}
	}
	for _, name := range c.reg.CommandNames() {
		if keep(name) {
			cmds = append(cmds, name)
		}
	}

	if len(vars) > 0 {
		c.Log("Console Variables:", consoletypes.SeverityMessage)
		for _, name := range vars {
			if v, ok := c.reg.Value(name); ok {
				c.Log(fmt.Sprintf("\t%s (%s)%s", name, v.Type(), infoSuffix(v.Info())), consoletypes.SeverityMessage)
			}
		}
	}
	if len(cmds) > 0 {
		c.Log("Console Commands:", consoletypes.SeverityMessage)
		for _, name := range cmds {
			cmd, ok := c.reg.Command(name)
			if !ok {
				continue
			}
			params := ""
			if sig := cmd.Signature(); sig != "" {
				params = " (" + sig + ")"
			}
			c.Log(fmt.Sprintf("\t%s%s%s", name, params, infoSuffix(cmd.Info())), consoletypes.SeverityMessage)
		}
	}
	return len(vars)+len(cmds) > 0
}

func infoSuffix(info string) string {
	if info == "" {
		return ""
	}
	return fmt.Sprintf(`: "%s"`, info)
}
