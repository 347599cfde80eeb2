package shell

import (
	"sort"
	"strings"

	"devconsole/internal/console"
)

// NameSource lists the names that can start a console line.
type NameSource interface {
	ValueNames() []string
	CommandNames() []string
}

// Completer completes the first word of a line with convar and command
// names. It satisfies the readline.AutoCompleter used by ishell.
type Completer struct {
	src NameSource
}

// NewCompleter returns a completer over src.
func NewCompleter(src NameSource) *Completer {
	return &Completer{src: src}
}

// Do returns the suffixes that complete the word before pos, and the length
// of that word.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	head := string(line[:pos])
	if strings.ContainsAny(head, " \t") {
		return nil, 0
	}

	var out [][]rune
	for _, name := range c.names() {
		if strings.HasPrefix(name, head) && name != head {
			out = append(out, []rune(name[len(head):]+" "))
		}
	}
	return out, len([]rune(head))
}

func (c *Completer) names() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, group := range [][]string{console.PriorityCommandNames(), c.src.CommandNames(), c.src.ValueNames()} {
		for _, name := range group {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
