package shell

import (
	"errors"
	"io"
	"strings"

	"github.com/abiosoft/ishell/v2"
	"github.com/abiosoft/readline"

	"devconsole/internal/logger"
	"devconsole/internal/version"
)

// Options configures the interactive shell.
type Options struct {
	Prompt      string
	HistoryPath string
	// Banner is printed before the first prompt when set.
	Banner bool
	// Stdin replaces the terminal as the input source. Input read from it is
	// treated as non-interactive.
	Stdin io.ReadCloser
	// Stdout receives the prompt and shell messages. Nil means the terminal.
	Stdout io.Writer
}

var _ readline.AutoCompleter = (*Completer)(nil)

// exitWords stop the shell unless a console command has the same name.
var exitWords = []string{"exit", "quit"}

// Shell reads lines with ishell and hands each one, unsplit, to a console.
// ishell's command loop is bypassed: it splits input with shell quoting.
type Shell struct {
	sh         *ishell.Shell
	target     Target
	banner     bool
	interrupts int
}

// New builds a shell over target. Completion uses names.
func New(target Target, names NameSource, opts Options) *Shell {
	conf := &readline.Config{
		Prompt:      opts.Prompt,
		HistoryFile: opts.HistoryPath,
		Stdin:       opts.Stdin,
		Stdout:      opts.Stdout,
	}
	if opts.Stdin != nil {
		conf.FuncIsTerminal = func() bool { return false }
		conf.FuncMakeRaw = func() error { return nil }
		conf.FuncExitRaw = func() error { return nil }
	}

	sh := ishell.NewWithConfig(conf)
	if opts.Stdout != nil {
		sh.SetOut(opts.Stdout)
	}
	sh.CustomCompleter(NewCompleter(names))

	return &Shell{sh: sh, target: target, banner: opts.Banner}
}

// Run reads and runs lines until end of input, an exit word or a second
// consecutive interrupt.
func (s *Shell) Run() {
	defer s.sh.Close()

	if s.banner {
		s.sh.Println(version.Short() + " - type 'help' for entries, 'exit' to quit.")
	}
	logger.Debug("Starting interactive shell")

	for {
		line, err := s.sh.ReadLineErr()
		switch {
		case errors.Is(err, io.EOF):
			return
		case errors.Is(err, readline.ErrInterrupt):
			s.interrupts++
			if s.interrupts > 1 {
				return
			}
			s.sh.Println("Input Ctrl-C once more to exit")
			continue
		case err != nil:
			logger.Error("Failed to read input", "error", err)
			return
		}
		s.interrupts = 0

		if s.isExit(line) {
			return
		}
		ProcessLine(s.target, line)
	}
}

func (s *Shell) isExit(line string) bool {
	word := strings.TrimSpace(line)
	for _, w := range exitWords {
		if word == w {
			return !s.target.HasCommand(w)
		}
	}
	return false
}
