package shell

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInput(t *testing.T, f *fixture, input string) *bytes.Buffer {
	t.Helper()
	out := &bytes.Buffer{}
	sh := New(f.console, f.console.Registry(), Options{
		Prompt: "] ",
		Stdin:  io.NopCloser(strings.NewReader(input)),
		Stdout: out,
	})
	sh.Run()
	return out
}

func TestShell_Run_KeepsLinesIntact(t *testing.T) {
	f := newFixture(t)

	runInput(t, f, "say \"a  b\"\nsay \"open quote\n// note\n\nsv_gravity 5\n")

	assert.Equal(t, []string{"a  b", "open quote"}, f.said)
	assert.Equal(t, 5.0, f.gravity)
}

func TestShell_Run_StopsAtExitWord(t *testing.T) {
	tests := []struct {
		name string
		word string
	}{
		{name: "exit", word: "exit"},
		{name: "quit", word: "  quit "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			runInput(t, f, "say before\n"+tt.word+"\nsay after\n")

			assert.Equal(t, []string{"before"}, f.said)
		})
	}
}

func TestShell_Run_ExitCommandWins(t *testing.T) {
	f := newFixture(t)
	exits := 0
	_, err := f.console.AddCommand("exit", "", func() { exits++ }, "")
	require.NoError(t, err)

	runInput(t, f, "exit\nsay after\n")

	assert.Equal(t, 1, exits)
	assert.Equal(t, []string{"after"}, f.said)
}

func TestShell_Run_Banner(t *testing.T) {
	f := newFixture(t)
	out := &bytes.Buffer{}
	sh := New(f.console, f.console.Registry(), Options{
		Banner: true,
		Stdin:  io.NopCloser(strings.NewReader("")),
		Stdout: out,
	})

	sh.Run()

	assert.Contains(t, out.String(), "type 'help' for entries")
}
