package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconsole/internal/console"
	"devconsole/pkg/consoletypes"
)

type fixture struct {
	console *console.Console
	gravity float64
	said    []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{gravity: 800}
	f.console = console.New(console.Options{Host: consoletypes.DiscardHost})

	_, err := f.console.AddValue("sv_gravity", "", &f.gravity)
	require.NoError(t, err)
	_, err = f.console.AddCommand("say", "", func(text string) { f.said = append(f.said, text) }, "text")
	require.NoError(t, err)
	return f
}

func (f *fixture) lastLog(t *testing.T) consoletypes.LogRecord {
	t.Helper()
	require.Positive(t, f.console.NumLogs())
	rec, ok := f.console.GetLog(f.console.NumLogs() - 1)
	require.True(t, ok)
	return rec
}

func TestProcessLine_Skips(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   \t "},
		{name: "comment", input: "// a note"},
		{name: "indented comment", input: "   //x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			assert.False(t, ProcessLine(f.console, tt.input))
			assert.Zero(t, f.console.NumLogs())
		})
	}
}

func TestProcessLine_Command(t *testing.T) {
	f := newFixture(t)

	assert.True(t, ProcessLine(f.console, `  say "hello world" `))
	assert.Equal(t, []string{"hello world"}, f.said)

	assert.True(t, ProcessLine(f.console, "say //x"))
	assert.Equal(t, []string{"hello world", "//x"}, f.said)
}

func TestProcessLine_UnknownName(t *testing.T) {
	f := newFixture(t)

	assert.True(t, ProcessLine(f.console, "nope 1"))
	rec := f.lastLog(t)
	assert.Equal(t, `Invalid command "nope"`, rec.Message)
	assert.Equal(t, consoletypes.SeverityError, rec.Severity)
}

func TestProcessLine_ReadsConvar(t *testing.T) {
	f := newFixture(t)

	assert.True(t, ProcessLine(f.console, "sv_gravity"))
	rec := f.lastLog(t)
	assert.Equal(t, `sv_gravity = "800"`, rec.Message)
	assert.Equal(t, consoletypes.SeverityLight, rec.Severity)
}

func TestProcessLine_WritesConvar(t *testing.T) {
	f := newFixture(t)

	assert.True(t, ProcessLine(f.console, "sv_gravity 9.81"))
	assert.Equal(t, 9.81, f.gravity)
	assert.Zero(t, f.console.NumLogs())

	assert.True(t, ProcessLine(f.console, "sv_gravity heavy"))
	assert.Equal(t, 9.81, f.gravity)
	assert.Equal(t, `An error occurred in setting: "sv_gravity"`, f.lastLog(t).Message)
}

func TestProcessLine_ConvarTooManyArgs(t *testing.T) {
	f := newFixture(t)

	assert.True(t, ProcessLine(f.console, "sv_gravity 1 2"))
	assert.Equal(t, 800.0, f.gravity)
	assert.Equal(t, `Variable "sv_gravity" takes one value. 2 were given.`, f.lastLog(t).Message)
}

func TestProcessLine_CommandWinsOverConvar(t *testing.T) {
	f := newFixture(t)
	var other float64
	_, err := f.console.AddValue("say", "", &other)
	require.NoError(t, err)

	ProcessLine(f.console, "say 3")
	assert.Equal(t, []string{"3"}, f.said)
	assert.Zero(t, other)
}
