package builtin

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconsole/internal/binds"
	"devconsole/internal/console"
	"devconsole/internal/logger"
	"devconsole/internal/version"
	"devconsole/pkg/consoletypes"
)

func setup(t *testing.T, opts Options) (*console.Console, *Entries) {
	t.Helper()
	c := console.New(console.Options{Host: consoletypes.DiscardHost})
	e, ok := Register(c, opts)
	require.True(t, ok)
	return c, e
}

func messages(c *console.Console) []string {
	var out []string
	for _, rec := range c.Logs() {
		out = append(out, rec.Message)
	}
	return out
}

func TestRegister_Entries(t *testing.T) {
	c, _ := setup(t, Options{})

	assert.Equal(t, []string{"con_width", "dev", "developer", "log_level", "sv_cheats", "sv_gravity"}, c.Registry().ValueNames())
	assert.Equal(t, []string{"binds", "echo", "exec", "log", "toggle", "unbind", "version"}, c.Registry().CommandNames())
}

func TestEcho(t *testing.T) {
	c, _ := setup(t, Options{})

	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine(`echo "hello world"`))
	assert.Equal(t, []string{"hello world"}, messages(c))
}

func TestLog(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    consoletypes.RunCommandResult
		wantSev consoletypes.Severity
		wantMsg string
	}{
		{name: "warning by name", line: "log warning careful", want: consoletypes.CommandSuccess, wantSev: consoletypes.SeverityWarning, wantMsg: "careful"},
		{name: "case-insensitive", line: "log ERROR boom", want: consoletypes.CommandSuccess, wantSev: consoletypes.SeverityError, wantMsg: "boom"},
		{name: "numeric severity", line: "log 1 faint", want: consoletypes.CommandSuccess, wantSev: consoletypes.SeverityLight, wantMsg: "faint"},
		{name: "unknown severity", line: "log loud text", want: consoletypes.InvalidArgs, wantSev: consoletypes.SeverityError, wantMsg: `An error occurred running the command "log"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := setup(t, Options{})

			assert.Equal(t, tt.want, c.RunLine(tt.line))
			rec, ok := c.GetLog(c.NumLogs() - 1)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, rec.Message)
			assert.Equal(t, tt.wantSev, rec.Severity)
		})
	}
}

func TestConvars(t *testing.T) {
	c, e := setup(t, Options{})

	require.Equal(t, consoletypes.ValueSuccess, c.SetValue("dev", "2", false))
	assert.Equal(t, 2, e.Developer)
	_, got := c.GetValue("developer", false)
	assert.Equal(t, 2, got, "dev and developer share storage")

	require.Equal(t, consoletypes.ValueSuccess, c.SetValue("sv_gravity", "600", false))
	assert.Equal(t, 600.0, e.Gravity)
}

func TestConWidth(t *testing.T) {
	applied := -1
	width := 0
	c, _ := setup(t, Options{
		GetWidth: func() int { return width },
		SetWidth: func(n int) { width = n; applied = n },
	})

	require.Equal(t, consoletypes.ValueSuccess, c.SetValue("con_width", "100", false))
	assert.Equal(t, 100, applied)
	_, got := c.GetStringValue("con_width", false)
	assert.Equal(t, "100", got)

	assert.Equal(t, consoletypes.InvalidValue, c.SetValue("con_width", "-5", false))
	assert.Equal(t, 100, width)
}

func TestLogLevel(t *testing.T) {
	before := logger.Level()
	t.Cleanup(func() { require.NoError(t, logger.SetLevel(before)) })

	c, _ := setup(t, Options{})

	require.Equal(t, consoletypes.ValueSuccess, c.SetValue("log_level", "WARN", false))
	assert.Equal(t, "warn", logger.Level())

	res, text := c.GetStringValue("log_level", false)
	assert.Equal(t, consoletypes.ValueSuccess, res)
	assert.Equal(t, "warn", text)

	assert.Equal(t, consoletypes.InvalidValue, c.SetValue("log_level", "chatty", false))
	assert.Equal(t, "warn", logger.Level())
}

func TestToggle(t *testing.T) {
	c, e := setup(t, Options{})

	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine("toggle sv_cheats"))
	assert.True(t, e.Cheats)
	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine("toggle sv_cheats"))
	assert.False(t, e.Cheats)

	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine("toggle developer"))
	assert.Equal(t, 1, e.Developer)
	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine("toggle dev"))
	assert.Equal(t, 0, e.Developer)

	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine("toggle sv_gravity"))
	assert.Equal(t, 0.0, e.Gravity)

	assert.Equal(t, consoletypes.InvalidArgs, c.RunLine("toggle nope"))
}

func TestBindingCommands(t *testing.T) {
	store := binds.NewStore()
	c, _ := setup(t, Options{Binds: store})
	c.SetBinder(store)

	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine(`bind f1 "echo bound"`))
	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine("exec F1"))
	assert.Contains(t, messages(c), "bound")

	c.RunLine("clear")
	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine("binds"))
	assert.Equal(t, []string{"bound", "Key Bindings:", "\tF1: \"echo bound\""}, messages(c))

	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine("unbind F1"))
	_, ok := store.Get("F1")
	assert.False(t, ok)

	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine("unbind F1"))
	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine("exec F1"))
	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine("binds"))
	assert.Equal(t, []string{`Nothing bound to "F1"`, `Nothing bound to "F1"`, "No keys are bound"}, messages(c)[len(messages(c))-3:])
}

func TestExec_BindingLoops(t *testing.T) {
	tests := []struct {
		name  string
		binds []string
	}{
		{name: "self", binds: []string{`bind F1 "exec F1"`}},
		{name: "two key cycle", binds: []string{`bind F1 "exec F2"`, `bind F2 "exec F1"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := binds.NewStore()
			c, _ := setup(t, Options{Binds: store})
			c.SetBinder(store)
			for _, line := range tt.binds {
				require.Equal(t, consoletypes.CommandSuccess, c.RunLine(line))
			}

			assert.Equal(t, consoletypes.InvalidArgs, c.RunLine("exec F1"))

			var warnings []string
			for _, rec := range c.Logs() {
				if rec.Severity == consoletypes.SeverityWarning {
					warnings = append(warnings, rec.Message)
				}
			}
			assert.Equal(t, []string{`Key "F1" is already running its binding`}, warnings)

			// a second attempt fails the same way
			assert.Equal(t, consoletypes.InvalidArgs, c.RunLine("exec F1"))
		})
	}
}

func TestExec_FailingLine(t *testing.T) {
	store := binds.NewStore()
	c, _ := setup(t, Options{Binds: store})
	require.True(t, store.Bind("F3", "nope"))

	assert.Equal(t, consoletypes.InvalidArgs, c.RunLine("exec F3"))
	assert.Contains(t, messages(c), `Invalid command "nope"`)
}

func TestBindingCommands_NoStore(t *testing.T) {
	c, _ := setup(t, Options{})

	for _, line := range []string{"binds", "exec F1", "unbind F1"} {
		assert.Equal(t, consoletypes.InvalidArgs, c.RunLine(line), line)
	}
}

func TestVersion(t *testing.T) {
	c, _ := setup(t, Options{})

	assert.Equal(t, consoletypes.CommandSuccess, c.RunLine("version"))
	rec, ok := c.GetLog(0)
	require.True(t, ok)
	assert.Contains(t, rec.Message, "devconsole v")
	assert.Equal(t, consoletypes.SeverityLight, rec.Severity)
	assert.Len(t, messages(c), 1)
}

func TestVersion_Verbose(t *testing.T) {
	tests := []struct {
		line      string
		wantLines int
	}{
		{line: "version 0", wantLines: 1},
		{line: "version false", wantLines: 1},
		{line: "version 1", wantLines: len(version.Detailed())},
		{line: "version true", wantLines: len(version.Detailed())},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c, _ := setup(t, Options{})

			assert.Equal(t, consoletypes.CommandSuccess, c.RunLine(tt.line))
			assert.Len(t, messages(c), tt.wantLines)
		})
	}

	c, _ := setup(t, Options{})
	c.RunLine("version 1")
	assert.Contains(t, messages(c), "Go Version: "+runtime.Version())
}
