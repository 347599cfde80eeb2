package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "blank", input: "  \t ", expected: nil},
		{name: "single word", input: "help", expected: []string{"help"}},
		{name: "extra whitespace", input: "  teleport   1.5\t2  ", expected: []string{"teleport", "1.5", "2"}},
		{name: "quoted argument", input: `say "hello world"`, expected: []string{"say", "hello world"}},
		{name: "escaped quote", input: `say "a \"b\" c"`, expected: []string{"say", `a "b" c`}},
		{name: "escaped backslash", input: `say "ends with \\"`, expected: []string{"say", `ends with \`}},
		{name: "other backslashes kept", input: `path "C:\games\x"`, expected: []string{"path", `C:\games\x`}},
		{name: "unquoted backslash kept", input: `path C:\games`, expected: []string{"path", `C:\games`}},
		{name: "empty quoted token", input: `bind F1 ""`, expected: []string{"bind", "F1", ""}},
		{name: "unterminated quote takes the rest", input: `say "hello world`, expected: []string{"say", "hello world"}},
		{name: "quote splits an unquoted run", input: `a"b c"d`, expected: []string{"a", "b c", "d"}},
		{name: "adjacent quoted tokens", input: `"a""b"`, expected: []string{"a", "b"}},
		{name: "unicode", input: "echo héllo wörld", expected: []string{"echo", "héllo", "wörld"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestParseLine(t *testing.T) {
	t.Run("name and args", func(t *testing.T) {
		line, err := ParseLine(`bind F1 "say hi"`)
		require.NoError(t, err)
		assert.Equal(t, "bind", line.Name)
		assert.Equal(t, []string{"F1", "say hi"}, line.Args)
		assert.Equal(t, []any{"F1", "say hi"}, line.AnyArgs())
	})

	t.Run("name only", func(t *testing.T) {
		line, err := ParseLine("help")
		require.NoError(t, err)
		assert.Equal(t, "help", line.Name)
		assert.Empty(t, line.Args)
		assert.Empty(t, line.AnyArgs())
	})

	t.Run("blank", func(t *testing.T) {
		_, err := ParseLine("   ")
		assert.ErrorIs(t, err, ErrEmptyLine)
	})
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "plain", expected: "plain"},
		{input: "", expected: `""`},
		{input: "two words", expected: `"two words"`},
		{input: `say "hi"`, expected: `"say \"hi\""`},
		{input: `C:\games`, expected: `C:\games`},
		{input: `trailing \ x`, expected: `"trailing \\ x"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Quote(tt.input))
		})
	}
}

func TestQuote_RoundTrip(t *testing.T) {
	inputs := []string{"", "x", "hello world", `a "b" c`, `back\slash`, `end\`, `"`, "tab\there", `\"`}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, []string{in}, Tokenize(Quote(in)))
		})
	}
}

func TestLine_String(t *testing.T) {
	line := &Line{Name: "bind", Args: []string{"F1", "say hi"}}
	assert.Equal(t, `bind F1 "say hi"`, line.String())

	reparsed, err := ParseLine(line.String())
	require.NoError(t, err)
	assert.Equal(t, line, reparsed)
}
