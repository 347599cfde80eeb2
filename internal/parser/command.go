// Package parser splits raw console input into a command name and arguments.
package parser

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyLine is returned by ParseLine for blank input.
var ErrEmptyLine = errors.New("empty command line")

// Line is one parsed console line.
type Line struct {
	Name string
	Args []string
}

// ParseLine tokenizes input; the first token is the command name.
func ParseLine(input string) (*Line, error) {
	tokens := Tokenize(input)
	if len(tokens) == 0 {
		return nil, ErrEmptyLine
	}
	return &Line{Name: tokens[0], Args: tokens[1:]}, nil
}

// AnyArgs returns the arguments as a []any for dispatch.
func (l *Line) AnyArgs() []any {
	out := make([]any, len(l.Args))
	for i, a := range l.Args {
		out[i] = a
	}
	return out
}

func (l *Line) String() string {
	parts := make([]string, 0, len(l.Args)+1)
	parts = append(parts, Quote(l.Name))
	for _, a := range l.Args {
		parts = append(parts, Quote(a))
	}
	return strings.Join(parts, " ")
}

// Tokenize splits input on whitespace. A double quote starts a token that runs
// to the next unescaped quote, or to the end of the line if there is none.
// Inside quotes \" and \\ are unescaped; any other backslash is kept.
func Tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inToken := false
	inQuotes := false

	flush := func() {
		tokens = append(tokens, current.String())
		current.Reset()
		inToken = false
	}

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if inQuotes {
			switch {
			case c == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\'):
				current.WriteRune(runes[i+1])
				i++
			case c == '"':
				inQuotes = false
				flush()
			default:
				current.WriteRune(c)
			}
			continue
		}

		switch {
		case c == '"':
			if inToken {
				flush()
			}
			inQuotes = true
			inToken = true
		case unicode.IsSpace(c):
			if inToken {
				flush()
			}
		default:
			current.WriteRune(c)
			inToken = true
		}
	}

	if inToken {
		flush()
	}
	return tokens
}

// Quote returns s in a form that Tokenize reads back as the single token s.
func Quote(s string) string {
	if s != "" && !strings.ContainsFunc(s, func(r rune) bool { return r == '"' || unicode.IsSpace(r) }) {
		return s
	}

	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
