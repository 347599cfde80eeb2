// Package binds maps keyboard keys to console lines and persists the mapping.
package binds

import (
	"fmt"
	"strings"
)

// Key identifies a bindable key. The zero Key is not a valid key.
type Key int

// KeyNone is the zero Key.
const KeyNone Key = 0

var (
	keyNames  = []string{""}
	keyByName = map[string]Key{}
)

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		addKey(string(c))
	}
	for i := 0; i <= 9; i++ {
		addKey(fmt.Sprintf("Alpha%d", i))
	}
	for i := 0; i <= 9; i++ {
		addKey(fmt.Sprintf("Keypad%d", i))
	}
	for i := 1; i <= 15; i++ {
		addKey(fmt.Sprintf("F%d", i))
	}
	for _, name := range []string{
		"Space", "Return", "Escape", "Tab", "Backspace", "Delete", "Insert",
		"Home", "End", "PageUp", "PageDown",
		"UpArrow", "DownArrow", "LeftArrow", "RightArrow",
		"BackQuote", "Minus", "Equals",
	} {
		addKey(name)
	}
}

func addKey(name string) {
	k := Key(len(keyNames))
	keyNames = append(keyNames, name)
	keyByName[strings.ToLower(name)] = k
}

// ParseKey resolves a key name case-insensitively.
func ParseKey(name string) (Key, bool) {
	k, ok := keyByName[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// Keys returns every valid key in declaration order.
func Keys() []Key {
	out := make([]Key, 0, len(keyNames)-1)
	for i := 1; i < len(keyNames); i++ {
		out = append(out, Key(i))
	}
	return out
}

// Valid reports whether k names a key.
func (k Key) Valid() bool {
	return k > KeyNone && int(k) < len(keyNames)
}

// String returns the canonical key name.
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}
