package console

import (
	"errors"
	"fmt"
	"sync"

	"devconsole/internal/logger"
	"devconsole/pkg/consoletypes"
)

var (
	// ErrNotInitialized is reported by the package-level helpers before Init.
	ErrNotInitialized = errors.New("console not initialized")
	// ErrAlreadyInitialized is returned by a second Init without Shutdown.
	ErrAlreadyInitialized = errors.New("console already initialized")
)

// defaultConsole holds the process-wide instance.
var defaultConsole *Console

// defaultConsoleMu protects access to the process-wide instance.
var defaultConsoleMu sync.RWMutex

// Init creates the process-wide console.
func Init(opts Options) (*Console, error) {
	defaultConsoleMu.Lock()
	defer defaultConsoleMu.Unlock()

	if defaultConsole != nil {
		return nil, ErrAlreadyInitialized
	}
	defaultConsole = New(opts)
	return defaultConsole, nil
}

// Default returns the process-wide console, or nil before Init.
func Default() *Console {
	defaultConsoleMu.RLock()
	defer defaultConsoleMu.RUnlock()
	return defaultConsole
}

// SetDefault replaces the process-wide console. Mostly useful in tests.
func SetDefault(c *Console) {
	defaultConsoleMu.Lock()
	defer defaultConsoleMu.Unlock()
	defaultConsole = c
}

// Shutdown closes and forgets the process-wide console.
func Shutdown() {
	defaultConsoleMu.Lock()
	defer defaultConsoleMu.Unlock()
	if defaultConsole != nil {
		defaultConsole.Close()
	}
	defaultConsole = nil
}

// Log writes to the process-wide console.
func Log(message string, severity consoletypes.Severity) {
	c := Default()
	if c == nil {
		logger.Warn(fmt.Sprintf(`Log called with "%s" while uninitialized`, message))
		return
	}
	c.Log(message, severity)
}

// RunLine runs line on the process-wide console.
func RunLine(line string) (consoletypes.RunCommandResult, error) {
	c := Default()
	if c == nil {
		logger.Warn("RunLine called while uninitialized", "line", line)
		return consoletypes.UnknownCommand, ErrNotInitialized
	}
	return c.RunLine(line), nil
}
