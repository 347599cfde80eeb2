// Package builtin provides the console entries that are available by default.
// They are declared as tagged fields of one container and linked at startup,
// so they exercise the same discovery path as host-defined entries.
package builtin

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"devconsole/internal/binds"
	"devconsole/internal/coerce"
	"devconsole/internal/console"
	"devconsole/internal/logger"
	"devconsole/internal/version"
	"devconsole/pkg/consoletypes"
)

// LogLevel is the host log level as exposed to the console.
type LogLevel int

// Host log levels, most verbose first.
const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var logLevelNames = map[LogLevel]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelFatal: "fatal",
}

var severityNames = map[consoletypes.Severity]string{
	consoletypes.SeverityMessage: "message",
	consoletypes.SeverityLight:   "light",
	consoletypes.SeverityWarning: "warning",
	consoletypes.SeverityError:   "error",
}

// Options wires the built-ins to their collaborators. Every field is optional.
type Options struct {
	// Binds backs unbind, binds and exec.
	Binds *binds.Store
	// GetWidth and SetWidth connect con_width to the panel.
	GetWidth func() int
	SetWidth func(int)
}

// Entries is the built-in container.
type Entries struct {
	consoletypes.Container

	Cheats    bool                         `console:"sv_cheats,Allow cheat commands"`
	Developer int                          `console:"developer,Developer mode level;dev"`
	Gravity   float64                      `console:"sv_gravity,World gravity"`
	Width     *consoletypes.Prop[int]      `console:"con_width,Panel width in cells, 0 disables truncation"`
	LogLevel  *consoletypes.Prop[LogLevel] `console:"log_level,Host diagnostic log level"`

	Echo    func(text string)                                 `console:"echo,Print text to the console" args:"text"`
	Log     func(severity consoletypes.Severity, text string) `console:"log,Print text with a severity" args:"severity,text"`
	Version func(verbose bool)                                `console:"version,Print version information" args:"verbose=false"`
	Unbind  func(key string) error                            `console:"unbind,Remove a key binding" args:"key"`
	Binds   func() error                                      `console:"binds,List key bindings"`
	Exec    func(key string) error                            `console:"exec,Run the line bound to a key" args:"key"`
	Toggle  func(name string) error                           `console:"toggle,Flip a boolean or numeric convar" args:"name"`
}

// ErrNoBindStore is returned by the binding commands when no store is configured.
var ErrNoBindStore = errors.New("key binding is unavailable")

// New builds the built-in container for c.
func New(c *console.Console, opts Options) *Entries {
	e := &Entries{Gravity: 800}

	width := 0
	getWidth := opts.GetWidth
	if getWidth == nil {
		getWidth = func() int { return width }
	}
	e.Width = consoletypes.NewProperty(getWidth, func(n int) error {
		if n < 0 {
			return fmt.Errorf("width must not be negative, got %d", n)
		}
		width = n
		if opts.SetWidth != nil {
			opts.SetWidth(n)
		}
		return nil
	})

	e.LogLevel = consoletypes.NewProperty(currentLogLevel, func(l LogLevel) error {
		return logger.SetLevel(logLevelNames[l])
	})

	e.Echo = func(text string) {
		c.Log(text, consoletypes.SeverityMessage)
	}
	e.Log = func(severity consoletypes.Severity, text string) {
		c.Log(text, severity)
	}
	e.Version = func(verbose bool) {
		if !verbose {
			c.Log(version.Short(), consoletypes.SeverityLight)
			return
		}
		for _, line := range version.Detailed() {
			c.Log(line, consoletypes.SeverityLight)
		}
	}
	e.Unbind = func(key string) error {
		if opts.Binds == nil {
			return ErrNoBindStore
		}
		if !opts.Binds.Unbind(key) {
			c.Log(fmt.Sprintf(`Nothing bound to "%s"`, key), consoletypes.SeverityWarning)
		}
		return nil
	}
	e.Binds = func() error {
		if opts.Binds == nil {
			return ErrNoBindStore
		}
		all := opts.Binds.All()
		if len(all) == 0 {
			c.Log("No keys are bound", consoletypes.SeverityLight)
			return nil
		}
		c.Log("Key Bindings:", consoletypes.SeverityMessage)
		for _, b := range all {
			c.Log(fmt.Sprintf("\t%s: \"%s\"", b.Key, b.Line), consoletypes.SeverityMessage)
		}
		return nil
	}
	e.Exec = func(key string) error {
		if opts.Binds == nil {
			return ErrNoBindStore
		}
		res, err := opts.Binds.Fire(key, c)
		switch {
		case errors.Is(err, binds.ErrNotBound):
			c.Log(fmt.Sprintf(`Nothing bound to "%s"`, key), consoletypes.SeverityWarning)
			return nil
		case errors.Is(err, binds.ErrFireLoop):
			c.Log(fmt.Sprintf(`Key "%s" is already running its binding`, key), consoletypes.SeverityWarning)
			return err
		case err != nil:
			return err
		case res != consoletypes.CommandSuccess:
			return fmt.Errorf("line bound to %s failed: %s", key, res)
		}
		return nil
	}
	e.Toggle = func(name string) error {
		return toggle(c, name)
	}

	return e
}

// Register installs the converters the built-ins need and links them into c.
func Register(c *console.Console, opts Options) (*Entries, bool) {
	RegisterConverters(c.Converters())
	e := New(c, opts)
	return e, c.Link(e)
}

// RegisterConverters adds the enum converters for LogLevel and Severity.
func RegisterConverters(r *coerce.Registry) {
	coerce.RegisterEnum(r, logLevelNames)
	coerce.RegisterEnum(r, severityNames)
}

func currentLogLevel() LogLevel {
	name := logger.Level()
	for l, n := range logLevelNames {
		if strings.EqualFold(n, name) {
			return l
		}
	}
	return LevelInfo
}

// toggle flips a bool convar, or switches a numeric convar between 0 and 1.
func toggle(c *console.Console, name string) error {
	res, value := c.GetValue(name, true)
	if res != consoletypes.ValueSuccess {
		return fmt.Errorf("cannot read %q: %s", name, res)
	}

	var next any
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		next = !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		next = flip(rv.Int() == 0)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		next = flip(rv.Uint() == 0)
	case reflect.Float32, reflect.Float64:
		next = flip(rv.Float() == 0)
	default:
		return fmt.Errorf("%q is neither boolean nor numeric", name)
	}

	if res := c.SetValue(name, next, true); res != consoletypes.ValueSuccess {
		return fmt.Errorf("cannot set %q: %s", name, res)
	}
	return nil
}

func flip(zero bool) int {
	if zero {
		return 1
	}
	return 0
}
