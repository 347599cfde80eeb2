// Package console implements the developer console dispatcher: it resolves
// names against the registry, coerces arguments, runs getters, setters and
// commands, and records user-facing output in a bounded log.
package console

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"devconsole/internal/coerce"
	"devconsole/internal/descriptor"
	"devconsole/internal/logbuffer"
	"devconsole/internal/logger"
	"devconsole/internal/registry"
	"devconsole/pkg/consoletypes"
)

// Options configures a Console. Zero values are usable.
type Options struct {
	// Host receives internal diagnostics. Nil means the global host logger.
	Host consoletypes.HostLogger
	// Binder backs the bind command. Nil disables binding.
	Binder consoletypes.Binder
	// Converters overrides the coercion registry.
	Converters *coerce.Registry
	// Capacity is the log size; zero means logbuffer.DefaultCapacity.
	Capacity int
}

// Console is the dispatcher over one registry and one log.
//
// Dispatch is single-threaded: drive a Console from one goroutine. Reads of
// the log from other goroutines are safe.
type Console struct {
	reg  *registry.Registry
	conv *coerce.Registry
	host consoletypes.HostLogger

	mu     sync.RWMutex
	logs   *logbuffer.Buffer[consoletypes.LogRecord]
	binder consoletypes.Binder
}

var _ consoletypes.Manager = (*Console)(nil)

// New creates a console with an empty registry.
func New(opts Options) *Console {
	host := opts.Host
	if host == nil {
		host = logger.NewHostLog(nil)
	}
	conv := opts.Converters
	if conv == nil {
		conv = coerce.NewRegistry()
	}
	return &Console{
		reg:    registry.New(),
		conv:   conv,
		host:   host,
		logs:   logbuffer.New[consoletypes.LogRecord](opts.Capacity),
		binder: opts.Binder,
	}
}

// Registry exposes the name tables.
func (c *Console) Registry() *registry.Registry { return c.reg }

// Converters exposes the coercion registry so hosts can add converters.
func (c *Console) Converters() *coerce.Registry { return c.conv }

// SetBinder replaces the collaborator behind the bind command.
func (c *Console) SetBinder(b consoletypes.Binder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.binder = b
}

func (c *Console) currentBinder() consoletypes.Binder {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.binder
}

// LoadAttributes registers the tagged members of every container in source.
// See registry.Discoverer.LoadAttributes.
func (c *Console) LoadAttributes(source registry.Module, containerMarker reflect.Type, entryTag string) bool {
	return registry.NewDiscoverer(c.reg, c.conv, c.host).LoadAttributes(source, containerMarker, entryTag)
}

// Link registers containers using the default markers.
func (c *Console) Link(containers ...any) bool {
	return c.LoadAttributes(registry.Module(containers), reflect.TypeOf(consoletypes.Container{}), consoletypes.DefaultEntryTag)
}

// AddValue registers the variable ptr points at. It reports false when the
// name is already taken.
func (c *Console) AddValue(name, info string, ptr any) (bool, error) {
	v, err := descriptor.NewPointerValue(name, info, ptr)
	if err != nil {
		return false, err
	}
	return c.reg.RegisterValue(v), nil
}

// AddProperty registers an accessor-backed convar.
func (c *Console) AddProperty(name, info string, prop consoletypes.Property) (bool, error) {
	v, err := descriptor.NewPropertyValue(name, info, prop)
	if err != nil {
		return false, err
	}
	return c.reg.RegisterValue(v), nil
}

// AddCommand registers fn as a command. args uses the same grammar as the
// args struct tag.
func (c *Console) AddCommand(name, info string, fn any, args string) (bool, error) {
	cmd, err := descriptor.NewCommand(name, info, reflect.ValueOf(fn), args, c.conv)
	if err != nil {
		return false, err
	}
	return c.reg.RegisterCommand(cmd), nil
}

// Close releases the log. Logging afterwards only reaches the host log.
func (c *Console) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logs = nil
}

func (c *Console) fault(format string, args ...any) {
	c.host.WriteLine(fmt.Sprintf(format, args...), consoletypes.HostError)
}

// reportFault sends err to the host log, with the stack of a recovered panic
// at debug level.
func (c *Console) reportFault(what string, err error) {
	c.fault("%s: %v", what, err)
	var pe *descriptor.PanicError
	if errors.As(err, &pe) {
		c.host.WriteLine(string(pe.Stack), consoletypes.HostDebug)
	}
}
