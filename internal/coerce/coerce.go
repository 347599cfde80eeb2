// Package coerce converts loosely typed console input into the statically typed
// storage behind convars and command parameters.
//
// Converters are looked up by target type: explicitly registered converters first,
// then types implementing encoding.TextUnmarshaler, then kind-based defaults built
// on github.com/spf13/cast.
package coerce

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrNoConverter is returned when no converter can produce the target type.
	ErrNoConverter = errors.New("no converter for type")
	// ErrConversion is returned when the input cannot be parsed as the target type.
	ErrConversion = errors.New("cannot convert value")
)

// Converter turns arbitrary input into one target type and formats values of
// that type as text.
type Converter interface {
	FromValue(value any) (any, error)
	ToString(value any) (string, error)
}

// Funcs adapts a pair of functions to Converter.
type Funcs struct {
	From func(value any) (any, error)
	To   func(value any) (string, error)
}

// FromValue calls f.From.
func (f Funcs) FromValue(value any) (any, error) { return f.From(value) }

// ToString calls f.To.
func (f Funcs) ToString(value any) (string, error) { return f.To(value) }

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Registry holds converters keyed by target type.
type Registry struct {
	mu         sync.RWMutex
	converters map[reflect.Type]Converter
}

// NewRegistry creates a registry with only the built-in fallbacks.
func NewRegistry() *Registry {
	return &Registry{
		converters: make(map[reflect.Type]Converter),
	}
}

// Register installs c as the converter for t, replacing any previous one.
func (r *Registry) Register(t reflect.Type, c Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[t] = c
}

// Lookup returns the converter used for t.
func (r *Registry) Lookup(t reflect.Type) (Converter, bool) {
	if t == nil {
		return nil, false
	}

	r.mu.RLock()
	c, ok := r.converters[t]
	r.mu.RUnlock()
	if ok {
		return c, true
	}

	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return textConverter{t: t}, true
	}

	if supportsKind(t) {
		return kindConverter{t: t}, true
	}
	return nil, false
}

// Convert coerces value into target. A value whose dynamic type already equals
// target is passed through unchanged.
func (r *Registry) Convert(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil to %s", ErrConversion, target)
	}

	vt := reflect.TypeOf(value)
	if vt == target {
		return reflect.ValueOf(value), nil
	}
	if target.Kind() == reflect.Interface && vt.Implements(target) {
		out := reflect.New(target).Elem()
		out.Set(reflect.ValueOf(value))
		return out, nil
	}

	c, ok := r.Lookup(target)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w %s", ErrNoConverter, target)
	}

	converted, err := c.FromValue(value)
	if err != nil {
		if errors.Is(err, ErrConversion) || errors.Is(err, ErrNoConverter) {
			return reflect.Value{}, err
		}
		return reflect.Value{}, fmt.Errorf("%w %#v to %s: %v", ErrConversion, value, target, err)
	}

	out := reflect.ValueOf(converted)
	if !out.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w %#v to %s: converter returned nil", ErrConversion, value, target)
	}
	if out.Type() != target {
		if !out.Type().ConvertibleTo(target) {
			return reflect.Value{}, fmt.Errorf("%w %#v to %s: converter returned %s", ErrConversion, value, target, out.Type())
		}
		out = out.Convert(target)
	}
	return out, nil
}

// Format renders value as text. Strings are returned verbatim.
func (r *Registry) Format(value any) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%w: nil to string", ErrConversion)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}

	c, ok := r.Lookup(reflect.TypeOf(value))
	if !ok {
		return "", fmt.Errorf("%w %T", ErrNoConverter, value)
	}
	return c.ToString(value)
}

// textConverter serves types implementing encoding.TextUnmarshaler.
type textConverter struct {
	t reflect.Type
}

func (c textConverter) FromValue(value any) (any, error) {
	text, err := textOf(value)
	if err != nil {
		return nil, err
	}
	ptr := reflect.New(c.t)
	if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
		return nil, fmt.Errorf("%w %q to %s: %v", ErrConversion, text, c.t, err)
	}
	return ptr.Elem().Interface(), nil
}

func (c textConverter) ToString(value any) (string, error) {
	if m, ok := value.(encoding.TextMarshaler); ok {
		b, err := m.MarshalText()
		if err != nil {
			return "", fmt.Errorf("%w %s to string: %v", ErrConversion, c.t, err)
		}
		return string(b), nil
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String(), nil
	}
	return "", fmt.Errorf("%w %s to string", ErrNoConverter, c.t)
}
