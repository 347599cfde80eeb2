// Package descriptor wraps the storage behind a convar and the function behind a
// concommand in uniform accessors. Descriptors never own the storage they point at.
package descriptor

import (
	"fmt"
	"reflect"
	"runtime/debug"

	"devconsole/pkg/consoletypes"
)

// Value is the accessor for one convar.
type Value struct {
	name string
	info string
	typ  reflect.Type
	get  func() any
	set  func(reflect.Value) error
}

// NewFieldValue wraps a settable struct field (or any addressable variable).
func NewFieldValue(name, info string, field reflect.Value) (*Value, error) {
	if !field.IsValid() {
		return nil, fmt.Errorf("convar %q: invalid storage", name)
	}
	if !field.CanSet() {
		return nil, fmt.Errorf("convar %q: storage of type %s is not settable", name, field.Type())
	}
	if field.Kind() == reflect.Func {
		return nil, fmt.Errorf("convar %q: func storage belongs to a command", name)
	}

	return &Value{
		name: name,
		info: info,
		typ:  field.Type(),
		get:  func() any { return field.Interface() },
		set: func(v reflect.Value) error {
			field.Set(v)
			return nil
		},
	}, nil
}

// NewPointerValue wraps the variable ptr points at.
func NewPointerValue(name, info string, ptr any) (*Value, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("convar %q: expected a non-nil pointer, got %T", name, ptr)
	}
	return NewFieldValue(name, info, rv.Elem())
}

// NewPropertyValue wraps accessor-backed storage. Read-only and write-only
// properties are rejected.
func NewPropertyValue(name, info string, prop consoletypes.Property) (*Value, error) {
	if prop == nil {
		return nil, fmt.Errorf("convar %q: nil property", name)
	}
	if rv := reflect.ValueOf(prop); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, fmt.Errorf("convar %q: nil property", name)
	}
	if !prop.CanRead() || !prop.CanWrite() {
		return nil, fmt.Errorf("convar %q: property must be readable and writable", name)
	}

	return &Value{
		name: name,
		info: info,
		typ:  prop.PropertyType(),
		get:  prop.Get,
		set: func(v reflect.Value) error {
			return prop.Set(v.Interface())
		},
	}, nil
}

// Alias returns a descriptor sharing v's storage under another name.
func (v *Value) Alias(name, info string) *Value {
	alias := *v
	alias.name = name
	alias.info = info
	return &alias
}

// Name returns the registered name.
func (v *Value) Name() string { return v.name }

// Info returns the optional description.
func (v *Value) Info() string { return v.info }

// Type returns the declared type. It never changes after construction.
func (v *Value) Type() reflect.Type { return v.typ }

// Get reads the current value. Panics raised by the storage are returned as errors.
func (v *Value) Get() (value any, err error) {
	defer recoverInto(&err, v.name)
	return v.get(), nil
}

// Set writes val, which must already be of the declared type.
func (v *Value) Set(val reflect.Value) (err error) {
	if !val.IsValid() {
		return fmt.Errorf("convar %q: invalid value", v.name)
	}
	if val.Type() != v.typ {
		if !val.Type().AssignableTo(v.typ) {
			return fmt.Errorf("convar %q: cannot assign %s to %s", v.name, val.Type(), v.typ)
		}
	}
	defer recoverInto(&err, v.name)
	return v.set(val)
}

// PanicError carries a panic caught at a descriptor boundary.
type PanicError struct {
	Entry string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: panic: %v", e.Entry, e.Value)
}

func recoverInto(err *error, entry string) {
	if r := recover(); r != nil {
		*err = &PanicError{Entry: entry, Value: r, Stack: debug.Stack()}
	}
}
