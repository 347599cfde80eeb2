package consoletypes

import "reflect"

// Container is the default container marker. Embed it in a struct to make the
// struct's tagged fields discoverable:
//
//	type Cheats struct {
//		consoletypes.Container
//		Gravity  float64               `console:"sv_gravity,World gravity"`
//		Teleport func(x, y float64)    `console:"teleport" args:"x,y"`
//	}
type Container struct{}

// DefaultEntryTag is the default struct tag key that marks convars and concommands.
const DefaultEntryTag = "console"

// ArgsTag is the struct tag key carrying a command's parameter names and defaults.
const ArgsTag = "args"

// Property is a convar backed by accessor functions instead of a field.
// CanRead/CanWrite report false when the corresponding accessor is missing.
type Property interface {
	PropertyType() reflect.Type
	CanRead() bool
	CanWrite() bool
	Get() any
	Set(value any) error
}

// Prop is a typed Property built from a getter and a setter.
type Prop[T any] struct {
	Getter func() T
	Setter func(T) error
}

// NewProperty returns a property over the given accessors. Either may be nil,
// which makes the property unregistrable.
func NewProperty[T any](get func() T, set func(T) error) *Prop[T] {
	return &Prop[T]{Getter: get, Setter: set}
}

// PropertyType returns the declared type T.
func (p *Prop[T]) PropertyType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// CanRead reports whether a getter is set.
func (p *Prop[T]) CanRead() bool { return p != nil && p.Getter != nil }

// CanWrite reports whether a setter is set.
func (p *Prop[T]) CanWrite() bool { return p != nil && p.Setter != nil }

// Get calls the getter.
func (p *Prop[T]) Get() any { return p.Getter() }

// Set calls the setter. The value must already be of type T.
func (p *Prop[T]) Set(value any) error {
	v, ok := value.(T)
	if !ok {
		return &PropertyTypeError{Want: p.PropertyType(), Got: reflect.TypeOf(value)}
	}
	return p.Setter(v)
}

// PropertyTypeError is returned when a property receives a value of the wrong type.
type PropertyTypeError struct {
	Want reflect.Type
	Got  reflect.Type
}

func (e *PropertyTypeError) Error() string {
	return "property expects " + typeName(e.Want) + ", got " + typeName(e.Got)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
