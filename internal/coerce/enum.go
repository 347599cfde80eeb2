package coerce

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Integer is the set of types an enumeration may be declared over.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// EnumConverter parses enumeration members by name (case-insensitive) or by
// their numeric value, and formats them back by name.
func EnumConverter[T Integer](names map[T]string) Converter {
	return enumConverter[T]{names: names}
}

// RegisterEnum installs an EnumConverter for T in r.
func RegisterEnum[T Integer](r *Registry, names map[T]string) {
	r.Register(reflect.TypeOf(T(0)), EnumConverter(names))
}

type enumConverter[T Integer] struct {
	names map[T]string
}

func (c enumConverter[T]) FromValue(value any) (any, error) {
	if v, ok := value.(T); ok {
		if _, known := c.names[v]; known {
			return v, nil
		}
		return nil, c.unknown(value)
	}

	if s, ok := value.(string); ok {
		for member, name := range c.names {
			if strings.EqualFold(name, s) {
				return member, nil
			}
		}
	}

	dec, err := decimalText(value)
	if err != nil {
		return nil, c.unknown(value)
	}
	n, err := cast.ToInt64E(dec)
	if err != nil {
		return nil, c.unknown(value)
	}
	member := T(n)
	if int64(member) != n {
		return nil, c.unknown(value)
	}
	if _, known := c.names[member]; !known {
		return nil, c.unknown(value)
	}
	return member, nil
}

func (c enumConverter[T]) ToString(value any) (string, error) {
	v, ok := value.(T)
	if !ok {
		return "", fmt.Errorf("%w %T to string as %s", ErrConversion, value, reflect.TypeOf(T(0)))
	}
	name, known := c.names[v]
	if !known {
		return "", fmt.Errorf("%w: %d is not a member of %s", ErrConversion, int64(v), reflect.TypeOf(T(0)))
	}
	return name, nil
}

func (c enumConverter[T]) unknown(value any) error {
	valid := make([]string, 0, len(c.names))
	for _, name := range c.names {
		valid = append(valid, name)
	}
	sort.Strings(valid)
	return fmt.Errorf("%w %#v to %s (valid: %s)", ErrConversion, value, reflect.TypeOf(T(0)), strings.Join(valid, ", "))
}
