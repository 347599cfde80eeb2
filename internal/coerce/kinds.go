package coerce

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var durationType = reflect.TypeOf(time.Duration(0))

func supportsKind(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// kindConverter covers the primitive kinds, including named types built on them.
type kindConverter struct {
	t reflect.Type
}

func (c kindConverter) FromValue(value any) (any, error) {
	out := reflect.New(c.t).Elem()

	if c.t == durationType {
		d, err := cast.ToDurationE(value)
		if err != nil {
			return nil, c.fail(value, err)
		}
		out.SetInt(int64(d))
		return out.Interface(), nil
	}

	switch c.t.Kind() {
	case reflect.Bool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return nil, c.fail(value, err)
		}
		out.SetBool(b)

	case reflect.String:
		s, err := textOf(value)
		if err != nil {
			return nil, c.fail(value, err)
		}
		out.SetString(s)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if err := rejectFraction(value); err != nil {
			return nil, c.fail(value, err)
		}
		dec, err := decimalText(value)
		if err != nil {
			return nil, c.fail(value, err)
		}
		n, err := cast.ToInt64E(dec)
		if err != nil {
			return nil, c.fail(value, err)
		}
		if out.OverflowInt(n) {
			return nil, c.fail(value, fmt.Errorf("%d overflows %s", n, c.t))
		}
		out.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if err := rejectFraction(value); err != nil {
			return nil, c.fail(value, err)
		}
		dec, err := decimalText(value)
		if err != nil {
			return nil, c.fail(value, err)
		}
		n, err := cast.ToUint64E(dec)
		if err != nil {
			return nil, c.fail(value, err)
		}
		if out.OverflowUint(n) {
			return nil, c.fail(value, fmt.Errorf("%d overflows %s", n, c.t))
		}
		out.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return nil, c.fail(value, err)
		}
		if out.OverflowFloat(f) {
			return nil, c.fail(value, fmt.Errorf("%g overflows %s", f, c.t))
		}
		out.SetFloat(f)

	default:
		return nil, fmt.Errorf("%w %s", ErrNoConverter, c.t)
	}

	return out.Interface(), nil
}

func (c kindConverter) ToString(value any) (string, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Type() != c.t {
		return "", fmt.Errorf("%w %T to string as %s", ErrConversion, value, c.t)
	}

	if c.t == durationType {
		return time.Duration(rv.Int()).String(), nil
	}
	// Named types are formatted by their underlying value so the text parses back.
	var base any
	switch c.t.Kind() {
	case reflect.Bool:
		base = rv.Bool()
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		base = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		base = rv.Uint()
	case reflect.Float32:
		base = float32(rv.Float())
	case reflect.Float64:
		base = rv.Float()
	default:
		return "", fmt.Errorf("%w %s", ErrNoConverter, c.t)
	}

	s, err := cast.ToStringE(base)
	if err != nil {
		return "", fmt.Errorf("%w %s to string: %v", ErrConversion, c.t, err)
	}
	return s, nil
}

func (c kindConverter) fail(value any, err error) error {
	return fmt.Errorf("%w %#v to %s: %v", ErrConversion, value, c.t, err)
}

// rejectFraction stops cast from silently truncating 1.5 to 1.
func rejectFraction(value any) error {
	var f float64
	switch v := value.(type) {
	case float32:
		f = float64(v)
	case float64:
		f = v
	default:
		return nil
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("%g is not a whole number", f)
	}
	return nil
}

// decimalText makes integer text base 10 before it reaches cast, which would
// otherwise read "010" as octal and accept "0x10". Leading zeros are dropped;
// base prefixes and digit separators are rejected. Non-string values pass through.
func decimalText(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}

	text := strings.TrimSpace(s)
	sign := ""
	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
		sign, text = text[:1], text[1:]
	}
	if strings.Contains(text, "_") {
		return nil, fmt.Errorf("%q is not a decimal integer", s)
	}
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X', 'b', 'B', 'o', 'O':
			return nil, fmt.Errorf("%q is not a decimal integer", s)
		}
	}
	if trimmed := strings.TrimLeft(text, "0"); trimmed != text {
		text = trimmed
		if text == "" || text[0] == '.' {
			text = "0" + text
		}
	}
	return sign + text, nil
}

// textOf returns the textual form of console input.
func textOf(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", fmt.Errorf("%w %T to string: %v", ErrConversion, value, err)
	}
	return s, nil
}
