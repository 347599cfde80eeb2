package descriptor

import (
	"fmt"
	"reflect"
	"strings"

	"devconsole/internal/coerce"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Param is one formal parameter of a command.
type Param struct {
	Name       string
	Type       reflect.Type
	Position   int
	HasDefault bool
	Default    reflect.Value
}

// Command is the accessor for one concommand backed by a Go func.
type Command struct {
	name     string
	info     string
	fn       reflect.Value
	params   []Param
	required int
}

// NewCommand wraps fn. args names the parameters in order, each either "name" or
// "name=default"; unnamed parameters become argN. Defaults are converted to the
// parameter type with conv and must form a trailing run.
func NewCommand(name, info string, fn reflect.Value, args string, conv *coerce.Registry) (*Command, error) {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("command %q: expected a func", name)
	}
	if fn.IsNil() {
		return nil, fmt.Errorf("command %q: nil func", name)
	}

	ft := fn.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("command %q: variadic funcs are not supported", name)
	}

	specs, err := parseArgSpecs(args)
	if err != nil {
		return nil, fmt.Errorf("command %q: %w", name, err)
	}
	if len(specs) > ft.NumIn() {
		return nil, fmt.Errorf("command %q: %d parameter names given for %d parameters", name, len(specs), ft.NumIn())
	}

	cmd := &Command{
		name:   name,
		info:   info,
		fn:     fn,
		params: make([]Param, ft.NumIn()),
	}

	for i := 0; i < ft.NumIn(); i++ {
		p := Param{
			Name:     fmt.Sprintf("arg%d", i),
			Type:     ft.In(i),
			Position: i,
		}
		if i < len(specs) {
			if specs[i].name != "" {
				p.Name = specs[i].name
			}
			if specs[i].hasDefault {
				def, err := conv.Convert(specs[i].defaultText, p.Type)
				if err != nil {
					return nil, fmt.Errorf("command %q: default for %s: %w", name, p.Name, err)
				}
				p.HasDefault = true
				p.Default = def
			}
		}
		if !p.HasDefault {
			if i > 0 && cmd.params[i-1].HasDefault {
				return nil, fmt.Errorf("command %q: parameter %s without default follows an optional parameter", name, p.Name)
			}
			cmd.required++
		}
		cmd.params[i] = p
	}

	return cmd, nil
}

// Alias returns a descriptor sharing c's func under another name.
func (c *Command) Alias(name, info string) *Command {
	alias := *c
	alias.name = name
	alias.info = info
	return &alias
}

// Name returns the registered name.
func (c *Command) Name() string { return c.name }

// Info returns the optional description.
func (c *Command) Info() string { return c.info }

// Params returns the ordered parameter schema.
func (c *Command) Params() []Param {
	out := make([]Param, len(c.params))
	copy(out, c.params)
	return out
}

// RequiredArgs is the number of parameters without a default.
func (c *Command) RequiredArgs() int { return c.required }

// MaxArgs is the total number of parameters.
func (c *Command) MaxArgs() int { return len(c.params) }

// AcceptsArgCount reports whether given arguments fit the arity range.
func (c *Command) AcceptsArgCount(given int) bool {
	return given >= c.required && given <= len(c.params)
}

// BindArgs coerces args positionally and fills the remaining parameters with
// their defaults.
func (c *Command) BindArgs(args []any, conv *coerce.Registry) ([]reflect.Value, error) {
	if !c.AcceptsArgCount(len(args)) {
		return nil, fmt.Errorf("command %q: %d arguments outside %d..%d", c.name, len(args), c.required, len(c.params))
	}

	bound := make([]reflect.Value, len(c.params))
	for i, arg := range args {
		v, err := conv.Convert(arg, c.params[i].Type)
		if err != nil {
			return nil, fmt.Errorf("command %q: argument %s: %w", c.name, c.params[i].Name, err)
		}
		bound[i] = v
	}
	for i := len(args); i < len(c.params); i++ {
		bound[i] = c.params[i].Default
	}
	return bound, nil
}

// Invoke calls the func. A trailing non-nil error result and any panic are
// returned as errors.
func (c *Command) Invoke(args []reflect.Value) (err error) {
	if len(args) != len(c.params) {
		return fmt.Errorf("command %q: expected %d bound arguments, got %d", c.name, len(c.params), len(args))
	}

	defer recoverInto(&err, c.name)
	out := c.fn.Call(args)

	if n := len(out); n > 0 && c.fn.Type().Out(n-1).Implements(errorType) {
		if e, ok := out[n-1].Interface().(error); ok && e != nil {
			return e
		}
	}
	return nil
}

// Signature renders the parameter list as "type name, type name".
func (c *Command) Signature() string {
	parts := make([]string, len(c.params))
	for i, p := range c.params {
		parts[i] = p.Type.String() + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

type argSpec struct {
	name        string
	hasDefault  bool
	defaultText string
}

func parseArgSpecs(args string) ([]argSpec, error) {
	if strings.TrimSpace(args) == "" {
		return nil, nil
	}

	var specs []argSpec
	for _, raw := range strings.Split(args, ",") {
		name, def, hasDefault := strings.Cut(raw, "=")
		name = strings.TrimSpace(name)
		if strings.ContainsAny(name, " \t") {
			return nil, fmt.Errorf("invalid parameter name %q", name)
		}
		specs = append(specs, argSpec{
			name:        name,
			hasDefault:  hasDefault,
			defaultText: strings.TrimSpace(def),
		})
	}
	return specs, nil
}
