package console

import (
	"fmt"
	"reflect"

	"devconsole/pkg/consoletypes"
)

// GetValue reads the convar called name.
func (c *Console) GetValue(name string, silent bool) (consoletypes.ValueResult, any) {
	v, ok := c.reg.Value(name)
	if !ok {
		c.logUnless(silent, fmt.Sprintf("Unknown variable: \"%s\"", name), consoletypes.SeverityError)
		return consoletypes.UnknownValue, nil
	}

	value, err := v.Get()
	if err != nil {
		c.reportFault(fmt.Sprintf("get %q", name), err)
		c.logUnless(silent, fmt.Sprintf("An error occurred in getting the value of: \"%s\"", name), consoletypes.SeverityError)
		return consoletypes.InvalidValue, nil
	}
	return consoletypes.ValueSuccess, value
}

// GetStringValue reads the convar called name and formats it. String values
// are returned verbatim.
func (c *Console) GetStringValue(name string, silent bool) (consoletypes.ValueResult, string) {
	res, value := c.GetValue(name, silent)
	if res != consoletypes.ValueSuccess {
		return res, ""
	}

	if rv := reflect.ValueOf(value); rv.IsValid() && rv.Kind() == reflect.String {
		return consoletypes.ValueSuccess, rv.String()
	}

	s, err := c.conv.Format(value)
	if err != nil {
		c.reportFault(fmt.Sprintf("format %q", name), err)
		c.logUnless(silent, fmt.Sprintf("An error occurred in getting the value of: \"%s\"", name), consoletypes.SeverityError)
		return consoletypes.InvalidValue, ""
	}
	return consoletypes.ValueSuccess, s
}

// SetValue coerces value to the convar's declared type and stores it.
func (c *Console) SetValue(name string, value any, silent bool) consoletypes.ValueResult {
	v, ok := c.reg.Value(name)
	if !ok {
		c.logUnless(silent, fmt.Sprintf("Unknown variable: \"%s\"", name), consoletypes.SeverityError)
		return consoletypes.UnknownValue
	}

	converted, err := c.conv.Convert(value, v.Type())
	if err == nil {
		err = v.Set(converted)
	}
	if err != nil {
		c.reportFault(fmt.Sprintf("set %q", name), err)
		c.logUnless(silent, fmt.Sprintf("An error occurred in setting: \"%s\"", name), consoletypes.SeverityError)
		return consoletypes.InvalidValue
	}
	return consoletypes.ValueSuccess
}
