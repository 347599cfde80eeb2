package consoletypes

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStrings(t *testing.T) {
	assert.Equal(t, "Success", ValueSuccess.String())
	assert.Equal(t, "UnknownValue", UnknownValue.String())
	assert.Equal(t, "InvalidValue", InvalidValue.String())
	assert.Equal(t, "ValueResult(?)", ValueResult(9).String())

	assert.Equal(t, "Success", CommandSuccess.String())
	assert.Equal(t, "UnknownCommand", UnknownCommand.String())
	assert.Equal(t, "InvalidArgCount", InvalidArgCount.String())
	assert.Equal(t, "InvalidArgs", InvalidArgs.String())
	assert.Equal(t, "RunCommandResult(?)", RunCommandResult(-1).String())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input  string
		want   Severity
		wantOK bool
	}{
		{"message", SeverityMessage, true},
		{"Light", SeverityLight, true},
		{"WARNING", SeverityWarning, true},
		{"error", SeverityError, true},
		{"fatal", SeverityMessage, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSeverity(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "Severity(?)", Severity(7).String())
}

func TestProp(t *testing.T) {
	var stored int
	p := NewProperty(func() int { return stored }, func(n int) error {
		if n < 0 {
			return errors.New("negative")
		}
		stored = n
		return nil
	})

	assert.Equal(t, reflect.TypeOf(0), p.PropertyType())
	assert.True(t, p.CanRead())
	assert.True(t, p.CanWrite())

	require.NoError(t, p.Set(4))
	assert.Equal(t, 4, p.Get())
	assert.EqualError(t, p.Set(-1), "negative")

	err := p.Set("4")
	var typeErr *PropertyTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "property expects int, got string", err.Error())
	assert.Equal(t, "property expects int, got nil", p.Set(nil).Error())
}

func TestProp_MissingAccessors(t *testing.T) {
	readOnly := NewProperty(func() bool { return true }, nil)
	assert.True(t, readOnly.CanRead())
	assert.False(t, readOnly.CanWrite())

	var nilProp *Prop[string]
	assert.False(t, nilProp.CanRead())
	assert.False(t, nilProp.CanWrite())
}

func TestHostLoggerFunc(t *testing.T) {
	var got []string
	var h HostLogger = HostLoggerFunc(func(message string, level HostLevel) {
		if level == HostWarning {
			got = append(got, message)
		}
	})

	h.WriteLine("kept", HostWarning)
	h.WriteLine("dropped", HostDebug)
	DiscardHost.WriteLine("ignored", HostError)

	assert.Equal(t, []string{"kept"}, got)
}
