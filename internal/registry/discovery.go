package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"devconsole/internal/coerce"
	"devconsole/internal/descriptor"
	"devconsole/pkg/consoletypes"
)

// Module is the set of values handed over for discovery. Go cannot enumerate a
// package's types at run time, so the host lists its containers explicitly.
type Module []any

// ErrInvalidMarker is returned when a marker cannot identify containers or entries.
var ErrInvalidMarker = errors.New("invalid marker")

var propertyType = reflect.TypeOf((*consoletypes.Property)(nil)).Elem()

// Discoverer registers tagged container fields into a Registry.
type Discoverer struct {
	reg  *Registry
	conv *coerce.Registry
	host consoletypes.HostLogger
}

// NewDiscoverer creates a discoverer writing into reg. Command defaults are
// converted with conv; soft failures are reported to host.
func NewDiscoverer(reg *Registry, conv *coerce.Registry, host consoletypes.HostLogger) *Discoverer {
	if host == nil {
		host = consoletypes.DiscardHost
	}
	return &Discoverer{reg: reg, conv: conv, host: host}
}

// ValidateMarkers checks that containerMarker is a zero-field struct type and
// that entryTag is a usable struct tag key.
func ValidateMarkers(containerMarker reflect.Type, entryTag string) error {
	if containerMarker == nil || containerMarker.Kind() != reflect.Struct || containerMarker.NumField() != 0 {
		return fmt.Errorf("%w: container marker must be an empty struct type, got %v", ErrInvalidMarker, containerMarker)
	}
	if entryTag == "" || entryTag == consoletypes.ArgsTag {
		return fmt.Errorf("%w: entry tag %q", ErrInvalidMarker, entryTag)
	}
	for _, c := range entryTag {
		if c <= ' ' || c == ':' || c == '"' || c == 0x7f {
			return fmt.Errorf("%w: entry tag %q contains %q", ErrInvalidMarker, entryTag, c)
		}
	}
	return nil
}

// LoadAttributes registers every tagged field of every container in source.
// Containers are structs embedding containerMarker; entries are fields carrying
// the entryTag struct tag. It returns false when the markers are invalid, or when
// a container could not be scanned; valid containers are registered regardless.
func (d *Discoverer) LoadAttributes(source Module, containerMarker reflect.Type, entryTag string) bool {
	if err := ValidateMarkers(containerMarker, entryTag); err != nil {
		d.host.WriteLine(fmt.Sprintf("LoadAttributes called with non-conforming markers: %v", err), consoletypes.HostError)
		return false
	}

	ok := true
	for _, item := range source {
		if item == nil {
			continue
		}

		rv := reflect.ValueOf(item)
		st := rv.Type()
		if st.Kind() == reflect.Pointer {
			st = st.Elem()
		}
		if st.Kind() != reflect.Struct || !embeds(st, containerMarker) {
			continue
		}

		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			d.host.WriteLine(fmt.Sprintf("Container %s must be passed as a non-nil pointer", st), consoletypes.HostWarning)
			ok = false
			continue
		}

		d.scan(rv.Elem(), entryTag)
	}
	return ok
}

func (d *Discoverer) scan(sv reflect.Value, entryTag string) {
	st := sv.Type()

	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		tag, tagged := f.Tag.Lookup(entryTag)
		if !tagged {
			continue
		}

		markers := parseMarkers(tag)
		if len(markers) == 0 {
			d.warn("Console tag without a name on %s.%s", st.Name(), f.Name)
			continue
		}
		if !f.IsExported() {
			d.warn("Console tag used on immutable field %s.%s", st.Name(), f.Name)
			continue
		}

		fv := sv.Field(i)
		switch {
		case f.Type.Kind() == reflect.Func:
			d.addCommand(st, f, fv, markers)
		case f.Type.Implements(propertyType):
			d.addProperty(st, f, fv, markers)
		default:
			d.addField(st, f, fv, markers)
		}
	}
}

func (d *Discoverer) addField(st reflect.Type, f reflect.StructField, fv reflect.Value, markers []marker) {
	v, err := descriptor.NewFieldValue(markers[0].name, markers[0].info, fv)
	if err != nil {
		d.warn("Console tag used on immutable field %s.%s: %v", st.Name(), f.Name, err)
		return
	}
	for _, m := range markers {
		d.reg.RegisterValue(v.Alias(m.name, m.info))
	}
}

func (d *Discoverer) addProperty(st reflect.Type, f reflect.StructField, fv reflect.Value, markers []marker) {
	prop, _ := fv.Interface().(consoletypes.Property)
	v, err := descriptor.NewPropertyValue(markers[0].name, markers[0].info, prop)
	if err != nil {
		d.warn("Console tag used on immutable/inaccessible property %s.%s: %v", st.Name(), f.Name, err)
		return
	}
	for _, m := range markers {
		d.reg.RegisterValue(v.Alias(m.name, m.info))
	}
}

func (d *Discoverer) addCommand(st reflect.Type, f reflect.StructField, fv reflect.Value, markers []marker) {
	c, err := descriptor.NewCommand(markers[0].name, markers[0].info, fv, f.Tag.Get(consoletypes.ArgsTag), d.conv)
	if err != nil {
		d.warn("Console tag used on unusable command %s.%s: %v", st.Name(), f.Name, err)
		return
	}
	for _, m := range markers {
		d.reg.RegisterCommand(c.Alias(m.name, m.info))
	}
}

func (d *Discoverer) warn(format string, args ...any) {
	d.host.WriteLine(fmt.Sprintf(format, args...), consoletypes.HostWarning)
}

func embeds(st, marker reflect.Type) bool {
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.Anonymous && f.Type == marker {
			return true
		}
	}
	return false
}

// marker is one entry-marker instance: a public name plus optional info.
type marker struct {
	name string
	info string
}

// parseMarkers splits `name[,info][;name[,info]...]`. Instances with an empty
// name are dropped.
func parseMarkers(tag string) []marker {
	var out []marker
	for _, part := range strings.Split(tag, ";") {
		name, info, _ := strings.Cut(part, ",")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, marker{name: name, info: strings.TrimSpace(info)})
	}
	return out
}
