package mirror

import (
	"reflect"

	"github.com/zoobzio/sentinel"
)

// mirrorTag is the struct tag key this engine understands on top of
// whatever sentinel already scans: `mirror:"name"` renames a field's
// envelope name, `mirror:"-"` excludes it (the Go analogue of the original
// spec's "non-serialized field" marker), matching zoobzio-cereal's
// practice of registering every compound tag it reads with sentinel.Tag so
// the scanner actually reports it.
const mirrorTag = "mirror"

func init() {
	sentinel.Tag(mirrorTag)
}

// scanStruct returns field metadata for rt, preferring sentinel's own
// lookup cache (populated by an Engine.Register[T] call via sentinel.Scan)
// and falling back to a manual reflect walk for struct types reached only
// at runtime recursion (nested field types never directly Registered),
// exactly mirroring zoobzio-cereal's processor.go scanNestedType fallback.
func scanStruct(rt reflect.Type) sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return spec
	}
	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{mirrorTag: sf.Tag.Get(mirrorTag)},
		}
		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}
		spec.Fields = append(spec.Fields, fm)
	}
	return spec
}

// fieldName resolves a field's envelope name: the `mirror:"name"` tag
// value if present and not "-", else the Go field name. excluded reports
// whether the field is marked `mirror:"-"` and must be skipped entirely.
func fieldName(fm sentinel.FieldMetadata) (name string, excluded bool) {
	tag := fm.Tags[mirrorTag]
	if tag == "-" {
		return "", true
	}
	if tag != "" {
		return tag, false
	}
	return fm.Name, false
}

// InheritanceDistance implements spec section 4.A: 0 for the same type, -1
// for unrelated types, else the number of hops via embedded struct fields
// ("base chain") or, for interface targets, a flat distance of 1 for any
// type implementing the interface, registered or not. Go's reflect package does not
// preserve interface embedding structure at runtime (the compiler flattens
// an embedded interface's method set into its embedder), so "cross-
// implementation distance" collapses to 1 here rather than 1+hop-count;
// this is documented in SPEC_FULL.md section 0 as a hard platform
// constraint, not an approximation of convenience.
func InheritanceDistance(base, derived reflect.Type) int {
	if base == derived {
		return 0
	}
	if base.Kind() == reflect.Interface {
		if derived.Implements(base) {
			return 1
		}
		return -1
	}
	return embeddedDistance(base, derived, 0)
}

// embeddedDistance walks derived's anonymous (embedded) fields looking for
// base, returning the hop count or -1 if base is not an ancestor.
func embeddedDistance(base, derived reflect.Type, depth int) int {
	if derived.Kind() == reflect.Ptr {
		derived = derived.Elem()
	}
	if derived.Kind() != reflect.Struct {
		return -1
	}
	for i := 0; i < derived.NumField(); i++ {
		sf := derived.Field(i)
		if !sf.Anonymous {
			continue
		}
		ft := sf.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft == base {
			return depth + 1
		}
		if d := embeddedDistance(base, ft, depth+1); d >= 0 {
			return d
		}
	}
	return -1
}

// IsCastable reports whether a value of type from may be used where a
// value of type to is expected: identity, direct assignability, or
// interface satisfaction (spec section 4.A).
func IsCastable(from, to reflect.Type) bool {
	if from == to {
		return true
	}
	if from.AssignableTo(to) {
		return true
	}
	if to.Kind() == reflect.Interface {
		return from.Implements(to)
	}
	return false
}

// createInstance implements the spec section 4.A create_instance policy,
// consulting the engine's enum and constructor registries. depth guards
// against runaway constructor-parameter recursion (an addition this engine
// makes over the original spec, which leaves that case caller-protected;
// see SPEC_FULL.md section 4.A+).
func (e *Engine) createInstance(rt reflect.Type, depth int) (reflect.Value, error) {
	if depth > e.maxDepth {
		return reflect.Value{}, errDepthExceeded(e.types.TypeID(rt), depth)
	}

	// 1. enum -> first declared value, else default.
	if e.enums.IsEnum(rt) {
		values := e.enums.Values(rt)
		v := reflect.New(rt).Elem()
		if len(values) > 0 {
			v.SetInt(values[0].value)
		}
		return v, nil
	}

	switch rt.Kind() {
	case reflect.String:
		return reflect.Zero(rt), nil
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.Array:
		return reflect.Zero(rt), nil
	case reflect.Slice:
		return reflect.MakeSlice(rt, 0, 0), nil
	case reflect.Interface:
		return reflect.Value{}, errCannotInstantiate(e.types.TypeID(rt), nil)
	case reflect.Ptr:
		elem, err := e.createInstance(rt.Elem(), depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(rt.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	case reflect.Map:
		return reflect.MakeMap(rt), nil
	}

	// 6. nullary constructor registered.
	if entry, ok := e.constructors.hasNullary(rt); ok {
		out := entry.fn.Call(nil)
		return firstResult(out)
	}

	// 7. first declared constructor with parameters, recursively
	// instantiating each parameter.
	if candidates := e.constructors.candidates(rt); len(candidates) > 0 {
		entry := candidates[0]
		ft := entry.fn.Type()
		args := make([]reflect.Value, ft.NumIn())
		for i := range args {
			arg, err := e.createInstance(ft.In(i), depth+1)
			if err != nil {
				return reflect.Value{}, errCannotInstantiate(e.types.TypeID(rt), err)
			}
			args[i] = arg
		}
		out := entry.fn.Call(args)
		return firstResult(out)
	}

	// 8. fallback: zero-allocate. Unlike the host runtime, Go's reflect.New
	// always succeeds for a concrete struct type, so CannotInstantiate here
	// is reachable only via the interface branch above.
	return reflect.New(rt).Elem(), nil
}

// firstResult extracts the primary return value from a constructor call,
// treating a trailing non-nil error return as a hard failure.
func firstResult(out []reflect.Value) (reflect.Value, error) {
	if len(out) == 2 && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}
	return out[0], nil
}
