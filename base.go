package mirror

import (
	"fmt"
	"reflect"

	"github.com/zoobzio/sentinel"
)

// genericStructConverter is the engine's base converter template (spec
// section 4.D): the fallback handler for any struct type that has no more
// specific registered Converter. It is registered with a low, constant
// priority so any converter a caller registers for a concrete struct type
// outranks it via the normal ConverterPriority formula (an exact-match
// registration scores MaxDepth+1, far above this converter's floor).
//
// Every other converter in this engine (leaf, collection, tuple) handles a
// scalar or container shape through valueJsonElement; this is the one that
// walks fields and properties, which is why "base template" in the
// original spec and "struct converter" here are the same component.
type genericStructConverter struct{}

func (genericStructConverter) Priority(rt reflect.Type) int {
	t := rt
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		return 1
	}
	return 0
}

func (genericStructConverter) Cascade() bool { return true }

// Serialize implements spec section 4.D serialize steps 5-6: enumerate
// fields (excluding deprecated/excluded) and properties (excluding
// deprecated), recursively serialize each surviving member, and tolerate a
// throwing ("panicking") getter by omitting the member and recording a
// GetterRaised diagnostic instead of aborting the call.
func (genericStructConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	rt := v.Type()
	structVal := v
	if rt.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nullEnvelope(name, cc.eng.types.TypeID(rt)), nil
		}
		structVal = v.Elem()
		rt = structVal.Type()
	}
	if depth > cc.eng.maxDepth {
		return SerializedMember{}, errDepthExceeded(cc.eng.types.TypeID(rt), depth)
	}

	typeID := cc.eng.types.TypeID(rt)
	out := SerializedMember{Name: name, TypeName: typeID}

	spec := scanStruct(rt)
	for _, fm := range spec.Fields {
		fieldNm, excluded := fieldName(fm)
		if excluded {
			continue
		}
		if cc.eng.deprecated.IsDeprecated(rt, fm.Name) {
			continue
		}
		fv, ok := safeFieldByIndex(structVal, fm.Index)
		if !ok {
			continue
		}
		child, err := cc.eng.serialize(cc, fv, fv.Type(), fieldNm, depth+1)
		if err != nil {
			if de, ok := err.(*EngineError); ok && de.Kind == KindDepthExceeded {
				return SerializedMember{}, err
			}
			cc.diags.getterRaised(typeID, fieldNm, err)
			continue
		}
		out.Fields = append(out.Fields, child)
	}

	for _, acc := range cc.eng.accessors.Properties(rt) {
		if cc.eng.deprecated.IsDeprecated(rt, acc.name) {
			continue
		}
		pv, err := callGetter(v, acc.getter)
		if err != nil {
			cc.diags.getterRaised(typeID, acc.name, err)
			continue
		}
		child, err := cc.eng.serialize(cc, pv, pv.Type(), acc.name, depth+1)
		if err != nil {
			cc.diags.getterRaised(typeID, acc.name, err)
			continue
		}
		out.Props = append(out.Props, child)
	}

	return out, nil
}

// Deserialize implements spec section 4.D deserialize step 4 for the
// struct family: materialize a fresh instance via CreateInstance. The
// field/property assignment that follows (steps 4-5) is centralized in
// Engine.deserialize, since it depends only on what the envelope actually
// carries, not on which converter produced the value.
func (genericStructConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	target := rt
	ptr := false
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
		ptr = true
	}
	if target.Kind() != reflect.Struct {
		return reflect.Value{}, errCannotInstantiate(cc.eng.types.TypeID(rt), fmt.Errorf("no converter registered for %s", cc.eng.types.TypeID(rt)))
	}
	v, err := cc.eng.createInstance(target, depth)
	if err != nil {
		return reflect.Value{}, err
	}
	if ptr {
		p := reflect.New(target)
		p.Elem().Set(v)
		return p, nil
	}
	return v, nil
}

// safeFieldByIndex navigates a sentinel field index path, returning false
// if an intermediate pointer is nil (so the field is simply omitted,
// matching the spec's tolerance for absent optional data rather than
// raising an error).
func safeFieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	cur := v
	for i, idx := range index {
		if cur.Kind() == reflect.Ptr {
			if cur.IsNil() {
				return reflect.Value{}, false
			}
			cur = cur.Elem()
		}
		if i >= 0 {
			cur = cur.Field(idx)
		}
	}
	return cur, true
}

// callGetter invokes a zero-argument accessor method by name, recovering
// from a panic and returning it as an error so the caller can record a
// GetterRaised diagnostic instead of crashing (spec section 4.D,
// "Getter-exception policy").
func callGetter(v reflect.Value, method string) (result reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	m := v.MethodByName(method)
	if !m.IsValid() && v.Kind() != reflect.Ptr && v.CanAddr() {
		m = v.Addr().MethodByName(method)
	}
	if !m.IsValid() {
		return reflect.Value{}, fmt.Errorf("no such method %s", method)
	}
	out := m.Call(nil)
	switch len(out) {
	case 1:
		return out[0], nil
	case 2:
		if !out[1].IsNil() {
			return reflect.Value{}, out[1].Interface().(error)
		}
		return out[0], nil
	default:
		return reflect.Value{}, fmt.Errorf("getter %s has unsupported signature", method)
	}
}

// callSetter invokes a one-argument mutator method by name.
func callSetter(v reflect.Value, method string, arg reflect.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	target := v
	if target.Kind() != reflect.Ptr && target.CanAddr() {
		target = target.Addr()
	}
	m := target.MethodByName(method)
	if !m.IsValid() {
		return fmt.Errorf("no such method %s", method)
	}
	in := m.Type().In(0)
	if !arg.Type().AssignableTo(in) {
		if arg.Type().ConvertibleTo(in) {
			arg = arg.Convert(in)
		} else {
			return fmt.Errorf("argument type %s not assignable to %s", arg.Type(), in)
		}
	}
	out := m.Call([]reflect.Value{arg})
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

// assignFieldsDeserialize implements spec section 4.D deserialize step 5
// for fields: locate each named field (case-sensitive) and recursively
// deserialize into it. A missing field emits UnsupportedMember as a
// warning, never a hard error.
func (e *Engine) assignFieldsDeserialize(cc *callContext, structVal reflect.Value, rt reflect.Type, fields []SerializedMember, depth int) {
	spec := scanStruct(rt)
	byName := make(map[string]sentinel.FieldMetadata, len(spec.Fields))
	names := make([]string, 0, len(spec.Fields))
	for _, fm := range spec.Fields {
		nm, excluded := fieldName(fm)
		if excluded {
			continue
		}
		byName[nm] = fm
		names = append(names, nm)
	}

	for _, childEnv := range fields {
		fm, ok := byName[childEnv.Name]
		if !ok {
			cc.diags.unsupportedMember(e.types.TypeID(rt), childEnv.Name, fmt.Sprintf("available: %v", names))
			continue
		}
		fv, ok := safeFieldByIndex(structVal, fm.Index)
		if !ok || !fv.CanSet() {
			cc.diags.unsupportedMember(e.types.TypeID(rt), childEnv.Name, "field not settable")
			continue
		}
		val, err := e.deserialize(cc, childEnv, fv.Type(), depth+1)
		if err != nil {
			cc.diags.unsupportedMember(e.types.TypeID(rt), childEnv.Name, err.Error())
			continue
		}
		assignValue(fv, val)
	}
}

// assignPropsDeserialize mirrors assignFieldsDeserialize for properties,
// using registered setters; a read-only property (no registered setter)
// is diagnosed rather than silently dropped, surfacing the reference-tuple
// style asymmetry documented in SPEC_FULL.md section 4.F.
func (e *Engine) assignPropsDeserialize(cc *callContext, v reflect.Value, rt reflect.Type, props []SerializedMember, depth int) {
	accByName := make(map[string]accessor)
	for _, acc := range e.accessors.Properties(rt) {
		accByName[acc.name] = acc
	}

	for _, childEnv := range props {
		acc, ok := accByName[childEnv.Name]
		if !ok {
			cc.diags.unsupportedMember(e.types.TypeID(rt), childEnv.Name, "no such property")
			continue
		}
		if acc.setter == "" {
			cc.diags.unsupportedMember(e.types.TypeID(rt), childEnv.Name, "read-only property")
			continue
		}
		getterType := v.MethodByName(acc.getter)
		var propType reflect.Type
		if getterType.IsValid() && getterType.Type().NumOut() > 0 {
			propType = getterType.Type().Out(0)
		}
		val, err := e.deserialize(cc, childEnv, propType, depth+1)
		if err != nil {
			cc.diags.unsupportedMember(e.types.TypeID(rt), childEnv.Name, err.Error())
			continue
		}
		if err := callSetter(v, acc.setter, val); err != nil {
			cc.diags.unsupportedMember(e.types.TypeID(rt), childEnv.Name, err.Error())
		}
	}
}

// assignValue assigns src into dst, converting between identical
// underlying kinds when dst is a named/aliased variant (e.g. a registered
// enum backed by int32 receiving a plain int32 value).
func assignValue(dst reflect.Value, src reflect.Value) {
	if !src.IsValid() {
		return
	}
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return
	}
	if src.Type().ConvertibleTo(dst.Type()) {
		dst.Set(src.Convert(dst.Type()))
	}
}
