package mirror

import (
	"encoding/json"
	"fmt"
	"reflect"
)

var (
	typeHandleType        = reflect.TypeOf(TypeHandle{})
	fieldHandleType       = reflect.TypeOf(FieldHandle{})
	propertyHandleType    = reflect.TypeOf(PropertyHandle{})
	methodHandleType      = reflect.TypeOf(MethodHandle{})
	constructorHandleType = reflect.TypeOf(ConstructorHandle{})
	parameterHandleType   = reflect.TypeOf(ParameterHandle{})
)

// resolveDeclaringType looks up name in the engine's TypeRegistry, the
// shared first step of every reflection-handle converter below (spec
// section 4.E: "missing declaringType -> error").
func resolveDeclaringType(e *Engine, name string) (reflect.Type, error) {
	if name == "" {
		return nil, errUnknownType("")
	}
	rt, ok := e.types.TypeOf(name)
	if !ok {
		return nil, errUnknownType(name)
	}
	return rt, nil
}

// typeHandleConverter resolves TypeHandle against the TypeRegistry (spec
// section 4.E, "Reflection handles": type).
type typeHandleConverter struct{}

func (typeHandleConverter) Priority(rt reflect.Type) int { return ConverterPriority(typeHandleType, rt) }
func (typeHandleConverter) Cascade() bool                { return true }

func (typeHandleConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	h := v.Interface().(TypeHandle)
	if _, err := resolveDeclaringType(cc.eng, h.TypeName); err != nil {
		return SerializedMember{}, err
	}
	raw, err := json.Marshal(h)
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(typeHandleType), raw), nil
}

func (typeHandleConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var h TypeHandle
	if err := json.Unmarshal(env.ValueJSON, &h); err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	if _, err := resolveDeclaringType(cc.eng, h.TypeName); err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(h), nil
}

// fieldHandleConverter resolves FieldHandle against the declaring type's
// exported fields (spec section 4.E, "Reflection handles": field).
type fieldHandleConverter struct{}

func (fieldHandleConverter) Priority(rt reflect.Type) int { return ConverterPriority(fieldHandleType, rt) }
func (fieldHandleConverter) Cascade() bool                { return true }

func (fieldHandleConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	h := v.Interface().(FieldHandle)
	if err := resolveField(cc.eng, h); err != nil {
		return SerializedMember{}, err
	}
	raw, err := json.Marshal(h)
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(fieldHandleType), raw), nil
}

func (fieldHandleConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var h FieldHandle
	if err := json.Unmarshal(env.ValueJSON, &h); err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	if err := resolveField(cc.eng, h); err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(h), nil
}

func resolveField(e *Engine, h FieldHandle) error {
	declType, err := resolveDeclaringType(e, h.TypeName)
	if err != nil {
		return err
	}
	t := declType
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return errMethodResolution(h.FieldName, fmt.Errorf("%s is not a struct", h.TypeName))
	}
	sf, ok := t.FieldByName(h.FieldName)
	if !ok || !sf.IsExported() {
		return errMethodResolution(h.FieldName, fmt.Errorf("no such field on %s", h.TypeName))
	}
	return nil
}

// propertyHandleConverter resolves PropertyHandle against the declaring
// type's registered accessors (spec section 4.E, "Reflection handles":
// property).
type propertyHandleConverter struct{}

func (propertyHandleConverter) Priority(rt reflect.Type) int {
	return ConverterPriority(propertyHandleType, rt)
}
func (propertyHandleConverter) Cascade() bool { return true }

func (propertyHandleConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	h := v.Interface().(PropertyHandle)
	if err := resolveProperty(cc.eng, h); err != nil {
		return SerializedMember{}, err
	}
	raw, err := json.Marshal(h)
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(propertyHandleType), raw), nil
}

func (propertyHandleConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var h PropertyHandle
	if err := json.Unmarshal(env.ValueJSON, &h); err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	if err := resolveProperty(cc.eng, h); err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(h), nil
}

func resolveProperty(e *Engine, h PropertyHandle) error {
	declType, err := resolveDeclaringType(e, h.TypeName)
	if err != nil {
		return err
	}
	for _, acc := range e.accessors.Properties(declType) {
		if acc.name == h.PropertyName {
			return nil
		}
	}
	t := declType
	if t.Kind() != reflect.Ptr {
		if _, ok := reflect.PtrTo(t).MethodByName(h.PropertyName); ok {
			return nil
		}
	}
	if _, ok := declType.MethodByName(h.PropertyName); ok {
		return nil
	}
	return errMethodResolution(h.PropertyName, fmt.Errorf("no such property on %s", h.TypeName))
}

// methodHandleConverter resolves MethodHandle against the declaring
// type's exported method set (spec section 4.E, "Reflection handles":
// method).
type methodHandleConverter struct{}

func (methodHandleConverter) Priority(rt reflect.Type) int { return ConverterPriority(methodHandleType, rt) }
func (methodHandleConverter) Cascade() bool                { return true }

func (methodHandleConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	h := v.Interface().(MethodHandle)
	if err := resolveMethod(cc.eng, h.TypeName, h.MethodName); err != nil {
		return SerializedMember{}, err
	}
	raw, err := json.Marshal(h)
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(methodHandleType), raw), nil
}

func (methodHandleConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var h MethodHandle
	if err := json.Unmarshal(env.ValueJSON, &h); err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	if err := resolveMethod(cc.eng, h.TypeName, h.MethodName); err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(h), nil
}

func resolveMethod(e *Engine, typeName, methodName string) error {
	declType, err := resolveDeclaringType(e, typeName)
	if err != nil {
		return err
	}
	if _, ok := declType.MethodByName(methodName); ok {
		return nil
	}
	if declType.Kind() != reflect.Ptr {
		if _, ok := reflect.PtrTo(declType).MethodByName(methodName); ok {
			return nil
		}
	}
	return errMethodResolution(methodName, fmt.Errorf("no such method on %s", typeName))
}

// constructorHandleConverter resolves ConstructorHandle's declaring type
// against the TypeRegistry (spec section 4.E, "Reflection handles":
// constructor). Every registered type has at least one usable
// constructor path (an explicit Constructor[T] candidate or the
// zero-allocate createInstance fallback), so unlike field/property/method
// handles there is no separate "named member not found" case to check.
type constructorHandleConverter struct{}

func (constructorHandleConverter) Priority(rt reflect.Type) int {
	return ConverterPriority(constructorHandleType, rt)
}
func (constructorHandleConverter) Cascade() bool { return true }

func (constructorHandleConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	h := v.Interface().(ConstructorHandle)
	if _, err := resolveDeclaringType(cc.eng, h.TypeName); err != nil {
		return SerializedMember{}, err
	}
	raw, err := json.Marshal(h)
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(constructorHandleType), raw), nil
}

func (constructorHandleConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var h ConstructorHandle
	if err := json.Unmarshal(env.ValueJSON, &h); err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	if _, err := resolveDeclaringType(cc.eng, h.TypeName); err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(h), nil
}

// parameterHandleConverter resolves ParameterHandle against the declaring
// type's method, checking Position falls within the method's formal
// parameter list and, when that parameter's name was registered via
// Method[T], that it matches ParameterName (spec section 4.E, "Reflection
// handles": parameter).
type parameterHandleConverter struct{}

func (parameterHandleConverter) Priority(rt reflect.Type) int {
	return ConverterPriority(parameterHandleType, rt)
}
func (parameterHandleConverter) Cascade() bool { return true }

func (parameterHandleConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	h := v.Interface().(ParameterHandle)
	if err := resolveParameter(cc.eng, h); err != nil {
		return SerializedMember{}, err
	}
	raw, err := json.Marshal(h)
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(parameterHandleType), raw), nil
}

func (parameterHandleConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var h ParameterHandle
	if err := json.Unmarshal(env.ValueJSON, &h); err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	if err := resolveParameter(cc.eng, h); err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(h), nil
}

func resolveParameter(e *Engine, h ParameterHandle) error {
	declType, err := resolveDeclaringType(e, h.TypeName)
	if err != nil {
		return err
	}
	m, ok := declType.MethodByName(h.MethodName)
	if !ok {
		return errMethodResolution(h.MethodName, fmt.Errorf("no such method on %s", h.TypeName))
	}
	// m.Type includes the receiver as parameter 0 for a method obtained
	// from a bare reflect.Type, so the formal (non-receiver) argument
	// count is one less.
	numIn := m.Type.NumIn() - 1
	if h.Position < 0 || h.Position >= numIn {
		return errMethodResolution(h.ParameterName, fmt.Errorf("position %d out of range for %s.%s (%d parameters)", h.Position, h.TypeName, h.MethodName, numIn))
	}
	if names, ok := e.invoker.paramNames(declType, h.MethodName); ok && h.Position < len(names) {
		if names[h.Position] != h.ParameterName {
			return errMethodResolution(h.ParameterName, fmt.Errorf("position %d is named %q, not %q", h.Position, names[h.Position], h.ParameterName))
		}
	}
	return nil
}
