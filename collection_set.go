package mirror

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
)

// isSetType structurally recognizes a mirror.Set[T] instantiation: Go's
// monomorphized generics mean there is no single reflect.Type to compare
// against (every element type produces a distinct instantiation), so
// detection looks at the shape sentinel itself would see — a single
// unexported map field named "m" and a type name starting with "Set[".
// The declaring package is not checked.
func isSetType(rt reflect.Type) bool {
	return rt.Kind() == reflect.Struct &&
		rt.NumField() == 1 &&
		rt.Field(0).Name == "m" &&
		rt.Field(0).Type.Kind() == reflect.Map &&
		strings.HasPrefix(rt.Name(), "Set[")
}

// setConverter handles mirror.Set[T] (spec section 4.F, Set).
type setConverter struct{}

func (setConverter) Priority(rt reflect.Type) int {
	if isSetType(rt) {
		return MaxDepth + 1
	}
	return 0
}

func (setConverter) Cascade() bool { return true }

func (setConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	typeID := cc.eng.types.TypeID(v.Type())
	addr := v
	if addr.Kind() != reflect.Ptr {
		if addr.CanAddr() {
			addr = addr.Addr()
		} else {
			p := reflect.New(v.Type())
			p.Elem().Set(v)
			addr = p
		}
	}
	values := addr.MethodByName("Values").Call(nil)[0]
	elemType := v.Type().Field(0).Type.Key()

	elems := make([]json.RawMessage, values.Len())
	for i := 0; i < values.Len(); i++ {
		elem, err := cc.eng.serialize(cc, values.Index(i), elemType, "", depth+1)
		if err != nil {
			return SerializedMember{}, err
		}
		if elems[i], err = json.Marshal(elem); err != nil {
			return SerializedMember{}, err
		}
	}
	sort.Slice(elems, func(i, j int) bool { return string(elems[i]) < string(elems[j]) })
	raw, err := json.Marshal(elems)
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, typeID, raw), nil
}

func (setConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var elems []SerializedMember
	if len(env.ValueJSON) > 0 {
		if err := json.Unmarshal(env.ValueJSON, &elems); err != nil {
			return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
		}
	}

	elemType := rt.Field(0).Type.Key()
	instance := reflect.New(rt)
	addMethod := instance.MethodByName("Add")
	for _, childEnv := range elems {
		val, err := cc.eng.deserialize(cc, childEnv, elemType, depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		addMethod.Call([]reflect.Value{val})
	}
	return instance.Elem(), nil
}
