package mirror

import (
	"encoding/json"
	"reflect"
)

// sequenceConverter handles any slice or array not claimed by a more
// specific converter (spec section 4.F, Array/Sequence): each element is
// serialized as its own nested envelope, preserving per-element type
// identity so a heterogeneous interface-typed slice round-trips
// correctly, then the list of envelopes is marshaled as the JSON array
// payload ("cascade mode").
type sequenceConverter struct{}

func (sequenceConverter) Priority(rt reflect.Type) int {
	switch rt.Kind() {
	case reflect.Slice, reflect.Array:
		return 1
	}
	return 0
}

func (sequenceConverter) Cascade() bool { return true }

func (sequenceConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	typeID := cc.eng.types.TypeID(v.Type())
	if v.Kind() == reflect.Slice && v.IsNil() {
		return nullEnvelope(name, typeID), nil
	}
	elems := make([]SerializedMember, v.Len())
	for i := 0; i < v.Len(); i++ {
		elem, err := cc.eng.serialize(cc, v.Index(i), v.Type().Elem(), "", depth+1)
		if err != nil {
			return SerializedMember{}, err
		}
		elems[i] = elem
	}
	raw, err := json.Marshal(elems)
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, typeID, raw), nil
}

func (sequenceConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var elems []SerializedMember
	if len(env.ValueJSON) > 0 {
		if err := json.Unmarshal(env.ValueJSON, &elems); err != nil {
			return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
		}
	}

	elemType := rt.Elem()
	if rt.Kind() == reflect.Array {
		out := reflect.New(rt).Elem()
		for i := 0; i < out.Len() && i < len(elems); i++ {
			ev, err := cc.eng.deserialize(cc, elems[i], elemType, depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			assignValue(out.Index(i), ev)
		}
		return out, nil
	}

	out := reflect.MakeSlice(rt, len(elems), len(elems))
	for i, childEnv := range elems {
		ev, err := cc.eng.deserialize(cc, childEnv, elemType, depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		assignValue(out.Index(i), ev)
	}
	return out, nil
}
