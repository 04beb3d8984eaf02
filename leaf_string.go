package mirror

import (
	"encoding/json"
	"reflect"
)

// stringConverter handles Go's string kind (spec section 4.E, String).
type stringConverter struct{}

func (stringConverter) Priority(rt reflect.Type) int {
	if rt.Kind() == reflect.String {
		return MaxDepth + 1
	}
	return 0
}

func (stringConverter) Cascade() bool { return false }

func (stringConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	raw, err := json.Marshal(v.String())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(v.Type()), raw), nil
}

func (stringConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	out := reflect.New(rt).Elem()
	out.SetString(s)
	return out, nil
}
