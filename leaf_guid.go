package mirror

import (
	"encoding/json"
	"reflect"
)

var guidType = reflect.TypeOf(GUID{})

// guidConverter handles mirror.GUID (spec section 4.E, GUID).
type guidConverter struct{}

func (guidConverter) Priority(rt reflect.Type) int { return ConverterPriority(guidType, rt) }

func (guidConverter) Cascade() bool { return false }

func (guidConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	g := v.Interface().(GUID)
	raw, err := json.Marshal(g.String())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(guidType), raw), nil
}

func (guidConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	g, err := NewGUID(s)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	return reflect.ValueOf(g), nil
}
