package mirror

import (
	"encoding/json"
	"reflect"
)

var versionType = reflect.TypeOf(Version{})

// versionConverter handles mirror.Version (spec section 4.E, Version).
type versionConverter struct{}

func (versionConverter) Priority(rt reflect.Type) int { return ConverterPriority(versionType, rt) }

func (versionConverter) Cascade() bool { return false }

func (versionConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	ver := v.Interface().(Version)
	raw, err := json.Marshal(ver.String())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(versionType), raw), nil
}

func (versionConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	ver, err := ParseVersion(s)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	return reflect.ValueOf(ver), nil
}
