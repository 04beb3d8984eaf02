package mirror

import (
	"encoding/json"
	"reflect"
)

// dictPair is one key/value entry of a serialized map (spec section 4.F,
// Dictionary). A plain JSON object cannot carry non-string keys, so
// Dictionary is wire-encoded as an array of pairs rather than an object,
// matching the envelope's array-of-members style used elsewhere.
type dictPair struct {
	Key   SerializedMember `json:"key"`
	Value SerializedMember `json:"value"`
}

// dictConverter handles any map type (spec section 4.F, Dictionary).
type dictConverter struct{}

func (dictConverter) Priority(rt reflect.Type) int {
	if rt.Kind() == reflect.Map {
		return 1
	}
	return 0
}

func (dictConverter) Cascade() bool { return true }

func (dictConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	typeID := cc.eng.types.TypeID(v.Type())
	if v.IsNil() {
		return nullEnvelope(name, typeID), nil
	}
	keyType, valType := v.Type().Key(), v.Type().Elem()
	pairs := make([]dictPair, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		keyEnv, err := cc.eng.serialize(cc, iter.Key(), keyType, "", depth+1)
		if err != nil {
			return SerializedMember{}, err
		}
		valEnv, err := cc.eng.serialize(cc, iter.Value(), valType, "", depth+1)
		if err != nil {
			return SerializedMember{}, err
		}
		pairs = append(pairs, dictPair{Key: keyEnv, Value: valEnv})
	}
	raw, err := json.Marshal(pairs)
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, typeID, raw), nil
}

func (dictConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var pairs []dictPair
	if len(env.ValueJSON) > 0 {
		if err := json.Unmarshal(env.ValueJSON, &pairs); err != nil {
			return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
		}
	}

	keyType, valType := rt.Key(), rt.Elem()
	out := reflect.MakeMapWithSize(rt, len(pairs))
	for _, p := range pairs {
		k, err := cc.eng.deserialize(cc, p.Key, keyType, depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		val, err := cc.eng.deserialize(cc, p.Value, valType, depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(k, val)
	}
	return out, nil
}
