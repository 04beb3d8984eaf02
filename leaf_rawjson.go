package mirror

import (
	"encoding/json"
	"reflect"
)

var rawMessageType = reflect.TypeOf(json.RawMessage{})

// rawJSONConverter handles encoding/json.RawMessage (spec section 4.E,
// "raw JSON tree" / untyped payload escape hatch): the payload is
// round-tripped verbatim, never interpreted.
type rawJSONConverter struct{}

func (rawJSONConverter) Priority(rt reflect.Type) int { return ConverterPriority(rawMessageType, rt) }

func (rawJSONConverter) Cascade() bool { return true }

func (rawJSONConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	raw := v.Interface().(json.RawMessage)
	if len(raw) == 0 {
		return nullEnvelope(name, cc.eng.types.TypeID(rawMessageType)), nil
	}
	cp := make(json.RawMessage, len(raw))
	copy(cp, raw)
	return leafEnvelope(name, cc.eng.types.TypeID(rawMessageType), cp), nil
}

func (rawJSONConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	cp := make(json.RawMessage, len(env.ValueJSON))
	copy(cp, env.ValueJSON)
	return reflect.ValueOf(cp), nil
}
