package mirror

import (
	"encoding/json"
	"reflect"
)

var byteSliceType = reflect.TypeOf([]byte(nil))

// byteSliceConverter handles []byte distinctly from a general sequence
// (spec section 4.F, Array/Sequence of byte): encoding/json already
// base64-encodes []byte as a JSON string, which this converter reuses
// directly instead of emitting one nested envelope per byte.
type byteSliceConverter struct{}

func (byteSliceConverter) Priority(rt reflect.Type) int {
	if rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.Uint8 {
		return MaxDepth
	}
	return 0
}

func (byteSliceConverter) Cascade() bool { return false }

func (byteSliceConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	b := v.Bytes()
	if b == nil {
		return nullEnvelope(name, cc.eng.types.TypeID(v.Type())), nil
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(v.Type()), raw), nil
}

func (byteSliceConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var b []byte
	if err := json.Unmarshal(env.ValueJSON, &b); err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	out := reflect.New(rt).Elem()
	out.SetBytes(b)
	return out, nil
}
