package mirror

import (
	"encoding/json"
	"reflect"
)

// floatConverter handles Go's float32/float64 kinds (spec section 4.E,
// Single/Double) plus mirror.Half, a named float32 that is written and
// read at float32 precision; it is not rounded to binary16.
type floatConverter struct{}

var halfType = reflect.TypeOf(Half(0))

func (floatConverter) Priority(rt reflect.Type) int {
	if rt == halfType {
		return MaxDepth + 1
	}
	switch rt.Kind() {
	case reflect.Float32, reflect.Float64:
		return MaxDepth + 1
	}
	return 0
}

func (floatConverter) Cascade() bool { return false }

func (floatConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	raw, err := json.Marshal(v.Float())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(v.Type()), raw), nil
}

func (floatConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	v, err := coerceNumericKind(env.ValueJSON, underlyingFloatKind(rt))
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	out := reflect.New(rt).Elem()
	out.SetFloat(v.Float())
	return out, nil
}

// underlyingFloatKind returns a plain float32/float64 type with the same
// bit width as rt, since mirror.Half is not itself a numeric kind
// coerceNumericKind's reflect.New(rt) path can unmarshal into directly in
// every Go version (named non-builtin float kinds unmarshal fine, this
// keeps the Half case explicit rather than relying on incidental behavior).
func underlyingFloatKind(rt reflect.Type) reflect.Type {
	if rt == halfType {
		return reflect.TypeOf(float32(0))
	}
	return rt
}
