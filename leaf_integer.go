package mirror

import (
	"encoding/json"
	"reflect"
)

// integerConverter handles every signed and unsigned integer kind except
// the char-like int32 alias, which mirror.Char claims instead (spec
// section 4.E, the Byte/SByte/Int16/Int32/Int64/UInt* family).
type integerConverter struct{}

var integerKinds = map[reflect.Kind]bool{
	reflect.Int: true, reflect.Int8: true, reflect.Int16: true, reflect.Int32: true, reflect.Int64: true,
	reflect.Uint: true, reflect.Uint8: true, reflect.Uint16: true, reflect.Uint32: true, reflect.Uint64: true,
}

func (integerConverter) Priority(rt reflect.Type) int {
	if rt == charType {
		return 0 // mirror.Char is left to charConverter
	}
	if integerKinds[rt.Kind()] {
		return MaxDepth + 1
	}
	return 0
}

func (integerConverter) Cascade() bool { return false }

func (integerConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	var raw []byte
	var err error
	if v.Kind() == reflect.Uint || v.Kind() == reflect.Uint8 || v.Kind() == reflect.Uint16 ||
		v.Kind() == reflect.Uint32 || v.Kind() == reflect.Uint64 {
		raw, err = json.Marshal(v.Uint())
	} else {
		raw, err = json.Marshal(v.Int())
	}
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(v.Type()), raw), nil
}

func (integerConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	v, err := coerceNumericKind(env.ValueJSON, rt)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	return v, nil
}
