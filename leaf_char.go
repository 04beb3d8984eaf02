package mirror

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Char is a single Unicode code point, the Go stand-in for the host
// platform's Char value type (spec section 4.E). Go's own rune is merely
// an alias for int32, indistinguishable from it at the reflect.Type
// level, so this engine cannot treat "char" and "int32" as different
// wire shapes unless callers use this named type instead of bare rune
// (SPEC_FULL.md section 0).
type Char rune

var charType = reflect.TypeOf(Char(0))

type charConverter struct{}

func (charConverter) Priority(rt reflect.Type) int {
	if rt == charType {
		return MaxDepth + 1
	}
	return 0
}

func (charConverter) Cascade() bool { return false }

func (charConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	raw, err := json.Marshal(string(rune(v.Int())))
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(charType), raw), nil
}

func (charConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, fmt.Errorf("%w: expected exactly one code point, got %d", ErrCoercionFailed, len(runes)))
	}
	out := reflect.New(rt).Elem()
	out.SetInt(int64(runes[0]))
	return out, nil
}
