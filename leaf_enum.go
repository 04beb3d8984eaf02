package mirror

import (
	"encoding/json"
	"reflect"
)

// enumConverter handles any named integer type declared as an enum via
// Enum[T] (spec section 4.E, Enum). Go has no enum keyword, so "is this
// type an enum" is answered by the engine's EnumRegistry rather than by
// reflect.Kind; the converter closes over that registry at construction
// time (registerBuiltins) since Converter.Priority has no Engine
// parameter of its own.
type enumConverter struct {
	enums *EnumRegistry
}

func (c enumConverter) Priority(rt reflect.Type) int {
	if c.enums.IsEnum(rt) {
		return MaxDepth + 1
	}
	return 0
}

func (enumConverter) Cascade() bool { return false }

func (c enumConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	typeID := cc.eng.types.TypeID(v.Type())
	if label, ok := c.enums.ByValue(v.Type(), v.Int()); ok {
		raw, err := json.Marshal(label)
		if err != nil {
			return SerializedMember{}, err
		}
		return leafEnvelope(name, typeID, raw), nil
	}
	raw, err := json.Marshal(v.Int())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, typeID, raw), nil
}

func (c enumConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	if label, err := coerceStringToken(env.ValueJSON); err == nil {
		if value, ok := c.enums.ByName(rt, label); ok {
			out := reflect.New(rt).Elem()
			out.SetInt(value)
			return out, nil
		}
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, ErrCoercionFailed)
	}
	v, err := coerceNumericKind(env.ValueJSON, reflect.TypeOf(int64(0)))
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	out := reflect.New(rt).Elem()
	out.SetInt(v.Int())
	return out, nil
}
