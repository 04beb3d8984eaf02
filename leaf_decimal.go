package mirror

import (
	"encoding/json"
	"reflect"
)

var decimalType = reflect.TypeOf(Decimal{})

// decimalConverter handles mirror.Decimal (spec section 4.E, Decimal),
// wire-encoded as a JSON string to preserve precision a float64 would
// lose.
type decimalConverter struct{}

func (decimalConverter) Priority(rt reflect.Type) int { return ConverterPriority(decimalType, rt) }

func (decimalConverter) Cascade() bool { return false }

func (decimalConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	d := v.Interface().(Decimal)
	raw, err := json.Marshal(d.String())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(decimalType), raw), nil
}

func (decimalConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	d, err := NewDecimal(s)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	return reflect.ValueOf(d), nil
}
