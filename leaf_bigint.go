package mirror

import (
	"encoding/json"
	"math/big"
	"reflect"
)

var bigIntType = reflect.TypeOf(big.Int{})

// bigIntConverter handles math/big.Int (spec section 4.E, BigInteger),
// wire-encoded as a base-10 string since JSON numbers cannot safely carry
// arbitrary precision.
type bigIntConverter struct{}

func (bigIntConverter) Priority(rt reflect.Type) int { return ConverterPriority(bigIntType, rt) }

func (bigIntConverter) Cascade() bool { return false }

func (bigIntConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	n := v.Interface().(big.Int)
	raw, err := json.Marshal(n.String())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(bigIntType), raw), nil
}

func (bigIntConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	n := new(big.Int)
	if _, ok := n.SetString(s, 10); !ok {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, ErrCoercionFailed)
	}
	return reflect.ValueOf(*n), nil
}
