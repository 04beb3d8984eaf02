package mirror

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// complexPair is the wire shape for a complex number (spec section 4.E,
// Complex): Go's complex64/128 has no JSON-native representation, so it
// is carried as a real/imaginary pair object.
type complexPair struct {
	Real      float64 `json:"real"`
	Imaginary float64 `json:"imaginary"`
}

type complexConverter struct{}

func (complexConverter) Priority(rt reflect.Type) int {
	switch rt.Kind() {
	case reflect.Complex64, reflect.Complex128:
		return MaxDepth + 1
	}
	return 0
}

func (complexConverter) Cascade() bool { return false }

func (complexConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	c := v.Complex()
	raw, err := json.Marshal(complexPair{Real: real(c), Imaginary: imag(c)})
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(v.Type()), raw), nil
}

func (complexConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var pair complexPair
	if err := json.Unmarshal(env.ValueJSON, &pair); err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, fmt.Errorf("%w: %v", ErrCoercionFailed, err))
	}
	out := reflect.New(rt).Elem()
	out.SetComplex(complex(pair.Real, pair.Imaginary))
	return out, nil
}
