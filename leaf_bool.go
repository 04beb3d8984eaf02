package mirror

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// boolConverter handles Go's bool kind (spec section 4.E, Boolean).
type boolConverter struct{}

func (boolConverter) Priority(rt reflect.Type) int {
	if rt.Kind() == reflect.Bool {
		return MaxDepth + 1
	}
	return 0
}

func (boolConverter) Cascade() bool { return false }

func (boolConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	raw, err := json.Marshal(v.Bool())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(v.Type()), raw), nil
}

func (boolConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var b bool
	if err := json.Unmarshal(env.ValueJSON, &b); err != nil {
		var s string
		if json.Unmarshal(env.ValueJSON, &s) == nil {
			var perr error
			b, perr = parseBool(s)
			if perr != nil {
				return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, perr)
			}
		} else {
			return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
		}
	}
	out := reflect.New(rt).Elem()
	out.SetBool(b)
	return out, nil
}

func parseBool(s string) (bool, error) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean literal", ErrCoercionFailed, s)
}
