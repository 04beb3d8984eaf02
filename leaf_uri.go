package mirror

import (
	"encoding/json"
	"net/url"
	"reflect"
)

var urlType = reflect.TypeOf(&url.URL{})

// uriConverter handles *net/url.URL (spec section 4.E, URI).
type uriConverter struct{}

func (uriConverter) Priority(rt reflect.Type) int { return ConverterPriority(urlType, rt) }

func (uriConverter) Cascade() bool { return false }

func (uriConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	if v.IsNil() {
		return nullEnvelope(name, cc.eng.types.TypeID(urlType)), nil
	}
	u := v.Interface().(*url.URL)
	raw, err := json.Marshal(u.String())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(urlType), raw), nil
}

func (uriConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	u, err := url.Parse(s)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	return reflect.ValueOf(u), nil
}
