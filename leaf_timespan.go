package mirror

import (
	"encoding/json"
	"reflect"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// timeSpanConverter handles time.Duration (spec section 4.E, TimeSpan),
// wire-encoded using Go's own duration string form ("1h2m3.4s") rather
// than the host platform's "[d.]hh:mm:ss[.ffffff]" form, since this is a
// Go-to-Go engine and time.ParseDuration/Duration.String already round-
// trip losslessly.
type timeSpanConverter struct{}

func (timeSpanConverter) Priority(rt reflect.Type) int { return ConverterPriority(durationType, rt) }

func (timeSpanConverter) Cascade() bool { return false }

func (timeSpanConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	d := time.Duration(v.Int())
	raw, err := json.Marshal(d.String())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(durationType), raw), nil
}

func (timeSpanConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	out := reflect.New(rt).Elem()
	out.SetInt(int64(d))
	return out, nil
}
