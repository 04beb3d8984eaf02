package mirror

import (
	"encoding/json"
	"reflect"
	"time"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	dateOnlyType = reflect.TypeOf(DateOnly{})
	timeOnlyType = reflect.TypeOf(TimeOnly{})
)

// dateTimeConverter handles time.Time (spec section 4.E, DateTime and
// DateTimeOffset unified: Go's time.Time already always carries a
// location/offset, so there is no separate "naive" variant to model
// distinctly — see SPEC_FULL.md section 0).
type dateTimeConverter struct{}

func (dateTimeConverter) Priority(rt reflect.Type) int { return ConverterPriority(timeType, rt) }

func (dateTimeConverter) Cascade() bool { return false }

func (dateTimeConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	t := v.Interface().(time.Time)
	raw, err := json.Marshal(t.Format(time.RFC3339Nano))
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(timeType), raw), nil
}

func (dateTimeConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	return reflect.ValueOf(t), nil
}

// dateOnlyConverter handles mirror.DateOnly (spec section 4.E, Date-only).
type dateOnlyConverter struct{}

func (dateOnlyConverter) Priority(rt reflect.Type) int { return ConverterPriority(dateOnlyType, rt) }

func (dateOnlyConverter) Cascade() bool { return false }

func (dateOnlyConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	d := v.Interface().(DateOnly)
	raw, err := json.Marshal(d.String())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(dateOnlyType), raw), nil
}

func (dateOnlyConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	d, err := ParseDateOnly(s)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	return reflect.ValueOf(d), nil
}

// timeOnlyConverter handles mirror.TimeOnly (spec section 4.E, Time-only).
type timeOnlyConverter struct{}

func (timeOnlyConverter) Priority(rt reflect.Type) int { return ConverterPriority(timeOnlyType, rt) }

func (timeOnlyConverter) Cascade() bool { return false }

func (timeOnlyConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	t := v.Interface().(TimeOnly)
	raw, err := json.Marshal(t.String())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(timeOnlyType), raw), nil
}

func (timeOnlyConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	t, err := ParseTimeOnly(s)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	return reflect.ValueOf(t), nil
}
