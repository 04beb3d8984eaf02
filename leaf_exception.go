package mirror

import (
	"encoding/json"
	"fmt"
	"reflect"
)

var errorInterfaceType = reflect.TypeOf((*error)(nil)).Elem()

// exceptionConverter handles any type implementing Go's error interface
// (spec section 4.E, Exception): rather than walk an error's usually
// unexported fields via the struct converter, it builds the flat
// message/type/inner shape spec section 4.E defines, following Unwrap()
// for the chain.
type exceptionConverter struct{}

func (exceptionConverter) Priority(rt reflect.Type) int {
	if rt.Implements(errorInterfaceType) {
		return MaxDepth - 1 // below an exact-type converter a caller might register for a specific error type
	}
	return 0
}

func (exceptionConverter) Cascade() bool { return true }

func (exceptionConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	typeID := cc.eng.types.TypeID(v.Type())
	err, _ := v.Interface().(error)
	if err == nil {
		return nullEnvelope(name, typeID), nil
	}
	env := NewExceptionEnvelope(typeID, err)
	raw, merr := json.Marshal(env)
	if merr != nil {
		return SerializedMember{}, merr
	}
	return leafEnvelope(name, typeID, raw), nil
}

func (exceptionConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	var parsed ExceptionEnvelope
	if err := json.Unmarshal(env.ValueJSON, &parsed); err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, fmt.Errorf("%w: %v", ErrCoercionFailed, err))
	}
	return reflect.ValueOf(&parsed), nil
}
