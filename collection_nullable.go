package mirror

import "reflect"

// nullableConverter handles any pointer type not claimed by a more
// specific exact-type converter (spec section 4.F, Nullable<T>): Go
// already uses *T as its nullable-of-T, so a present value serializes
// exactly as its pointee would, and only absence (nil) gets special
// treatment, via Engine.serialize's null check before a converter is
// even consulted.
//
// Its priority is a flat low constant rather than 0 so it only engages
// when nothing sharper (e.g. *url.URL's exact-match converter) claims the
// pointer type; see ConverterRegistry.Chain's priority ordering. For a
// pointer to a struct, genericStructConverter reports the same priority
// and, registered later, takes the pointer instead.
type nullableConverter struct{}

func (nullableConverter) Priority(rt reflect.Type) int {
	if rt.Kind() == reflect.Ptr {
		return 1
	}
	return 0
}

func (nullableConverter) Cascade() bool { return true }

func (nullableConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	if v.IsNil() {
		return nullEnvelope(name, cc.eng.types.TypeID(v.Type())), nil
	}
	return cc.eng.serialize(cc, v.Elem(), v.Type().Elem(), name, depth)
}

func (nullableConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	elemType := rt.Elem()
	elemEnv := env
	elemEnv.TypeName = cc.eng.types.TypeID(elemType)
	val, err := cc.eng.deserialize(cc, elemEnv, elemType, depth+1)
	if err != nil {
		return reflect.Value{}, err
	}
	ptr := reflect.New(elemType)
	ptr.Elem().Set(val)
	return ptr, nil
}
