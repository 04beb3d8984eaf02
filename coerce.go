package mirror

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// coerceStringToken unmarshals raw as a JSON string and returns its Go
// string value, used by every leaf converter whose wire form is a quoted
// string (GUID, Version, URI, IPAddress, enum names, ...).
func coerceStringToken(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: expected a JSON string: %v", ErrCoercionFailed, err)
	}
	return s, nil
}

// coerceNumericKind unmarshals raw into a value of the given numeric kind,
// tolerating a JSON string token holding a numeric literal (spec section
// 4.G's argument-coercion table applies the same tolerance to invoker
// arguments; leaf converters reuse it for JSON payloads produced by hosts
// that stringify large integers).
func coerceNumericKind(raw json.RawMessage, rt reflect.Type) (reflect.Value, error) {
	var asString string
	if json.Unmarshal(raw, &asString) == nil {
		return parseNumericString(asString, rt)
	}

	out := reflect.New(rt)
	if err := json.Unmarshal(raw, out.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %v", ErrCoercionFailed, err)
	}
	return out.Elem(), nil
}

func parseNumericString(s string, rt reflect.Type) (reflect.Value, error) {
	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrCoercionFailed, err)
		}
		v := reflect.New(rt).Elem()
		v.SetInt(n)
		return v, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrCoercionFailed, err)
		}
		v := reflect.New(rt).Elem()
		v.SetUint(n)
		return v, nil
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrCoercionFailed, err)
		}
		v := reflect.New(rt).Elem()
		v.SetFloat(n)
		return v, nil
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrCoercionFailed, err)
		}
		v := reflect.New(rt).Elem()
		v.SetBool(b)
		return v, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot coerce string into %s", ErrCoercionFailed, rt)
}

// coerceArgument implements spec section 4.G step 2, the invoker's
// argument-coercion table, reusing the same numeric/string tolerance as
// leaf deserialization plus a couple of invoker-specific shapes (JSON null
// into a pointer or interface parameter).
func coerceArgument(raw json.RawMessage, rt reflect.Type) (reflect.Value, error) {
	if string(raw) == "null" {
		switch rt.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
			return reflect.Zero(rt), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: null supplied for non-nullable parameter of type %s", ErrArgumentCoercion, rt)
	}

	switch rt.Kind() {
	case reflect.String:
		s, err := coerceStringToken(raw)
		if err != nil {
			var num json.Number
			if json.Unmarshal(raw, &num) == nil {
				return reflect.ValueOf(num.String()), nil
			}
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrArgumentCoercion, err)
		}
		return reflect.ValueOf(s), nil
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		v, err := coerceNumericKind(raw, rt)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrArgumentCoercion, err)
		}
		return v, nil
	case reflect.Ptr:
		elem, err := coerceArgument(raw, rt.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(rt.Elem())
		p.Elem().Set(elem)
		return p, nil
	default:
		out := reflect.New(rt)
		if err := json.Unmarshal(raw, out.Interface()); err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrArgumentCoercion, err)
		}
		return out.Elem(), nil
	}
}
