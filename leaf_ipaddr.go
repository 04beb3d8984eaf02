package mirror

import (
	"encoding/json"
	"net"
	"reflect"
)

var (
	ipType         = reflect.TypeOf(net.IP{})
	ipEndpointType = reflect.TypeOf(IPEndpoint{})
)

// ipAddrConverter handles net.IP (spec section 4.E, IPAddress).
type ipAddrConverter struct{}

func (ipAddrConverter) Priority(rt reflect.Type) int { return ConverterPriority(ipType, rt) }

func (ipAddrConverter) Cascade() bool { return false }

func (ipAddrConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	ip := v.Interface().(net.IP)
	if ip == nil {
		return nullEnvelope(name, cc.eng.types.TypeID(ipType)), nil
	}
	raw, err := json.Marshal(ip.String())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(ipType), raw), nil
}

func (ipAddrConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, ErrCoercionFailed)
	}
	return reflect.ValueOf(ip), nil
}

// ipEndpointConverter handles mirror.IPEndpoint (spec section 4.E,
// IPEndpoint).
type ipEndpointConverter struct{}

func (ipEndpointConverter) Priority(rt reflect.Type) int { return ConverterPriority(ipEndpointType, rt) }

func (ipEndpointConverter) Cascade() bool { return false }

func (ipEndpointConverter) Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error) {
	e := v.Interface().(IPEndpoint)
	raw, err := json.Marshal(e.String())
	if err != nil {
		return SerializedMember{}, err
	}
	return leafEnvelope(name, cc.eng.types.TypeID(ipEndpointType), raw), nil
}

func (ipEndpointConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	s, err := coerceStringToken(env.ValueJSON)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	e, err := ParseIPEndpoint(s)
	if err != nil {
		return reflect.Value{}, errCoercion(cc.eng.types.TypeID(rt), env.Name, err)
	}
	return reflect.ValueOf(e), nil
}
