package mirror

import (
	"encoding/json"
	"math/big"
	"net"
	"net/url"
	"reflect"
	"testing"
	"time"
)

func roundTripLeaf(t *testing.T, conv Converter, v reflect.Value) reflect.Value {
	t.Helper()
	eng := NewEngine()
	cc := &callContext{eng: eng, diags: newDiagnostics()}
	env, err := conv.Serialize(cc, "", v, 0)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	out, err := conv.Deserialize(cc, env, v.Type(), 0)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	return out
}

func TestBoolConverterRoundTrip(t *testing.T) {
	out := roundTripLeaf(t, boolConverter{}, reflect.ValueOf(true))
	if out.Bool() != true {
		t.Errorf("got %v, want true", out.Bool())
	}
}

func TestBoolConverterTolerantStringLiterals(t *testing.T) {
	cc := &callContext{eng: NewEngine(), diags: newDiagnostics()}
	env := leafEnvelope("", "bool", []byte(`"True"`))
	out, err := boolConverter{}.Deserialize(cc, env, reflect.TypeOf(true), 0)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if !out.Bool() {
		t.Error("Deserialize(\"True\") should coerce to true")
	}
}

func TestIntegerConverterRoundTrip(t *testing.T) {
	out := roundTripLeaf(t, integerConverter{}, reflect.ValueOf(int32(-7)))
	if out.Int() != -7 {
		t.Errorf("got %d, want -7", out.Int())
	}
}

func TestIntegerConverterDefersToCharForCharType(t *testing.T) {
	if (integerConverter{}).Priority(charType) != 0 {
		t.Error("integerConverter should yield priority to charConverter for mirror.Char")
	}
}

func TestFloatConverterRoundTrip(t *testing.T) {
	out := roundTripLeaf(t, floatConverter{}, reflect.ValueOf(3.5))
	if out.Float() != 3.5 {
		t.Errorf("got %v, want 3.5", out.Float())
	}
}

func TestHalfConverterRoundTrip(t *testing.T) {
	out := roundTripLeaf(t, floatConverter{}, reflect.ValueOf(Half(1.25)))
	if Half(out.Float()) != Half(1.25) {
		t.Errorf("got %v, want 1.25", out.Float())
	}
}

func TestComplexConverterRoundTrip(t *testing.T) {
	out := roundTripLeaf(t, complexConverter{}, reflect.ValueOf(complex(1.5, -2.5)))
	if out.Complex() != complex(1.5, -2.5) {
		t.Errorf("got %v, want (1.5-2.5i)", out.Complex())
	}
}

func TestCharConverterRoundTrip(t *testing.T) {
	out := roundTripLeaf(t, charConverter{}, reflect.ValueOf(Char('貓')))
	if Char(out.Int()) != Char('貓') {
		t.Errorf("got %v, want %v", rune(out.Int()), '貓')
	}
}

func TestCharConverterRejectsMultiRune(t *testing.T) {
	cc := &callContext{eng: NewEngine(), diags: newDiagnostics()}
	env := leafEnvelope("", "Char", []byte(`"ab"`))
	if _, err := (charConverter{}).Deserialize(cc, env, charType, 0); err == nil {
		t.Error("Deserialize() expected an error for a multi-rune string")
	}
}

func TestStringConverterRoundTrip(t *testing.T) {
	out := roundTripLeaf(t, stringConverter{}, reflect.ValueOf("hello"))
	if out.String() != "hello" {
		t.Errorf("got %q, want %q", out.String(), "hello")
	}
}

func TestDecimalConverterPreservesPrecision(t *testing.T) {
	d, err := NewDecimal("12345678901234567890.123456789")
	if err != nil {
		t.Fatalf("NewDecimal() error: %v", err)
	}
	out := roundTripLeaf(t, decimalConverter{}, reflect.ValueOf(d))
	got := out.Interface().(Decimal)
	if got.String() != d.String() {
		t.Errorf("got %s, want %s", got.String(), d.String())
	}
}

func TestGUIDConverterRoundTrip(t *testing.T) {
	g, err := NewGUID("550e8400-e29b-41d4-a716-446655440000")
	if err != nil {
		t.Fatalf("NewGUID() error: %v", err)
	}
	out := roundTripLeaf(t, guidConverter{}, reflect.ValueOf(g))
	if out.Interface().(GUID) != g {
		t.Errorf("got %v, want %v", out.Interface(), g)
	}
}

func TestVersionConverterRoundTrip(t *testing.T) {
	v, err := ParseVersion("1.2.3")
	if err != nil {
		t.Fatalf("ParseVersion() error: %v", err)
	}
	out := roundTripLeaf(t, versionConverter{}, reflect.ValueOf(v))
	if out.Interface().(Version) != v {
		t.Errorf("got %v, want %v", out.Interface(), v)
	}
}

func TestDateTimeConverterRoundTrip(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	out := roundTripLeaf(t, dateTimeConverter{}, reflect.ValueOf(now))
	if !out.Interface().(time.Time).Equal(now) {
		t.Errorf("got %v, want %v", out.Interface(), now)
	}
}

func TestDateOnlyConverterRoundTrip(t *testing.T) {
	d := DateOnly{Year: 2026, Month: 7, Day: 31}
	out := roundTripLeaf(t, dateOnlyConverter{}, reflect.ValueOf(d))
	if out.Interface().(DateOnly) != d {
		t.Errorf("got %v, want %v", out.Interface(), d)
	}
}

func TestTimeOnlyConverterRoundTrip(t *testing.T) {
	tm := TimeOnly{Hour: 23, Minute: 59, Second: 1, Nanosecond: 500}
	out := roundTripLeaf(t, timeOnlyConverter{}, reflect.ValueOf(tm))
	if out.Interface().(TimeOnly) != tm {
		t.Errorf("got %v, want %v", out.Interface(), tm)
	}
}

func TestTimeSpanConverterRoundTrip(t *testing.T) {
	d := 90 * time.Minute
	out := roundTripLeaf(t, timeSpanConverter{}, reflect.ValueOf(d))
	if time.Duration(out.Int()) != d {
		t.Errorf("got %v, want %v", time.Duration(out.Int()), d)
	}
}

func TestGUIDConverterDeserializeFailsOnGarbage(t *testing.T) {
	cc := &callContext{eng: NewEngine(), diags: newDiagnostics()}
	env := leafEnvelope("", "GUID", []byte(`"not-a-guid"`))
	if _, err := (guidConverter{}).Deserialize(cc, env, guidType, 0); err == nil {
		t.Error("Deserialize() expected an error for an invalid GUID literal")
	}
}

func TestBigIntConverterRoundTrip(t *testing.T) {
	n, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	out := roundTripLeaf(t, bigIntConverter{}, reflect.ValueOf(*n))
	got := out.Interface().(big.Int)
	if got.Cmp(n) != 0 {
		t.Errorf("got %v, want %v", got.String(), n.String())
	}
}

func TestIPAddrConverterRoundTrip(t *testing.T) {
	ip := net.ParseIP("2001:db8::1")
	out := roundTripLeaf(t, ipAddrConverter{}, reflect.ValueOf(ip))
	if !out.Interface().(net.IP).Equal(ip) {
		t.Errorf("got %v, want %v", out.Interface(), ip)
	}
}

func TestIPEndpointConverterRoundTrip(t *testing.T) {
	e := IPEndpoint{Address: "10.0.0.1", Port: 8080}
	out := roundTripLeaf(t, ipEndpointConverter{}, reflect.ValueOf(e))
	if out.Interface().(IPEndpoint) != e {
		t.Errorf("got %v, want %v", out.Interface(), e)
	}
}

func TestURIConverterRoundTrip(t *testing.T) {
	u, _ := url.Parse("https://example.com/a?b=c")
	out := roundTripLeaf(t, uriConverter{}, reflect.ValueOf(u))
	got := out.Interface().(*url.URL)
	if got.String() != u.String() {
		t.Errorf("got %v, want %v", got, u)
	}
}

func TestEnumConverterSerializesLabelWhenRegistered(t *testing.T) {
	enums := newEnumRegistry()
	type status int
	rt := reflect.TypeOf(status(0))
	enums.Register(rt, "active", 0)
	enums.Register(rt, "closed", 1)

	conv := enumConverter{enums: enums}
	eng := NewEngine()
	cc := &callContext{eng: eng, diags: newDiagnostics()}
	env, err := conv.Serialize(cc, "", reflect.ValueOf(status(1)), 0)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if string(env.ValueJSON) != `"closed"` {
		t.Errorf("ValueJSON = %s, want %q", env.ValueJSON, `"closed"`)
	}

	out, err := conv.Deserialize(cc, env, rt, 0)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if status(out.Int()) != status(1) {
		t.Errorf("got %v, want %v", out.Int(), 1)
	}
}

func TestExceptionConverterFollowsUnwrapChain(t *testing.T) {
	inner := &EngineError{Kind: KindCoercionFailed, Err: ErrCoercionFailed, Depth: -1}
	outer := &EngineError{Kind: KindTypeMismatch, Err: ErrTypeMismatch, Depth: -1, Cause: inner}

	eng := NewEngine()
	cc := &callContext{eng: eng, diags: newDiagnostics()}
	env, err := (exceptionConverter{}).Serialize(cc, "", reflect.ValueOf(outer), 0)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	out, err := (exceptionConverter{}).Deserialize(cc, env, errorInterfaceType, 0)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	parsed := out.Interface().(*ExceptionEnvelope)
	if parsed.Inner == nil {
		t.Fatal("expected the inner cause to be preserved")
	}
}

func TestRawJSONConverterRoundTripsVerbatim(t *testing.T) {
	payload := json.RawMessage(`{"a":1,"b":[true,false]}`)
	eng := NewEngine()
	cc := &callContext{eng: eng, diags: newDiagnostics()}
	env, err := (rawJSONConverter{}).Serialize(cc, "", reflect.ValueOf(payload), 0)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	out, err := (rawJSONConverter{}).Deserialize(cc, env, rawMessageType, 0)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if string(out.Interface().(json.RawMessage)) != string(payload) {
		t.Errorf("got %s, want %s", out.Interface(), payload)
	}
}
