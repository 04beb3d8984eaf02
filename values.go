package mirror

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Decimal is an arbitrary-precision fixed-point number, the Go stand-in
// for the host platform's 128-bit decimal type (spec section 4.E). It is
// built on math/big.Rat rather than a float, so round-tripping through
// JSON never loses precision the way a float64 would.
type Decimal struct {
	r *big.Rat
}

// NewDecimal parses s (a base-10 decimal string) into a Decimal.
func NewDecimal(s string) (Decimal, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Decimal{}, fmt.Errorf("invalid decimal literal %q", s)
	}
	return Decimal{r: r}, nil
}

// String renders the Decimal as a plain decimal string (no exponent
// notation), matching the wire form spec section 6 expects for Decimal.
func (d Decimal) String() string {
	if d.r == nil {
		return "0"
	}
	return d.r.FloatString(decimalScale(d.r))
}

func decimalScale(r *big.Rat) int {
	denom := r.Denom()
	scale := 0
	tmp := new(big.Int).Set(denom)
	ten := big.NewInt(10)
	for tmp.Cmp(big.NewInt(1)) > 0 && scale < 40 {
		_, rem := new(big.Int).DivMod(tmp, ten, new(big.Int))
		if rem.Sign() != 0 {
			break
		}
		tmp.Div(tmp, ten)
		scale++
	}
	if scale == 0 && denom.Cmp(big.NewInt(1)) != 0 {
		scale = 28
	}
	return scale
}

// GUID is a 128-bit globally-unique identifier, the Go analogue of the
// host platform's Guid value type (spec section 4.E).
type GUID [16]byte

// NewGUID parses the canonical "8-4-4-4-12" hyphenated hex form.
func NewGUID(s string) (GUID, error) {
	var g GUID
	clean := strings.ReplaceAll(s, "-", "")
	if len(clean) != 32 {
		return g, fmt.Errorf("invalid GUID literal %q", s)
	}
	for i := 0; i < 16; i++ {
		b, err := strconv.ParseUint(clean[i*2:i*2+2], 16, 8)
		if err != nil {
			return GUID{}, fmt.Errorf("invalid GUID literal %q: %w", s, err)
		}
		g[i] = byte(b)
	}
	return g, nil
}

func (g GUID) String() string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", g[0:4], g[4:6], g[6:8], g[8:10], g[10:16])
}

// Version is a four-component dotted version number (Major.Minor.Build.Revision),
// mirroring the host platform's Version value type (spec section 4.E).
// Build and Revision are -1 when absent, matching the host's "unset"
// convention.
type Version struct {
	Major, Minor, Build, Revision int
}

// ParseVersion parses a 2-, 3-, or 4-component dotted version string.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return Version{}, fmt.Errorf("invalid version literal %q", s)
	}
	nums := make([]int, 4)
	nums[2], nums[3] = -1, -1
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version literal %q: %w", s, err)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Build: nums[2], Revision: nums[3]}, nil
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d", v.Major, v.Minor)
	if v.Build >= 0 {
		s += fmt.Sprintf(".%d", v.Build)
	}
	if v.Revision >= 0 {
		s += fmt.Sprintf(".%d", v.Revision)
	}
	return s
}

// DateOnly is a calendar date with no time-of-day or zone component, the
// Go stand-in for the host platform's DateOnly struct (spec section 4.E).
type DateOnly struct {
	Year, Month, Day int
}

func (d DateOnly) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseDateOnly parses an RFC 3339 "full-date" string.
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date literal %q: %w", s, err)
	}
	return DateOnly{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// TimeOnly is a time-of-day with no date or zone component, the Go
// stand-in for the host platform's TimeOnly struct (spec section 4.E).
type TimeOnly struct {
	Hour, Minute, Second, Nanosecond int
}

func (t TimeOnly) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%09d", t.Hour, t.Minute, t.Second, t.Nanosecond)
}

// ParseTimeOnly parses an "HH:MM:SS[.fraction]" string.
func ParseTimeOnly(s string) (TimeOnly, error) {
	t, err := time.Parse("15:04:05.999999999", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return TimeOnly{}, fmt.Errorf("invalid time literal %q: %w", s, err)
		}
	}
	return TimeOnly{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}, nil
}

// IPEndpoint pairs an IP address with a port, the Go stand-in for the
// host platform's IPEndPoint value type (spec section 4.E).
type IPEndpoint struct {
	Address string
	Port    int
}

func (e IPEndpoint) String() string {
	if strings.Contains(e.Address, ":") {
		return fmt.Sprintf("[%s]:%d", e.Address, e.Port)
	}
	return fmt.Sprintf("%s:%d", e.Address, e.Port)
}

// ParseIPEndpoint parses a "host:port" or "[ipv6]:port" literal.
func ParseIPEndpoint(s string) (IPEndpoint, error) {
	idx := strings.LastIndexByte(s, ':')
	if idx < 0 {
		return IPEndpoint{}, fmt.Errorf("invalid IP endpoint literal %q", s)
	}
	addr := strings.Trim(s[:idx], "[]")
	port, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return IPEndpoint{}, fmt.Errorf("invalid IP endpoint literal %q: %w", s, err)
	}
	return IPEndpoint{Address: addr, Port: port}, nil
}

// ExceptionEnvelope is the serialized shape of a raised exception/error
// (spec section 4.E): a message, a type-id naming the concrete error
// type, and an optional chained cause.
type ExceptionEnvelope struct {
	Message string             `json:"message"`
	Type    string             `json:"type"`
	Inner   *ExceptionEnvelope `json:"inner,omitempty"`
}

// NewExceptionEnvelope builds an ExceptionEnvelope from a Go error chain,
// following Unwrap() for the inner chain.
func NewExceptionEnvelope(typ string, err error) *ExceptionEnvelope {
	if err == nil {
		return nil
	}
	env := &ExceptionEnvelope{Message: err.Error(), Type: typ}
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		if inner := u.Unwrap(); inner != nil {
			env.Inner = NewExceptionEnvelope(fmt.Sprintf("%T", inner), inner)
		}
	}
	return env
}

func (e *ExceptionEnvelope) Error() string { return e.Message }

// Half is a stand-in for the host platform's 16-bit IEEE 754 binary16
// floating point type. Go has no native half-precision float; values are
// carried as float32, and the float converter writes and reads them at
// float32 precision without rounding them to binary16 (spec section 4.E).
type Half float32

// TypeHandle, FieldHandle, PropertyHandle, MethodHandle, ConstructorHandle,
// and ParameterHandle are reflection-metadata carriers (spec section 4.E,
// "Reflection handles"): each names a runtime type plus, for everything
// but TypeHandle itself, one of its members. Deserializing one is not a
// plain field copy — leaf_reflect.go's converters resolve the named type
// and member against the engine's own registries (TypeRegistry,
// AccessorRegistry, the struct's reflect.Type directly for fields and
// methods), raising MethodResolution for a member that does not exist
// and UnknownType for a declaring type that
// does not resolve or was left blank, exactly as spec section 4.E's
// "Not-found -> error; missing declaringType -> error" requires.
type TypeHandle struct {
	TypeName string `json:"typeName"`
}

type FieldHandle struct {
	TypeName  string `json:"typeName"`
	FieldName string `json:"fieldName"`
}

type PropertyHandle struct {
	TypeName     string `json:"typeName"`
	PropertyName string `json:"propertyName"`
}

type MethodHandle struct {
	TypeName   string `json:"typeName"`
	MethodName string `json:"methodName"`
}

type ConstructorHandle struct {
	TypeName string `json:"typeName"`
}

type ParameterHandle struct {
	TypeName      string `json:"typeName"`
	MethodName    string `json:"methodName"`
	ParameterName string `json:"parameterName"`
	Position      int    `json:"position"`
}
