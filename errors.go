package mirror

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error kinds.
var (
	// ErrUnknownType indicates a type-id did not resolve to a registered type.
	ErrUnknownType = errors.New("unknown type")

	// ErrCannotInstantiate indicates an interface or abstract target could
	// not be created, or every constructor candidate failed.
	ErrCannotInstantiate = errors.New("cannot instantiate")

	// ErrTypeMismatch indicates a populate target's runtime type is not
	// assignable to the resolved envelope type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrCoercionFailed indicates a leaf converter could not coerce a JSON
	// token (string or number) into its target type.
	ErrCoercionFailed = errors.New("coercion failed")

	// ErrArgumentCoercion indicates the method invoker could not bind one
	// parameter from the supplied JSON value.
	ErrArgumentCoercion = errors.New("argument coercion failed")

	// ErrMethodResolution indicates a named method could not be found, or
	// more than one candidate matched ambiguously.
	ErrMethodResolution = errors.New("method resolution failed")

	// ErrInvocationFailure indicates the invoked method itself returned an
	// error or panicked.
	ErrInvocationFailure = errors.New("invocation failed")

	// ErrDepthExceeded indicates recursion exceeded the configured maximum
	// depth.
	ErrDepthExceeded = errors.New("depth exceeded")
)

// Kind identifies the taxonomy entry an EngineError belongs to, independent
// of the wrapped sentinel so callers can switch on it without chained
// errors.Is calls.
type Kind string

// Error kinds, one per row of the taxonomy in spec section 7.
const (
	KindUnknownType       Kind = "UnknownType"
	KindCannotInstantiate Kind = "CannotInstantiate"
	KindTypeMismatch      Kind = "TypeMismatch"
	KindCoercionFailed    Kind = "CoercionFailed"
	KindArgumentCoercion  Kind = "ArgumentCoercion"
	KindMethodResolution  Kind = "MethodResolution"
	KindInvocationFailure Kind = "InvocationFailure"
	KindDepthExceeded     Kind = "DepthExceeded"
	KindUnsupportedMember Kind = "UnsupportedMember"
	KindGetterRaised      Kind = "GetterRaised"
)

// EngineError is the single hard-error wrapper type the facade returns.
// It carries enough context (type, member, depth) that a caller can log or
// branch on the failure without re-deriving it from the message string.
type EngineError struct {
	Kind   Kind   // taxonomy entry, see the Kind* constants
	Err    error  // underlying sentinel error
	Type   string // type-id involved, when known
	Member string // field/property/parameter name involved, when known
	Depth  int    // recursion depth at time of failure, -1 if not applicable
	Cause  error  // wrapped original error, if any
}

func (e *EngineError) Error() string {
	msg := e.Err.Error()
	if e.Type != "" {
		msg = fmt.Sprintf("%s: type %s", msg, e.Type)
	}
	if e.Member != "" {
		msg = fmt.Sprintf("%s, member %s", msg, e.Member)
	}
	if e.Depth >= 0 {
		msg = fmt.Sprintf("%s, depth %d", msg, e.Depth)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *EngineError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Err
}

// Is reports whether target is this error's sentinel, so errors.Is matches
// the Err* kind even when Unwrap returns a separate Cause.
func (e *EngineError) Is(target error) bool { return target == e.Err }

// newErr builds an EngineError for the given kind, defaulting Depth to -1
// (not applicable) so Error() omits it unless explicitly set.
func newErr(kind Kind, sentinelErr error, typ, member string, cause error) *EngineError {
	return &EngineError{
		Kind:   kind,
		Err:    sentinelErr,
		Type:   typ,
		Member: member,
		Depth:  -1,
		Cause:  cause,
	}
}

func errUnknownType(typ string) error {
	return newErr(KindUnknownType, ErrUnknownType, typ, "", nil)
}

func errCannotInstantiate(typ string, cause error) error {
	return newErr(KindCannotInstantiate, ErrCannotInstantiate, typ, "", cause)
}

func errTypeMismatch(typ, member string) error {
	return newErr(KindTypeMismatch, ErrTypeMismatch, typ, member, nil)
}

func errCoercion(typ, member string, cause error) error {
	return newErr(KindCoercionFailed, ErrCoercionFailed, typ, member, cause)
}

func errArgumentCoercion(member string, cause error) error {
	return newErr(KindArgumentCoercion, ErrArgumentCoercion, "", member, cause)
}

func errMethodResolution(name string, cause error) error {
	return newErr(KindMethodResolution, ErrMethodResolution, "", name, cause)
}

func errInvocation(name string, cause error) error {
	return newErr(KindInvocationFailure, ErrInvocationFailure, "", name, cause)
}

func errDepthExceeded(typ string, depth int) error {
	e := newErr(KindDepthExceeded, ErrDepthExceeded, typ, "", nil)
	e.Depth = depth
	return e
}
