package mirror

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/zoobzio/sentinel"
)

// Engine is the top-level facade (spec section 4.H): the single entry
// point a caller holds, bundling the type registry, converter registry,
// and the constructor/enum/accessor/deprecated side registries that back
// CreateInstance and the struct converter. zoobzio-cereal's api.go plays
// the same role for Processor[T] values; Engine generalizes it to an
// arbitrary, runtime-registered type universe instead of one generic type
// parameter per call site.
type Engine struct {
	types        *TypeRegistry
	converters   *ConverterRegistry
	constructors *ConstructorRegistry
	enums        *EnumRegistry
	accessors    *AccessorRegistry
	deprecated   *DeprecatedRegistry
	refTuples    *RefTupleRegistry
	invoker      *methodRegistry

	maxDepth int
}

// Option configures an Engine at construction (the functional-options
// pattern zoobzio-cereal's NewProcessor family uses for SetEncryptor /
// SetHasher / SetMasker, generalized here to construction time).
type Option func(*Engine)

// WithMaxDepth overrides the default recursion bound (MaxDepth).
func WithMaxDepth(depth int) Option {
	return func(e *Engine) { e.maxDepth = depth }
}

// WithConverter registers an additional Converter at construction time.
func WithConverter(c Converter) Option {
	return func(e *Engine) { e.converters.Add(c) }
}

// WithBlacklist blacklists one or more types at construction time.
func WithBlacklist(types ...reflect.Type) Option {
	return func(e *Engine) { e.converters.BlacklistMany(types...) }
}

// NewEngine builds an Engine with the built-in leaf and collection
// converters registered, plus any caller-supplied options applied on top
// (so a caller's WithConverter registrations naturally outrank the
// built-ins of equal priority, per the last-registered-wins tiebreak in
// ConverterRegistry.Chain).
func NewEngine(opts ...Option) *Engine {
	types := newTypeRegistry()
	e := &Engine{
		types:        types,
		converters:   newConverterRegistry(types),
		constructors: newConstructorRegistry(),
		enums:        newEnumRegistry(),
		accessors:    newAccessorRegistry(),
		deprecated:   newDeprecatedRegistry(),
		refTuples:    newRefTupleRegistry(),
		invoker:      newMethodRegistry(),
		maxDepth:     MaxDepth,
	}
	registerBuiltins(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register declares name as the canonical type-id string for T (spec
// section 4.A) and, for struct kinds, primes sentinel's scan cache so
// later scanStruct calls hit the fast path instead of the manual reflect
// fallback.
func Register[T any](e *Engine, name string) {
	var zero T
	rt := reflect.TypeOf(&zero).Elem()
	e.types.Register(name, rt)
	if rt.Kind() == reflect.Struct {
		sentinel.Scan[T]()
	}
}

// RegisterInterface declares name as the canonical type-id for interface
// type I and adds it to TypeRegistry.Interfaces, the candidate list
// IsBlacklisted walks for implemented interfaces. Go's zero *I trick does not
// work for interfaces, so the type is supplied by the caller directly.
func RegisterInterface(e *Engine, name string, it reflect.Type) {
	e.types.Register(name, it)
}

// Constructor registers fn, a function returning (T) or (T, error), as a
// CreateInstance candidate for T (spec section 4.A steps 6-7). paramNames
// must name each of fn's parameters, since Go does not retain them.
func Constructor[T any](e *Engine, fn any, paramNames ...string) {
	var zero T
	rt := reflect.TypeOf(&zero).Elem()
	e.constructors.Register(rt, fn, paramNames...)
}

// Enum declares the name/value pairs of a named integer enum type T (spec
// section 0: Go has no enum construct, so any named integer type becomes
// one the moment values are declared here).
func Enum[T ~int | ~int8 | ~int16 | ~int32 | ~int64](e *Engine, values map[string]T) {
	var zero T
	rt := reflect.TypeOf(zero)
	for name, v := range values {
		e.enums.Register(rt, name, int64(v))
	}
}

// Accessor declares a Go-idiomatic "property" on T: getter is a
// zero-argument method name, setter an optional one-argument method name
// (spec section 0: Go has no property construct).
func Accessor[T any](e *Engine, name, getter, setter string) {
	var zero T
	rt := reflect.TypeOf(zero)
	e.accessors.Register(rt, name, getter, setter)
}

// Deprecate marks member (a field or property name) on T as excluded from
// serialization (spec section 4.E deprecated-member policy).
func Deprecate[T any](e *Engine, member string) {
	var zero T
	rt := reflect.TypeOf(zero)
	e.deprecated.Mark(rt, member)
}

// Converters exposes the registry for diagnostics and tests.
func (e *Engine) Converters() *ConverterRegistry { return e.converters }

// Types exposes the type registry for diagnostics and tests.
func (e *Engine) Types() *TypeRegistry { return e.types }

// Blacklist marks rt (and everything structurally reachable from it) as
// un-serializable (spec section 4.C).
func (e *Engine) Blacklist(rt reflect.Type) { e.converters.Blacklist(rt) }

// Serialize converts v into its envelope form (spec section 4.D
// serialize). v may be any Go value; an untyped nil produces a null
// envelope typed "any", and a nil pointer, slice or map produces a null
// envelope typed by its own type-id.
func (e *Engine) Serialize(ctx context.Context, v any) (SerializedMember, error) {
	diags := newDiagnostics()
	cc := &callContext{ctx: ctx, eng: e, diags: diags}
	rv := reflect.ValueOf(v)
	var declared reflect.Type
	if rv.IsValid() {
		declared = rv.Type()
	}
	typeName := "any"
	if declared != nil {
		typeName = e.types.TypeID(declared)
	}
	emitSerializeStart(typeName)
	start := time.Now()
	member, err := e.serialize(cc, rv, declared, "", 0)
	member.diagnostics = diags
	emitSerializeComplete(typeName, time.Since(start), len(diags.Entries()), err)
	return member, err
}

// serialize is the internal recursive worker behind Serialize and every
// converter's member-level recursion (spec section 4.D serialize steps
// 1-6): null check, blacklist check, effective-type resolution, depth
// bound, and dispatch to the highest-priority Converter.
func (e *Engine) serialize(cc *callContext, v reflect.Value, declaredType reflect.Type, name string, depth int) (SerializedMember, error) {
	if depth > e.maxDepth {
		typ := "unknown"
		if declaredType != nil {
			typ = e.types.TypeID(declaredType)
		}
		return SerializedMember{}, errDepthExceeded(typ, depth)
	}

	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) ||
		((v.Kind() == reflect.Interface || v.Kind() == reflect.Slice || v.Kind() == reflect.Map) && v.IsNil()) {
		typ := "any"
		if declaredType != nil {
			typ = e.types.TypeID(declaredType)
		}
		return nullEnvelope(name, typ), nil
	}

	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	rt := v.Type()
	if e.converters.IsBlacklisted(rt) {
		return nullEnvelope(name, e.types.TypeID(rt)), nil
	}

	chain := e.converters.Chain(rt)
	var conv Converter
	if len(chain) > 0 {
		conv = chain[0]
	} else {
		conv = genericStructConverter{}
	}
	if conv.Priority(rt) == 0 {
		return SerializedMember{}, errUnknownType(e.types.TypeID(rt))
	}

	return conv.Serialize(cc, name, v, depth)
}

// Deserialize parses env into a freshly-constructed Go value assignable to
// T (spec section 4.D deserialize).
func Deserialize[T any](e *Engine, ctx context.Context, env SerializedMember) (T, error) {
	var zero T
	diags := newDiagnostics()
	refs := NewDeserializeContext()
	cc := &callContext{ctx: ctx, eng: e, diags: diags, refs: refs}
	rt := reflect.TypeOf(&zero).Elem()
	typeName := e.types.TypeID(rt)
	emitDeserializeStart(typeName)
	start := time.Now()
	v, err := e.deserialize(cc, env, rt, 0)
	emitDeserializeComplete(typeName, time.Since(start), len(diags.Entries()), err)
	if err != nil {
		return zero, err
	}
	if !v.IsValid() {
		return zero, nil
	}
	out, ok := v.Interface().(T)
	if !ok {
		if v.Type().ConvertibleTo(rt) {
			out = v.Convert(rt).Interface().(T)
		} else {
			return zero, errTypeMismatch(e.types.TypeID(rt), "")
		}
	}
	return out, nil
}

// deserialize is the internal recursive worker (spec section 4.D
// deserialize steps 1-5): resolve the target type, handle null/interface
// specially, dispatch to the chosen Converter, then walk any
// fields/props the envelope carries regardless of which converter
// materialized the value.
func (e *Engine) deserialize(cc *callContext, env SerializedMember, fallbackType reflect.Type, depth int) (reflect.Value, error) {
	if depth > e.maxDepth {
		return reflect.Value{}, errDepthExceeded(env.TypeName, depth)
	}

	rt := fallbackType
	if env.TypeName != "" {
		if found, ok := e.types.TypeOf(env.TypeName); ok {
			rt = found
			// A nullable field's present value serializes exactly as its
			// pointee (spec section 4.F, Nullable<T>), so the envelope's
			// typeName names the element, not the pointer. When the
			// caller's declared shape is a pointer to exactly that element
			// type, restore the pointer wrapper rather than overwrite it.
			if fallbackType != nil && fallbackType.Kind() == reflect.Ptr && found == fallbackType.Elem() {
				rt = fallbackType
			}
		} else if fallbackType == nil {
			return reflect.Value{}, errUnknownType(env.TypeName)
		}
	}
	if rt == nil {
		return reflect.Value{}, errUnknownType(env.TypeName)
	}

	hasPayload := len(env.ValueJSON) > 0 || len(env.Fields) > 0 || len(env.Props) > 0

	if rt.Kind() == reflect.Interface {
		if !hasPayload {
			return reflect.Zero(rt), nil
		}
		return reflect.Value{}, errCannotInstantiate(e.types.TypeID(rt), fmt.Errorf("cannot deserialize directly into interface %s", e.types.TypeID(rt)))
	}
	if env.IsNull() {
		return reflect.Zero(rt), nil
	}

	if e.converters.IsBlacklisted(rt) {
		return reflect.Value{}, errUnknownType(e.types.TypeID(rt))
	}

	chain := e.converters.Chain(rt)
	var conv Converter
	if len(chain) > 0 {
		conv = chain[0]
	} else {
		conv = genericStructConverter{}
	}

	value, err := conv.Deserialize(cc, env, rt, depth)
	if err != nil {
		return reflect.Value{}, err
	}

	if cc.refs != nil && env.Name != "" && value.IsValid() && value.CanInterface() {
		cc.refs.Register(env.Name, value.Interface())
	}

	if len(env.Fields) > 0 || len(env.Props) > 0 {
		structVal := value
		if structVal.Kind() == reflect.Ptr && !structVal.IsNil() {
			structVal = structVal.Elem()
		}
		if structVal.Kind() == reflect.Struct {
			if len(env.Fields) > 0 {
				e.assignFieldsDeserialize(cc, structVal, structVal.Type(), env.Fields, depth)
			}
			if len(env.Props) > 0 {
				addr := structVal
				if addr.CanAddr() {
					addr = addr.Addr()
				}
				e.assignPropsDeserialize(cc, addr, structVal.Type(), env.Props, depth)
			}
		}
	}

	return value, nil
}

// Populate applies env onto an existing *T, mutating it in place rather
// than constructing a fresh value (spec section 4.D populate). It reports
// whether the whole-value assignment step succeeded; partial field/prop
// failures are reported only via diagnostics, matching Deserialize's
// tolerance.
func (e *Engine) Populate(ctx context.Context, target any, env SerializedMember) (bool, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return false, fmt.Errorf("%w: Populate requires a non-nil pointer", ErrTypeMismatch)
	}
	diags := newDiagnostics()
	refs := NewDeserializeContext()
	cc := &callContext{ctx: ctx, eng: e, diags: diags, refs: refs}
	typeName := e.types.TypeID(rv.Elem().Type())
	emitPopulateStart(typeName)
	start := time.Now()
	ok, err := e.populate(cc, rv.Elem(), env, 0)
	emitPopulateComplete(typeName, time.Since(start), len(diags.Entries()), err)
	return ok, err
}

func (e *Engine) populate(cc *callContext, dst reflect.Value, env SerializedMember, depth int) (bool, error) {
	if depth > e.maxDepth {
		return false, errDepthExceeded(env.TypeName, depth)
	}

	rt := dst.Type()
	if env.TypeName != "" {
		if found, ok := e.types.TypeOf(env.TypeName); ok {
			rt = found
			// As in deserialize, an envelope naming a pointer's element
			// type keeps the pointer wrapper of the destination.
			if dst.Kind() == reflect.Ptr && found == dst.Type().Elem() {
				rt = dst.Type()
			}
		}
	}
	if !IsCastable(rt, dst.Type()) && !IsCastable(dst.Type(), rt) {
		return false, errTypeMismatch(e.types.TypeID(rt), env.Name)
	}

	if env.IsNull() {
		if dst.CanSet() {
			dst.Set(reflect.Zero(dst.Type()))
		}
		return true, nil
	}

	assignedWhole := false
	if len(env.ValueJSON) > 0 {
		v, err := e.deserialize(cc, SerializedMember{TypeName: env.TypeName, ValueJSON: env.ValueJSON}, rt, depth)
		if err != nil {
			cc.diags.unsupportedMember(e.types.TypeID(rt), env.Name, err.Error())
		} else if dst.CanSet() {
			assignValue(dst, v)
			assignedWhole = true
		}
	}

	structVal := dst
	if structVal.Kind() == reflect.Ptr {
		if structVal.IsNil() {
			if !structVal.CanSet() {
				return assignedWhole, nil
			}
			inst, err := e.createInstance(structVal.Type().Elem(), depth)
			if err != nil {
				return assignedWhole, err
			}
			p := reflect.New(structVal.Type().Elem())
			p.Elem().Set(inst)
			structVal.Set(p)
		}
		structVal = structVal.Elem()
	}
	if structVal.Kind() != reflect.Struct {
		return assignedWhole, nil
	}

	if len(env.Fields) > 0 {
		e.populateFields(cc, structVal, env.Fields, depth)
	}
	if len(env.Props) > 0 {
		addr := structVal
		if addr.CanAddr() {
			addr = addr.Addr()
		}
		e.populateProps(cc, addr, env.Props, depth)
	}

	return assignedWhole, nil
}

// populateFields recurses into Populate for each existing child field
// (spec section 4.D populate step 5); populate creates a nil pointer
// child through createInstance before filling it in.
func (e *Engine) populateFields(cc *callContext, structVal reflect.Value, fields []SerializedMember, depth int) {
	spec := scanStruct(structVal.Type())
	byName := make(map[string]int)
	for i, fm := range spec.Fields {
		nm, excluded := fieldName(fm)
		if excluded {
			continue
		}
		byName[nm] = i
	}

	for _, childEnv := range fields {
		idx, ok := byName[childEnv.Name]
		if !ok {
			cc.diags.unsupportedMember(e.types.TypeID(structVal.Type()), childEnv.Name, "no such field")
			continue
		}
		fv, ok := safeFieldByIndex(structVal, spec.Fields[idx].Index)
		if !ok || !fv.CanSet() {
			cc.diags.unsupportedMember(e.types.TypeID(structVal.Type()), childEnv.Name, "field not settable")
			continue
		}
		if _, err := e.populate(cc, fv, childEnv, depth+1); err != nil {
			cc.diags.unsupportedMember(e.types.TypeID(structVal.Type()), childEnv.Name, err.Error())
		}
	}
}

// populateProps recurses into existing property values via their getter,
// writing back through the setter; a missing setter is diagnosed as
// UnsupportedMember (spec section 4.F reference-tuple asymmetry applied
// uniformly to every read-only property).
func (e *Engine) populateProps(cc *callContext, v reflect.Value, props []SerializedMember, depth int) {
	rt := v.Type()
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	accByName := make(map[string]accessor)
	for _, acc := range e.accessors.Properties(rt) {
		accByName[acc.name] = acc
	}

	for _, childEnv := range props {
		acc, ok := accByName[childEnv.Name]
		if !ok {
			cc.diags.unsupportedMember(e.types.TypeID(rt), childEnv.Name, "no such property")
			continue
		}
		if acc.setter == "" {
			cc.diags.unsupportedMember(e.types.TypeID(rt), childEnv.Name, "read-only property")
			continue
		}
		current, err := callGetter(v, acc.getter)
		if err != nil {
			cc.diags.getterRaised(e.types.TypeID(rt), acc.name, err)
			continue
		}
		if current.Kind() == reflect.Ptr || current.Kind() == reflect.Struct {
			cv := reflect.New(current.Type()).Elem()
			if current.Kind() != reflect.Ptr {
				cv.Set(current)
			}
			if _, err := e.populate(cc, cv, childEnv, depth+1); err == nil {
				_ = callSetter(v, acc.setter, cv)
				continue
			}
		}
		val, err := e.deserialize(cc, childEnv, current.Type(), depth+1)
		if err != nil {
			cc.diags.unsupportedMember(e.types.TypeID(rt), childEnv.Name, err.Error())
			continue
		}
		if err := callSetter(v, acc.setter, val); err != nil {
			cc.diags.unsupportedMember(e.types.TypeID(rt), childEnv.Name, err.Error())
		}
	}
}
