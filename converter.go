package mirror

import (
	"context"
	"reflect"
)

// Converter is a polymorphic handler for one target type (or a compatible
// family of types), implementing serialize/deserialize for it. It is the
// engine's replacement for virtual-dispatch-by-type: rather than a type
// switch growing without bound, a priority-ranked set of Converters is
// consulted through ConverterRegistry.Chain (spec section 4.C, 9).
//
// A Converter owns the whole envelope it produces, not just a scalar
// payload: leaf converters fill ValueJSON and leave Fields/Props empty,
// genericStructConverter (base.go) leaves ValueJSON empty and fills
// Fields/Props, and a collection converter fills ValueJSON with a JSON
// array/object shaped payload. Populate is not part of this interface: it
// is implemented once, generically, in Engine.Populate, built out of
// Converter.Deserialize plus the same field/prop walk Engine.deserialize
// uses (spec section 4.D, "populate is deserialize against an existing
// target" distilled to code).
type Converter interface {
	// Priority reports how well this converter handles rt: 0 means "cannot
	// handle", and otherwise higher wins (spec section 4.C).
	Priority(rt reflect.Type) int

	// Cascade reports whether this converter's envelope may itself carry a
	// nested envelope inside ValueJSON, to be interpreted recursively
	// ("cascade mode") rather than treated as an opaque scalar handed to
	// encoding/json directly ("direct mode"); spec section 9, "Envelope vs
	// raw JSON duality".
	Cascade() bool

	// Serialize produces the envelope for v, named name, at recursion
	// depth depth.
	Serialize(cc *callContext, name string, v reflect.Value, depth int) (SerializedMember, error)

	// Deserialize materializes a value of type rt from env. For leaf
	// converters this fully decodes the value; for the struct and
	// collection converters it produces an instance the engine will go on
	// to populate from env.Fields/env.Props or further array/map walking.
	Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error)
}

// callContext threads the engine, a context.Context, the diagnostics
// buffer, and the optional instance-registration hook through one
// serialize/deserialize/populate call, matching the per-call context
// described in spec section 3.4.
type callContext struct {
	ctx   context.Context
	eng   *Engine
	diags *Diagnostics
	refs  *DeserializeContext
}

// DeserializeContext is the optional per-call instance registry spec
// section 3.4 describes: a converter may register a partially-built
// instance before its children are populated, letting descendants resolve
// back-references. It is explicitly not cycle detection — recursion depth
// is what bounds cycles (spec section 9) — it is an opt-in hook for
// converters that need it.
type DeserializeContext struct {
	instances map[string]any
}

// NewDeserializeContext returns an empty per-call instance registry.
func NewDeserializeContext() *DeserializeContext {
	return &DeserializeContext{instances: make(map[string]any)}
}

// Register records v under key for later resolution by Resolve.
func (d *DeserializeContext) Register(key string, v any) {
	if d == nil {
		return
	}
	d.instances[key] = v
}

// Resolve returns the instance registered under key, if any.
func (d *DeserializeContext) Resolve(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.instances[key]
	return v, ok
}
