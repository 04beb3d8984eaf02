// Package mirror is a reflection-driven JSON serialization engine: it walks
// an arbitrary Go value by reflection and produces a self-describing
// envelope (type name, fields, properties) rather than relying on
// encoding/json's struct-tag-only marshaling, so that polymorphic and
// interface-typed values round-trip with their concrete type preserved.
//
// # Engine
//
// An Engine bundles the type registry, converter registry, and the
// constructor/enum/accessor/deprecated side registries a struct converter
// needs. Register a type's canonical name, then call Serialize, Deserialize,
// Populate, or Invoke:
//
//	eng := mirror.NewEngine()
//	mirror.Register[User](eng, "User")
//
//	env, _ := eng.Serialize(ctx, user)
//	restored, _ := mirror.Deserialize[User](eng, ctx, env)
//
// # Converters
//
// A Converter owns the whole envelope for the types it claims: Priority
// reports how well it matches a candidate reflect.Type (0 means "does not
// apply"), and Serialize/Deserialize produce and consume the envelope.
// Built-in converters cover Go's primitive kinds, the value types in
// values.go (Decimal, GUID, Version, DateOnly, TimeOnly, IPEndpoint, ...),
// and the generic collection shapes (pointers as Nullable<T>, slices and
// arrays, maps, Set[T]). Anything else falls back to the generic struct
// converter, which also handles Tuple2..Tuple7 and Tuple8Plus since Go has
// no separate tuple kind.
//
// WithConverter registers an additional Converter that outranks any
// built-in of equal priority, letting a caller override leaf handling for a
// specific type without forking the engine.
//
// # Diagnostics
//
// Serialize, Deserialize, and Populate never abort on an unsupported member
// or panicking getter; they record it in a Diagnostics buffer and go on
// with whatever partial result they produced. The envelope returned by
// Serialize (and by Invoke) carries that buffer: call
// SerializedMember.Diagnostics to inspect it. Deserialize and Populate do
// not return theirs; only its entry count is reported, through their
// completion signals.
package mirror
