package mirror

import "encoding/json"

// SerializedMember is the single wire-level envelope record. It carries a
// name (when the value sits inside a parent field/property/element), a
// canonical type-id, a raw JSON payload for leaf values, and ordered lists
// of child field and property envelopes for complex values.
//
// IsNull holds iff ValueJSON is nil and both Fields and Props are empty. A
// null envelope still carries TypeName, so a reader always knows what kind
// of value was absent.
type SerializedMember struct {
	Name      string             `json:"name,omitempty"`
	TypeName  string             `json:"typeName"`
	ValueJSON json.RawMessage    `json:"valueJsonElement,omitempty"`
	Fields    []SerializedMember `json:"fields,omitempty"`
	Props     []SerializedMember `json:"props,omitempty"`

	// diagnostics carries the warning list from the top-level Serialize
	// call that produced this envelope (spec section 7 propagation
	// policy). It is excluded from the wire format since it is an
	// observability side channel, not part of the data model.
	diagnostics *Diagnostics `json:"-"`
}

// IsNull reports whether this envelope represents an absent value.
func (m SerializedMember) IsNull() bool {
	return len(m.ValueJSON) == 0 && len(m.Fields) == 0 && len(m.Props) == 0
}

// Diagnostics returns the warnings accumulated while building this
// envelope (empty if it was not produced by a top-level Engine.Serialize
// call, e.g. a nested child envelope read out of Fields/Props directly).
func (m SerializedMember) Diagnostics() *Diagnostics {
	if m.diagnostics == nil {
		return newDiagnostics()
	}
	return m.diagnostics
}

// nullEnvelope builds a null envelope tagged with the given type-id,
// optionally named within its parent.
func nullEnvelope(name, typeName string) SerializedMember {
	return SerializedMember{Name: name, TypeName: typeName}
}

// leafEnvelope builds an envelope carrying a raw scalar JSON payload.
func leafEnvelope(name, typeName string, raw []byte) SerializedMember {
	return SerializedMember{Name: name, TypeName: typeName, ValueJSON: json.RawMessage(raw)}
}

// looksLikeEnvelope reports whether a raw JSON payload is shaped like a
// SerializedMember object (carries at least a "typeName" key). No
// converter in this package calls it.
func looksLikeEnvelope(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var probe struct {
		TypeName *string `json:"typeName"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.TypeName != nil
}
