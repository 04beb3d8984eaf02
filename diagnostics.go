package mirror

import "fmt"

// Diagnostic is a single warning recorded during one serialize, deserialize,
// populate, or invoke call. Diagnostics never abort a call; they accumulate
// in a Diagnostics buffer alongside whatever partial output the call
// produced, per the propagation policy in spec section 7.
type Diagnostic struct {
	Kind   Kind   // KindUnsupportedMember or KindGetterRaised
	Type   string // type-id the diagnostic was raised against
	Member string // field/property name involved
	Detail string // human-readable explanation
	Cause  error  // underlying cause, if any (e.g. the recovered panic value)
}

func (d Diagnostic) String() string {
	if d.Cause != nil {
		return fmt.Sprintf("%s: %s.%s: %s: %v", d.Kind, d.Type, d.Member, d.Detail, d.Cause)
	}
	return fmt.Sprintf("%s: %s.%s: %s", d.Kind, d.Type, d.Member, d.Detail)
}

// Diagnostics accumulates warnings for a single call. It is not safe for
// concurrent use; one Diagnostics belongs to one in-flight Serialize,
// Deserialize, Populate, or Invoke.
type Diagnostics struct {
	entries []Diagnostic
}

// newDiagnostics returns an empty diagnostics buffer.
func newDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// add appends a diagnostic entry.
func (d *Diagnostics) add(entry Diagnostic) {
	d.entries = append(d.entries, entry)
}

// unsupportedMember records that an envelope named a field or property not
// present on the target type.
func (d *Diagnostics) unsupportedMember(typ, member, detail string) {
	d.add(Diagnostic{Kind: KindUnsupportedMember, Type: typ, Member: member, Detail: detail})
}

// getterRaised records that a property or field getter panicked during
// serialize and the member was omitted from the envelope.
func (d *Diagnostics) getterRaised(typ, member string, cause error) {
	d.add(Diagnostic{Kind: KindGetterRaised, Type: typ, Member: member, Detail: "getter panicked", Cause: cause})
}

// Entries returns the accumulated diagnostics in emission order.
func (d *Diagnostics) Entries() []Diagnostic {
	if d == nil {
		return nil
	}
	return d.entries
}

// Empty reports whether no diagnostics were recorded.
func (d *Diagnostics) Empty() bool {
	return d == nil || len(d.entries) == 0
}
