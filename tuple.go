package mirror

// Tuple2 through Tuple7 are fixed-arity value tuples (spec section 4.F).
// Go has no tuple literal type, so each arity is a small generic struct
// with positional fields, mirroring how the host platform itself only
// special-cases tuples up to arity 7 before falling back to nesting via a
// "Rest" slot (Tuple8Plus below).
type Tuple2[T1, T2 any] struct {
	Item1 T1 `mirror:"Item1"`
	Item2 T2 `mirror:"Item2"`
}

type Tuple3[T1, T2, T3 any] struct {
	Item1 T1 `mirror:"Item1"`
	Item2 T2 `mirror:"Item2"`
	Item3 T3 `mirror:"Item3"`
}

type Tuple4[T1, T2, T3, T4 any] struct {
	Item1 T1 `mirror:"Item1"`
	Item2 T2 `mirror:"Item2"`
	Item3 T3 `mirror:"Item3"`
	Item4 T4 `mirror:"Item4"`
}

type Tuple5[T1, T2, T3, T4, T5 any] struct {
	Item1 T1 `mirror:"Item1"`
	Item2 T2 `mirror:"Item2"`
	Item3 T3 `mirror:"Item3"`
	Item4 T4 `mirror:"Item4"`
	Item5 T5 `mirror:"Item5"`
}

type Tuple6[T1, T2, T3, T4, T5, T6 any] struct {
	Item1 T1 `mirror:"Item1"`
	Item2 T2 `mirror:"Item2"`
	Item3 T3 `mirror:"Item3"`
	Item4 T4 `mirror:"Item4"`
	Item5 T5 `mirror:"Item5"`
	Item6 T6 `mirror:"Item6"`
}

type Tuple7[T1, T2, T3, T4, T5, T6, T7 any] struct {
	Item1 T1 `mirror:"Item1"`
	Item2 T2 `mirror:"Item2"`
	Item3 T3 `mirror:"Item3"`
	Item4 T4 `mirror:"Item4"`
	Item5 T5 `mirror:"Item5"`
	Item6 T6 `mirror:"Item6"`
	Item7 T7 `mirror:"Item7"`
}

// Tuple8Plus models arity 8 and above by chaining through Rest, exactly as
// the host platform's own tuple types do once arity exceeds 7 (spec
// section 4.F): Rest is itself a TupleN (or a further Tuple8Plus),
// recursively.
type Tuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest any] struct {
	Item1 T1   `mirror:"Item1"`
	Item2 T2   `mirror:"Item2"`
	Item3 T3   `mirror:"Item3"`
	Item4 T4   `mirror:"Item4"`
	Item5 T5   `mirror:"Item5"`
	Item6 T6   `mirror:"Item6"`
	Item7 T7   `mirror:"Item7"`
	Rest  Rest `mirror:"Rest"`
}

// Reference-tuple vs value-tuple (spec section 4.F, 9) is modeled by a
// second family, RefTuple2..RefTuple7 and RefTuple8Plus (reftuple.go):
// unexported fields reachable only through read-only Item1()..ItemN()
// getters, so Populate genuinely cannot set them (UnsupportedMember, via
// the same AccessorRegistry no-setter path genuine read-only CLR
// properties use elsewhere) and only RegisterRefTupleN's constructor-based
// Deserialize (reftuple_converter.go) can round-trip one. See DESIGN.md.
