package mirror

import "reflect"

// RefTuple2 through RefTuple7 are fixed-arity reference tuples (spec
// section 4.F, "reference tuple vs value tuple"). Unlike Tuple2..Tuple7,
// their fields are unexported: the only way to read an item is through its
// Item1()..ItemN() getter, and there is no setter, so the shape genuinely
// has no property-set path — exactly the "immutable properties" the host
// platform's reference-tuple class exposes. Serialize walks the getters
// through the normal AccessorRegistry/genericStructConverter Props path;
// Populate reports UnsupportedMember for each item (spec section 4.F, 9);
// only a constructor-based Deserialize (RegisterRefTupleN, refTupleConverter
// below) can round-trip one. See DESIGN.md.
type RefTuple2[T1, T2 any] struct {
	item1 T1
	item2 T2
}

func (t RefTuple2[T1, T2]) Item1() T1 { return t.item1 }
func (t RefTuple2[T1, T2]) Item2() T2 { return t.item2 }

// NewRefTuple2 builds a fully-populated RefTuple2, the only way to obtain
// one with both items set.
func NewRefTuple2[T1, T2 any](v1 T1, v2 T2) RefTuple2[T1, T2] {
	return RefTuple2[T1, T2]{item1: v1, item2: v2}
}

type RefTuple3[T1, T2, T3 any] struct {
	item1 T1
	item2 T2
	item3 T3
}

func (t RefTuple3[T1, T2, T3]) Item1() T1 { return t.item1 }
func (t RefTuple3[T1, T2, T3]) Item2() T2 { return t.item2 }
func (t RefTuple3[T1, T2, T3]) Item3() T3 { return t.item3 }

func NewRefTuple3[T1, T2, T3 any](v1 T1, v2 T2, v3 T3) RefTuple3[T1, T2, T3] {
	return RefTuple3[T1, T2, T3]{item1: v1, item2: v2, item3: v3}
}

type RefTuple4[T1, T2, T3, T4 any] struct {
	item1 T1
	item2 T2
	item3 T3
	item4 T4
}

func (t RefTuple4[T1, T2, T3, T4]) Item1() T1 { return t.item1 }
func (t RefTuple4[T1, T2, T3, T4]) Item2() T2 { return t.item2 }
func (t RefTuple4[T1, T2, T3, T4]) Item3() T3 { return t.item3 }
func (t RefTuple4[T1, T2, T3, T4]) Item4() T4 { return t.item4 }

func NewRefTuple4[T1, T2, T3, T4 any](v1 T1, v2 T2, v3 T3, v4 T4) RefTuple4[T1, T2, T3, T4] {
	return RefTuple4[T1, T2, T3, T4]{item1: v1, item2: v2, item3: v3, item4: v4}
}

type RefTuple5[T1, T2, T3, T4, T5 any] struct {
	item1 T1
	item2 T2
	item3 T3
	item4 T4
	item5 T5
}

func (t RefTuple5[T1, T2, T3, T4, T5]) Item1() T1 { return t.item1 }
func (t RefTuple5[T1, T2, T3, T4, T5]) Item2() T2 { return t.item2 }
func (t RefTuple5[T1, T2, T3, T4, T5]) Item3() T3 { return t.item3 }
func (t RefTuple5[T1, T2, T3, T4, T5]) Item4() T4 { return t.item4 }
func (t RefTuple5[T1, T2, T3, T4, T5]) Item5() T5 { return t.item5 }

func NewRefTuple5[T1, T2, T3, T4, T5 any](v1 T1, v2 T2, v3 T3, v4 T4, v5 T5) RefTuple5[T1, T2, T3, T4, T5] {
	return RefTuple5[T1, T2, T3, T4, T5]{item1: v1, item2: v2, item3: v3, item4: v4, item5: v5}
}

type RefTuple6[T1, T2, T3, T4, T5, T6 any] struct {
	item1 T1
	item2 T2
	item3 T3
	item4 T4
	item5 T5
	item6 T6
}

func (t RefTuple6[T1, T2, T3, T4, T5, T6]) Item1() T1 { return t.item1 }
func (t RefTuple6[T1, T2, T3, T4, T5, T6]) Item2() T2 { return t.item2 }
func (t RefTuple6[T1, T2, T3, T4, T5, T6]) Item3() T3 { return t.item3 }
func (t RefTuple6[T1, T2, T3, T4, T5, T6]) Item4() T4 { return t.item4 }
func (t RefTuple6[T1, T2, T3, T4, T5, T6]) Item5() T5 { return t.item5 }
func (t RefTuple6[T1, T2, T3, T4, T5, T6]) Item6() T6 { return t.item6 }

func NewRefTuple6[T1, T2, T3, T4, T5, T6 any](v1 T1, v2 T2, v3 T3, v4 T4, v5 T5, v6 T6) RefTuple6[T1, T2, T3, T4, T5, T6] {
	return RefTuple6[T1, T2, T3, T4, T5, T6]{item1: v1, item2: v2, item3: v3, item4: v4, item5: v5, item6: v6}
}

type RefTuple7[T1, T2, T3, T4, T5, T6, T7 any] struct {
	item1 T1
	item2 T2
	item3 T3
	item4 T4
	item5 T5
	item6 T6
	item7 T7
}

func (t RefTuple7[T1, T2, T3, T4, T5, T6, T7]) Item1() T1 { return t.item1 }
func (t RefTuple7[T1, T2, T3, T4, T5, T6, T7]) Item2() T2 { return t.item2 }
func (t RefTuple7[T1, T2, T3, T4, T5, T6, T7]) Item3() T3 { return t.item3 }
func (t RefTuple7[T1, T2, T3, T4, T5, T6, T7]) Item4() T4 { return t.item4 }
func (t RefTuple7[T1, T2, T3, T4, T5, T6, T7]) Item5() T5 { return t.item5 }
func (t RefTuple7[T1, T2, T3, T4, T5, T6, T7]) Item6() T6 { return t.item6 }
func (t RefTuple7[T1, T2, T3, T4, T5, T6, T7]) Item7() T7 { return t.item7 }

func NewRefTuple7[T1, T2, T3, T4, T5, T6, T7 any](v1 T1, v2 T2, v3 T3, v4 T4, v5 T5, v6 T6, v7 T7) RefTuple7[T1, T2, T3, T4, T5, T6, T7] {
	return RefTuple7[T1, T2, T3, T4, T5, T6, T7]{item1: v1, item2: v2, item3: v3, item4: v4, item5: v5, item6: v6, item7: v7}
}

// RefTuple8Plus chains through Rest exactly as Tuple8Plus does, the
// reference-tuple counterpart for arity 8 and above.
type RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest any] struct {
	item1 T1
	item2 T2
	item3 T3
	item4 T4
	item5 T5
	item6 T6
	item7 T7
	rest  Rest
}

func (t RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]) Item1() T1  { return t.item1 }
func (t RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]) Item2() T2  { return t.item2 }
func (t RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]) Item3() T3  { return t.item3 }
func (t RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]) Item4() T4  { return t.item4 }
func (t RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]) Item5() T5  { return t.item5 }
func (t RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]) Item6() T6  { return t.item6 }
func (t RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]) Item7() T7  { return t.item7 }
func (t RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]) Rest() Rest { return t.rest }

func NewRefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest any](v1 T1, v2 T2, v3 T3, v4 T4, v5 T5, v6 T6, v7 T7, rest Rest) RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest] {
	return RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]{item1: v1, item2: v2, item3: v3, item4: v4, item5: v5, item6: v6, item7: v7, rest: rest}
}

// RegisterRefTuple2 declares T = RefTuple2[T1, T2] under name, wires its
// Item1/Item2 getters as read-only properties (Serialize and Populate work
// through the normal AccessorRegistry path, Populate diagnosing each as
// UnsupportedMember per spec section 4.F), and records NewRefTuple2 as the
// constructor refTupleConverter uses to reconstruct a value on Deserialize.
func RegisterRefTuple2[T1, T2 any](e *Engine, name string) {
	Register[RefTuple2[T1, T2]](e, name)
	Accessor[RefTuple2[T1, T2]](e, "Item1", "Item1", "")
	Accessor[RefTuple2[T1, T2]](e, "Item2", "Item2", "")
	var zero RefTuple2[T1, T2]
	e.refTuples.Register(reflect.TypeOf(zero), NewRefTuple2[T1, T2])
}

func RegisterRefTuple3[T1, T2, T3 any](e *Engine, name string) {
	Register[RefTuple3[T1, T2, T3]](e, name)
	Accessor[RefTuple3[T1, T2, T3]](e, "Item1", "Item1", "")
	Accessor[RefTuple3[T1, T2, T3]](e, "Item2", "Item2", "")
	Accessor[RefTuple3[T1, T2, T3]](e, "Item3", "Item3", "")
	var zero RefTuple3[T1, T2, T3]
	e.refTuples.Register(reflect.TypeOf(zero), NewRefTuple3[T1, T2, T3])
}

func RegisterRefTuple4[T1, T2, T3, T4 any](e *Engine, name string) {
	Register[RefTuple4[T1, T2, T3, T4]](e, name)
	Accessor[RefTuple4[T1, T2, T3, T4]](e, "Item1", "Item1", "")
	Accessor[RefTuple4[T1, T2, T3, T4]](e, "Item2", "Item2", "")
	Accessor[RefTuple4[T1, T2, T3, T4]](e, "Item3", "Item3", "")
	Accessor[RefTuple4[T1, T2, T3, T4]](e, "Item4", "Item4", "")
	var zero RefTuple4[T1, T2, T3, T4]
	e.refTuples.Register(reflect.TypeOf(zero), NewRefTuple4[T1, T2, T3, T4])
}

func RegisterRefTuple5[T1, T2, T3, T4, T5 any](e *Engine, name string) {
	Register[RefTuple5[T1, T2, T3, T4, T5]](e, name)
	Accessor[RefTuple5[T1, T2, T3, T4, T5]](e, "Item1", "Item1", "")
	Accessor[RefTuple5[T1, T2, T3, T4, T5]](e, "Item2", "Item2", "")
	Accessor[RefTuple5[T1, T2, T3, T4, T5]](e, "Item3", "Item3", "")
	Accessor[RefTuple5[T1, T2, T3, T4, T5]](e, "Item4", "Item4", "")
	Accessor[RefTuple5[T1, T2, T3, T4, T5]](e, "Item5", "Item5", "")
	var zero RefTuple5[T1, T2, T3, T4, T5]
	e.refTuples.Register(reflect.TypeOf(zero), NewRefTuple5[T1, T2, T3, T4, T5])
}

func RegisterRefTuple6[T1, T2, T3, T4, T5, T6 any](e *Engine, name string) {
	Register[RefTuple6[T1, T2, T3, T4, T5, T6]](e, name)
	Accessor[RefTuple6[T1, T2, T3, T4, T5, T6]](e, "Item1", "Item1", "")
	Accessor[RefTuple6[T1, T2, T3, T4, T5, T6]](e, "Item2", "Item2", "")
	Accessor[RefTuple6[T1, T2, T3, T4, T5, T6]](e, "Item3", "Item3", "")
	Accessor[RefTuple6[T1, T2, T3, T4, T5, T6]](e, "Item4", "Item4", "")
	Accessor[RefTuple6[T1, T2, T3, T4, T5, T6]](e, "Item5", "Item5", "")
	Accessor[RefTuple6[T1, T2, T3, T4, T5, T6]](e, "Item6", "Item6", "")
	var zero RefTuple6[T1, T2, T3, T4, T5, T6]
	e.refTuples.Register(reflect.TypeOf(zero), NewRefTuple6[T1, T2, T3, T4, T5, T6])
}

func RegisterRefTuple7[T1, T2, T3, T4, T5, T6, T7 any](e *Engine, name string) {
	Register[RefTuple7[T1, T2, T3, T4, T5, T6, T7]](e, name)
	Accessor[RefTuple7[T1, T2, T3, T4, T5, T6, T7]](e, "Item1", "Item1", "")
	Accessor[RefTuple7[T1, T2, T3, T4, T5, T6, T7]](e, "Item2", "Item2", "")
	Accessor[RefTuple7[T1, T2, T3, T4, T5, T6, T7]](e, "Item3", "Item3", "")
	Accessor[RefTuple7[T1, T2, T3, T4, T5, T6, T7]](e, "Item4", "Item4", "")
	Accessor[RefTuple7[T1, T2, T3, T4, T5, T6, T7]](e, "Item5", "Item5", "")
	Accessor[RefTuple7[T1, T2, T3, T4, T5, T6, T7]](e, "Item6", "Item6", "")
	Accessor[RefTuple7[T1, T2, T3, T4, T5, T6, T7]](e, "Item7", "Item7", "")
	var zero RefTuple7[T1, T2, T3, T4, T5, T6, T7]
	e.refTuples.Register(reflect.TypeOf(zero), NewRefTuple7[T1, T2, T3, T4, T5, T6, T7])
}

// RegisterRefTuple8Plus declares T = RefTuple8Plus[T1..T7, Rest]; Rest
// itself must separately be a registered type (value tuple, reference
// tuple, or anything else), exactly as Tuple8Plus's Rest does.
func RegisterRefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest any](e *Engine, name string) {
	Register[RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]](e, name)
	Accessor[RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]](e, "Item1", "Item1", "")
	Accessor[RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]](e, "Item2", "Item2", "")
	Accessor[RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]](e, "Item3", "Item3", "")
	Accessor[RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]](e, "Item4", "Item4", "")
	Accessor[RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]](e, "Item5", "Item5", "")
	Accessor[RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]](e, "Item6", "Item6", "")
	Accessor[RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]](e, "Item7", "Item7", "")
	Accessor[RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]](e, "Rest", "Rest", "")
	var zero RefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest]
	e.refTuples.Register(reflect.TypeOf(zero), NewRefTuple8Plus[T1, T2, T3, T4, T5, T6, T7, Rest])
}
