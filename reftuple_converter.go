package mirror

import (
	"fmt"
	"reflect"
)

// refTupleConverter handles any RefTupleN type declared via
// RegisterRefTupleN (spec section 4.F, "reference tuple"). Serialize is
// inherited unchanged from genericStructConverter: a RefTupleN has no
// exported fields, so the inherited Fields loop contributes nothing and
// the inherited Props loop walks its Item1..ItemN getters exactly like any
// other registered accessor. Deserialize is the one piece this family
// cannot get from the generic struct path, since createInstance only ever
// builds a blank placeholder: it looks up the registered NewRefTupleN
// constructor and calls it with each Item decoded from the envelope,
// producing a fully-populated, round-trip-correct value in one step.
type refTupleConverter struct {
	genericStructConverter
	reg *RefTupleRegistry
}

func (c refTupleConverter) Priority(rt reflect.Type) int {
	t := rt
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if c.reg.IsRefTuple(t) {
		return MaxDepth + 1
	}
	return 0
}

func (c refTupleConverter) Deserialize(cc *callContext, env SerializedMember, rt reflect.Type, depth int) (reflect.Value, error) {
	target := rt
	ptr := false
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
		ptr = true
	}

	ctor, ok := c.reg.Constructor(target)
	if !ok {
		return reflect.Value{}, errCannotInstantiate(cc.eng.types.TypeID(rt), fmt.Errorf("no reference-tuple constructor registered for %s", cc.eng.types.TypeID(rt)))
	}

	byName := make(map[string]SerializedMember, len(env.Props))
	for _, p := range env.Props {
		byName[p.Name] = p
	}

	ft := ctor.Type()
	args := make([]reflect.Value, ft.NumIn())
	for i := 0; i < ft.NumIn(); i++ {
		propName := fmt.Sprintf("Item%d", i+1)
		if i == ft.NumIn()-1 && ft.NumIn() == 8 {
			propName = "Rest"
		}
		childEnv, found := byName[propName]
		if !found {
			args[i] = reflect.Zero(ft.In(i))
			continue
		}
		val, err := cc.eng.deserialize(cc, childEnv, ft.In(i), depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = val
	}

	out := ctor.Call(args)
	v := out[0]
	if ptr {
		p := reflect.New(target)
		p.Elem().Set(v)
		return p, nil
	}
	return v, nil
}
