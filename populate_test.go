package mirror_test

import (
	"context"
	"testing"

	"github.com/zoobzio/mirror"
)

type populateTestChild struct {
	Label string
}

type populateTestWidget struct {
	Name  string
	Count int
	Child *populateTestChild
}

func newPopulateTestEngine(t *testing.T) *mirror.Engine {
	t.Helper()
	eng := mirror.NewEngine()
	mirror.Register[populateTestWidget](eng, "Widget")
	mirror.Register[populateTestChild](eng, "Child")
	return eng
}

func TestPopulateMutatesExistingStructInPlace(t *testing.T) {
	eng := newPopulateTestEngine(t)
	src := populateTestWidget{Name: "gadget", Count: 3, Child: &populateTestChild{Label: "a"}}
	env, err := eng.Serialize(context.Background(), src)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	dst := populateTestWidget{Name: "placeholder", Count: 99}
	if _, err := eng.Populate(context.Background(), &dst, env); err != nil {
		t.Fatalf("Populate() error: %v", err)
	}
	if dst.Name != "gadget" || dst.Count != 3 {
		t.Errorf("got %+v, want Name=gadget Count=3", dst)
	}
}

func TestPopulateCreatesNilPointerChild(t *testing.T) {
	eng := newPopulateTestEngine(t)
	src := populateTestWidget{Name: "gadget", Child: &populateTestChild{Label: "fresh"}}
	env, err := eng.Serialize(context.Background(), src)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	var dst populateTestWidget
	if _, err := eng.Populate(context.Background(), &dst, env); err != nil {
		t.Fatalf("Populate() error: %v", err)
	}
	if dst.Child == nil || dst.Child.Label != "fresh" {
		t.Errorf("Child = %+v, want &{fresh}", dst.Child)
	}
}

func TestPopulateReusesExistingPointerChild(t *testing.T) {
	eng := newPopulateTestEngine(t)
	src := populateTestWidget{Name: "gadget", Child: &populateTestChild{Label: "updated"}}
	env, err := eng.Serialize(context.Background(), src)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	existingChild := &populateTestChild{Label: "stale"}
	dst := populateTestWidget{Child: existingChild}
	if _, err := eng.Populate(context.Background(), &dst, env); err != nil {
		t.Fatalf("Populate() error: %v", err)
	}
	if dst.Child != existingChild {
		t.Error("Populate() should mutate the existing child pointer in place, not replace it")
	}
	if dst.Child.Label != "updated" {
		t.Errorf("Child.Label = %q, want %q", dst.Child.Label, "updated")
	}
}

func TestPopulateRejectsNonPointerTarget(t *testing.T) {
	eng := newPopulateTestEngine(t)
	env, err := eng.Serialize(context.Background(), populateTestWidget{Name: "gadget"})
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if _, err := eng.Populate(context.Background(), populateTestWidget{}, env); err == nil {
		t.Error("Populate() expected an error for a non-pointer target")
	}
}

func TestPopulateToleratesUnknownFieldWithoutErroring(t *testing.T) {
	eng := newPopulateTestEngine(t)
	env, err := eng.Serialize(context.Background(), populateTestWidget{Name: "gadget"})
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	env.Fields = append(env.Fields, mirror.SerializedMember{Name: "Nonexistent", TypeName: "string"})

	var dst populateTestWidget
	if _, err := eng.Populate(context.Background(), &dst, env); err != nil {
		t.Fatalf("Populate() error: %v", err)
	}
	if dst.Name != "gadget" {
		t.Errorf("Name = %q, want %q", dst.Name, "gadget")
	}
}
