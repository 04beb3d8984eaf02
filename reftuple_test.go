package mirror_test

import (
	"context"
	"testing"

	"github.com/zoobzio/mirror"
)

func TestRefTuple2RoundTripsThroughDeserialize(t *testing.T) {
	eng := mirror.NewEngine()
	mirror.RegisterRefTuple2[string, int](eng, "NamePair")

	in := mirror.NewRefTuple2("age", 30)
	env, err := eng.Serialize(context.Background(), in)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	out, err := mirror.Deserialize[mirror.RefTuple2[string, int]](eng, context.Background(), env)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if out.Item1() != "age" || out.Item2() != 30 {
		t.Errorf("got Item1=%q Item2=%d, want age 30", out.Item1(), out.Item2())
	}
}

func TestRefTuple2PopulateIsLossy(t *testing.T) {
	eng := mirror.NewEngine()
	mirror.RegisterRefTuple2[string, int](eng, "NamePair")

	in := mirror.NewRefTuple2("age", 30)
	env, err := eng.Serialize(context.Background(), in)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	var dst mirror.RefTuple2[string, int]
	if _, err := eng.Populate(context.Background(), &dst, env); err != nil {
		t.Fatalf("Populate() error: %v", err)
	}
	if dst.Item1() != "" || dst.Item2() != 0 {
		t.Errorf("got Item1=%q Item2=%d, want both zero: read-only properties must not be set by Populate", dst.Item1(), dst.Item2())
	}
}

func TestRefTuple8PlusChainsThroughRest(t *testing.T) {
	type Tail = mirror.RefTuple2[string, bool]
	type Wide = mirror.RefTuple8Plus[int, int, int, int, int, int, int, Tail]

	eng := mirror.NewEngine()
	mirror.RegisterRefTuple8Plus[int, int, int, int, int, int, int, Tail](eng, "WideRef")
	mirror.RegisterRefTuple2[string, bool](eng, "Tail")

	in := mirror.NewRefTuple8Plus(1, 2, 3, 4, 5, 6, 7, mirror.NewRefTuple2("eight", true))
	env, err := eng.Serialize(context.Background(), in)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	out, err := mirror.Deserialize[Wide](eng, context.Background(), env)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if out.Item7() != 7 || out.Rest().Item1() != "eight" || out.Rest().Item2() != true {
		t.Errorf("got Item7=%d Rest={%q %v}, want Item7=7 Rest={eight true}", out.Item7(), out.Rest().Item1(), out.Rest().Item2())
	}
}
