package mirror_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/mirror"
)

type invokerTestCalculator struct {
	total int
}

func (c *invokerTestCalculator) Add(a, b int) int {
	c.total = a + b
	return c.total
}

func (c *invokerTestCalculator) Divide(a, b int) (int, error) {
	if b == 0 {
		return 0, errInvokerDivideByZero
	}
	return a / b, nil
}

func (c *invokerTestCalculator) Panics() int {
	panic("boom")
}

func (c *invokerTestCalculator) Slowly() <-chan int {
	out := make(chan int, 1)
	go func() {
		time.Sleep(10 * time.Millisecond)
		out <- 42
	}()
	return out
}

var errInvokerDivideByZero = errors.New("divide by zero")

func rawInt(n int) json.RawMessage {
	b, _ := json.Marshal(n)
	return b
}

func TestInvokeByPositionalArgs(t *testing.T) {
	eng := mirror.NewEngine()
	calc := &invokerTestCalculator{}

	env, err := eng.Invoke(context.Background(), calc, "Add", map[string]json.RawMessage{
		"0": rawInt(2),
		"1": rawInt(3),
	})
	if err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}
	var got int
	if err := json.Unmarshal(env.ValueJSON, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if got != 5 {
		t.Errorf("Add(2, 3) = %d, want 5", got)
	}
}

func TestInvokeByNamedArgs(t *testing.T) {
	eng := mirror.NewEngine()
	mirror.Method[*invokerTestCalculator](eng, "Add", "a", "b")
	calc := &invokerTestCalculator{}

	env, err := eng.Invoke(context.Background(), calc, "Add", map[string]json.RawMessage{
		"b": rawInt(10),
		"a": rawInt(4),
	})
	if err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}
	var got int
	if err := json.Unmarshal(env.ValueJSON, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if got != 14 {
		t.Errorf("Add(a=4, b=10) = %d, want 14", got)
	}
}

func TestInvokeErrorReturnPropagates(t *testing.T) {
	eng := mirror.NewEngine()
	calc := &invokerTestCalculator{}

	_, err := eng.Invoke(context.Background(), calc, "Divide", map[string]json.RawMessage{
		"0": rawInt(10),
		"1": rawInt(0),
	})
	if err == nil {
		t.Fatal("Invoke() expected an error for division by zero")
	}
}

func TestInvokeRecoversPanic(t *testing.T) {
	eng := mirror.NewEngine()
	calc := &invokerTestCalculator{}

	_, err := eng.Invoke(context.Background(), calc, "Panics", nil)
	if err == nil {
		t.Fatal("Invoke() expected an error from a panicking method")
	}
}

func TestInvokeAwaitsChannelResult(t *testing.T) {
	eng := mirror.NewEngine()
	calc := &invokerTestCalculator{}

	env, err := eng.Invoke(context.Background(), calc, "Slowly", nil)
	if err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}
	var got int
	if err := json.Unmarshal(env.ValueJSON, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if got != 42 {
		t.Errorf("Slowly() = %d, want 42", got)
	}
}

func TestInvokeHonorsContextCancellation(t *testing.T) {
	eng := mirror.NewEngine()
	calc := &invokerTestCalculator{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Invoke(ctx, calc, "Slowly", nil)
	if err == nil {
		t.Fatal("Invoke() expected a cancellation error")
	}
}
