package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// methodRegistry stores the parameter names of a method, keyed by
// receiver type and method name, since Go's reflect cannot recover a
// function's formal parameter names at runtime (SPEC_FULL.md section 0).
// Invoke falls back to positional binding ("0", "1", ...) for any method
// never registered here.
type methodRegistry struct {
	mu    sync.RWMutex
	names map[string][]string
}

func newMethodRegistry() *methodRegistry {
	return &methodRegistry{names: make(map[string][]string)}
}

func methodKey(rt reflect.Type, method string) string {
	return rt.String() + "." + method
}

func (m *methodRegistry) register(rt reflect.Type, method string, paramNames []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names[methodKey(rt, method)] = paramNames
}

func (m *methodRegistry) paramNames(rt reflect.Type, method string) ([]string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names, ok := m.names[methodKey(rt, method)]
	return names, ok
}

// Method declares the parameter names of a method on T (spec section 4.G,
// "resolve method by name/signature"), letting Invoke bind by-name
// arguments instead of only positionally.
func Method[T any](e *Engine, method string, paramNames ...string) {
	var zero T
	rt := reflect.TypeOf(zero)
	e.invoker.register(rt, method, paramNames)
}

// Invoke resolves method by name on target, coerces args (keyed by
// parameter name if Method registered one, else by decimal position
// index "0", "1", ...) into the method's declared parameter types, and
// calls it (spec section 4.G). A panic inside the method is recovered
// and reported as InvocationFailure rather than propagated.
//
// If the method's first return value is a channel Invoke can receive from
// (receive-only or bidirectional), Invoke
// treats it as an awaitable result and blocks on it, honoring ctx
// cancellation at that single point — the only place this engine's
// concurrency model allows cancellation to interrupt an in-flight call
// (spec section 5).
func (e *Engine) Invoke(ctx context.Context, target any, method string, args map[string]json.RawMessage) (SerializedMember, error) {
	emitInvokeStart(method)
	start := time.Now()
	result, err := e.invoke(ctx, target, method, args)
	emitInvokeComplete(method, time.Since(start), err)
	return result, err
}

func (e *Engine) invoke(ctx context.Context, target any, method string, args map[string]json.RawMessage) (SerializedMember, error) {
	rv := reflect.ValueOf(target)
	mv := rv.MethodByName(method)
	if !mv.IsValid() && rv.Kind() != reflect.Ptr && rv.CanAddr() {
		mv = rv.Addr().MethodByName(method)
	}
	if !mv.IsValid() {
		return SerializedMember{}, errMethodResolution(method, fmt.Errorf("no method %q on %s", method, rv.Type()))
	}
	mt := mv.Type()

	names, hasNames := e.invoker.paramNames(rv.Type(), method)
	in := make([]reflect.Value, mt.NumIn())
	for i := 0; i < mt.NumIn(); i++ {
		key := fmt.Sprintf("%d", i)
		if hasNames && i < len(names) {
			key = names[i]
		}
		raw, ok := args[key]
		if !ok {
			raw, ok = args[fmt.Sprintf("%d", i)]
		}
		if !ok {
			return SerializedMember{}, errArgumentCoercion(key, fmt.Errorf("missing argument"))
		}
		val, err := coerceArgument(raw, mt.In(i))
		if err != nil {
			return SerializedMember{}, errArgumentCoercion(key, err)
		}
		in[i] = val
	}

	out, err := callMethod(mv, in)
	if err != nil {
		return SerializedMember{}, errInvocation(method, err)
	}

	result, err := e.awaitResult(ctx, out)
	if err != nil {
		return SerializedMember{}, errInvocation(method, err)
	}
	if !result.IsValid() {
		return SerializedMember{}, nil
	}

	diags := newDiagnostics()
	cc := &callContext{ctx: ctx, eng: e, diags: diags}
	member, err := e.serialize(cc, result, result.Type(), "", 0)
	member.diagnostics = diags
	return member, err
}

// callMethod invokes mv with in, recovering from a panic and separating a
// trailing non-nil error return from the primary result.
func callMethod(mv reflect.Value, in []reflect.Value) (result reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	out := mv.Call(in)
	switch len(out) {
	case 0:
		return reflect.Value{}, nil
	case 1:
		return out[0], nil
	default:
		last := out[len(out)-1]
		if last.Type() == errorInterfaceType {
			if !last.IsNil() {
				return reflect.Value{}, last.Interface().(error)
			}
			if len(out) == 2 {
				return out[0], nil
			}
		}
		return out[0], nil
	}
}

// awaitResult honors ctx cancellation when result is itself a receive
// channel (this engine's stand-in for an awaitable async result, spec
// section 9); any other result type is returned as-is.
func (e *Engine) awaitResult(ctx context.Context, result reflect.Value) (reflect.Value, error) {
	if !result.IsValid() || result.Kind() != reflect.Chan || result.Type().ChanDir() == reflect.SendDir {
		return result, nil
	}

	cases := []reflect.SelectCase{
		{Dir: reflect.SelectRecv, Chan: result},
	}
	if ctx != nil {
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())})
	}
	chosen, recv, ok := reflect.Select(cases)
	if chosen == 1 {
		return reflect.Value{}, ctx.Err()
	}
	if !ok {
		return reflect.Value{}, fmt.Errorf("result channel closed without a value")
	}
	return recv, nil
}
