package mirror

import (
	"errors"
	"reflect"
	"testing"
)

type reflectFixture struct {
	Name string
}

func (r reflectFixture) Label() string            { return r.Name }
func (reflectFixture) Greet(prefix string) string { return prefix }

func newReflectFixtureEngine() *Engine {
	e := NewEngine()
	Register[reflectFixture](e, "ReflectFixture")
	Accessor[reflectFixture](e, "Label", "Label", "")
	Method[reflectFixture](e, "Greet", "prefix")
	return e
}

func TestTypeHandleRoundTrip(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := TypeHandle{TypeName: "ReflectFixture"}
	env, err := typeHandleConverter{}.Serialize(cc, "", reflect.ValueOf(h), 0)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	out, err := typeHandleConverter{}.Deserialize(cc, env, typeHandleType, 0)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if out.Interface().(TypeHandle).TypeName != "ReflectFixture" {
		t.Errorf("got %+v, want TypeName=ReflectFixture", out.Interface())
	}
}

func TestTypeHandleMissingDeclaringTypeErrors(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := TypeHandle{TypeName: ""}
	_, err := typeHandleConverter{}.Serialize(cc, "", reflect.ValueOf(h), 0)
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("got %v, want ErrUnknownType for blank declaringType", err)
	}
}

func TestTypeHandleUnknownDeclaringTypeErrors(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := TypeHandle{TypeName: "NoSuchType"}
	_, err := typeHandleConverter{}.Serialize(cc, "", reflect.ValueOf(h), 0)
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("got %v, want ErrUnknownType for unregistered declaringType", err)
	}
}

func TestFieldHandleResolvesExportedField(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := FieldHandle{TypeName: "ReflectFixture", FieldName: "Name"}
	env, err := fieldHandleConverter{}.Serialize(cc, "", reflect.ValueOf(h), 0)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if _, err := (fieldHandleConverter{}).Deserialize(cc, env, fieldHandleType, 0); err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
}

func TestFieldHandleNotFoundErrors(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := FieldHandle{TypeName: "ReflectFixture", FieldName: "NoSuchField"}
	_, err := fieldHandleConverter{}.Serialize(cc, "", reflect.ValueOf(h), 0)
	if !errors.Is(err, ErrMethodResolution) {
		t.Errorf("got %v, want ErrMethodResolution for unresolvable field", err)
	}
}

func TestPropertyHandleResolvesRegisteredAccessor(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := PropertyHandle{TypeName: "ReflectFixture", PropertyName: "Label"}
	if _, err := (propertyHandleConverter{}).Serialize(cc, "", reflect.ValueOf(h), 0); err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
}

func TestPropertyHandleNotFoundErrors(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := PropertyHandle{TypeName: "ReflectFixture", PropertyName: "NoSuchProperty"}
	_, err := propertyHandleConverter{}.Serialize(cc, "", reflect.ValueOf(h), 0)
	if !errors.Is(err, ErrMethodResolution) {
		t.Errorf("got %v, want ErrMethodResolution for unresolvable property", err)
	}
}

func TestMethodHandleResolvesRegisteredMethod(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := MethodHandle{TypeName: "ReflectFixture", MethodName: "Greet"}
	if _, err := (methodHandleConverter{}).Serialize(cc, "", reflect.ValueOf(h), 0); err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
}

func TestMethodHandleNotFoundErrors(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := MethodHandle{TypeName: "ReflectFixture", MethodName: "NoSuchMethod"}
	_, err := methodHandleConverter{}.Serialize(cc, "", reflect.ValueOf(h), 0)
	if !errors.Is(err, ErrMethodResolution) {
		t.Errorf("got %v, want ErrMethodResolution for unresolvable method", err)
	}
}

func TestConstructorHandleMissingDeclaringTypeErrors(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := ConstructorHandle{TypeName: ""}
	_, err := constructorHandleConverter{}.Serialize(cc, "", reflect.ValueOf(h), 0)
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("got %v, want ErrUnknownType for blank declaringType", err)
	}
}

func TestConstructorHandleRoundTrip(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := ConstructorHandle{TypeName: "ReflectFixture"}
	env, err := constructorHandleConverter{}.Serialize(cc, "", reflect.ValueOf(h), 0)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if _, err := (constructorHandleConverter{}).Deserialize(cc, env, constructorHandleType, 0); err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
}

func TestParameterHandleResolvesPositionAndName(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := ParameterHandle{TypeName: "ReflectFixture", MethodName: "Greet", ParameterName: "prefix", Position: 0}
	if _, err := (parameterHandleConverter{}).Serialize(cc, "", reflect.ValueOf(h), 0); err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
}

func TestParameterHandleWrongNameErrors(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := ParameterHandle{TypeName: "ReflectFixture", MethodName: "Greet", ParameterName: "wrongName", Position: 0}
	_, err := parameterHandleConverter{}.Serialize(cc, "", reflect.ValueOf(h), 0)
	if !errors.Is(err, ErrMethodResolution) {
		t.Errorf("got %v, want ErrMethodResolution for mismatched parameter name", err)
	}
}

func TestParameterHandleOutOfRangePositionErrors(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := ParameterHandle{TypeName: "ReflectFixture", MethodName: "Greet", ParameterName: "prefix", Position: 5}
	_, err := parameterHandleConverter{}.Serialize(cc, "", reflect.ValueOf(h), 0)
	if !errors.Is(err, ErrMethodResolution) {
		t.Errorf("got %v, want ErrMethodResolution for out-of-range position", err)
	}
}

func TestParameterHandleMissingDeclaringTypeErrors(t *testing.T) {
	e := newReflectFixtureEngine()
	cc := &callContext{eng: e, diags: newDiagnostics()}
	h := ParameterHandle{TypeName: "", MethodName: "Greet", ParameterName: "prefix", Position: 0}
	_, err := parameterHandleConverter{}.Serialize(cc, "", reflect.ValueOf(h), 0)
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("got %v, want ErrUnknownType for blank declaringType", err)
	}
}
