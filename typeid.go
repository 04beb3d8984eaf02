package mirror

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// builtinTypeIDs maps the primitive and common value kinds to the canonical
// short names used on the wire. Named types outside this table use their
// package path plus type name instead (see typeID).
var builtinTypeIDs = map[reflect.Kind]string{
	reflect.Bool:    "bool",
	reflect.Int:     "int",
	reflect.Int8:    "int8",
	reflect.Int16:   "int16",
	reflect.Int32:   "int32",
	reflect.Int64:   "int64",
	reflect.Uint:    "uint",
	reflect.Uint8:   "uint8",
	reflect.Uint16:  "uint16",
	reflect.Uint32:  "uint32",
	reflect.Uint64:  "uint64",
	reflect.Float32: "float32",
	reflect.Float64: "float64",
	reflect.String:  "string",
}

// TypeRegistry maps canonical type-id strings to reflect.Type and back. Go
// has no runtime type-by-name lookup, so this registry plays the role the
// host runtime's type loader plays in the original spec (section 3.3):
// every named type an Engine needs to resolve a typeName into must be
// Register-ed once, typically from an init() function, the same way
// zoobzio-cereal's processor.go registers compound tags with sentinel at
// package init.
//
// TypeRegistry is safe for concurrent use.
type TypeRegistry struct {
	mu       sync.RWMutex
	byName   map[string]reflect.Type
	byType   map[reflect.Type]string
	ifaces   []reflect.Type // registered interface types, for IsBlacklisted
}

// newTypeRegistry returns an empty registry seeded with nothing; builtin
// kinds are resolved structurally and never need registration.
func newTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}
}

// Register records rt under name, so TypeID(rt) and TypeOf(name) resolve to
// each other. Registering an interface type additionally makes it a
// candidate for IsBlacklisted's recursive interface check.
func (r *TypeRegistry) Register(name string, rt reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[name] = rt
	r.byType[rt] = name
	if rt.Kind() == reflect.Interface {
		r.ifaces = append(r.ifaces, rt)
	}
}

// Lookup returns the reflect.Type registered under name.
func (r *TypeRegistry) Lookup(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.byName[name]
	return rt, ok
}

// registeredName returns the name rt was explicitly registered under, if
// any. Structural type-ids (slices, maps, pointers, builtins) never consult
// this; only named struct/interface/enum types do.
func (r *TypeRegistry) registeredName(rt reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byType[rt]
	return name, ok
}

// Interfaces returns every interface type registered so far, used by
// IsBlacklisted to walk "implements" edges (Go
// cannot enumerate the interfaces a concrete type satisfies without a
// candidate list).
func (r *TypeRegistry) Interfaces() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]reflect.Type, len(r.ifaces))
	copy(out, r.ifaces)
	return out
}

// TypeID computes the canonical type-id string for rt (spec section 3.3).
// A type registered under an explicit name uses that name; otherwise the
// id is built structurally: builtins get their short Go name, named types
// get "pkgpath.Name", slices get "[]elem", arrays get "[N]elem", maps get
// "map[key]val", and pointers get "*elem" (the nullable-of-T marker).
func (r *TypeRegistry) TypeID(rt reflect.Type) string {
	if rt == nil {
		return ""
	}
	if name, ok := r.registeredName(rt); ok {
		return name
	}
	if rt.Name() != "" && rt.PkgPath() != "" {
		return rt.PkgPath() + "." + rt.Name()
	}
	if short, ok := builtinTypeIDs[rt.Kind()]; ok {
		return short
	}
	switch rt.Kind() {
	case reflect.Ptr:
		return "*" + r.TypeID(rt.Elem())
	case reflect.Slice:
		return "[]" + r.TypeID(rt.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", rt.Len(), r.TypeID(rt.Elem()))
	case reflect.Map:
		return fmt.Sprintf("map[%s]%s", r.TypeID(rt.Key()), r.TypeID(rt.Elem()))
	}
	if rt.PkgPath() != "" {
		return rt.PkgPath() + "." + rt.Name()
	}
	return rt.String()
}

// TypeOf resolves a canonical type-id string back to a reflect.Type,
// attempting the registry first and falling back to structural parsing of
// builtin, pointer, slice, array, and map forms. Unknown named types (those
// never Register-ed) cannot be resolved and return false, matching spec
// section 4.A's UnknownType outcome.
func (r *TypeRegistry) TypeOf(id string) (reflect.Type, bool) {
	if rt, ok := r.Lookup(id); ok {
		return rt, true
	}
	for k, short := range builtinTypeIDs {
		if short == id {
			return reflect.Zero(reflectKindType(k)).Type(), true
		}
	}
	switch {
	case strings.HasPrefix(id, "*"):
		elem, ok := r.TypeOf(id[1:])
		if !ok {
			return nil, false
		}
		return reflect.PtrTo(elem), true
	case strings.HasPrefix(id, "[]"):
		elem, ok := r.TypeOf(id[2:])
		if !ok {
			return nil, false
		}
		return reflect.SliceOf(elem), true
	case strings.HasPrefix(id, "["):
		if close := strings.IndexByte(id, ']'); close > 0 {
			n, err := strconv.Atoi(id[1:close])
			if err == nil {
				elem, ok := r.TypeOf(id[close+1:])
				if ok {
					return reflect.ArrayOf(n, elem), true
				}
			}
		}
	case strings.HasPrefix(id, "map["):
		if close := matchingBracket(id, 3); close > 0 {
			key, ok1 := r.TypeOf(id[4:close])
			val, ok2 := r.TypeOf(id[close+1:])
			if ok1 && ok2 {
				return reflect.MapOf(key, val), true
			}
		}
	}
	return nil, false
}

// matchingBracket finds the index of the "]" that closes the "[" at open,
// accounting for nested brackets (e.g. map[string][]int).
func matchingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// reflectKindType returns the canonical reflect.Type for a builtin kind.
func reflectKindType(k reflect.Kind) reflect.Type {
	switch k {
	case reflect.Bool:
		return reflect.TypeOf(false)
	case reflect.Int:
		return reflect.TypeOf(int(0))
	case reflect.Int8:
		return reflect.TypeOf(int8(0))
	case reflect.Int16:
		return reflect.TypeOf(int16(0))
	case reflect.Int32:
		return reflect.TypeOf(int32(0))
	case reflect.Int64:
		return reflect.TypeOf(int64(0))
	case reflect.Uint:
		return reflect.TypeOf(uint(0))
	case reflect.Uint8:
		return reflect.TypeOf(uint8(0))
	case reflect.Uint16:
		return reflect.TypeOf(uint16(0))
	case reflect.Uint32:
		return reflect.TypeOf(uint32(0))
	case reflect.Uint64:
		return reflect.TypeOf(uint64(0))
	case reflect.Float32:
		return reflect.TypeOf(float32(0))
	case reflect.Float64:
		return reflect.TypeOf(float64(0))
	case reflect.String:
		return reflect.TypeOf("")
	}
	return nil
}

// PeelNullable unwraps a pointer type to its element type, mirroring the
// original spec's Option<T> -> T peel. Non-pointer types are returned
// unchanged with ok=false.
func PeelNullable(rt reflect.Type) (elem reflect.Type, ok bool) {
	if rt != nil && rt.Kind() == reflect.Ptr {
		return rt.Elem(), true
	}
	return rt, false
}
