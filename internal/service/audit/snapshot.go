package audit

import (
	"fmt"
	"reflect"
	"time"
)

const (
	circularPlaceholder       = "[circular reference]"
	unserializablePlaceholder = "[unserializable]"
)

// maxSnapshotDepth bounds traversal of pathological nesting that a visited
// set alone cannot catch (fresh values at every level).
const maxSnapshotDepth = 32

// Snapshot returns a serialization-safe structural copy of v, built from
// maps, slices and primitives only. Cycles and values that cannot be
// represented (functions, channels, unsafe pointers) become placeholder
// strings instead of errors; audit capture must never fail a mutation.
func Snapshot(v any) any {
	if v == nil {
		return nil
	}
	return snapshotValue(reflect.ValueOf(v), map[uintptr]bool{}, 0)
}

func snapshotValue(v reflect.Value, visited map[uintptr]bool, depth int) any {
	if depth > maxSnapshotDepth {
		return unserializablePlaceholder
	}

	switch v.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return snapshotValue(v.Elem(), visited, depth)
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		addr := v.Pointer()
		if visited[addr] {
			return circularPlaceholder
		}
		visited[addr] = true
		defer delete(visited, addr)
		return snapshotValue(v.Elem(), visited, depth+1)
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		addr := v.Pointer()
		if visited[addr] {
			return circularPlaceholder
		}
		visited[addr] = true
		defer delete(visited, addr)
		return snapshotSequence(v, visited, depth)
	case reflect.Array:
		return snapshotSequence(v, visited, depth)
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		addr := v.Pointer()
		if visited[addr] {
			return circularPlaceholder
		}
		visited[addr] = true
		defer delete(visited, addr)
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = snapshotValue(iter.Value(), visited, depth+1)
		}
		return out
	case reflect.Struct:
		if t, ok := v.Interface().(time.Time); ok {
			return t.Format(time.RFC3339Nano)
		}
		out := make(map[string]any, v.NumField())
		structType := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := structType.Field(i)
			if !field.IsExported() {
				continue
			}
			out[field.Name] = snapshotValue(v.Field(i), visited, depth+1)
		}
		return out
	default:
		// Func, Chan, Complex, UnsafePointer.
		return unserializablePlaceholder
	}
}

func snapshotSequence(v reflect.Value, visited map[uintptr]bool, depth int) any {
	out := make([]any, v.Len())
	for i := 0; i < v.Len(); i++ {
		out[i] = snapshotValue(v.Index(i), visited, depth+1)
	}
	return out
}
