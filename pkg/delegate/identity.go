package delegate

import (
	"reflect"
	"unsafe"
)

// identity is what Remove compares: the bound object (nil for plain
// functions) and a pointer naming the function or method.
type identity struct {
	object any
	code   uintptr
}

// funcWord returns the word a func value holds, or 0 for nil. F must be a
// func type. A top-level function always yields the same word. Every
// evaluation of a method value or a capturing closure yields a new one, so
// only the same variable matches again.
func funcWord[F any](fn F) uintptr {
	return *(*uintptr)(unsafe.Pointer(&fn))
}

// codePointer returns the entry point of a func value, or 0 for nil and
// non-func values. Bind pairs it with the receiver.
func codePointer(fn any) uintptr {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return 0
	}
	return v.Pointer()
}

// objectKey returns obj as a map-safe comparison key. Values whose dynamic
// type cannot be compared with == are never matchable.
func objectKey(obj any) (any, bool) {
	if isNil(obj) {
		return nil, false
	}
	if !reflect.TypeOf(obj).Comparable() {
		return nil, false
	}
	return obj, true
}

// isNil reports whether v is nil or an interface holding a nil pointer,
// func, map, chan, slice or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
