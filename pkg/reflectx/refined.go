// Package reflectx has reflection helpers for the dispatch path of the bus.
package reflectx

import "reflect"

// IsRefinedType reports whether value is exactly the type R. Named types
// never match their underlying type, and an interface R never matches the
// concrete type of a value stored in it.
func IsRefinedType[R any](value reflect.Type) bool {
	return value != nil && reflect.TypeFor[R]() == value
}

// IsRefinedValue reports whether the dynamic type of v is exactly R.
func IsRefinedValue[R any](v any) bool {
	return IsRefinedType[R](reflect.TypeOf(v))
}
