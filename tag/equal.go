package tag

import "reflect"

// Unwrapper is implemented by union values; Unwrap returns the active member.
type Unwrapper interface {
	Unwrap() Value
}

// Equal reports whether t and u are equal. It never fails on a type
// mismatch: values of different types are simply not equal.
//
// When both sides have the same TypeID, unions compare their active members
// and everything else compares with ==. When the TypeIDs differ and t is a
// union, the comparison is retried against t's active member, so a union
// holding A.Y equals A.Y.
func Equal[T, U any](t T, u U) bool {
	return equal(any(t), any(u))
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return false
	}

	if Of(a) == Of(b) {
		wa, aok := a.(Unwrapper)
		wb, bok := b.(Unwrapper)
		if aok && bok {
			ia, ib := wa.Unwrap(), wb.Unwrap()
			if ia == nil || ib == nil {
				return false
			}
			return equal(ia, ib)
		}
		return comparableEqual(a, b)
	}

	if wa, ok := a.(Unwrapper); ok {
		if inner := wa.Unwrap(); inner != nil {
			return equal(inner, b)
		}
	}
	return false
}

func comparableEqual(a, b any) (eq bool) {
	if !reflect.TypeOf(a).Comparable() {
		return false
	}
	// interface fields can still hold incomparable values
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
