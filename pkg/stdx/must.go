// Package stdx holds small generic helpers used by declarations that run
// during package initialisation.
package stdx

// Must0 panics when err is not nil.
func Must0(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns v, or panics when err is not nil. Generated declarations
// wrap their constructors with it so a bad declaration stops the program
// before any bus is built:
//
//	var ASet = stdx.Must1(tag.NewSet[A]("A", "Y", "Z"))
func Must1[T any](v T, err error) T {
	Must0(err)
	return v
}
