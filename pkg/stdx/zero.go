package stdx

// Zero returns the zero value of T. Message categories answer CategoryName
// on their zero value, so Zero is how a category name is read from a type.
func Zero[T any]() T {
	var zero T
	return zero
}
