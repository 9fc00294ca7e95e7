package tag

import "errors"

var (
	// ErrInvalidDeclaration is returned when a tag set or union declaration is malformed.
	ErrInvalidDeclaration = errors.New("invalid declaration")
	// ErrDuplicateDeclaration is returned when a Go type is declared more than once.
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	// ErrNotMember is returned when a value is not one of a union's member types.
	ErrNotMember = errors.New("not a union member")
	// ErrUnknownTag is returned when a name does not belong to a tag set.
	ErrUnknownTag = errors.New("unknown tag")
)
