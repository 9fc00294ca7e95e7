// Package tag provides closed tag sets and tagged unions whose values carry
// an explicit runtime type identity, so that values of unrelated types can
// be compared safely: the comparison is false instead of a compile error or
// a panic.
//
// Design decisions:
//   - Explicit identity: every tag and union value reports a TypeID, and
//     equality compares TypeIDs before it compares values
//   - Closed declarations: a Set or Union is declared once per Go type and
//     cannot be extended afterwards
//   - Unions by embedding: a union type is a struct embedding Variant, so it
//     picks up Equal, String, Unwrap and MarshalJSON
//   - Generated boilerplate: cmd/tagbus-gen writes the enumerant types,
//     constants, descriptors and constrained constructors
//
// Value hierarchy:
//   - Value: TypeID + String
//     ├── tag types: integer enumerants described by a Set[T]
//     └── union types: structs embedding Variant, described by a Union
//
// Example usage:
//
//	type A uint8
//
//	const (
//	    AY A = iota
//	    AZ
//	)
//
//	var ASet = stdx.Must1(tag.NewSet[A]("A", "Y", "Z"))
//
//	func (v A) TypeID() tag.TypeID { return ASet.ID() }
//	func (v A) String() string     { return ASet.Format(v) }
//
//	type AB struct{ tag.Variant }
//
//	var ABUnion = stdx.Must1(tag.NewUnion[AB]("AB", ASet, BSet))
//
//	func NewAB[M A | B](m M) AB { return AB{ABUnion.Wrap(m)} }
//
//	ab := NewAB(AY)
//	ab.Equal(AY) // true
//	ab.Equal(AZ) // false
//	ab.Equal(BT) // false
//	tag.Equal(AY, BT) // false
package tag
