package tag

import (
	"reflect"

	"github.com/casualjim/tagbus/internal/registry"
)

// TypeID is the runtime identity carried by every tag and union value.
// Two values can only be equal when their TypeIDs are.
type TypeID struct {
	name string
	rt   reflect.Type
}

// Name is the declared display name.
func (id TypeID) Name() string {
	return id.name
}

func (id TypeID) String() string {
	if id.rt == nil {
		return "<none>"
	}
	return id.name
}

func (id TypeID) IsZero() bool {
	return id.rt == nil
}

// Identified is implemented by values that carry an explicit TypeID.
type Identified interface {
	TypeID() TypeID
}

// declared maps a qualified Go type name to the TypeID it was declared with.
var declared = registry.New[TypeID]()

func qualifiedName(rt reflect.Type) string {
	if rt.Name() == "" || rt.PkgPath() == "" {
		return rt.String()
	}
	return rt.PkgPath() + "." + rt.Name()
}

func declare(name string, rt reflect.Type) (TypeID, error) {
	id := TypeID{name: name, rt: rt}
	if !declared.Claim(qualifiedName(rt), id) {
		return TypeID{}, ErrDuplicateDeclaration
	}
	return id, nil
}

func typeIDOf(rt reflect.Type) TypeID {
	if id, ok := declared.Get(qualifiedName(rt)); ok {
		return id
	}
	return TypeID{name: rt.String(), rt: rt}
}

// Of returns the TypeID of v. Values implementing Identified report their
// own identity; anything else gets one derived from its dynamic type.
func Of(v any) TypeID {
	if v == nil {
		return TypeID{}
	}
	if iv, ok := v.(Identified); ok {
		if id := iv.TypeID(); !id.IsZero() {
			return id
		}
	}
	return typeIDOf(reflect.TypeOf(v))
}

// For returns the TypeID of the static type T.
func For[T any]() TypeID {
	return typeIDOf(reflect.TypeFor[T]())
}
