package bus

import (
	"fmt"
	"strings"

	"github.com/casualjim/tagbus/internal/registry"
	"github.com/casualjim/tagbus/pkg/stdx"
	"github.com/casualjim/tagbus/tag"
)

// Message is a publishable instance of a message category. CategoryName
// must return the same constant for every value of the type, including the
// zero value, because it is the dispatch key.
type Message interface {
	CategoryName() string
	Payload() tag.Value
}

// Category is a Message whose payload is the union type U.
type Category[U tag.Value] interface {
	Message
	Code() U
}

// CategoryDecl records a declared category name and its payload type.
type CategoryDecl struct {
	name    string
	payload tag.TypeID
}

func (c *CategoryDecl) Name() string {
	return c.name
}

func (c *CategoryDecl) Payload() tag.TypeID {
	return c.payload
}

func (c *CategoryDecl) String() string {
	return c.name + "(" + c.payload.String() + ")"
}

var categories = registry.New[*CategoryDecl]()

// Declare binds the category C to its payload union. Category names are
// unique across the process; declarations normally run during package
// initialisation so a conflict surfaces before any bus is built.
func Declare[C Message](payload tag.Descriptor) (*CategoryDecl, error) {
	name := NameOf[C]()
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: %T has an empty category name", ErrInvalidAggregate, stdx.Zero[C]())
	}
	if payload == nil || payload.ID().IsZero() {
		return nil, fmt.Errorf("%w: category %s has no payload declaration", ErrInvalidAggregate, name)
	}

	decl := &CategoryDecl{name: name, payload: payload.ID()}
	if !categories.Claim(name, decl) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
	}
	return decl, nil
}

// NameOf returns the category name of C.
func NameOf[C Message]() string {
	return stdx.Zero[C]().CategoryName()
}
