package tag

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
)

// Value is implemented by every tag and every union value.
type Value interface {
	Identified
	fmt.Stringer
}

// Descriptor describes a declared tag set or union. Union members are
// listed by descriptor.
type Descriptor interface {
	ID() TypeID
	Name() string

	decode(gjson.Result) (Value, error)
}

// Enumerant is the set of underlying types a tag set can be declared on.
type Enumerant interface {
	~int | ~int8 | ~int16 | ~int32 | ~uint | ~uint8 | ~uint16 | ~uint32
}

// Set is the descriptor of a closed set of named tags. The i-th member name
// belongs to the value T(i).
type Set[T Enumerant] struct {
	id      TypeID
	members []string
	index   map[string]T
}

// NewSet declares the tag set T. Each Go type can be declared once.
func NewSet[T Enumerant](name string, members ...string) (*Set[T], error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: tag set needs a name", ErrInvalidDeclaration)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: tag set %s has no members", ErrInvalidDeclaration, name)
	}

	index := make(map[string]T, len(members))
	for i, member := range members {
		if strings.TrimSpace(member) == "" {
			return nil, fmt.Errorf("%w: tag set %s has an empty member at %d", ErrInvalidDeclaration, name, i)
		}
		if _, dup := index[member]; dup {
			return nil, fmt.Errorf("%w: tag set %s repeats %q", ErrInvalidDeclaration, name, member)
		}
		v := T(i)
		if int(v) != i {
			return nil, fmt.Errorf("%w: tag set %s has more members than %T can hold", ErrInvalidDeclaration, name, v)
		}
		index[member] = v
	}

	id, err := declare(name, reflect.TypeFor[T]())
	if err != nil {
		return nil, fmt.Errorf("tag set %s: %w", name, err)
	}
	return &Set[T]{
		id:      id,
		members: members,
		index:   index,
	}, nil
}

func (s *Set[T]) ID() TypeID {
	return s.id
}

func (s *Set[T]) Name() string {
	return s.id.name
}

func (s *Set[T]) Len() int {
	return len(s.members)
}

// Values returns every tag in declaration order.
func (s *Set[T]) Values() []T {
	values := make([]T, len(s.members))
	for i := range s.members {
		values[i] = T(i)
	}
	return values
}

func (s *Set[T]) Contains(v T) bool {
	return v >= 0 && int(v) < len(s.members)
}

// Format renders the member name of v. Values outside the set render as
// Name(n).
func (s *Set[T]) Format(v T) string {
	if !s.Contains(v) {
		return fmt.Sprintf("%s(%d)", s.id.name, v)
	}
	return s.members[int(v)]
}

// Parse resolves a member name, optionally qualified with the set name.
func (s *Set[T]) Parse(name string) (T, error) {
	name = strings.TrimPrefix(name, s.id.name+".")
	v, ok := s.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no member %q", ErrUnknownTag, s.id.name, name)
	}
	return v, nil
}

func (s *Set[T]) MarshalText(v T) ([]byte, error) {
	if !s.Contains(v) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTag, s.Format(v))
	}
	return []byte(s.members[int(v)]), nil
}

func (s *Set[T]) UnmarshalText(dst *T, text []byte) error {
	v, err := s.Parse(string(text))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (s *Set[T]) decode(raw gjson.Result) (Value, error) {
	if raw.Type != gjson.String {
		return nil, fmt.Errorf("%w: %s expects a string, got %s", ErrUnknownTag, s.id.name, raw.Raw)
	}
	v, err := s.Parse(raw.String())
	if err != nil {
		return nil, err
	}
	value, ok := any(v).(Value)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not implement tag.Value", ErrInvalidDeclaration, s.id.name)
	}
	return value, nil
}
