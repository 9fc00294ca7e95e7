package tag

import (
	"fmt"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var variantJSON = []byte(`{}`)

// Union is the descriptor of a closed sum over tag sets or other unions.
type Union struct {
	id      TypeID
	members []Descriptor
	index   map[TypeID]int
	box     func(Variant) Value
}

// NewUnion declares the union type U over the given members. U is normally
// a struct embedding Variant.
func NewUnion[U any](name string, members ...Descriptor) (*Union, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: union needs a name", ErrInvalidDeclaration)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: union %s has no members", ErrInvalidDeclaration, name)
	}

	index := make(map[TypeID]int, len(members))
	for i, member := range members {
		if member == nil || member.ID().IsZero() {
			return nil, fmt.Errorf("%w: union %s has an undeclared member at %d", ErrInvalidDeclaration, name, i)
		}
		if _, dup := index[member.ID()]; dup {
			return nil, fmt.Errorf("%w: union %s repeats %s", ErrInvalidDeclaration, name, member.Name())
		}
		index[member.ID()] = i
	}

	rt := reflect.TypeFor[U]()
	id, err := declare(name, rt)
	if err != nil {
		return nil, fmt.Errorf("union %s: %w", name, err)
	}
	return &Union{
		id:      id,
		members: members,
		index:   index,
		box:     boxer(rt),
	}, nil
}

func (u *Union) ID() TypeID {
	return u.id
}

func (u *Union) Name() string {
	return u.id.name
}

func (u *Union) Len() int {
	return len(u.members)
}

// Members returns the member TypeIDs in declaration order.
func (u *Union) Members() []TypeID {
	ids := make([]TypeID, len(u.members))
	for i, member := range u.members {
		ids[i] = member.ID()
	}
	return ids
}

func (u *Union) Has(id TypeID) bool {
	_, ok := u.index[id]
	return ok
}

// IndexOf returns the position of member id, or -1.
func (u *Union) IndexOf(id TypeID) int {
	if i, ok := u.index[id]; ok {
		return i
	}
	return -1
}

// Wrap places v in a new Variant. It panics when v is not a member value;
// generated constructors constrain their argument so that cannot happen.
func (u *Union) Wrap(v any) Variant {
	variant, err := u.TryWrap(v)
	if err != nil {
		panic(err)
	}
	return variant
}

func (u *Union) TryWrap(v any) (Variant, error) {
	value, ok := v.(Value)
	if !ok {
		return Variant{}, fmt.Errorf("%w: %s does not accept %T", ErrNotMember, u.id.name, v)
	}
	if !u.Has(Of(value)) {
		return Variant{}, fmt.Errorf("%w: %s does not accept %s", ErrNotMember, u.id.name, Of(value))
	}
	if w, ok := value.(Unwrapper); ok && w.Unwrap() == nil {
		return Variant{}, fmt.Errorf("%w: %s does not accept an empty %s", ErrNotMember, u.id.name, Of(value))
	}
	return Variant{union: u, held: value}, nil
}

// Decode parses the JSON produced by Variant.MarshalJSON. Nested union
// members come back as their declared Go type when it embeds Variant.
func (u *Union) Decode(data []byte) (Variant, error) {
	if !gjson.ValidBytes(data) {
		return Variant{}, fmt.Errorf("invalid json: %s", data)
	}
	return u.decodeVariant(gjson.ParseBytes(data))
}

func (u *Union) decodeVariant(raw gjson.Result) (Variant, error) {
	if tpe := raw.Get("type").String(); tpe != u.id.name {
		return Variant{}, fmt.Errorf("%w: expected type %q, got %q", ErrNotMember, u.id.name, tpe)
	}
	name := raw.Get("variant").String()
	for _, member := range u.members {
		if member.Name() != name {
			continue
		}
		value, err := member.decode(raw.Get("value"))
		if err != nil {
			return Variant{}, fmt.Errorf("%s.%s: %w", u.id.name, name, err)
		}
		return u.TryWrap(value)
	}
	return Variant{}, fmt.Errorf("%w: %s has no variant %q", ErrNotMember, u.id.name, name)
}

func (u *Union) decode(raw gjson.Result) (Value, error) {
	variant, err := u.decodeVariant(raw)
	if err != nil {
		return nil, err
	}
	if u.box == nil {
		return variant, nil
	}
	return u.box(variant), nil
}

// boxer builds U around a Variant when U is a struct whose first field is an
// embedded Variant, which is the shape tagbus-gen emits.
func boxer(rt reflect.Type) func(Variant) Value {
	if rt.Kind() != reflect.Struct || rt.NumField() == 0 {
		return nil
	}
	if f := rt.Field(0); !f.Anonymous || f.Type != reflect.TypeFor[Variant]() {
		return nil
	}
	return func(v Variant) Value {
		out := reflect.New(rt).Elem()
		out.Field(0).Set(reflect.ValueOf(v))
		if value, ok := out.Interface().(Value); ok {
			return value
		}
		return v
	}
}

// Variant holds exactly one member value of a union. The zero Variant is
// invalid; use Union.Wrap or a generated constructor.
type Variant struct {
	union *Union
	held  Value
}

func (v Variant) TypeID() TypeID {
	if v.union == nil {
		return TypeID{}
	}
	return v.union.id
}

func (v Variant) IsValid() bool {
	return v.union != nil && v.held != nil
}

// Unwrap returns the active member value, or nil for the zero Variant.
func (v Variant) Unwrap() Value {
	return v.held
}

// Index returns the position of the active member in the union, or -1.
func (v Variant) Index() int {
	if !v.IsValid() {
		return -1
	}
	return v.union.IndexOf(Of(v.held))
}

// Equal delegates to the active member; see the package level Equal.
func (v Variant) Equal(other any) bool {
	if !v.IsValid() {
		return false
	}
	return equal(v, other)
}

// String renders the active member.
func (v Variant) String() string {
	if !v.IsValid() {
		return "<invalid>"
	}
	return v.held.String()
}

func (v Variant) MarshalJSON() ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: cannot marshal an invalid variant", ErrNotMember)
	}

	result := variantJSON
	var err error
	result, err = sjson.SetBytes(result, "type", v.union.id.name)
	if err != nil {
		return nil, err
	}
	result, err = sjson.SetBytes(result, "variant", Of(v.held).name)
	if err != nil {
		return nil, err
	}

	valueBytes, err := json.Marshal(v.held)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", Describe(v.held), err)
	}
	return sjson.SetRawBytes(result, "value", valueBytes)
}

// Describe renders v with its type: A.Y for tags and AB(A.Y) for unions.
func Describe(v any) string {
	if v == nil {
		return "<nil>"
	}
	if w, ok := v.(Unwrapper); ok {
		inner := w.Unwrap()
		if inner == nil {
			return Of(v).String() + "(<invalid>)"
		}
		return Of(v).String() + "(" + Describe(inner) + ")"
	}
	if s, ok := v.(fmt.Stringer); ok {
		return Of(v).String() + "." + s.String()
	}
	return fmt.Sprintf("%v", v)
}
