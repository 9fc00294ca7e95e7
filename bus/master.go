package bus

import (
	"fmt"

	"github.com/casualjim/tagbus/tag"
)

// Master is the closed aggregate of every declared category. It owns the
// union whose members are the category payload unions, and it is the value
// the bus hands to each subscription at dispatch time.
type Master struct {
	union      *tag.Union
	order      []string
	categories map[string]*CategoryDecl
}

// Aggregate builds the Master over union. The union must have exactly one
// member per category, and each category's payload must be one of them.
func Aggregate(union *tag.Union, categories ...*CategoryDecl) (*Master, error) {
	if union == nil {
		return nil, fmt.Errorf("%w: missing master union", ErrInvalidAggregate)
	}
	if union.Len() != len(categories) {
		return nil, fmt.Errorf("%w: %s has %d members for %d categories",
			ErrInvalidAggregate, union.Name(), union.Len(), len(categories))
	}

	m := &Master{
		union:      union,
		order:      make([]string, 0, len(categories)),
		categories: make(map[string]*CategoryDecl, len(categories)),
	}
	for _, cat := range categories {
		if cat == nil {
			return nil, fmt.Errorf("%w: nil category", ErrInvalidAggregate)
		}
		if _, dup := m.categories[cat.name]; dup {
			return nil, fmt.Errorf("%w: %s is listed twice", ErrInvalidAggregate, cat.name)
		}
		if !union.Has(cat.payload) {
			return nil, fmt.Errorf("%w: %s payload %s is not a member of %s",
				ErrInvalidAggregate, cat.name, cat.payload, union.Name())
		}
		m.categories[cat.name] = cat
		m.order = append(m.order, cat.name)
	}
	return m, nil
}

func (m *Master) Union() *tag.Union {
	return m.union
}

func (m *Master) Len() int {
	return len(m.order)
}

// Categories returns the aggregated category names in declaration order.
func (m *Master) Categories() []string {
	return append([]string(nil), m.order...)
}

func (m *Master) Has(name string) bool {
	_, ok := m.categories[name]
	return ok
}

// Wrap places the payload of msg in the master union.
func (m *Master) Wrap(msg Message) (tag.Variant, error) {
	cat, ok := m.categories[msg.CategoryName()]
	if !ok {
		return tag.Variant{}, fmt.Errorf("%w: %s", ErrNotAggregated, msg.CategoryName())
	}
	payload := msg.Payload()
	if got := tag.Of(payload); got != cat.payload {
		return tag.Variant{}, fmt.Errorf("%w: %s carries %s, declared %s",
			ErrPayloadMismatch, cat.name, got, cat.payload)
	}
	return m.union.TryWrap(payload)
}
