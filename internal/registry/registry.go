package registry

import (
	"slices"

	"github.com/alphadose/haxmap"
)

// Registry is a concurrent name to value table. Declarations and bus
// category buckets are both kept in one.
type Registry[T any] interface {
	Get(name string) (T, bool)
	// Claim stores value under name unless the name is already taken.
	// It reports whether the value was stored.
	Claim(name string, value T) bool
	GetOrAdd(name string, value func() T) (T, bool)
	Del(name string)
	Len() int
	Names() []string
}

type registry[T any] struct {
	values *haxmap.Map[string, T]
}

func New[T any]() Registry[T] {
	return &registry[T]{
		values: haxmap.New[string, T](),
	}
}

func (r *registry[T]) Get(name string) (T, bool) {
	return r.values.Get(name)
}

func (r *registry[T]) Claim(name string, value T) bool {
	_, loaded := r.values.GetOrSet(name, value)
	return !loaded
}

func (r *registry[T]) GetOrAdd(name string, valueFn func() T) (T, bool) {
	return r.values.GetOrCompute(name, valueFn)
}

func (r *registry[T]) Del(name string) {
	r.values.Del(name)
}

func (r *registry[T]) Len() int {
	return int(r.values.Len())
}

// Names returns the registered names in lexical order.
func (r *registry[T]) Names() []string {
	names := make([]string, 0, r.values.Len())
	r.values.ForEach(func(name string, _ T) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}
