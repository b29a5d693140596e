// Package option holds an optional value for places where the zero value is
// meaningful, such as an empty slug.
package option

type Option[T any] struct {
	value  T
	isSome bool
}

func None[T any]() Option[T] {
	return Option[T]{}
}

func Some[T any](value T) Option[T] {
	return Option[T]{value: value, isSome: true}
}

func (x Option[T]) IsSome() bool {
	return x.isSome
}

func (x Option[T]) IsNone() bool {
	return !x.isSome
}

// Value returns the value and whether it is present.
func (x Option[T]) Value() (T, bool) {
	return x.value, x.isSome
}

// Get returns the value and panics for None.
func (x Option[T]) Get() T {
	v, ok := x.Value()
	if !ok {
		panic("option is none")
	}
	return v
}

// GetOr returns the value, or fallback for None.
func (x Option[T]) GetOr(fallback T) T {
	if v, ok := x.Value(); ok {
		return v
	}
	return fallback
}
