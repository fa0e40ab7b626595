/*
Package maybe implements an option type.

A Maybe either holds a value (Just) or it does not (Nothing). Style properties use it to
tell "declared" apart from "not declared", which is different from a declared value meaning
"unconstrained".

The zero value of Maybe is Nothing, which makes it safe to embed Maybes in structs
without initializing them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package maybe

import "fmt"

// Maybe is an option type for values of type T.
type Maybe[T any] struct {
	value T
	just  bool
}

// Just wraps x into a Maybe.
func Just[T any](x T) Maybe[T] {
	return Maybe[T]{value: x, just: true}
}

// Nothing returns an empty Maybe.
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

// IsNothing is true for an empty Maybe.
func (m Maybe[T]) IsNothing() bool {
	return !m.just
}

// Get unwraps the value, returning ok=false for Nothing.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.just
}

// WithDefault returns the wrapped value, or def for Nothing.
func (m Maybe[T]) WithDefault(def T) T {
	if m.just {
		return m.value
	}
	return def
}

// Or returns m if it holds a value, other otherwise.
func (m Maybe[T]) Or(other Maybe[T]) Maybe[T] {
	if m.just {
		return m
	}
	return other
}

func (m Maybe[T]) String() string {
	if m.just {
		return fmt.Sprintf("Just(%v)", m.value)
	}
	return "Nothing"
}

// AndThen chains a computation which may itself produce Nothing.
func AndThen[T, S any](f func(T) Maybe[S], x Maybe[T]) Maybe[S] {
	if v, ok := x.Get(); ok {
		return f(v)
	}
	return Nothing[S]()
}
