// Copyright (c) 2026 Inkwell. All rights reserved.

/*
Package pointer provides small generic helpers for working with pointers.

Optional fields in PATCH payloads are modelled as pointers (nil = "leave
unchanged"); these helpers remove the dereference boilerplate that pattern
creates in handlers and services.
*/
package pointer

// To returns a pointer to the provided value. Useful for struct literals
// whose fields are pointers (e.g. pointer.To(true)).
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value of T if p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, returning fallback if p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
