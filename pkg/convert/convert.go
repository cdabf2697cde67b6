// Copyright (c) 2026 Inkwell. All rights reserved.

/*
Package convert provides fault-tolerant string conversions for query
parameter parsing.

It wraps [strconv] so that handlers can treat malformed input as absent
input. Do not use it where malformed data must be distinguished from zero
values; use the standard library directly in that case.
*/
package convert

import "strconv"

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {
	if s == "" {
		return 0
	}

	v, _ := strconv.Atoi(s)
	return v
}

// ToIntD converts a string to an int, returning def if parsing fails or
// the string is empty.
func ToIntD(s string, def int) int {
	if s == "" {
		return def
	}

	if v, err := strconv.Atoi(s); err == nil {
		return v
	}

	return def
}

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {
	if s == "" {
		return false
	}

	v, _ := strconv.ParseBool(s)
	return v
}
