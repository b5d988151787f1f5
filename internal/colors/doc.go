// Package colors derives RGB and HSL representations from hex color strings.
//
// The canonical color form is a 6-digit hex string prefixed with '#', in
// uppercase (e.g. "#008C8C"). RGB and HSL values are computed on demand and
// are never the source of truth.
//
// # Input Validation
//
// ParseHex accepts an optional leading '#' followed by exactly six hex
// digits, in either case, with surrounding whitespace ignored. Anything else
// fails with ErrInvalidColorFormat; no partial or NaN-tainted output is ever
// produced.
//
// # Conversions
//
// Hex to RGB is exact: each channel is the integer value of its digit pair.
// Hex to HSL is the standard six-sector transform. Hue is reported in degrees
// in [0, 360), saturation and lightness in percent in [0, 100], all rounded to
// the nearest integer.
//
// All functions are pure and safe for concurrent use.
package colors
