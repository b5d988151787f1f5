// Package units converts numeric values between named units of measure.
//
// Units are grouped into four closed categories:
//   - length (base unit: meters)
//   - weight (base unit: kilograms)
//   - volume (base unit: liters)
//   - temperature (pivot unit: Celsius)
//
// Length, weight, and volume conversions multiply the input by the source
// unit's factor to reach the base unit, then divide by the target unit's
// factor. Temperature conversions are affine and always pass through Celsius.
//
// # Two Entry Points
//
// Convert is the form-facing API. It accepts raw strings, never returns an
// error, and reports problems in-band:
//   - "" when the source unit, target unit, or value is missing
//   - "Invalid input" when the value is not a finite number
//   - "Invalid category" when the category is not one of the four above
//
// Unknown unit names are passed through unconverted on that leg.
//
// ConvertValue is the strict API. It works on float64 and returns
// ErrUnknownCategory, ErrUnknownUnit, or ErrCrossCategory instead of
// guessing.
//
// # Thread Safety
//
// The factor tables are package-level and never mutated after
// initialization. All functions are safe for concurrent use.
package units
