package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Category is a closed grouping of mutually convertible units.
type Category string

// The four supported categories.
const (
	Length      Category = "length"
	Weight      Category = "weight"
	Volume      Category = "volume"
	Temperature Category = "temperature"
)

// In-band results returned by Convert.
const (
	InvalidInput    = "Invalid input"
	InvalidCategory = "Invalid category"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownUnit     = errors.New("unknown unit")
	ErrCrossCategory   = errors.New("units belong to different categories")
	ErrInvalidValue    = errors.New("value is not a finite number")
)

// Temperature unit names.
const (
	Celsius    = "Celsius"
	Fahrenheit = "Fahrenheit"
	Kelvin     = "Kelvin"
)

// factorUnit is one row of a factor table: 1 unit = factor base units.
type factorUnit struct {
	name   string
	factor float64
}

// factorTables lists units in display order. The first entry of each table
// is the base unit.
var factorTables = map[Category][]factorUnit{
	Length: {
		{"meters", 1},
		{"kilometers", 1000},
		{"miles", 1609.344},
		{"feet", 0.3048},
		{"inches", 0.0254},
		{"centimeters", 0.01},
	},
	Weight: {
		{"kilograms", 1},
		{"grams", 0.001},
		{"pounds", 0.453592},
		{"ounces", 0.0283495},
	},
	Volume: {
		{"liters", 1},
		{"milliliters", 0.001},
		{"gallons", 3.78541},
		{"cubic meters", 1000},
		{"cubic feet", 28.3168},
	},
}

var temperatureUnits = []string{Celsius, Fahrenheit, Kelvin}

// Derived lookups, built once in init.
var (
	factors    = map[Category]map[string]float64{}
	unitToCat  = map[string]Category{}
	categories = []Category{Length, Weight, Temperature, Volume}
)

func init() {
	for cat, table := range factorTables {
		m := make(map[string]float64, len(table))
		for _, u := range table {
			m[u.name] = u.factor
			unitToCat[u.name] = cat
		}
		factors[cat] = m
	}
	for _, u := range temperatureUnits {
		unitToCat[u] = Temperature
	}
}

// Categories returns the supported categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory resolves a category name, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Length, Weight, Volume, Temperature:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Units returns the unit names of a category in display order.
func Units(c Category) ([]string, error) {
	if c == Temperature {
		out := make([]string, len(temperatureUnits))
		copy(out, temperatureUnits)
		return out, nil
	}
	table, ok := factorTables[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	out := make([]string, len(table))
	for i, u := range table {
		out[i] = u.name
	}
	return out, nil
}

// BaseUnit returns the pivot unit of a category.
func BaseUnit(c Category) (string, error) {
	if c == Temperature {
		return Celsius, nil
	}
	table, ok := factorTables[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return table[0].name, nil
}

// CategoryOf reports which category a unit belongs to.
func CategoryOf(unit string) (Category, bool) {
	c, ok := unitToCat[unit]
	return c, ok
}

// Convert converts value from one unit to another within category and
// formats the result with four fractional digits.
//
// Convert never fails. An incomplete request (empty unit or value) yields "",
// a value that is not a finite decimal number yields InvalidInput, and an
// unknown category yields InvalidCategory. Category names resolve as in
// ParseCategory. An unrecognized unit name leaves the value
// unchanged on that leg.
func Convert(category, fromUnit, toUnit, value string) string {
	if fromUnit == "" || toUnit == "" || strings.TrimSpace(value) == "" {
		return ""
	}
	v, err := parseValue(value)
	if err != nil {
		return InvalidInput
	}

	c, err := ParseCategory(category)
	if err != nil {
		return InvalidCategory
	}
	var result float64
	switch c {
	case Length, Weight, Volume:
		table := factors[c]
		result = fromBase(table, toBase(table, v, fromUnit), toUnit)
	case Temperature:
		result = fromCelsius(toCelsius(v, fromUnit), toUnit)
	}
	return Format(result)
}

// ConvertValue converts v from one unit to another, rejecting unknown
// categories, unknown units, and units outside the category.
func ConvertValue(c Category, fromUnit, toUnit string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidValue
	}
	if _, err := Units(c); err != nil {
		return 0, err
	}
	for _, u := range []string{fromUnit, toUnit} {
		owner, ok := unitToCat[u]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, u)
		}
		if owner != c {
			return 0, fmt.Errorf("%w: %q is a %s unit, not %s", ErrCrossCategory, u, owner, c)
		}
	}

	if c == Temperature {
		return fromCelsius(toCelsius(v, fromUnit), toUnit), nil
	}
	table := factors[c]
	return fromBase(table, toBase(table, v, fromUnit), toUnit), nil
}

// Format renders v with exactly four fractional digits. Negative zero,
// including values that round to zero, prints without a sign.
func Format(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	if s == "-0.0000" {
		return "0.0000"
	}
	return s
}

// parseValue accepts decimal notation only. strconv also takes hex floats and
// underscore separators, which are refused here.
func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	digits := strings.TrimLeft(s, "+-")
	if strings.ContainsRune(s, '_') || strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, ErrInvalidValue
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidValue
	}
	return v, nil
}

func toBase(table map[string]float64, v float64, unit string) float64 {
	f, ok := table[unit]
	if !ok {
		return v
	}
	return v * f
}

func fromBase(table map[string]float64, v float64, unit string) float64 {
	f, ok := table[unit]
	if !ok {
		return v
	}
	return v / f
}

func toCelsius(v float64, unit string) float64 {
	switch unit {
	case Fahrenheit:
		return (v - 32) * 5 / 9
	case Kelvin:
		return v - 273.15
	default:
		return v
	}
}

func fromCelsius(c float64, unit string) float64 {
	switch unit {
	case Fahrenheit:
		return c*9/5 + 32
	case Kelvin:
		return c + 273.15
	default:
		return c
	}
}
