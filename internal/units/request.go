package units

import "strings"

// Request is a single conversion: Value expressed in From, wanted in To.
type Request struct {
	Category string `json:"category" validate:"required"`
	From     string `json:"from"`
	To       string `json:"to"`
	Value    string `json:"value"`
}

// Result is the outcome of a Request.
type Result struct {
	Category string `json:"category"`
	From     string `json:"from"`
	To       string `json:"to"`
	Input    string `json:"input"`

	// Text is the formatted result, or "" / InvalidInput / InvalidCategory.
	Text string `json:"result"`

	// Valid reports whether Text holds a number.
	Valid bool `json:"valid"`
}

// Convert runs the request. In strict mode unknown or mismatched units are
// reported as errors instead of being passed through.
func (r Request) Convert(strict bool) (*Result, error) {
	res := &Result{Category: r.Category, From: r.From, To: r.To, Input: r.Value}
	if c, err := ParseCategory(r.Category); err == nil {
		res.Category = string(c)
	}

	if strict && r.From != "" && r.To != "" && strings.TrimSpace(r.Value) != "" {
		c, err := ParseCategory(r.Category)
		if err != nil {
			return nil, err
		}
		v, err := parseValue(r.Value)
		if err != nil {
			res.Text = InvalidInput
			return res, nil
		}
		out, err := ConvertValue(c, r.From, r.To, v)
		if err != nil {
			return nil, err
		}
		res.Text = Format(out)
		res.Valid = true
		return res, nil
	}

	res.Text = Convert(r.Category, r.From, r.To, r.Value)
	res.Valid = res.Text != "" && res.Text != InvalidInput && res.Text != InvalidCategory
	return res, nil
}
