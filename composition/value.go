package composition

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number converts a decoded numeric value into a percentage. Only real numbers
// are accepted: text, booleans and nulls fail with ErrNonNumeric even when the
// text would parse. This is the rule for persisted data.
func Number(v any) (float64, error) {
	var p float64
	switch x := v.(type) {
	case float64:
		p = x
	case float32:
		p = float64(x)
	case int:
		p = float64(x)
	case int64:
		p = float64(x)
	case int32:
		p = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, ErrNonNumeric
		}
		p = f
	default:
		return 0, ErrNonNumeric
	}
	if err := checkPercentage(p); err != nil {
		return 0, err
	}
	return p, nil
}

// Percentage converts form input into a percentage. On top of Number it accepts
// numeric text with either decimal separator and an optional trailing percent
// sign. Other text is rejected, never coerced to zero.
func Percentage(v any) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return Number(v)
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrNonNumeric
	}
	return Number(f)
}
