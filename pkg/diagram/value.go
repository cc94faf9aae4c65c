package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/matzehuels/drawspec/pkg/units"
)

// Value is a raw quantity as written in a document: either a bare number,
// read in the context's default unit, or a unit-suffixed string.
type Value string

// Num returns the Value of a bare number.
func Num(f float64) Value {
	return Value(strconv.FormatFloat(f, 'f', -1, 64))
}

// IsZero reports whether the value was omitted.
func (v Value) IsZero() bool { return v == "" }

// Length resolves v to inches. An empty value resolves to def.
func (v Value) Length(def Value) (float64, error) {
	if v.IsZero() {
		v = def
	}
	q, err := units.ParseLength(string(v))
	if err != nil {
		return 0, err
	}
	return q.Value, nil
}

// Weight resolves v to points. An empty value resolves to def.
func (v Value) Weight(def Value) (float64, error) {
	if v.IsZero() {
		v = def
	}
	q, err := units.ParseLineWeight(string(v))
	if err != nil {
		return 0, err
	}
	return q.Value, nil
}

// UnmarshalJSON accepts a JSON number or string.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("quantity must be a number or string: %s", b)
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("quantity out of range: %s", b)
	}
	*v = Num(f)
	return nil
}

// UnmarshalTOML accepts a TOML integer, float or string.
func (v *Value) UnmarshalTOML(data any) error {
	switch x := data.(type) {
	case string:
		*v = Value(x)
	case int64:
		*v = Value(strconv.FormatInt(x, 10))
	case float64:
		*v = Num(x)
	default:
		return fmt.Errorf("quantity must be a number or string, got %T", data)
	}
	return nil
}
