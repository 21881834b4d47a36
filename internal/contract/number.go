package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// scalarText returns the text of a JSON number, string or bool. ok is false
// for null and for strings that are empty after trimming.
func scalarText(data []byte) (text string, ok bool, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", false, nil
	}
	if data[0] != '"' {
		return string(data), true, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false, err
	}
	s = strings.TrimSpace(s)
	return s, s != "", nil
}

// Number decodes a JSON number or a numeric string. null and "" decode to
// a Number that is not set.
type Number struct {
	value float64
	set   bool
}

func NewNumber(v float64) *Number { return &Number{value: v, set: true} }

func (n *Number) UnmarshalJSON(data []byte) error {
	s, ok, err := scalarText(data)
	if err != nil {
		return err
	}
	if !ok {
		*n = Number{}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %q", s)
	}
	*n = Number{value: v, set: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// Float returns nil for a missing or unset number.
func (n *Number) Float() *float64 {
	if n == nil || !n.set {
		return nil
	}
	v := n.value
	return &v
}

// Integer is a Number that must be a whole value within int64. "3" and
// 3.0 are accepted; 2.5 and 1e19 are not.
type Integer struct {
	value int64
	set   bool
}

func NewInteger(v int64) *Integer { return &Integer{value: v, set: true} }

// 2^63 as a float64; every float64 below it converts to int64 exactly.
const int64Bound = 9223372036854775808.0

func (n *Integer) UnmarshalJSON(data []byte) error {
	s, ok, err := scalarText(data)
	if err != nil {
		return err
	}
	if !ok {
		*n = Integer{}
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*n = Integer{value: v, set: true}
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid integer %q", s)
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("invalid integer %q: has a fractional part", s)
	}
	if f < -int64Bound || f >= int64Bound {
		return fmt.Errorf("invalid integer %q: out of range", s)
	}
	*n = Integer{value: int64(f), set: true}
	return nil
}

func (n Integer) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// Value returns nil for a missing or unset integer.
func (n *Integer) Value() *int64 {
	if n == nil || !n.set {
		return nil
	}
	v := n.value
	return &v
}

// Flag decodes true/false, 1/0 and their string forms ("yes"/"no" too).
type Flag struct {
	value bool
	set   bool
}

func NewFlag(v bool) *Flag { return &Flag{value: v, set: true} }

func (f *Flag) UnmarshalJSON(data []byte) error {
	s, ok, err := scalarText(data)
	if err != nil {
		return err
	}
	if !ok {
		*f = Flag{}
		return nil
	}
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		*f = Flag{value: true, set: true}
	case "false", "0", "no":
		*f = Flag{value: false, set: true}
	default:
		return fmt.Errorf("invalid flag %q", s)
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// Value returns nil for a missing or unset flag.
func (f *Flag) Value() *bool {
	if f == nil || !f.set {
		return nil
	}
	v := f.value
	return &v
}
