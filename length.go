package cudahist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
)

var lengthRE = regexp.MustCompile(`(?i)^([0-9]+(?:\.[0-9]+)?)\s*(cm|mm|in|pt)?$`)

// ParseLength parses a plot dimension with cm, mm, in or pt unit.
// A bare number is taken as centimeters.
func ParseLength(s string) (vg.Length, error) {
	m := lengthRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %v", s, err)
	}
	l := vg.Length(v)
	switch strings.ToLower(m[2]) {
	case "", "cm":
		l *= vg.Centimeter
	case "mm":
		l *= vg.Millimeter
	case "in":
		l *= vg.Inch
	case "pt":
		l *= vg.Points(1)
	}
	return l, nil
}
