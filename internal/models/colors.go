package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// ColorList is an ordered list of ARGB colour values.
// It is persisted as a comma-joined string of integers.
type ColorList []int

// ColorsToString joins colours with commas
func ColorsToString(colors []int) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// ToColorList parses a comma-joined colour string back into integers
func ToColorList(s string) (ColorList, error) {
	if s == "" {
		return ColorList{}, nil
	}
	parts := strings.Split(s, ",")
	colors := make(ColorList, 0, len(parts))
	for _, part := range parts {
		c, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid colour %q: %w", part, err)
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// Value implements driver.Valuer
func (c ColorList) Value() (driver.Value, error) {
	return ColorsToString(c), nil
}

// Scan implements sql.Scanner
func (c *ColorList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*c = ColorList{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into ColorList", src)
	}
	colors, err := ToColorList(raw)
	if err != nil {
		return err
	}
	*c = colors
	return nil
}
