// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParsePercentage parses "35 %", "35%" or "35" as 0.35.
// Malformed, negative or non-finite input yields (0, false).
func ParsePercentage(s string) (float64, bool) {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "%"))
	v, ok := parseNonNegative(s)
	if !ok {
		return 0, false
	}
	return v / 100, true
}

// ParseCount parses a head count such as "64,800,000" or "7400000".
func ParseCount(s string) (float64, bool) {
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	return parseNonNegative(s)
}

func parseNonNegative(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// Percentage is a percentage as sent by a client: either a JSON number
// (35) or a string ("35 %"). Anything else is kept verbatim and fails to
// parse later, which counts as zero.
type Percentage string

// UnmarshalJSON implements json.Unmarshaler. It never rejects a value.
func (p *Percentage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Percentage(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	*p = Percentage(data)
	return nil
}
