// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMethod = errors.New("unknown apportionment method")
	ErrInvalidRule   = errors.New("invalid constituency rule")
)

// Kind identifies an apportionment method.
type Kind string

const (
	KindDHondt              Kind = "dhondt"
	KindSainteLague         Kind = "sainte_lague"
	KindModifiedSainteLague Kind = "modified_sainte_lague"
	KindLargestRemainder    Kind = "largest_remainder"
)

// Kinds lists every supported method.
var Kinds = []Kind{KindDHondt, KindSainteLague, KindModifiedSainteLague, KindLargestRemainder}

var kindAliases = map[string]Kind{
	"dhondt":                KindDHondt,
	"d_hondt":               KindDHondt,
	"d'hondt":               KindDHondt,
	"jefferson":             KindDHondt,
	"sainte_lague":          KindSainteLague,
	"webster":               KindSainteLague,
	"modified_sainte_lague": KindModifiedSainteLague,
	"largest_remainder":     KindLargestRemainder,
	"hamilton":              KindLargestRemainder,
}

// ParseKind accepts the canonical names plus a few common spellings
// ("D'Hondt", "sainte-lague", "Largest Remainder").
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_", "ë", "e").Replace(norm)
	if k, ok := kindAliases[norm]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

func (k Kind) String() string {
	return string(k)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Method selects an apportionment method. Quota only matters for
// KindLargestRemainder.
type Method struct {
	Kind  Kind      `json:"kind" yaml:"kind"`
	Quota QuotaKind `json:"quota,omitempty" yaml:"quota,omitempty"`
}

// Validate reports whether the method can be dispatched.
func (m Method) Validate() error {
	switch m.Kind {
	case KindDHondt, KindSainteLague, KindModifiedSainteLague:
		return nil
	case KindLargestRemainder:
		_, err := m.Quota.Func()
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMethod, string(m.Kind))
	}
}

// Allocate runs the method. An unknown kind allocates nothing; call
// Validate first when the method comes from user input.
func (m Method) Allocate(t Tally, seats int) Allocation {
	switch m.Kind {
	case KindDHondt:
		return DHondt(t, seats)
	case KindSainteLague:
		return SainteLague(t, seats)
	case KindModifiedSainteLague:
		return ModifiedSainteLague(t, seats)
	case KindLargestRemainder:
		quota, err := m.Quota.Func()
		if err != nil {
			return Allocation{}
		}
		return LargestRemainder(t, seats, quota)
	default:
		return Allocation{}
	}
}

func (m Method) String() string {
	if m.Kind == KindLargestRemainder {
		quota := m.Quota
		if quota == "" {
			quota = QuotaHare
		}
		return fmt.Sprintf("%s(%s)", m.Kind, quota)
	}
	return string(m.Kind)
}

// Rule is the apportionment setup of one constituency.
type Rule struct {
	Method    Method  `json:"method" yaml:"method"`
	Seats     int     `json:"seats" yaml:"seats"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// Validate checks seats >= 1, threshold in [0,1) and a known method.
func (r Rule) Validate() error {
	if r.Seats < 1 {
		return fmt.Errorf("%w: seats must be at least 1, got %d", ErrInvalidRule, r.Seats)
	}
	if r.Threshold < 0 || r.Threshold >= 1 {
		return fmt.Errorf("%w: threshold must be in [0,1), got %g", ErrInvalidRule, r.Threshold)
	}
	if err := r.Method.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}
	return nil
}

// Apply filters t by the threshold and allocates the rule's seats.
func (r Rule) Apply(t Tally) Allocation {
	return r.Method.Allocate(FilterThreshold(t, r.Threshold), r.Seats)
}
