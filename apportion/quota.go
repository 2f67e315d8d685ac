// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

import (
	"fmt"
	"math"
	"strings"
)

// QuotaFunc computes the number of votes that buys one seat.
// Callers guarantee seats >= 1.
type QuotaFunc func(totalVotes float64, seats int) float64

// QuotaKind names a quota function in configuration.
type QuotaKind string

const (
	QuotaHare  QuotaKind = "hare"
	QuotaDroop QuotaKind = "droop"
)

// HareQuota returns totalVotes / seats.
func HareQuota(totalVotes float64, seats int) float64 {
	return totalVotes / float64(seats)
}

// DroopQuota returns floor(totalVotes / (seats + 1)) + 1.
func DroopQuota(totalVotes float64, seats int) float64 {
	return math.Floor(totalVotes/float64(seats+1)) + 1
}

// Func returns the quota function for k. The empty kind means Hare.
func (k QuotaKind) Func() (QuotaFunc, error) {
	switch k {
	case "", QuotaHare:
		return HareQuota, nil
	case QuotaDroop:
		return DroopQuota, nil
	default:
		return nil, fmt.Errorf("%w: quota %q", ErrUnknownMethod, string(k))
	}
}

// ParseQuotaKind normalizes a quota name such as "Hare" or "droop".
func ParseQuotaKind(s string) (QuotaKind, error) {
	k := QuotaKind(strings.ToLower(strings.TrimSpace(s)))
	if _, err := k.Func(); err != nil {
		return "", err
	}
	if k == "" {
		k = QuotaHare
	}
	return k, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *QuotaKind) UnmarshalText(text []byte) error {
	parsed, err := ParseQuotaKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
