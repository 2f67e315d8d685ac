// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/seatsim/apportion"
)

var (
	ErrUnknownParty        = errors.New("unknown party")
	ErrUnknownConstituency = errors.New("unknown constituency")
	ErrDuplicateName       = errors.New("duplicate name")
)

// Party is a political group as reported in the aggregated table.
type Party struct {
	Name     string `yaml:"name" json:"name" validate:"required"`
	Category int    `yaml:"category" json:"category" validate:"min=0"`
	Color    string `yaml:"color,omitempty" json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Constituency carries a rule and the baseline forecast for one district.
type Constituency struct {
	Name       string              `yaml:"name" json:"name" validate:"required"`
	Method     apportion.Kind      `yaml:"method" json:"method" validate:"required,apportion_method"`
	Quota      apportion.QuotaKind `yaml:"quota,omitempty" json:"quota,omitempty" validate:"omitempty,oneof=hare droop"`
	Seats      int                 `yaml:"seats" json:"seats" validate:"min=1"`
	Threshold  float64             `yaml:"threshold" json:"threshold" validate:"min=0,lt=1"`
	Turnout    string              `yaml:"turnout" json:"turnout"`
	Electorate string              `yaml:"electorate" json:"electorate"`
	Shares     Shares              `yaml:"shares,omitempty" json:"shares,omitzero"`
}

// Shares maps a party to its baseline vote share. A nil map means the
// constituency has no forecast; an empty one means every party polls zero.
type Shares map[string]string

// IsZero reports a missing forecast so that encoders keep "shares: {}".
func (s Shares) IsZero() bool {
	return s == nil
}

// Rule returns the constituency's apportionment rule.
func (c Constituency) Rule() apportion.Rule {
	return apportion.Rule{
		Method:    apportion.Method{Kind: c.Method, Quota: c.Quota},
		Seats:     c.Seats,
		Threshold: c.Threshold,
	}
}

// HasForecast reports whether the constituency has any vote data.
func (c Constituency) HasForecast() bool {
	return c.Shares != nil
}

// Dataset is treated as immutable once loaded. Use Clone before editing.
type Dataset struct {
	Name           string         `yaml:"name" json:"name"`
	Parties        []Party        `yaml:"parties" json:"parties" validate:"required,min=1,dive"`
	Constituencies []Constituency `yaml:"constituencies" json:"constituencies" validate:"required,min=1,dive"`
}

// Party looks up a party by name.
func (d *Dataset) Party(name string) (Party, bool) {
	for _, p := range d.Parties {
		if p.Name == name {
			return p, true
		}
	}
	return Party{}, false
}

// Constituency looks up a constituency by name.
func (d *Dataset) Constituency(name string) (Constituency, bool) {
	for _, c := range d.Constituencies {
		if c.Name == name {
			return c, true
		}
	}
	return Constituency{}, false
}

// TotalSeats sums the seat counts of every constituency.
func (d *Dataset) TotalSeats() int {
	total := 0
	for _, c := range d.Constituencies {
		total += c.Seats
	}
	return total
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Name:           d.Name,
		Parties:        append([]Party(nil), d.Parties...),
		Constituencies: make([]Constituency, len(d.Constituencies)),
	}
	for i, c := range d.Constituencies {
		c.Shares = maps.Clone(c.Shares)
		out.Constituencies[i] = c
	}
	return out
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// RegisterValidation only fails on an empty tag or nil func.
		_ = v.RegisterValidation("apportion_method", func(fl validator.FieldLevel) bool {
			_, err := apportion.ParseKind(fl.Field().String())
			return err == nil
		})
		validate = v
	})
	return validate
}

// Validate checks struct constraints and cross references.
func (d *Dataset) Validate() error {
	if err := structValidator().Struct(d); err != nil {
		return fmt.Errorf("invalid dataset: %w", err)
	}

	parties := make(map[string]bool, len(d.Parties))
	for _, p := range d.Parties {
		if parties[p.Name] {
			return fmt.Errorf("%w: party %q", ErrDuplicateName, p.Name)
		}
		parties[p.Name] = true
	}

	constituencies := make(map[string]bool, len(d.Constituencies))
	for _, c := range d.Constituencies {
		if constituencies[c.Name] {
			return fmt.Errorf("%w: constituency %q", ErrDuplicateName, c.Name)
		}
		constituencies[c.Name] = true

		if err := c.Rule().Validate(); err != nil {
			return fmt.Errorf("constituency %q: %w", c.Name, err)
		}
		for party := range c.Shares {
			if !parties[party] {
				return fmt.Errorf("constituency %q: %w %q", c.Name, ErrUnknownParty, party)
			}
		}
	}

	return nil
}

// Load decodes a YAML dataset and validates it. Unknown fields are rejected.
func Load(data []byte) (*Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// LoadFile reads and loads a YAML dataset from disk.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Load(data)
}

// Marshal encodes the dataset as YAML.
func (d *Dataset) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	return buf.Bytes(), nil
}

//go:embed default.yaml
var defaultYAML []byte

var defaultDataset = sync.OnceValue(func() *Dataset {
	ds, err := Load(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded dataset: %v", err))
	}
	return ds
})

// Default returns a copy of the embedded EU 2024 baseline.
func Default() *Dataset {
	return defaultDataset().Clone()
}
