package types

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"
)

// DefaultMaxPools bounds the number of pools to keep full-store iteration
// (queries, invariants, genesis export) within a sane gas envelope.
const DefaultMaxPools = uint64(1000)

// Params defines the parameters for the swap module.
type Params struct {
	MaxPools uint64 `json:"max_pools" yaml:"max_pools"`
}

// DefaultParams returns the default swap module parameters.
func DefaultParams() Params {
	return Params{
		MaxPools: DefaultMaxPools,
	}
}

// Validate checks that the parameter set is well-formed.
func (p Params) Validate() error {
	if p.MaxPools == 0 {
		return fmt.Errorf("max pools must be positive")
	}
	return nil
}

// String implements the Stringer interface.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// Marshal encodes the params for storage.
func (p Params) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// Unmarshal decodes a stored params record.
func (p *Params) Unmarshal(bz []byte) error {
	return json.Unmarshal(bz, p)
}
