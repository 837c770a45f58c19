package types

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
)

// Pool is a two-asset constant product pool. TokenA and TokenB are stored in
// lexicographic order, fixed at creation. ReserveA and ReserveB track the
// pool's custody of each denom and are refreshed from the escrow account
// balances at the end of every mutating operation.
type Pool struct {
	Id          uint64   `json:"id"`
	TokenA      string   `json:"token_a"`
	TokenB      string   `json:"token_b"`
	ReserveA    math.Int `json:"reserve_a"`
	ReserveB    math.Int `json:"reserve_b"`
	TotalShares math.Int `json:"total_shares"`
	Creator     string   `json:"creator"`
}

// NewPool creates an empty pool for the given denom pair, sorting the denoms
// into canonical order.
func NewPool(id uint64, denomA, denomB, creator string) Pool {
	if denomA > denomB {
		denomA, denomB = denomB, denomA
	}
	return Pool{
		Id:          id,
		TokenA:      denomA,
		TokenB:      denomB,
		ReserveA:    math.ZeroInt(),
		ReserveB:    math.ZeroInt(),
		TotalShares: math.ZeroInt(),
		Creator:     creator,
	}
}

// HasDenom reports whether denom is one of the pool's two assets.
func (p Pool) HasDenom(denom string) bool {
	return denom == p.TokenA || denom == p.TokenB
}

// Product returns the constant product k = reserveA * reserveB.
func (p Pool) Product() math.Int {
	return p.ReserveA.Mul(p.ReserveB)
}

// Validate checks structural pool invariants: ordered distinct denoms,
// non-negative reserves and shares, and reserve/share consistency.
func (p Pool) Validate() error {
	if p.Id == 0 {
		return ErrInvalidPoolId.Wrap("pool id cannot be zero")
	}
	if p.TokenA == "" || p.TokenB == "" {
		return ErrInvalidTokenDenom.Wrap("token denoms cannot be empty")
	}
	if p.TokenA == p.TokenB {
		return ErrSameToken.Wrapf("pool %d has identical tokens %s", p.Id, p.TokenA)
	}
	if p.TokenA > p.TokenB {
		return ErrInvalidPoolState.Wrapf("pool %d tokens not in canonical order: %s > %s", p.Id, p.TokenA, p.TokenB)
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() || p.TotalShares.IsNil() {
		return ErrInvalidPoolState.Wrapf("pool %d has nil amounts", p.Id)
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() {
		return ErrInvalidPoolState.Wrapf("pool %d has negative reserves", p.Id)
	}
	if p.TotalShares.IsNegative() {
		return ErrInvalidPoolState.Wrapf("pool %d has negative total shares", p.Id)
	}
	// Shares without reserves means claims on nothing; the converse (reserves
	// without shares) is legal, it is custody donated to the next depositor.
	if p.TotalShares.IsPositive() && (p.ReserveA.IsZero() || p.ReserveB.IsZero()) {
		return ErrInvalidPoolState.Wrapf("pool %d has shares but zero reserves", p.Id)
	}
	return nil
}

// Marshal encodes the pool for storage.
func (p Pool) Marshal() ([]byte, error) {
	bz, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal pool %d: %w", p.Id, err)
	}
	return bz, nil
}

// Unmarshal decodes a stored pool record.
func (p *Pool) Unmarshal(bz []byte) error {
	if err := json.Unmarshal(bz, p); err != nil {
		return fmt.Errorf("unmarshal pool: %w", err)
	}
	return nil
}

// SharePosition is a holder's liquidity claim in a pool, used for genesis
// import/export.
type SharePosition struct {
	PoolId  uint64   `json:"pool_id"`
	Address string   `json:"address"`
	Shares  math.Int `json:"shares"`
}
