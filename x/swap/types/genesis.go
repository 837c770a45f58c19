package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisState defines the swap module's genesis state.
type GenesisState struct {
	Params     Params          `json:"params"`
	Pools      []Pool          `json:"pools"`
	Positions  []SharePosition `json:"positions"`
	NextPoolId uint64          `json:"next_pool_id"`
}

// DefaultGenesis returns the default genesis state for the swap module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		Pools:      []Pool{},
		Positions:  []SharePosition{},
		NextPoolId: 1,
	}
}

// Validate ensures the genesis state is well-formed: valid params, valid and
// unique pools, and share positions that sum to each pool's total shares.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	if gs.NextPoolId == 0 {
		return fmt.Errorf("next pool id must be positive")
	}

	if uint64(len(gs.Pools)) > gs.Params.MaxPools {
		return fmt.Errorf("genesis contains %d pools, max is %d", len(gs.Pools), gs.Params.MaxPools)
	}

	seenIDs := make(map[uint64]struct{}, len(gs.Pools))
	seenPairs := make(map[string]struct{}, len(gs.Pools))
	totals := make(map[uint64]math.Int, len(gs.Pools))

	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("invalid pool %d: %w", pool.Id, err)
		}
		if pool.Id >= gs.NextPoolId {
			return fmt.Errorf("pool %d id not below next pool id %d", pool.Id, gs.NextPoolId)
		}
		if _, ok := seenIDs[pool.Id]; ok {
			return fmt.Errorf("duplicate pool id %d", pool.Id)
		}
		seenIDs[pool.Id] = struct{}{}

		pair := pool.TokenA + "/" + pool.TokenB
		if _, ok := seenPairs[pair]; ok {
			return fmt.Errorf("duplicate pool for pair %s", pair)
		}
		seenPairs[pair] = struct{}{}

		totals[pool.Id] = math.ZeroInt()
	}

	seenPositions := make(map[string]struct{}, len(gs.Positions))
	for _, pos := range gs.Positions {
		if _, ok := seenIDs[pos.PoolId]; !ok {
			return fmt.Errorf("share position references unknown pool %d", pos.PoolId)
		}
		if _, err := sdk.AccAddressFromBech32(pos.Address); err != nil {
			return fmt.Errorf("invalid share holder address %s: %w", pos.Address, err)
		}
		if pos.Shares.IsNil() || !pos.Shares.IsPositive() {
			return fmt.Errorf("share position for pool %d holder %s must be positive", pos.PoolId, pos.Address)
		}
		key := fmt.Sprintf("%d/%s", pos.PoolId, pos.Address)
		if _, ok := seenPositions[key]; ok {
			return fmt.Errorf("duplicate share position for pool %d holder %s", pos.PoolId, pos.Address)
		}
		seenPositions[key] = struct{}{}
		totals[pos.PoolId] = totals[pos.PoolId].Add(pos.Shares)
	}

	for _, pool := range gs.Pools {
		if !totals[pool.Id].Equal(pool.TotalShares) {
			return fmt.Errorf("pool %d share positions sum to %s, total shares is %s",
				pool.Id, totals[pool.Id], pool.TotalShares)
		}
	}

	return nil
}
