package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/d49976110/simpleswap/x/swap/types"
)

// InitGenesis initializes the swap module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid genesis state: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	k.SetNextPoolID(ctx, genState.NextPoolId)

	for _, pool := range genState.Pools {
		pool := pool
		if err := k.SetPool(ctx, &pool); err != nil {
			return fmt.Errorf("failed to set pool %d: %w", pool.Id, err)
		}
		k.SetPoolByDenoms(ctx, pool.TokenA, pool.TokenB, pool.Id)
	}

	for _, pos := range genState.Positions {
		holder, err := sdk.AccAddressFromBech32(pos.Address)
		if err != nil {
			return fmt.Errorf("invalid share holder address %s: %w", pos.Address, err)
		}
		if err := k.SetShares(ctx, pos.PoolId, holder, pos.Shares); err != nil {
			return fmt.Errorf("failed to set share position for pool %d holder %s: %w",
				pos.PoolId, pos.Address, err)
		}
	}

	return nil
}

// ExportGenesis exports the swap module's state to a genesis state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pools: %w", err)
	}

	positions := make([]types.SharePosition, 0)
	for _, pool := range pools {
		if err := k.IterateSharesByPool(ctx, pool.Id, func(holder sdk.AccAddress, shares math.Int) bool {
			positions = append(positions, types.SharePosition{
				PoolId:  pool.Id,
				Address: holder.String(),
				Shares:  shares,
			})
			return false
		}); err != nil {
			return nil, fmt.Errorf("failed to iterate share positions for pool %d: %w", pool.Id, err)
		}
	}

	return &types.GenesisState{
		Params:     k.GetParams(ctx),
		Pools:      pools,
		Positions:  positions,
		NextPoolId: k.PeekNextPoolID(ctx),
	}, nil
}
