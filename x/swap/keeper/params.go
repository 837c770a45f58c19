package keeper

import (
	"context"
	"fmt"

	"github.com/d49976110/simpleswap/x/swap/types"
)

// GetParams returns the current module parameters, falling back to defaults
// when none are stored.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	store := k.getStore(ctx)
	bz := store.Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}

	var params types.Params
	if err := params.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("GetParams: corrupted params record: %w", err))
	}
	return params
}

// SetParams validates and stores the module parameters
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("SetParams: %w", err)
	}

	bz, err := params.Marshal()
	if err != nil {
		return fmt.Errorf("SetParams: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}
