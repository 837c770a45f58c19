package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/d49976110/simpleswap/x/swap/types"
)

// Keeper of the swap store
type Keeper struct {
	storeKey   storetypes.StoreKey
	bankKeeper types.BankKeeper
	guard      *ReentrancyGuard
	metrics    *Metrics
}

// NewKeeper creates a new swap Keeper instance
func NewKeeper(
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
) Keeper {
	return Keeper{
		storeKey:   key,
		bankKeeper: bankKeeper,
		guard:      NewReentrancyGuard(),
		metrics:    NewMetrics(),
	}
}

// getStore returns the KVStore for the swap module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.Logger().With("module", "x/"+types.ModuleName)
}

// PoolAddress returns the escrow account address holding a pool's reserves.
// Each pool has its own account so custody checks stay per-pool even when
// multiple pools share a denom.
func (k Keeper) PoolAddress(poolID uint64) sdk.AccAddress {
	return address.Module(types.ModuleName, sdk.Uint64ToBigEndian(poolID))
}
