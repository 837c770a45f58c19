package keeper

import (
	"context"
	"encoding/binary"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/d49976110/simpleswap/x/swap/types"
)

// GetNextPoolID returns the next pool ID and increments the counter
func (k Keeper) GetNextPoolID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolCountKey)

	var poolID uint64 = 1
	if bz != nil {
		poolID = binary.BigEndian.Uint64(bz)
	}

	nextBz := make([]byte, 8)
	binary.BigEndian.PutUint64(nextBz, poolID+1)
	store.Set(types.PoolCountKey, nextBz)

	return poolID
}

// PeekNextPoolID returns the next pool ID without consuming it
func (k Keeper) PeekNextPoolID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolCountKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// SetNextPoolID sets the next pool ID counter
func (k Keeper) SetNextPoolID(ctx context.Context, poolID uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	store.Set(types.PoolCountKey, bz)
}

// GetPoolCount returns the number of registered pools. Pools are never
// deleted, so the count is derived from the ID counter.
func (k Keeper) GetPoolCount(ctx context.Context) uint64 {
	return k.PeekNextPoolID(ctx) - 1
}

// CreatePool registers a new empty pool for a denom pair. Both reserves and
// total shares start at zero; no funds move. Returns ErrPoolAlreadyExists if
// the pair is taken and ErrMaxPoolsReached at the configured limit.
func (k Keeper) CreatePool(ctx context.Context, creator sdk.AccAddress, denomA, denomB string) (*types.Pool, error) {
	if denomA == denomB {
		return nil, types.ErrSameToken.Wrap("cannot create pool with identical tokens")
	}
	if denomA == "" || denomB == "" {
		return nil, types.ErrInvalidTokenDenom.Wrap("token denoms cannot be empty")
	}

	// Both denoms must be backed by an existing supply
	if !k.bankKeeper.HasSupply(ctx, denomA) {
		return nil, types.ErrInvalidTokenDenom.Wrapf("denom %s has no supply", denomA)
	}
	if !k.bankKeeper.HasSupply(ctx, denomB) {
		return nil, types.ErrInvalidTokenDenom.Wrapf("denom %s has no supply", denomB)
	}

	if denomA > denomB {
		denomA, denomB = denomB, denomA
	}

	if _, err := k.GetPoolByDenoms(ctx, denomA, denomB); err == nil {
		return nil, types.ErrPoolAlreadyExists.Wrapf("pool already exists for pair %s/%s", denomA, denomB)
	}

	params := k.GetParams(ctx)
	poolCount := k.GetPoolCount(ctx)
	if poolCount >= params.MaxPools {
		return nil, types.ErrMaxPoolsReached.Wrapf("maximum number of pools (%d) reached", params.MaxPools)
	}

	poolID := k.GetNextPoolID(ctx)
	pool := types.NewPool(poolID, denomA, denomB, creator.String())

	if err := k.SetPool(ctx, &pool); err != nil {
		return nil, fmt.Errorf("CreatePool: save pool: %w", err)
	}
	k.SetPoolByDenoms(ctx, denomA, denomB, poolID)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
			sdk.NewAttribute(types.AttributeKeyTokenA, denomA),
			sdk.NewAttribute(types.AttributeKeyTokenB, denomB),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
			sdk.NewAttribute(sdk.AttributeKeySender, creator.String()),
		),
	})

	if k.metrics != nil {
		k.metrics.PoolsTotal.Set(float64(k.GetPoolCount(ctx)))
		k.metrics.PoolCreations.Inc()
	}

	return &pool, nil
}

// GetPool retrieves a pool by its unique numeric ID.
// Returns ErrPoolNotFound if the pool does not exist.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (*types.Pool, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolKey(poolID))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d not found", poolID)
	}

	var pool types.Pool
	if err := pool.Unmarshal(bz); err != nil {
		return nil, fmt.Errorf("GetPool: unmarshal pool %d: %w", poolID, err)
	}
	return &pool, nil
}

// SetPool saves a pool to the store
func (k Keeper) SetPool(ctx context.Context, pool *types.Pool) error {
	store := k.getStore(ctx)
	bz, err := pool.Marshal()
	if err != nil {
		return fmt.Errorf("SetPool: marshal pool %d: %w", pool.Id, err)
	}
	store.Set(types.PoolKey(pool.Id), bz)
	return nil
}

// GetPoolByDenoms retrieves a pool by its denom pair, order-independent.
// Returns ErrPoolNotFound if no pool exists for the pair.
func (k Keeper) GetPoolByDenoms(ctx context.Context, denomA, denomB string) (*types.Pool, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolByDenomsKey(denomA, denomB))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("pool not found for pair %s/%s", denomA, denomB)
	}
	return k.GetPool(ctx, binary.BigEndian.Uint64(bz))
}

// SetPoolByDenoms indexes a pool by its denom pair
func (k Keeper) SetPoolByDenoms(ctx context.Context, denomA, denomB string, poolID uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	store.Set(types.PoolByDenomsKey(denomA, denomB), bz)
}

// IteratePools iterates over all pools in ID order
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := pool.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("IteratePools: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns all pools. The pool count is bounded by Params.MaxPools
// so iteration stays bounded as well.
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	pools := make([]types.Pool, 0, k.GetPoolCount(ctx))
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}
