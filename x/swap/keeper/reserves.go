package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/d49976110/simpleswap/x/swap/types"
)

// refreshReserves overwrites the pool's recorded reserves with the escrow
// account's actual balances and persists the pool. Always the last state
// write of a mutating operation, so custody received outside the keeper
// (direct sends to the escrow) is absorbed instead of causing drift.
func (k Keeper) refreshReserves(ctx context.Context, pool *types.Pool) error {
	escrow := k.PoolAddress(pool.Id)
	pool.ReserveA = k.bankKeeper.GetBalance(ctx, escrow, pool.TokenA).Amount
	pool.ReserveB = k.bankKeeper.GetBalance(ctx, escrow, pool.TokenB).Amount

	if err := k.SetPool(ctx, pool); err != nil {
		return fmt.Errorf("refreshReserves: %w", err)
	}

	if k.metrics != nil {
		poolIDStr := fmt.Sprintf("%d", pool.Id)
		k.metrics.PoolReserves.WithLabelValues(poolIDStr, pool.TokenA).Set(metricValue(pool.ReserveA))
		k.metrics.PoolReserves.WithLabelValues(poolIDStr, pool.TokenB).Set(metricValue(pool.ReserveB))
	}

	return nil
}

// GetReserves returns the current reserves of a pool in canonical denom order.
func (k Keeper) GetReserves(ctx context.Context, poolID uint64) (reserveA, reserveB math.Int, err error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return pool.ReserveA, pool.ReserveB, nil
}
