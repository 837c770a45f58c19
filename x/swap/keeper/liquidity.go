package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/d49976110/simpleswap/x/swap/types"
)

// GetShares retrieves a holder's share balance in a pool. Missing positions
// read as zero.
func (k Keeper) GetShares(ctx context.Context, poolID uint64, holder sdk.AccAddress) (math.Int, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.ShareKey(poolID, holder))
	if bz == nil {
		return math.ZeroInt(), nil
	}

	var shares math.Int
	if err := shares.Unmarshal(bz); err != nil {
		return math.ZeroInt(), err
	}
	return shares, nil
}

// SetShares sets a holder's share balance in a pool, deleting the position
// when it reaches zero.
func (k Keeper) SetShares(ctx context.Context, poolID uint64, holder sdk.AccAddress, shares math.Int) error {
	store := k.getStore(ctx)
	if shares.IsZero() {
		store.Delete(types.ShareKey(poolID, holder))
		return nil
	}

	bz, err := shares.Marshal()
	if err != nil {
		return err
	}
	store.Set(types.ShareKey(poolID, holder), bz)
	return nil
}

// IterateSharesByPool iterates over all share positions in a pool
func (k Keeper) IterateSharesByPool(ctx context.Context, poolID uint64, cb func(holder sdk.AccAddress, shares math.Int) (stop bool)) error {
	store := k.getStore(ctx)
	prefix := types.ShareKeyByPoolPrefix(poolID)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var shares math.Int
		if err := shares.Unmarshal(iterator.Value()); err != nil {
			return err
		}

		holder := sdk.AccAddress(iterator.Key()[len(prefix):])
		if cb(holder, shares) {
			break
		}
	}
	return nil
}

// AddLiquidity deposits up to amountA of tokenA and amountB of tokenB into a
// pool and mints liquidity shares. Tokens may be given in either order. Both
// declared amounts are pulled first; whatever the current reserve ratio
// cannot consume is refunded before minting. Returns the consumed amounts in
// canonical order and the minted shares.
func (k Keeper) AddLiquidity(ctx context.Context, provider sdk.AccAddress, poolID uint64, tokenA string, amountA math.Int, tokenB string, amountB math.Int) (usedA, usedB, shares math.Int, err error) {
	usedA, usedB, shares = math.ZeroInt(), math.ZeroInt(), math.ZeroInt()
	err = k.withPoolLock(poolID, "add_liquidity", func() error {
		var lockErr error
		usedA, usedB, shares, lockErr = k.addLiquidity(ctx, provider, poolID, tokenA, amountA, tokenB, amountB)
		return lockErr
	})
	return usedA, usedB, shares, err
}

func (k Keeper) addLiquidity(ctx context.Context, provider sdk.AccAddress, poolID uint64, tokenA string, amountA math.Int, tokenB string, amountB math.Int) (math.Int, math.Int, math.Int, error) {
	zero := math.ZeroInt()

	if amountA.IsNil() || !amountA.IsPositive() || amountB.IsNil() || !amountB.IsPositive() {
		return zero, zero, zero, types.ErrInvalidAmount.Wrap("deposit amounts must be positive")
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return zero, zero, zero, err
	}

	// Resolve the deposit to the pool's canonical denom order
	var depositA, depositB math.Int
	switch {
	case tokenA == pool.TokenA && tokenB == pool.TokenB:
		depositA, depositB = amountA, amountB
	case tokenA == pool.TokenB && tokenB == pool.TokenA:
		depositA, depositB = amountB, amountA
	default:
		return zero, zero, zero, types.ErrInvalidTokenPair.Wrapf(
			"invalid token pair for pool %d: expected %s/%s, got %s/%s",
			poolID, pool.TokenA, pool.TokenB, tokenA, tokenB)
	}

	// Pull both declared amounts before computing
	escrow := k.PoolAddress(poolID)
	pulled := sdk.NewCoins(sdk.NewCoin(pool.TokenA, depositA), sdk.NewCoin(pool.TokenB, depositB))
	if err := k.bankKeeper.SendCoins(ctx, provider, escrow, pulled); err != nil {
		return zero, zero, zero, types.ErrTransferFailed.Wrapf("pull deposit from provider: %v", err)
	}

	var usedA, usedB, minted math.Int
	if pool.TotalShares.IsZero() {
		// First deposit fixes the pool's implied price at the deposit ratio.
		// Shares are the geometric mean of the two amounts, truncated.
		sqrt, err := math.LegacyNewDecFromInt(depositA.Mul(depositB)).ApproxSqrt()
		if err != nil {
			k.refundDeposit(ctx, escrow, provider, pulled, "share calculation failure")
			return zero, zero, zero, types.ErrInvalidAmount.Wrapf("initial share calculation: %v", err)
		}
		minted = sqrt.TruncateInt()
		if minted.IsZero() {
			k.refundDeposit(ctx, escrow, provider, pulled, "initial deposit too small")
			return zero, zero, zero, types.ErrInvalidAmount.Wrap("initial deposit too small to mint shares")
		}
		usedA, usedB = depositA, depositB
	} else {
		if pool.ReserveA.IsZero() || pool.ReserveB.IsZero() {
			k.refundDeposit(ctx, escrow, provider, pulled, "corrupted pool state")
			return zero, zero, zero, types.ErrInvalidPoolState.Wrap("pool has shares but zero reserves")
		}

		// Mint the liquidity that the scarcer side supports, then derive the
		// consumed amounts from that same share value so recorded reserves
		// and minted shares stay proportional.
		byA := depositA.Mul(pool.TotalShares).Quo(pool.ReserveA)
		byB := depositB.Mul(pool.TotalShares).Quo(pool.ReserveB)
		minted = math.MinInt(byA, byB)
		if minted.IsZero() {
			k.refundDeposit(ctx, escrow, provider, pulled, "deposit too small")
			return zero, zero, zero, types.ErrInvalidAmount.Wrap("deposit too small to mint shares")
		}

		usedA = minted.Mul(pool.ReserveA).Quo(pool.TotalShares)
		usedB = minted.Mul(pool.ReserveB).Quo(pool.TotalShares)

		// Refund the excess of the over-supplied side before minting
		refund := sdk.NewCoins(
			sdk.NewCoin(pool.TokenA, depositA.Sub(usedA)),
			sdk.NewCoin(pool.TokenB, depositB.Sub(usedB)),
		)
		if !refund.IsZero() {
			if err := k.bankKeeper.SendCoins(ctx, escrow, provider, refund); err != nil {
				k.refundDeposit(ctx, escrow, provider, pulled, "excess refund failure")
				return zero, zero, zero, types.ErrTransferFailed.Wrapf("refund excess deposit: %v", err)
			}
		}
	}

	// Mint shares to the provider
	current, err := k.GetShares(ctx, poolID, provider)
	if err != nil {
		return zero, zero, zero, err
	}
	if err := k.SetShares(ctx, poolID, provider, current.Add(minted)); err != nil {
		return zero, zero, zero, err
	}

	pool.TotalShares = pool.TotalShares.Add(minted)
	if err := k.refreshReserves(ctx, pool); err != nil {
		return zero, zero, zero, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAddLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, usedA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, usedB.String()),
			sdk.NewAttribute(types.AttributeKeyShares, minted.String()),
		),
	)

	if k.metrics != nil {
		poolIDStr := fmt.Sprintf("%d", poolID)
		k.metrics.LiquidityAdded.WithLabelValues(poolIDStr, pool.TokenA).Add(metricValue(usedA))
		k.metrics.LiquidityAdded.WithLabelValues(poolIDStr, pool.TokenB).Add(metricValue(usedB))
	}

	return usedA, usedB, minted, nil
}

// RemoveLiquidity burns shares of the provider's position and withdraws the
// proportional amounts of both assets. Floor rounding means the withdrawer
// may receive slightly less than the exact proportion; the residue stays in
// the pool for remaining holders.
func (k Keeper) RemoveLiquidity(ctx context.Context, provider sdk.AccAddress, poolID uint64, shares math.Int) (amountA, amountB math.Int, err error) {
	amountA, amountB = math.ZeroInt(), math.ZeroInt()
	err = k.withPoolLock(poolID, "remove_liquidity", func() error {
		var lockErr error
		amountA, amountB, lockErr = k.removeLiquidity(ctx, provider, poolID, shares)
		return lockErr
	})
	return amountA, amountB, err
}

func (k Keeper) removeLiquidity(ctx context.Context, provider sdk.AccAddress, poolID uint64, shares math.Int) (math.Int, math.Int, error) {
	zero := math.ZeroInt()

	if shares.IsNil() || !shares.IsPositive() {
		return zero, zero, types.ErrInvalidAmount.Wrap("shares must be positive")
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return zero, zero, err
	}

	if pool.TotalShares.IsZero() {
		return zero, zero, types.ErrInvalidPoolState.Wrap("pool has no outstanding shares")
	}

	held, err := k.GetShares(ctx, poolID, provider)
	if err != nil {
		return zero, zero, err
	}
	if shares.GT(held) {
		return zero, zero, types.ErrInsufficientShares.Wrapf("have %s, need %s", held, shares)
	}

	amountA := shares.Mul(pool.ReserveA).Quo(pool.TotalShares)
	amountB := shares.Mul(pool.ReserveB).Quo(pool.TotalShares)
	if amountA.IsZero() && amountB.IsZero() {
		return zero, zero, types.ErrInvalidAmount.Wrap("withdrawal amounts too small")
	}

	// Burn shares before pushing funds out
	if err := k.SetShares(ctx, poolID, provider, held.Sub(shares)); err != nil {
		return zero, zero, err
	}
	pool.TotalShares = pool.TotalShares.Sub(shares)

	escrow := k.PoolAddress(poolID)
	out := sdk.Coins{}
	if amountA.IsPositive() {
		out = out.Add(sdk.NewCoin(pool.TokenA, amountA))
	}
	if amountB.IsPositive() {
		out = out.Add(sdk.NewCoin(pool.TokenB, amountB))
	}
	if err := k.bankKeeper.SendCoins(ctx, escrow, provider, out); err != nil {
		// Re-mint the burned shares so the failed withdrawal leaves no trace
		if restoreErr := k.SetShares(ctx, poolID, provider, held); restoreErr != nil {
			k.Logger(ctx).Error("failed to restore shares after withdrawal failure",
				"pool_id", poolID, "provider", provider.String(), "error", restoreErr)
		}
		return zero, zero, types.ErrTransferFailed.Wrapf("push withdrawal to provider: %v", err)
	}

	if err := k.refreshReserves(ctx, pool); err != nil {
		return zero, zero, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRemoveLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)

	if k.metrics != nil {
		poolIDStr := fmt.Sprintf("%d", poolID)
		k.metrics.LiquidityRemoved.WithLabelValues(poolIDStr, pool.TokenA).Add(metricValue(amountA))
		k.metrics.LiquidityRemoved.WithLabelValues(poolIDStr, pool.TokenB).Add(metricValue(amountB))
	}

	return amountA, amountB, nil
}

// TransferShares moves shares of a liquidity claim from one holder to another
// without touching pool reserves.
func (k Keeper) TransferShares(ctx context.Context, from, to sdk.AccAddress, poolID uint64, shares math.Int) error {
	return k.withPoolLock(poolID, "transfer_shares", func() error {
		return k.transferShares(ctx, from, to, poolID, shares)
	})
}

func (k Keeper) transferShares(ctx context.Context, from, to sdk.AccAddress, poolID uint64, shares math.Int) error {
	if shares.IsNil() || !shares.IsPositive() {
		return types.ErrInvalidAmount.Wrap("shares must be positive")
	}
	if from.Equals(to) {
		return types.ErrInvalidAddress.Wrap("sender and recipient must differ")
	}

	if _, err := k.GetPool(ctx, poolID); err != nil {
		return err
	}

	fromShares, err := k.GetShares(ctx, poolID, from)
	if err != nil {
		return err
	}
	if shares.GT(fromShares) {
		return types.ErrInsufficientShares.Wrapf("have %s, need %s", fromShares, shares)
	}

	toShares, err := k.GetShares(ctx, poolID, to)
	if err != nil {
		return err
	}

	if err := k.SetShares(ctx, poolID, from, fromShares.Sub(shares)); err != nil {
		return err
	}
	if err := k.SetShares(ctx, poolID, to, toShares.Add(shares)); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransferShares,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyProvider, from.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, to.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)

	return nil
}

// refundDeposit returns the full pulled deposit to the provider after a
// failure later in the add liquidity path.
func (k Keeper) refundDeposit(ctx context.Context, escrow, provider sdk.AccAddress, pulled sdk.Coins, reason string) {
	if err := k.bankKeeper.SendCoins(ctx, escrow, provider, pulled); err != nil {
		k.Logger(ctx).Error("failed to refund pulled deposit",
			"reason", reason,
			"provider", provider.String(),
			"amount", pulled.String(),
			"error", err,
		)
	}
}
