package keeper

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/d49976110/simpleswap/x/swap/types"
)

// Swap trades amountIn of tokenIn for the constant product quote of tokenOut.
// The operation holds the pool lock for its full duration and follows the
// checks-effects-interactions ordering: validate, pull, compute, invariant
// check, push, persist, refresh, emit. A pull that already landed is refunded
// on any later failure.
func (k Keeper) Swap(ctx context.Context, trader sdk.AccAddress, poolID uint64, tokenIn, tokenOut string, amountIn math.Int) (math.Int, error) {
	amountOut := math.ZeroInt()
	err := k.withPoolLock(poolID, "swap", func() error {
		var err error
		amountOut, err = k.executeSwap(ctx, trader, poolID, tokenIn, tokenOut, amountIn)
		return err
	})
	return amountOut, err
}

func (k Keeper) executeSwap(ctx context.Context, trader sdk.AccAddress, poolID uint64, tokenIn, tokenOut string, amountIn math.Int) (math.Int, error) {
	start := time.Now()
	defer func() {
		if k.metrics != nil {
			k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
		}
	}()

	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrap("swap amount must be positive")
	}
	if tokenIn == tokenOut {
		return math.ZeroInt(), types.ErrSameToken.Wrap("cannot swap identical tokens")
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.ZeroInt(), err
	}

	// Snapshot reserves for the chosen direction
	var reserveIn, reserveOut math.Int
	switch {
	case tokenIn == pool.TokenA && tokenOut == pool.TokenB:
		reserveIn, reserveOut = pool.ReserveA, pool.ReserveB
	case tokenIn == pool.TokenB && tokenOut == pool.TokenA:
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
	default:
		return math.ZeroInt(), types.ErrInvalidTokenPair.Wrapf(
			"invalid token pair for pool %d: expected %s/%s, got %s/%s",
			poolID, pool.TokenA, pool.TokenB, tokenIn, tokenOut)
	}

	// Pull input tokens into the pool escrow before computing the quote
	escrow := k.PoolAddress(poolID)
	coinIn := sdk.NewCoin(tokenIn, amountIn)
	if err := k.bankKeeper.SendCoins(ctx, trader, escrow, sdk.NewCoins(coinIn)); err != nil {
		k.recordSwap(poolID, tokenIn, tokenOut, "failed")
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("pull %s from trader: %v", coinIn, err)
	}

	amountOut := quoteSwapOutput(amountIn, reserveIn, reserveOut)
	if amountOut.IsZero() {
		k.refundPull(ctx, escrow, trader, coinIn, "zero swap output")
		k.recordSwap(poolID, tokenIn, tokenOut, "failed")
		return math.ZeroInt(), types.ErrZeroSwapOutput.Wrapf("input %s against reserves %s/%s yields nothing", amountIn, reserveIn, reserveOut)
	}

	// The quote is algebraically exact, but assets whose custody diverges from
	// recorded reserves must not be allowed to drain value.
	newProduct := reserveIn.Add(amountIn).Mul(reserveOut.Sub(amountOut))
	if newProduct.LT(reserveIn.Mul(reserveOut)) {
		k.refundPull(ctx, escrow, trader, coinIn, "invariant violation")
		k.recordSwap(poolID, tokenIn, tokenOut, "failed")
		return math.ZeroInt(), types.ErrInvariantViolation.Wrapf(
			"constant product decreased: %s < %s", newProduct, reserveIn.Mul(reserveOut))
	}

	// Push output tokens to the trader only after the invariant check passes
	coinOut := sdk.NewCoin(tokenOut, amountOut)
	if err := k.bankKeeper.SendCoins(ctx, escrow, trader, sdk.NewCoins(coinOut)); err != nil {
		k.refundPull(ctx, escrow, trader, coinIn, "output push failure")
		k.recordSwap(poolID, tokenIn, tokenOut, "failed")
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("push %s to trader: %v", coinOut, err)
	}

	if err := k.refreshReserves(ctx, pool); err != nil {
		return math.ZeroInt(), err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
			sdk.NewAttribute(types.AttributeKeyTokenIn, tokenIn),
			sdk.NewAttribute(types.AttributeKeyTokenOut, tokenOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
		),
	)

	k.recordSwap(poolID, tokenIn, tokenOut, "success")
	if k.metrics != nil {
		k.metrics.SwapVolume.WithLabelValues(fmt.Sprintf("%d", poolID), tokenIn).Add(metricValue(amountIn))
	}

	return amountOut, nil
}

// quoteSwapOutput computes the constant product quote
// amountOut = floor(reserveOut * amountIn / (reserveIn + amountIn)).
// Integer floor division rounds in the pool's favor.
func quoteSwapOutput(amountIn, reserveIn, reserveOut math.Int) math.Int {
	return reserveOut.Mul(amountIn).Quo(reserveIn.Add(amountIn))
}

// refundPull sends already-pulled input back to the trader. A refund failure
// cannot abort anything further, it is logged for operators.
func (k Keeper) refundPull(ctx context.Context, escrow, trader sdk.AccAddress, coin sdk.Coin, reason string) {
	if err := k.bankKeeper.SendCoins(ctx, escrow, trader, sdk.NewCoins(coin)); err != nil {
		k.Logger(ctx).Error("failed to refund pulled funds",
			"reason", reason,
			"trader", trader.String(),
			"amount", coin.String(),
			"error", err,
		)
	}
}

func (k Keeper) recordSwap(poolID uint64, tokenIn, tokenOut, status string) {
	if k.metrics == nil {
		return
	}
	k.metrics.SwapsTotal.WithLabelValues(fmt.Sprintf("%d", poolID), tokenIn, tokenOut, status).Inc()
}

// SimulateSwap quotes a swap against current reserves without executing it.
func (k Keeper) SimulateSwap(ctx context.Context, poolID uint64, tokenIn, tokenOut string, amountIn math.Int) (math.Int, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrap("swap amount must be positive")
	}
	if tokenIn == tokenOut {
		return math.ZeroInt(), types.ErrSameToken.Wrap("cannot swap identical tokens")
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.ZeroInt(), err
	}

	var reserveIn, reserveOut math.Int
	switch {
	case tokenIn == pool.TokenA && tokenOut == pool.TokenB:
		reserveIn, reserveOut = pool.ReserveA, pool.ReserveB
	case tokenIn == pool.TokenB && tokenOut == pool.TokenA:
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
	default:
		return math.ZeroInt(), types.ErrInvalidTokenPair.Wrapf(
			"invalid token pair for pool %d: expected %s/%s, got %s/%s",
			poolID, pool.TokenA, pool.TokenB, tokenIn, tokenOut)
	}

	amountOut := quoteSwapOutput(amountIn, reserveIn, reserveOut)
	if amountOut.IsZero() {
		return math.ZeroInt(), types.ErrZeroSwapOutput.Wrapf("input %s against reserves %s/%s yields nothing", amountIn, reserveIn, reserveOut)
	}
	return amountOut, nil
}

// GetSpotPrice returns the instantaneous price of tokenOut per unit of
// tokenIn, the reserve ratio without swap impact.
func (k Keeper) GetSpotPrice(ctx context.Context, poolID uint64, tokenIn, tokenOut string) (math.LegacyDec, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.LegacyZeroDec(), err
	}

	var reserveIn, reserveOut math.Int
	switch {
	case tokenIn == pool.TokenA && tokenOut == pool.TokenB:
		reserveIn, reserveOut = pool.ReserveA, pool.ReserveB
	case tokenIn == pool.TokenB && tokenOut == pool.TokenA:
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
	default:
		return math.LegacyZeroDec(), types.ErrInvalidTokenPair.Wrapf("invalid token pair for pool %d", poolID)
	}

	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.LegacyZeroDec(), types.ErrInvalidPoolState.Wrap("pool has no liquidity")
	}

	return math.LegacyNewDecFromInt(reserveOut).Quo(math.LegacyNewDecFromInt(reserveIn)), nil
}
