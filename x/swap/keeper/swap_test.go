package keeper_test

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/d49976110/simpleswap/testutil/keeper"
	"github.com/d49976110/simpleswap/x/swap/keeper"
	"github.com/d49976110/simpleswap/x/swap/types"
)

func testAddr(seed string) sdk.AccAddress {
	b := make([]byte, 20)
	copy(b, seed)
	return sdk.AccAddress(b)
}

// setupLiquidPool creates a uatom/uusdt pool seeded with the given reserves
// by a dedicated provider account.
func setupLiquidPool(t *testing.T, k keeper.Keeper, bank *keepertest.BankMock, ctx sdk.Context, reserveA, reserveB int64) uint64 {
	t.Helper()

	provider := testAddr("provider")
	bank.FundAccount(provider, sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(reserveA)),
		sdk.NewCoin("uusdt", math.NewInt(reserveB)),
	))

	pool, err := k.CreatePool(ctx, provider, "uatom", "uusdt")
	require.NoError(t, err)

	_, _, _, err = k.AddLiquidity(ctx, provider, pool.Id, "uatom", math.NewInt(reserveA), "uusdt", math.NewInt(reserveB))
	require.NoError(t, err)

	return pool.Id
}

// TestSwap_Pricing checks the constant product quote: reserves (1000, 1000),
// input 100, output floor(1000*100/1100) = 90, and the post-swap product
// 1100*910 does not fall below the pre-swap product.
func TestSwap_Pricing(t *testing.T) {
	k, bank, ctx := keepertest.SwapKeeper(t)
	poolID := setupLiquidPool(t, k, bank, ctx, 1000, 1000)

	trader := testAddr("trader")
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100))))

	amountOut, err := k.Swap(ctx, trader, poolID, "uatom", "uusdt", math.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(90), amountOut)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1100), pool.ReserveA)
	require.Equal(t, math.NewInt(910), pool.ReserveB)
	require.True(t, pool.Product().GTE(math.NewInt(1_000_000)))

	require.Equal(t, math.ZeroInt(), bank.GetBalance(ctx, trader, "uatom").Amount)
	require.Equal(t, math.NewInt(90), bank.GetBalance(ctx, trader, "uusdt").Amount)
}

// TestSwap_InvariantMonotonicity runs a sequence of swaps in both directions
// and checks the reserve product never decreases.
func TestSwap_InvariantMonotonicity(t *testing.T) {
	k, bank, ctx := keepertest.SwapKeeper(t)
	poolID := setupLiquidPool(t, k, bank, ctx, 10_000, 40_000)

	trader := testAddr("trader")
	bank.FundAccount(trader, sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(100_000)),
		sdk.NewCoin("uusdt", math.NewInt(100_000)),
	))

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	product := pool.Product()

	steps := []struct {
		tokenIn, tokenOut string
		amountIn          int64
	}{
		{"uatom", "uusdt", 500},
		{"uusdt", "uatom", 1200},
		{"uatom", "uusdt", 37},
		{"uusdt", "uatom", 9999},
		{"uatom", "uusdt", 1},
	}

	for _, step := range steps {
		_, err := k.Swap(ctx, trader, poolID, step.tokenIn, step.tokenOut, math.NewInt(step.amountIn))
		require.NoError(t, err)

		pool, err = k.GetPool(ctx, poolID)
		require.NoError(t, err)
		require.True(t, pool.Product().GTE(product), "product decreased: %s < %s", pool.Product(), product)
		product = pool.Product()
	}
}

// TestSwap_ZeroAmount rejects non-positive input
func TestSwap_ZeroAmount(t *testing.T) {
	k, bank, ctx := keepertest.SwapKeeper(t)
	poolID := setupLiquidPool(t, k, bank, ctx, 1000, 1000)

	_, err := k.Swap(ctx, testAddr("trader"), poolID, "uatom", "uusdt", math.ZeroInt())
	require.Error(t, err)
	require.True(t, errors.Is(err, types.ErrInvalidAmount))
}

// TestSwap_IdenticalTokens rejects swapping a token for itself
func TestSwap_IdenticalTokens(t *testing.T) {
	k, bank, ctx := keepertest.SwapKeeper(t)
	poolID := setupLiquidPool(t, k, bank, ctx, 1000, 1000)

	_, err := k.Swap(ctx, testAddr("trader"), poolID, "uatom", "uatom", math.NewInt(10))
	require.Error(t, err)
	require.True(t, errors.Is(err, types.ErrSameToken))
}

// TestSwap_PoolNotFound rejects swaps against unknown pools
func TestSwap_PoolNotFound(t *testing.T) {
	k, _, ctx := keepertest.SwapKeeper(t)

	_, err := k.Swap(ctx, testAddr("trader"), 42, "uatom", "uusdt", math.NewInt(10))
	require.Error(t, err)
	require.True(t, errors.Is(err, types.ErrPoolNotFound))
}

// TestSwap_InvalidTokenPair rejects tokens the pool does not hold
func TestSwap_InvalidTokenPair(t *testing.T) {
	k, bank, ctx := keepertest.SwapKeeper(t)
	poolID := setupLiquidPool(t, k, bank, ctx, 1000, 1000)

	_, err := k.Swap(ctx, testAddr("trader"), poolID, "uatom", "uosmo", math.NewInt(10))
	require.Error(t, err)
	require.True(t, errors.Is(err, types.ErrInvalidTokenPair))
}

// TestSwap_ZeroOutput rejects swaps whose floored quote is zero and refunds
// the pulled input.
func TestSwap_ZeroOutput(t *testing.T) {
	k, bank, ctx := keepertest.SwapKeeper(t)
	poolID := setupLiquidPool(t, k, bank, ctx, 1_000_000, 10)

	trader := testAddr("trader")
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(50))))

	// 10*50/(1000000+50) floors to zero
	_, err := k.Swap(ctx, trader, poolID, "uatom", "uusdt", math.NewInt(50))
	require.Error(t, err)
	require.True(t, errors.Is(err, types.ErrZeroSwapOutput))

	// Pull was refunded, nothing changed
	require.Equal(t, math.NewInt(50), bank.GetBalance(ctx, trader, "uatom").Amount)
	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), pool.ReserveA)
	require.Equal(t, math.NewInt(10), pool.ReserveB)
}

// TestSwap_EmptyPool rejects swaps against a pool with no liquidity
func TestSwap_EmptyPool(t *testing.T) {
	k, bank, ctx := keepertest.SwapKeeper(t)

	creator := testAddr("creator")
	bank.FundAccount(creator, sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1)),
		sdk.NewCoin("uusdt", math.NewInt(1)),
	))
	pool, err := k.CreatePool(ctx, creator, "uatom", "uusdt")
	require.NoError(t, err)

	trader := testAddr("trader")
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100))))

	_, err = k.Swap(ctx, trader, pool.Id, "uatom", "uusdt", math.NewInt(100))
	require.Error(t, err)
	require.True(t, errors.Is(err, types.ErrZeroSwapOutput))
}

// TestSwap_InsufficientFunds aborts before any state change when the pull
// fails.
func TestSwap_InsufficientFunds(t *testing.T) {
	k, bank, ctx := keepertest.SwapKeeper(t)
	poolID := setupLiquidPool(t, k, bank, ctx, 1000, 1000)

	trader := testAddr("trader") // unfunded

	_, err := k.Swap(ctx, trader, poolID, "uatom", "uusdt", math.NewInt(100))
	require.Error(t, err)
	require.True(t, errors.Is(err, types.ErrTransferFailed))

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1000), pool.ReserveA)
	require.Equal(t, math.NewInt(1000), pool.ReserveB)
}

// TestSwap_FailedPushRefundsPull checks the compensating refund: when the
// output push fails, the already-pulled input is returned and the pool state
// is untouched.
func TestSwap_FailedPushRefundsPull(t *testing.T) {
	k, bank, ctx := keepertest.SwapKeeper(t)
	poolID := setupLiquidPool(t, k, bank, ctx, 1000, 1000)
	escrow := k.PoolAddress(poolID)

	trader := testAddr("trader")
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100))))

	// Fail exactly one escrow-outbound transfer (the push); the refund that
	// follows is allowed through.
	failed := false
	bank.OnSend = func(from, to sdk.AccAddress, amt sdk.Coins) error {
		if !failed && from.Equals(escrow) {
			failed = true
			return errors.New("ledger unavailable")
		}
		return nil
	}

	_, err := k.Swap(ctx, trader, poolID, "uatom", "uusdt", math.NewInt(100))
	require.Error(t, err)
	require.True(t, errors.Is(err, types.ErrTransferFailed))

	require.Equal(t, math.NewInt(100), bank.GetBalance(ctx, trader, "uatom").Amount)
	require.Equal(t, math.ZeroInt(), bank.GetBalance(ctx, trader, "uusdt").Amount)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1000), pool.ReserveA)
	require.Equal(t, math.NewInt(1000), pool.ReserveB)
}

// TestSimulateSwap_MatchesExecution checks the quote equals the executed
// output and leaves no state behind.
func TestSimulateSwap_MatchesExecution(t *testing.T) {
	k, bank, ctx := keepertest.SwapKeeper(t)
	poolID := setupLiquidPool(t, k, bank, ctx, 1000, 1000)

	quoted, err := k.SimulateSwap(ctx, poolID, "uatom", "uusdt", math.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(90), quoted)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1000), pool.ReserveA)

	trader := testAddr("trader")
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100))))
	executed, err := k.Swap(ctx, trader, poolID, "uatom", "uusdt", math.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, quoted, executed)
}

// TestGetSpotPrice returns the reserve ratio in both directions
func TestGetSpotPrice(t *testing.T) {
	k, bank, ctx := keepertest.SwapKeeper(t)
	poolID := setupLiquidPool(t, k, bank, ctx, 1000, 4000)

	price, err := k.GetSpotPrice(ctx, poolID, "uatom", "uusdt")
	require.NoError(t, err)
	require.Equal(t, math.LegacyNewDec(4), price)

	price, err = k.GetSpotPrice(ctx, poolID, "uusdt", "uatom")
	require.NoError(t, err)
	require.Equal(t, math.LegacyNewDecWithPrec(25, 2), price)
}

// TestSwap_EmitsEvent checks the swap event carries trader, tokens, and both
// amounts.
func TestSwap_EmitsEvent(t *testing.T) {
	k, bank, ctx := keepertest.SwapKeeper(t)
	poolID := setupLiquidPool(t, k, bank, ctx, 1000, 1000)

	trader := testAddr("trader")
	bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100))))

	_, err := k.Swap(ctx, trader, poolID, "uatom", "uusdt", math.NewInt(100))
	require.NoError(t, err)

	var found bool
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type != types.EventTypeSwap {
			continue
		}
		found = true
		attrs := map[string]string{}
		for _, attr := range ev.Attributes {
			attrs[attr.Key] = attr.Value
		}
		require.Equal(t, trader.String(), attrs[types.AttributeKeyTrader])
		require.Equal(t, "uatom", attrs[types.AttributeKeyTokenIn])
		require.Equal(t, "uusdt", attrs[types.AttributeKeyTokenOut])
		require.Equal(t, "100", attrs[types.AttributeKeyAmountIn])
		require.Equal(t, "90", attrs[types.AttributeKeyAmountOut])
	}
	require.True(t, found, "swap event not emitted")
}
