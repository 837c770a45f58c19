package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/d49976110/simpleswap/x/swap/types"
)

// RegisterInvariants registers all swap module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "reserves-custody", ReservesCustodyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-state", PoolStateInvariant(k))
	ir.RegisterRoute(types.ModuleName, "constant-product", ConstantProductInvariant(k))
}

// AllInvariants runs all invariants of the swap module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := ReservesCustodyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = ShareSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = PoolStateInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return ConstantProductInvariant(k)(ctx)
	}
}

// ReservesCustodyInvariant checks that every pool's recorded reserves are
// covered by its escrow account balances. Custody may exceed reserves between
// operations (direct sends are absorbed at the next refresh) but must never
// fall below them.
func ReservesCustodyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "reserves-custody", err.Error()), true
		}

		for _, pool := range pools {
			escrow := k.PoolAddress(pool.Id)
			balanceA := k.bankKeeper.GetBalance(ctx, escrow, pool.TokenA)
			balanceB := k.bankKeeper.GetBalance(ctx, escrow, pool.TokenB)

			if balanceA.Amount.LT(pool.ReserveA) {
				count++
				msg += fmt.Sprintf("pool %d: custody of %s (%s) < reserve (%s)\n",
					pool.Id, pool.TokenA, balanceA.Amount, pool.ReserveA)
			}
			if balanceB.Amount.LT(pool.ReserveB) {
				count++
				msg += fmt.Sprintf("pool %d: custody of %s (%s) < reserve (%s)\n",
					pool.Id, pool.TokenB, balanceB.Amount, pool.ReserveB)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "reserves-custody",
			fmt.Sprintf("found %d reserves exceeding escrow custody\n%s", count, msg),
		), broken
	}
}

// ShareSupplyInvariant checks that the sum of per-holder positions equals the
// pool's total shares.
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "share-supply", err.Error()), true
		}

		for _, pool := range pools {
			sum := math.ZeroInt()
			if err := k.IterateSharesByPool(ctx, pool.Id, func(_ sdk.AccAddress, shares math.Int) bool {
				sum = sum.Add(shares)
				return false
			}); err != nil {
				return sdk.FormatInvariant(types.ModuleName, "share-supply", err.Error()), true
			}

			if !sum.Equal(pool.TotalShares) {
				count++
				msg += fmt.Sprintf("pool %d: position sum (%s) != total shares (%s)\n",
					pool.Id, sum, pool.TotalShares)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "share-supply",
			fmt.Sprintf("found %d pools with inconsistent share supply\n%s", count, msg),
		), broken
	}
}

// PoolStateInvariant checks structural pool validity: canonical denom
// ordering, non-negative amounts, and reserve/share consistency.
func PoolStateInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-state", err.Error()), true
		}

		for _, pool := range pools {
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("pool %d: %v\n", pool.Id, err)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-state",
			fmt.Sprintf("found %d structurally invalid pools\n%s", count, msg),
		), broken
	}
}

// ConstantProductInvariant checks that every pool with outstanding shares has
// a positive constant product.
func ConstantProductInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "constant-product", err.Error()), true
		}

		for _, pool := range pools {
			if pool.TotalShares.IsZero() {
				continue
			}
			if !pool.Product().IsPositive() {
				count++
				msg += fmt.Sprintf("pool %d: non-positive product with %s outstanding shares\n",
					pool.Id, pool.TotalShares)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "constant-product",
			fmt.Sprintf("found %d pools with broken constant product\n%s", count, msg),
		), broken
	}
}
