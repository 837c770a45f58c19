package types_test

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/d49976110/simpleswap/x/swap/types"
)

// TestNewPool sorts the denom pair into canonical order
func TestNewPool(t *testing.T) {
	pool := types.NewPool(1, "uusdt", "uatom", testAddr("creator"))
	require.Equal(t, "uatom", pool.TokenA)
	require.Equal(t, "uusdt", pool.TokenB)
	require.True(t, pool.ReserveA.IsZero())
	require.True(t, pool.ReserveB.IsZero())
	require.True(t, pool.TotalShares.IsZero())

	require.True(t, pool.HasDenom("uatom"))
	require.True(t, pool.HasDenom("uusdt"))
	require.False(t, pool.HasDenom("uosmo"))
}

// TestPool_Validate covers structural pool invariants
func TestPool_Validate(t *testing.T) {
	valid := func() types.Pool {
		pool := types.NewPool(1, "uatom", "uusdt", testAddr("creator"))
		pool.ReserveA = math.NewInt(100)
		pool.ReserveB = math.NewInt(400)
		pool.TotalShares = math.NewInt(200)
		return pool
	}

	tests := []struct {
		name   string
		mutate func(*types.Pool)
		err    error
	}{
		{
			name:   "valid",
			mutate: func(*types.Pool) {},
		},
		{
			name:   "empty pool valid",
			mutate: func(p *types.Pool) { p.ReserveA, p.ReserveB, p.TotalShares = math.ZeroInt(), math.ZeroInt(), math.ZeroInt() },
		},
		{
			name:   "reserves without shares valid",
			mutate: func(p *types.Pool) { p.TotalShares = math.ZeroInt() },
		},
		{
			name:   "zero id",
			mutate: func(p *types.Pool) { p.Id = 0 },
			err:    types.ErrInvalidPoolId,
		},
		{
			name:   "empty denom",
			mutate: func(p *types.Pool) { p.TokenA = "" },
			err:    types.ErrInvalidTokenDenom,
		},
		{
			name:   "identical tokens",
			mutate: func(p *types.Pool) { p.TokenB = p.TokenA },
			err:    types.ErrSameToken,
		},
		{
			name:   "unsorted tokens",
			mutate: func(p *types.Pool) { p.TokenA, p.TokenB = p.TokenB, p.TokenA },
			err:    types.ErrInvalidPoolState,
		},
		{
			name:   "negative reserve",
			mutate: func(p *types.Pool) { p.ReserveA = math.NewInt(-1) },
			err:    types.ErrInvalidPoolState,
		},
		{
			name:   "negative shares",
			mutate: func(p *types.Pool) { p.TotalShares = math.NewInt(-1) },
			err:    types.ErrInvalidPoolState,
		},
		{
			name:   "shares without reserves",
			mutate: func(p *types.Pool) { p.ReserveA = math.ZeroInt() },
			err:    types.ErrInvalidPoolState,
		},
		{
			name:   "nil amounts",
			mutate: func(p *types.Pool) { p.ReserveB = math.Int{} },
			err:    types.ErrInvalidPoolState,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pool := valid()
			tc.mutate(&pool)
			err := pool.Validate()
			if tc.err != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.err))
				return
			}
			require.NoError(t, err)
		})
	}
}

// TestPool_Product multiplies the recorded reserves
func TestPool_Product(t *testing.T) {
	pool := types.NewPool(1, "uatom", "uusdt", testAddr("creator"))
	pool.ReserveA = math.NewInt(1100)
	pool.ReserveB = math.NewInt(910)
	require.Equal(t, math.NewInt(1_001_000), pool.Product())
}

// TestPool_StorageRoundTrip survives the store codec
func TestPool_StorageRoundTrip(t *testing.T) {
	pool := types.NewPool(7, "uatom", "uusdt", testAddr("creator"))
	pool.ReserveA = math.NewInt(12345)
	pool.ReserveB = math.NewInt(67890)
	pool.TotalShares = math.NewInt(28934)

	bz, err := pool.Marshal()
	require.NoError(t, err)

	var decoded types.Pool
	require.NoError(t, decoded.Unmarshal(bz))
	require.Equal(t, pool, decoded)
}
