package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/d49976110/simpleswap/x/swap/types"
)

func validGenesis() types.GenesisState {
	pool := types.NewPool(1, "uatom", "uusdt", testAddr("creator"))
	pool.ReserveA = math.NewInt(100)
	pool.ReserveB = math.NewInt(400)
	pool.TotalShares = math.NewInt(200)

	return types.GenesisState{
		Params: types.DefaultParams(),
		Pools:  []types.Pool{pool},
		Positions: []types.SharePosition{
			{PoolId: 1, Address: testAddr("holder-one"), Shares: math.NewInt(150)},
			{PoolId: 1, Address: testAddr("holder-two"), Shares: math.NewInt(50)},
		},
		NextPoolId: 2,
	}
}

// TestGenesisState_Validate covers genesis consistency rules
func TestGenesisState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.GenesisState)
		wantErr string
	}{
		{
			name:   "default valid",
			mutate: func(gs *types.GenesisState) { *gs = *types.DefaultGenesis() },
		},
		{
			name:   "populated valid",
			mutate: func(*types.GenesisState) {},
		},
		{
			name:    "invalid params",
			mutate:  func(gs *types.GenesisState) { gs.Params.MaxPools = 0 },
			wantErr: "max pools",
		},
		{
			name:    "zero next pool id",
			mutate:  func(gs *types.GenesisState) { gs.NextPoolId = 0 },
			wantErr: "next pool id",
		},
		{
			name:    "pool id above counter",
			mutate:  func(gs *types.GenesisState) { gs.Pools[0].Id = 9; gs.Positions = nil; gs.Pools[0].TotalShares = math.ZeroInt() },
			wantErr: "not below next pool id",
		},
		{
			name: "duplicate pool id",
			mutate: func(gs *types.GenesisState) {
				dup := gs.Pools[0]
				dup.TokenA, dup.TokenB = "uatom", "uosmo2"
				gs.Pools = append(gs.Pools, dup)
				gs.NextPoolId = 3
			},
			wantErr: "duplicate pool id",
		},
		{
			name: "duplicate pair",
			mutate: func(gs *types.GenesisState) {
				dup := gs.Pools[0]
				dup.Id = 2
				dup.TotalShares = math.ZeroInt()
				gs.Pools = append(gs.Pools, dup)
				gs.NextPoolId = 3
			},
			wantErr: "duplicate pool for pair",
		},
		{
			name:    "position for unknown pool",
			mutate:  func(gs *types.GenesisState) { gs.Positions[0].PoolId = 5 },
			wantErr: "unknown pool",
		},
		{
			name:    "invalid holder address",
			mutate:  func(gs *types.GenesisState) { gs.Positions[0].Address = "not-bech32" },
			wantErr: "invalid share holder address",
		},
		{
			name:    "non-positive position",
			mutate:  func(gs *types.GenesisState) { gs.Positions[0].Shares = math.ZeroInt() },
			wantErr: "must be positive",
		},
		{
			name: "duplicate position",
			mutate: func(gs *types.GenesisState) {
				gs.Positions[1].Address = gs.Positions[0].Address
			},
			wantErr: "duplicate share position",
		},
		{
			name:    "position sum mismatch",
			mutate:  func(gs *types.GenesisState) { gs.Positions[1].Shares = math.NewInt(49) },
			wantErr: "share positions sum",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := validGenesis()
			tc.mutate(&gs)
			err := gs.Validate()
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

// TestParams_Validate rejects a zero pool cap
func TestParams_Validate(t *testing.T) {
	require.NoError(t, types.DefaultParams().Validate())
	require.NoError(t, types.Params{MaxPools: 1}.Validate())
	require.Error(t, types.Params{MaxPools: 0}.Validate())
}
