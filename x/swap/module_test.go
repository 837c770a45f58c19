package swap_test

import (
	"encoding/json"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/d49976110/simpleswap/testutil/keeper"
	"github.com/d49976110/simpleswap/x/swap"
	"github.com/d49976110/simpleswap/x/swap/types"
)

type fakeInvariantRegistry struct {
	routes []string
}

func (r *fakeInvariantRegistry) RegisterRoute(moduleName, route string, _ sdk.Invariant) {
	r.routes = append(r.routes, moduleName+"/"+route)
}

// TestAppModule_GenesisRoundTrip encodes default genesis, validates it, and
// imports/exports it through the module.
func TestAppModule_GenesisRoundTrip(t *testing.T) {
	k, _, ctx := keepertest.SwapKeeper(t)
	am := swap.NewAppModule(k)

	require.Equal(t, types.ModuleName, am.Name())

	defaultGenesis := am.DefaultGenesis(nil)
	require.NoError(t, am.ValidateGenesis(nil, nil, defaultGenesis))

	am.InitGenesis(ctx, nil, defaultGenesis)
	exported := am.ExportGenesis(ctx, nil)

	var genState types.GenesisState
	require.NoError(t, json.Unmarshal(exported, &genState))
	require.Equal(t, types.DefaultParams(), genState.Params)
	require.Equal(t, uint64(1), genState.NextPoolId)
}

// TestAppModule_ValidateGenesis_Invalid rejects malformed and inconsistent
// genesis bytes.
func TestAppModule_ValidateGenesis_Invalid(t *testing.T) {
	k, _, _ := keepertest.SwapKeeper(t)
	am := swap.NewAppModule(k)

	require.Error(t, am.ValidateGenesis(nil, nil, []byte("{not json")))

	gs := types.DefaultGenesis()
	gs.NextPoolId = 0
	bz, err := json.Marshal(gs)
	require.NoError(t, err)
	require.Error(t, am.ValidateGenesis(nil, nil, bz))
}

// TestAppModule_RegisterInvariants registers all four invariant routes
func TestAppModule_RegisterInvariants(t *testing.T) {
	k, _, _ := keepertest.SwapKeeper(t)
	am := swap.NewAppModule(k)

	registry := &fakeInvariantRegistry{}
	am.RegisterInvariants(registry)
	require.ElementsMatch(t, []string{
		"swap/reserves-custody",
		"swap/share-supply",
		"swap/pool-state",
		"swap/constant-product",
	}, registry.routes)
}
