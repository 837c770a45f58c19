package main

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/d49976110/simpleswap/x/swap/keeper"
	"github.com/d49976110/simpleswap/x/swap/types"
)

// sandbox runs the swap keeper against an in-memory store and ledger so pool
// mechanics can be exercised without a running chain.
type sandbox struct {
	keeper keeper.Keeper
	ledger *memLedger
	ctx    sdk.Context
}

func newSandbox() (*sandbox, error) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}

	ledger := newMemLedger()
	k := keeper.NewKeeper(storeKey, ledger)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	if err := k.InitGenesis(ctx, *types.DefaultGenesis()); err != nil {
		return nil, fmt.Errorf("init genesis: %w", err)
	}

	return &sandbox{keeper: k, ledger: ledger, ctx: ctx}, nil
}

func (s *sandbox) addr(name string) sdk.AccAddress {
	b := make([]byte, 20)
	copy(b, name)
	return sdk.AccAddress(b)
}

// memLedger is a minimal in-memory asset ledger backing the sandbox keeper
type memLedger struct {
	balances map[string]sdk.Coins
}

var _ types.BankKeeper = (*memLedger)(nil)

func newMemLedger() *memLedger {
	return &memLedger{balances: make(map[string]sdk.Coins)}
}

func (m *memLedger) Fund(addr sdk.AccAddress, coins sdk.Coins) {
	m.balances[addr.String()] = m.balances[addr.String()].Add(coins...)
}

func (m *memLedger) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, m.balances[addr.String()].AmountOf(denom))
}

func (m *memLedger) SendCoins(_ context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	fromBalance := m.balances[from.String()]
	newFrom, negative := fromBalance.SafeSub(amt...)
	if negative {
		return fmt.Errorf("insufficient funds: %s has %s, needs %s", from, fromBalance, amt)
	}
	m.balances[from.String()] = newFrom
	m.balances[to.String()] = m.balances[to.String()].Add(amt...)
	return nil
}

func (m *memLedger) HasSupply(_ context.Context, denom string) bool {
	for _, coins := range m.balances {
		if coins.AmountOf(denom).IsPositive() {
			return true
		}
	}
	return false
}

// seedPool creates a pool for the pair and deposits the given reserves
func (s *sandbox) seedPool(denomA, denomB string, reserveA, reserveB math.Int) (*types.Pool, error) {
	provider := s.addr("provider")
	s.ledger.Fund(provider, sdk.NewCoins(
		sdk.NewCoin(denomA, reserveA),
		sdk.NewCoin(denomB, reserveB),
	))

	pool, err := s.keeper.CreatePool(s.ctx, provider, denomA, denomB)
	if err != nil {
		return nil, err
	}

	if _, _, _, err := s.keeper.AddLiquidity(s.ctx, provider, pool.Id, denomA, reserveA, denomB, reserveB); err != nil {
		return nil, err
	}

	return s.keeper.GetPool(s.ctx, pool.Id)
}
