package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/d49976110/simpleswap/x/swap/types"
)

var _ types.BankKeeper = (*BankMock)(nil)

// BankMock is an in-memory asset ledger. Transfers are value-conservative and
// fail instead of under-delivering. The OnSend hook runs before each transfer
// and may return an error to simulate a failing ledger, or call back into the
// keeper to simulate a reentrant asset implementation.
type BankMock struct {
	balances map[string]sdk.Coins

	// OnSend, when set, intercepts every SendCoins call before it applies.
	OnSend func(from, to sdk.AccAddress, amt sdk.Coins) error
}

// NewBankMock creates an empty mock ledger
func NewBankMock() *BankMock {
	return &BankMock{balances: make(map[string]sdk.Coins)}
}

// FundAccount credits an account with coins, creating supply out of thin air
func (m *BankMock) FundAccount(addr sdk.AccAddress, coins sdk.Coins) {
	m.balances[addr.String()] = m.balances[addr.String()].Add(coins...)
}

// GetBalance returns addr's balance of denom
func (m *BankMock) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, m.balances[addr.String()].AmountOf(denom))
}

// SendCoins moves amt between accounts, failing on insufficient funds
func (m *BankMock) SendCoins(_ context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	if m.OnSend != nil {
		if err := m.OnSend(from, to, amt); err != nil {
			return err
		}
	}

	fromBalance := m.balances[from.String()]
	newFrom, negative := fromBalance.SafeSub(amt...)
	if negative {
		return fmt.Errorf("insufficient funds: %s has %s, needs %s", from, fromBalance, amt)
	}

	m.balances[from.String()] = newFrom
	m.balances[to.String()] = m.balances[to.String()].Add(amt...)
	return nil
}

// HasSupply reports whether any account holds denom
func (m *BankMock) HasSupply(_ context.Context, denom string) bool {
	for _, coins := range m.balances {
		if coins.AmountOf(denom).IsPositive() {
			return true
		}
	}
	return false
}
