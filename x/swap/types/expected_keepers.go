package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper is the asset ledger the pool trades against. The cosmos-sdk bank
// keeper satisfies it; tests substitute an in-memory ledger whose transfer
// hooks may call back into the keeper.
//
// SendCoins must fail, not silently under-deliver, when the sender's balance
// is insufficient.
type BankKeeper interface {
	// GetBalance returns addr's balance of denom.
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin

	// SendCoins moves amt from one account to another.
	SendCoins(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error

	// HasSupply reports whether denom has existing supply on the ledger,
	// i.e. it is a live asset and not a bare string.
	HasSupply(ctx context.Context, denom string) bool
}
