package types

import (
	"cosmossdk.io/errors"
)

// Swap module sentinel errors. Callers branch on these to decide whether a
// retry with different parameters makes sense, so each failure category gets
// its own registered error.
var (
	ErrInvalidPoolId      = errors.Register(ModuleName, 1, "invalid pool id")
	ErrPoolNotFound       = errors.Register(ModuleName, 2, "pool not found")
	ErrPoolAlreadyExists  = errors.Register(ModuleName, 3, "pool already exists")
	ErrInvalidTokenDenom  = errors.Register(ModuleName, 4, "invalid token denomination")
	ErrSameToken          = errors.Register(ModuleName, 5, "token denominations must differ")
	ErrInvalidTokenPair   = errors.Register(ModuleName, 6, "token pair does not match pool")
	ErrInvalidAmount      = errors.Register(ModuleName, 7, "invalid amount")
	ErrInsufficientShares = errors.Register(ModuleName, 8, "insufficient liquidity shares")
	ErrZeroSwapOutput     = errors.Register(ModuleName, 9, "computed swap output is zero")
	ErrInvariantViolation = errors.Register(ModuleName, 10, "constant product invariant violated")
	ErrTransferFailed     = errors.Register(ModuleName, 11, "asset transfer failed")
	ErrReentrancy         = errors.Register(ModuleName, 12, "reentrant call rejected")
	ErrInvalidAddress     = errors.Register(ModuleName, 13, "invalid address")
	ErrInvalidPoolState   = errors.Register(ModuleName, 14, "invalid pool state")
	ErrMaxPoolsReached    = errors.Register(ModuleName, 15, "maximum number of pools reached")
)
