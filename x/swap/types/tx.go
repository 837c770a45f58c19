package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer is the server API for the swap Msg service.
type MsgServer interface {
	// CreatePool registers a new empty pool for a denom pair.
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	// Swap trades an exact input amount for the constant-product output.
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
	// AddLiquidity deposits both pool assets and mints shares.
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	// RemoveLiquidity burns shares and withdraws both pool assets.
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	// TransferShares moves a liquidity claim to another holder.
	TransferShares(context.Context, *MsgTransferShares) (*MsgTransferSharesResponse, error)
}

// MsgCreatePoolResponse returns the identifier assigned to the new pool.
type MsgCreatePoolResponse struct {
	PoolId uint64 `json:"pool_id"`
}

// MsgSwapResponse returns the output amount delivered to the trader.
type MsgSwapResponse struct {
	AmountOut math.Int `json:"amount_out"`
}

// MsgAddLiquidityResponse returns the amounts actually consumed by the pool
// and the shares minted. Deposited amounts beyond AmountA/AmountB were
// refunded.
type MsgAddLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
	Shares  math.Int `json:"shares"`
}

// MsgRemoveLiquidityResponse returns the amounts withdrawn for the burned
// shares.
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgTransferSharesResponse is empty on success.
type MsgTransferSharesResponse struct{}
